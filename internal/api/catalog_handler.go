package api

import (
	"net/http"

	"trackfit/workout-app/internal/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler proxies the external exercise catalog so the API key
// stays server-side.
type CatalogHandler struct {
	client *catalog.Client
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(client *catalog.Client) *CatalogHandler {
	return &CatalogHandler{client: client}
}

// ListBodyParts returns the catalog's body-part names.
func (h *CatalogHandler) ListBodyParts(c *gin.Context) {
	parts, err := h.client.ListBodyParts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Exercise catalog unavailable")
		return
	}
	c.JSON(http.StatusOK, parts)
}

// ListExercisesByBodyPart returns the catalog exercises for one body
// part.
func (h *CatalogHandler) ListExercisesByBodyPart(c *gin.Context) {
	exercises, err := h.client.ListExercisesByBodyPart(c.Request.Context(), c.Param("bodyPart"))
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Exercise catalog unavailable")
		return
	}
	c.JSON(http.StatusOK, exercises)
}
