package api

import (
	"errors"
	"fmt"
	"net/http"

	"trackfit/workout-app/internal/domain"
	"trackfit/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves the workout and folder routes.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request Structs ---

type CreateFolderRequest struct {
	FolderName string `json:"folderName" binding:"required"`
}

type AddWorkoutToFolderRequest struct {
	WorkoutID string `json:"workoutId" binding:"required"`
}

type ReorderFolderRequest struct {
	Workouts []domain.WorkoutSnapshot `json:"workouts" binding:"required"`
}

// --- Workout Routes ---

// ListWorkouts returns the user's workouts, newest first.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	uid, err := getUIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user from token")
		return
	}

	workouts, err := h.workoutService.FetchWorkouts(c.Request.Context(), uid)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout returns one workout. The lookup carries the owner filter:
// another user's workout id yields 404, never the document.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	uid, err := getUIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user from token")
		return
	}

	workout, err := h.workoutService.FetchWorkoutByID(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) || errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusNotFound, "Workout not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not fetch workout")
		}
		return
	}
	c.JSON(http.StatusOK, workout)
}

// DeleteWorkout removes a workout. When the folderId query parameter is
// present the folder's snapshot is removed first, then the document, so
// the folder never keeps an entry for a deleted workout.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	workoutID := c.Param("id")
	folderID := c.Query("folderId")

	var err error
	if folderID != "" {
		err = h.workoutService.DeleteWorkoutInFolder(c.Request.Context(), folderID, workoutID)
	} else {
		err = h.workoutService.DeleteWorkout(c.Request.Context(), workoutID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found")
		case errors.Is(err, service.ErrFolderNotFound):
			abortWithError(c, http.StatusNotFound, "Folder not found")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, "Invalid id")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not delete workout")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Folder Routes ---

// CreateFolder creates an empty folder.
func (h *WorkoutHandler) CreateFolder(c *gin.Context) {
	uid, err := getUIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user from token")
		return
	}

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	folderID, err := h.workoutService.CreateFolder(c.Request.Context(), uid, req.FolderName)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "Folder name is required")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not create folder")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": folderID.Hex(), "folderName": req.FolderName})
}

// ListFolders returns the user's folders as id/name pairs.
func (h *WorkoutHandler) ListFolders(c *gin.Context) {
	uid, err := getUIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user from token")
		return
	}

	folders, err := h.workoutService.FetchFolders(c.Request.Context(), uid)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not fetch folders")
		return
	}
	c.JSON(http.StatusOK, folders)
}

// AddWorkoutToFolder snapshots one of the user's workouts into the
// folder's embedded list.
func (h *WorkoutHandler) AddWorkoutToFolder(c *gin.Context) {
	uid, err := getUIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user from token")
		return
	}

	var req AddWorkoutToFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err = h.workoutService.AddWorkoutToFolder(c.Request.Context(), uid, c.Param("id"), req.WorkoutID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFolderNotFound):
			abortWithError(c, http.StatusNotFound, "Folder not found")
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, "Invalid id")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not add workout to folder")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFolderWorkouts returns the folder's embedded snapshots, empty
// when the folder is missing.
func (h *WorkoutHandler) ListFolderWorkouts(c *gin.Context) {
	snapshots, err := h.workoutService.FetchFolderWorkouts(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "Invalid folder id")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not fetch folder workouts")
		}
		return
	}
	c.JSON(http.StatusOK, snapshots)
}

// ReorderFolderWorkouts overwrites the folder's embedded list with the
// order the client built by dragging; no ordering logic server-side.
func (h *WorkoutHandler) ReorderFolderWorkouts(c *gin.Context) {
	var req ReorderFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err := h.workoutService.ReorderFolderWorkouts(c.Request.Context(), c.Param("id"), req.Workouts)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFolderNotFound):
			abortWithError(c, http.StatusNotFound, "Folder not found")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, "Invalid folder id")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not reorder folder workouts")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveWorkoutFromFolder filters the folder's embedded list by the
// workout id, leaving the workout's own document untouched.
func (h *WorkoutHandler) RemoveWorkoutFromFolder(c *gin.Context) {
	err := h.workoutService.RemoveWorkoutFromFolder(c.Request.Context(), c.Param("id"), c.Param("workoutId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFolderNotFound):
			abortWithError(c, http.StatusNotFound, "Folder not found")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, "Invalid folder id")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not remove workout from folder")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteFolder removes the folder document, snapshots included.
func (h *WorkoutHandler) DeleteFolder(c *gin.Context) {
	err := h.workoutService.DeleteFolder(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFolderNotFound):
			abortWithError(c, http.StatusNotFound, "Folder not found")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, "Invalid folder id")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not delete folder")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
