package api

import (
	"errors"
	"fmt"
	"net/http"

	"trackfit/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// MetricsHandler serves the calculator and body-tracking routes.
type MetricsHandler struct {
	metricsService *service.MetricsService
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(metricsService *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// --- Request Structs ---

// Calculator inputs stay strings end to end: they come from free-text
// fields and parsing failures map to a single missing-input error.
type BMIRequest struct {
	Weight string `json:"weight" binding:"required"`
	Height string `json:"height" binding:"required"`
}

type OneRepMaxRequest struct {
	Weight string `json:"weight" binding:"required"`
	Reps   string `json:"reps" binding:"required"`
}

type CaloriesRequest struct {
	Weight string `json:"weight" binding:"required"`
	Height string `json:"height" binding:"required"`
	Age    string `json:"age" binding:"required"`
}

// CalculateBMI computes a BMI value and category from weight and
// height.
func (h *MetricsHandler) CalculateBMI(c *gin.Context) {
	var req BMIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := service.CalculateBMI(req.Weight, req.Height)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Weight and height must be positive numbers")
		return
	}
	c.JSON(http.StatusOK, result)
}

// CalculateOneRepMax estimates a one-rep max from a lift and rep count.
func (h *MetricsHandler) CalculateOneRepMax(c *gin.Context) {
	var req OneRepMaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	estimate, err := service.CalculateOneRepMax(req.Weight, req.Reps)
	if err != nil {
		if errors.Is(err, service.ErrRepsOutOfRange) {
			abortWithError(c, http.StatusBadRequest, "Rep count must be below 37")
		} else {
			abortWithError(c, http.StatusBadRequest, "Weight and reps must be positive numbers")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"oneRepMax": estimate})
}

// CalculateCalories estimates daily calorie need.
func (h *MetricsHandler) CalculateCalories(c *gin.Context) {
	var req CaloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	calories, err := service.CalculateCalories(req.Weight, req.Height, req.Age)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Weight, height and age must be positive numbers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"calories": calories})
}

// GetMeasurements returns every tracked body-part value, empty strings
// for parts never recorded.
func (h *MetricsHandler) GetMeasurements(c *gin.Context) {
	measurements, err := h.metricsService.LoadMeasurements()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load measurements")
		return
	}
	c.JSON(http.StatusOK, measurements)
}

// SaveMeasurements stores the submitted body-part values.
func (h *MetricsHandler) SaveMeasurements(c *gin.Context) {
	var measurements map[string]string
	if err := c.ShouldBindJSON(&measurements); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.metricsService.SaveMeasurements(measurements); err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "Unknown body part")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not save measurements")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPersonalRecords returns the stored PR lifts.
func (h *MetricsHandler) GetPersonalRecords(c *gin.Context) {
	records, err := h.metricsService.LoadPersonalRecords()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load personal records")
		return
	}
	c.JSON(http.StatusOK, records)
}

// SavePersonalRecords stores the PR lifts.
func (h *MetricsHandler) SavePersonalRecords(c *gin.Context) {
	var records service.PersonalRecords
	if err := c.ShouldBindJSON(&records); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.metricsService.SavePersonalRecords(records); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not save personal records")
		return
	}
	c.Status(http.StatusNoContent)
}
