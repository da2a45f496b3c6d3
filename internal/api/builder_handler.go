package api

import (
	"errors"
	"fmt"
	"net/http"

	"trackfit/workout-app/internal/builder"
	"trackfit/workout-app/internal/domain"
	"trackfit/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// BuilderHandler serves the workout editing session routes. Every
// mutation goes through Manager.Do so a session is only ever touched by
// one request at a time.
type BuilderHandler struct {
	manager        *builder.Manager
	workoutService service.WorkoutService
}

// NewBuilderHandler creates a new BuilderHandler.
func NewBuilderHandler(manager *builder.Manager, workoutService service.WorkoutService) *BuilderHandler {
	return &BuilderHandler{manager: manager, workoutService: workoutService}
}

// --- Request Structs ---

type OpenSessionRequest struct {
	// Exercises selected from the catalog to seed a create-mode session.
	Exercises []domain.CatalogExercise `json:"exercises"`
	// WorkoutID switches to edit mode: the stored workout is loaded and
	// hydrated into the session. Mutually exclusive with Exercises.
	WorkoutID string `json:"workoutId"`
}

type SessionNameRequest struct {
	Name string `json:"name" binding:"required"`
}

type MergeExercisesRequest struct {
	Exercises []domain.CatalogExercise `json:"exercises" binding:"required"`
}

type AddSetRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
}

type UpdateSetRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	SetIndex   *int   `json:"setIndex" binding:"required"`
	Field      string `json:"field" binding:"required"`
	Value      string `json:"value"`
}

type SelectUnitRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	SetIndex   *int   `json:"setIndex" binding:"required"`
	Unit       string `json:"unit" binding:"required"`
}

type SelectRepTypeRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	SetIndex   *int   `json:"setIndex" binding:"required"`
	RepType    string `json:"repType" binding:"required"`
}

type PairSupersetRequest struct {
	FirstID  string `json:"firstId" binding:"required"`
	SecondID string `json:"secondId" binding:"required"`
}

type SwapRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
}

// SessionView is the render model of a session. Superset colors are
// resolved from palette indices to their display values here, at the
// edge; inside the session only indices exist.
type SessionView struct {
	SessionID      string                   `json:"sessionId"`
	Name           string                   `json:"name"`
	EditMode       bool                     `json:"editMode"`
	Exercises      []domain.WorkoutExercise `json:"exercises"`
	Supersets      map[string]string        `json:"supersets"`
	SupersetColors map[string]SessionColor  `json:"supersetColors"`
	SwapMode       bool                     `json:"swapMode"`
	SwapSource     string                   `json:"swapSource,omitempty"`
}

type SessionColor struct {
	BG   string `json:"bg"`
	Text string `json:"text"`
}

func viewOf(sessionID string, b *builder.Builder) SessionView {
	colors := make(map[string]SessionColor, len(b.ColorIndexes()))
	for exerciseID, idx := range b.ColorIndexes() {
		if idx < 0 || idx >= len(builder.SupersetPalette) {
			idx = 0
		}
		entry := builder.SupersetPalette[idx]
		colors[exerciseID] = SessionColor{BG: entry.BG, Text: entry.Text}
	}
	source, pending := b.SwapPending()
	return SessionView{
		SessionID:      sessionID,
		Name:           b.Name(),
		EditMode:       b.EditMode(),
		Exercises:      b.Exercises(),
		Supersets:      b.Supersets(),
		SupersetColors: colors,
		SwapMode:       pending,
		SwapSource:     source,
	}
}

// OpenSession starts an editing session, either from a catalog
// selection (create mode) or from a stored workout (edit mode).
func (h *BuilderHandler) OpenSession(c *gin.Context) {
	uid, err := getUIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user from token")
		return
	}

	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if req.WorkoutID != "" {
		workout, err := h.workoutService.FetchWorkoutByID(c.Request.Context(), uid, req.WorkoutID)
		if err != nil {
			if errors.Is(err, service.ErrWorkoutNotFound) || errors.Is(err, service.ErrValidationFailed) {
				abortWithError(c, http.StatusNotFound, "Workout not found")
			} else {
				abortWithError(c, http.StatusInternalServerError, "Could not open workout for editing")
			}
			return
		}
		sessionID := h.manager.OpenEdit(workout)
		h.renderSession(c, http.StatusCreated, sessionID)
		return
	}

	sessionID := h.manager.Open(req.Exercises)
	h.renderSession(c, http.StatusCreated, sessionID)
}

// GetSession returns the current state of a session.
func (h *BuilderHandler) GetSession(c *gin.Context) {
	h.renderSession(c, http.StatusOK, c.Param("id"))
}

// SetName renames the session's workout.
func (h *BuilderHandler) SetName(c *gin.Context) {
	var req SessionNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.mutate(c, func(b *builder.Builder) error {
		b.SetName(req.Name)
		return nil
	})
}

// MergeExercises appends newly selected catalog exercises; ids already
// in the session are skipped so re-selecting never duplicates or resets
// entered sets.
func (h *BuilderHandler) MergeExercises(c *gin.Context) {
	var req MergeExercisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.mutate(c, func(b *builder.Builder) error {
		b.MergeExercises(req.Exercises)
		return nil
	})
}

// AddSet appends an empty set to the exercise.
func (h *BuilderHandler) AddSet(c *gin.Context) {
	var req AddSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.mutate(c, func(b *builder.Builder) error {
		return b.AddSet(req.ExerciseID)
	})
}

// UpdateSet writes a kg or reps value into one set. Locked fields (kg
// under max-weight, reps under a failure/dropset display) are rejected.
func (h *BuilderHandler) UpdateSet(c *gin.Context) {
	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.mutate(c, func(b *builder.Builder) error {
		return b.UpdateSet(req.ExerciseID, *req.SetIndex, req.Field, req.Value)
	})
}

// SelectUnit applies a weight-unit choice to one set.
func (h *BuilderHandler) SelectUnit(c *gin.Context) {
	var req SelectUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.mutate(c, func(b *builder.Builder) error {
		return b.SelectUnit(req.ExerciseID, *req.SetIndex, domain.WeightUnit(req.Unit))
	})
}

// SelectRepType applies a rep-type choice to one set.
func (h *BuilderHandler) SelectRepType(c *gin.Context) {
	var req SelectRepTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.mutate(c, func(b *builder.Builder) error {
		return b.SelectRepType(req.ExerciseID, *req.SetIndex, domain.RepType(req.RepType))
	})
}

// DeleteExercise removes the exercise and dissolves any superset it was
// part of, on both sides.
func (h *BuilderHandler) DeleteExercise(c *gin.Context) {
	exerciseID := c.Param("exerciseId")
	h.mutate(c, func(b *builder.Builder) error {
		return b.DeleteExercise(exerciseID)
	})
}

// SupersetCandidates lists the exercises the subject may be paired
// with: everything in the session except itself and already-paired
// exercises.
func (h *BuilderHandler) SupersetCandidates(c *gin.Context) {
	subjectID := c.Query("subject")
	if subjectID == "" {
		abortWithError(c, http.StatusBadRequest, "subject query parameter is required")
		return
	}

	var candidates []domain.WorkoutExercise
	err := h.manager.Do(c.Param("id"), func(b *builder.Builder) error {
		candidates = b.SupersetCandidates(subjectID)
		return nil
	})
	if err != nil {
		h.abortSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// PairSuperset links two exercises and assigns the pair's palette
// index.
func (h *BuilderHandler) PairSuperset(c *gin.Context) {
	var req PairSupersetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.mutate(c, func(b *builder.Builder) error {
		return b.PairSuperset(req.FirstID, req.SecondID)
	})
}

// StartSwap enters swap mode with the given exercise as the source.
func (h *BuilderHandler) StartSwap(c *gin.Context) {
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.mutate(c, func(b *builder.Builder) error {
		return b.StartSwap(req.ExerciseID)
	})
}

// ConfirmSwap exchanges the swap source with the target and leaves swap
// mode. Tapping the source itself is a no-op that stays in swap mode.
func (h *BuilderHandler) ConfirmSwap(c *gin.Context) {
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.mutate(c, func(b *builder.Builder) error {
		return b.ConfirmSwap(req.ExerciseID)
	})
}

// CancelSwap leaves swap mode without reordering.
func (h *BuilderHandler) CancelSwap(c *gin.Context) {
	h.mutate(c, func(b *builder.Builder) error {
		b.CancelSwap()
		return nil
	})
}

// SaveSession persists the session and closes it on success. On failure
// the session stays open, state intact, so the client can retry.
func (h *BuilderHandler) SaveSession(c *gin.Context) {
	uid, err := getUIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user from token")
		return
	}

	sessionID := c.Param("id")
	var savedID string
	err = h.manager.Do(sessionID, func(b *builder.Builder) error {
		oid, saveErr := h.workoutService.SaveSession(c.Request.Context(), uid, b)
		if saveErr != nil {
			return saveErr
		}
		savedID = oid.Hex()
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, builder.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, "Session not found")
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, "Invalid session state")
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not save workout")
		}
		return
	}

	h.manager.Close(sessionID)
	c.JSON(http.StatusOK, gin.H{"id": savedID})
}

// CloseSession discards the session without saving.
func (h *BuilderHandler) CloseSession(c *gin.Context) {
	h.manager.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// mutate runs fn against the session and renders the resulting state,
// mapping session errors to HTTP statuses.
func (h *BuilderHandler) mutate(c *gin.Context, fn func(*builder.Builder) error) {
	sessionID := c.Param("id")
	var view SessionView
	err := h.manager.Do(sessionID, func(b *builder.Builder) error {
		if err := fn(b); err != nil {
			return err
		}
		view = viewOf(sessionID, b)
		return nil
	})
	if err != nil {
		h.abortSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *BuilderHandler) renderSession(c *gin.Context, status int, sessionID string) {
	var view SessionView
	err := h.manager.Do(sessionID, func(b *builder.Builder) error {
		view = viewOf(sessionID, b)
		return nil
	})
	if err != nil {
		h.abortSessionError(c, err)
		return
	}
	c.JSON(status, view)
}

func (h *BuilderHandler) abortSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, builder.ErrSessionNotFound):
		abortWithError(c, http.StatusNotFound, "Session not found")
	case errors.Is(err, builder.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, "Exercise not in session")
	case errors.Is(err, builder.ErrSetOutOfRange),
		errors.Is(err, builder.ErrInvalidField),
		errors.Is(err, builder.ErrSelfPair):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, builder.ErrFieldLocked),
		errors.Is(err, builder.ErrAlreadyPaired),
		errors.Is(err, builder.ErrNotInSwapMode):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Session operation failed")
	}
}
