package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-log/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// CreateExerciseRequest defines the expected JSON for creating a custom exercise.
type CreateExerciseRequest struct {
	Name                 string  `json:"name" binding:"required"`
	Description          *string `json:"description"`
	Type                 string  `json:"type"`
	PrimaryMuscleGroup   string  `json:"primaryMuscleGroup" binding:"required"`
	SecondaryMuscleGroup *string `json:"secondaryMuscleGroup"`
	Equipment            string  `json:"equipment"`
	Instructions         *string `json:"instructions"`
	VideoURL             *string `json:"videoUrl" binding:"omitempty,url"`
}

// ListExercises handles GET /exercises: the global catalog plus the caller's custom entries.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), principalFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// CreateExercise handles POST /exercises.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateCustomExercise(c.Request.Context(), principalFromContext(c), service.ExerciseInput{
		Name:                 req.Name,
		Description:          req.Description,
		Type:                 req.Type,
		PrimaryMuscleGroup:   req.PrimaryMuscleGroup,
		SecondaryMuscleGroup: req.SecondaryMuscleGroup,
		Equipment:            req.Equipment,
		Instructions:         req.Instructions,
		VideoURL:             req.VideoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// DeleteExercise handles DELETE /exercises/:id. Only the owner may delete a
// custom exercise, and only while no workout uses it.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id, ok := workoutIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.exerciseService.DeleteCustomExercise(c.Request.Context(), principalFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
