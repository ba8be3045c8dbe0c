package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-log/internal/daywindow"
	"alcyxob/workout-log/internal/service"
)

// WorkoutHandler serves the JSON workout endpoints.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	now            func() time.Time
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, now: time.Now}
}

// WorkoutRequest is the body of create and update calls.
type WorkoutRequest struct {
	Name  string  `json:"name" binding:"required"`
	Notes *string `json:"notes"`
}

func (r WorkoutRequest) input() service.WorkoutInput {
	return service.WorkoutInput{Name: r.Name, Notes: r.Notes}
}

// ListWorkouts handles GET /workouts?date=yyyy-MM-dd&tz=Area/City.
// A missing date means today in tz.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	tz := c.Query("tz")
	date := c.Query("date")
	if date == "" {
		today, err := daywindow.Today(h.now(), tz)
		if err != nil {
			respondError(c, err)
			return
		}
		date = today
	}
	day, err := daywindow.ParseDate(date)
	if err != nil {
		respondError(c, err)
		return
	}

	workouts, err := h.workoutService.ListWorkoutsForDate(c.Request.Context(), principalFromContext(c), day, tz)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// CreateWorkout handles POST /workouts.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), principalFromContext(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// GetWorkout handles GET /workouts/:id.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	id, ok := workoutIDParam(c, "id")
	if !ok {
		return
	}
	workout, err := h.workoutService.GetWorkout(c.Request.Context(), principalFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// GetWorkoutDetail handles GET /workouts/:id/detail.
func (h *WorkoutHandler) GetWorkoutDetail(c *gin.Context) {
	id, ok := workoutIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.workoutService.GetWorkoutDetail(c.Request.Context(), principalFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateWorkout handles PUT /workouts/:id.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	id, ok := workoutIDParam(c, "id")
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), principalFromContext(c), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// DeleteWorkout handles DELETE /workouts/:id.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	id, ok := workoutIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.workoutService.DeleteWorkout(c.Request.Context(), principalFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// workoutIDParam parses a positive id path parameter. Anything else is a 404,
// since no such resource can exist.
func workoutIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Resource not found")
		return 0, false
	}
	return id, true
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
