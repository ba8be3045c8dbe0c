package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-log/internal/daywindow"
	"alcyxob/workout-log/internal/service"
)

// statusFor maps service and resolver errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, daywindow.ErrInvalidTimezone),
		errors.Is(err, daywindow.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrWorkoutNotFound), errors.Is(err, service.ErrExerciseNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrExerciseInUse):
		return http.StatusConflict
	case errors.Is(err, service.ErrExportUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error body for err. Unexpected errors are logged
// and reported without detail.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		abortWithError(c, status, "Internal server error")
		return
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(status, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	abortWithError(c, status, err.Error())
}
