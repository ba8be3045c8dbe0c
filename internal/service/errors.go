package service

import (
	"errors"
	"sort"
	"strings"
)

// --- Error Definitions ---
var (
	ErrUnauthorized      = errors.New("authentication required")
	ErrValidationFailed  = errors.New("validation failed")
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrExerciseInUse     = errors.New("exercise is used by a workout")
	ErrExportUnavailable = errors.New("export storage is not configured")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrTokenGeneration   = errors.New("failed to generate authentication token")
)

// ValidationError carries one message per offending input field.
// errors.Is(err, ErrValidationFailed) holds for every ValidationError.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
