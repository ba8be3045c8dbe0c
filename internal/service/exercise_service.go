package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/repository"
)

// ExerciseInput describes a custom exercise. Empty type and equipment take the catalog defaults.
type ExerciseInput struct {
	Name                 string  `json:"name" validate:"required,max=200"`
	Description          *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Type                 string  `json:"type,omitempty" validate:"omitempty,exercisetype"`
	PrimaryMuscleGroup   string  `json:"primaryMuscleGroup" validate:"required,musclegroup"`
	SecondaryMuscleGroup *string `json:"secondaryMuscleGroup,omitempty" validate:"omitempty,musclegroup"`
	Equipment            string  `json:"equipment,omitempty" validate:"omitempty,equipment"`
	Instructions         *string `json:"instructions,omitempty" validate:"omitempty,max=5000"`
	VideoURL             *string `json:"videoUrl,omitempty" validate:"omitempty,url"`
}

// --- Service Interface ---
type ExerciseService interface {
	ListExercises(ctx context.Context, principal domain.Principal) ([]domain.Exercise, error)
	CreateCustomExercise(ctx context.Context, principal domain.Principal, input ExerciseInput) (*domain.Exercise, error)
	DeleteCustomExercise(ctx context.Context, principal domain.Principal, id int64) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// ListExercises returns the global catalog plus the principal's custom exercises, by name.
func (s *exerciseService) ListExercises(ctx context.Context, principal domain.Principal) ([]domain.Exercise, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	return s.exerciseRepo.List(ctx, principal.UserID)
}

// CreateCustomExercise adds an exercise visible only to the principal.
func (s *exerciseService) CreateCustomExercise(ctx context.Context, principal domain.Principal, input ExerciseInput) (*domain.Exercise, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Description = trimOptional(input.Description)
	input.Instructions = trimOptional(input.Instructions)
	input.VideoURL = trimOptional(input.VideoURL)
	input.SecondaryMuscleGroup = trimOptional(input.SecondaryMuscleGroup)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	userID := principal.UserID
	exercise := &domain.Exercise{
		Name:               input.Name,
		Description:        input.Description,
		Type:               domain.ExerciseType(input.Type),
		PrimaryMuscleGroup: domain.MuscleGroup(input.PrimaryMuscleGroup),
		Equipment:          domain.Equipment(input.Equipment),
		Instructions:       input.Instructions,
		VideoURL:           input.VideoURL,
		IsCustom:           true,
		CreatedBy:          &userID,
	}
	if input.SecondaryMuscleGroup != nil {
		secondary := domain.MuscleGroup(*input.SecondaryMuscleGroup)
		exercise.SecondaryMuscleGroup = &secondary
	}

	created, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		log.Printf("ERROR: Failed to create exercise for user %s: %v", userID, err)
		return nil, err
	}
	return created, nil
}

// DeleteCustomExercise removes one of the principal's custom exercises.
// Catalog entries and other users' exercises report ErrExerciseNotFound.
func (s *exerciseService) DeleteCustomExercise(ctx context.Context, principal domain.Principal, id int64) error {
	if !principal.Authenticated() {
		return ErrUnauthorized
	}
	if id <= 0 {
		return ErrExerciseNotFound
	}
	err := s.exerciseRepo.Delete(ctx, principal.UserID, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrExerciseNotFound
	case errors.Is(err, repository.ErrInUse):
		return ErrExerciseInUse
	}
	return err
}
