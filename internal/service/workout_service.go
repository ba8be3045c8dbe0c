package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"alcyxob/workout-log/internal/daywindow"
	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/repository"
)

// WorkoutInput is the user-editable part of a workout.
type WorkoutInput struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// normalized trims the name and drops blank notes.
func (in WorkoutInput) normalized() WorkoutInput {
	return WorkoutInput{Name: strings.TrimSpace(in.Name), Notes: trimOptional(in.Notes)}
}

// checked applies the length limits to the input as sent and the required
// name to its trimmed form, then returns the trimmed input.
func (in WorkoutInput) checked() (WorkoutInput, error) {
	if err := validateStruct(in); err != nil {
		return in, err
	}
	out := in.normalized()
	if err := validateStruct(out); err != nil {
		return in, err
	}
	return out, nil
}

type workoutUpdate struct {
	ID int64 `json:"id" validate:"gt=0"`
	WorkoutInput
}

// WorkoutService exposes the workout operations of one signed-in user.
// Every method fails with ErrUnauthorized for the anonymous principal before doing anything else.
type WorkoutService interface {
	ListWorkoutsForDate(ctx context.Context, principal domain.Principal, date time.Time, timezone string) ([]domain.WorkoutDetail, error)
	ListWorkoutsBetween(ctx context.Context, principal domain.Principal, window daywindow.Window) ([]domain.WorkoutDetail, error)
	GetWorkout(ctx context.Context, principal domain.Principal, id int64) (*domain.Workout, error)
	GetWorkoutDetail(ctx context.Context, principal domain.Principal, id int64) (*domain.WorkoutDetail, error)
	CreateWorkout(ctx context.Context, principal domain.Principal, input WorkoutInput) (*domain.Workout, error)
	UpdateWorkout(ctx context.Context, principal domain.Principal, id int64, input WorkoutInput) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, principal domain.Principal, id int64) error
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo repository.WorkoutRepository
	now         func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		now:         time.Now,
	}
}

// ListWorkoutsForDate returns the workouts started on date's calendar day in timezone.
func (s *workoutService) ListWorkoutsForDate(ctx context.Context, principal domain.Principal, date time.Time, timezone string) ([]domain.WorkoutDetail, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	window, err := daywindow.Resolve(date, timezone)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, principal, window)
}

func (s *workoutService) ListWorkoutsBetween(ctx context.Context, principal domain.Principal, window daywindow.Window) ([]domain.WorkoutDetail, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	return s.list(ctx, principal, window)
}

func (s *workoutService) list(ctx context.Context, principal domain.Principal, window daywindow.Window) ([]domain.WorkoutDetail, error) {
	workouts, err := s.workoutRepo.ListByUserBetween(ctx, principal.UserID, window.Start, window.End)
	if err != nil {
		log.Printf("ERROR: Failed to list workouts for user %s: %v", principal.UserID, err)
		return nil, err
	}
	return workouts, nil
}

// GetWorkout returns ErrWorkoutNotFound for ids the principal does not own.
func (s *workoutService) GetWorkout(ctx context.Context, principal domain.Principal, id int64) (*domain.Workout, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	if id <= 0 {
		return nil, ErrWorkoutNotFound
	}
	workout, err := s.workoutRepo.GetByIDForUser(ctx, principal.UserID, id)
	if err != nil {
		return nil, mapWorkoutError(err)
	}
	return workout, nil
}

func (s *workoutService) GetWorkoutDetail(ctx context.Context, principal domain.Principal, id int64) (*domain.WorkoutDetail, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	if id <= 0 {
		return nil, ErrWorkoutNotFound
	}
	detail, err := s.workoutRepo.GetDetailByIDForUser(ctx, principal.UserID, id)
	if err != nil {
		return nil, mapWorkoutError(err)
	}
	return detail, nil
}

// CreateWorkout starts a new workout now. Each call creates a new row.
func (s *workoutService) CreateWorkout(ctx context.Context, principal domain.Principal, input WorkoutInput) (*domain.Workout, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	input, err := input.checked()
	if err != nil {
		return nil, err
	}

	name := input.Name
	workout := &domain.Workout{
		UserID:    principal.UserID,
		Name:      &name,
		Notes:     input.Notes,
		StartedAt: s.now().UTC(),
	}
	created, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		log.Printf("ERROR: Failed to create workout for user %s: %v", principal.UserID, err)
		return nil, err
	}
	return created, nil
}

// UpdateWorkout replaces name and notes. The write only matches rows owned by the principal.
func (s *workoutService) UpdateWorkout(ctx context.Context, principal domain.Principal, id int64, input WorkoutInput) (*domain.Workout, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	if err := validateStruct(workoutUpdate{ID: id, WorkoutInput: input}); err != nil {
		return nil, err
	}
	input, err := input.checked()
	if err != nil {
		return nil, err
	}

	updated, err := s.workoutRepo.UpdateForUser(ctx, principal.UserID, id, input.Name, input.Notes)
	if err != nil {
		return nil, mapWorkoutError(err)
	}
	return updated, nil
}

// DeleteWorkout removes the workout with its exercises and sets.
func (s *workoutService) DeleteWorkout(ctx context.Context, principal domain.Principal, id int64) error {
	if !principal.Authenticated() {
		return ErrUnauthorized
	}
	if id <= 0 {
		return ErrWorkoutNotFound
	}
	if err := s.workoutRepo.DeleteForUser(ctx, principal.UserID, id); err != nil {
		return mapWorkoutError(err)
	}
	return nil
}

func mapWorkoutError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}
