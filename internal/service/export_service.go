package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"alcyxob/workout-log/internal/daywindow"
	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/repository"
	"alcyxob/workout-log/internal/storage"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const exportVersion = 1

// ExportDocument is the portable form of a user's workouts over a date range.
// Exercises are referenced by name so a document can be imported into another store.
type ExportDocument struct {
	Version    int               `json:"version" yaml:"version"`
	From       string            `json:"from" yaml:"from"`
	To         string            `json:"to" yaml:"to"`
	Timezone   string            `json:"timezone" yaml:"timezone"`
	ExportedAt time.Time         `json:"exportedAt" yaml:"exportedAt"`
	Workouts   []ExportedWorkout `json:"workouts" yaml:"workouts"`
}

type ExportedWorkout struct {
	Name        *string            `json:"name,omitempty" yaml:"name,omitempty" validate:"omitempty,max=200"`
	Notes       *string            `json:"notes,omitempty" yaml:"notes,omitempty" validate:"omitempty,max=1000"`
	StartedAt   time.Time          `json:"startedAt" yaml:"startedAt"`
	CompletedAt *time.Time         `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Duration    *int               `json:"duration,omitempty" yaml:"duration,omitempty"`
	Exercises   []ExportedExercise `json:"exercises" yaml:"exercises"`
}

type ExportedExercise struct {
	Exercise           string              `json:"exercise" yaml:"exercise"`
	Type               domain.ExerciseType `json:"type,omitempty" yaml:"type,omitempty"`
	PrimaryMuscleGroup domain.MuscleGroup  `json:"primaryMuscleGroup,omitempty" yaml:"primaryMuscleGroup,omitempty"`
	Equipment          domain.Equipment    `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	OrderIndex         int                 `json:"orderIndex" yaml:"orderIndex"`
	Notes              *string             `json:"notes,omitempty" yaml:"notes,omitempty"`
	TargetSets         *int                `json:"targetSets,omitempty" yaml:"targetSets,omitempty"`
	TargetReps         *int                `json:"targetReps,omitempty" yaml:"targetReps,omitempty"`
	TargetWeight       *float64            `json:"targetWeight,omitempty" yaml:"targetWeight,omitempty"`
	TargetWeightUnit   *string             `json:"targetWeightUnit,omitempty" yaml:"targetWeightUnit,omitempty"`
	Sets               []ExportedSet       `json:"sets" yaml:"sets"`
}

type ExportedSet struct {
	SetNumber    int       `json:"setNumber" yaml:"setNumber"`
	Reps         *int      `json:"reps,omitempty" yaml:"reps,omitempty"`
	Weight       *float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	WeightUnit   *string   `json:"weightUnit,omitempty" yaml:"weightUnit,omitempty"`
	RIR          *int      `json:"rir,omitempty" yaml:"rir,omitempty"`
	RPE          *float64  `json:"rpe,omitempty" yaml:"rpe,omitempty"`
	Duration     *int      `json:"duration,omitempty" yaml:"duration,omitempty"`
	Distance     *float64  `json:"distance,omitempty" yaml:"distance,omitempty"`
	DistanceUnit *string   `json:"distanceUnit,omitempty" yaml:"distanceUnit,omitempty"`
	Tempo        *string   `json:"tempo,omitempty" yaml:"tempo,omitempty"`
	RestTime     *int      `json:"restTime,omitempty" yaml:"restTime,omitempty"`
	Notes        *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Completed    bool      `json:"completed" yaml:"completed"`
	CompletedAt  time.Time `json:"completedAt" yaml:"completedAt"`
}

// ExportRequest selects the local days from..to inclusive in Timezone.
type ExportRequest struct {
	From     string `json:"from" validate:"required,datetime=2006-01-02"`
	To       string `json:"to" validate:"required,datetime=2006-01-02"`
	Timezone string `json:"tz" validate:"required"`
	Format   string `json:"format" validate:"omitempty,oneof=json yaml"`
}

// ExportResult points at an uploaded export.
type ExportResult struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ImportResult counts the rows an import created.
type ImportResult struct {
	Workouts         int `json:"workouts"`
	WorkoutExercises int `json:"workoutExercises"`
	Sets             int `json:"sets"`
	CreatedExercises int `json:"createdExercises"`
}

// ExportService moves a user's workouts in and out of portable documents.
type ExportService interface {
	Build(ctx context.Context, principal domain.Principal, req ExportRequest) (*ExportDocument, error)
	Publish(ctx context.Context, principal domain.Principal, req ExportRequest) (*ExportResult, error)
	Import(ctx context.Context, principal domain.Principal, doc *ExportDocument) (*ImportResult, error)
}

type exportService struct {
	workouts     WorkoutService
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	files        storage.FileStorage
	urlExpiry    time.Duration
	now          func() time.Time
}

// NewExportService creates the export service. files may be nil, in which case
// Publish reports ErrExportUnavailable while Build and Import keep working.
func NewExportService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository, files storage.FileStorage, urlExpiry time.Duration) ExportService {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultPresignedURLExpiry
	}
	return &exportService{
		workouts:     NewWorkoutService(workoutRepo),
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		files:        files,
		urlExpiry:    urlExpiry,
		now:          time.Now,
	}
}

func (s *exportService) Build(ctx context.Context, principal domain.Principal, req ExportRequest) (*ExportDocument, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	window, err := daywindow.Span(req.From, req.To, req.Timezone)
	if err != nil {
		return nil, err
	}
	details, err := s.workouts.ListWorkoutsBetween(ctx, principal, window)
	if err != nil {
		return nil, err
	}

	doc := &ExportDocument{
		Version:    exportVersion,
		From:       req.From,
		To:         req.To,
		Timezone:   req.Timezone,
		ExportedAt: s.now().UTC().Truncate(time.Second),
		Workouts:   make([]ExportedWorkout, 0, len(details)),
	}
	for _, d := range details {
		doc.Workouts = append(doc.Workouts, exportWorkout(d))
	}
	return doc, nil
}

func exportWorkout(d domain.WorkoutDetail) ExportedWorkout {
	w := ExportedWorkout{
		Name:        d.Name,
		Notes:       d.Notes,
		StartedAt:   d.StartedAt,
		CompletedAt: d.CompletedAt,
		Duration:    d.Duration,
		Exercises:   make([]ExportedExercise, 0, len(d.Exercises)),
	}
	for _, we := range d.Exercises {
		e := ExportedExercise{
			Exercise:           we.Exercise.Name,
			Type:               we.Exercise.Type,
			PrimaryMuscleGroup: we.Exercise.PrimaryMuscleGroup,
			Equipment:          we.Exercise.Equipment,
			OrderIndex:         we.OrderIndex,
			Notes:              we.Notes,
			TargetSets:         we.TargetSets,
			TargetReps:         we.TargetReps,
			TargetWeight:       we.TargetWeight,
			TargetWeightUnit:   we.TargetWeightUnit,
			Sets:               make([]ExportedSet, 0, len(we.Sets)),
		}
		for _, set := range we.Sets {
			e.Sets = append(e.Sets, ExportedSet{
				SetNumber:    set.SetNumber,
				Reps:         set.Reps,
				Weight:       set.Weight,
				WeightUnit:   set.WeightUnit,
				RIR:          set.RIR,
				RPE:          set.RPE,
				Duration:     set.Duration,
				Distance:     set.Distance,
				DistanceUnit: set.DistanceUnit,
				Tempo:        set.Tempo,
				RestTime:     set.RestTime,
				Notes:        set.Notes,
				Completed:    set.Completed,
				CompletedAt:  set.CompletedAt,
			})
		}
		w.Exercises = append(w.Exercises, e)
	}
	return w
}

// Publish uploads the export and returns a presigned download link.
func (s *exportService) Publish(ctx context.Context, principal domain.Principal, req ExportRequest) (*ExportResult, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	if s.files == nil {
		return nil, ErrExportUnavailable
	}
	doc, err := s.Build(ctx, principal, req)
	if err != nil {
		return nil, err
	}
	format := req.Format
	if format == "" {
		format = FormatJSON
	}
	body, contentType, err := Encode(doc, format)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/%s/%s.%s", principal.UserID, uuid.NewString(), format)
	if err := s.files.PutObject(ctx, key, contentType, bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}
	url, err := s.files.GeneratePresignedDownloadURL(ctx, key, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}
	log.Printf("INFO: Exported %d workouts for user %s to %s", len(doc.Workouts), principal.UserID, key)

	return &ExportResult{URL: url, Key: key, ExpiresAt: s.now().UTC().Add(s.urlExpiry)}, nil
}

// Encode renders doc as json or yaml and returns the matching content type.
func Encode(doc *ExportDocument, format string) ([]byte, string, error) {
	switch format {
	case FormatJSON, "":
		body, err := json.MarshalIndent(doc, "", "  ")
		return body, "application/json", err
	case FormatYAML:
		body, err := yaml.Marshal(doc)
		return body, "application/yaml", err
	default:
		return nil, "", invalidField("format", "must be one of json, yaml")
	}
}

// Decode parses an export document. An empty format is guessed from the content.
func Decode(data []byte, format string) (*ExportDocument, error) {
	if format == "" {
		format = FormatYAML
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
			format = FormatJSON
		}
	}
	var doc ExportDocument
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, invalidField("format", "must be one of json, yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	if doc.Version != exportVersion {
		return nil, fmt.Errorf("%w: unsupported export version %d", domain.ErrInvalidRecord, doc.Version)
	}
	return &doc, nil
}

// FormatFromPath picks the export format from a file name.
func FormatFromPath(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	}
	return ""
}

// Import recreates the document's workouts for principal. Exercises are matched by
// name against the catalog and the principal's custom entries; unknown names become
// custom exercises. Every record gets its insert defaults and is then checked before
// it is written. Each workout is all-or-nothing: when one of its records fails, the
// rows already written for it are removed and the import stops there.
func (s *exportService) Import(ctx context.Context, principal domain.Principal, doc *ExportDocument) (*ImportResult, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthorized
	}
	known, err := s.exerciseRepo.List(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int64, len(known))
	for _, e := range known {
		byName[strings.ToLower(e.Name)] = e.ID
	}

	result := &ImportResult{}
	for wi, ew := range doc.Workouts {
		if err := s.importWorkout(ctx, principal, ew, byName, result); err != nil {
			return result, fmt.Errorf("workout %d: %w", wi+1, err)
		}
	}
	log.Printf("INFO: Imported %d workouts for user %s", result.Workouts, principal.UserID)
	return result, nil
}

// importWorkout writes one workout with its exercises and sets. Counts reach
// result only once the whole workout is stored.
func (s *exportService) importWorkout(ctx context.Context, principal domain.Principal, ew ExportedWorkout, byName map[string]int64, result *ImportResult) error {
	if err := validateStruct(ew); err != nil {
		return err
	}
	workout := domain.Workout{
		UserID:      principal.UserID,
		Name:        ew.Name,
		Notes:       ew.Notes,
		StartedAt:   ew.StartedAt.UTC(),
		CompletedAt: ew.CompletedAt,
		Duration:    ew.Duration,
	}
	if err := workout.Validate(); err != nil {
		return err
	}
	created, err := s.workoutRepo.Create(ctx, &workout)
	if err != nil {
		return err
	}

	added := ImportResult{Workouts: 1}
	if err := s.importExercises(ctx, principal, created.ID, ew.Exercises, byName, result, &added); err != nil {
		// The delete cascades to the exercises and sets written so far.
		if derr := s.workoutRepo.DeleteForUser(context.WithoutCancel(ctx), principal.UserID, created.ID); derr != nil {
			log.Printf("ERROR: Failed to roll back imported workout %d for user %s: %v", created.ID, principal.UserID, derr)
		}
		return err
	}
	result.Workouts += added.Workouts
	result.WorkoutExercises += added.WorkoutExercises
	result.Sets += added.Sets
	return nil
}

func (s *exportService) importExercises(ctx context.Context, principal domain.Principal, workoutID int64, exercises []ExportedExercise, byName map[string]int64, result, added *ImportResult) error {
	for ei, ee := range exercises {
		exerciseID, err := s.resolveExercise(ctx, principal, ee, byName, result)
		if err != nil {
			return fmt.Errorf("exercise %d: %w", ei+1, err)
		}
		we := domain.WorkoutExercise{
			WorkoutID:        workoutID,
			ExerciseID:       exerciseID,
			OrderIndex:       ee.OrderIndex,
			Notes:            ee.Notes,
			TargetSets:       ee.TargetSets,
			TargetReps:       ee.TargetReps,
			TargetWeight:     ee.TargetWeight,
			TargetWeightUnit: ee.TargetWeightUnit,
		}
		we.ApplyDefaults()
		if err := we.Validate(); err != nil {
			return fmt.Errorf("exercise %d: %w", ei+1, err)
		}
		addedExercise, err := s.workoutRepo.AddExercise(ctx, &we)
		if err != nil {
			return fmt.Errorf("exercise %d: %w", ei+1, err)
		}
		added.WorkoutExercises++

		for si, es := range ee.Sets {
			set := domain.Set{
				WorkoutExerciseID: addedExercise.ID,
				SetNumber:         es.SetNumber,
				Reps:              es.Reps,
				Weight:            es.Weight,
				WeightUnit:        es.WeightUnit,
				RIR:               es.RIR,
				RPE:               es.RPE,
				Duration:          es.Duration,
				Distance:          es.Distance,
				DistanceUnit:      es.DistanceUnit,
				Tempo:             es.Tempo,
				RestTime:          es.RestTime,
				Notes:             es.Notes,
				Completed:         es.Completed,
				CompletedAt:       es.CompletedAt.UTC(),
			}
			set.ApplyDefaults(s.now().UTC())
			if err := set.Validate(); err != nil {
				return fmt.Errorf("exercise %d set %d: %w", ei+1, si+1, err)
			}
			if _, err := s.workoutRepo.AddSet(ctx, &set); err != nil {
				return fmt.Errorf("exercise %d set %d: %w", ei+1, si+1, err)
			}
			added.Sets++
		}
	}
	return nil
}

func (s *exportService) resolveExercise(ctx context.Context, principal domain.Principal, ee ExportedExercise, byName map[string]int64, result *ImportResult) (int64, error) {
	name := strings.TrimSpace(ee.Exercise)
	if id, ok := byName[strings.ToLower(name)]; ok {
		return id, nil
	}
	userID := principal.UserID
	exercise := domain.Exercise{
		Name:               name,
		Type:               ee.Type,
		PrimaryMuscleGroup: ee.PrimaryMuscleGroup,
		Equipment:          ee.Equipment,
		IsCustom:           true,
		CreatedBy:          &userID,
	}
	exercise.ApplyDefaults()
	if exercise.PrimaryMuscleGroup == "" {
		exercise.PrimaryMuscleGroup = domain.MuscleFullBody
	}
	if err := exercise.Validate(); err != nil {
		return 0, err
	}
	created, err := s.exerciseRepo.Create(ctx, &exercise)
	if err != nil {
		return 0, err
	}
	byName[strings.ToLower(name)] = created.ID
	result.CreatedExercises++
	return created.ID, nil
}

// IsImportError reports whether err came from an invalid import document.
func IsImportError(err error) bool {
	return errors.Is(err, domain.ErrInvalidRecord) || errors.Is(err, ErrValidationFailed)
}
