package mongo

import (
	"time"

	"alcyxob/workout-log/internal/domain"
)

// workoutDocument embeds the workout's exercises, which embed their sets.
type workoutDocument struct {
	ID          int64                     `bson:"_id"`
	UserID      string                    `bson:"userId"`
	Name        *string                   `bson:"name,omitempty"`
	Notes       *string                   `bson:"notes,omitempty"`
	StartedAt   time.Time                 `bson:"startedAt"`
	CompletedAt *time.Time                `bson:"completedAt,omitempty"`
	Duration    *int                      `bson:"duration,omitempty"`
	Exercises   []workoutExerciseDocument `bson:"exercises"`
	CreatedAt   time.Time                 `bson:"createdAt"`
	UpdatedAt   time.Time                 `bson:"updatedAt"`
}

type workoutExerciseDocument struct {
	ID               int64         `bson:"id"`
	ExerciseID       int64         `bson:"exerciseId"`
	OrderIndex       int           `bson:"orderIndex"`
	Notes            *string       `bson:"notes,omitempty"`
	TargetSets       *int          `bson:"targetSets,omitempty"`
	TargetReps       *int          `bson:"targetReps,omitempty"`
	TargetWeight     *float64      `bson:"targetWeight,omitempty"`
	TargetWeightUnit *string       `bson:"targetWeightUnit,omitempty"`
	Sets             []setDocument `bson:"sets"`
	CreatedAt        time.Time     `bson:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt"`
}

type setDocument struct {
	ID           int64     `bson:"id"`
	SetNumber    int       `bson:"setNumber"`
	Reps         *int      `bson:"reps,omitempty"`
	Weight       *float64  `bson:"weight,omitempty"`
	WeightUnit   *string   `bson:"weightUnit,omitempty"`
	RIR          *int      `bson:"rir,omitempty"`
	RPE          *float64  `bson:"rpe,omitempty"`
	Duration     *int      `bson:"duration,omitempty"`
	Distance     *float64  `bson:"distance,omitempty"`
	DistanceUnit *string   `bson:"distanceUnit,omitempty"`
	Tempo        *string   `bson:"tempo,omitempty"`
	RestTime     *int      `bson:"restTime,omitempty"`
	Notes        *string   `bson:"notes,omitempty"`
	Completed    bool      `bson:"completed"`
	CompletedAt  time.Time `bson:"completedAt"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type exerciseDocument struct {
	ID                   int64               `bson:"_id"`
	Name                 string              `bson:"name"`
	Description          *string             `bson:"description,omitempty"`
	Type                 domain.ExerciseType `bson:"type"`
	PrimaryMuscleGroup   domain.MuscleGroup  `bson:"primaryMuscleGroup"`
	SecondaryMuscleGroup *domain.MuscleGroup `bson:"secondaryMuscleGroup,omitempty"`
	Equipment            domain.Equipment    `bson:"equipment"`
	Instructions         *string             `bson:"instructions,omitempty"`
	VideoURL             *string             `bson:"videoUrl,omitempty"`
	IsCustom             bool                `bson:"isCustom"`
	CreatedBy            *string             `bson:"createdBy,omitempty"`
	CreatedAt            time.Time           `bson:"createdAt"`
	UpdatedAt            time.Time           `bson:"updatedAt"`
}

func newWorkoutDocument(w domain.Workout) workoutDocument {
	return workoutDocument{
		ID:          w.ID,
		UserID:      w.UserID,
		Name:        w.Name,
		Notes:       w.Notes,
		StartedAt:   w.StartedAt,
		CompletedAt: w.CompletedAt,
		Duration:    w.Duration,
		Exercises:   []workoutExerciseDocument{},
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func (d workoutDocument) toDomain() domain.Workout {
	return domain.Workout{
		ID:          d.ID,
		UserID:      d.UserID,
		Name:        d.Name,
		Notes:       d.Notes,
		StartedAt:   d.StartedAt.UTC(),
		CompletedAt: utcPtr(d.CompletedAt),
		Duration:    d.Duration,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func newWorkoutExerciseDocument(we domain.WorkoutExercise) workoutExerciseDocument {
	return workoutExerciseDocument{
		ID:               we.ID,
		ExerciseID:       we.ExerciseID,
		OrderIndex:       we.OrderIndex,
		Notes:            we.Notes,
		TargetSets:       we.TargetSets,
		TargetReps:       we.TargetReps,
		TargetWeight:     we.TargetWeight,
		TargetWeightUnit: we.TargetWeightUnit,
		Sets:             []setDocument{},
		CreatedAt:        we.CreatedAt,
		UpdatedAt:        we.UpdatedAt,
	}
}

func (d workoutExerciseDocument) toDomain(workoutID int64) domain.WorkoutExercise {
	return domain.WorkoutExercise{
		ID:               d.ID,
		WorkoutID:        workoutID,
		ExerciseID:       d.ExerciseID,
		OrderIndex:       d.OrderIndex,
		Notes:            d.Notes,
		TargetSets:       d.TargetSets,
		TargetReps:       d.TargetReps,
		TargetWeight:     d.TargetWeight,
		TargetWeightUnit: d.TargetWeightUnit,
		CreatedAt:        d.CreatedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
	}
}

func newSetDocument(s domain.Set) setDocument {
	return setDocument{
		ID:           s.ID,
		SetNumber:    s.SetNumber,
		Reps:         s.Reps,
		Weight:       s.Weight,
		WeightUnit:   s.WeightUnit,
		RIR:          s.RIR,
		RPE:          s.RPE,
		Duration:     s.Duration,
		Distance:     s.Distance,
		DistanceUnit: s.DistanceUnit,
		Tempo:        s.Tempo,
		RestTime:     s.RestTime,
		Notes:        s.Notes,
		Completed:    s.Completed,
		CompletedAt:  s.CompletedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (d setDocument) toDomain(workoutExerciseID int64) domain.Set {
	return domain.Set{
		ID:                d.ID,
		WorkoutExerciseID: workoutExerciseID,
		SetNumber:         d.SetNumber,
		Reps:              d.Reps,
		Weight:            d.Weight,
		WeightUnit:        d.WeightUnit,
		RIR:               d.RIR,
		RPE:               d.RPE,
		Duration:          d.Duration,
		Distance:          d.Distance,
		DistanceUnit:      d.DistanceUnit,
		Tempo:             d.Tempo,
		RestTime:          d.RestTime,
		Notes:             d.Notes,
		Completed:         d.Completed,
		CompletedAt:       d.CompletedAt.UTC(),
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
	}
}

func newExerciseDocument(e domain.Exercise) exerciseDocument {
	return exerciseDocument{
		ID:                   e.ID,
		Name:                 e.Name,
		Description:          e.Description,
		Type:                 e.Type,
		PrimaryMuscleGroup:   e.PrimaryMuscleGroup,
		SecondaryMuscleGroup: e.SecondaryMuscleGroup,
		Equipment:            e.Equipment,
		Instructions:         e.Instructions,
		VideoURL:             e.VideoURL,
		IsCustom:             e.IsCustom,
		CreatedBy:            e.CreatedBy,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func (d exerciseDocument) toDomain() domain.Exercise {
	return domain.Exercise{
		ID:                   d.ID,
		Name:                 d.Name,
		Description:          d.Description,
		Type:                 d.Type,
		PrimaryMuscleGroup:   d.PrimaryMuscleGroup,
		SecondaryMuscleGroup: d.SecondaryMuscleGroup,
		Equipment:            d.Equipment,
		Instructions:         d.Instructions,
		VideoURL:             d.VideoURL,
		IsCustom:             d.IsCustom,
		CreatedBy:            d.CreatedBy,
		CreatedAt:            d.CreatedAt.UTC(),
		UpdatedAt:            d.UpdatedAt.UTC(),
	}
}

// flatten turns embedded documents into the row shape repository.Assemble expects.
// Exercises missing from catalog keep only their id.
func flatten(docs []workoutDocument, catalog map[int64]domain.Exercise) ([]domain.Workout, []domain.WorkoutExerciseDetail, []domain.Set) {
	workouts := make([]domain.Workout, 0, len(docs))
	var exercises []domain.WorkoutExerciseDetail
	var sets []domain.Set
	for _, d := range docs {
		workouts = append(workouts, d.toDomain())
		for _, we := range d.Exercises {
			exercise, ok := catalog[we.ExerciseID]
			if !ok {
				exercise = domain.Exercise{ID: we.ExerciseID}
			}
			exercises = append(exercises, domain.WorkoutExerciseDetail{
				WorkoutExercise: we.toDomain(d.ID),
				Exercise:        exercise,
			})
			for _, s := range we.Sets {
				sets = append(sets, s.toDomain(we.ID))
			}
		}
	}
	return workouts, exercises, sets
}

// exerciseIDs lists the distinct catalog ids referenced by docs.
func exerciseIDs(docs []workoutDocument) []int64 {
	seen := map[int64]bool{}
	var ids []int64
	for _, d := range docs {
		for _, we := range d.Exercises {
			if !seen[we.ExerciseID] {
				seen[we.ExerciseID] = true
				ids = append(ids, we.ExerciseID)
			}
		}
	}
	return ids
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
