package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/workout-log/internal/daywindow"
	"alcyxob/workout-log/internal/domain"
)

type fakeStorage struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStorage) PutObject(_ context.Context, key, contentType string, body io.Reader) error {
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	return "https://files.example.test/" + key + "?expires=" + expires.String(), nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func seededExportStore(t *testing.T) testStore {
	t.Helper()
	store := newTestStore(t)
	squat := store.catalogExercise(t, "Back Squat")
	store.workoutWithSets(t, alice.UserID, "Leg Day", time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC), squat.ID, []int{5, 5, 3}, 225)
	store.workoutWithSets(t, alice.UserID, "Outside", time.Date(2024, 1, 20, 15, 0, 0, 0, time.UTC), squat.ID, []int{5}, 135)
	return store
}

func TestBuildExport(t *testing.T) {
	store := seededExportStore(t)
	svc := NewExportService(store.workouts, store.exercises, nil, 0)

	doc, err := svc.Build(context.Background(), alice, ExportRequest{From: "2024-01-14", To: "2024-01-16", Timezone: "UTC"})
	require.NoError(t, err)
	require.Len(t, doc.Workouts, 1)
	w := doc.Workouts[0]
	assert.Equal(t, "Leg Day", *w.Name)
	require.Len(t, w.Exercises, 1)
	assert.Equal(t, "Back Squat", w.Exercises[0].Exercise)
	assert.Len(t, w.Exercises[0].Sets, 3)
	assert.Equal(t, "lbs", *w.Exercises[0].Sets[0].WeightUnit)

	empty, err := svc.Build(context.Background(), bob, ExportRequest{From: "2024-01-14", To: "2024-01-16", Timezone: "UTC"})
	require.NoError(t, err)
	assert.NotNil(t, empty.Workouts)
	assert.Empty(t, empty.Workouts)
}

func TestBuildExportRejectsBadRequests(t *testing.T) {
	store := newTestStore(t)
	svc := NewExportService(store.workouts, store.exercises, nil, 0)
	ctx := context.Background()

	_, err := svc.Build(ctx, anonymous, ExportRequest{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Build(ctx, alice, ExportRequest{From: "2024-13-01", To: "2024-01-02", Timezone: "UTC"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Build(ctx, alice, ExportRequest{From: "2024-01-01", To: "2024-01-02", Timezone: "UTC", Format: "xml"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Build(ctx, alice, ExportRequest{From: "2024-01-05", To: "2024-01-02", Timezone: "UTC"})
	assert.ErrorIs(t, err, daywindow.ErrInvalidDate)

	_, err = svc.Build(ctx, alice, ExportRequest{From: "2024-01-01", To: "2024-01-02", Timezone: "Nowhere/Land"})
	assert.ErrorIs(t, err, daywindow.ErrInvalidTimezone)
}

func TestPublishExport(t *testing.T) {
	store := seededExportStore(t)
	files := newFakeStorage()
	svc := NewExportService(store.workouts, store.exercises, files, 10*time.Minute)
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	svc.(*exportService).now = func() time.Time { return now }

	result, err := svc.Publish(context.Background(), alice, ExportRequest{From: "2024-01-01", To: "2024-01-31", Timezone: "UTC", Format: FormatYAML})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Key, "exports/user-alice/"))
	assert.True(t, strings.HasSuffix(result.Key, ".yaml"))
	assert.Equal(t, now.Add(10*time.Minute), result.ExpiresAt)
	assert.Contains(t, result.URL, result.Key)
	assert.Equal(t, "application/yaml", files.types[result.Key])

	doc, err := Decode(files.objects[result.Key], FormatYAML)
	require.NoError(t, err)
	assert.Len(t, doc.Workouts, 2)
}

func TestPublishExportFailures(t *testing.T) {
	store := seededExportStore(t)
	req := ExportRequest{From: "2024-01-01", To: "2024-01-31", Timezone: "UTC"}

	_, err := NewExportService(store.workouts, store.exercises, nil, 0).Publish(context.Background(), alice, req)
	assert.ErrorIs(t, err, ErrExportUnavailable)

	files := newFakeStorage()
	files.putErr = errors.New("bucket offline")
	_, err = NewExportService(store.workouts, store.exercises, files, 0).Publish(context.Background(), alice, req)
	assert.ErrorContains(t, err, "bucket offline")
}

func TestEncodeDecode(t *testing.T) {
	completed := time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC)
	doc := &ExportDocument{
		Version:    exportVersion,
		From:       "2024-01-15",
		To:         "2024-01-15",
		Timezone:   "UTC",
		ExportedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Workouts: []ExportedWorkout{{
			Name:        ptr("Leg Day"),
			StartedAt:   time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC),
			CompletedAt: &completed,
			Duration:    ptr(3600),
			Exercises: []ExportedExercise{{
				Exercise:   "Back Squat",
				OrderIndex: 1,
				Sets:       []ExportedSet{{SetNumber: 1, Reps: ptr(5), Weight: ptr(225.5), RPE: ptr(8.5), Completed: true, CompletedAt: completed}},
			}},
		}},
	}

	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			body, _, err := Encode(doc, format)
			require.NoError(t, err)

			decoded, err := Decode(body, "")
			require.NoError(t, err)
			assert.Equal(t, doc, decoded)
		})
	}

	_, _, err := Encode(doc, "csv")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = Decode([]byte(`{"version": 99}`), FormatJSON)
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)

	_, err = Decode([]byte(`version: [`), FormatYAML)
	assert.True(t, IsImportError(err))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("out/Export.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.yaml"))
	assert.Equal(t, "", FormatFromPath("a.txt"))
}

func TestImportRoundTrip(t *testing.T) {
	store := seededExportStore(t)
	svc := NewExportService(store.workouts, store.exercises, nil, 0)
	ctx := context.Background()
	req := ExportRequest{From: "2024-01-01", To: "2024-01-31", Timezone: "UTC"}

	doc, err := svc.Build(ctx, alice, req)
	require.NoError(t, err)
	doc.Workouts[0].Exercises = append(doc.Workouts[0].Exercises, ExportedExercise{
		Exercise:           "Sled Push",
		PrimaryMuscleGroup: domain.MuscleFullBody,
		OrderIndex:         2,
		Sets:               []ExportedSet{{SetNumber: 1, Distance: ptr(20.0), DistanceUnit: ptr("m"), Completed: true, CompletedAt: doc.Workouts[0].StartedAt}},
	})

	result, err := svc.Import(ctx, bob, doc)
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Workouts: 2, WorkoutExercises: 3, Sets: 5, CreatedExercises: 1}, result)

	imported, err := svc.Build(ctx, bob, req)
	require.NoError(t, err)
	require.Len(t, imported.Workouts, 2)
	assert.Equal(t, doc.Workouts[1].Exercises, imported.Workouts[1].Exercises)
	assert.Equal(t, "Sled Push", imported.Workouts[0].Exercises[1].Exercise)

	// The created exercise is bob's custom entry, not part of alice's catalog.
	aliceList, err := NewExerciseService(store.exercises).ListExercises(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, aliceList, 1)
}

func TestImportStopsAtInvalidRecord(t *testing.T) {
	store := newTestStore(t)
	store.catalogExercise(t, "Back Squat")
	svc := NewExportService(store.workouts, store.exercises, nil, 0)
	ctx := context.Background()
	started := time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		mod  func(*ExportedWorkout)
		want error
	}{
		{"rir out of range", func(w *ExportedWorkout) { w.Exercises[0].Sets[0].RIR = ptr(11) }, domain.ErrInvalidRecord},
		{"rpe off the half steps", func(w *ExportedWorkout) { w.Exercises[0].Sets[0].RPE = ptr(7.3) }, domain.ErrInvalidRecord},
		{"negative set number", func(w *ExportedWorkout) { w.Exercises[0].Sets[0].SetNumber = -1 }, domain.ErrInvalidRecord},
		{"negative order index", func(w *ExportedWorkout) { w.Exercises[0].OrderIndex = -1 }, domain.ErrInvalidRecord},
		{"completed before start", func(w *ExportedWorkout) { before := started.Add(-time.Hour); w.CompletedAt = &before }, domain.ErrInvalidRecord},
		{"name too long", func(w *ExportedWorkout) { w.Name = ptr(strings.Repeat("a", 201)) }, ErrValidationFailed},
		{"notes too long", func(w *ExportedWorkout) { w.Notes = ptr(strings.Repeat("n", 1001)) }, ErrValidationFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ExportedWorkout{
				StartedAt: started,
				Exercises: []ExportedExercise{{
					Exercise:   "Back Squat",
					OrderIndex: 1,
					Sets:       []ExportedSet{{SetNumber: 1, Reps: ptr(5), Completed: true, CompletedAt: started}},
				}},
			}
			tc.mod(&w)
			result, err := svc.Import(ctx, alice, &ExportDocument{Version: exportVersion, Workouts: []ExportedWorkout{w}})
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, IsImportError(err))
			assert.Zero(t, result.Workouts)

			stored, err := store.workouts.ListByUserBetween(ctx, alice.UserID, started.Add(-time.Hour), started.Add(time.Hour))
			require.NoError(t, err)
			assert.Empty(t, stored)
		})
	}
}

func TestImportAppliesRecordDefaults(t *testing.T) {
	store := newTestStore(t)
	store.catalogExercise(t, "Back Squat")
	svc := NewExportService(store.workouts, store.exercises, nil, 0)
	now := time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC)
	svc.(*exportService).now = func() time.Time { return now }
	ctx := context.Background()
	started := time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC)

	doc := &ExportDocument{Version: exportVersion, Workouts: []ExportedWorkout{{
		Name:      ptr("Sparse"),
		StartedAt: started,
		Exercises: []ExportedExercise{{
			Exercise: "Back Squat",
			Sets:     []ExportedSet{{Reps: ptr(5), Completed: true}},
		}},
	}}}
	result, err := svc.Import(ctx, alice, doc)
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Workouts: 1, WorkoutExercises: 1, Sets: 1}, result)

	stored, err := store.workouts.ListByUserBetween(ctx, alice.UserID, started, started.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Len(t, stored[0].Exercises, 1)
	assert.Equal(t, 1, stored[0].Exercises[0].OrderIndex)
	require.Len(t, stored[0].Exercises[0].Sets, 1)
	set := stored[0].Exercises[0].Sets[0]
	assert.Equal(t, 1, set.SetNumber)
	assert.True(t, now.Equal(set.CompletedAt), set.CompletedAt)
}

func TestImportRollsBackFailedWorkout(t *testing.T) {
	store := newTestStore(t)
	store.catalogExercise(t, "Back Squat")
	svc := NewExportService(store.workouts, store.exercises, nil, 0)
	ctx := context.Background()
	first := time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)

	doc := &ExportDocument{Version: exportVersion, Workouts: []ExportedWorkout{
		{
			Name:      ptr("Kept"),
			StartedAt: first,
			Exercises: []ExportedExercise{{Exercise: "Back Squat", OrderIndex: 1, Sets: []ExportedSet{{SetNumber: 1, Reps: ptr(5), CompletedAt: first}}}},
		},
		{
			Name:      ptr("Dropped"),
			StartedAt: second,
			Exercises: []ExportedExercise{
				{Exercise: "Back Squat", OrderIndex: 1, Sets: []ExportedSet{{SetNumber: 1, Reps: ptr(5), CompletedAt: second}}},
				{Exercise: "Sled Push", PrimaryMuscleGroup: domain.MuscleFullBody, OrderIndex: 2, Sets: []ExportedSet{
					{SetNumber: 1, CompletedAt: second},
					{SetNumber: 2, RIR: ptr(12), CompletedAt: second},
				}},
			},
		},
	}}

	result, err := svc.Import(ctx, alice, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
	assert.Contains(t, err.Error(), "workout 2: exercise 2 set 2")
	assert.Equal(t, &ImportResult{Workouts: 1, WorkoutExercises: 1, Sets: 1, CreatedExercises: 1}, result)

	stored, err := store.workouts.ListByUserBetween(ctx, alice.UserID, first, second.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Kept", *stored[0].Name)

	// Custom exercises created along the way stay in the user's list.
	list, err := NewExerciseService(store.exercises).ListExercises(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
