package workouts

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mkovacic/fitlog/internal/docstore"
	"github.com/mkovacic/fitlog/internal/telemetry/tracing"
)

type Repo struct {
	store docstore.Store
}

func NewRepo(store docstore.Store) *Repo {
	return &Repo{
		store: store,
	}
}

func collection(userID string) string {
	return "users/" + userID + "/workouts"
}

// Add validates and persists a new workout for the given user. The
// creation instant is stamped here; validation failures short-circuit
// before any store call.
func (r *Repo) Add(ctx context.Context, userID string, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := workout.Validate(); err != nil {
		return nil, err
	}

	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = time.Now()
	}

	id, err := r.store.Add(ctx, collection(userID), workoutDoc(workout))
	if err != nil {
		return nil, fmt.Errorf("store workout: %w", err)
	}

	span.SetAttributes(attribute.String("workout.id", id))

	workout.ID = id
	workout.Date = workout.DisplayDate()
	return &workout, nil
}

// ListAll returns all workouts of the user, newest first.
func (r *Repo) ListAll(ctx context.Context, userID string) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.list(ctx, userID, 0)
}

// ListRecent returns up to limit workouts, newest first; the dashboard
// summary uses limit=3.
func (r *Repo) ListRecent(ctx context.Context, userID string, limit int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listRecent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	return r.list(ctx, userID, limit)
}

// Delete removes the workout; deleting an id that is not present is a
// no-op. The caller reconciles its cached view by dropping the id on
// success.
func (r *Repo) Delete(ctx context.Context, userID, workoutID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))

	if err := r.store.Delete(ctx, collection(userID)+"/"+workoutID); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

func (r *Repo) list(ctx context.Context, userID string, limit int) ([]Workout, error) {
	docs, err := r.store.Query(ctx, collection(userID), docstore.Query{
		OrderBy:    "createdAt",
		Descending: true,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}

	result := make([]Workout, 0, len(docs))
	for _, doc := range docs {
		result = append(result, workoutFromDoc(doc))
	}
	return result, nil
}

func workoutDoc(w Workout) map[string]any {
	exercises := make([]any, 0, len(w.Exercises))
	for _, exercise := range w.Exercises {
		sets := make([]any, 0, len(exercise.Sets))
		for _, set := range exercise.Sets {
			sets = append(sets, map[string]any{
				"reps":   set.Reps,
				"weight": set.Weight,
			})
		}
		exercises = append(exercises, map[string]any{
			"name": exercise.Name,
			"sets": sets,
		})
	}

	return map[string]any{
		"createdAt": w.CreatedAt,
		"exercises": exercises,
		"notes":     w.Notes,
	}
}

func workoutFromDoc(doc docstore.Document) Workout {
	workout := Workout{
		ID:        doc.ID,
		CreatedAt: docstore.Time(doc.Data["createdAt"]),
		Notes:     docstore.String(doc.Data["notes"]),
	}
	workout.Date = workout.DisplayDate()

	rawExercises, _ := doc.Data["exercises"].([]any)
	for _, rawExercise := range rawExercises {
		exerciseData, ok := rawExercise.(map[string]any)
		if !ok {
			continue
		}
		exercise := Exercise{
			Name: docstore.String(exerciseData["name"]),
		}
		rawSets, _ := exerciseData["sets"].([]any)
		for _, rawSet := range rawSets {
			setData, ok := rawSet.(map[string]any)
			if !ok {
				continue
			}
			exercise.Sets = append(exercise.Sets, Set{
				Reps:   docstore.Int(setData["reps"]),
				Weight: docstore.Float(setData["weight"]),
			})
		}
		workout.Exercises = append(workout.Exercises, exercise)
	}

	return workout
}
