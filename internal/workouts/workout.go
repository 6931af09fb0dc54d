package workouts

import (
	"time"

	"github.com/mkovacic/fitlog/internal/validation"
)

// DisplayDateLayout is the locale form the web client shows for
// workout and progress dates (e.g. "Monday, 2 January 2006"). The
// canonical, sortable representation is always the CreatedAt instant;
// the display string is derived from it at the response boundary.
const DisplayDateLayout = "Monday, 2 January 2006"

type Set struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type Exercise struct {
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

// DisplayName falls back to "Unnamed" in error messages only; an empty
// name does not invalidate the exercise.
func (e Exercise) DisplayName() string {
	if e.Name == "" {
		return "Unnamed"
	}
	return e.Name
}

type Workout struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	Date      string     `json:"date"`
	Exercises []Exercise `json:"exercises"`
	Notes     string     `json:"notes,omitempty"`
}

// Validate checks the workout against the shared input rules,
// reporting the first violated rule only. A workout that fails
// validation is never written to the store.
func (w *Workout) Validate() error {
	if len(w.Exercises) == 0 {
		return validation.Errorf("add at least one exercise")
	}

	for _, exercise := range w.Exercises {
		if len(exercise.Sets) == 0 {
			return validation.Errorf("exercise %q must have at least one set", exercise.DisplayName())
		}
		for _, set := range exercise.Sets {
			if err := validation.PositiveInt("reps", set.Reps); err != nil {
				return err
			}
			if err := validation.PositiveFloat("weight", set.Weight); err != nil {
				return err
			}
		}
	}

	return nil
}

// DisplayDate derives the locale form of the creation instant.
func (w *Workout) DisplayDate() string {
	return w.CreatedAt.Format(DisplayDateLayout)
}
