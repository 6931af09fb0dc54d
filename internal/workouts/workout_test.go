package workouts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacic/fitlog/internal/validation"
)

func TestWorkout_Validate(t *testing.T) {
	validWorkout := Workout{
		Exercises: []Exercise{
			{
				Name: "Bench Press",
				Sets: []Set{
					{Reps: 10, Weight: 60},
					{Reps: 8, Weight: 65},
				},
			},
		},
	}
	assert.NoError(t, validWorkout.Validate())

	noExercises := Workout{Notes: "empty one"}
	err := noExercises.Validate()
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
	assert.Equal(t, "add at least one exercise", err.Error())

	noSets := Workout{
		Exercises: []Exercise{
			{Name: "Squat", Sets: []Set{{Reps: 5, Weight: 100}}},
			{Name: "Deadlift"},
		},
	}
	err = noSets.Validate()
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
	assert.Equal(t, `exercise "Deadlift" must have at least one set`, err.Error())

	noSetsUnnamed := Workout{
		Exercises: []Exercise{{}},
	}
	err = noSetsUnnamed.Validate()
	require.Error(t, err)
	assert.Equal(t, `exercise "Unnamed" must have at least one set`, err.Error())

	zeroReps := Workout{
		Exercises: []Exercise{
			{Name: "Curl", Sets: []Set{{Reps: 0, Weight: 20}}},
		},
	}
	err = zeroReps.Validate()
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	zeroWeight := Workout{
		Exercises: []Exercise{
			{Name: "Curl", Sets: []Set{{Reps: 10, Weight: 0}}},
		},
	}
	err = zeroWeight.Validate()
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	negativeWeight := Workout{
		Exercises: []Exercise{
			{Name: "Curl", Sets: []Set{{Reps: 10, Weight: -5}}},
		},
	}
	assert.Error(t, negativeWeight.Validate())
}

func TestWorkout_DisplayDate(t *testing.T) {
	w := Workout{
		CreatedAt: time.Date(2025, time.March, 3, 18, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "Monday, 3 March 2025", w.DisplayDate())
}

func TestExercise_DisplayName(t *testing.T) {
	assert.Equal(t, "Bench Press", Exercise{Name: "Bench Press"}.DisplayName())
	assert.Equal(t, "Unnamed", Exercise{}.DisplayName())
}
