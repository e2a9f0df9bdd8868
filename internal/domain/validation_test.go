package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validPlanExercise() PlanExercise {
	return PlanExercise{
		ID:       primitive.NewObjectID(),
		DayID:    primitive.NewObjectID(),
		Name:     "Bench Press",
		Category: CategoryStrength,
		Reps:     Float64Ptr(8),
		Weight:   Float64Ptr(80),
	}
}

func TestValidatePlanExercise_Valid(t *testing.T) {
	res := ValidatePlanExercise(validPlanExercise())
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestValidatePlanExercise_AllMetricsAbsentIsValid(t *testing.T) {
	// A template row may be entirely incomplete; only the name and category
	// matter. Numbers get filled in during execution.
	ex := PlanExercise{Name: "Squat", Category: CategoryCardio}
	res := ValidatePlanExercise(ex)
	assert.True(t, res.IsValid)
}

func TestValidatePlanExercise_EmptyName(t *testing.T) {
	tests := []struct {
		name     string
		exercise string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"tabs and newlines", "\t\n "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := validPlanExercise()
			ex.Name = tt.exercise
			res := ValidatePlanExercise(ex)
			assert.False(t, res.IsValid)
			assert.Contains(t, res.Errors, "exercise name must not be empty")
		})
	}
}

func TestValidatePlanExercise_UnknownCategory(t *testing.T) {
	ex := validPlanExercise()
	ex.Category = "yoga"
	res := ValidatePlanExercise(ex)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "category must be 'strength' or 'cardio'")
}

func TestValidatePlanExercise_MetricBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PlanExercise)
		wantErr string
	}{
		{"zero reps", func(e *PlanExercise) { e.Reps = Float64Ptr(0) }, "reps must be > 0"},
		{"negative weight", func(e *PlanExercise) { e.Weight = Float64Ptr(-5) }, "weight must be > 0"},
		{"NaN duration", func(e *PlanExercise) { e.Duration = Float64Ptr(math.NaN()) }, "duration must be > 0"},
		{"zero distance", func(e *PlanExercise) { e.Distance = Float64Ptr(0) }, "distance must be > 0"},
		{"NaN reps", func(e *PlanExercise) { e.Reps = Float64Ptr(math.NaN()) }, "reps must be > 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := validPlanExercise()
			tt.mutate(&ex)
			res := ValidatePlanExercise(ex)
			assert.False(t, res.IsValid)
			assert.Contains(t, res.Errors, tt.wantErr)
		})
	}
}

func TestValidatePlanExercise_CollectsAllViolations(t *testing.T) {
	// Callers render multi-field form errors, so every violation has to be
	// reported in one pass, in declaration order.
	ex := PlanExercise{
		Name:     " ",
		Category: "pilates",
		Reps:     Float64Ptr(-1),
		Weight:   Float64Ptr(0),
		Duration: Float64Ptr(math.NaN()),
		Distance: Float64Ptr(-3),
	}
	res := ValidatePlanExercise(ex)
	require.False(t, res.IsValid)
	assert.Equal(t, []string{
		"exercise name must not be empty",
		"category must be 'strength' or 'cardio'",
		"reps must be > 0",
		"weight must be > 0",
		"duration must be > 0",
		"distance must be > 0",
	}, res.Errors)
}

func TestValidatePlanExercise_Idempotent(t *testing.T) {
	ex := validPlanExercise()
	ex.Reps = Float64Ptr(0)
	first := ValidatePlanExercise(ex)
	second := ValidatePlanExercise(ex)
	assert.Equal(t, first, second)
}

func TestValidateWorkoutPlanDay_RestDayNeverRequiresExercises(t *testing.T) {
	day := WorkoutPlanDay{
		Weekday:   "Monday",
		IsRestDay: true,
	}
	res := ValidateWorkoutPlanDay(day)
	assert.True(t, res.IsValid)
}

func TestValidateWorkoutPlanDay_ActiveDayNeedsExercises(t *testing.T) {
	day := WorkoutPlanDay{
		Weekday:   "Tuesday",
		IsRestDay: false,
	}
	res := ValidateWorkoutPlanDay(day)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "a non-rest day needs at least one exercise")
}

func TestValidateWorkoutPlanDay_EmptyWeekday(t *testing.T) {
	day := WorkoutPlanDay{
		Weekday:   " ",
		IsRestDay: true,
	}
	res := ValidateWorkoutPlanDay(day)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "weekday must not be empty")
}

func TestValidateWorkoutPlanDay_PrefixesExercisePosition(t *testing.T) {
	day := WorkoutPlanDay{
		Weekday: "Wednesday",
		Exercises: []PlanExercise{
			validPlanExercise(),
			{Name: "", Category: CategoryStrength},
		},
	}
	res := ValidateWorkoutPlanDay(day)
	require.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "Exercise #2: exercise name must not be empty")
}

func validPlan() WorkoutPlan {
	return WorkoutPlan{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Name:   "Push Pull Legs",
		Days: []WorkoutPlanDay{
			{
				Weekday:   "Monday",
				Exercises: []PlanExercise{validPlanExercise()},
			},
		},
	}
}

func TestValidateWorkoutPlan_Valid(t *testing.T) {
	res := ValidateWorkoutPlan(validPlan())
	assert.True(t, res.IsValid)
}

func TestValidateWorkoutPlan_NameTooShort(t *testing.T) {
	tests := []string{"", "ab", "  ab  ", " x "}
	for _, name := range tests {
		plan := validPlan()
		plan.Name = name
		res := ValidateWorkoutPlan(plan)
		assert.False(t, res.IsValid, "name %q should be rejected", name)
		assert.Contains(t, res.Errors, "plan name must have at least 3 characters")
	}
}

func TestValidateWorkoutPlan_MissingUser(t *testing.T) {
	plan := validPlan()
	plan.UserID = primitive.NilObjectID
	res := ValidateWorkoutPlan(plan)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "plan needs a user id")
}

func TestValidateWorkoutPlan_NeedsAtLeastOneDay(t *testing.T) {
	plan := validPlan()
	plan.Days = nil
	res := ValidateWorkoutPlan(plan)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "plan needs at least one day")
}

func TestValidateWorkoutPlan_NestedErrorPropagation(t *testing.T) {
	// An invalid exercise in an invalid day must surface doubly prefixed:
	// "Day #1: Exercise #1: ...".
	plan := validPlan()
	plan.Days = []WorkoutPlanDay{
		{
			Weekday: "Friday",
			Exercises: []PlanExercise{
				{Name: "", Category: CategoryStrength},
			},
		},
	}
	res := ValidateWorkoutPlan(plan)
	require.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "Day #1: Exercise #1: exercise name must not be empty")
}

func TestValidateWorkoutExercise_Strength(t *testing.T) {
	tests := []struct {
		name     string
		exercise StrengthWorkoutExercise
		valid    bool
		wantErr  string
	}{
		{
			name:     "complete",
			exercise: StrengthWorkoutExercise{Name: "Squat", Reps: 5, Weight: 100},
			valid:    true,
		},
		{
			name:     "missing reps",
			exercise: StrengthWorkoutExercise{Name: "Squat", Weight: 50},
			valid:    false,
			wantErr:  "a strength exercise needs reps > 0",
		},
		{
			name:     "missing weight",
			exercise: StrengthWorkoutExercise{Name: "Squat", Reps: 5},
			valid:    false,
			wantErr:  "a strength exercise needs weight > 0",
		},
		{
			name:     "NaN weight",
			exercise: StrengthWorkoutExercise{Name: "Squat", Reps: 5, Weight: math.NaN()},
			valid:    false,
			wantErr:  "a strength exercise needs weight > 0",
		},
		{
			name:     "optional duration must be positive when present",
			exercise: StrengthWorkoutExercise{Name: "Squat", Reps: 5, Weight: 100, Duration: Float64Ptr(0)},
			valid:    false,
			wantErr:  "duration must be > 0",
		},
		{
			name:     "optional metrics present and positive",
			exercise: StrengthWorkoutExercise{Name: "Squat", Reps: 5, Weight: 100, Duration: Float64Ptr(30), Distance: Float64Ptr(1)},
			valid:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateWorkoutExercise(tt.exercise)
			assert.Equal(t, tt.valid, res.IsValid)
			if tt.wantErr != "" {
				assert.Contains(t, res.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidateWorkoutExercise_Cardio(t *testing.T) {
	tests := []struct {
		name     string
		exercise CardioWorkoutExercise
		valid    bool
		wantErr  string
	}{
		{
			name:     "complete run",
			exercise: CardioWorkoutExercise{Name: "Run", Duration: 30, Distance: 5},
			valid:    true,
		},
		{
			name:     "missing duration",
			exercise: CardioWorkoutExercise{Name: "Run", Distance: 5},
			valid:    false,
			wantErr:  "a cardio exercise needs duration > 0",
		},
		{
			name:     "missing distance",
			exercise: CardioWorkoutExercise{Name: "Run", Duration: 30},
			valid:    false,
			wantErr:  "a cardio exercise needs distance > 0",
		},
		{
			name:     "optional reps must be positive when present",
			exercise: CardioWorkoutExercise{Name: "Run", Duration: 30, Distance: 5, Reps: Float64Ptr(-1)},
			valid:    false,
			wantErr:  "reps must be > 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateWorkoutExercise(tt.exercise)
			assert.Equal(t, tt.valid, res.IsValid)
			if tt.wantErr != "" {
				assert.Contains(t, res.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidateWorkoutExercise_EmptyName(t *testing.T) {
	res := ValidateWorkoutExercise(StrengthWorkoutExercise{Reps: 5, Weight: 100})
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "exercise name must not be empty")
}

func validWorkout() Workout {
	return Workout{
		UserID:   primitive.NewObjectID(),
		Username: "lifter",
		Exercises: []WorkoutExercise{
			StrengthWorkoutExercise{Name: "Deadlift", Reps: 3, Weight: 140},
		},
		Completed: true,
	}
}

func TestValidateWorkout_Valid(t *testing.T) {
	res := ValidateWorkout(validWorkout())
	assert.True(t, res.IsValid)
}

func TestValidateWorkout_NoExercises(t *testing.T) {
	// Zero exercises is invalid regardless of every other field being fine.
	w := validWorkout()
	w.Exercises = nil
	res := ValidateWorkout(w)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "workout needs at least one exercise")
}

func TestValidateWorkout_MissingIdentity(t *testing.T) {
	w := validWorkout()
	w.UserID = primitive.NilObjectID
	w.Username = "  "
	res := ValidateWorkout(w)
	require.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "workout needs a user id")
	assert.Contains(t, res.Errors, "workout needs a username")
}

func TestValidateWorkout_PrefixesExercisePosition(t *testing.T) {
	w := validWorkout()
	w.Exercises = append(w.Exercises, CardioWorkoutExercise{Name: "Row"})
	res := ValidateWorkout(w)
	require.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "Exercise #2: a cardio exercise needs duration > 0")
	assert.Contains(t, res.Errors, "Exercise #2: a cardio exercise needs distance > 0")
}

func TestValidateWorkout_Idempotent(t *testing.T) {
	w := validWorkout()
	w.Exercises = append(w.Exercises, CardioWorkoutExercise{Name: "Row"})
	first := ValidateWorkout(w)
	second := ValidateWorkout(w)
	assert.Equal(t, first, second)
}
