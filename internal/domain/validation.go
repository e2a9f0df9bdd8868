package domain

import (
	"fmt"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidationResult is the outcome of validating a single entity and,
// recursively, its children. It is a normal return value: validation never
// panics or returns an error for well-typed input. Errors are human-readable
// messages in declaration order, intended to be rendered as a flat list on
// the editing surface; callers get every violation, not just the first.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

func toResult(errors []string) ValidationResult {
	if len(errors) == 0 {
		return ValidationResult{IsValid: true, Errors: []string{}}
	}
	return ValidationResult{IsValid: false, Errors: errors}
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// ensurePositive appends an error for an optional metric that is present but
// not a finite number > 0. Absence (nil) is never an error here; that is a
// different condition from zero.
func ensurePositive(value *float64, field string, errors []string) []string {
	if value == nil {
		return errors
	}
	if math.IsNaN(*value) || *value <= 0 {
		return append(errors, fmt.Sprintf("%s must be > 0", field))
	}
	return errors
}

// ensureRequiredPositive appends an error for a mandatory metric that is
// missing, NaN, or not > 0. Used only for the category-required fields of
// recorded workout exercises.
func ensureRequiredPositive(value float64, message string, errors []string) []string {
	if math.IsNaN(value) || value <= 0 {
		return append(errors, message)
	}
	return errors
}

func validateCategory(category ExerciseCategory, errors []string) []string {
	// The type system should prevent unknown categories, but the check
	// stays authoritative for values decoded from persistence or JSON.
	if !category.IsValid() {
		return append(errors, "category must be 'strength' or 'cardio'")
	}
	return errors
}

// ValidatePlanExercise checks a single template exercise row.
// Order: name, category, reps, weight, duration, distance.
func ValidatePlanExercise(exercise PlanExercise) ValidationResult {
	var errors []string

	if isBlank(exercise.Name) {
		errors = append(errors, "exercise name must not be empty")
	}

	errors = validateCategory(exercise.Category, errors)

	errors = ensurePositive(exercise.Reps, "reps", errors)
	errors = ensurePositive(exercise.Weight, "weight", errors)
	errors = ensurePositive(exercise.Duration, "duration", errors)
	errors = ensurePositive(exercise.Distance, "distance", errors)

	return toResult(errors)
}

// ValidateWorkoutPlanDay checks one weekday slot. A rest day never requires
// exercises; a non-rest day needs at least one, and every contained exercise
// must independently pass ValidatePlanExercise. Nested errors are prefixed
// with the exercise's 1-based position for traceability in the flat list.
func ValidateWorkoutPlanDay(day WorkoutPlanDay) ValidationResult {
	var errors []string

	if isBlank(day.Weekday) {
		errors = append(errors, "weekday must not be empty")
	}

	if !day.IsRestDay && len(day.Exercises) == 0 {
		errors = append(errors, "a non-rest day needs at least one exercise")
	}

	for i, exercise := range day.Exercises {
		if res := ValidatePlanExercise(exercise); !res.IsValid {
			for _, e := range res.Errors {
				errors = append(errors, fmt.Sprintf("Exercise #%d: %s", i+1, e))
			}
		}
	}

	return toResult(errors)
}

// ValidateWorkoutPlan checks a whole plan: name of at least 3 trimmed
// characters, an owning user, at least one day, and every day valid.
// Name uniqueness is a persistence concern checked at creation time, not here.
func ValidateWorkoutPlan(plan WorkoutPlan) ValidationResult {
	var errors []string

	if len(strings.TrimSpace(plan.Name)) < 3 {
		errors = append(errors, "plan name must have at least 3 characters")
	}

	if plan.UserID == primitive.NilObjectID {
		errors = append(errors, "plan needs a user id")
	}

	if len(plan.Days) == 0 {
		errors = append(errors, "plan needs at least one day")
	}

	for i, day := range plan.Days {
		if res := ValidateWorkoutPlanDay(day); !res.IsValid {
			for _, e := range res.Errors {
				errors = append(errors, fmt.Sprintf("Day #%d: %s", i+1, e))
			}
		}
	}

	return toResult(errors)
}

// ValidateWorkoutExercise checks a recorded exercise. This is the one place
// where the category changes which fields are required rather than merely
// which fields are displayed: strength demands reps and weight, cardio
// demands duration and distance. The other category's fields stay optional
// but must be > 0 when present.
func ValidateWorkoutExercise(exercise WorkoutExercise) ValidationResult {
	var errors []string

	if isBlank(exercise.ExerciseName()) {
		errors = append(errors, "exercise name must not be empty")
	}

	switch e := exercise.(type) {
	case StrengthWorkoutExercise:
		errors = ensureRequiredPositive(e.Reps, "a strength exercise needs reps > 0", errors)
		errors = ensureRequiredPositive(e.Weight, "a strength exercise needs weight > 0", errors)
		errors = ensurePositive(e.Duration, "duration", errors)
		errors = ensurePositive(e.Distance, "distance", errors)
	case CardioWorkoutExercise:
		errors = ensureRequiredPositive(e.Duration, "a cardio exercise needs duration > 0", errors)
		errors = ensureRequiredPositive(e.Distance, "a cardio exercise needs distance > 0", errors)
		errors = ensurePositive(e.Reps, "reps", errors)
		errors = ensurePositive(e.Weight, "weight", errors)
	default:
		errors = append(errors, "category must be 'strength' or 'cardio'")
	}

	return toResult(errors)
}

// ValidateWorkout checks a completed session as a whole: owning user,
// non-empty username snapshot, at least one exercise, every exercise valid
// for its category. Called once, at session completion, before the single
// persist.
func ValidateWorkout(workout Workout) ValidationResult {
	var errors []string

	if workout.UserID == primitive.NilObjectID {
		errors = append(errors, "workout needs a user id")
	}
	if isBlank(workout.Username) {
		errors = append(errors, "workout needs a username")
	}
	if len(workout.Exercises) == 0 {
		errors = append(errors, "workout needs at least one exercise")
	}

	for i, exercise := range workout.Exercises {
		if res := ValidateWorkoutExercise(exercise); !res.IsValid {
			for _, e := range res.Errors {
				errors = append(errors, fmt.Sprintf("Exercise #%d: %s", i+1, e))
			}
		}
	}

	return toResult(errors)
}
