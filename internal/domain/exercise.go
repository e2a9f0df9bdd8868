package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCategory type to distinguish between the two kinds of exercises
type ExerciseCategory string

// Define constants for categories
const (
	CategoryStrength ExerciseCategory = "strength"
	CategoryCardio   ExerciseCategory = "cardio"
)

// IsValid reports whether the category is one of the two known values.
func (c ExerciseCategory) IsValid() bool {
	return c == CategoryStrength || c == CategoryCardio
}

// PlanExercise is a single prescribed movement within a plan day.
// It is a template row: all four metric fields are optional here, because
// the user may fill the numbers in later during a live session. Only the
// recorded WorkoutExercise variants enforce category-specific requiredness.
type PlanExercise struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayID    primitive.ObjectID `bson:"dayId" json:"dayId"` // Link back to the owning plan day
	Name     string             `bson:"name" json:"name"`
	Category ExerciseCategory   `bson:"category" json:"category"`

	// Metric fields. nil means "no value" and is always legal for a template;
	// a present value must be finite and > 0. Absent values must round-trip
	// through persistence as absent, never as zero.
	Reps     *float64 `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight   *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Duration *float64 `bson:"duration,omitempty" json:"duration,omitempty"`
	Distance *float64 `bson:"distance,omitempty" json:"distance,omitempty"`
}

// NewPlanExercise creates the blank row that appears when a user adds an
// exercise to a day: empty name, default category strength, no metrics.
func NewPlanExercise(dayID primitive.ObjectID) PlanExercise {
	return PlanExercise{
		DayID:    dayID,
		Category: CategoryStrength,
	}
}

// SetCategory switches the exercise between strength and cardio.
// The two categories are mutually exclusive in which fields are meaningful,
// so every switch clears all four metric fields, in both directions.
// Partial carryover of stale values from the other category is a defect.
func (e *PlanExercise) SetCategory(category ExerciseCategory) {
	if e.Category == category {
		return
	}
	e.Category = category
	e.ClearMetrics()
}

// ClearMetrics resets all four metric fields to "no value".
func (e *PlanExercise) ClearMetrics() {
	e.Reps = nil
	e.Weight = nil
	e.Duration = nil
	e.Distance = nil
}

// Float64Ptr is a small helper for building optional metric values.
func Float64Ptr(v float64) *float64 {
	return &v
}
