package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutExercise is a recorded exercise within a completed workout.
//
// Unlike PlanExercise, this is a real sum type: a strength exercise always
// carries reps and weight, a cardio exercise always carries duration and
// distance. Reading a field without checking the category first is therefore
// impossible at compile time. The two implementations below are the only ones.
type WorkoutExercise interface {
	ExerciseName() string
	ExerciseCategory() ExerciseCategory
}

// StrengthWorkoutExercise records a completed strength exercise.
// Reps and Weight are mandatory for the record to be valid (> 0);
// duration and distance may additionally be tracked.
type StrengthWorkoutExercise struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Reps     float64  `json:"reps"`
	Weight   float64  `json:"weight"`
	Duration *float64 `json:"duration,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
}

func (e StrengthWorkoutExercise) ExerciseName() string { return e.Name }

func (e StrengthWorkoutExercise) ExerciseCategory() ExerciseCategory { return CategoryStrength }

// CardioWorkoutExercise records a completed cardio exercise.
// Duration and Distance are mandatory for the record to be valid (> 0);
// reps and weight may additionally be tracked.
type CardioWorkoutExercise struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Duration float64  `json:"duration"`
	Distance float64  `json:"distance"`
	Reps     *float64 `json:"reps,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
}

func (e CardioWorkoutExercise) ExerciseName() string { return e.Name }

func (e CardioWorkoutExercise) ExerciseCategory() ExerciseCategory { return CategoryCardio }

// Workout is a single completed training session. It is constructed entirely
// in memory during a live session, validated as a whole at completion, then
// persisted once and never mutated again (append-only history).
type Workout struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID  `bson:"userId" json:"userId"`
	Username string              `bson:"username" json:"username"`         // Display name snapshot at completion time
	PlanID   *primitive.ObjectID `bson:"planId,omitempty" json:"planId,omitempty"` // nil for free-form workouts
	Exercises []WorkoutExercise  `bson:"-" json:"exercises"`
	Completed bool               `bson:"workoutCompleted" json:"workoutCompleted"`
	Date      time.Time          `bson:"date" json:"date"`
}
