package domain

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionExercise is the mutable, in-memory shape of an exercise while a
// live workout session is being recorded. Like a template row, every metric
// is optional while editing; the category-specific requiredness is only
// enforced when the session is completed and turned into a Workout.
type SessionExercise struct {
	ID       string           `json:"id"` // Client-side identity; assigned before the first persist
	Name     string           `json:"name"`
	Category ExerciseCategory `json:"category"`
	Reps     *float64         `json:"reps,omitempty"`
	Weight   *float64         `json:"weight,omitempty"`
	Duration *float64         `json:"duration,omitempty"`
	Distance *float64         `json:"distance,omitempty"`
}

// SetCategory switches between strength and cardio and clears all four
// metric fields, same contract as PlanExercise.SetCategory.
func (e *SessionExercise) SetCategory(category ExerciseCategory) {
	if e.Category == category {
		return
	}
	e.Category = category
	e.Reps = nil
	e.Weight = nil
	e.Duration = nil
	e.Distance = nil
}

// Session is a live workout being built in memory. It is seeded either from
// a plan day's exercises or from a single blank free-form exercise, grows
// and mutates while the user trains, and produces an immutable Workout at
// completion. A session that is never completed is simply abandoned; there
// is nothing to clean up.
type Session struct {
	PlanID    *primitive.ObjectID `json:"planId,omitempty"` // Originating plan, nil for free-form sessions
	Exercises []SessionExercise   `json:"exercises"`
}

// NewSessionFromDay seeds a session from a plan day's template exercises.
// Target metrics from the template carry over as starting values.
func NewSessionFromDay(planID primitive.ObjectID, day WorkoutPlanDay) *Session {
	exercises := make([]SessionExercise, 0, len(day.Exercises))
	for _, ex := range day.Exercises {
		exercises = append(exercises, SessionExercise{
			ID:       uuid.NewString(),
			Name:     ex.Name,
			Category: ex.Category,
			Reps:     ex.Reps,
			Weight:   ex.Weight,
			Duration: ex.Duration,
			Distance: ex.Distance,
		})
	}
	return &Session{
		PlanID:    &planID,
		Exercises: exercises,
	}
}

// NewFreeFormSession seeds a session with one blank exercise of the chosen
// category. Unknown categories default to strength, matching the blank
// template row default.
func NewFreeFormSession(category ExerciseCategory) *Session {
	if !category.IsValid() {
		category = CategoryStrength
	}
	return &Session{
		Exercises: []SessionExercise{{
			ID:       uuid.NewString(),
			Category: category,
		}},
	}
}

// AddExercise appends a blank exercise of the given category and returns its id.
func (s *Session) AddExercise(category ExerciseCategory) string {
	if !category.IsValid() {
		category = CategoryStrength
	}
	ex := SessionExercise{
		ID:       uuid.NewString(),
		Category: category,
	}
	s.Exercises = append(s.Exercises, ex)
	return ex.ID
}

// RemoveExercise drops the exercise with the given id, if present.
func (s *Session) RemoveExercise(id string) {
	for i := range s.Exercises {
		if s.Exercises[i].ID == id {
			s.Exercises = append(s.Exercises[:i], s.Exercises[i+1:]...)
			return
		}
	}
}

// Exercise returns a pointer into the session for per-field edits, or nil.
func (s *Session) Exercise(id string) *SessionExercise {
	for i := range s.Exercises {
		if s.Exercises[i].ID == id {
			return &s.Exercises[i]
		}
	}
	return nil
}

// Complete turns the session into a Workout for the given user and validates
// it as a whole. The workout is only meant to be persisted when the result
// is valid; on failure the session stays untouched so the user can correct
// and resubmit.
func (s *Session) Complete(userID primitive.ObjectID, username string, at time.Time) (Workout, ValidationResult) {
	exercises := make([]WorkoutExercise, 0, len(s.Exercises))
	for _, ex := range s.Exercises {
		exercises = append(exercises, ex.toWorkoutExercise())
	}

	workout := Workout{
		UserID:    userID,
		Username:  username,
		PlanID:    s.PlanID,
		Exercises: exercises,
		Completed: true,
		Date:      at,
	}

	return workout, ValidateWorkout(workout)
}

// toWorkoutExercise converts the mutable editing shape into the recorded sum
// type. Missing required metrics become zero so that validation reports them
// as "needs ... > 0" rather than failing the conversion.
func (e SessionExercise) toWorkoutExercise() WorkoutExercise {
	deref := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	}

	if e.Category == CategoryCardio {
		return CardioWorkoutExercise{
			ID:       e.ID,
			Name:     e.Name,
			Duration: deref(e.Duration),
			Distance: deref(e.Distance),
			Reps:     e.Reps,
			Weight:   e.Weight,
		}
	}
	return StrengthWorkoutExercise{
		ID:       e.ID,
		Name:     e.Name,
		Reps:     deref(e.Reps),
		Weight:   deref(e.Weight),
		Duration: e.Duration,
		Distance: e.Distance,
	}
}
