package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Weekdays lists the seven valid weekday labels for plan days.
// A plan holds at most one day per weekday name.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// IsValidWeekday reports whether the given label is one of the seven weekday names.
func IsValidWeekday(weekday string) bool {
	for _, w := range Weekdays {
		if w == weekday {
			return true
		}
	}
	return false
}

// WorkoutPlanDay is one weekday slot within a plan. It is exclusively owned
// by exactly one plan; days are never shared across plans.
type WorkoutPlanDay struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Weekday   string             `bson:"weekday" json:"weekday"`
	PlanID    primitive.ObjectID `bson:"planId" json:"planId"` // Link back to the owning plan
	Exercises []PlanExercise     `bson:"exercises" json:"exercises"`
	// A rest day carries no exercises; a non-rest day needs at least one.
	IsRestDay       bool               `bson:"isRestDay" json:"isRestDay"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	UpdatedBy       string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	IsDeleteFlagged bool               `bson:"isDeleteFlagged" json:"isDeleteFlagged"`
}

// NewWorkoutPlanDay creates a fresh, active (non-rest) day for the given
// plan and weekday with no exercises yet.
func NewWorkoutPlanDay(planID primitive.ObjectID, weekday string) WorkoutPlanDay {
	return WorkoutPlanDay{
		Weekday:   weekday,
		PlanID:    planID,
		Exercises: []PlanExercise{},
	}
}

// WorkoutPlan is a named, user-owned collection of weekday slots.
// Plans are reusable templates; completed sessions are recorded separately
// as Workout documents.
type WorkoutPlan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"` // Owning user
	IsTemplate bool               `bson:"isTemplate" json:"isTemplate"`
	Name       string             `bson:"name" json:"name"` // >= 3 trimmed characters, unique among the user's active plans
	Days       []WorkoutPlanDay   `bson:"days" json:"days"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	UpdatedBy  string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	// Plans are never hard-deleted; removal only sets this flag.
	IsDeleteFlagged bool `bson:"isDeleteFlagged" json:"isDeleteFlagged"`
}

// DayByWeekday returns the plan's day for the given weekday label, or nil
// if no such day exists yet. A plan can never hold two days with the same
// weekday; the first occurrence wins.
func (p *WorkoutPlan) DayByWeekday(weekday string) *WorkoutPlanDay {
	for i := range p.Days {
		if p.Days[i].Weekday == weekday {
			return &p.Days[i]
		}
	}
	return nil
}
