package repository

import (
	"context"

	"github.com/adrianlangenstein093-hue/gymtrack/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// PlanRepository defines the interface for interacting with workout plan
// data. Plans are stored with their days and exercises fully materialized;
// there is no lazy loading contract. Removal is always a soft delete.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	// GetActiveByUserID returns the user's plans that are not delete-flagged.
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	// GetActiveByUserAndName is the duplicate-name check used at creation time.
	GetActiveByUserAndName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.WorkoutPlan, error)
	// Update writes the plan-level fields (name, template flag, delete flag).
	// Days and exercises are written through EnsureDay / UpsertDayExercises.
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	// EnsureDay is idempotent: it returns the existing day for that weekday
	// if present, else creates one. A plan never holds two days with the
	// same weekday.
	EnsureDay(ctx context.Context, planID primitive.ObjectID, weekday string) (*domain.WorkoutPlanDay, error)
	// SetDayRest toggles a day's rest flag. Turning rest on also drops the
	// day's exercises; a rest day carries none.
	SetDayRest(ctx context.Context, planID, dayID primitive.ObjectID, isRestDay bool) error
	// UpsertDayExercises updates each exercise by id if it exists on the day,
	// otherwise inserts it. Callers do not distinguish the two outcomes.
	UpsertDayExercises(ctx context.Context, planID, dayID primitive.ObjectID, exercises []domain.PlanExercise) ([]domain.PlanExercise, error)
	// SoftDelete sets the delete flag. There is no hard-delete path anywhere
	// in the system.
	SoftDelete(ctx context.Context, planID primitive.ObjectID) error
}

// WorkoutRepository defines the interface for interacting with completed
// workout data. History is append-only: workouts are created once and never
// updated or deleted.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
}
