package service

import (
	"context"
	"errors"
	"time"

	"github.com/adrianlangenstein093-hue/gymtrack/internal/domain"
	"github.com/adrianlangenstein093-hue/gymtrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrDayNotFound = errors.New("plan day not found")
)

// --- Service Interface ---

// WorkoutService records completed sessions and serves the history.
// A session is built in memory (seeded from a plan day or free-form),
// validated as a whole at completion, then persisted exactly once.
type WorkoutService interface {
	// StartFromPlanDay seeds a live session from a plan day's exercises.
	StartFromPlanDay(ctx context.Context, userID, planID, dayID primitive.ObjectID) (*domain.Session, error)
	// StartFreeForm seeds a live session with one blank exercise.
	StartFreeForm(category domain.ExerciseCategory) *domain.Session
	// CompleteSession validates the finished session and persists the
	// resulting workout. On validation failure nothing is written and the
	// session stays intact for correction.
	CompleteSession(ctx context.Context, userID primitive.ObjectID, username string, session *domain.Session) (*domain.Workout, error)
	GetHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
}

// --- Service Implementation ---

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	planRepo    repository.PlanRepository
	now         func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, planRepo repository.PlanRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		planRepo:    planRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// StartFromPlanDay loads the plan, checks ownership, and seeds a session
// from the requested day's template exercises.
func (s *workoutService) StartFromPlanDay(ctx context.Context, userID, planID, dayID primitive.ObjectID) (*domain.Session, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanAccessDenied
	}

	for i := range plan.Days {
		if plan.Days[i].ID == dayID {
			return domain.NewSessionFromDay(planID, plan.Days[i]), nil
		}
	}
	return nil, ErrDayNotFound
}

// StartFreeForm seeds a session without any plan reference.
func (s *workoutService) StartFreeForm(category domain.ExerciseCategory) *domain.Session {
	return domain.NewFreeFormSession(category)
}

// CompleteSession turns the session into a workout, validates it, and
// appends it to the history. Completed workouts are never mutated again.
func (s *workoutService) CompleteSession(ctx context.Context, userID primitive.ObjectID, username string, session *domain.Session) (*domain.Workout, error) {
	if session == nil {
		return nil, errors.New("session is required")
	}

	workout, res := session.Complete(userID, username, s.now())
	if !res.IsValid {
		return nil, &ValidationError{Errors: res.Errors}
	}

	if _, err := s.workoutRepo.Create(ctx, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

// GetHistory lists the user's completed workouts.
func (s *workoutService) GetHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	return s.workoutRepo.GetByUserID(ctx, userID)
}
