package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adrianlangenstein093-hue/gymtrack/internal/domain"
	"github.com/adrianlangenstein093-hue/gymtrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound      = errors.New("workout plan not found")
	ErrPlanAccessDenied  = errors.New("access denied to this workout plan")
	ErrDuplicatePlanName = errors.New("a plan with this name already exists")
	ErrInvalidWeekday    = errors.New("weekday must be one of the seven weekday names")
)

// ValidationError carries the full list of validation messages so the
// editing surface can render every offending field at once. It is a caller
// error, not a server fault.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// --- Service Interface ---

// PlanService owns the plan authoring flows: create, list, update, day and
// exercise editing, soft delete. Every mutation validates the affected
// entity before any write; a failed validation blocks the save and reaches
// the caller as a *ValidationError.
type PlanService interface {
	CreateEmptyPlan(ctx context.Context, userID primitive.ObjectID, name string) (*domain.WorkoutPlan, error)
	GetPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, userID, planID primitive.ObjectID, name string, isTemplate bool) (*domain.WorkoutPlan, error)
	EnsureDay(ctx context.Context, userID, planID primitive.ObjectID, weekday string) (*domain.WorkoutPlanDay, error)
	SetRestDay(ctx context.Context, userID, planID, dayID primitive.ObjectID, isRestDay bool) error
	SaveDayExercises(ctx context.Context, userID, planID, dayID primitive.ObjectID, exercises []domain.PlanExercise) ([]domain.PlanExercise, error)
	SoftDeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error
}

// --- Service Implementation ---

type planService struct {
	planRepo repository.PlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

// CreateEmptyPlan checks name uniqueness among the user's active plans and
// persists a zero-day plan. Soft-deleted plans do not count against the
// name; the duplicate check is the one conflict raised before any write.
func (s *planService) CreateEmptyPlan(ctx context.Context, userID primitive.ObjectID, name string) (*domain.WorkoutPlan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}

	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 {
		return nil, &ValidationError{Errors: []string{"plan name must have at least 3 characters"}}
	}

	_, err := s.planRepo.GetActiveByUserAndName(ctx, userID, trimmed)
	if err == nil {
		return nil, ErrDuplicatePlanName
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		UserID:     userID,
		IsTemplate: false,
		Name:       trimmed,
		Days:       []domain.WorkoutPlanDay{},
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	return plan, nil
}

// GetPlans lists the user's active plans with days and exercises materialized.
func (s *planService) GetPlans(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	return s.planRepo.GetActiveByUserID(ctx, userID)
}

// GetPlan loads one plan and checks ownership.
func (s *planService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
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
	return plan, nil
}

// UpdatePlan applies the plan-level patch (name, template flag), validates
// the whole plan, and writes through a single update operation.
//
// Rename deliberately does not re-check name uniqueness; only creation does.
func (s *planService) UpdatePlan(ctx context.Context, userID, planID primitive.ObjectID, name string, isTemplate bool) (*domain.WorkoutPlan, error) {
	plan, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	plan.Name = strings.TrimSpace(name)
	plan.IsTemplate = isTemplate

	if res := domain.ValidateWorkoutPlan(*plan); !res.IsValid {
		return nil, &ValidationError{Errors: res.Errors}
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// EnsureDay returns the existing day for the weekday or creates one.
// One slot per weekday: recreating an existing weekday never duplicates it.
func (s *planService) EnsureDay(ctx context.Context, userID, planID primitive.ObjectID, weekday string) (*domain.WorkoutPlanDay, error) {
	if !domain.IsValidWeekday(weekday) {
		return nil, ErrInvalidWeekday
	}
	if _, err := s.GetPlan(ctx, userID, planID); err != nil {
		return nil, err
	}
	return s.planRepo.EnsureDay(ctx, planID, weekday)
}

// SetRestDay toggles a day between rest and active. Marking a day as a rest
// day drops its exercises; the UI never shows exercise editing for it.
func (s *planService) SetRestDay(ctx context.Context, userID, planID, dayID primitive.ObjectID, isRestDay bool) error {
	if _, err := s.GetPlan(ctx, userID, planID); err != nil {
		return err
	}
	if err := s.planRepo.SetDayRest(ctx, planID, dayID, isRestDay); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// SaveDayExercises validates every exercise as a template row, then upserts
// them onto the day: known ids update in place, new rows insert. Partial
// persistence on mid-save failure is accepted, not compensated.
func (s *planService) SaveDayExercises(ctx context.Context, userID, planID, dayID primitive.ObjectID, exercises []domain.PlanExercise) ([]domain.PlanExercise, error) {
	if _, err := s.GetPlan(ctx, userID, planID); err != nil {
		return nil, err
	}

	var allErrors []string
	for i, ex := range exercises {
		if res := domain.ValidatePlanExercise(ex); !res.IsValid {
			for _, e := range res.Errors {
				allErrors = append(allErrors, fmt.Sprintf("Exercise #%d: %s", i+1, e))
			}
		}
	}
	if len(allErrors) > 0 {
		return nil, &ValidationError{Errors: allErrors}
	}

	saved, err := s.planRepo.UpsertDayExercises(ctx, planID, dayID, exercises)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return saved, nil
}

// SoftDeletePlan flags the plan as deleted. Nothing is physically erased.
func (s *planService) SoftDeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	if _, err := s.GetPlan(ctx, userID, planID); err != nil {
		return err
	}
	return s.planRepo.SoftDelete(ctx, planID)
}
