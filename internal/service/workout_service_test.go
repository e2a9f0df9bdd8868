package service

import (
	"context"
	"testing"
	"time"

	"github.com/adrianlangenstein093-hue/gymtrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newWorkoutServiceForTest() (WorkoutService, *fakeWorkoutRepo, *fakePlanRepo) {
	workoutRepo := newFakeWorkoutRepo()
	planRepo := newFakePlanRepo()
	return NewWorkoutService(workoutRepo, planRepo), workoutRepo, planRepo
}

// seedPlanWithDay creates a plan with one Monday day holding a single
// strength template exercise.
func seedPlanWithDay(t *testing.T, planRepo *fakePlanRepo, userID primitive.ObjectID) (*domain.WorkoutPlan, *domain.WorkoutPlanDay) {
	t.Helper()
	ctx := context.Background()

	plan := &domain.WorkoutPlan{UserID: userID, Name: "Test Plan"}
	_, err := planRepo.Create(ctx, plan)
	require.NoError(t, err)

	day, err := planRepo.EnsureDay(ctx, plan.ID, "Monday")
	require.NoError(t, err)

	_, err = planRepo.UpsertDayExercises(ctx, plan.ID, day.ID, []domain.PlanExercise{
		{Name: "Squat", Category: domain.CategoryStrength, Reps: domain.Float64Ptr(5), Weight: domain.Float64Ptr(100)},
	})
	require.NoError(t, err)

	stored, err := planRepo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	return stored, &stored.Days[0]
}

func TestStartFromPlanDay(t *testing.T) {
	svc, _, planRepo := newWorkoutServiceForTest()
	userID := primitive.NewObjectID()
	plan, day := seedPlanWithDay(t, planRepo, userID)

	session, err := svc.StartFromPlanDay(context.Background(), userID, plan.ID, day.ID)
	require.NoError(t, err)
	require.NotNil(t, session)

	require.NotNil(t, session.PlanID)
	assert.Equal(t, plan.ID, *session.PlanID)
	require.Len(t, session.Exercises, 1)
	assert.Equal(t, "Squat", session.Exercises[0].Name)
	assert.Equal(t, domain.CategoryStrength, session.Exercises[0].Category)
	require.NotNil(t, session.Exercises[0].Reps)
	assert.Equal(t, 5.0, *session.Exercises[0].Reps)
}

func TestStartFromPlanDayErrors(t *testing.T) {
	svc, _, planRepo := newWorkoutServiceForTest()
	userID := primitive.NewObjectID()
	plan, day := seedPlanWithDay(t, planRepo, userID)

	_, err := svc.StartFromPlanDay(context.Background(), primitive.NewObjectID(), plan.ID, day.ID)
	assert.ErrorIs(t, err, ErrPlanAccessDenied)

	_, err = svc.StartFromPlanDay(context.Background(), userID, primitive.NewObjectID(), day.ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = svc.StartFromPlanDay(context.Background(), userID, plan.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestStartFreeForm(t *testing.T) {
	svc, _, _ := newWorkoutServiceForTest()

	session := svc.StartFreeForm(domain.CategoryCardio)
	require.NotNil(t, session)
	assert.Nil(t, session.PlanID)
	require.Len(t, session.Exercises, 1)
	assert.Equal(t, domain.CategoryCardio, session.Exercises[0].Category)
	assert.Empty(t, session.Exercises[0].Name)
}

func TestCompleteSession(t *testing.T) {
	svc, workoutRepo, _ := newWorkoutServiceForTest()
	at := time.Date(2025, time.March, 3, 18, 30, 0, 0, time.UTC)
	svc.(*workoutService).now = func() time.Time { return at }

	userID := primitive.NewObjectID()
	session := svc.StartFreeForm(domain.CategoryStrength)
	ex := session.Exercise(session.Exercises[0].ID)
	ex.Name = "Overhead Press"
	ex.Reps = domain.Float64Ptr(8)
	ex.Weight = domain.Float64Ptr(40)

	workout, err := svc.CompleteSession(context.Background(), userID, "lifter", session)
	require.NoError(t, err)
	require.NotNil(t, workout)

	assert.NotEqual(t, primitive.NilObjectID, workout.ID)
	assert.Equal(t, userID, workout.UserID)
	assert.Equal(t, "lifter", workout.Username)
	assert.True(t, workout.Completed)
	assert.Equal(t, at, workout.Date)
	assert.Nil(t, workout.PlanID)

	require.Len(t, workoutRepo.workouts, 1)
	require.Len(t, workout.Exercises, 1)
	strength, ok := workout.Exercises[0].(domain.StrengthWorkoutExercise)
	require.True(t, ok)
	assert.Equal(t, 8.0, strength.Reps)
	assert.Equal(t, 40.0, strength.Weight)
}

func TestCompleteSessionValidationBlocksPersist(t *testing.T) {
	svc, workoutRepo, _ := newWorkoutServiceForTest()
	userID := primitive.NewObjectID()

	// Free-form session left blank: name and required metrics missing.
	session := svc.StartFreeForm(domain.CategoryStrength)

	_, err := svc.CompleteSession(context.Background(), userID, "lifter", session)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{
		"Exercise #1: exercise name must not be empty",
		"Exercise #1: a strength exercise needs reps > 0",
		"Exercise #1: a strength exercise needs weight > 0",
	}, vErr.Errors)
	assert.Empty(t, workoutRepo.workouts)

	// The session stays editable; fixing it makes completion succeed.
	ex := session.Exercise(session.Exercises[0].ID)
	ex.Name = "Deadlift"
	ex.Reps = domain.Float64Ptr(3)
	ex.Weight = domain.Float64Ptr(140)

	_, err = svc.CompleteSession(context.Background(), userID, "lifter", session)
	require.NoError(t, err)
	assert.Len(t, workoutRepo.workouts, 1)
}

func TestCompleteSessionNil(t *testing.T) {
	svc, _, _ := newWorkoutServiceForTest()

	_, err := svc.CompleteSession(context.Background(), primitive.NewObjectID(), "lifter", nil)
	assert.Error(t, err)
}

func TestGetHistory(t *testing.T) {
	svc, _, planRepo := newWorkoutServiceForTest()
	ctx := context.Background()
	userID := primitive.NewObjectID()
	plan, day := seedPlanWithDay(t, planRepo, userID)

	session, err := svc.StartFromPlanDay(ctx, userID, plan.ID, day.ID)
	require.NoError(t, err)
	_, err = svc.CompleteSession(ctx, userID, "lifter", session)
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].PlanID)
	assert.Equal(t, plan.ID, *history[0].PlanID)

	other, err := svc.GetHistory(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, other)
}
