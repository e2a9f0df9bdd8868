package service

import (
	"context"
	"time"

	"github.com/adrianlangenstein093-hue/gymtrack/internal/domain"
	"github.com/adrianlangenstein093-hue/gymtrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the mongo implementations'
// observable behavior (sentinel errors, id assignment, soft-delete
// filtering) closely enough for service-level tests.

// --- user repository fake ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	r.users[user.ID] = &clone
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// --- plan repository fake ---

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.WorkoutPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[primitive.ObjectID]*domain.WorkoutPlan{}}
}

func clonePlan(p *domain.WorkoutPlan) *domain.WorkoutPlan {
	clone := *p
	clone.Days = make([]domain.WorkoutPlanDay, len(p.Days))
	for i, d := range p.Days {
		day := d
		day.Exercises = append([]domain.PlanExercise(nil), d.Exercises...)
		clone.Days[i] = day
	}
	return &clone
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	if plan.Days == nil {
		plan.Days = []domain.WorkoutPlanDay{}
	}
	r.plans[plan.ID] = clonePlan(plan)
	return plan.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePlan(p), nil
}

func (r *fakePlanRepo) GetActiveByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	var out []domain.WorkoutPlan
	for _, p := range r.plans {
		if p.UserID == userID && !p.IsDeleteFlagged {
			out = append(out, *clonePlan(p))
		}
	}
	return out, nil
}

func (r *fakePlanRepo) GetActiveByUserAndName(_ context.Context, userID primitive.ObjectID, name string) (*domain.WorkoutPlan, error) {
	for _, p := range r.plans {
		if p.UserID == userID && p.Name == name && !p.IsDeleteFlagged {
			return clonePlan(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) Update(_ context.Context, plan *domain.WorkoutPlan) error {
	stored, ok := r.plans[plan.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = plan.Name
	stored.IsTemplate = plan.IsTemplate
	stored.IsDeleteFlagged = plan.IsDeleteFlagged
	now := time.Now().UTC()
	stored.UpdatedAt = &now
	return nil
}

func (r *fakePlanRepo) EnsureDay(_ context.Context, planID primitive.ObjectID, weekday string) (*domain.WorkoutPlanDay, error) {
	stored, ok := r.plans[planID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if existing := stored.DayByWeekday(weekday); existing != nil {
		day := *existing
		return &day, nil
	}
	day := domain.NewWorkoutPlanDay(planID, weekday)
	day.ID = primitive.NewObjectID()
	day.CreatedAt = time.Now().UTC()
	stored.Days = append(stored.Days, day)
	return &day, nil
}

func (r *fakePlanRepo) SetDayRest(_ context.Context, planID, dayID primitive.ObjectID, isRestDay bool) error {
	stored, ok := r.plans[planID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range stored.Days {
		if stored.Days[i].ID == dayID {
			stored.Days[i].IsRestDay = isRestDay
			if isRestDay {
				stored.Days[i].Exercises = []domain.PlanExercise{}
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakePlanRepo) UpsertDayExercises(_ context.Context, planID, dayID primitive.ObjectID, exercises []domain.PlanExercise) ([]domain.PlanExercise, error) {
	stored, ok := r.plans[planID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for i := range stored.Days {
		if stored.Days[i].ID != dayID {
			continue
		}
		merged := append([]domain.PlanExercise(nil), stored.Days[i].Exercises...)
		for _, incoming := range exercises {
			incoming.DayID = dayID
			if incoming.ID == primitive.NilObjectID {
				incoming.ID = primitive.NewObjectID()
				merged = append(merged, incoming)
				continue
			}
			replaced := false
			for j := range merged {
				if merged[j].ID == incoming.ID {
					merged[j] = incoming
					replaced = true
					break
				}
			}
			if !replaced {
				merged = append(merged, incoming)
			}
		}
		stored.Days[i].Exercises = merged
		return append([]domain.PlanExercise(nil), merged...), nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) SoftDelete(_ context.Context, planID primitive.ObjectID) error {
	stored, ok := r.plans[planID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.IsDeleteFlagged = true
	return nil
}

// --- workout repository fake ---

type fakeWorkoutRepo struct {
	workouts []domain.Workout
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	r.workouts = append(r.workouts, *workout)
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

// --- object storage fake ---

type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) PutObject(_ context.Context, objectKey, _ string, body []byte) error {
	s.objects[objectKey] = body
	return nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/" + objectKey + "?sig=fake", nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	return nil
}
