package mongo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/adrianlangenstein093-hue/gymtrack/internal/domain"
	"github.com/adrianlangenstein093-hue/gymtrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planCollectionName = "workout_plans"

// mongoPlanRepository implements repository.PlanRepository.
//
// Plans embed their days and exercises in one document: a plan is small,
// has a single writer, and is always read whole (no lazy loading contract),
// so the document hierarchy maps onto a single collection.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new plan. The service layer has already checked name
// uniqueness among the user's active plans at this point.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires userId and name")
	}

	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	if plan.Days == nil {
		plan.Days = []domain.WorkoutPlanDay{}
	}

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single plan, days and exercises included.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetActiveByUserID retrieves all plans of a user that are not delete-flagged,
// newest first.
func (r *mongoPlanRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	filter := bson.M{
		"userId":          userID,
		"isDeleteFlagged": false,
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.WorkoutPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	// Empty slice if no plans found, not an error.
	return plans, nil
}

// GetActiveByUserAndName finds a non-deleted plan with the exact trimmed
// name. Used by the creation flow for the duplicate-name check; soft-deleted
// plans do not block reuse of their name.
func (r *mongoPlanRepository) GetActiveByUserAndName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.WorkoutPlan, error) {
	filter := bson.M{
		"userId":          userID,
		"name":            name,
		"isDeleteFlagged": false,
	}

	var plan domain.WorkoutPlan
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Update writes the plan-level fields. UserID and CreatedAt never change,
// and the embedded days are managed through EnsureDay / UpsertDayExercises.
func (r *mongoPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("plan ID is required for update")
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":            plan.Name,
			"isTemplate":      plan.IsTemplate,
			"isDeleteFlagged": plan.IsDeleteFlagged,
			"updatedAt":       now,
			"updatedBy":       plan.UpdatedBy,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": plan.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureDay returns the plan's day for the weekday if one exists, otherwise
// creates it. First occurrence wins: a plan can never end up with two days
// for the same weekday through this path.
func (r *mongoPlanRepository) EnsureDay(ctx context.Context, planID primitive.ObjectID, weekday string) (*domain.WorkoutPlanDay, error) {
	plan, err := r.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	if existing := plan.DayByWeekday(weekday); existing != nil {
		return existing, nil
	}

	day := domain.NewWorkoutPlanDay(planID, weekday)
	day.ID = primitive.NewObjectID()
	day.CreatedAt = time.Now().UTC()

	// The filter re-checks absence so a concurrent EnsureDay for the same
	// weekday cannot push a duplicate slot.
	filter := bson.M{
		"_id":          planID,
		"days.weekday": bson.M{"$ne": weekday},
	}
	update := bson.M{"$push": bson.M{"days": day}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		// Lost the race: the day appeared between the read and the push.
		plan, err = r.GetByID(ctx, planID)
		if err != nil {
			return nil, err
		}
		if existing := plan.DayByWeekday(weekday); existing != nil {
			return existing, nil
		}
		return nil, repository.ErrUpdateFailed
	}
	return &day, nil
}

// SetDayRest toggles the rest flag on one day. Turning rest on clears the
// day's exercise list in the same update.
func (r *mongoPlanRepository) SetDayRest(ctx context.Context, planID, dayID primitive.ObjectID, isRestDay bool) error {
	now := time.Now().UTC()
	set := bson.M{
		"days.$.isRestDay": isRestDay,
		"days.$.updatedAt": now,
		"updatedAt":        now,
	}
	if isRestDay {
		set["days.$.exercises"] = []domain.PlanExercise{}
	}

	filter := bson.M{"_id": planID, "days._id": dayID}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpsertDayExercises writes a day's exercise list: each exercise with a
// known id replaces its stored counterpart, new ones (zero id) are inserted.
// Returns the merged list with ids assigned.
func (r *mongoPlanRepository) UpsertDayExercises(ctx context.Context, planID, dayID primitive.ObjectID, exercises []domain.PlanExercise) ([]domain.PlanExercise, error) {
	plan, err := r.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	var day *domain.WorkoutPlanDay
	dayIndex := -1
	for i := range plan.Days {
		if plan.Days[i].ID == dayID {
			day = &plan.Days[i]
			dayIndex = i
			break
		}
	}
	if day == nil {
		return nil, repository.ErrNotFound
	}

	merged := make([]domain.PlanExercise, len(day.Exercises))
	copy(merged, day.Exercises)

	for _, incoming := range exercises {
		incoming.DayID = dayID
		if incoming.ID == primitive.NilObjectID {
			incoming.ID = primitive.NewObjectID()
			merged = append(merged, incoming)
			continue
		}
		replaced := false
		for i := range merged {
			if merged[i].ID == incoming.ID {
				merged[i] = incoming
				replaced = true
				break
			}
		}
		// Unknown id: treat as insert, callers do not distinguish outcomes.
		if !replaced {
			merged = append(merged, incoming)
		}
	}

	now := time.Now().UTC()
	prefix := "days." + strconv.Itoa(dayIndex)
	update := bson.M{
		"$set": bson.M{
			prefix + ".exercises": merged,
			prefix + ".updatedAt": now,
			"updatedAt":           now,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": planID}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	return merged, nil
}

// SoftDelete flags the plan as deleted. The document stays in place; listing
// and duplicate-name checks simply stop seeing it.
func (r *mongoPlanRepository) SoftDelete(ctx context.Context, planID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"isDeleteFlagged": true,
		"updatedAt":       time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": planID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main listing query: active plans of a user
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "isDeleteFlagged", Value: 1}},
			Options: options.Index(),
		},
		{
			// Duplicate-name check at creation time
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "name", Value: 1}, {Key: "isDeleteFlagged", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
