package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/adrianlangenstein093-hue/gymtrack/internal/domain"
	"github.com/adrianlangenstein093-hue/gymtrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// workoutExerciseDoc is the flat persistence shape of the WorkoutExercise
// sum type: a category discriminator plus all four metrics as optionals.
// The required metrics of the active category are always present on write;
// on read the discriminator decides which concrete variant to rebuild.
type workoutExerciseDoc struct {
	ID       string                  `bson:"id"`
	Name     string                  `bson:"name"`
	Category domain.ExerciseCategory `bson:"category"`
	Reps     *float64                `bson:"reps,omitempty"`
	Weight   *float64                `bson:"weight,omitempty"`
	Duration *float64                `bson:"duration,omitempty"`
	Distance *float64                `bson:"distance,omitempty"`
}

// workoutDoc is the stored form of a completed workout.
type workoutDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	UserID    primitive.ObjectID   `bson:"userId"`
	Username  string               `bson:"username"`
	PlanID    *primitive.ObjectID  `bson:"planId,omitempty"`
	Exercises []workoutExerciseDoc `bson:"exercises"`
	Completed bool                 `bson:"workoutCompleted"`
	Date      time.Time            `bson:"date"`
}

func toExerciseDoc(exercise domain.WorkoutExercise) workoutExerciseDoc {
	switch e := exercise.(type) {
	case domain.StrengthWorkoutExercise:
		return workoutExerciseDoc{
			ID:       e.ID,
			Name:     e.Name,
			Category: domain.CategoryStrength,
			Reps:     &e.Reps,
			Weight:   &e.Weight,
			Duration: e.Duration,
			Distance: e.Distance,
		}
	case domain.CardioWorkoutExercise:
		return workoutExerciseDoc{
			ID:       e.ID,
			Name:     e.Name,
			Category: domain.CategoryCardio,
			Duration: &e.Duration,
			Distance: &e.Distance,
			Reps:     e.Reps,
			Weight:   e.Weight,
		}
	}
	// Unreachable with the two known variants.
	return workoutExerciseDoc{}
}

func fromExerciseDoc(doc workoutExerciseDoc) domain.WorkoutExercise {
	deref := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	}

	if doc.Category == domain.CategoryCardio {
		return domain.CardioWorkoutExercise{
			ID:       doc.ID,
			Name:     doc.Name,
			Duration: deref(doc.Duration),
			Distance: deref(doc.Distance),
			Reps:     doc.Reps,
			Weight:   doc.Weight,
		}
	}
	return domain.StrengthWorkoutExercise{
		ID:       doc.ID,
		Name:     doc.Name,
		Reps:     deref(doc.Reps),
		Weight:   deref(doc.Weight),
		Duration: doc.Duration,
		Distance: doc.Distance,
	}
}

// mongoWorkoutRepository implements repository.WorkoutRepository.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a completed workout. History is append-only, so this is
// the only write this repository ever performs.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout requires userId")
	}

	doc := workoutDoc{
		ID:        primitive.NewObjectID(),
		UserID:    workout.UserID,
		Username:  workout.Username,
		PlanID:    workout.PlanID,
		Exercises: make([]workoutExerciseDoc, 0, len(workout.Exercises)),
		Completed: workout.Completed,
		Date:      workout.Date,
	}
	for _, ex := range workout.Exercises {
		doc.Exercises = append(doc.Exercises, toExerciseDoc(ex))
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	workout.ID = insertedID
	return insertedID, nil
}

// GetByUserID retrieves the user's workout history, newest first.
func (r *mongoWorkoutRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []workoutDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	workouts := make([]domain.Workout, 0, len(docs))
	for _, doc := range docs {
		workout := domain.Workout{
			ID:        doc.ID,
			UserID:    doc.UserID,
			Username:  doc.Username,
			PlanID:    doc.PlanID,
			Exercises: make([]domain.WorkoutExercise, 0, len(doc.Exercises)),
			Completed: doc.Completed,
			Date:      doc.Date,
		}
		for _, ex := range doc.Exercises {
			workout.Exercises = append(workout.Exercises, fromExerciseDoc(ex))
		}
		workouts = append(workouts, workout)
	}
	return workouts, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// History query: all workouts of a user, sorted by date
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
