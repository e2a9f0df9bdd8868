package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adrianlangenstein093-hue/gymtrack/internal/domain"
	"github.com/adrianlangenstein093-hue/gymtrack/internal/repository"
	"github.com/adrianlangenstein093-hue/gymtrack/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNothingToExport = errors.New("no workouts to export")
)

// --- Service Interface ---

// ExportService renders a user's workout history to JSON, uploads it to
// object storage, and returns a short-lived download link.
type ExportService interface {
	ExportHistory(ctx context.Context, userID primitive.ObjectID) (downloadURL string, err error)
}

// --- Export document shapes ---

type exportExercise struct {
	Name     string                  `json:"name"`
	Category domain.ExerciseCategory `json:"category"`
	Reps     *float64                `json:"reps,omitempty"`
	Weight   *float64                `json:"weight,omitempty"`
	Duration *float64                `json:"duration,omitempty"`
	Distance *float64                `json:"distance,omitempty"`
}

type exportWorkout struct {
	Date      time.Time        `json:"date"`
	PlanID    string           `json:"planId,omitempty"`
	Exercises []exportExercise `json:"exercises"`
}

type exportDocument struct {
	Username   string          `json:"username"`
	ExportedAt time.Time       `json:"exportedAt"`
	Workouts   []exportWorkout `json:"workouts"`
}

// --- Service Implementation ---

type exportService struct {
	workoutRepo repository.WorkoutRepository
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewExportService creates a new instance of exportService.
func NewExportService(workoutRepo repository.WorkoutRepository, userRepo repository.UserRepository, fileStorage storage.FileStorage) ExportService {
	return &exportService{
		workoutRepo: workoutRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// ExportHistory builds the export, uploads it and presigns a download URL.
// The upload is a single attempt; a failed export leaves nothing to clean up
// beyond an orphaned object that the bucket lifecycle expires.
func (s *exportService) ExportHistory(ctx context.Context, userID primitive.ObjectID) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	workouts, err := s.workoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(workouts) == 0 {
		return "", ErrNothingToExport
	}

	doc := exportDocument{
		Username:   user.Username,
		ExportedAt: time.Now().UTC(),
		Workouts:   make([]exportWorkout, 0, len(workouts)),
	}
	for _, w := range workouts {
		ew := exportWorkout{
			Date:      w.Date,
			Exercises: make([]exportExercise, 0, len(w.Exercises)),
		}
		if w.PlanID != nil {
			ew.PlanID = w.PlanID.Hex()
		}
		for _, ex := range w.Exercises {
			ew.Exercises = append(ew.Exercises, flattenExercise(ex))
		}
		doc.Workouts = append(doc.Workouts, ew)
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("exports/%s/%s.json", userID.Hex(), uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, objectKey, "application/json", body); err != nil {
		return "", err
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
}

// flattenExercise projects the sum type onto the export row. Required
// metrics of the active category are always emitted.
func flattenExercise(exercise domain.WorkoutExercise) exportExercise {
	switch e := exercise.(type) {
	case domain.StrengthWorkoutExercise:
		return exportExercise{
			Name:     e.Name,
			Category: domain.CategoryStrength,
			Reps:     &e.Reps,
			Weight:   &e.Weight,
			Duration: e.Duration,
			Distance: e.Distance,
		}
	case domain.CardioWorkoutExercise:
		return exportExercise{
			Name:     e.Name,
			Category: domain.CategoryCardio,
			Duration: &e.Duration,
			Distance: &e.Distance,
			Reps:     e.Reps,
			Weight:   e.Weight,
		}
	}
	return exportExercise{}
}
