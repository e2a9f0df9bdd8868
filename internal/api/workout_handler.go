package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adrianlangenstein093-hue/gymtrack/internal/domain"
	"github.com/adrianlangenstein093-hue/gymtrack/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout and export service dependencies.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	exportService  service.ExportService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, exportService service.ExportService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		exportService:  exportService,
	}
}

// --- DTOs ---

// SessionExerciseInput is one exercise of a finished live session. The same
// optional-field shape as a template row; category-specific requiredness is
// enforced by validation at completion, not by binding tags.
type SessionExerciseInput struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Category domain.ExerciseCategory `json:"category"`
	Reps     *float64                `json:"reps"`
	Weight   *float64                `json:"weight"`
	Duration *float64                `json:"duration"`
	Distance *float64                `json:"distance"`
}

// CompleteWorkoutRequest is the single submit at the end of a live session.
type CompleteWorkoutRequest struct {
	PlanID    string                 `json:"planId"`
	Exercises []SessionExerciseInput `json:"exercises" binding:"required"`
}

type WorkoutExerciseResponse struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Category domain.ExerciseCategory `json:"category"`
	Reps     *float64                `json:"reps,omitempty"`
	Weight   *float64                `json:"weight,omitempty"`
	Duration *float64                `json:"duration,omitempty"`
	Distance *float64                `json:"distance,omitempty"`
}

type WorkoutResponse struct {
	ID        string                    `json:"id"`
	UserID    string                    `json:"userId"`
	Username  string                    `json:"username"`
	PlanID    string                    `json:"planId,omitempty"`
	Exercises []WorkoutExerciseResponse `json:"exercises"`
	Completed bool                      `json:"workoutCompleted"`
	Date      time.Time                 `json:"date"`
}

type ExportResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// MapWorkoutToResponse converts a domain.Workout to its DTO, flattening the
// exercise sum type into the category-discriminated wire shape.
func MapWorkoutToResponse(workout *domain.Workout) WorkoutResponse {
	if workout == nil {
		return WorkoutResponse{}
	}
	resp := WorkoutResponse{
		ID:        workout.ID.Hex(),
		UserID:    workout.UserID.Hex(),
		Username:  workout.Username,
		Exercises: make([]WorkoutExerciseResponse, 0, len(workout.Exercises)),
		Completed: workout.Completed,
		Date:      workout.Date,
	}
	if workout.PlanID != nil {
		resp.PlanID = workout.PlanID.Hex()
	}
	for _, exercise := range workout.Exercises {
		switch e := exercise.(type) {
		case domain.StrengthWorkoutExercise:
			reps, weight := e.Reps, e.Weight
			resp.Exercises = append(resp.Exercises, WorkoutExerciseResponse{
				ID:       e.ID,
				Name:     e.Name,
				Category: domain.CategoryStrength,
				Reps:     &reps,
				Weight:   &weight,
				Duration: e.Duration,
				Distance: e.Distance,
			})
		case domain.CardioWorkoutExercise:
			duration, distance := e.Duration, e.Distance
			resp.Exercises = append(resp.Exercises, WorkoutExerciseResponse{
				ID:       e.ID,
				Name:     e.Name,
				Category: domain.CategoryCardio,
				Duration: &duration,
				Distance: &distance,
				Reps:     e.Reps,
				Weight:   e.Weight,
			})
		}
	}
	return resp
}

// --- Handler Methods ---

// CompleteWorkout validates a finished session and appends it to the history.
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	var req CompleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	username, err := getUsernameFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get username from token")
		return
	}

	session := &domain.Session{}
	if req.PlanID != "" {
		planID, err := primitive.ObjectIDFromHex(req.PlanID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
			return
		}
		session.PlanID = &planID
	}
	for _, input := range req.Exercises {
		session.Exercises = append(session.Exercises, domain.SessionExercise{
			ID:       input.ID,
			Name:     input.Name,
			Category: input.Category,
			Reps:     input.Reps,
			Weight:   input.Weight,
			Duration: input.Duration,
			Distance: input.Distance,
		})
	}

	workout, err := h.workoutService.CompleteSession(c.Request.Context(), userID, username, session)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			abortWithValidationErrors(c, validationErr.Errors)
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not save workout")
		}
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// GetHistory lists the caller's completed workouts, newest first.
func (h *WorkoutHandler) GetHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workouts, err := h.workoutService.GetHistory(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load workout history")
		return
	}

	responses := make([]WorkoutResponse, 0, len(workouts))
	for i := range workouts {
		responses = append(responses, MapWorkoutToResponse(&workouts[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// ExportHistory uploads a JSON export of the caller's history and returns a
// short-lived download link.
func (h *WorkoutHandler) ExportHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	url, err := h.exportService.ExportHistory(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNothingToExport) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not export workout history")
		}
		return
	}

	c.JSON(http.StatusOK, ExportResponse{DownloadURL: url})
}
