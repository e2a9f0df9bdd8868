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

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

type CreatePlanRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdatePlanRequest struct {
	Name       string `json:"name" binding:"required"`
	IsTemplate bool   `json:"isTemplate"`
}

type EnsureDayRequest struct {
	Weekday string `json:"weekday" binding:"required"`
}

type SetRestDayRequest struct {
	IsRestDay *bool `json:"isRestDay" binding:"required"`
}

// PlanExerciseInput is one template row as submitted by the editing surface.
// An empty id means a new row; a known id updates the stored row in place.
type PlanExerciseInput struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Category domain.ExerciseCategory `json:"category"`
	Reps     *float64                `json:"reps"`
	Weight   *float64                `json:"weight"`
	Duration *float64                `json:"duration"`
	Distance *float64                `json:"distance"`
}

type SaveExercisesRequest struct {
	Exercises []PlanExerciseInput `json:"exercises" binding:"required"`
}

type PlanExerciseResponse struct {
	ID       string                  `json:"id"`
	DayID    string                  `json:"dayId"`
	Name     string                  `json:"name"`
	Category domain.ExerciseCategory `json:"category"`
	Reps     *float64                `json:"reps,omitempty"`
	Weight   *float64                `json:"weight,omitempty"`
	Duration *float64                `json:"duration,omitempty"`
	Distance *float64                `json:"distance,omitempty"`
}

type PlanDayResponse struct {
	ID        string                 `json:"id"`
	Weekday   string                 `json:"weekday"`
	PlanID    string                 `json:"planId"`
	IsRestDay bool                   `json:"isRestDay"`
	Exercises []PlanExerciseResponse `json:"exercises"`
	CreatedAt time.Time              `json:"createdAt"`
}

type PlanResponse struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	Name       string            `json:"name"`
	IsTemplate bool              `json:"isTemplate"`
	Days       []PlanDayResponse `json:"days"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// MapPlanToResponse converts a domain.WorkoutPlan to its DTO.
func MapPlanToResponse(plan *domain.WorkoutPlan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	days := make([]PlanDayResponse, 0, len(plan.Days))
	for i := range plan.Days {
		days = append(days, MapDayToResponse(&plan.Days[i]))
	}
	return PlanResponse{
		ID:         plan.ID.Hex(),
		UserID:     plan.UserID.Hex(),
		Name:       plan.Name,
		IsTemplate: plan.IsTemplate,
		Days:       days,
		CreatedAt:  plan.CreatedAt,
	}
}

// MapDayToResponse converts a domain.WorkoutPlanDay to its DTO.
func MapDayToResponse(day *domain.WorkoutPlanDay) PlanDayResponse {
	exercises := make([]PlanExerciseResponse, 0, len(day.Exercises))
	for _, ex := range day.Exercises {
		exercises = append(exercises, PlanExerciseResponse{
			ID:       ex.ID.Hex(),
			DayID:    ex.DayID.Hex(),
			Name:     ex.Name,
			Category: ex.Category,
			Reps:     ex.Reps,
			Weight:   ex.Weight,
			Duration: ex.Duration,
			Distance: ex.Distance,
		})
	}
	return PlanDayResponse{
		ID:        day.ID.Hex(),
		Weekday:   day.Weekday,
		PlanID:    day.PlanID.Hex(),
		IsRestDay: day.IsRestDay,
		Exercises: exercises,
		CreatedAt: day.CreatedAt,
	}
}

// handlePlanError maps service errors onto HTTP responses. Validation
// failures always surface the full message list.
func handlePlanError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		abortWithValidationErrors(c, validationErr.Errors)
	case errors.Is(err, service.ErrDuplicatePlanName):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPlanNotFound), errors.Is(err, service.ErrDayNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidWeekday):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- Handler Methods ---

// CreatePlan creates an empty, uniquely named plan for the caller.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plan, err := h.planService.CreateEmptyPlan(c.Request.Context(), userID, req.Name)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// GetPlans lists the caller's active plans, days and exercises included.
func (h *PlanHandler) GetPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plans, err := h.planService.GetPlans(c.Request.Context(), userID)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	responses := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, MapPlanToResponse(&plans[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// UpdatePlan writes the plan-level fields after validating the whole plan.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, planID, err := callerAndPlanID(c)
	if err != nil {
		return // response already written
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), userID, planID, req.Name, req.IsTemplate)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan soft-deletes a plan. The document stays; listings stop seeing it.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, planID, err := callerAndPlanID(c)
	if err != nil {
		return
	}

	if err := h.planService.SoftDeletePlan(c.Request.Context(), userID, planID); err != nil {
		handlePlanError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// EnsureDay returns the existing day for the weekday or creates it.
func (h *PlanHandler) EnsureDay(c *gin.Context) {
	var req EnsureDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, planID, err := callerAndPlanID(c)
	if err != nil {
		return
	}

	day, err := h.planService.EnsureDay(c.Request.Context(), userID, planID, req.Weekday)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapDayToResponse(day))
}

// SetRestDay toggles a day's rest flag.
func (h *PlanHandler) SetRestDay(c *gin.Context) {
	var req SetRestDayRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsRestDay == nil {
		abortWithError(c, http.StatusBadRequest, "isRestDay is required")
		return
	}

	userID, planID, err := callerAndPlanID(c)
	if err != nil {
		return
	}
	dayID, err := primitive.ObjectIDFromHex(c.Param("dayId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day ID format")
		return
	}

	if err := h.planService.SetRestDay(c.Request.Context(), userID, planID, dayID, *req.IsRestDay); err != nil {
		handlePlanError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SaveDayExercises validates and upserts a day's exercise list.
func (h *PlanHandler) SaveDayExercises(c *gin.Context) {
	var req SaveExercisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, planID, err := callerAndPlanID(c)
	if err != nil {
		return
	}
	dayID, err := primitive.ObjectIDFromHex(c.Param("dayId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day ID format")
		return
	}

	exercises := make([]domain.PlanExercise, 0, len(req.Exercises))
	for _, input := range req.Exercises {
		ex := domain.PlanExercise{
			DayID:    dayID,
			Name:     input.Name,
			Category: input.Category,
			Reps:     input.Reps,
			Weight:   input.Weight,
			Duration: input.Duration,
			Distance: input.Distance,
		}
		if input.ID != "" {
			id, err := primitive.ObjectIDFromHex(input.ID)
			if err != nil {
				abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
				return
			}
			ex.ID = id
		}
		exercises = append(exercises, ex)
	}

	saved, err := h.planService.SaveDayExercises(c.Request.Context(), userID, planID, dayID, exercises)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	responses := make([]PlanExerciseResponse, 0, len(saved))
	for _, ex := range saved {
		responses = append(responses, PlanExerciseResponse{
			ID:       ex.ID.Hex(),
			DayID:    ex.DayID.Hex(),
			Name:     ex.Name,
			Category: ex.Category,
			Reps:     ex.Reps,
			Weight:   ex.Weight,
			Duration: ex.Duration,
			Distance: ex.Distance,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// callerAndPlanID extracts the authenticated user and the :planId parameter,
// writing the error response itself on failure.
func callerAndPlanID(c *gin.Context) (primitive.ObjectID, primitive.ObjectID, error) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return userID, planID, nil
}
