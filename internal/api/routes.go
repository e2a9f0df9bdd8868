package api

import (
	"net/http"

	"github.com/adrianlangenstein093-hue/gymtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers onto the gin engine.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	planService service.PlanService,
	workoutService service.WorkoutService,
	exportService service.ExportService,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService)
	workoutHandler := NewWorkoutHandler(workoutService, exportService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			username, _ := getUsernameFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "username": username})
		})
		protected.PUT("/me/password", authHandler.ChangePassword)

		// --- Plan authoring ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("", planHandler.GetPlans)
			planGroup.PUT("/:planId", planHandler.UpdatePlan)
			// DELETE is a soft delete; plans are never physically erased.
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
			planGroup.POST("/:planId/days", planHandler.EnsureDay)
			planGroup.PUT("/:planId/days/:dayId/rest", planHandler.SetRestDay)
			planGroup.PUT("/:planId/days/:dayId/exercises", planHandler.SaveDayExercises)
		}

		// --- Completed workouts ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.CompleteWorkout)
			workoutGroup.GET("", workoutHandler.GetHistory)
			workoutGroup.POST("/export", workoutHandler.ExportHistory)
		}
	}
}
