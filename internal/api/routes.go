package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-log/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	tokens service.TokenService,
	workoutService service.WorkoutService,
	exerciseService service.ExerciseService,
	exportService service.ExportService,
) {
	workoutHandler := NewWorkoutHandler(workoutService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	exportHandler := NewExportHandler(exportService)
	dashboardHandler := NewDashboardHandler(workoutService, tokens)

	router.SetHTMLTemplate(LoadTemplates())
	authMiddleware := Authenticate(tokens)

	ping := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	}
	router.GET("/ping", ping)

	apiV1 := router.Group("/api/v1")
	apiV1.GET("/ping", ping)

	protected := apiV1.Group("")
	protected.Use(authMiddleware, requireAuth)
	{
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", noStore, workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("/:id", noStore, workoutHandler.GetWorkout)
			workoutGroup.GET("/:id/detail", noStore, workoutHandler.GetWorkoutDetail)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		protected.POST("/exports", exportHandler.CreateExport)
	}

	// Browser pages. Everything here is rendered per request and never cached.
	pages := router.Group("/dashboard")
	pages.Use(authMiddleware, noStore)
	{
		pages.GET("", dashboardHandler.Dashboard)
		pages.POST("/session", dashboardHandler.SignIn)
		pages.GET("/workout/new", dashboardHandler.NewWorkoutForm)
		pages.POST("/workout/new", dashboardHandler.CreateWorkout)
		pages.GET("/workout/:workoutId", dashboardHandler.EditWorkoutForm)
		pages.POST("/workout/:workoutId", dashboardHandler.UpdateWorkout)
	}
}
