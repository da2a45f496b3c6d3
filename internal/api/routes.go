package api

import (
	"net/http"

	"trackfit/workout-app/internal/builder"
	"trackfit/workout-app/internal/catalog"
	"trackfit/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	metricsService *service.MetricsService,
	catalogClient *catalog.Client,
	builderManager *builder.Manager,
) {

	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService)
	builderHandler := NewBuilderHandler(builderManager, workoutService)
	catalogHandler := NewCatalogHandler(catalogClient)
	metricsHandler := NewMetricsHandler(metricsService)

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
			authGroup.POST("/password-reset", authHandler.PasswordReset)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			uid, err := getUIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"uid": uid})
		})
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/profile-exists", authHandler.CheckUserData)
		protected.POST("/auth/ensure-profile", authHandler.EnsureProfile)

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
		}

		// --- Folder Routes ---
		folderGroup := protected.Group("/folders")
		{
			folderGroup.POST("", workoutHandler.CreateFolder)
			folderGroup.GET("", workoutHandler.ListFolders)
			folderGroup.DELETE("/:id", workoutHandler.DeleteFolder)
			folderGroup.GET("/:id/workouts", workoutHandler.ListFolderWorkouts)
			folderGroup.POST("/:id/workouts", workoutHandler.AddWorkoutToFolder)
			folderGroup.PUT("/:id/workouts", workoutHandler.ReorderFolderWorkouts)
			folderGroup.DELETE("/:id/workouts/:workoutId", workoutHandler.RemoveWorkoutFromFolder)
		}

		// --- Builder Session Routes ---
		builderGroup := protected.Group("/builder/sessions")
		{
			builderGroup.POST("", builderHandler.OpenSession)
			builderGroup.GET("/:id", builderHandler.GetSession)
			builderGroup.DELETE("/:id", builderHandler.CloseSession)
			builderGroup.PUT("/:id/name", builderHandler.SetName)
			builderGroup.POST("/:id/exercises", builderHandler.MergeExercises)
			builderGroup.DELETE("/:id/exercises/:exerciseId", builderHandler.DeleteExercise)
			builderGroup.POST("/:id/sets", builderHandler.AddSet)
			builderGroup.PATCH("/:id/sets", builderHandler.UpdateSet)
			builderGroup.PUT("/:id/sets/unit", builderHandler.SelectUnit)
			builderGroup.PUT("/:id/sets/rep-type", builderHandler.SelectRepType)
			builderGroup.GET("/:id/superset-candidates", builderHandler.SupersetCandidates)
			builderGroup.POST("/:id/supersets", builderHandler.PairSuperset)
			builderGroup.POST("/:id/swap", builderHandler.StartSwap)
			builderGroup.POST("/:id/swap/confirm", builderHandler.ConfirmSwap)
			builderGroup.DELETE("/:id/swap", builderHandler.CancelSwap)
			builderGroup.POST("/:id/save", builderHandler.SaveSession)
		}

		// --- Catalog Routes ---
		catalogGroup := protected.Group("/catalog")
		{
			catalogGroup.GET("/body-parts", catalogHandler.ListBodyParts)
			catalogGroup.GET("/body-parts/:bodyPart/exercises", catalogHandler.ListExercisesByBodyPart)
		}

		// --- Metrics Routes ---
		metricsGroup := protected.Group("/metrics")
		{
			metricsGroup.POST("/bmi", metricsHandler.CalculateBMI)
			metricsGroup.POST("/one-rep-max", metricsHandler.CalculateOneRepMax)
			metricsGroup.POST("/calories", metricsHandler.CalculateCalories)
			metricsGroup.GET("/measurements", metricsHandler.GetMeasurements)
			metricsGroup.PUT("/measurements", metricsHandler.SaveMeasurements)
			metricsGroup.GET("/personal-records", metricsHandler.GetPersonalRecords)
			metricsGroup.PUT("/personal-records", metricsHandler.SavePersonalRecords)
		}
	}
}
