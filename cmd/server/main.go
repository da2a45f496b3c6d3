package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackfit/workout-app/internal/api"
	"trackfit/workout-app/internal/builder"
	"trackfit/workout-app/internal/catalog"
	"trackfit/workout-app/internal/config"
	"trackfit/workout-app/internal/localstore"
	"trackfit/workout-app/internal/repository/mongo"
	"trackfit/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Workout App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureCredentialIndexes(ctx, appDB.Collection("auth_credentials"))
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("user_workouts"))
		mongo.EnsureFolderIndexes(ctx, appDB.Collection("user_workout_folders"))
		log.Println("Index creation process completed.")
	}()

	// --- Local Key/Value Store ---
	log.Println("Opening local store...")
	store, err := localstore.Open(cfg.LocalStore.Path)
	if err != nil {
		log.Fatalf("FATAL: Failed to open local store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("ERROR: Failed to close local store: %v", err)
		}
	}()

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	credentialRepo := mongo.NewMongoCredentialRepository(appDB)
	userRepo := mongo.NewMongoUserRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	folderRepo := mongo.NewMongoFolderRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	sessions := service.NewSessionManager()
	authService := service.NewAuthService(credentialRepo, userRepo, sessions, nil, cfg.JWT.Secret, cfg.JWT.Expiration)
	workoutService := service.NewWorkoutService(workoutRepo, folderRepo)
	metricsService := service.NewMetricsService(store)
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey)
	builderManager := builder.NewManager()

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, workoutService, metricsService, catalogClient, builderManager)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
