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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"motionscope/training-api/internal/api"
	"motionscope/training-api/internal/config"
	"motionscope/training-api/internal/logging"
	"motionscope/training-api/internal/repository/mongo"
	"motionscope/training-api/internal/service"
	"motionscope/training-api/internal/storage"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting training API server", zap.String("address", cfg.Server.Address))

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure Indexes (in background) ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureBlockIndexes(ctx, appDB.Collection("blocks"))
		mongo.EnsureCompDayIndexes(ctx, appDB.Collection("compdays"))
		mongo.EnsureProgramIndexes(ctx, appDB.Collection("programs"))
		mongo.EnsureTemplateIndexes(ctx, appDB.Collection("block_templates"))
		mongo.EnsureQuestionnaireIndexes(ctx, appDB.Collection("questionnaires"))
		logger.Info("index creation completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	blockRepo := mongo.NewMongoBlockRepository(appDB)
	compDayRepo := mongo.NewMongoCompDayRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)
	questionnaireRepo := mongo.NewMongoQuestionnaireRepository(appDB)
	tx := mongo.NewTxn(dbClient)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	rosterService := service.NewRosterService(userRepo)
	exerciseService := service.NewExerciseService(exerciseRepo, fileStorage)
	blockService := service.NewBlockService(blockRepo, programRepo, templateRepo, userRepo, tx)
	compDayService := service.NewCompDayService(compDayRepo, programRepo, userRepo, tx)
	programService := service.NewProgramService(programRepo, blockRepo, compDayRepo, userRepo, logger)
	templateService := service.NewTemplateService(templateRepo)
	questionnaireService := service.NewQuestionnaireService(questionnaireRepo, userRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		rosterService,
		exerciseService,
		blockService,
		compDayService,
		programService,
		templateService,
		questionnaireService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
