package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mentorhub/mentorhub-api/internal/config"
	"github.com/mentorhub/mentorhub-api/internal/database"
	"github.com/mentorhub/mentorhub-api/internal/handler"
	"github.com/mentorhub/mentorhub-api/internal/middleware"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
	"github.com/mentorhub/mentorhub-api/internal/router"
	"github.com/mentorhub/mentorhub-api/internal/service"
	cloud "github.com/mentorhub/mentorhub-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Mentor{},
		&models.Batch{},
		&models.MentorshipAssignment{},
		&models.Intern{},
		&models.Observation{},
		&models.Feedback{},
		&models.FeedbackConversation{},
		&models.ActivityEvent{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSServerURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	batchRepo := repository.NewBatchRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	internRepo := repository.NewInternRepository(db)
	observationRepo := repository.NewObservationRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	mentorRepo := repository.NewMentorRepository(db)

	authzService := service.NewAuthzService(assignmentRepo, logger)
	mentorService := service.NewMentorService(mentorRepo, logger)
	activityService := service.NewActivityService(activityRepo, authzService, natsConn, logger)
	batchService := service.NewBatchService(batchRepo, authzService, validate, logger)
	internService := service.NewInternService(internRepo, batchRepo, authzService, activityService, validate, uploader, logger)
	observationService := service.NewObservationService(observationRepo, internRepo, batchRepo, authzService, activityService, validate, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, internRepo, authzService, activityService, validate, logger)
	statsService := service.NewStatsService(statsRepo, batchRepo, authzService, redisClient, cfg.StatsCacheTTL, cfg.ObservationStaleWindow, logger)

	mentorHandler := handler.NewMentorHandler(mentorService, logger)
	batchHandler := handler.NewBatchHandler(batchService, logger)
	internHandler := handler.NewInternHandler(internService, logger)
	observationHandler := handler.NewObservationHandler(observationService, logger)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, logger)
	statsHandler := handler.NewStatsHandler(statsService, logger)
	activityHandler := handler.NewActivityHandler(activityService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		MentorHandler:      mentorHandler,
		BatchHandler:       batchHandler,
		InternHandler:      internHandler,
		ObservationHandler: observationHandler,
		FeedbackHandler:    feedbackHandler,
		StatsHandler:       statsHandler,
		ActivityHandler:    activityHandler,
		SessionMiddleware:  middleware.SessionProtected(cfg.SessionSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
