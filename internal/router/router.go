package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mentorhub/mentorhub-api/internal/config"
	"github.com/mentorhub/mentorhub-api/internal/handler"
	"github.com/mentorhub/mentorhub-api/internal/middleware"
	"github.com/mentorhub/mentorhub-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	MentorHandler      *handler.MentorHandler
	BatchHandler       *handler.BatchHandler
	InternHandler      *handler.InternHandler
	ObservationHandler *handler.ObservationHandler
	FeedbackHandler    *handler.FeedbackHandler
	StatsHandler       *handler.StatsHandler
	ActivityHandler    *handler.ActivityHandler
	SessionMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided session middleware, or a no-op if nil
	sessionMiddleware := deps.SessionMiddleware
	if sessionMiddleware == nil {
		sessionMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.MentorHandler != nil {
		deps.MentorHandler.Register(api.Group("", sessionMiddleware))
	}

	batches := api.Group("/batches", sessionMiddleware)
	if deps.BatchHandler != nil {
		deps.BatchHandler.Register(batches)
	}
	if deps.StatsHandler != nil {
		deps.StatsHandler.Register(batches)
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(batches)
	}
	if deps.InternHandler != nil {
		deps.InternHandler.Register(batches)

		// Roster imports parse uploaded files, so they get their own limiter.
		importGroup := batches.Group("", middleware.RateLimit("roster-import", 5, time.Minute))
		deps.InternHandler.RegisterImport(importGroup)
	}
	if deps.ObservationHandler != nil {
		deps.ObservationHandler.RegisterBatchRoutes(batches)
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.RegisterBatchRoutes(batches)
	}

	interns := api.Group("/interns", sessionMiddleware)
	if deps.ObservationHandler != nil {
		deps.ObservationHandler.RegisterInternRoutes(interns)
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.RegisterInternRoutes(interns)
	}

	feedbacks := api.Group("/feedbacks", sessionMiddleware)
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.RegisterFeedbackRoutes(feedbacks)
	}
}
