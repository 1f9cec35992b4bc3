// Package router assembles the Fiber app: middleware, services, and routes.
package router

import (
	"github.com/inesh111/pj-motors/internal/application/carevents"
	carsvc "github.com/inesh111/pj-motors/internal/application/cars"
	docsvc "github.com/inesh111/pj-motors/internal/application/documents"
	"github.com/inesh111/pj-motors/internal/config"
	"github.com/inesh111/pj-motors/internal/database"
	"github.com/inesh111/pj-motors/internal/health"
	"github.com/inesh111/pj-motors/internal/interfaces/handlers/cars"
	"github.com/inesh111/pj-motors/internal/interfaces/handlers/documents"
	"github.com/inesh111/pj-motors/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. The returned DB and Redis client are for startup checks and
// shutdown; the Redis client is nil when REDIS_URL is not configured.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
		BodyLimit:             50 * 1024 * 1024,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.CORSAllowedSuffix,
		DevPassword:   cfg.DevPassword,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	var pinger health.DBPinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		DB:             pinger,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)
	app.Get("/health/errors", healthHandlers.Errors)

	eventsService := &carevents.Service{DB: db}
	documentsService := &docsvc.Service{DB: db, Root: cfg.UploadsDir}
	carsService := &carsvc.Service{DB: db, Files: documentsService, Events: eventsService}

	carHandlers := &cars.Handlers{Service: carsService, Events: eventsService}
	docHandlers := &documents.Handlers{Service: documentsService, Events: eventsService}

	app.Get("/cars", carHandlers.List)
	app.Post("/cars", carHandlers.Create)
	app.Get("/cars/:id", carHandlers.Get)
	app.Patch("/cars/:id", carHandlers.Update)
	app.Delete("/cars/:id", carHandlers.Delete)
	app.Get("/cars/:id/events", carHandlers.ListEvents)
	app.Post("/cars/:id/documents", docHandlers.Upload)
	app.Get("/documents/:id", docHandlers.Fetch)

	return app, db, rdb, nil
}
