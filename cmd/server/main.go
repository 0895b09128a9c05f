// Package main is the entry point for the API server. It loads
// configuration, opens the database pool and the session cache, wires the
// routes and serves until interrupted.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"aurum/internal/config"
	"aurum/internal/dbsession"
	"aurum/internal/repositories"
	"aurum/internal/repositories/cache"
	"aurum/internal/routes"
)

func main() {
	config.LoadEnv()
	cfg := config.New()

	if config.IsProduction() {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	pools := dbsession.NewPools(cfg.DB)
	defer pools.Close()

	db, err := pools.Get(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	if err := repositories.AutoMigrate(db); err != nil {
		logrus.Fatalf("failed to run migrations: %v", err)
	}

	store := cache.NewSessionStore(cache.NewRedisClient(&cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}))
	defer func() {
		if err := store.Close(); err != nil {
			logrus.Warnf("failed to close session store: %v", err)
		}
	}()

	app := fiber.New()

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/auth/login", "/auth/signup"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"detail": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	if err := routes.SetupRoutes(app, db, store, cfg); err != nil {
		logrus.Fatalf("failed to set up routes: %v", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logrus.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("shutdown error: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
