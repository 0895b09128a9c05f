// Package routes wires repositories, services, handlers and middleware
// into the fiber application.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"aurum/internal/config"
	"aurum/internal/handlers"
	"aurum/internal/middleware"
	"aurum/internal/repositories"
	"aurum/internal/repositories/cache"
	"aurum/internal/services/admin"
	"aurum/internal/services/auth"
	"aurum/internal/services/balance"
	"aurum/internal/token"
)

// SetupRoutes configures all application routes. Every route below /auth,
// /balance and /admin runs inside a request-scoped database transaction;
// everything except signup and login additionally requires a bearer token.
func SetupRoutes(app *fiber.App, db *gorm.DB, store cache.SessionStore, cfg *config.Config) error {
	codec, err := token.NewCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository(db)

	authService := auth.NewService(userRepo, store, codec)
	balanceService := balance.NewService(userRepo)
	adminService := admin.NewService(userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	balanceHandler := handlers.NewBalanceHandler(balanceService)
	adminHandler := handlers.NewAdminHandler(adminService)

	sessionMW := middleware.NewSessionMiddleware(db)
	authMW := middleware.NewAuthMiddleware(store, userRepo)

	app.Get("/health", handlers.Health)

	authGroup := app.Group("/auth", sessionMW.Handler)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	protected := authGroup.Use(authMW.Handler)
	protected.Post("/logout", authHandler.Logout)
	protected.Post("/refresh", middleware.RequireRefreshToken, authHandler.Refresh)
	protected.Post("/change-password", authHandler.ChangePassword)
	protected.Post("/deactivate", authHandler.Deactivate)
	protected.Post("/delete", authHandler.Delete)
	protected.Get("/me", authHandler.Me)

	balanceGroup := app.Group("/balance", sessionMW.Handler, authMW.Handler)
	balanceGroup.Get("/get", balanceHandler.GetBalance)
	balanceGroup.Patch("/deposit", balanceHandler.Deposit)
	balanceGroup.Patch("/withdraw", balanceHandler.Withdraw)

	adminGroup := app.Group("/admin", sessionMW.Handler, authMW.Handler, middleware.AdminRequired)
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Post("/block/:user_id", adminHandler.BlockUser)
	adminGroup.Post("/unblock/:user_id", adminHandler.UnblockUser)

	return nil
}
