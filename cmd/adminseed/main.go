// Package main seeds an admin account. If a user already exists for
// ADMIN_EMAIL it is promoted to the admin role instead.
package main

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/sirupsen/logrus"

	"aurum/internal/config"
	"aurum/internal/dbsession"
	"aurum/internal/models"
	"aurum/internal/repositories"
	"aurum/internal/services/auth"
	"aurum/internal/validation"
)

func main() {
	config.LoadEnv()
	cfg := config.New()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logrus.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := validation.ValidatePassword(adminPassword); err != nil {
		logrus.Fatalf("admin password rejected: %v", err)
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

	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	existing, err := users.GetByEmail(ctx, adminEmail)
	if err != nil && !stderrors.Is(err, repositories.ErrNotFound) {
		logrus.Fatalf("failed to look up admin user: %v", err)
	}

	if existing != nil {
		if existing.Role == models.RoleAdmin {
			logrus.Info("admin user already exists")
			return
		}
		existing.Role = models.RoleAdmin
		if err := users.Save(ctx, existing); err != nil {
			logrus.Fatalf("failed to promote user: %v", err)
		}
		logrus.Infof("promoted user %d to admin", existing.ID)
		return
	}

	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		logrus.Fatalf("failed to hash password: %v", err)
	}

	adminUser := &models.User{
		Email:    &adminEmail,
		Password: hashed,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := users.Create(ctx, adminUser); err != nil {
		logrus.Fatalf("failed to create admin user: %v", err)
	}

	logrus.Infof("admin account created with id %d", adminUser.ID)
}
