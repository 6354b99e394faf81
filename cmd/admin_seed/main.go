// Package main seeds the administrator account. Run once after deploying;
// it is a no-op when the admin already exists.
package main

import (
	"errors"
	"os"

	"paygo/internal/config"
	"paygo/internal/models"
	"paygo/internal/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logrus.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		logrus.WithError(err).Fatal("database initialization failed")
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	users := repositories.NewUserRepository(repositories.DB)

	if _, err := users.GetByEmail(adminEmail); err == nil {
		logrus.Info("admin user already exists")
		return
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		logrus.WithError(err).Fatal("admin lookup failed")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash password")
	}

	admin := &models.User{
		FirstName:    "PayGo",
		LastName:     "Admin",
		Email:        adminEmail,
		Password:     string(hashedPassword),
		Role:         "admin",
		IsVerified:   true,
		TokenVersion: 1,
	}

	if err := users.CreateWithWallet(admin); err != nil {
		logrus.WithError(err).Fatal("failed to create admin user")
	}

	logrus.WithField("email", admin.Email).Info("admin account created")
}
