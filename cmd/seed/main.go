// cmd/seed/main.go
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/georgeY2002/E-Commerce/internal/config"
	"github.com/georgeY2002/E-Commerce/internal/database"
)

// Seeds the catalog with the initial luxury product fixtures and ensures
// the default admin account exists. Safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logrus.Fatal("Failed to run migrations: ", err)
	}

	if err := database.SeedInitialData(db); err != nil {
		logrus.Fatal("Failed to seed data: ", err)
	}

	logrus.Info("Seeding complete")
}
