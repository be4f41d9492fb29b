package main

import (
	"os"

	"cryptoapp/src/config"
	"cryptoapp/src/data"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	// Load the appropriate config based on the environment
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logrus.Fatalf("Error loading config for environment: %v", err)
	}

	dbHandler, err := data.NewDatabaseHandler(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbHandler.CloseConnection()

	sqlDB, err := dbHandler.GetDBClient().DB()
	if err != nil {
		logrus.Fatalf("Failed to get SQL DB from GORM DB: %v", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		logrus.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(sqlDB, "./migrations"); err != nil {
		logrus.Fatalf("Failed to apply migrations: %v", err)
	}

	logrus.Info("Database migration completed successfully")
}
