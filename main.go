package main

import (
	"log/slog"
	"os"

	"github.com/prodvi/backend/repository"
	"github.com/prodvi/backend/services"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Setup structured logging with JSON format
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Load configuration
	config := services.LoadConfig()

	server := services.NewServer(config)

	// Initialize database connection
	if config.Database.URL != "" {
		db, err := gorm.Open(postgres.Open(config.Database.URL), &gorm.Config{
			Logger: logger.Default.LogMode(gormLogLevel(config.Database.LogLevel)),
		})
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}

		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxIdleConns(config.Database.MaxIdleConns)
			sqlDB.SetMaxOpenConns(config.Database.MaxOpenConns)
		}

		repo := repository.NewGORMRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Connected to database")

		server.SetDatabase(repo, db)

		if config.Database.Seed {
			seeder := services.NewDatabaseSeeder(repo)
			if err := seeder.SeedDatabase(); err != nil {
				slog.Error("Failed to seed database", "error", err)
			}
		}
	} else {
		slog.Warn("Database URL not configured, running without database")
	}

	// Classifier training failure is fatal: there is no fallback
	// classification path without the question dataset.
	if err := server.InitializeServices(); err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	server.Start()
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}
