// cmd/historian/main.go is an asynchronous historian service that pops game
// action records from a Redis queue and persists them to PostgreSQL.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jason-s-yu/modernart/internal/cache"
	"github.com/jason-s-yu/modernart/internal/config"
	"github.com/jason-s-yu/modernart/internal/database"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	settings := config.Load()

	logger := logrus.New()
	if level, err := logrus.ParseLevel(settings.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if settings.RedisAddr == "" || settings.DatabaseURL == "" {
		logger.Fatal("REDIS_ADDR and DATABASE_URL must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.ConnectDB(ctx, settings.DatabaseURL); err != nil {
		logger.WithError(err).Fatal("cannot connect to database")
	}
	defer database.Close()
	if err := database.EnsureSchema(ctx); err != nil {
		logger.WithError(err).Fatal("cannot create schema")
	}

	queue, err := cache.Connect(ctx, settings.RedisAddr, settings.RedisDB, settings.HistoryQueue)
	if err != nil {
		logger.WithError(err).Fatal("cannot connect to redis")
	}
	defer queue.Close()

	h := NewHistorian(queue, postgresSink{}, settings.HistoryBatchSize, settings.HistoryFlush, settings.Inactivity, logger)
	h.Run(ctx)
}
