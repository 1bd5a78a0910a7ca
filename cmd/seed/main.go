// Package main provides a CLI tool for reseeding the catalog with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"shopcat/internal/domain/product"
	"shopcat/internal/infrastructure/storage/postgres"
	"shopcat/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	changeLog, err := postgres.NewChangeLog(txManager)
	if err != nil {
		log.Fatalw("failed to initialize change log", "error", err)
	}

	service := product.NewService(product.ServiceConfig{
		Repo:      postgres.NewProductRepo(txManager),
		TxManager: txManager,
		Changes:   changeLog,
	})

	// Wipe first so the seed is repeatable
	if err := service.DeleteAll(ctx); err != nil {
		log.Fatalw("failed to clear catalog", "error", err)
	}
	log.Info("catalog cleared")

	inserted := 0
	for _, in := range initialProducts {
		if _, err := service.Create(ctx, in); err != nil {
			log.Fatalw("failed to seed product", "title", in.Title, "error", err)
		}
		inserted++
	}

	log.Infow("seeding completed successfully", "products", inserted)
}
