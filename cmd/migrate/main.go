package main

import (
	"context"
	"os"

	"github.com/zwelix28/canna-bomb-sub001/config"
	"github.com/zwelix28/canna-bomb-sub001/internal/migrate"
	"github.com/zwelix28/canna-bomb-sub001/pkg/database"
	"github.com/zwelix28/canna-bomb-sub001/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB, log)
	defer database.CloseDB(db, log)

	if err := migrate.Migrate(context.Background(), db, log, migrate.DefaultOptions()); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migration finished")
}
