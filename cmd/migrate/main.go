package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"practice-quest/internal/config"
	"practice-quest/internal/database"
	"practice-quest/internal/logger"

	"go.uber.org/zap"
)

// Usage: migrate [-steps N] up|down|version
func main() {
	steps := flag.Int("steps", 1, "number of migrations to revert with down")
	flag.Parse()
	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		l.Fatal("Failed to open migrations", zap.Error(err))
	}
	defer migrator.Close()

	switch command {
	case "up":
		applied, err := migrator.Up(ctx)
		if err != nil {
			l.Fatal("Failed to run migrations", zap.Int("applied", applied), zap.Error(err))
		}
	case "down":
		reverted, err := migrator.Down(ctx, *steps)
		if err != nil {
			l.Fatal("Failed to revert migrations", zap.Int("reverted", reverted), zap.Error(err))
		}
		l.Info("Reverted migrations", zap.Int("reverted", reverted))
	case "version":
		version, err := migrator.Version(ctx)
		if err != nil {
			l.Fatal("Failed to read migration version", zap.Error(err))
		}
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q, expected up, down or version\n", command)
		os.Exit(2)
	}
}
