package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"practice-quest/cmd/seed_badges/internal/seedmodels"
	"practice-quest/internal/config"
	"practice-quest/internal/database"
	"practice-quest/internal/logger"
	"practice-quest/internal/repository"
	"practice-quest/internal/service"

	"go.uber.org/zap"
)

// Seeds the default badge catalogue. Existing definitions are left as they
// are so admin edits survive a re-run.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// If logger is not initialized yet, use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Info("Starting badge seeding process...")
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	seeds, err := seedmodels.DefaultBadges()
	if err != nil {
		log.Fatal("Failed to load badge catalogue", zap.Error(err))
	}
	log.Info("Loaded badge catalogue", zap.Int("badges", len(seeds)))

	txManager := repository.NewTransactionManagerAdapter(db)
	badgeRepo := repository.NewBadgeRepository(db)
	engine := service.NewBadgeEngine(badgeRepo, repository.NewUserBadgeRepository(db), nil, cfg.Gamification.Rules())

	created, skipped := 0, 0
	err = txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, seed := range seeds {
			existing, err := badgeRepo.GetByKey(txCtx, seed.BadgeKey)
			if err != nil {
				return fmt.Errorf("error checking badge %s: %w", seed.BadgeKey, err)
			}
			if existing != nil {
				log.Info("Badge exists.", zap.String("badge_key", seed.BadgeKey))
				skipped++
				continue
			}
			if _, err := engine.CreateBadge(txCtx, seed.ToDomain()); err != nil {
				return fmt.Errorf("failed to create badge %s: %w", seed.BadgeKey, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		log.Fatal("Badge seeding rolled back", zap.Error(err))
	}
	log.Info("Badge seeding process completed.", zap.Int("created", created), zap.Int("skipped", skipped))
}
