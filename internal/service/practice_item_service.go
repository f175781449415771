package service

import (
	"context"
	"time"

	"practice-quest/internal/domain"
	"practice-quest/internal/logger"
	"practice-quest/internal/util"

	"go.uber.org/zap"
)

// PracticeItemService manages the things a user practices.
type PracticeItemService interface {
	Create(ctx context.Context, userID, name, description string) (*domain.PracticeItem, error)
	List(ctx context.Context, userID string, includeArchived bool) ([]*domain.PracticeItem, error)
	Archive(ctx context.Context, userID, itemID string) error
}

type practiceItemServiceImpl struct {
	itemRepo domain.PracticeItemRepository
	now      func() time.Time
}

// NewPracticeItemService creates a new instance of PracticeItemService.
func NewPracticeItemService(itemRepo domain.PracticeItemRepository) PracticeItemService {
	return &practiceItemServiceImpl{itemRepo: itemRepo, now: time.Now}
}

func (s *practiceItemServiceImpl) Create(ctx context.Context, userID, name, description string) (*domain.PracticeItem, error) {
	item := domain.NewPracticeItem(util.NewULID(), userID, name, description, s.now())
	if errs := item.Validate(); len(errs) > 0 {
		return nil, errs
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	logger.Get().Info("Practice item created", zap.String("user_id", userID), zap.String("item_id", item.ID))
	return item, nil
}

func (s *practiceItemServiceImpl) List(ctx context.Context, userID string, includeArchived bool) ([]*domain.PracticeItem, error) {
	return s.itemRepo.ListByUser(ctx, userID, includeArchived)
}

// Archive hides an item from new sessions. Past sessions keep referencing it.
func (s *practiceItemServiceImpl) Archive(ctx context.Context, userID, itemID string) error {
	return s.itemRepo.Archive(ctx, userID, itemID, s.now())
}
