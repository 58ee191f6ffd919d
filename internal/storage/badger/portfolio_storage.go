package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

// PortfolioStorage implements the PortfolioStorage interface for Badger
type PortfolioStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewPortfolioStorage creates a new PortfolioStorage instance
func NewPortfolioStorage(db *BadgerDB, logger arbor.ILogger) interfaces.PortfolioStorage {
	return &PortfolioStorage{
		db:     db,
		logger: logger,
	}
}

func (s *PortfolioStorage) CreateLot(ctx context.Context, lot *models.PortfolioLot) error {
	if lot.ID == "" {
		return fmt.Errorf("lot ID is required")
	}
	if err := s.db.Store().Insert(lot.ID, lot); err != nil {
		return fmt.Errorf("failed to store lot: %w", err)
	}
	s.logger.Debug().
		Str("lot_id", lot.ID).
		Str("symbol", lot.Symbol).
		Msg("Portfolio lot created")
	return nil
}

func (s *PortfolioStorage) GetLot(ctx context.Context, id string) (*models.PortfolioLot, error) {
	var lot models.PortfolioLot
	if err := s.db.Store().Get(id, &lot); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrLotNotFound, id)
		}
		return nil, fmt.Errorf("failed to get lot: %w", err)
	}
	return &lot, nil
}

func (s *PortfolioStorage) UpdateLot(ctx context.Context, lot *models.PortfolioLot) error {
	if err := s.db.Store().Update(lot.ID, lot); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("%w: %s", interfaces.ErrLotNotFound, lot.ID)
		}
		return fmt.Errorf("failed to update lot: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) DeleteLot(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.PortfolioLot{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete lot: %w", err)
	}
	return nil
}

func (s *PortfolioStorage) ListLots(ctx context.Context) ([]*models.PortfolioLot, error) {
	var lots []models.PortfolioLot
	if err := s.db.Store().Find(&lots, nil); err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}

	sort.Slice(lots, func(i, j int) bool {
		return lots[i].BuyDate.Before(lots[j].BuyDate)
	})

	result := make([]*models.PortfolioLot, len(lots))
	for i := range lots {
		result[i] = &lots[i]
	}
	return result, nil
}

var _ interfaces.PortfolioStorage = (*PortfolioStorage)(nil)
