package badger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

// StockStorage implements the StockStorage interface for Badger
type StockStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewStockStorage creates a new StockStorage instance
func NewStockStorage(db *BadgerDB, logger arbor.ILogger) interfaces.StockStorage {
	return &StockStorage{
		db:     db,
		logger: logger,
	}
}

func (s *StockStorage) CreateRecord(ctx context.Context, record *models.StockRecord) error {
	if record.ID == "" {
		return fmt.Errorf("record ID is required")
	}

	if err := s.checkDuplicate(record); err != nil {
		return err
	}

	if err := s.db.Store().Insert(record.ID, record); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}

	s.logger.Debug().
		Str("record_id", record.ID).
		Str("symbol", record.Symbol).
		Bool("manual", record.IsManualEntry).
		Msg("Stock record created")
	return nil
}

// checkDuplicate enforces the watchlist uniqueness invariants: scraped rows
// are unique by exact symbol, manual entries by case-insensitive name. The
// record's own stored row never conflicts, so updates pass through the same
// check as creates.
func (s *StockStorage) checkDuplicate(record *models.StockRecord) error {
	if !record.IsManualEntry {
		var existing []models.StockRecord
		if err := s.db.Store().Find(&existing, badgerhold.Where("Symbol").Eq(record.Symbol)); err != nil {
			return fmt.Errorf("failed to check symbol uniqueness: %w", err)
		}
		for i := range existing {
			if existing[i].ID != record.ID && !existing[i].IsManualEntry {
				return fmt.Errorf("%w: symbol %s", interfaces.ErrDuplicateRecord, record.Symbol)
			}
		}
		return nil
	}

	all, err := s.list()
	if err != nil {
		return err
	}
	for _, r := range all {
		if r.ID != record.ID && r.IsManualEntry && strings.EqualFold(r.Name, record.Name) {
			return fmt.Errorf("%w: name %s", interfaces.ErrDuplicateRecord, record.Name)
		}
	}
	return nil
}

func (s *StockStorage) GetRecord(ctx context.Context, id string) (*models.StockRecord, error) {
	var record models.StockRecord
	if err := s.db.Store().Get(id, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("%w: %s", interfaces.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return &record, nil
}

func (s *StockStorage) GetRecordBySymbol(ctx context.Context, symbol string) (*models.StockRecord, error) {
	var records []models.StockRecord
	if err := s.db.Store().Find(&records, badgerhold.Where("Symbol").Eq(symbol)); err != nil {
		return nil, fmt.Errorf("failed to find record: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: symbol %s", interfaces.ErrRecordNotFound, symbol)
	}
	return &records[0], nil
}

func (s *StockStorage) UpdateRecord(ctx context.Context, record *models.StockRecord) error {
	if err := s.checkDuplicate(record); err != nil {
		return err
	}

	if err := s.db.Store().Update(record.ID, record); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("%w: %s", interfaces.ErrRecordNotFound, record.ID)
		}
		return fmt.Errorf("failed to update record: %w", err)
	}
	return nil
}

func (s *StockStorage) DeleteRecord(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.StockRecord{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

func (s *StockStorage) ListRecords(ctx context.Context) ([]*models.StockRecord, error) {
	return s.list()
}

func (s *StockStorage) list() ([]*models.StockRecord, error) {
	var records []models.StockRecord
	if err := s.db.Store().Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	result := make([]*models.StockRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

func (s *StockStorage) DeleteAll(ctx context.Context) error {
	if err := s.db.Store().DeleteMatching(&models.StockRecord{}, nil); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	s.logger.Info().Msg("All stock records deleted")
	return nil
}

var _ interfaces.StockStorage = (*StockStorage)(nil)
