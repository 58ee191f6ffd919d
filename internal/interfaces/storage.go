package interfaces

import (
	"context"
	"errors"

	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

// ErrRecordNotFound is returned when a stock record does not exist.
var ErrRecordNotFound = errors.New("stock record not found")

// ErrDuplicateRecord is returned when creating a record would violate the
// symbol/name uniqueness invariants.
var ErrDuplicateRecord = errors.New("duplicate stock record")

// ErrLotNotFound is returned when a portfolio lot does not exist.
var ErrLotNotFound = errors.New("portfolio lot not found")

// StockStorage is the narrow persistence contract the extractor writes
// through. The hosted realtime store of the original system exposed the same
// operations; here they are backed by the embedded store.
type StockStorage interface {
	// CreateRecord stores a new record, enforcing the uniqueness invariants
	// (case-sensitive Symbol for scraped rows, case-insensitive Name for
	// manual entries). Returns ErrDuplicateRecord on violation.
	CreateRecord(ctx context.Context, record *models.StockRecord) error

	// GetRecord retrieves a record by ID.
	GetRecord(ctx context.Context, id string) (*models.StockRecord, error)

	// GetRecordBySymbol retrieves a record by exact symbol match.
	GetRecordBySymbol(ctx context.Context, symbol string) (*models.StockRecord, error)

	// UpdateRecord replaces a stored record, re-checking the uniqueness
	// invariants against every other record. Returns ErrDuplicateRecord on
	// violation.
	UpdateRecord(ctx context.Context, record *models.StockRecord) error

	// DeleteRecord removes a record. Deleting a missing record is not an error.
	DeleteRecord(ctx context.Context, id string) error

	// ListRecords returns all records ordered by creation time.
	ListRecords(ctx context.Context) ([]*models.StockRecord, error)

	// DeleteAll removes every record (the dashboard's bulk-clear action).
	DeleteAll(ctx context.Context) error
}

// PortfolioStorage persists buy/sell lots.
type PortfolioStorage interface {
	CreateLot(ctx context.Context, lot *models.PortfolioLot) error
	GetLot(ctx context.Context, id string) (*models.PortfolioLot, error)
	UpdateLot(ctx context.Context, lot *models.PortfolioLot) error
	DeleteLot(ctx context.Context, id string) error
	ListLots(ctx context.Context) ([]*models.PortfolioLot, error)
}
