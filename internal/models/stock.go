package models

import (
	"time"
)

// StockRecord is one tracked security on the watchlist.
//
// Invariants (enforced by the storage layer):
//   - Symbol is unique (case-sensitive exact match) when the record is not a
//     manual entry.
//   - Manual entries are deduplicated by case-insensitive Name match instead.
type StockRecord struct {
	ID            string         `json:"id" badgerhold:"key"`
	Symbol        string         `json:"symbol" badgerholdIndex:"Symbol"`
	Name          string         `json:"name"`
	IsManualEntry bool           `json:"is_manual_entry"`
	Metrics       MergedMetrics  `json:"metrics"`
	// PromoterSource is empty until an extraction has decided the promoter
	// holding figure for this record.
	PromoterSource PromoterSource `json:"promoter_source,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewStockRecord creates a record with every metric field unset.
func NewStockRecord(id, symbol, name string, manual bool) *StockRecord {
	now := time.Now().UTC()
	return &StockRecord{
		ID:            id,
		Symbol:        symbol,
		Name:          name,
		IsManualEntry: manual,
		Metrics:       NewMergedMetrics(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ApplyMetrics overwrites only the fields for which the merged result carries
// a value and returns how many were written. Unset merged fields leave the
// record's existing values alone.
func (r *StockRecord) ApplyMetrics(merged MergedMetrics) int {
	if r.Metrics == nil {
		r.Metrics = NewMergedMetrics()
	}
	updated := 0
	for field, value := range merged {
		if value.IsSet() {
			r.Metrics[field] = value
			updated++
		}
	}
	if updated > 0 {
		r.UpdatedAt = time.Now().UTC()
	}
	return updated
}
