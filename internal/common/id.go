package common

import (
	"github.com/google/uuid"
)

// NewRecordID generates a unique stock record ID with the "stk_" prefix
// Format: stk_<uuid>
func NewRecordID() string {
	return "stk_" + uuid.New().String()
}

// NewLotID generates a unique portfolio lot ID with the "lot_" prefix
func NewLotID() string {
	return "lot_" + uuid.New().String()
}
