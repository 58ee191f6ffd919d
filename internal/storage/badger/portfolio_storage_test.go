package badger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

func newLot(id, symbol string, buyDate time.Time) *models.PortfolioLot {
	now := time.Now().UTC()
	return &models.PortfolioLot{
		ID:        id,
		Symbol:    symbol,
		Quantity:  decimal.NewFromInt(10),
		BuyPrice:  decimal.NewFromFloat(3417.50),
		BuyDate:   buyDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPortfolioStorage_RoundTrip(t *testing.T) {
	storage := NewPortfolioStorage(newTestDB(t), arbor.NewLogger())
	ctx := context.Background()

	lot := newLot("lot_1", "TCS", time.Now().UTC())
	require.NoError(t, storage.CreateLot(ctx, lot))

	got, err := storage.GetLot(ctx, "lot_1")
	require.NoError(t, err)
	assert.Equal(t, "TCS", got.Symbol)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, got.BuyPrice.Equal(decimal.NewFromFloat(3417.50)))
	assert.False(t, got.Closed())

	sellPrice := decimal.NewFromFloat(3600)
	sellDate := time.Now().UTC()
	got.SellPrice = &sellPrice
	got.SellDate = &sellDate
	require.NoError(t, storage.UpdateLot(ctx, got))

	closed, err := storage.GetLot(ctx, "lot_1")
	require.NoError(t, err)
	require.True(t, closed.Closed())
	assert.True(t, closed.SellPrice.Equal(sellPrice))
}

func TestPortfolioStorage_ListOrderedByBuyDate(t *testing.T) {
	storage := NewPortfolioStorage(newTestDB(t), arbor.NewLogger())
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, storage.CreateLot(ctx, newLot("lot_b", "INFY", base.AddDate(0, 1, 0))))
	require.NoError(t, storage.CreateLot(ctx, newLot("lot_a", "TCS", base)))

	lots, err := storage.ListLots(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, "lot_a", lots[0].ID)
	assert.Equal(t, "lot_b", lots[1].ID)
}

func TestPortfolioStorage_MissingLot(t *testing.T) {
	storage := NewPortfolioStorage(newTestDB(t), arbor.NewLogger())

	_, err := storage.GetLot(context.Background(), "lot_missing")
	assert.ErrorIs(t, err, interfaces.ErrLotNotFound)

	assert.NoError(t, storage.DeleteLot(context.Background(), "lot_missing"))
}
