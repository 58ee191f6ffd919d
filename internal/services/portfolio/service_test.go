package portfolio

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

type memLotStorage struct {
	mu   sync.Mutex
	lots map[string]*models.PortfolioLot
}

func newMemLotStorage() *memLotStorage {
	return &memLotStorage{lots: make(map[string]*models.PortfolioLot)}
}

func (m *memLotStorage) CreateLot(_ context.Context, lot *models.PortfolioLot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lots[lot.ID] = lot
	return nil
}

func (m *memLotStorage) GetLot(_ context.Context, id string) (*models.PortfolioLot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lot, ok := m.lots[id]
	if !ok {
		return nil, interfaces.ErrLotNotFound
	}
	clone := *lot
	return &clone, nil
}

func (m *memLotStorage) UpdateLot(_ context.Context, lot *models.PortfolioLot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lots[lot.ID] = lot
	return nil
}

func (m *memLotStorage) DeleteLot(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lots, id)
	return nil
}

func (m *memLotStorage) ListLots(_ context.Context) ([]*models.PortfolioLot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.PortfolioLot, 0, len(m.lots))
	for _, lot := range m.lots {
		out = append(out, lot)
	}
	return out, nil
}

func newTestService() (*Service, *memLotStorage) {
	storage := newMemLotStorage()
	return NewService(storage, arbor.NewLogger()), storage
}

func TestAddLot_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLot(ctx, "", decimal.NewFromInt(10), decimal.NewFromInt(100), time.Time{})
	assert.Error(t, err)

	_, err = svc.AddLot(ctx, "TCS", decimal.Zero, decimal.NewFromInt(100), time.Time{})
	assert.Error(t, err)

	_, err = svc.AddLot(ctx, "TCS", decimal.NewFromInt(10), decimal.NewFromInt(-5), time.Time{})
	assert.Error(t, err)

	lot, err := svc.AddLot(ctx, "TCS", decimal.NewFromInt(10), decimal.NewFromInt(100), time.Time{})
	require.NoError(t, err)
	assert.NotEmpty(t, lot.ID)
	assert.False(t, lot.BuyDate.IsZero())
}

func TestChargesFor_BuySide(t *testing.T) {
	// Turnover 1000: brokerage 0.50, STT 1.00, stamp duty 0.15.
	c := chargesFor(decimal.NewFromInt(1000), true)

	assert.InDelta(t, 0.50, c.Brokerage.InexactFloat64(), 0.0001)
	assert.InDelta(t, 1.00, c.STT.InexactFloat64(), 0.0001)
	assert.InDelta(t, 0.15, c.StampDuty.InexactFloat64(), 0.0001)
	assert.InDelta(t, 0.0297, c.ExchangeTxn.InexactFloat64(), 0.0001)
	assert.True(t, c.Total().GreaterThan(decimal.Zero))
}

func TestChargesFor_BrokerageCap(t *testing.T) {
	// 0.05% of 100000 is 50, capped at the flat 20.
	c := chargesFor(decimal.NewFromInt(100000), true)
	assert.True(t, c.Brokerage.Equal(decimal.NewFromInt(20)))
}

func TestChargesFor_SellSideHasNoStampDuty(t *testing.T) {
	c := chargesFor(decimal.NewFromInt(1000), false)
	assert.True(t, c.StampDuty.IsZero())
}

func TestEvaluate_RealizedProfitNetOfCharges(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	lot, err := svc.AddLot(ctx, "TCS", decimal.NewFromInt(10), decimal.NewFromInt(100), time.Time{})
	require.NoError(t, err)
	_, err = svc.CloseLot(ctx, lot.ID, decimal.NewFromInt(110), time.Time{})
	require.NoError(t, err)

	evals, err := svc.Evaluate(ctx)
	require.NoError(t, err)
	require.Len(t, evals, 1)

	e := evals[0]
	// Gross profit is 100; both sides' charges come out of it.
	assert.InDelta(t, 96.435, e.RealizedPL.InexactFloat64(), 0.01)
	assert.InDelta(t, 1001.776, e.NetInvested.InexactFloat64(), 0.01)
}

func TestEvaluate_OpenLotHasNoRealizedPL(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLot(ctx, "TCS", decimal.NewFromInt(10), decimal.NewFromInt(100), time.Time{})
	require.NoError(t, err)

	evals, err := svc.Evaluate(ctx)
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.True(t, evals[0].RealizedPL.IsZero())
	assert.True(t, evals[0].SellCharges.Total().IsZero())
}

func TestCloseLot_AlreadyClosed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	lot, err := svc.AddLot(ctx, "TCS", decimal.NewFromInt(5), decimal.NewFromInt(200), time.Time{})
	require.NoError(t, err)

	_, err = svc.CloseLot(ctx, lot.ID, decimal.NewFromInt(210), time.Time{})
	require.NoError(t, err)

	_, err = svc.CloseLot(ctx, lot.ID, decimal.NewFromInt(220), time.Time{})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddLot(ctx, "TCS", decimal.NewFromInt(10), decimal.NewFromInt(100), time.Time{})
	require.NoError(t, err)

	closedLot, err := svc.AddLot(ctx, "INFY", decimal.NewFromInt(10), decimal.NewFromInt(100), time.Time{})
	require.NoError(t, err)
	_, err = svc.CloseLot(ctx, closedLot.ID, decimal.NewFromInt(110), time.Time{})
	require.NoError(t, err)

	summary, err := svc.Summarize(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Lots)
	assert.Equal(t, 1, summary.OpenLots)
	assert.InDelta(t, 96.435, summary.RealizedPL.InexactFloat64(), 0.01)
	assert.InDelta(t, 1001.776, summary.OpenInvested.InexactFloat64(), 0.01)
	assert.True(t, summary.TotalCharges.GreaterThan(decimal.Zero))
}
