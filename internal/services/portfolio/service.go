package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/common"
	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

// Evaluation is one lot plus its computed economics.
type Evaluation struct {
	Lot         *models.PortfolioLot `json:"lot"`
	BuyCharges  Charges              `json:"buy_charges"`
	SellCharges Charges              `json:"sell_charges"`
	// NetInvested is buy turnover plus buy-side charges.
	NetInvested decimal.Decimal `json:"net_invested"`
	// RealizedPL is net sell proceeds minus net invested; zero for open lots.
	RealizedPL decimal.Decimal `json:"realized_pl"`
}

// Summary aggregates the whole ledger.
type Summary struct {
	Lots          int             `json:"lots"`
	OpenLots      int             `json:"open_lots"`
	TotalInvested decimal.Decimal `json:"total_invested"`
	OpenInvested  decimal.Decimal `json:"open_invested"`
	TotalCharges  decimal.Decimal `json:"total_charges"`
	RealizedPL    decimal.Decimal `json:"realized_pl"`
}

// Service is the portfolio ledger over the lot store.
type Service struct {
	storage interfaces.PortfolioStorage
	logger  arbor.ILogger
}

// NewService creates a portfolio service.
func NewService(storage interfaces.PortfolioStorage, logger arbor.ILogger) *Service {
	return &Service{storage: storage, logger: logger}
}

// AddLot validates and stores a new buy transaction.
func (s *Service) AddLot(ctx context.Context, symbol string, quantity, buyPrice decimal.Decimal, buyDate time.Time) (*models.PortfolioLot, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if quantity.Sign() <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if buyPrice.Sign() <= 0 {
		return nil, fmt.Errorf("buy price must be positive")
	}
	if buyDate.IsZero() {
		buyDate = time.Now().UTC()
	}

	now := time.Now().UTC()
	lot := &models.PortfolioLot{
		ID:        common.NewLotID(),
		Symbol:    symbol,
		Quantity:  quantity,
		BuyPrice:  buyPrice,
		BuyDate:   buyDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.CreateLot(ctx, lot); err != nil {
		return nil, fmt.Errorf("failed to store lot: %w", err)
	}

	s.logger.Info().
		Str("lot_id", lot.ID).
		Str("symbol", symbol).
		Str("quantity", quantity.String()).
		Msg("Portfolio lot added")
	return lot, nil
}

// CloseLot records the sell side of an open lot.
func (s *Service) CloseLot(ctx context.Context, id string, sellPrice decimal.Decimal, sellDate time.Time) (*models.PortfolioLot, error) {
	if sellPrice.Sign() <= 0 {
		return nil, fmt.Errorf("sell price must be positive")
	}

	lot, err := s.storage.GetLot(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot.Closed() {
		return nil, fmt.Errorf("lot %s is already closed", id)
	}
	if sellDate.IsZero() {
		sellDate = time.Now().UTC()
	}

	lot.SellPrice = &sellPrice
	lot.SellDate = &sellDate
	lot.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateLot(ctx, lot); err != nil {
		return nil, fmt.Errorf("failed to update lot: %w", err)
	}

	s.logger.Info().
		Str("lot_id", lot.ID).
		Str("symbol", lot.Symbol).
		Str("sell_price", sellPrice.String()).
		Msg("Portfolio lot closed")
	return lot, nil
}

// DeleteLot removes a lot from the ledger.
func (s *Service) DeleteLot(ctx context.Context, id string) error {
	return s.storage.DeleteLot(ctx, id)
}

// Evaluate returns every lot with charges and profit/loss computed.
func (s *Service) Evaluate(ctx context.Context) ([]Evaluation, error) {
	lots, err := s.storage.ListLots(ctx)
	if err != nil {
		return nil, err
	}

	evals := make([]Evaluation, 0, len(lots))
	for _, lot := range lots {
		evals = append(evals, evaluate(lot))
	}
	return evals, nil
}

// Summarize aggregates the ledger into portfolio totals.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	evals, err := s.Evaluate(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalInvested: decimal.Zero,
		OpenInvested:  decimal.Zero,
		TotalCharges:  decimal.Zero,
		RealizedPL:    decimal.Zero,
	}
	for _, e := range evals {
		summary.Lots++
		summary.TotalInvested = summary.TotalInvested.Add(e.NetInvested)
		summary.TotalCharges = summary.TotalCharges.Add(e.BuyCharges.Total()).Add(e.SellCharges.Total())
		if e.Lot.Closed() {
			summary.RealizedPL = summary.RealizedPL.Add(e.RealizedPL)
		} else {
			summary.OpenLots++
			summary.OpenInvested = summary.OpenInvested.Add(e.NetInvested)
		}
	}
	return summary, nil
}

func evaluate(lot *models.PortfolioLot) Evaluation {
	buy, sell := LotCharges(lot)
	netInvested := lot.BuyTurnover().Add(buy.Total())

	e := Evaluation{
		Lot:         lot,
		BuyCharges:  buy,
		SellCharges: sell,
		NetInvested: netInvested,
		RealizedPL:  decimal.Zero,
	}
	if lot.Closed() {
		netProceeds := lot.SellTurnover().Sub(sell.Total())
		e.RealizedPL = netProceeds.Sub(netInvested)
	}
	return e
}
