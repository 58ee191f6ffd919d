package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioLot is a buy transaction with an optional matching sell. Brokerage,
// statutory charges and profit/loss are computed by the portfolio service and
// never persisted.
type PortfolioLot struct {
	ID        string          `json:"id" badgerhold:"key"`
	Symbol    string          `json:"symbol" badgerholdIndex:"Symbol"`
	Quantity  decimal.Decimal `json:"quantity"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	BuyDate   time.Time       `json:"buy_date"`
	// SellPrice is nil while the lot is still open.
	SellPrice *decimal.Decimal `json:"sell_price,omitempty"`
	SellDate  *time.Time       `json:"sell_date,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Closed reports whether the lot has been sold.
func (l *PortfolioLot) Closed() bool {
	return l.SellPrice != nil
}

// BuyTurnover returns quantity x buy price.
func (l *PortfolioLot) BuyTurnover() decimal.Decimal {
	return l.Quantity.Mul(l.BuyPrice)
}

// SellTurnover returns quantity x sell price, or zero for open lots.
func (l *PortfolioLot) SellTurnover() decimal.Decimal {
	if l.SellPrice == nil {
		return decimal.Zero
	}
	return l.Quantity.Mul(*l.SellPrice)
}
