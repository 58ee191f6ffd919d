// Package portfolio evaluates buy/sell lots with Indian equity-delivery
// charges. All money math uses decimal arithmetic; floats never touch a
// rupee amount.
package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

// Equity delivery charge schedule (NSE). Rates are fractions of turnover
// unless noted.
var (
	brokerageRate   = decimal.NewFromFloat(0.0005)    // 0.05%, capped per order
	brokerageCap    = decimal.NewFromInt(20)          // flat cap in rupees
	sttRate         = decimal.NewFromFloat(0.001)     // 0.1% both sides
	exchangeTxnRate = decimal.NewFromFloat(0.0000297) // NSE transaction charge
	sebiRate        = decimal.NewFromFloat(0.000001)  // SEBI turnover fee
	stampDutyRate   = decimal.NewFromFloat(0.00015)   // buy side only
	gstRate         = decimal.NewFromFloat(0.18)      // on brokerage + exchange txn
)

// Charges itemizes the cost of one side (buy or sell) of a lot.
type Charges struct {
	Brokerage   decimal.Decimal `json:"brokerage"`
	STT         decimal.Decimal `json:"stt"`
	ExchangeTxn decimal.Decimal `json:"exchange_txn"`
	GST         decimal.Decimal `json:"gst"`
	SEBIFee     decimal.Decimal `json:"sebi_fee"`
	StampDuty   decimal.Decimal `json:"stamp_duty"`
}

// Total sums all components.
func (c Charges) Total() decimal.Decimal {
	return c.Brokerage.
		Add(c.STT).
		Add(c.ExchangeTxn).
		Add(c.GST).
		Add(c.SEBIFee).
		Add(c.StampDuty)
}

// chargesFor computes the statutory charges on one side's turnover. Stamp
// duty applies to the buy side only.
func chargesFor(turnover decimal.Decimal, buySide bool) Charges {
	if turnover.Sign() <= 0 {
		return Charges{}
	}

	brokerage := decimal.Min(turnover.Mul(brokerageRate), brokerageCap)
	exchangeTxn := turnover.Mul(exchangeTxnRate)

	c := Charges{
		Brokerage:   brokerage,
		STT:         turnover.Mul(sttRate),
		ExchangeTxn: exchangeTxn,
		GST:         brokerage.Add(exchangeTxn).Mul(gstRate),
		SEBIFee:     turnover.Mul(sebiRate),
	}
	if buySide {
		c.StampDuty = turnover.Mul(stampDutyRate)
	}
	return c
}

// LotCharges returns the buy-side and, for closed lots, sell-side charges.
func LotCharges(lot *models.PortfolioLot) (buy, sell Charges) {
	buy = chargesFor(lot.BuyTurnover(), true)
	if lot.Closed() {
		sell = chargesFor(lot.SellTurnover(), false)
	}
	return buy, sell
}
