package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/portfolio"
)

// PortfolioHandler serves the buy/sell ledger endpoints.
type PortfolioHandler struct {
	portfolio *portfolio.Service
	logger    arbor.ILogger
}

// NewPortfolioHandler creates a portfolio handler.
func NewPortfolioHandler(p *portfolio.Service, logger arbor.ILogger) *PortfolioHandler {
	return &PortfolioHandler{portfolio: p, logger: logger}
}

type addLotRequest struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	BuyPrice decimal.Decimal `json:"buy_price"`
	BuyDate  *time.Time      `json:"buy_date,omitempty"`
}

type closeLotRequest struct {
	SellPrice decimal.Decimal `json:"sell_price"`
	SellDate  *time.Time      `json:"sell_date,omitempty"`
}

// LotsHandler handles the ledger collection: list evaluated lots, add a lot.
func (h *PortfolioHandler) LotsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listLots(w, r)
	case http.MethodPost:
		h.addLot(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// LotByIDHandler handles one lot: close (sell) or delete.
func (h *PortfolioHandler) LotByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Lot ID is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.closeLot(w, r, id)
	case http.MethodDelete:
		h.deleteLot(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// SummaryHandler returns the aggregated portfolio totals.
func (h *PortfolioHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	summary, err := h.portfolio.Summarize(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

func (h *PortfolioHandler) listLots(w http.ResponseWriter, r *http.Request) {
	evals, err := h.portfolio.Evaluate(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(evals),
		"lots":  evals,
	})
}

func (h *PortfolioHandler) addLot(w http.ResponseWriter, r *http.Request) {
	var req addLotRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	buyDate := time.Time{}
	if req.BuyDate != nil {
		buyDate = *req.BuyDate
	}

	lot, err := h.portfolio.AddLot(r.Context(), req.Symbol, req.Quantity, req.BuyPrice, buyDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, lot)
}

func (h *PortfolioHandler) closeLot(w http.ResponseWriter, r *http.Request, id string) {
	var req closeLotRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sellDate := time.Time{}
	if req.SellDate != nil {
		sellDate = *req.SellDate
	}

	lot, err := h.portfolio.CloseLot(r.Context(), id, req.SellPrice, sellDate)
	if err != nil {
		if errors.Is(err, interfaces.ErrLotNotFound) {
			WriteError(w, http.StatusNotFound, "Portfolio lot not found")
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, lot)
}

func (h *PortfolioHandler) deleteLot(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.portfolio.DeleteLot(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteSuccess(w, "Portfolio lot deleted")
}
