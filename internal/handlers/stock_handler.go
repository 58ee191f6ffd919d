package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/common"
	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/extractor"
	"github.com/Nandheswara/stock-analysis-sub000/internal/services/scheduler"
)

// StockHandler serves the watchlist CRUD and extraction endpoints.
type StockHandler struct {
	storage   interfaces.StockStorage
	extractor *extractor.Service
	scheduler *scheduler.Service
	logger    arbor.ILogger
}

// NewStockHandler creates a stock handler.
func NewStockHandler(storage interfaces.StockStorage, ext *extractor.Service, sched *scheduler.Service, logger arbor.ILogger) *StockHandler {
	return &StockHandler{
		storage:   storage,
		extractor: ext,
		scheduler: sched,
		logger:    logger,
	}
}

type createStockRequest struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	IsManualEntry bool   `json:"is_manual_entry"`
}

// updateStockRequest is the manual edit form: any subset of symbol, name and
// metric fields may be replaced in one request.
type updateStockRequest struct {
	Symbol  string               `json:"symbol"`
	Name    string               `json:"name"`
	Metrics models.MergedMetrics `json:"metrics"`
}

// StocksHandler handles the collection endpoints: list, create, bulk clear.
func (h *StockHandler) StocksHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listStocks(w, r)
	case http.MethodPost:
		h.createStock(w, r)
	case http.MethodDelete:
		h.deleteAllStocks(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// StockByIDHandler handles the single-record endpoints.
func (h *StockHandler) StockByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Record ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getStock(w, r, id)
	case http.MethodPut:
		h.updateStock(w, r, id)
	case http.MethodDelete:
		h.deleteStock(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// FetchHandler starts an asynchronous extraction for one record.
func (h *StockHandler) FetchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	id := r.PathValue("id")
	record, err := h.storage.GetRecord(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrRecordNotFound) {
			WriteError(w, http.StatusNotFound, "Stock record not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.startFetch(record)
	WriteStarted(w, "Extraction started for "+record.Symbol)
}

// RefreshHandler starts an asynchronous refresh sweep over the watchlist.
func (h *StockHandler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	go func() {
		if _, err := h.scheduler.RefreshAll(context.Background()); err != nil {
			h.logger.Error().Err(err).Msg("Manual refresh sweep failed")
		}
	}()

	WriteStarted(w, "Watchlist refresh started")
}

func (h *StockHandler) listStocks(w http.ResponseWriter, r *http.Request) {
	records, err := h.storage.ListRecords(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(records),
		"stocks": records,
	})
}

func (h *StockHandler) createStock(w http.ResponseWriter, r *http.Request) {
	var req createStockRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Symbol = strings.TrimSpace(req.Symbol)
	req.Name = strings.TrimSpace(req.Name)
	if req.Symbol == "" && req.Name == "" {
		WriteError(w, http.StatusBadRequest, "Symbol or name is required")
		return
	}
	if req.IsManualEntry && req.Name == "" {
		WriteError(w, http.StatusBadRequest, "Manual entries require a name")
		return
	}

	record := models.NewStockRecord(common.NewRecordID(), req.Symbol, req.Name, req.IsManualEntry)
	if err := h.storage.CreateRecord(r.Context(), record); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateRecord) {
			WriteError(w, http.StatusConflict, "Stock is already on the watchlist")
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Scraped rows get their statistics immediately; manual rows are
	// user-maintained and never fetched.
	if !record.IsManualEntry {
		h.startFetch(record)
	}

	WriteJSON(w, http.StatusCreated, record)
}

func (h *StockHandler) getStock(w http.ResponseWriter, r *http.Request, id string) {
	record, err := h.storage.GetRecord(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrRecordNotFound) {
			WriteError(w, http.StatusNotFound, "Stock record not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

func (h *StockHandler) updateStock(w http.ResponseWriter, r *http.Request, id string) {
	record, err := h.storage.GetRecord(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrRecordNotFound) {
			WriteError(w, http.StatusNotFound, "Stock record not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var req updateStockRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	for field := range req.Metrics {
		if _, ok := models.Ownership[field]; !ok {
			WriteError(w, http.StatusBadRequest, "Unknown metric field: "+string(field))
			return
		}
	}

	if s := strings.TrimSpace(req.Symbol); s != "" {
		record.Symbol = s
	}
	if n := strings.TrimSpace(req.Name); n != "" {
		record.Name = n
	}
	if len(req.Metrics) > 0 {
		record.ApplyMetrics(req.Metrics)
	}
	record.UpdatedAt = time.Now().UTC()

	if err := h.storage.UpdateRecord(r.Context(), record); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateRecord) {
			WriteError(w, http.StatusConflict, "Another stock already uses that symbol")
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

func (h *StockHandler) deleteStock(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.storage.DeleteRecord(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteSuccess(w, "Stock record deleted")
}

func (h *StockHandler) deleteAllStocks(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.DeleteAll(r.Context()); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteSuccess(w, "Watchlist cleared")
}

// startFetch runs one extraction in the background. The request that
// triggered it has already been answered; results arrive over the event bus.
func (h *StockHandler) startFetch(record *models.StockRecord) {
	go func() {
		if _, err := h.extractor.FetchStockData(context.Background(), record.Symbol, record.ID); err != nil {
			h.logger.Error().
				Err(err).
				Str("symbol", record.Symbol).
				Msg("Background extraction failed")
		}
	}()
}
