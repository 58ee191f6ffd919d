package server

import (
	"net/http"

	"github.com/Nandheswara/stock-analysis-sub000/internal/handlers"
)

// setupRoutes registers every API endpoint.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	apiHandler := handlers.NewAPIHandler()
	stockHandler := handlers.NewStockHandler(s.app.StockStorage, s.app.Extractor, s.app.Scheduler, s.app.Logger)
	portfolioHandler := handlers.NewPortfolioHandler(s.app.Portfolio, s.app.Logger)
	searchHandler := handlers.NewSearchHandler(s.app.Search, s.app.Logger)
	wsHandler := handlers.NewWebSocketHandler(s.app.Events, s.app.Logger)

	// Service endpoints
	mux.HandleFunc("/api/health", apiHandler.HealthHandler)
	mux.HandleFunc("/api/version", apiHandler.VersionHandler)

	// Watchlist
	mux.HandleFunc("/api/stocks", stockHandler.StocksHandler)
	mux.HandleFunc("/api/stocks/{id}", stockHandler.StockByIDHandler)
	mux.HandleFunc("/api/stocks/{id}/fetch", stockHandler.FetchHandler)
	mux.HandleFunc("/api/refresh", stockHandler.RefreshHandler)

	// Portfolio ledger
	mux.HandleFunc("/api/portfolio/lots", portfolioHandler.LotsHandler)
	mux.HandleFunc("/api/portfolio/lots/{id}", portfolioHandler.LotByIDHandler)
	mux.HandleFunc("/api/portfolio/summary", portfolioHandler.SummaryHandler)

	// Symbol search
	mux.HandleFunc("/api/search", searchHandler.SymbolsHandler)

	// Event push
	mux.Handle("/ws", wsHandler)

	// Everything else is a JSON 404
	mux.HandleFunc("/", apiHandler.NotFoundHandler)

	return mux
}
