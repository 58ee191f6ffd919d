// Package resolver maps free-form stock identifiers (tickers, slugs, company
// name fragments) onto the vendor-specific identifiers the statistics pages
// are addressed by. Resolution never fails: a wrong guess flows downstream and
// surfaces as an empty parse, not a crash.
package resolver

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/common"
)

const (
	screenerBaseURL = "https://www.screener.in/company"
	yahooBaseURL    = "https://finance.yahoo.com/quote"

	// marketSuffix is appended when every ticker lookup misses.
	marketSuffix = ".NS"

	// slug suffix tokens recognized by the pass-through check
	suffixLtd     = "-ltd"
	suffixLimited = "-limited"
)

// Searcher resolves a company-name fragment to an exchange ticker. Optional;
// the resolver degrades to pure table lookups without it.
type Searcher interface {
	BestSymbol(query string) (string, bool)
}

// Service resolves symbols for both vendors. The Yahoo side depends on the
// lazily loaded ticker asset; the Screener side is pure.
type Service struct {
	cfg    common.ExtractorConfig
	search Searcher
	logger arbor.ILogger

	once      sync.Once
	tickerMap map[string]string
}

// NewService creates a symbol resolver. search may be nil.
func NewService(cfg common.ExtractorConfig, search Searcher, logger arbor.ILogger) *Service {
	return &Service{
		cfg:    cfg,
		search: search,
		logger: logger,
	}
}

// ScreenerSlug resolves a raw symbol to the primary vendor's slug format.
//   - inputs already shaped like a slug pass through unchanged
//   - known tickers use the static table
//   - name fragments consult the search index when available
//   - everything else gets a synthesized slug
func (s *Service) ScreenerSlug(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	lower := strings.ToLower(raw)
	if _, ok := slugToTicker[lower]; ok {
		return lower
	}
	if isSlug(raw) {
		return lower
	}

	if slug, ok := tickerToSlug[strings.ToUpper(raw)]; ok {
		return slug
	}

	if s.search != nil && strings.ContainsAny(raw, " \t") {
		if sym, ok := s.search.BestSymbol(raw); ok {
			if slug, ok := tickerToSlug[sym]; ok {
				return slug
			}
		}
	}

	return synthesizeSlug(raw)
}

// YahooSymbol resolves a raw symbol to the secondary vendor's market-suffixed
// ticker. Lookup order: reverse slug map, ticker asset, first-token retry,
// search index, fixed market suffix.
func (s *Service) YahooSymbol(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	sym := raw
	if ticker, ok := slugToTicker[strings.ToLower(raw)]; ok {
		sym = ticker
	}

	mapping := s.loadTickerMap()
	upper := strings.ToUpper(sym)
	if v, ok := mapping[upper]; ok {
		return v
	}

	if first, _, found := strings.Cut(upper, " "); found {
		if v, ok := mapping[first]; ok {
			return v
		}
	}

	if s.search != nil && strings.ContainsAny(raw, " \t") {
		if best, ok := s.search.BestSymbol(raw); ok {
			if v, ok := mapping[best]; ok {
				return v
			}
		}
	}

	return strings.ToUpper(raw) + marketSuffix
}

// ScreenerURL builds the primary vendor's statistics page URL.
func (s *Service) ScreenerURL(raw string) string {
	return fmt.Sprintf("%s/%s/", screenerBaseURL, url.PathEscape(s.ScreenerSlug(raw)))
}

// YahooURL builds the secondary vendor's key-statistics page URL.
func (s *Service) YahooURL(raw string) string {
	return fmt.Sprintf("%s/%s/key-statistics", yahooBaseURL, url.PathEscape(s.YahooSymbol(raw)))
}

// loadTickerMap loads the ticker asset once per process lifetime. On failure
// it logs and falls back to the single hard-coded entry; the suffix heuristic
// covers the rest.
func (s *Service) loadTickerMap() map[string]string {
	s.once.Do(func() {
		entries, err := LoadTickerAsset(s.cfg.TickerMapPath)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("path", s.cfg.TickerMapPath).
				Msg("Ticker asset unavailable, using fallback mapping")
			s.tickerMap = fallbackTickerMap
			return
		}

		m := make(map[string]string, len(entries))
		for _, e := range entries {
			if e.Symbol != "" && e.Yahoo != "" {
				m[strings.ToUpper(e.Symbol)] = e.Yahoo
			}
		}
		s.tickerMap = m

		s.logger.Debug().
			Int("entries", len(m)).
			Str("path", s.cfg.TickerMapPath).
			Msg("Ticker asset loaded")
	})
	return s.tickerMap
}

// isSlug reports whether the input already matches the slug shape: a
// separator plus a legal-suffix token.
func isSlug(raw string) bool {
	lower := strings.ToLower(raw)
	if !strings.Contains(lower, "-") {
		return false
	}
	return strings.HasSuffix(lower, suffixLtd) ||
		strings.HasSuffix(lower, suffixLimited) ||
		strings.Contains(lower, suffixLtd+"-") // slugs like foo-ltd-2 keep their suffix mid-string
}

// synthesizeSlug builds a best-effort slug: lowercase, whitespace to
// separators, legal suffix appended.
func synthesizeSlug(raw string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug + suffixLtd
}
