// Package search indexes the ticker asset in memory so free-form company
// names ("tata consultancy") resolve to exchange tickers.
package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/services/resolver"
)

// Match is one search hit.
type Match struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
}

// document is the indexed shape. Bleve returns IDs, not documents, for
// in-memory indexes without stored fields, so entries are kept in a side map.
type document struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Service wraps an in-memory full-text index over the ticker entries.
type Service struct {
	index   bleve.Index
	entries map[string]resolver.TickerEntry
	logger  arbor.ILogger
}

// NewService builds the index. Entries without a symbol are skipped.
func NewService(entries []resolver.TickerEntry, logger arbor.ILogger) (*Service, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	bySymbol := make(map[string]resolver.TickerEntry, len(entries))
	batch := index.NewBatch()
	for _, e := range entries {
		sym := strings.ToUpper(strings.TrimSpace(e.Symbol))
		if sym == "" {
			continue
		}
		bySymbol[sym] = e
		if err := batch.Index(sym, document{Symbol: sym, Name: e.Name}); err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", sym, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}

	logger.Debug().Int("entries", len(bySymbol)).Msg("Symbol search index built")

	return &Service{index: index, entries: bySymbol, logger: logger}, nil
}

// Search returns up to limit matches for a free-form query, best first.
func (s *Service) Search(q string, limit int) ([]Match, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	request := bleve.NewSearchRequest(buildQuery(q))
	request.Size = limit

	result, err := s.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	matches := make([]Match, 0, len(result.Hits))
	for _, hit := range result.Hits {
		entry, ok := s.entries[hit.ID]
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Symbol: strings.ToUpper(entry.Symbol),
			Name:   entry.Name,
			Score:  hit.Score,
		})
	}
	return matches, nil
}

// BestSymbol returns the top-ranked ticker for a query, if any. This is the
// resolver's name-fragment hook.
func (s *Service) BestSymbol(q string) (string, bool) {
	matches, err := s.Search(q, 1)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0].Symbol, true
}

// Close releases the index.
func (s *Service) Close() error {
	return s.index.Close()
}

// buildQuery combines fuzzy term matching with prefix matching so both
// "reliance industr" and partial typing rank sensibly.
func buildQuery(q string) query.Query {
	lower := strings.ToLower(q)

	match := bleve.NewMatchQuery(lower)
	match.SetFuzziness(1)

	prefix := bleve.NewPrefixQuery(lower)

	return bleve.NewDisjunctionQuery(match, prefix)
}

var _ resolver.Searcher = (*Service)(nil)
