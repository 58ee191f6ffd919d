package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/common"
)

type stubSearcher struct {
	symbol string
	found  bool
}

func (s stubSearcher) BestSymbol(string) (string, bool) {
	return s.symbol, s.found
}

func writeTickerAsset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newResolver(t *testing.T, search Searcher) *Service {
	t.Helper()
	path := writeTickerAsset(t, `[
		{"symbol": "TCS", "yahoo": "TCS.NS", "name": "Tata Consultancy Services"},
		{"symbol": "INFY", "yahoo": "INFY.NS", "name": "Infosys"},
		{"symbol": "SBIN", "yahoo": "SBIN.NS", "name": "State Bank of India"}
	]`)
	return NewService(common.ExtractorConfig{TickerMapPath: path}, search, arbor.NewLogger())
}

func TestScreenerSlug_KnownTicker(t *testing.T) {
	s := newResolver(t, nil)
	assert.Equal(t, "tata-consultancy-services-ltd", s.ScreenerSlug("TCS"))
	assert.Equal(t, "tata-consultancy-services-ltd", s.ScreenerSlug("tcs"))
}

func TestScreenerSlug_SlugPassthrough(t *testing.T) {
	s := newResolver(t, nil)
	assert.Equal(t, "tata-consultancy-services-ltd", s.ScreenerSlug("tata-consultancy-services-ltd"))
	// Known slugs without the usual legal suffix still pass through.
	assert.Equal(t, "state-bank-of-india", s.ScreenerSlug("state-bank-of-india"))
}

func TestScreenerSlug_Idempotent(t *testing.T) {
	s := newResolver(t, nil)
	for _, input := range []string{"TCS", "Unknown Widgets", "reliance-industries-ltd"} {
		once := s.ScreenerSlug(input)
		assert.Equal(t, once, s.ScreenerSlug(once), "input=%s", input)
	}
}

func TestScreenerSlug_SynthesizedForUnknown(t *testing.T) {
	s := newResolver(t, nil)
	assert.Equal(t, "unknown-widgets-ltd", s.ScreenerSlug("Unknown Widgets"))
	assert.Equal(t, "zzztest-ltd", s.ScreenerSlug("ZZZTEST"))
}

func TestScreenerSlug_SearchIndexForNameFragments(t *testing.T) {
	s := newResolver(t, stubSearcher{symbol: "INFY", found: true})
	assert.Equal(t, "infosys-ltd", s.ScreenerSlug("infosys software services"))
}

func TestScreenerSlug_EmptyInput(t *testing.T) {
	s := newResolver(t, nil)
	assert.Empty(t, s.ScreenerSlug("  "))
}

func TestYahooSymbol_AssetLookup(t *testing.T) {
	s := newResolver(t, nil)
	assert.Equal(t, "TCS.NS", s.YahooSymbol("TCS"))
	assert.Equal(t, "TCS.NS", s.YahooSymbol("tcs"))
}

func TestYahooSymbol_SlugInput(t *testing.T) {
	s := newResolver(t, nil)
	assert.Equal(t, "TCS.NS", s.YahooSymbol("tata-consultancy-services-ltd"))
}

func TestYahooSymbol_FirstTokenRetry(t *testing.T) {
	s := newResolver(t, nil)
	assert.Equal(t, "TCS.NS", s.YahooSymbol("TCS Limited"))
}

func TestYahooSymbol_MarketSuffixFallback(t *testing.T) {
	s := newResolver(t, nil)
	assert.Equal(t, "ZZZTEST.NS", s.YahooSymbol("zzztest"))
}

func TestYahooSymbol_MissingAssetUsesFallbackMap(t *testing.T) {
	s := NewService(common.ExtractorConfig{TickerMapPath: "/nonexistent/tickers.json"}, nil, arbor.NewLogger())

	assert.Equal(t, "RELIANCE.NS", s.YahooSymbol("RELIANCE"))
	// Everything else degrades to the suffix heuristic.
	assert.Equal(t, "TCS.NS", s.YahooSymbol("TCS"))
}

func TestYahooSymbol_SearchIndexForNameFragments(t *testing.T) {
	s := newResolver(t, stubSearcher{symbol: "SBIN", found: true})
	assert.Equal(t, "SBIN.NS", s.YahooSymbol("state bank branch network"))
}

func TestVendorURLs(t *testing.T) {
	s := newResolver(t, nil)

	assert.Equal(t,
		"https://www.screener.in/company/tata-consultancy-services-ltd/",
		s.ScreenerURL("TCS"))
	assert.Equal(t,
		"https://finance.yahoo.com/quote/TCS.NS/key-statistics",
		s.YahooURL("TCS"))
}

func TestLoadTickerAsset_Malformed(t *testing.T) {
	path := writeTickerAsset(t, `{"not": "an array"}`)
	_, err := LoadTickerAsset(path)
	assert.Error(t, err)
}
