package resolver

import (
	"encoding/json"
	"fmt"
	"os"
)

// TickerEntry is one row of the locally shipped ticker asset: an exchange
// ticker, its Yahoo Finance symbol and the company name.
type TickerEntry struct {
	Symbol string `json:"symbol"`
	Yahoo  string `json:"yahoo"`
	Name   string `json:"name"`
}

// LoadTickerAsset reads the ticker mapping JSON from disk.
func LoadTickerAsset(path string) ([]TickerEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ticker asset %s: %w", path, err)
	}

	var entries []TickerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse ticker asset %s: %w", path, err)
	}
	return entries, nil
}

// tickerToSlug maps well-known exchange tickers to their statistics-page
// slugs. Symbols missing here get a synthesized best-effort slug.
var tickerToSlug = map[string]string{
	"TCS":        "tata-consultancy-services-ltd",
	"RELIANCE":   "reliance-industries-ltd",
	"HDFCBANK":   "hdfc-bank-ltd",
	"INFY":       "infosys-ltd",
	"ICICIBANK":  "icici-bank-ltd",
	"HINDUNILVR": "hindustan-unilever-ltd",
	"ITC":        "itc-ltd",
	"SBIN":       "state-bank-of-india",
	"BHARTIARTL": "bharti-airtel-ltd",
	"KOTAKBANK":  "kotak-mahindra-bank-ltd",
	"BAJFINANCE": "bajaj-finance-ltd",
	"LT":         "larsen-toubro-ltd",
	"ASIANPAINT": "asian-paints-ltd",
	"AXISBANK":   "axis-bank-ltd",
	"MARUTI":     "maruti-suzuki-india-ltd",
	"SUNPHARMA":  "sun-pharmaceutical-industries-ltd",
	"TITAN":      "titan-company-ltd",
	"WIPRO":      "wipro-ltd",
	"TATAMOTORS": "tata-motors-ltd",
	"TATASTEEL":  "tata-steel-ltd",
	"TATAPOWER":  "tata-power-company-ltd",
	"HCLTECH":    "hcl-technologies-ltd",
	"TECHM":      "tech-mahindra-ltd",
	"NTPC":       "ntpc-ltd",
	"POWERGRID":  "power-grid-corporation-of-india-ltd",
	"COALINDIA":  "coal-india-ltd",
	"ONGC":       "oil-natural-gas-corporation-ltd",
	"JSWSTEEL":   "jsw-steel-ltd",
	"HINDALCO":   "hindalco-industries-ltd",
	"CIPLA":      "cipla-ltd",
	"DRREDDY":    "dr-reddys-laboratories-ltd",
	"NESTLEIND":  "nestle-india-ltd",
	"BRITANNIA":  "britannia-industries-ltd",
	"ULTRACEMCO": "ultratech-cement-ltd",
	"ADANIENT":   "adani-enterprises-ltd",
	"ADANIPORTS": "adani-ports-and-special-economic-zone-ltd",
	"DABUR":      "dabur-india-ltd",
	"DIVISLAB":   "divis-laboratories-ltd",
	"EICHERMOT":  "eicher-motors-ltd",
	"GRASIM":     "grasim-industries-ltd",
}

// slugToTicker is the reverse lookup for inputs that are already a slug.
var slugToTicker = func() map[string]string {
	m := make(map[string]string, len(tickerToSlug))
	for ticker, slug := range tickerToSlug {
		m[slug] = ticker
	}
	return m
}()

// fallbackTickerMap keeps the secondary vendor reachable when the ticker
// asset cannot be loaded at all.
var fallbackTickerMap = map[string]string{
	"RELIANCE": "RELIANCE.NS",
}
