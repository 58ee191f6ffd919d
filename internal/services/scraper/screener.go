package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

// fieldSpec binds a vendor field key to its ordered extraction strategies.
type fieldSpec struct {
	key        string
	strategies []strategy
}

// highLowKey is an internal composite field split into high_52w/low_52w
// before the stats leave the parser.
const highLowKey = "high_low"

var screenerFields = []fieldSpec{
	ratioField("market_cap", `(?i)^market\s*cap`, `Market\s*Cap`),
	ratioField("stock_pe", `(?i)^(stock\s*)?p/?e(\s*\(ttm\))?$`, `Stock\s*P/E`),
	ratioField("book_value", `(?i)^book\s*value`, `Book\s*Value`),
	ratioField("dividend_yield", `(?i)^dividend\s*yield`, `Dividend\s*Yield`),
	ratioField("roce", `(?i)^roce(\s*%)?$`, `ROCE`),
	ratioField("roe", `(?i)^roe(\s*%)?$`, `ROE`),
	ratioField("face_value", `(?i)^face\s*value`, `Face\s*Value`),
	ratioField("eps", `(?i)^eps(\s*\(ttm\))?$`, `EPS(?:\s*\(TTM\))?`),
	ratioField("debt_to_equity", `(?i)^debt\s*to\s*equity`, `Debt\s*to\s*equity`),
	ratioField(highLowKey, `(?i)^high\s*/\s*low`, `High\s*/\s*Low`),
}

// ratioField builds the standard primary-vendor strategy stack: the ratios
// are laid out as label/value list items and table cells, so a cell lookup
// followed by a full-text regex covers both the current and older layouts.
// fallbackLabel is the regex fragment the full-text pass anchors on.
func ratioField(key, labelPattern, fallbackLabel string) fieldSpec {
	label := regexp.MustCompile(labelPattern)
	return fieldSpec{
		key: key,
		strategies: []strategy{
			tableLookup(label),
			listItemLookup(label),
			regexFallback(labelValueRegex(fallbackLabel)),
		},
	}
}

// listItemLookup handles the primary vendor's ratio list markup, where each
// entry is a list item holding a name span and a number span.
func listItemLookup(label *regexp.Regexp) strategy {
	return func(doc *goquery.Document) string {
		var result string
		doc.Find("li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			name := cleanText(sel.Find(".name").First().Text())
			if name == "" || !label.MatchString(name) {
				return true
			}
			if v := cleanText(sel.Find(".number, .value").First().Text()); v != "" {
				result = v
				return false
			}
			// Older markup keeps the value as the item's trailing text.
			if v := cleanText(strings.TrimPrefix(cleanText(sel.Text()), name)); v != "" {
				result = v
				return false
			}
			return true
		})
		return result
	}
}

// priceTripleRe matches the page-header price block: a currency-anchored
// price, an optional signed absolute change, and a parenthesized percent
// change. Anchoring on the currency symbol keeps it from matching ratio
// values elsewhere on the page.
var priceTripleRe = regexp.MustCompile(`₹\s*([\d,]+(?:\.\d+)?)(?:\s+(-?[\d,]+(?:\.\d+)?))?\s*\(\s*(-?[\d,]+(?:\.\d+)?)\s*%\s*\)`)

// ParseScreenerPage extracts the primary vendor's statistics from a company
// page. Missing fields are simply absent from the result; the function never
// fails on malformed markup.
func ParseScreenerPage(html string) models.VendorStats {
	stats := models.NewVendorStats(models.VendorScreener)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return stats
	}

	for _, f := range screenerFields {
		stats.Set(f.key, trimCurrency(firstMatch(doc, f.strategies...)))
	}

	splitHighLow(&stats)

	if price, change, pct := extractPriceTriple(doc); price != "" {
		stats.Set("current_price", price)
		stats.Set("price_change", change)
		stats.Set("price_change_pct", pct)
	}

	stats.Set("promoter_holding", extractPromoterHolding(doc))

	return stats
}

// splitHighLow divides the combined 52-week "high / low" cell into its two
// canonical fields and drops the composite.
func splitHighLow(stats *models.VendorStats) {
	combined := stats.Get(highLowKey)
	delete(stats.Fields, highLowKey)
	if combined == "" {
		return
	}

	high, low, found := strings.Cut(combined, "/")
	if !found {
		return
	}
	stats.Set("high_52w", trimCurrency(high))
	stats.Set("low_52w", trimCurrency(low))
}

// extractPriceTriple pulls the current price, absolute change and percent
// change from the page header. The change sign lives on the percent portion
// in the current layout, so an unsigned absolute change inherits it.
func extractPriceTriple(doc *goquery.Document) (price, change, pct string) {
	m := priceTripleRe.FindStringSubmatch(cleanText(doc.Text()))
	if len(m) < 4 {
		return "", "", ""
	}

	price, change, pct = m[1], m[2], m[3]
	if change != "" && !strings.HasPrefix(change, "-") && strings.HasPrefix(pct, "-") {
		change = "-" + change
	}
	return price, change, pct
}
