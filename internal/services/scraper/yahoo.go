package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

// The secondary vendor's key-statistics page abandoned clean tables years
// ago, so every field layers a cell lookup, structural proximity, and a
// full-text regex.

var yahooFields = []fieldSpec{
	statField("beta", `(?i)^beta(\s*\(5y\s*monthly\))?$`, 1,
		`Beta(?:\s*\(5Y\s*Monthly\))?`),
	statField("roa", `(?i)^return\s+on\s+assets(\s*\(ttm\))?$`, 1,
		`Return\s+on\s+Assets(?:\s*\(ttm\))?`),
	statField("ebitda", `(?i)^ebitda$`, 1, `EBITDA`),
	statField("ps_trend", `(?i)^price\s*/\s*sales(\s*\(ttm\))?$`, 1,
		`Price\s*/\s*Sales(?:\s*\(ttm\))?`),
	// The statistics grid lists the current and the year-ago EBITDA side by
	// side under one label; the second acceptable candidate is the prior
	// period.
	{
		key:        "ebitda_prev",
		strategies: []strategy{proximityLookup(regexp.MustCompile(`(?i)^ebitda$`), 2)},
	},
}

// statField builds the standard secondary-vendor strategy stack.
func statField(key, labelPattern string, nth int, fallbackLabel string) fieldSpec {
	label := regexp.MustCompile(labelPattern)
	return fieldSpec{
		key: key,
		strategies: []strategy{
			tableLookup(label),
			proximityLookup(label, nth),
			regexFallback(labelValueRegex(fallbackLabel)),
		},
	}
}

// ParseYahooPage extracts the secondary vendor's statistics from a
// key-statistics page. Missing fields are absent from the result.
func ParseYahooPage(html string) models.VendorStats {
	stats := models.NewVendorStats(models.VendorYahoo)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return stats
	}

	for _, f := range yahooFields {
		stats.Set(f.key, trimCurrency(firstMatch(doc, f.strategies...)))
	}

	return stats
}
