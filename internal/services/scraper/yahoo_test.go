package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

const yahooStatisticsPage = `<!DOCTYPE html>
<html><body>
<table><tbody>
  <tr><td>Beta (5Y Monthly)</td><td>0.62</td></tr>
  <tr><td>Return on Assets (ttm)</td><td>25.10%</td></tr>
  <tr><td>Price/Sales (ttm)</td><td>8.40</td></tr>
</tbody></table>
<div class="financial-highlights">
  <div><span>EBITDA</span><span>2.5B</span><span>2.1B</span></div>
</div>
</body></html>`

func TestParseYahooPage_TableFields(t *testing.T) {
	stats := ParseYahooPage(yahooStatisticsPage)

	assert.Equal(t, models.VendorYahoo, stats.Vendor)
	assert.Equal(t, "0.62", stats.Get("beta"))
	assert.Equal(t, "25.10%", stats.Get("roa"))
	assert.Equal(t, "8.40", stats.Get("ps_trend"))
}

func TestParseYahooPage_EBITDACurrentAndPrior(t *testing.T) {
	stats := ParseYahooPage(yahooStatisticsPage)

	assert.Equal(t, "2.5B", stats.Get("ebitda"))
	assert.Equal(t, "2.1B", stats.Get("ebitda_prev"))
}

func TestParseYahooPage_ProximityRejectsAlphabeticCandidates(t *testing.T) {
	// Adjacent label text between the field label and its value must be
	// skipped, not returned as the value.
	page := `<!DOCTYPE html><html><body>
	<div><span>Beta (5Y Monthly)</span><span>quarterly</span><span>0.62</span></div>
	</body></html>`

	stats := ParseYahooPage(page)
	assert.Equal(t, "0.62", stats.Get("beta"))
}

func TestParseYahooPage_RegexFallback(t *testing.T) {
	page := `<!DOCTYPE html><html><body>
	<p>Key stats: Beta 1.15 and Return on Assets 9.80% this period.</p>
	</body></html>`

	stats := ParseYahooPage(page)
	assert.Equal(t, "1.15", stats.Get("beta"))
	assert.Equal(t, "9.80%", stats.Get("roa"))
}

func TestParseYahooPage_ConsentPageYieldsNothing(t *testing.T) {
	stats := ParseYahooPage(`<!DOCTYPE html><html><body>
	<h1>We value your privacy</h1><p>Accept cookies to continue.</p>
	</body></html>`)

	assert.True(t, stats.Empty())
}
