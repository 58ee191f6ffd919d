package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promoterFromHTML(t *testing.T, html string) string {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return extractPromoterHolding(doc)
}

func TestPromoter_SectionPercentageElement(t *testing.T) {
	html := `<section>
	<div class="row"><span>Promoters</span><span class="percentage">49.85%</span></div>
	<div class="row"><span>FIIs</span><span class="percentage">12.04%</span></div>
	</section>`

	assert.Equal(t, "49.85%", promoterFromHTML(t, html))
}

func TestPromoter_SectionExcludesOtherHolderCategories(t *testing.T) {
	// No promoter section at all: the FII/DII/public percentages must not be
	// picked up by the section strategy.
	html := `<section>
	<div class="row"><span>FIIs</span><span class="percentage">12.04%</span></div>
	<div class="row"><span>Public</span><span class="percentage">38.11%</span></div>
	</section>`

	assert.Empty(t, promoterFromHTML(t, html))
}

func TestPromoter_LabelSiblingInTable(t *testing.T) {
	html := `<table>
	<tr><td>Promoters</td><td>49.85%</td></tr>
	<tr><td>FIIs</td><td>24.60%</td></tr>
	</table>`

	assert.Equal(t, "49.85%", promoterFromHTML(t, html))
}

func TestPromoter_ExpandableRowLabel(t *testing.T) {
	html := `<div><button>Promoters +</button><span>72.30%</span></div>`
	assert.Equal(t, "72.30%", promoterFromHTML(t, html))
}

func TestPromoter_ProximityWithValueInLabelNode(t *testing.T) {
	html := `<ul><li>Promoter holding: 33.5%</li></ul>`
	assert.Equal(t, "33.5%", promoterFromHTML(t, html))
}

func TestPromoter_ShareholdingHeadingAnchored(t *testing.T) {
	html := `<div>
	<h3>Shareholding Pattern</h3>
	<p>The promoter group of the company holds a sizeable controlling stake, with promoters at 61.2% as of the latest quarterly filing.</p>
	</div>`

	assert.Equal(t, "61.2%", promoterFromHTML(t, html))
}

func TestPromoter_FullTextLastResort(t *testing.T) {
	html := `<article><p>Among the many facts disclosed in the annual report,
	the combined promoter group shareholding in the listed entity stands at 27.4%,
	a marginal decline over the previous year.</p></article>`

	assert.Equal(t, "27.4%", promoterFromHTML(t, html))
}

func TestPromoter_AbsentReturnsEmpty(t *testing.T) {
	html := `<table>
	<tr><td>FIIs</td><td>24.60%</td></tr>
	<tr><td>Public</td><td>75.40%</td></tr>
	</table>`

	assert.Empty(t, promoterFromHTML(t, html))
}
