package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

func sampleScreenerStats() models.VendorStats {
	s := models.NewVendorStats(models.VendorScreener)
	s.Set("market_cap", "1,234.50 Cr")
	s.Set("current_price", "3,417")
	s.Set("price_change", "-22.00")
	s.Set("price_change_pct", "-0.64")
	s.Set("stock_pe", "29.5")
	s.Set("promoter_holding", "72.30%")
	return s
}

func sampleYahooStats() models.VendorStats {
	s := models.NewVendorStats(models.VendorYahoo)
	s.Set("beta", "0.62")
	s.Set("roa", "25.10%")
	s.Set("ebitda", "2.5B")
	s.Set("ebitda_prev", "2.1B")
	s.Set("ps_trend", "8.4")
	return s
}

func TestMerge_FullSchemaAlwaysPresent(t *testing.T) {
	merged := Merge(sampleScreenerStats(), sampleYahooStats())

	assert.Len(t, merged, len(models.CanonicalFields))
	for _, f := range models.CanonicalFields {
		_, ok := merged[f]
		assert.True(t, ok, "field %s missing from merged schema", f)
	}
}

func TestMerge_OwnershipRouting(t *testing.T) {
	merged := Merge(sampleScreenerStats(), sampleYahooStats())

	require.NotNil(t, merged[models.FieldMarketCap].Num)
	assert.InDelta(t, 1234.50, merged[models.FieldMarketCap].Float(), 0.0001)

	require.NotNil(t, merged[models.FieldBeta].Num)
	assert.InDelta(t, 0.62, merged[models.FieldBeta].Float(), 0.0001)

	require.NotNil(t, merged[models.FieldEBITDA].Num)
	assert.InDelta(t, 2.5e9, merged[models.FieldEBITDA].Float(), 1)
}

func TestMerge_NonOwningVendorIsDiscarded(t *testing.T) {
	// A vendor claiming a field it does not own must be ignored.
	rogue := models.NewVendorStats(models.VendorYahoo)
	rogue.Set("market_cap", "999999")

	merged := Merge(rogue)
	assert.False(t, merged[models.FieldMarketCap].IsSet())
}

func TestMerge_VendorFailureIndependence(t *testing.T) {
	// Primary missing entirely: secondary-owned fields still populate and
	// primary-owned fields stay null.
	merged := Merge(models.NewVendorStats(models.VendorScreener), sampleYahooStats())

	assert.False(t, merged[models.FieldMarketCap].IsSet())
	assert.False(t, merged[models.FieldPromoterHolding].IsSet())
	assert.True(t, merged[models.FieldBeta].IsSet())
	assert.True(t, merged[models.FieldPSTrend].IsSet())
}

func TestMerge_NullTokensStayNull(t *testing.T) {
	s := models.NewVendorStats(models.VendorScreener)
	s.Set("stock_pe", "N/A")

	merged := Merge(s)
	assert.False(t, merged[models.FieldPERatio].IsSet())
}

func TestMapToCanonical_DropsUnknownKeys(t *testing.T) {
	s := models.NewVendorStats(models.VendorScreener)
	s.Set("market_cap", "500 Cr")
	s.Set("some_leftover", "42")

	out := MapToCanonical(s)
	assert.Len(t, out, 1)
	assert.Contains(t, out, models.FieldMarketCap)
}

func TestMerge_PromoterHoldingNormalized(t *testing.T) {
	merged := Merge(sampleScreenerStats())
	require.True(t, merged[models.FieldPromoterHolding].IsSet())
	assert.InDelta(t, 72.30, merged[models.FieldPromoterHolding].Float(), 0.0001)
}
