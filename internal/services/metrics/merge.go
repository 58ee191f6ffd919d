package metrics

import (
	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

// Vendor field names onto canonical ones. Keys absent here are parser
// leftovers and are dropped during mapping.
var (
	screenerFieldMap = map[string]models.Field{
		"market_cap":       models.FieldMarketCap,
		"current_price":    models.FieldCurrentPrice,
		"price_change":     models.FieldDayChange,
		"price_change_pct": models.FieldDayChangePct,
		"high_52w":         models.FieldHigh52W,
		"low_52w":          models.FieldLow52W,
		"stock_pe":         models.FieldPERatio,
		"book_value":       models.FieldBookValue,
		"dividend_yield":   models.FieldDividendYield,
		"roce":             models.FieldROCE,
		"roe":              models.FieldROE,
		"face_value":       models.FieldFaceValue,
		"eps":              models.FieldEPS,
		"debt_to_equity":   models.FieldDebtToEquity,
		"promoter_holding": models.FieldPromoterHolding,
	}

	yahooFieldMap = map[string]models.Field{
		"beta":        models.FieldBeta,
		"roa":         models.FieldROA,
		"ebitda":      models.FieldEBITDA,
		"ebitda_prev": models.FieldEBITDAPrev,
		"ps_trend":    models.FieldPSTrend,
	}
)

func fieldMapFor(v models.Vendor) map[string]models.Field {
	switch v {
	case models.VendorScreener:
		return screenerFieldMap
	case models.VendorYahoo:
		return yahooFieldMap
	default:
		return nil
	}
}

// MapToCanonical normalizes one vendor's raw stats onto canonical fields.
// Unknown vendor keys and values that normalize to null are omitted.
func MapToCanonical(stats models.VendorStats) map[models.Field]models.Value {
	mapping := fieldMapFor(stats.Vendor)
	out := make(map[models.Field]models.Value, len(stats.Fields))
	for key, raw := range stats.Fields {
		field, ok := mapping[key]
		if !ok {
			continue
		}
		if v := Normalize(raw); v.IsSet() {
			out[field] = v
		}
	}
	return out
}

// Merge produces the full canonical schema from any number of vendor stats.
// Every canonical field is present in the result; each is filled exclusively
// from its owning vendor, so a vendor's total failure nulls that vendor's
// fields without disturbing the others.
func Merge(all ...models.VendorStats) models.MergedMetrics {
	merged := models.NewMergedMetrics()
	for _, stats := range all {
		for field, value := range MapToCanonical(stats) {
			if models.Ownership[field] != stats.Vendor {
				continue
			}
			merged[field] = value
		}
	}
	return merged
}
