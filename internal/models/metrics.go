package models

// Field is a canonical metric name understood by the rest of the application.
// Vendor-specific field names are mapped onto this schema by the metrics layer.
type Field string

const (
	FieldMarketCap       Field = "market_cap"
	FieldCurrentPrice    Field = "current_price"
	FieldDayChange       Field = "day_change"
	FieldDayChangePct    Field = "day_change_pct"
	FieldHigh52W         Field = "high_52w"
	FieldLow52W          Field = "low_52w"
	FieldPERatio         Field = "pe_ratio"
	FieldBookValue       Field = "book_value"
	FieldDividendYield   Field = "dividend_yield"
	FieldROCE            Field = "roce"
	FieldROE             Field = "roe"
	FieldFaceValue       Field = "face_value"
	FieldEPS             Field = "eps"
	FieldDebtToEquity    Field = "debt_to_equity"
	FieldPromoterHolding Field = "promoter_holding"
	FieldBeta            Field = "beta"
	FieldROA             Field = "roa"
	FieldEBITDA          Field = "ebitda"
	FieldEBITDAPrev      Field = "ebitda_prev"
	FieldPSTrend         Field = "ps_trend"
)

// CanonicalFields lists every field of the canonical schema in display order.
// The merge layer guarantees each of these keys is present in its output.
var CanonicalFields = []Field{
	FieldMarketCap,
	FieldCurrentPrice,
	FieldDayChange,
	FieldDayChangePct,
	FieldHigh52W,
	FieldLow52W,
	FieldPERatio,
	FieldBookValue,
	FieldDividendYield,
	FieldROCE,
	FieldROE,
	FieldFaceValue,
	FieldEPS,
	FieldDebtToEquity,
	FieldPromoterHolding,
	FieldBeta,
	FieldROA,
	FieldEBITDA,
	FieldEBITDAPrev,
	FieldPSTrend,
}

// Ownership assigns each canonical field to exactly one vendor as its source
// of truth. The non-owning vendor's value for a field is always discarded so
// ratios never mix vendors. Adding a vendor or re-assigning a field is a data
// change here, not a code change in the merge layer.
var Ownership = map[Field]Vendor{
	FieldMarketCap:       VendorScreener,
	FieldCurrentPrice:    VendorScreener,
	FieldDayChange:       VendorScreener,
	FieldDayChangePct:    VendorScreener,
	FieldHigh52W:         VendorScreener,
	FieldLow52W:          VendorScreener,
	FieldPERatio:         VendorScreener,
	FieldBookValue:       VendorScreener,
	FieldDividendYield:   VendorScreener,
	FieldROCE:            VendorScreener,
	FieldROE:             VendorScreener,
	FieldFaceValue:       VendorScreener,
	FieldEPS:             VendorScreener,
	FieldDebtToEquity:    VendorScreener,
	FieldPromoterHolding: VendorScreener,
	FieldBeta:            VendorYahoo,
	FieldROA:             VendorYahoo,
	FieldEBITDA:          VendorYahoo,
	FieldEBITDAPrev:      VendorYahoo,
	FieldPSTrend:         VendorYahoo,
}

// Value holds one normalized metric value. A zero Value means "not set" (the
// null sentinel). Num is set for numeric metrics; Text carries vendor strings
// that are intentionally non-numeric (sector labels and the like).
type Value struct {
	Num  *float64 `json:"num,omitempty"`
	Text string   `json:"text,omitempty"`
}

// NumberValue returns a numeric Value.
func NumberValue(f float64) Value {
	return Value{Num: &f}
}

// TextValue returns a non-numeric Value.
func TextValue(s string) Value {
	return Value{Text: s}
}

// IsSet reports whether the value carries either a number or text.
func (v Value) IsSet() bool {
	return v.Num != nil || v.Text != ""
}

// Float returns the numeric value, or 0 when unset or textual.
func (v Value) Float() float64 {
	if v.Num == nil {
		return 0
	}
	return *v.Num
}

// MergedMetrics is the canonical output shape of the merge layer: every
// canonical field is present, with a zero Value where the owning vendor
// produced nothing usable.
type MergedMetrics map[Field]Value

// NewMergedMetrics returns an all-null canonical skeleton.
func NewMergedMetrics() MergedMetrics {
	m := make(MergedMetrics, len(CanonicalFields))
	for _, f := range CanonicalFields {
		m[f] = Value{}
	}
	return m
}

// SetFields returns the number of fields carrying a value.
func (m MergedMetrics) SetFields() int {
	n := 0
	for _, v := range m {
		if v.IsSet() {
			n++
		}
	}
	return n
}

// PromoterSource records how the merged promoter-holding figure was obtained.
// A measured zero and the absence-based substitution are deliberately
// distinguishable downstream.
type PromoterSource string

const (
	PromoterSourceExtracted   PromoterSource = "extracted"
	PromoterSourceAssumedZero PromoterSource = "assumed-zero"
)
