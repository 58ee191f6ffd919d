package models

// Vendor identifies one of the statistics sources.
type Vendor string

const (
	// VendorScreener is the primary vendor (slug-addressed statistics pages).
	VendorScreener Vendor = "screener"
	// VendorYahoo is the secondary vendor (market-suffixed ticker pages).
	VendorYahoo Vendor = "yahoo"
)

// DisplayName returns the vendor name used in user-facing messages.
func (v Vendor) DisplayName() string {
	switch v {
	case VendorScreener:
		return "Screener"
	case VendorYahoo:
		return "Yahoo Finance"
	default:
		return string(v)
	}
}

// VendorStats is the ephemeral per-fetch value object produced by a vendor
// parser: raw extracted strings keyed by vendor-specific field name. An absent
// key means the field could not be extracted. Values are untouched page text
// except for a stripped leading currency symbol; all coercion happens in the
// metrics layer.
type VendorStats struct {
	Vendor Vendor            `json:"vendor"`
	Fields map[string]string `json:"fields"`
}

// NewVendorStats returns an empty stats object for the given vendor.
func NewVendorStats(v Vendor) VendorStats {
	return VendorStats{Vendor: v, Fields: make(map[string]string)}
}

// Set records a raw value, ignoring empty extractions.
func (s VendorStats) Set(field, raw string) {
	if raw != "" {
		s.Fields[field] = raw
	}
}

// Get returns the raw value for a field, or "" when absent.
func (s VendorStats) Get(field string) string {
	return s.Fields[field]
}

// Empty reports whether the parser extracted nothing at all.
func (s VendorStats) Empty() bool {
	return len(s.Fields) == 0
}
