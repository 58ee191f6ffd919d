// Package metrics turns raw vendor strings into the canonical metric schema:
// numeric normalization first, then an ownership-driven merge across vendors.
package metrics

import (
	"strconv"
	"strings"

	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

// nullTokens are vendor placeholders for a missing value.
var nullTokens = map[string]bool{
	"n/a": true,
	"na":  true,
	"-":   true,
	"--":  true,
	"—":   true,
}

// compactSuffixes scale western compact notation to absolute units.
var compactSuffixes = []struct {
	token string
	scale float64
}{
	{"B", 1e9},
	{"M", 1e6},
	{"K", 1e3},
}

// Normalize coerces one raw vendor string into a canonical Value.
//
//	"₹1,234.50 Cr" -> 1234.5   (crore figures stay denominated in crores)
//	"2.5B"         -> 2.5e9    (compact suffixes scale to absolute units)
//	"12.3%"        -> 12.3
//	"N/A", "-", "" -> unset
//
// Anything that survives stripping but still does not parse is kept verbatim
// as text rather than dropped, so deliberately non-numeric vendor values pass
// through.
func Normalize(raw string) models.Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || nullTokens[strings.ToLower(trimmed)] {
		return models.Value{}
	}

	s := trimmed
	for _, symbol := range []string{"₹", "$"} {
		s = strings.TrimPrefix(s, symbol)
	}
	s = strings.TrimSpace(s)

	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)

	// Crore figures keep their denomination; the suffix is presentation only.
	for _, cr := range []string{"Cr.", "Cr", "cr.", "cr"} {
		if strings.HasSuffix(s, cr) {
			s = strings.TrimSpace(strings.TrimSuffix(s, cr))
			break
		}
	}

	scale := 1.0
	upper := strings.ToUpper(s)
	for _, suffix := range compactSuffixes {
		if strings.HasSuffix(upper, suffix.token) {
			scale = suffix.scale
			s = strings.TrimSpace(s[:len(s)-len(suffix.token)])
			break
		}
	}

	s = strings.ReplaceAll(s, ",", "")

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.TextValue(trimmed)
	}
	return models.NumberValue(n * scale)
}
