package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nandheswara/stock-analysis-sub000/internal/models"
)

func TestNormalize_CroreNotation(t *testing.T) {
	v := Normalize("₹1,234.50 Cr")
	require.NotNil(t, v.Num)
	// Crore figures keep their denomination
	assert.InDelta(t, 1234.50, *v.Num, 0.0001)
}

func TestNormalize_CompactSuffixes(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"2.5B", 2.5e9},
		{"850M", 850e6},
		{"12K", 12e3},
		{"1,200.5M", 1200.5e6},
	}
	for _, tt := range tests {
		v := Normalize(tt.raw)
		require.NotNil(t, v.Num, "raw=%s", tt.raw)
		assert.InDelta(t, tt.want, *v.Num, 1, "raw=%s", tt.raw)
	}
}

func TestNormalize_Percentage(t *testing.T) {
	v := Normalize("12.3%")
	require.NotNil(t, v.Num)
	assert.InDelta(t, 12.3, *v.Num, 0.0001)
}

func TestNormalize_NullTokens(t *testing.T) {
	for _, raw := range []string{"", "  ", "N/A", "n/a", "-", "--", "—"} {
		v := Normalize(raw)
		assert.False(t, v.IsSet(), "raw=%q should normalize to null", raw)
	}
}

func TestNormalize_NegativeNumbers(t *testing.T) {
	v := Normalize("-22.00")
	require.NotNil(t, v.Num)
	assert.InDelta(t, -22.0, *v.Num, 0.0001)
}

func TestNormalize_PlainNumberWithCommas(t *testing.T) {
	v := Normalize("3,417")
	require.NotNil(t, v.Num)
	assert.InDelta(t, 3417, *v.Num, 0.0001)
}

func TestNormalize_CurrencyPrefix(t *testing.T) {
	v := Normalize("₹ 545.30")
	require.NotNil(t, v.Num)
	assert.InDelta(t, 545.30, *v.Num, 0.0001)
}

func TestNormalize_UnparseableKeepsText(t *testing.T) {
	v := Normalize("Information Technology")
	require.Nil(t, v.Num)
	assert.Equal(t, "Information Technology", v.Text)
	assert.True(t, v.IsSet())
}

func TestNormalize_ZeroIsSet(t *testing.T) {
	v := Normalize("0")
	require.NotNil(t, v.Num)
	assert.Equal(t, 0.0, *v.Num)
	assert.True(t, v.IsSet())
}

func TestNormalize_ResultIsValueType(t *testing.T) {
	// A normalized number round-trips through the Value helpers.
	v := Normalize("49.85%")
	assert.Equal(t, models.NumberValue(49.85).Float(), v.Float())
}
