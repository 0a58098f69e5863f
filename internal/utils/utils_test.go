package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$295.00", FormatMoney(decimal.NewFromInt(295)))
	assert.Equal(t, "$1,234,567.50", FormatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-$12.30", FormatMoney(decimal.RequireFromString("-12.3")))
}

func TestCombineDateAndClock(t *testing.T) {
	base := time.Date(2026, 3, 14, 8, 12, 0, 0, time.UTC)
	got, err := CombineDateAndClock(base, "15:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC), got)

	_, err = CombineDateAndClock(base, "25:00")
	assert.Error(t, err)
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" PPL ", "night", "ppl", "", "Aerobatic  Rating"})
	assert.Equal(t, []string{"Aerobatic Rating", "PPL", "night"}, got)
}

func TestTrimPtr(t *testing.T) {
	blank := "   "
	val := " route "
	assert.Nil(t, TrimPtr(nil))
	assert.Nil(t, TrimPtr(&blank))
	assert.Equal(t, "route", *TrimPtr(&val))
}
