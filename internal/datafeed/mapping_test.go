package datafeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-history/internal/model"
)

func TestMarketCodesCoverSupportedExchanges(t *testing.T) {
	for _, e := range SupportedExchanges() {
		code, ok := MarketCode(e)
		require.True(t, ok, e)
		assert.NotEmpty(t, code, e)
	}
	for e := range futuresExchanges {
		_, ok := MarketCode(e)
		assert.True(t, ok, "futures exchange %s has no market code", e)
	}
	assert.Len(t, SupportedExchanges(), 8)

	_, ok := MarketCode(model.BSE)
	assert.False(t, ok)
}

func TestIntervalCodes(t *testing.T) {
	for iv, want := range map[model.Interval]int{
		model.Minute: 1,
		model.Hour:   60,
		model.Daily:  101,
		model.Weekly: 102,
	} {
		got, ok := IntervalCode(iv)
		require.True(t, ok, iv)
		assert.Equal(t, want, got, iv)
	}
	_, ok := IntervalCode(model.Tick)
	assert.False(t, ok)

	for _, iv := range SupportedIntervals() {
		_, ok := IntervalCode(iv)
		assert.True(t, ok, iv)
	}
}

func TestIsFutures(t *testing.T) {
	assert.True(t, IsFutures(model.DCE))
	assert.True(t, IsFutures(model.INE))
	assert.False(t, IsFutures(model.SSE))
	assert.False(t, IsFutures(model.SEHK))
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "RB2410", NormalizeSymbol(" rb2410\n"))
	assert.Equal(t, "600000", NormalizeSymbol("600000"))
}
