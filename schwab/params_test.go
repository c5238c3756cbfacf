package schwab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupOrdered(t *testing.T) {
	got := dedupOrdered([]string{"a", "b", "a", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestDedupOrdered_Empty(t *testing.T) {
	got := dedupOrdered([]int{})
	assert.Empty(t, got)
}

func TestParseParams(t *testing.T) {
	values := parseParams([]optionalParam{
		opt("k", "", false),
		opt("k2", "v", true),
	})
	assert.Equal(t, "v", values.Get("k2"))
	assert.False(t, values.Has("k"))
}

func TestTimeToYYYYMMDD(t *testing.T) {
	ts := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	got, ok := timeToYYYYMMDD(ts)
	require.True(t, ok)
	assert.Equal(t, "2024-03-05", got)
}

func TestTimeToYYYYMMDD_Zero(t *testing.T) {
	_, ok := timeToYYYYMMDD(time.Time{})
	assert.False(t, ok)
}

func TestTimeToEpochMs(t *testing.T) {
	ts := time.Date(1970, 1, 1, 0, 0, 0, int(time.Millisecond), time.UTC)
	got, ok := timeToEpochMs(ts)
	require.True(t, ok)
	assert.Equal(t, "1", got)
}

func TestFormatOptionSymbol(t *testing.T) {
	got := FormatOptionSymbol("AAPL", "250919", 'C', 232.5)
	assert.Equal(t, "AAPL  250919C00232500", got)
}

func TestJoinQuoteFields(t *testing.T) {
	got := joinQuoteFields([]QuoteField{QuoteFieldQuote, QuoteFieldFundamental, QuoteFieldQuote})
	assert.Equal(t, "quote,fundamental", got)
}
