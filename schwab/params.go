package schwab

import (
	"fmt"
	"net/url"
	"time"
)

// ContractType selects which side of an options chain to return.
type ContractType string

const (
	ContractTypeCall ContractType = "CALL"
	ContractTypePut  ContractType = "PUT"
	ContractTypeAll  ContractType = "ALL"
)

// QuoteField selects which sub-object a quote response includes.
type QuoteField string

const (
	QuoteFieldQuote       QuoteField = "quote"
	QuoteFieldFundamental QuoteField = "fundamental"
	QuoteFieldExtended    QuoteField = "extended"
	QuoteFieldReference   QuoteField = "reference"
	QuoteFieldRegular     QuoteField = "regular"
)

// PeriodType selects the unit price history is windowed by.
type PeriodType string

const (
	PeriodTypeDay   PeriodType = "day"
	PeriodTypeMonth PeriodType = "month"
	PeriodTypeYear  PeriodType = "year"
	PeriodTypeYTD   PeriodType = "ytd"
)

// FrequencyType selects the candle granularity for price history.
type FrequencyType string

const (
	FrequencyTypeMinute  FrequencyType = "minute"
	FrequencyTypeDaily   FrequencyType = "daily"
	FrequencyTypeWeekly  FrequencyType = "weekly"
	FrequencyTypeMonthly FrequencyType = "monthly"
)

// MoversSort selects the ranking criterion for a movers request.
type MoversSort string

const (
	MoversSortVolume            MoversSort = "VOLUME"
	MoversSortTrades            MoversSort = "TRADES"
	MoversSortPercentChangeUp   MoversSort = "PERCENT_CHANGE_UP"
	MoversSortPercentChangeDown MoversSort = "PERCENT_CHANGE_DOWN"
)

// Projection selects the instrument search strategy.
type Projection string

const (
	ProjectionSymbolSearch Projection = "symbol-search"
	ProjectionSymbolRegex  Projection = "symbol-regex"
	ProjectionDescSearch   Projection = "desc-search"
	ProjectionDescRegex    Projection = "desc-regex"
	ProjectionSearch       Projection = "search"
	ProjectionFundamental  Projection = "fundamental"
)

// MarketSymbol names a market hours category.
type MarketSymbol string

const (
	MarketSymbolEquity MarketSymbol = "equity"
	MarketSymbolOption MarketSymbol = "option"
	MarketSymbolBond   MarketSymbol = "bond"
	MarketSymbolFuture MarketSymbol = "future"
	MarketSymbolForex  MarketSymbol = "forex"
)

// parseParams filters out parameters whose value is absent (nil) and
// renders the rest to their string form, producing the (key, value)
// pairs a query string is built from. A present-but-empty value is
// still included, matching the Option<T>-is-Some-but-empty-string case
// the ported reference implementation also includes.
func parseParams(params []optionalParam) url.Values {
	values := url.Values{}
	for _, p := range params {
		if p.present {
			values.Set(p.key, p.value)
		}
	}
	return values
}

type optionalParam struct {
	key     string
	value   string
	present bool
}

func opt(key, value string, present bool) optionalParam {
	return optionalParam{key: key, value: value, present: present}
}

func optString(key string, value *string) optionalParam {
	if value == nil {
		return opt(key, "", false)
	}
	return opt(key, *value, true)
}

// dedupOrdered removes duplicate elements from v while preserving the
// order of first occurrence.
func dedupOrdered[T comparable](v []T) []T {
	seen := make(map[T]struct{}, len(v))
	out := make([]T, 0, len(v))
	for _, item := range v {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// timeToEpochMs converts t to an epoch-milliseconds string, or returns
// false if t is the zero value (meaning "not supplied").
func timeToEpochMs(t time.Time) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	return fmt.Sprintf("%d", t.UnixMilli()), true
}

// timeToYYYYMMDD converts t to a "YYYY-MM-DD" string, or returns false
// if t is the zero value.
func timeToYYYYMMDD(t time.Time) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// FormatOptionSymbol formats an option contract into Schwab's
// fixed-width symbol format, e.g.
// FormatOptionSymbol("AAPL", "250919", 'C', 232.5) == "AAPL  250919C00232500".
func FormatOptionSymbol(ticker, yymmdd string, side byte, strike float64) string {
	paddedTicker := fmt.Sprintf("%-6s", ticker)
	strikeAsInt := int64(strike*1000 + 0.5)
	return fmt.Sprintf("%s%s%c%08d", paddedTicker, yymmdd, side, strikeAsInt)
}

func joinQuoteFields(fields []QuoteField) string {
	deduped := dedupOrdered(fields)
	s := ""
	for i, f := range deduped {
		if i > 0 {
			s += ","
		}
		s += string(f)
	}
	return s
}
