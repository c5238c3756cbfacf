package streaming

import (
	"fmt"
	"strconv"
)

// LevelOneEquitiesField is a numeric field tag of the LEVELONE_EQUITIES
// service, as Schwab identifies it on the wire.
type LevelOneEquitiesField int

const (
	EquitySymbol LevelOneEquitiesField = iota
	EquityBidPrice
	EquityAskPrice
	EquityLastPrice
	EquityBidSize
	EquityAskSize
	EquityAskID
	EquityBidID
	EquityTotalVolume
	EquityLastSize
	EquityHighPrice
	EquityLowPrice
	EquityClosePrice
	EquityExchangeID
	EquityMarginable
	EquityDescription
	EquityLastID
	EquityOpenPrice
	EquityNetChange
	EquityFiftyTwoWeekHigh
	EquityFiftyTwoWeekLow
	EquityPERatio
	EquityAnnualDividendAmount
	EquityDividendYield
	EquityNAV
	EquityExchangeName
	EquityDueDate
	EquityRegularMarketQuote
	EquityRegularMarketTrade
	EquityRegularMarketLastPrice
	EquityRegularMarketLastSize
	EquityRegularMarketNetChange
	EquitySecurityStatus
	EquityMarkPrice
	EquityQuoteTimeInLong
	EquityTradeTimeInLong
	EquityRegularMarketTradeTimeInLong
	EquityBidTime
	EquityAskTime
	EquityAskMicID
	EquityBidMicID
	EquityLastMicID
	EquityNetPercentChange
	EquityRegularMarketPercentChange
	EquityMarkPriceNetChange
	EquityMarkPricePercentChange
	EquityHardToBorrowQuantity
	EquityHardToBorrowRate
	EquityHardToBorrow
	EquityShortable
	EquityPostMarketNetChange
	EquityPostMarketPercentChange

	equityFieldCount
)

func (f LevelOneEquitiesField) String() string {
	return strconv.Itoa(int(f))
}

// LevelOneOptionsField is a numeric field tag of the LEVELONE_OPTIONS
// service.
type LevelOneOptionsField int

const (
	OptionSymbol LevelOneOptionsField = iota
	OptionDescription
	OptionBidPrice
	OptionAskPrice
	OptionLastPrice
	OptionHighPrice
	OptionLowPrice
	OptionClosePrice
	OptionTotalVolume
	OptionOpenInterest
	OptionVolatility
	OptionMoneyIntrinsicValue
	OptionExpirationYear
	OptionMultiplier
	OptionDigits
	OptionOpenPrice
	OptionBidSize
	OptionAskSize
	OptionLastSize
	OptionNetChange
	OptionStrikePrice
	OptionContractType
	OptionUnderlying
	OptionExpirationMonth
	OptionDeliverables
	OptionTimeValue
	OptionExpirationDay
	OptionDaysToExpiration
	OptionDelta
	OptionGamma
	OptionTheta
	OptionVega
	OptionRho
	OptionSecurityStatus
	OptionTheoreticalOptionValue
	OptionUnderlyingPrice
	OptionUvExpirationType
	OptionMarkPrice
	OptionQuoteTimeInLong
	OptionTradeTimeInLong
	OptionExchange
	OptionExchangeName
	OptionLastTradingDay
	OptionSettlementType
	OptionNetPercentChange
	OptionMarkPriceNetChange
	OptionMarkPricePercentChange
	OptionImpliedYield
	OptionIsPennyPilot
	OptionOptionRoot
	OptionFiftyTwoWeekHigh
	OptionFiftyTwoWeekLow
	OptionIndicativeAskPrice
	OptionIndicativeBidPrice
	OptionIndicativeQuoteTime
	OptionExerciseType

	optionFieldCount
)

func (f LevelOneOptionsField) String() string {
	return strconv.Itoa(int(f))
}

// LevelOneFuturesField is a numeric field tag of the LEVELONE_FUTURES
// service.
type LevelOneFuturesField int

const (
	FutureSymbol LevelOneFuturesField = iota
	FutureBidPrice
	FutureAskPrice
	FutureLastPrice
	FutureBidSize
	FutureAskSize
	FutureBidID
	FutureAskID
	FutureTotalVolume
	FutureLastSize
	FutureQuoteTime
	FutureTradeTime
	FutureHighPrice
	FutureLowPrice
	FutureClosePrice
	FutureExchangeID
	FutureDescription
	FutureLastID
	FutureOpenPrice
	FutureNetChange
	FutureFuturePercentChange
	FutureExchangeName
	FutureSecurityStatus
	FutureOpenInterest
	FutureMark
	FutureTick
	FutureTickAmount
	FutureProduct
	FutureFuturePriceFormat
	FutureFutureTradingHours
	FutureFutureIsTradable
	FutureFutureMultiplier
	FutureFutureIsActive
	FutureFutureSettlementPrice
	FutureFutureActiveSymbol
	FutureFutureExpirationDate
	FutureExpirationStyle
	FutureAskTime
	FutureBidTime
	FutureQuotedInSession
	FutureSettlementDate

	futureFieldCount
)

func (f LevelOneFuturesField) String() string {
	return strconv.Itoa(int(f))
}

// LevelOneFuturesOptionsField is a numeric field tag of the
// LEVELONE_FUTURES_OPTIONS service. Its tags 0..31 carry the same fields,
// in the same order, as LEVELONE_FUTURES' tags 0..31; no option-contract
// attributes (strike, contract type, expiration) are defined. It has no
// equities/options/futures sibling in the reference implementation this
// package was ported from, so the tag assignments below follow the
// published Schwab streaming API field guide rather than a ported
// source.
type LevelOneFuturesOptionsField int

const (
	FutureOptionSymbol LevelOneFuturesOptionsField = iota
	FutureOptionBidPrice
	FutureOptionAskPrice
	FutureOptionLastPrice
	FutureOptionBidSize
	FutureOptionAskSize
	FutureOptionBidID
	FutureOptionAskID
	FutureOptionTotalVolume
	FutureOptionLastSize
	FutureOptionQuoteTime
	FutureOptionTradeTime
	FutureOptionHighPrice
	FutureOptionLowPrice
	FutureOptionClosePrice
	FutureOptionExchangeID
	FutureOptionDescription
	FutureOptionLastID
	FutureOptionOpenPrice
	FutureOptionNetChange
	FutureOptionFuturePercentChange
	FutureOptionExchangeName
	FutureOptionSecurityStatus
	FutureOptionOpenInterest
	FutureOptionMark
	FutureOptionTick
	FutureOptionTickAmount
	FutureOptionProduct
	FutureOptionFuturePriceFormat
	FutureOptionFutureTradingHours
	FutureOptionFutureIsTradable
	FutureOptionFutureMultiplier

	futureOptionFieldCount
)

func (f LevelOneFuturesOptionsField) String() string {
	return strconv.Itoa(int(f))
}

// LevelOneForexField is a numeric field tag of the LEVELONE_FOREX
// service. As with LevelOneFuturesOptionsField, Schwab's forex feed has
// no sibling in the reference implementation this package was ported
// from; the tag assignments follow the published Schwab streaming API
// field guide.
type LevelOneForexField int

const (
	ForexSymbol LevelOneForexField = iota
	ForexBidPrice
	ForexAskPrice
	ForexLastPrice
	ForexBidSize
	ForexAskSize
	ForexTotalVolume
	ForexLastSize
	ForexQuoteTime
	ForexTradeTime
	ForexHighPrice
	ForexLowPrice
	ForexClosePrice
	ForexExchangeID
	ForexDescription
	ForexOpenPrice
	ForexNetChange
	ForexExchangeName
	ForexSecurityStatus
	ForexTick
	ForexTickAmount
	ForexMarketMaker
	ForexFiftyTwoWeekHigh
	ForexFiftyTwoWeekLow
	ForexMark
	ForexTradingHours
	ForexIsTradable
	ForexMarketMakerAsk
	ForexMarketMakerBid
	ForexDigits

	forexFieldCount
)

func (f LevelOneForexField) String() string {
	return strconv.Itoa(int(f))
}

// allFields builds the "0".."n-1" dense field list a request uses when
// the caller does not narrow the field set, matching the reference
// implementation's "empty means everything" convention.
func allFields(count int) []string {
	out := make([]string, count)
	for i := 0; i < count; i++ {
		out[i] = strconv.Itoa(i)
	}
	return out
}

func fieldStrings[T fmt.Stringer](fields []T) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.String()
	}
	return out
}
