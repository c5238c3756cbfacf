package streaming

import (
	"encoding/json"
	"fmt"
	"log"
)

// LevelOneEquitiesResponse is a single LEVELONE_EQUITIES data item, keyed
// by the numeric field tags in LevelOneEquitiesField.
type LevelOneEquitiesResponse struct {
	Symbol                          string   `json:"key"`
	BidPrice                        *float64 `json:"1,omitempty"`
	AskPrice                        *float64 `json:"2,omitempty"`
	LastPrice                       *float64 `json:"3,omitempty"`
	BidSize                         *int64   `json:"4,omitempty"`
	AskSize                         *int64   `json:"5,omitempty"`
	AskID                           *string  `json:"6,omitempty"`
	BidID                           *string  `json:"7,omitempty"`
	TotalVolume                     *int64   `json:"8,omitempty"`
	LastSize                        *int64   `json:"9,omitempty"`
	HighPrice                       *float64 `json:"10,omitempty"`
	LowPrice                        *float64 `json:"11,omitempty"`
	ClosePrice                      *float64 `json:"12,omitempty"`
	ExchangeID                      *string  `json:"13,omitempty"`
	Marginable                      *bool    `json:"14,omitempty"`
	Description                     *string  `json:"15,omitempty"`
	LastID                          *string  `json:"16,omitempty"`
	OpenPrice                       *float64 `json:"17,omitempty"`
	NetChange                       *float64 `json:"18,omitempty"`
	FiftyTwoWeekHigh                *float64 `json:"19,omitempty"`
	FiftyTwoWeekLow                 *float64 `json:"20,omitempty"`
	PERatio                         *float64 `json:"21,omitempty"`
	AnnualDividendAmount            *float64 `json:"22,omitempty"`
	DividendYield                   *float64 `json:"23,omitempty"`
	NAV                             *float64 `json:"24,omitempty"`
	ExchangeName                    *string  `json:"25,omitempty"`
	DueDate                         *string  `json:"26,omitempty"`
	RegularMarketQuote              *bool    `json:"27,omitempty"`
	RegularMarketTrade              *bool    `json:"28,omitempty"`
	RegularMarketLastPrice          *float64 `json:"29,omitempty"`
	RegularMarketLastSize           *int64   `json:"30,omitempty"`
	RegularMarketNetChange          *float64 `json:"31,omitempty"`
	SecurityStatus                  *string  `json:"32,omitempty"`
	MarkPrice                       *float64 `json:"33,omitempty"`
	QuoteTimeInLong                 *int64   `json:"34,omitempty"`
	TradeTimeInLong                 *int64   `json:"35,omitempty"`
	RegularMarketTradeTimeInLong    *int64   `json:"36,omitempty"`
	BidTime                         *int64   `json:"37,omitempty"`
	AskTime                         *int64   `json:"38,omitempty"`
	AskMicID                        *string  `json:"39,omitempty"`
	BidMicID                        *string  `json:"40,omitempty"`
	LastMicID                       *string  `json:"41,omitempty"`
	NetPercentChange                *float64 `json:"42,omitempty"`
	RegularMarketPercentChange      *float64 `json:"43,omitempty"`
	MarkPriceNetChange              *float64 `json:"44,omitempty"`
	MarkPricePercentChange          *float64 `json:"45,omitempty"`
	HardToBorrowQuantity            *int64   `json:"46,omitempty"`
	HardToBorrowRate                *float64 `json:"47,omitempty"`
	HardToBorrow                    *int64   `json:"48,omitempty"`
	Shortable                       *int64   `json:"49,omitempty"`
	PostMarketNetChange             *float64 `json:"50,omitempty"`
	PostMarketPercentChange         *float64 `json:"51,omitempty"`
	AssetMainType                   *string  `json:"assetMainType,omitempty"`
	AssetSubType                    *string  `json:"assetSubType,omitempty"`
	Cusip                           *string  `json:"cusip,omitempty"`
	Delayed                         *bool    `json:"delayed,omitempty"`
}

// LevelOneOptionsResponse is a single LEVELONE_OPTIONS data item, keyed
// by the numeric field tags in LevelOneOptionsField.
type LevelOneOptionsResponse struct {
	Symbol                  string   `json:"key"`
	Description             *string  `json:"1,omitempty"`
	BidPrice                *float64 `json:"2,omitempty"`
	AskPrice                *float64 `json:"3,omitempty"`
	LastPrice               *float64 `json:"4,omitempty"`
	HighPrice               *float64 `json:"5,omitempty"`
	LowPrice                *float64 `json:"6,omitempty"`
	ClosePrice              *float64 `json:"7,omitempty"`
	TotalVolume             *int64   `json:"8,omitempty"`
	OpenInterest            *int64   `json:"9,omitempty"`
	Volatility              *float64 `json:"10,omitempty"`
	MoneyIntrinsicValue     *float64 `json:"11,omitempty"`
	ExpirationYear          *int64   `json:"12,omitempty"`
	Multiplier              *float64 `json:"13,omitempty"`
	Digits                  *int64   `json:"14,omitempty"`
	OpenPrice               *float64 `json:"15,omitempty"`
	BidSize                 *int64   `json:"16,omitempty"`
	AskSize                 *int64   `json:"17,omitempty"`
	LastSize                *int64   `json:"18,omitempty"`
	NetChange               *float64 `json:"19,omitempty"`
	StrikePrice             *float64 `json:"20,omitempty"`
	ContractType            *string  `json:"21,omitempty"`
	Underlying              *string  `json:"22,omitempty"`
	ExpirationMonth         *int64   `json:"23,omitempty"`
	Deliverables            *string  `json:"24,omitempty"`
	TimeValue               *float64 `json:"25,omitempty"`
	ExpirationDay           *int64   `json:"26,omitempty"`
	DaysToExpiration        *int64   `json:"27,omitempty"`
	Delta                   *float64 `json:"28,omitempty"`
	Gamma                   *float64 `json:"29,omitempty"`
	Theta                   *float64 `json:"30,omitempty"`
	Vega                    *float64 `json:"31,omitempty"`
	Rho                     *float64 `json:"32,omitempty"`
	SecurityStatus          *string  `json:"33,omitempty"`
	TheoreticalOptionValue  *float64 `json:"34,omitempty"`
	UnderlyingPrice         *float64 `json:"35,omitempty"`
	UvExpirationType        *string  `json:"36,omitempty"`
	MarkPrice               *float64 `json:"37,omitempty"`
	QuoteTimeInLong         *int64   `json:"38,omitempty"`
	TradeTimeInLong         *int64   `json:"39,omitempty"`
	Exchange                *string  `json:"40,omitempty"`
	ExchangeName            *string  `json:"41,omitempty"`
	LastTradingDay          *int64   `json:"42,omitempty"`
	SettlementType          *string  `json:"43,omitempty"`
	NetPercentChange        *float64 `json:"44,omitempty"`
	MarkPriceNetChange      *float64 `json:"45,omitempty"`
	MarkPricePercentChange  *float64 `json:"46,omitempty"`
	ImpliedYield            *float64 `json:"47,omitempty"`
	IsPennyPilot            *bool    `json:"48,omitempty"`
	OptionRoot              *string  `json:"49,omitempty"`
	FiftyTwoWeekHigh        *float64 `json:"50,omitempty"`
	FiftyTwoWeekLow         *float64 `json:"51,omitempty"`
	IndicativeAskPrice      *float64 `json:"52,omitempty"`
	IndicativeBidPrice      *float64 `json:"53,omitempty"`
	IndicativeQuoteTime     *int64   `json:"54,omitempty"`
	ExerciseType            *string  `json:"55,omitempty"`
}

// LevelOneFuturesResponse is a single LEVELONE_FUTURES data item, keyed
// by the numeric field tags in LevelOneFuturesField.
type LevelOneFuturesResponse struct {
	Symbol                 string   `json:"key"`
	BidPrice               *float64 `json:"1,omitempty"`
	AskPrice               *float64 `json:"2,omitempty"`
	LastPrice              *float64 `json:"3,omitempty"`
	BidSize                *int64   `json:"4,omitempty"`
	AskSize                *int64   `json:"5,omitempty"`
	BidID                  *string  `json:"6,omitempty"`
	AskID                  *string  `json:"7,omitempty"`
	TotalVolume            *int64   `json:"8,omitempty"`
	LastSize               *int64   `json:"9,omitempty"`
	QuoteTime              *int64   `json:"10,omitempty"`
	TradeTime              *int64   `json:"11,omitempty"`
	HighPrice              *float64 `json:"12,omitempty"`
	LowPrice               *float64 `json:"13,omitempty"`
	ClosePrice             *float64 `json:"14,omitempty"`
	ExchangeID             *string  `json:"15,omitempty"`
	Description            *string  `json:"16,omitempty"`
	LastID                 *string  `json:"17,omitempty"`
	OpenPrice              *float64 `json:"18,omitempty"`
	NetChange              *float64 `json:"19,omitempty"`
	FuturePercentChange    *float64 `json:"20,omitempty"`
	ExchangeName           *string  `json:"21,omitempty"`
	SecurityStatus         *string  `json:"22,omitempty"`
	OpenInterest           *int32   `json:"23,omitempty"`
	Mark                   *float64 `json:"24,omitempty"`
	Tick                   *float64 `json:"25,omitempty"`
	TickAmount             *float64 `json:"26,omitempty"`
	Product                *string  `json:"27,omitempty"`
	FuturePriceFormat      *string  `json:"28,omitempty"`
	FutureTradingHours     *string  `json:"29,omitempty"`
	FutureIsTradable       *bool    `json:"30,omitempty"`
	FutureMultiplier       *float64 `json:"31,omitempty"`
	FutureIsActive         *bool    `json:"32,omitempty"`
	FutureSettlementPrice  *float64 `json:"33,omitempty"`
	FutureActiveSymbol     *string  `json:"34,omitempty"`
	FutureExpirationDate   *int64   `json:"35,omitempty"`
	ExpirationStyle        *string  `json:"36,omitempty"`
	AskTime                *int64   `json:"37,omitempty"`
	BidTime                *int64   `json:"38,omitempty"`
	QuotedInSession        *bool    `json:"39,omitempty"`
	SettlementDate         *int64   `json:"40,omitempty"`
}

// LevelOneFuturesOptionsResponse is a single LEVELONE_FUTURES_OPTIONS
// data item. See LevelOneFuturesOptionsField for the field-tag caveat.
type LevelOneFuturesOptionsResponse struct {
	Symbol             string   `json:"key"`
	BidPrice           *float64 `json:"1,omitempty"`
	AskPrice           *float64 `json:"2,omitempty"`
	LastPrice          *float64 `json:"3,omitempty"`
	BidSize            *int64   `json:"4,omitempty"`
	AskSize            *int64   `json:"5,omitempty"`
	BidID              *string  `json:"6,omitempty"`
	AskID              *string  `json:"7,omitempty"`
	TotalVolume        *int64   `json:"8,omitempty"`
	LastSize           *int64   `json:"9,omitempty"`
	QuoteTime          *int64   `json:"10,omitempty"`
	TradeTime          *int64   `json:"11,omitempty"`
	HighPrice          *float64 `json:"12,omitempty"`
	LowPrice           *float64 `json:"13,omitempty"`
	ClosePrice         *float64 `json:"14,omitempty"`
	ExchangeID         *string  `json:"15,omitempty"`
	Description        *string  `json:"16,omitempty"`
	LastID             *string  `json:"17,omitempty"`
	OpenPrice          *float64 `json:"18,omitempty"`
	NetChange          *float64 `json:"19,omitempty"`
	FuturePercentChange *float64 `json:"20,omitempty"`
	ExchangeName       *string  `json:"21,omitempty"`
	SecurityStatus     *string  `json:"22,omitempty"`
	OpenInterest       *int32   `json:"23,omitempty"`
	Mark               *float64 `json:"24,omitempty"`
	Tick               *float64 `json:"25,omitempty"`
	TickAmount         *float64 `json:"26,omitempty"`
	Product            *string  `json:"27,omitempty"`
	FuturePriceFormat  *string  `json:"28,omitempty"`
	FutureTradingHours *string  `json:"29,omitempty"`
	FutureIsTradable   *bool    `json:"30,omitempty"`
	FutureMultiplier   *float64 `json:"31,omitempty"`
}

// LevelOneForexResponse is a single LEVELONE_FOREX data item. See
// LevelOneForexField for the field-tag caveat.
type LevelOneForexResponse struct {
	Symbol          string   `json:"key"`
	BidPrice        *float64 `json:"1,omitempty"`
	AskPrice        *float64 `json:"2,omitempty"`
	LastPrice       *float64 `json:"3,omitempty"`
	BidSize         *int64   `json:"4,omitempty"`
	AskSize         *int64   `json:"5,omitempty"`
	TotalVolume     *int64   `json:"6,omitempty"`
	LastSize        *int64   `json:"7,omitempty"`
	QuoteTime       *int64   `json:"8,omitempty"`
	TradeTime       *int64   `json:"9,omitempty"`
	HighPrice       *float64 `json:"10,omitempty"`
	LowPrice        *float64 `json:"11,omitempty"`
	ClosePrice      *float64 `json:"12,omitempty"`
	ExchangeID      *string  `json:"13,omitempty"`
	Description     *string  `json:"14,omitempty"`
	OpenPrice       *float64 `json:"15,omitempty"`
	NetChange       *float64 `json:"16,omitempty"`
	ExchangeName    *string  `json:"17,omitempty"`
	SecurityStatus  *string  `json:"18,omitempty"`
	Tick            *float64 `json:"19,omitempty"`
	TickAmount      *float64 `json:"20,omitempty"`
	MarketMaker     *string  `json:"21,omitempty"`
	FiftyTwoWeekHigh *float64 `json:"22,omitempty"`
	FiftyTwoWeekLow  *float64 `json:"23,omitempty"`
	Mark            *float64 `json:"24,omitempty"`
	TradingHours    *string  `json:"25,omitempty"`
	IsTradable      *bool    `json:"26,omitempty"`
	MarketMakerAsk  *float64 `json:"27,omitempty"`
	MarketMakerBid  *float64 `json:"28,omitempty"`
	Digits          *int64   `json:"29,omitempty"`
}

// commandResponse is a single entry of an incoming frame's "response"
// array: the acknowledgement of an ADD/SUBS/UNSUBS/VIEW/LOGIN/LOGOUT
// request.
type commandResponse struct {
	Service   string `json:"service"`
	Command   string `json:"command"`
	RequestID string `json:"requestid"`
	Content   struct {
		Code    int    `json:"code"`
		Msg     string `json:"msg"`
	} `json:"content"`
}

// dataFrame is a single entry of an incoming frame's "data" array: a
// batch of content items for one service.
type dataFrame struct {
	Service   string            `json:"service"`
	Timestamp int64             `json:"timestamp"`
	Command   string            `json:"command"`
	Content   []json.RawMessage `json:"content"`
}

// incomingFrame is the envelope every message read off the WebSocket is
// parsed into before being split into command acknowledgements and data
// items.
type incomingFrame struct {
	Response []commandResponse `json:"response"`
	Data     []dataFrame       `json:"data"`
	Notify   []json.RawMessage `json:"notify"`
}

// MessageCodec demultiplexes raw frames read off the stream into typed
// StreamerMessage values and command acknowledgements. A codec is
// stateless and safe to share across goroutines; Session owns one.
type MessageCodec struct {
	logger *log.Logger
}

// NewMessageCodec builds a MessageCodec. logger may be nil, in which
// case the standard library's default logger is used.
func NewMessageCodec(logger *log.Logger) *MessageCodec {
	if logger == nil {
		logger = log.Default()
	}
	return &MessageCodec{logger: logger}
}

// Decode parses a single raw text frame, returning the command
// acknowledgements and the typed data messages it carried. A data item
// for an unrecognized service, or one that fails to unmarshal into its
// service's typed struct, is logged and skipped rather than failing the
// whole frame — one malformed tick should never take down the feed.
func (c *MessageCodec) Decode(raw []byte) ([]commandResponse, []StreamerMessage, error) {
	var frame incomingFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, nil, fmt.Errorf("streaming: failed to parse frame: %w", err)
	}

	var messages []StreamerMessage
	for _, d := range frame.Data {
		service, ok := parseService(d.Service)
		if !ok {
			c.logger.Printf("streaming: skipping data frame for unrecognized service %q", d.Service)
			continue
		}
		for _, item := range d.Content {
			msg, err := decodeContentItem(service, item)
			if err != nil {
				c.logger.Printf("streaming: failed to decode %s content item: %v", service, err)
				continue
			}
			messages = append(messages, msg)
		}
	}

	return frame.Response, messages, nil
}

func decodeContentItem(service Service, raw json.RawMessage) (StreamerMessage, error) {
	switch service {
	case ServiceLevelOneEquities:
		var v LevelOneEquitiesResponse
		if err := json.Unmarshal(raw, &v); err != nil {
			return StreamerMessage{}, err
		}
		return StreamerMessage{Kind: KindLevelOneEquity, LevelOneEquity: &v}, nil
	case ServiceLevelOneOptions:
		var v LevelOneOptionsResponse
		if err := json.Unmarshal(raw, &v); err != nil {
			return StreamerMessage{}, err
		}
		return StreamerMessage{Kind: KindLevelOneOption, LevelOneOption: &v}, nil
	case ServiceLevelOneFutures:
		var v LevelOneFuturesResponse
		if err := json.Unmarshal(raw, &v); err != nil {
			return StreamerMessage{}, err
		}
		return StreamerMessage{Kind: KindLevelOneFuture, LevelOneFuture: &v}, nil
	case ServiceLevelOneFuturesOptions:
		var v LevelOneFuturesOptionsResponse
		if err := json.Unmarshal(raw, &v); err != nil {
			return StreamerMessage{}, err
		}
		return StreamerMessage{Kind: KindLevelOneFuturesOption, LevelOneFuturesOption: &v}, nil
	case ServiceLevelOneForex:
		var v LevelOneForexResponse
		if err := json.Unmarshal(raw, &v); err != nil {
			return StreamerMessage{}, err
		}
		return StreamerMessage{Kind: KindLevelOneForex, LevelOneForex: &v}, nil
	default:
		return StreamerMessage{}, fmt.Errorf("no typed decoder for service %s", service)
	}
}
