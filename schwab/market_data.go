package schwab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

func (c *RestClient) get(ctx context.Context, rawURL string, query url.Values, out interface{}) error {
	u := rawURL
	if len(query) > 0 {
		u = rawURL + "?" + query.Encode()
	}

	resp, err := c.doRequest(ctx, func(ctx context.Context, accessToken string) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("schwab: failed to build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+accessToken)
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(http.MethodGet, u, resp)
	}
	if out == nil {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: http.MethodGet, URL: u, Cause: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Reason: err.Error(), Payload: string(body)}
	}
	return nil
}

// GetQuotes fetches quotes for multiple symbols in a single call.
func (c *RestClient) GetQuotes(ctx context.Context, symbols []string, fields []QuoteField, indicative *bool) (map[string]Quote, error) {
	q := parseParams([]optionalParam{
		opt("symbols", strings.Join(symbols, ","), true),
		opt("fields", joinQuoteFields(fields), len(fields) > 0),
		opt("indicative", strconv.FormatBool(indicative != nil && *indicative), indicative != nil),
	})

	var out map[string]Quote
	if err := c.get(ctx, MarketDataBaseURL+"/quotes", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Quote fetches a quote for a single symbol.
func (c *RestClient) Quote(ctx context.Context, symbolID string, fields []QuoteField) (map[string]Quote, error) {
	q := parseParams([]optionalParam{
		opt("fields", joinQuoteFields(fields), len(fields) > 0),
	})

	var out map[string]Quote
	if err := c.get(ctx, MarketDataBaseURL+"/"+url.PathEscape(symbolID)+"/quotes", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetChains fetches an options chain for symbol.
func (c *RestClient) GetChains(ctx context.Context, symbol string, contractType ContractType, strikeCount int64, includeUnderlyingQuote bool) (ChainsResponse, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("contractType", string(contractType))
	q.Set("strikeCount", strconv.FormatInt(strikeCount, 10))
	q.Set("includeUnderlyingQuote", strconv.FormatBool(includeUnderlyingQuote))

	var out ChainsResponse
	if err := c.get(ctx, MarketDataBaseURL+"/chains", q, &out); err != nil {
		return ChainsResponse{}, err
	}
	return out, nil
}

// OptionExpirationChain fetches the expiration dates available for an
// underlying's option chain.
func (c *RestClient) OptionExpirationChain(ctx context.Context, symbol string) (ExpirationChainResponse, error) {
	q := parseParams([]optionalParam{opt("symbol", symbol, true)})

	var out ExpirationChainResponse
	if err := c.get(ctx, MarketDataBaseURL+"/expirationchain", q, &out); err != nil {
		return ExpirationChainResponse{}, err
	}
	return out, nil
}

// PriceHistoryRequest carries the optional parameters of PriceHistory.
// Zero values mean "not supplied", matching the Option<T> semantics the
// endpoint was ported from.
type PriceHistoryRequest struct {
	Symbol                string
	PeriodType            PeriodType
	Period                int64
	FrequencyType         FrequencyType
	Frequency             int64
	StartDate             time.Time
	EndDate               time.Time
	NeedExtendedHoursData *bool
	NeedPreviousClose     *bool
}

// PriceHistory fetches historical OHLCV candles for a symbol.
func (c *RestClient) PriceHistory(ctx context.Context, req PriceHistoryRequest) (PriceHistoryResponse, error) {
	startMs, hasStart := timeToEpochMs(req.StartDate)
	endMs, hasEnd := timeToEpochMs(req.EndDate)

	params := []optionalParam{
		opt("symbol", req.Symbol, req.Symbol != ""),
		opt("periodType", string(req.PeriodType), req.PeriodType != ""),
		opt("period", strconv.FormatInt(req.Period, 10), req.Period != 0),
		opt("frequencyType", string(req.FrequencyType), req.FrequencyType != ""),
		opt("frequency", strconv.FormatInt(req.Frequency, 10), req.Frequency != 0),
		opt("startDate", startMs, hasStart),
		opt("endDate", endMs, hasEnd),
	}
	if req.NeedExtendedHoursData != nil {
		params = append(params, opt("needExtendedHoursData", strconv.FormatBool(*req.NeedExtendedHoursData), true))
	}
	if req.NeedPreviousClose != nil {
		params = append(params, opt("needPreviousClose", strconv.FormatBool(*req.NeedPreviousClose), true))
	}

	var out PriceHistoryResponse
	if err := c.get(ctx, MarketDataBaseURL+"/pricehistory", parseParams(params), &out); err != nil {
		return PriceHistoryResponse{}, err
	}
	return out, nil
}

// Movers fetches the top movers for an index or exchange. It must be
// called during market hours.
func (c *RestClient) Movers(ctx context.Context, symbol string, sort MoversSort, frequency int64) ([]Mover, error) {
	q := parseParams([]optionalParam{
		opt("sort", string(sort), sort != ""),
		opt("frequency", strconv.FormatInt(frequency, 10), frequency != 0),
	})

	var out []Mover
	if err := c.get(ctx, MarketDataBaseURL+"/movers/"+url.PathEscape(symbol), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarketHours fetches market hours for multiple market categories.
func (c *RestClient) MarketHours(ctx context.Context, symbols []MarketSymbol, date time.Time) (map[string]MarketHours, error) {
	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = string(s)
	}
	dateStr, hasDate := timeToYYYYMMDD(date)

	q := parseParams([]optionalParam{
		opt("markets", strings.Join(names, ","), true),
		opt("date", dateStr, hasDate),
	})

	var out map[string]MarketHours
	if err := c.get(ctx, MarketDataBaseURL+"/markets", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarketHour fetches market hours for a single market category.
func (c *RestClient) MarketHour(ctx context.Context, market MarketSymbol, date time.Time) (MarketHours, error) {
	dateStr, hasDate := timeToYYYYMMDD(date)
	q := parseParams([]optionalParam{opt("date", dateStr, hasDate)})

	var out MarketHours
	if err := c.get(ctx, MarketDataBaseURL+"/markets/"+string(market), q, &out); err != nil {
		return MarketHours{}, err
	}
	return out, nil
}

// Instruments searches for instruments matching symbol under the given
// projection strategy.
func (c *RestClient) Instruments(ctx context.Context, symbol string, projection Projection) ([]Instrument, error) {
	q := parseParams([]optionalParam{
		opt("symbol", symbol, true),
		opt("projection", string(projection), true),
	})

	var out []Instrument
	if err := c.get(ctx, MarketDataBaseURL+"/instruments", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InstrumentCusip fetches the instrument identified by cusipID.
func (c *RestClient) InstrumentCusip(ctx context.Context, cusipID string) ([]Instrument, error) {
	var out []Instrument
	if err := c.get(ctx, MarketDataBaseURL+"/instruments/"+url.PathEscape(cusipID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
