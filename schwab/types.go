package schwab

// Quote is a single entry of a GetQuotes/Quote response, keyed by
// ticker symbol in the map the endpoint returns.
type Quote struct {
	AssetType     string             `json:"assetType"`
	AssetMainType string             `json:"assetMainType"`
	Cusip         string             `json:"cusip,omitempty"`
	Symbol        string             `json:"symbol"`
	Description   string             `json:"description"`
	Quote         *EquityQuoteDetail `json:"quote,omitempty"`
	Fundamental   *FundamentalData   `json:"fundamental,omitempty"`
}

// EquityQuoteDetail is the "quote" sub-object of a Quote.
type EquityQuoteDetail struct {
	FiftyTwoWeekHigh  float64 `json:"52WeekHigh"`
	FiftyTwoWeekLow   float64 `json:"52WeekLow"`
	AskPrice          float64 `json:"askPrice"`
	AskSize           int64   `json:"askSize"`
	BidPrice          float64 `json:"bidPrice"`
	BidSize           int64   `json:"bidSize"`
	ClosePrice        float64 `json:"closePrice"`
	HighPrice         float64 `json:"highPrice"`
	LastPrice         float64 `json:"lastPrice"`
	LastSize          int64   `json:"lastSize"`
	LowPrice          float64 `json:"lowPrice"`
	Mark              float64 `json:"mark"`
	NetChange         float64 `json:"netChange"`
	NetPercentChange  float64 `json:"netPercentChange"`
	OpenPrice         float64 `json:"openPrice"`
	QuoteTimeInLong   int64   `json:"quoteTimeInLong"`
	SecurityStatus    string  `json:"securityStatus"`
	TotalVolume       int64   `json:"totalVolume"`
	TradeTimeInLong   int64   `json:"tradeTimeInLong"`
}

// FundamentalData is the "fundamental" sub-object of a Quote.
type FundamentalData struct {
	Avg10DayVolume   int64   `json:"avg10DaysVolume"`
	Avg1YearVolume   int64   `json:"avg1YearVolume"`
	DeclarationDate  string  `json:"declarationDate"`
	DivAmount        float64 `json:"divAmount"`
	DivExDate        string  `json:"divExDate"`
	DivFreq          int32   `json:"divFreq"`
	DivPayDate       string  `json:"divPayDate"`
	DivYield         float64 `json:"divYield"`
	EPS              float64 `json:"eps"`
	Exchange         string  `json:"exchange"`
	High52           float64 `json:"high52"`
	LastEarningsDate string  `json:"lastEarningsDate"`
	Low52            float64 `json:"low52"`
	MarketCap        float64 `json:"marketCap"`
	PERatio          float64 `json:"peRatio"`
	Beta             float64 `json:"beta"`
	SharesOutstanding int64  `json:"sharesOutstanding"`
}

// ChainsResponse is the response of GetChains.
type ChainsResponse struct {
	Symbol          string                                `json:"symbol"`
	Status          string                                `json:"status"`
	Strategy        string                                `json:"strategy"`
	Interval        float64                                `json:"interval"`
	IsDelayed       bool                                   `json:"isDelayed"`
	IsIndex         bool                                   `json:"isIndex"`
	UnderlyingPrice float64                                `json:"underlyingPrice"`
	Volatility      float64                                `json:"volatility"`
	CallExpDateMap  map[string]map[string][]OptionContract `json:"callExpDateMap"`
	PutExpDateMap   map[string]map[string][]OptionContract `json:"putExpDateMap"`
}

// OptionContract is a single contract entry in a ChainsResponse's
// expiration map.
type OptionContract struct {
	PutCall          string  `json:"putCall"`
	Symbol           string  `json:"symbol"`
	Description      string  `json:"description"`
	Bid              float64 `json:"bid"`
	Ask              float64 `json:"ask"`
	Last             float64 `json:"last"`
	Mark             float64 `json:"mark"`
	BidSize          int64   `json:"bidSize"`
	AskSize          int64   `json:"askSize"`
	TotalVolume      int64   `json:"totalVolume"`
	OpenInterest     int64   `json:"openInterest"`
	Volatility       float64 `json:"volatility"`
	Delta            float64 `json:"delta"`
	Gamma            float64 `json:"gamma"`
	Theta            float64 `json:"theta"`
	Vega             float64 `json:"vega"`
	Rho              float64 `json:"rho"`
	StrikePrice      float64 `json:"strikePrice"`
	ExpirationDate   string  `json:"expirationDate"`
	DaysToExpiration int64   `json:"daysToExpiration"`
	Multiplier       float64 `json:"multiplier"`
	InTheMoney       bool    `json:"inTheMoney"`
}

// PriceHistoryResponse is the response of PriceHistory.
type PriceHistoryResponse struct {
	Symbol  string   `json:"symbol"`
	Empty   bool     `json:"empty"`
	Candles []Candle `json:"candles"`
}

// Candle is a single OHLCV bar of a PriceHistoryResponse.
type Candle struct {
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   int64   `json:"volume"`
	DateTime int64   `json:"datetime"`
}

// Mover is a single entry of a Movers response.
type Mover struct {
	Change         float64 `json:"change"`
	Description    string  `json:"description"`
	Direction      string  `json:"direction"`
	Last           float64 `json:"last"`
	PercentChange  float64 `json:"percentChange"`
	Symbol         string  `json:"symbol"`
	TotalVolume    int64   `json:"totalVolume"`
}

// Instrument is a single entry of an Instruments/InstrumentCusip
// response.
type Instrument struct {
	Cusip       string `json:"cusip"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Exchange    string `json:"exchange"`
	AssetType   string `json:"assetType"`
}

// MarketHours is a single market's entry of a MarketHours/MarketHour
// response.
type MarketHours struct {
	Date       string `json:"date"`
	MarketType string `json:"marketType"`
	Exchange   string `json:"exchange,omitempty"`
	Category   string `json:"category,omitempty"`
	Product    string `json:"product"`
	ProductName string `json:"productName"`
	IsOpen     bool   `json:"isOpen"`
}

// ExpirationChainResponse is the response of OptionExpirationChain.
type ExpirationChainResponse struct {
	Status         string           `json:"status"`
	ExpirationList []ExpirationDate `json:"expirationList"`
}

// ExpirationDate is a single entry of an ExpirationChainResponse.
type ExpirationDate struct {
	ExpirationDate   string `json:"expirationDate"`
	DaysToExpiration int32  `json:"daysToExpiration"`
	ExpirationType   string `json:"expirationType"`
	Standard         bool   `json:"standard"`
}

// UserPreferences is the response of GetPreferences.
type UserPreferences struct {
	Accounts     []AccountPreference `json:"accounts"`
	Offers       []Offer             `json:"offers"`
	StreamerInfo []StreamerInfo      `json:"streamerInfo"`
}

// AccountPreference describes one linked account's display preferences.
type AccountPreference struct {
	AccountColor         string `json:"accountColor"`
	AccountNumber        string `json:"accountNumber"`
	AutoPositionEffect   bool   `json:"autoPositionEffect"`
	DisplayAcctID        string `json:"displayAcctId"`
	LotSelectionMethod   string `json:"lotSelectionMethod"`
	NickName             string `json:"nickName"`
	PrimaryAccount       bool   `json:"primaryAccount"`
	AccountType          string `json:"type"`
}

// Offer describes the caller's market-data entitlements.
type Offer struct {
	Level2Permissions  bool   `json:"level2Permissions"`
	MktDataPermission  string `json:"mktDataPermission"`
}

// StreamerInfo is the session descriptor StreamSession is built from.
type StreamerInfo struct {
	StreamerSocketURL        string `json:"streamerSocketUrl"`
	SchwabClientCustomerID   string `json:"schwabClientCustomerId"`
	SchwabClientCorrelID     string `json:"schwabClientCorrelId"`
	SchwabClientChannel      string `json:"schwabClientChannel"`
	SchwabClientFunctionID   string `json:"schwabClientFunctionId"`
}
