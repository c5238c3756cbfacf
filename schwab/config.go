package schwab

import "os"

// Base URLs for the Schwab market-data platform. The streaming socket
// URL is not fixed: it is handed back per-session in StreamerInfo from
// GetPreferences, so it is not listed here.
const (
	MarketDataBaseURL = "https://api.schwabapi.com/marketdata/v1"
	TraderBaseURL     = "https://api.schwabapi.com/trader/v1"
	AuthorizeURL      = "https://api.schwabapi.com/v1/oauth/authorize?response_type=code"
	TokenURL          = "https://api.schwabapi.com/v1/oauth/token"
	DefaultRedirectURI = "https://127.0.0.1"
	defaultTokenPath   = "tokens.json"
)

// Config is the environment-sourced configuration for callers that do
// not want to wire credentials by hand. Library
// types never read the environment themselves; they take these values
// as constructor arguments.
type Config struct {
	AppKey    string
	AppSecret string
	TokenPath string
}

// LoadConfig reads SCHWAB_APP_KEY, SCHWAB_APP_SECRET and
// SCHWAB_TOKEN_PATH from the environment. SCHWAB_TOKEN_PATH defaults to
// "tokens.json" when unset.
func LoadConfig() (Config, error) {
	cfg := Config{
		AppKey:    os.Getenv("SCHWAB_APP_KEY"),
		AppSecret: os.Getenv("SCHWAB_APP_SECRET"),
		TokenPath: os.Getenv("SCHWAB_TOKEN_PATH"),
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = defaultTokenPath
	}
	if cfg.AppKey == "" {
		return Config{}, &ConfigError{Field: "SCHWAB_APP_KEY"}
	}
	if cfg.AppSecret == "" {
		return Config{}, &ConfigError{Field: "SCHWAB_APP_SECRET"}
	}
	return cfg, nil
}
