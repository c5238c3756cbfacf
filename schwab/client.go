package schwab

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

const refreshGroupKey = "refresh"

// RestClient is a typed wrapper around Schwab's market-data and trader
// REST surface. It attaches the current access token to every request
// and, on a 401, refreshes exactly once (coalescing concurrent
// refreshes via singleflight) before retrying the request a single
// time.
type RestClient struct {
	httpClient *http.Client
	tokens     *TokenStore
	auth       *Authenticator
	logger     *log.Logger

	refreshGroup singleflight.Group
}

// NewRestClient builds a RestClient. httpClient may be nil, in which
// case a client with a 10 second timeout is used, matching the
// request-timeout discipline the rest of the pack applies to outbound
// HTTP calls.
func NewRestClient(tokens *TokenStore, auth *Authenticator, httpClient *http.Client, logger *log.Logger) *RestClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RestClient{httpClient: httpClient, tokens: tokens, auth: auth, logger: logger}
}

// CurrentAccessToken returns the access token currently held by the
// underlying TokenStore, for callers (such as a streaming session) that
// need to sign something other than an HTTP request built via
// doRequest.
func (c *RestClient) CurrentAccessToken() (string, error) {
	tok, ok := c.tokens.Current()
	if !ok {
		return "", &NoTokenError{}
	}
	return tok.AccessToken, nil
}

// doRequest executes req with the current bearer token. build is called
// to reconstruct the request body/headers if a retry is required after
// a refresh, since an *http.Request's body can only be read once.
func (c *RestClient) doRequest(ctx context.Context, build func(ctx context.Context, accessToken string) (*http.Request, error)) (*http.Response, error) {
	tok, ok := c.tokens.Current()
	if !ok {
		return nil, &NoTokenError{}
	}

	req, err := build(ctx, tok.AccessToken)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Cause: err}
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	resp.Body.Close()

	refreshed, err := c.refreshAndStore(ctx, tok.RefreshToken)
	if err != nil {
		return nil, err
	}

	req, err = build(ctx, refreshed.AccessToken)
	if err != nil {
		return nil, err
	}
	resp, err = c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Cause: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, &UnauthorizedError{Status: resp.StatusCode, Body: string(body)}
	}
	return resp, nil
}

// refreshAndStore coalesces concurrent refresh attempts into one
// in-flight call: every caller racing a 401 on the same credentials
// awaits the same refreshed TokenSet rather than each issuing its own
// refresh request.
func (c *RestClient) refreshAndStore(ctx context.Context, refreshToken string) (TokenSet, error) {
	v, err, _ := c.refreshGroup.Do(refreshGroupKey, func() (interface{}, error) {
		tok, err := c.auth.Refresh(ctx, refreshToken)
		if err != nil {
			return TokenSet{}, err
		}
		if err := c.tokens.Replace(tok); err != nil {
			return TokenSet{}, err
		}
		return tok, nil
	})
	if err != nil {
		return TokenSet{}, err
	}
	return v.(TokenSet), nil
}

func (c *RestClient) handleErrorResponse(method, url string, resp *http.Response) error {
	defer resp.Body.Close()
	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return &RestRequestFailedError{Method: method, URL: url, Status: resp.StatusCode, Body: "<failed to read body>"}
	}
	c.logger.Printf("schwab: %s %s returned HTTP %d: %s", method, url, resp.StatusCode, string(body))
	return &RestRequestFailedError{Method: method, URL: url, Status: resp.StatusCode, Body: string(body)}
}
