package schwab

import "fmt"

// ConfigError indicates a missing or invalid piece of runtime
// configuration: a missing environment variable, or a token file that
// is absent or fails to parse.
type ConfigError struct {
	Field string
	Cause error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schwab: invalid configuration (%s): %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("schwab: missing required configuration: %s", e.Field)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// AuthExchangeFailedError is returned when the authorization-code grant
// is rejected by the token endpoint.
type AuthExchangeFailedError struct {
	Status int
	Body   string
	Cause  error
}

func (e *AuthExchangeFailedError) Error() string {
	return fmt.Sprintf("schwab: auth code exchange failed (HTTP %d): %s", e.Status, e.Body)
}

func (e *AuthExchangeFailedError) Unwrap() error { return e.Cause }

// RefreshFailedError is returned when the refresh-token grant is rejected.
type RefreshFailedError struct {
	Status int
	Body   string
	Cause  error
}

func (e *RefreshFailedError) Error() string {
	return fmt.Sprintf("schwab: token refresh failed (HTTP %d): %s", e.Status, e.Body)
}

func (e *RefreshFailedError) Unwrap() error { return e.Cause }

// RestRequestFailedError wraps a non-2xx REST response that was not
// resolved by a token refresh.
type RestRequestFailedError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *RestRequestFailedError) Error() string {
	return fmt.Sprintf("schwab: %s %s failed (HTTP %d): %s", e.Method, e.URL, e.Status, e.Body)
}

// TokenStoreError wraps a failure to load, save, or delete the persisted
// token set.
type TokenStoreError struct {
	Op    string
	Cause error
}

func (e *TokenStoreError) Error() string {
	return fmt.Sprintf("schwab: token store %s failed: %v", e.Op, e.Cause)
}

func (e *TokenStoreError) Unwrap() error { return e.Cause }

// NoTokenError is returned when an operation requires a persisted token
// set but none has been stored yet.
type NoTokenError struct{}

func (e *NoTokenError) Error() string {
	return "schwab: no token set stored; call ExchangeCode first"
}

// PreferencesMissingStreamerError is returned when a user preferences
// response carries no streamer descriptor to build a StreamSession from.
type PreferencesMissingStreamerError struct{}

func (e *PreferencesMissingStreamerError) Error() string {
	return "schwab: user preferences response has no streamerInfo entries"
}

// AuthCodeMissingError is returned when a redirected URL carries no
// "code" query parameter to extract.
type AuthCodeMissingError struct {
	URL string
}

func (e *AuthCodeMissingError) Error() string {
	return fmt.Sprintf("schwab: 'code=' not found in redirected URL: %s", e.URL)
}

// UnauthorizedError is returned when a request is still rejected with
// HTTP 401 after the one refresh-and-retry doRequest performs.
type UnauthorizedError struct {
	Status int
	Body   string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("schwab: request unauthorized after token refresh (HTTP %d): %s", e.Status, e.Body)
}

// TransportError wraps a network-level failure (dial, TLS, socket read)
// encountered while executing a REST request.
type TransportError struct {
	Method string
	URL    string
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("schwab: %s %s failed: %v", e.Method, e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// DecodeError is returned when a successful response body fails to
// unmarshal into the expected type.
type DecodeError struct {
	Reason  string
	Payload string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("schwab: failed to decode response: %s", e.Reason)
}
