package schwab

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Authenticator drives the OAuth 2.0 authorization-code and
// refresh-token grants against Schwab's token endpoint. It never
// touches the TokenStore itself: callers decide when to persist the
// TokenSet it returns.
type Authenticator struct {
	oauthConfig *oauth2.Config
	logger      *log.Logger
}

// NewAuthenticator builds an Authenticator for the given application
// credentials, talking to Schwab's fixed authorize/token endpoints.
func NewAuthenticator(appKey, appSecret string, logger *log.Logger) *Authenticator {
	if logger == nil {
		logger = log.Default()
	}
	return &Authenticator{
		oauthConfig: &oauth2.Config{
			ClientID:     appKey,
			ClientSecret: appSecret,
			RedirectURL:  DefaultRedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   AuthorizeURL,
				TokenURL:  TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
			Scopes: []string{"readonly"},
		},
		logger: logger,
	}
}

// BuildAuthorizeURL returns the URL the caller should send the user to
// in order to grant access.
func (a *Authenticator) BuildAuthorizeURL() string {
	return a.oauthConfig.AuthCodeURL("")
}

// ExtractAuthCode pulls the "code" query parameter out of the URL the
// browser is redirected to after the user grants access, undoing the
// one escape ("%40" -> "@") Schwab's redirect is known to carry.
func ExtractAuthCode(redirectedURL string) (string, error) {
	idx := strings.Index(redirectedURL, "code=")
	if idx == -1 {
		return "", &AuthCodeMissingError{URL: redirectedURL}
	}
	rest := redirectedURL[idx+len("code="):]
	if amp := strings.IndexByte(rest, '&'); amp != -1 {
		rest = rest[:amp]
	}
	return strings.ReplaceAll(rest, "%40", "@"), nil
}

// ExchangeCode exchanges an authorization code for a TokenSet.
func (a *Authenticator) ExchangeCode(ctx context.Context, code string) (TokenSet, error) {
	tok, err := a.oauthConfig.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return TokenSet{}, &AuthExchangeFailedError{
				Status: retrieveErr.Response.StatusCode,
				Body:   string(retrieveErr.Body),
				Cause:  err,
			}
		}
		return TokenSet{}, fmt.Errorf("schwab: auth code exchange failed: %w", err)
	}
	return tokenSetFromOAuth2(tok), nil
}

// Refresh exchanges a refresh token for a new TokenSet.
func (a *Authenticator) Refresh(ctx context.Context, refreshToken string) (TokenSet, error) {
	src := a.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return TokenSet{}, &RefreshFailedError{
				Status: retrieveErr.Response.StatusCode,
				Body:   string(retrieveErr.Body),
				Cause:  err,
			}
		}
		return TokenSet{}, fmt.Errorf("schwab: token refresh failed: %w", err)
	}
	return tokenSetFromOAuth2(tok), nil
}

func tokenSetFromOAuth2(tok *oauth2.Token) TokenSet {
	out := TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresAt:    tok.Expiry,
	}
	if idTok, ok := tok.Extra("id_token").(string); ok {
		out.IDToken = idTok
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		out.Scope = scope
	}
	if out.ExpiresAt.IsZero() {
		if expiresIn, ok := tok.Extra("expires_in").(float64); ok {
			out.ExpiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
		}
	}
	return out
}
