package schwab

import (
	"fmt"
	"time"

	"gopkg.in/square/go-jose.v2/jwt"
)

// IDTokenClaims is the subset of the OIDC-shaped id_token claim set that
// is useful for diagnostic logging. Schwab does not publish a JWKS for
// this token, so claims are parsed, never cryptographically verified.
type IDTokenClaims struct {
	Subject string    `json:"sub"`
	Issuer  string    `json:"iss"`
	Expiry  time.Time `json:"-"`
}

// DecodeIDTokenClaims parses the unverified claim set of a compact JWT.
// It returns an error if raw is not a well-formed JWT; it never fails
// due to signature mismatch, since no signature check is performed.
func DecodeIDTokenClaims(raw string) (IDTokenClaims, error) {
	if raw == "" {
		return IDTokenClaims{}, fmt.Errorf("schwab: empty id_token")
	}

	tok, err := jwt.ParseSigned(raw)
	if err != nil {
		return IDTokenClaims{}, fmt.Errorf("schwab: id_token is not a compact JWS: %w", err)
	}

	var claims struct {
		Subject string `json:"sub"`
		Issuer  string `json:"iss"`
		Expiry  int64  `json:"exp"`
	}
	// UnsafeClaimsWithoutVerification is intentional: this client has no
	// key to verify against and only reads claims for logging.
	if err := tok.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return IDTokenClaims{}, fmt.Errorf("schwab: failed to read id_token claims: %w", err)
	}

	out := IDTokenClaims{Subject: claims.Subject, Issuer: claims.Issuer}
	if claims.Expiry != 0 {
		out.Expiry = time.Unix(claims.Expiry, 0).UTC()
	}
	return out, nil
}
