package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("bearer token is missing")
	ErrInvalidToken = errors.New("bearer token is invalid")
)

// Verifier validates bearer tokens against a shared signing key.
type Verifier struct {
	parser *jwt.Parser
	key    []byte
}

// NewVerifier builds a verifier for HMAC-signed tokens. Issuer and audience
// are enforced only when non-empty.
func NewVerifier(key []byte, issuer, audience string) (*Verifier, error) {
	if len(key) == 0 {
		return nil, errors.New("signing key is required")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &Verifier{parser: jwt.NewParser(opts...), key: key}, nil
}

// Verify checks the Authorization header value and returns the identity the
// token asserts. The expected form is "Bearer <token>".
func (v *Verifier) Verify(authorization string) (Identity, error) {
	raw, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return Identity{}, ErrMissingToken
	}
	claims := jwt.RegisteredClaims{}
	if _, err := v.parser.ParseWithClaims(strings.TrimSpace(raw), &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	}); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: subject claim is empty", ErrInvalidToken)
	}
	return Identity{Subject: claims.Subject}, nil
}
