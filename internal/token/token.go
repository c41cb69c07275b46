package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure kinds. Verify never returns claims together
// with an error; any parse problem fails closed.
var (
	ErrMalformed        = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrExpired          = errors.New("token has expired")
)

// Codec signs and verifies compact HS256 tokens carrying identity and
// tenant claims. The signature covers header and payload, so any
// tampering fails verification.
type Codec struct {
	secret   []byte
	lifetime time.Duration
}

func NewCodec(secret string, lifetime time.Duration) *Codec {
	return &Codec{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// Lifetime returns the configured token lifetime.
func (c *Codec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue creates a signed token for the given subject. Expiry is an
// absolute instant computed as now + the configured lifetime. Extra
// claims (current company, role) are embedded as-is.
func (c *Codec) Issue(subject string, extra map[string]interface{}) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(c.lifetime).Unix(),
	}
	for name, value := range extra {
		claims[name] = value
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token, checks the signature and expiry, and
// returns the claims. Failures map to exactly one of ErrMalformed,
// ErrInvalidSignature or ErrExpired.
func (c *Codec) Verify(raw string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformed
	}
	return claims, nil
}

// Subject verifies the token and returns its subject claim.
func (c *Codec) Subject(raw string) (string, error) {
	claims, err := c.Verify(raw)
	if err != nil {
		return "", err
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return "", ErrMalformed
	}
	return subject, nil
}

// Extract verifies the token and projects a single claim by name.
// Returns nil when the claim is absent.
func (c *Codec) Extract(raw, name string) (interface{}, error) {
	claims, err := c.Verify(raw)
	if err != nil {
		return nil, err
	}
	return claims[name], nil
}
