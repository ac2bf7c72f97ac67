// Package entitlement gates premium-only actions. The check is evaluated
// per gated action, never cached across the session.
package entitlement

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid license token")

// Checker answers whether the current user holds a premium entitlement.
type Checker interface {
	IsPremium(ctx context.Context) (bool, error)
}

// Claims is the license token payload.
type Claims struct {
	Premium bool `json:"premium"`
	jwt.RegisteredClaims
}

// TokenChecker validates a locally cached license token offline. An absent,
// malformed or expired token means "not premium", not an error; denial is
// a normal outcome of the gate.
type TokenChecker struct {
	secret []byte
	token  string
}

// NewTokenChecker creates a checker for the given token and signing secret.
func NewTokenChecker(secret, token string) *TokenChecker {
	return &TokenChecker{secret: []byte(secret), token: token}
}

func (c *TokenChecker) IsPremium(ctx context.Context) (bool, error) {
	if c.token == "" {
		return false, nil
	}
	claims, err := ParseToken(string(c.secret), c.token)
	if err != nil {
		return false, nil
	}
	return claims.Premium, nil
}

// ParseToken validates a license token and returns its claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueToken signs a license token. Used by lectiod when handing out
// tokens and by tests.
func IssueToken(secret, subject string, premium bool, ttl time.Duration) (string, error) {
	claims := &Claims{
		Premium: premium,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "lectiod",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Fallback chains checkers: the first affirmative answer wins, and a
// checker error defers to the next checker rather than denying outright.
type Fallback []Checker

func (f Fallback) IsPremium(ctx context.Context) (bool, error) {
	var lastErr error
	answered := false
	for _, c := range f {
		premium, err := c.IsPremium(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if premium {
			return true, nil
		}
		answered = true
	}
	if !answered && lastErr != nil {
		return false, lastErr
	}
	return false, nil
}
