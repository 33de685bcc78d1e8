// Package token issues and verifies the HS256 access tokens used by the API.
// The token subject is the member id.
package token

import (
	"fmt"
	"time"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "shoppingcart"

type Provider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewProvider(secret string, ttl time.Duration) *Provider {
	return &Provider{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create signs a token for subject that expires after the configured TTL.
func (p *Provider) Create(subject string) (string, error) {
	now := p.now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Subject verifies tokenString and returns its subject. Every failure
// wraps errs.ErrInvalidToken.
func (p *Provider) Subject(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errs.ErrInvalidToken
	}

	return claims.Subject, nil
}
