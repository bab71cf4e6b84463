// Package token issues and verifies the signed session tokens handed out
// at login.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Config struct {
	Secret string
	TTL    time.Duration
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Claims is the verified content of a session token.
type Claims struct {
	PrincipalID string
	Username    string
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	cfg Config
}

func NewIssuer(cfg Config) *Issuer {
	return &Issuer{cfg: cfg}
}

// Issue signs a time-bounded token for the principal.
func (i *Issuer) Issue(principalID, username string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TTL)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(i.cfg.Secret))
}

// Verify parses the token, checking signature and expiry. Only HS256 is
// accepted.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(i.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &Claims{
		PrincipalID: claims.Subject,
		Username:    claims.Username,
	}, nil
}
