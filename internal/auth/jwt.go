package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/dkontos/go-reservation-backend/internal/config"
)

// Token verification failures. Callers only need to distinguish "bad token"
// from infrastructure errors, so the reasons collapse into one sentinel.
var ErrInvalidToken = errors.New("invalid or expired token")

// Issuer mints signed bearer tokens for authenticated accounts.
// Tokens are HS256-signed and carry the account email as subject plus a
// unique jti, with the expiry window taken from configuration (3 hours by
// default).
type Issuer struct {
	Cfg config.JWTConfig
}

// Issue returns a signed token for subject (the account email), valid from
// now until now+TTL.
func (i Issuer) Issue(subject string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		Issuer:    i.Cfg.Issuer,
		Audience:  jwt.ClaimStrings{i.Cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.Cfg.TTL)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(i.Cfg.Secret))
}

// Verify parses and validates a bearer token string and returns its subject.
// It enforces the HMAC signing method, signature, expiry, issuer, and
// audience; any failure yields ErrInvalidToken.
func Verify(cfg config.JWTConfig, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if !claims.VerifyIssuer(cfg.Issuer, true) {
		return "", ErrInvalidToken
	}
	if !claims.VerifyAudience(cfg.Audience, true) {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
