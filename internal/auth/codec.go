package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blanco81/app-task/internal/models"
)

// ErrInvalidToken covers every verification failure: malformed encoding, bad
// signature, missing subject and expiry in the past. Callers must not be able
// to tell these apart.
var ErrInvalidToken = errors.New("invalid token")

// Codec issues and verifies signed, expiring identity tokens. It is stateless;
// revocation is handled separately by the Blacklist.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewCodec builds a codec for the given HMAC algorithm name (HS256, HS384 or
// HS512, validated at config load).
func NewCodec(secret []byte, algorithm string, ttl time.Duration) *Codec {
	return &Codec{
		secret: secret,
		method: jwt.GetSigningMethod(algorithm),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue encodes subject and role with an absolute expiry of now+ttl and signs
// the result. No side effects.
func (c *Codec) Issue(subject, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)
	claims := &models.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(c.method, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature integrity and expiry and returns the decoded
// claims. Every failure mode collapses to ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expiry decodes the expiry of a token without verifying its signature. Used
// on logout to bound how long a revoked token must be remembered; a token we
// cannot parse reports a zero time.
func (c *Codec) Expiry(tokenString string) time.Time {
	claims := &models.Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
