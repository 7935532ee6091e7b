// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// DefaultTokenTTL is the token lifetime used when none is configured.
const DefaultTokenTTL = time.Hour

// Token verification failure kinds. All of them surface to clients as the
// same unauthenticated outcome; they stay distinguishable for logging and
// tests.
var (
	// ErrTokenMalformed is returned for tokens that fail to parse or whose
	// signature does not verify.
	ErrTokenMalformed = errors.New("malformed token")

	// ErrTokenExpired is returned for well-formed tokens past their expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMissingSubject is returned for well-formed tokens without a
	// subject claim.
	ErrTokenMissingSubject = errors.New("token has no subject")
)

// TokenVerifier verifies a bearer token and yields its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// TokenIssuer issues and verifies signed, time-bounded bearer tokens.
// Tokens are HS256 JWTs carrying the username in the subject claim; they are
// never persisted server-side. Verification is a pure function of the token,
// the signing secret, and the current time.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer. The secret is read from process
// configuration at startup and never rotated at runtime; an empty secret is
// a fatal configuration error.
func NewTokenIssuer(secret []byte, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, oops.Code("CONFIG_INVALID").Errorf("token signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: secret, ttl: ttl}, nil
}

// Issue signs a token whose subject is the given username, expiring after
// the configured TTL.
func (i *TokenIssuer) Issue(subject string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", oops.Code("TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Verify checks signature integrity first, then expiry, and returns the
// subject claim. Failures map to ErrTokenMalformed, ErrTokenExpired, or
// ErrTokenMissingSubject.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		// jwt.Parse validates the signature before the time-based claims,
		// so a tampered token never reports as merely expired.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}
	if !token.Valid {
		return "", ErrTokenMalformed
	}

	if claims.Subject == "" {
		return "", ErrTokenMissingSubject
	}
	return claims.Subject, nil
}

// Compile-time interface check.
var _ TokenVerifier = (*TokenIssuer)(nil)
