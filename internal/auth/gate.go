// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package auth

import "strings"

const bearerScheme = "Bearer"

// Gate resolves the acting user from a request's Authorization header.
// It is read-only and never touches the credential store: the token is
// self-contained, so no per-request database roundtrip is needed.
type Gate struct {
	verifier TokenVerifier
}

// NewGate creates a Gate around the given verifier.
func NewGate(verifier TokenVerifier) *Gate {
	return &Gate{verifier: verifier}
}

// Authenticate extracts the bearer token from a raw Authorization header
// value and returns the authenticated username. Every failure — missing
// header, wrong scheme, bad or expired token — collapses to
// ErrUnauthenticated so callers cannot tell which sub-check failed.
func (g *Gate) Authenticate(rawHeader string) (string, error) {
	if rawHeader == "" {
		return "", ErrUnauthenticated
	}

	scheme, token, found := strings.Cut(rawHeader, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", ErrUnauthenticated
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrUnauthenticated
	}

	subject, err := g.verifier.Verify(token)
	if err != nil {
		return "", ErrUnauthenticated
	}
	return subject, nil
}
