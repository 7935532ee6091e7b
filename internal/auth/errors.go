// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package auth

import "errors"

// Sentinel errors for the credential and token flows. Callers classify
// failures with errors.Is; flow methods wrap these with structured context.
var (
	// ErrNotFound is returned when a requested user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned when registering a username that is
	// already taken.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrInvalidCredentials is returned on any login failure. It is
	// deliberately identical for unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated is the uniform failure for bearer-token checks.
	// The gate never reveals which sub-check failed.
	ErrUnauthenticated = errors.New("unauthenticated")
)
