// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stockroom Contributors

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
)

// Service provides registration, login, and user lookup.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	tokens *TokenIssuer
}

// NewService creates a new Service.
func NewService(users UserRepository, hasher PasswordHasher, tokens *TokenIssuer) (*Service, error) {
	if users == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("user repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("token issuer is required")
	}
	return &Service{users: users, hasher: hasher, tokens: tokens}, nil
}

// dummyPasswordHash is used when a user doesn't exist to prevent timing
// attacks. We still run password verification to make response time
// consistent. This is NOT a real credential - it's a fake hash that will
// never match any password.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// RegisterParams carries the registration input. BillingAddress is optional.
type RegisterParams struct {
	FirstName      string
	LastName       string
	Username       string
	Password       string
	Role           string
	BillingAddress string
}

// Validate checks required registration fields.
func (p RegisterParams) Validate() error {
	if err := ValidateUsername(p.Username); err != nil {
		return err
	}
	if p.Password == "" {
		return oops.Code("AUTH_INVALID_INPUT").Errorf("password cannot be empty")
	}
	if p.FirstName == "" || p.LastName == "" {
		return oops.Code("AUTH_INVALID_INPUT").Errorf("first and last name are required")
	}
	if p.Role == "" {
		return oops.Code("AUTH_INVALID_INPUT").Errorf("role is required")
	}
	return nil
}

// Register hashes the password and stores a new user. A uniqueness violation
// surfaces as ErrDuplicateUsername; other storage failures are wrapped as
// generic registration errors. The plaintext password is never stored or
// logged.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	var billing *string
	if params.BillingAddress != "" {
		billing = &params.BillingAddress
	}

	user := &User{
		Username:       params.Username,
		PasswordHash:   hash,
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Role:           params.Role,
		BillingAddress: billing,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, oops.Code("AUTH_USERNAME_TAKEN").
				With("username", params.Username).
				Wrap(ErrDuplicateUsername)
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create user").
			Wrap(err)
	}

	return user, nil
}

// Login verifies the credentials and returns a signed bearer token whose
// subject is the username. Unknown usernames and wrong passwords yield the
// same ErrInvalidCredentials; a password verification happens either way so
// the two paths take comparable time.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, lookupErr := s.users.GetByUsername(ctx, username)

	targetHash := dummyPasswordHash
	userExists := false

	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return "", oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get user by username").
				Wrap(lookupErr)
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	valid := s.hasher.Verify(password, targetHash)
	if !userExists || !valid {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}
	return token, nil
}

// UserInfo returns the account for a username. Returns ErrNotFound if the
// user vanished after the token was issued.
func (s *Service) UserInfo(ctx context.Context, username string) (*User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, oops.Code("AUTH_USER_INFO_FAILED").
			With("operation", "get user by username").
			Wrap(err)
	}
	return user, nil
}
