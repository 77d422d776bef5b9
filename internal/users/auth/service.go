// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package auth implements the core identity and access management system.

It handles everything from user registration and secure password hashing to
stateless session tokens signed with HMAC.

Architecture:

  - Service: Orchestrates business logic (Register, Login, subject resolution).
  - Repository: Abstracted interface over Postgres for user accounts.
  - Security: Leverages bcrypt hashing and HMAC-signed JWTs.

Sessions are deliberately stateless: a token stays valid for its full TTL even
if the account is deleted afterwards. Authenticated routes therefore resolve
the token subject back to a live account row on every request.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing signed session tokens.
type TokenProvider interface {
	// Issue creates a signed JWT string binding the subject to an expiry instant.
	//
	// # Parameters
	//   - subject: The username of the authenticated account.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	Issue(subject string) (string, error)

	// TTL reports the fixed lifetime applied to issued tokens.
	TTL() time.Duration
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Password string
	Email    *string // Optional. When present it must be unique across accounts.
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrollment of a new member, handling password hashing and
uniqueness enforcement for username and optional email.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Verify email uniqueness when an email was supplied.
	if input.Email != nil {
		_, err = service.userRepository.FindByEmail(context, *input.Email)
		if err == nil {
			return nil, apperr.Conflict("Email is already registered")
		}
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	// Persist the user. The unique constraints in storage remain the final
	// arbiter; a concurrent registration still surfaces as Conflict here.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// Session represents a successfully issued bearer session.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // Seconds until the token expires.
	User        *User
}

/*
Login validates user credentials and issues a session token.

Description: Verifies identity, performs constant-time password comparison,
and issues a signed short-lived bearer token.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	user, err := service.userRepository.FindByUsername(context, input.Username)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks.
	// Identical message as above so the failing factor stays indistinguishable.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// Generate the short-lived access token bound to the username
	accessToken, err := service.tokenProvider.Issue(user.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(service.tokenProvider.TTL().Seconds()),
		User:        user,
	}, nil
}

// # Subject Resolution

/*
ResolveSubject maps a verified token subject onto a live account ID.

Description: Called by the authentication middleware on every protected
request. A token is not proof of a still-existing account; accounts deleted
after issuance must fail resolution even while their token is unexpired.

Parameters:
  - context: context.Context
  - subject: string (username claim from a verified token)

Returns:
  - int64: Account ID of the live owner
  - err: NotFound when the account no longer exists
*/
func (service *Service) ResolveSubject(context context.Context, subject string) (int64, error) {
	user, err := service.userRepository.FindByUsername(context, subject)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

/*
CurrentUser returns the account record for an authenticated owner.

Parameters:
  - context: context.Context
  - ownerID: int64

Returns:
  - *User: Hydrated entity
  - err: NotFound or storage failures
*/
func (service *Service) CurrentUser(context context.Context, ownerID int64) (*User, error) {
	return service.userRepository.FindByID(context, ownerID)
}
