// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package auth implements the user identity layer.

It defines the core domain entity (User) and the logic for registration,
credential verification, and session token issuance.

# Architecture

This layer is the "Truth" of the system. The entity defined here has no external
dependencies and encapsulates all business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of the Shelfmark platform.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldMessage     = "message"
)
