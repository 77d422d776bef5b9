// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package profile handles a user's own identity record.

It provides functionality for users to view, partially update, and delete
their private account data, gated by an active session.

# Architecture

  - Entities: View (transport DTO); this package depends on the auth package
    for the underlying User entity.
  - Patch semantics: updates are explicit deltas with a presence flag per
    field ([patch.Field]). An absent field is left unchanged; an explicit
    JSON null clears the optional email. The two states never collapse.
*/
package profile

import (
	"context"
	"time"

	"github.com/shelfmark/shelfmark/internal/users/auth"
	"github.com/shelfmark/shelfmark/pkg/patch"
)

// # Transport Entities

// View is the safety-mapped representation of an account for transport.
// It omits the password hash and internal bookkeeping columns.
type View struct {
	Username  string    `json:"username"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateInput defines the mutable subset of account fields as a patch.
// A field with Set false was not supplied and must be left unchanged.
// Email with Set true and a nil Value clears the stored address.
type UpdateInput struct {
	Username patch.Field[string]
	Email    patch.Field[*string]
}

// # Repository Contract

// AccountRepository is the narrow persistence surface this package needs.
// The Postgres user repository in the auth package satisfies it.
type AccountRepository interface {
	FindByID(context context.Context, id int64) (*auth.User, error)
	Update(context context.Context, user *auth.User) error
	Delete(context context.Context, id int64) error
}
