// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on unique-constraint violations, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable identity fields (username, email).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on unique-constraint violations, or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete permanently removes the account row. Owned catalog items are
		removed by the storage-level cascade.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: NotFound if the account does not exist, or persistence failures
	*/
	Delete(context context.Context, id int64) error
}
