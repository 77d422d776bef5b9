// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

// PostgreSQL implementation of the auth storage contracts.
//
// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement domain-defined interfaces (e.g., [UserRepository]) using the
// [pgxpool.Pool] connection manager.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows or unique-constraint SQLSTATEs)
// are mapped to domain-friendly [apperr.AppError] types through [dberr.Wrap]
// to avoid leaking storage implementation details.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users table.

Description: Inserts the account and hydrates the generated ID and timestamps
back into the entity.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Conflict on unique violations, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s`,
		schema.Users.Table, schema.Users.Username, schema.Users.Email, schema.Users.PasswordHash,
		schema.Users.ID, schema.Users.CreatedAt, schema.Users.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.Username,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "user")
	}

	return nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Users.ID, schema.Users.Username, schema.Users.Email,
		schema.Users.PasswordHash, schema.Users.CreatedAt, schema.Users.UpdatedAt,
		schema.Users.Table, schema.Users.ID,
	)

	return repository.scanOne(context, query, id)
}

/*
FindByUsername retrieves a user record by their unique username.

Description: Standard lookup for authentication and token subject resolution.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Users.ID, schema.Users.Username, schema.Users.Email,
		schema.Users.PasswordHash, schema.Users.CreatedAt, schema.Users.UpdatedAt,
		schema.Users.Table, schema.Users.Username,
	)

	return repository.scanOne(context, query, username)
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Users.ID, schema.Users.Username, schema.Users.Email,
		schema.Users.PasswordHash, schema.Users.CreatedAt, schema.Users.UpdatedAt,
		schema.Users.Table, schema.Users.Email,
	)

	return repository.scanOne(context, query, email)
}

/*
Update persists changes to a user's mutable identity fields.

Description: Synchronizes username and email with the database, refreshing
the updatedat timestamp. Unique violations surface as Conflict.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Conflict, NotFound, or update failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1`,
		schema.Users.Table,
		schema.Users.Username, schema.Users.Email, schema.Users.UpdatedAt,
		schema.Users.ID,
	)

	user.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}

	return nil
}

/*
Delete permanently removes the account row.

Description: Hard delete. The books table declares ON DELETE CASCADE on its
owner reference, so owned catalog items disappear in the same transaction.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: NotFound or execution errors
*/
func (repository *PostgresUserRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.Users.Table, schema.Users.ID,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}

	return nil
}

// scanOne executes a single-row user query and hydrates the entity.
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}

	return user, nil
}
