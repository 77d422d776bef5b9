// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
)

// # Book Repository

// PostgresBookRepository implements the BookRepository interface using pgx.
//
// Every single-book statement filters on both the book ID and the owner
// column; a non-owned ID scans as pgx.ErrNoRows and maps to NotFound.
type PostgresBookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new PostgreSQL implementation of the BookRepository.
func NewBookRepository(pool *pgxpool.Pool) *PostgresBookRepository {
	return &PostgresBookRepository{pool: pool}
}

/*
Add persists a new book row for its owner.

Description: Inserts the book with the column defaults (pagesread 0,
isfavorite false) and hydrates the generated ID and timestamp back into the
entity.

Parameters:
  - context: context.Context
  - book: *Book

Returns:
  - error: Persistence failures
*/
func (repository *PostgresBookRepository) Add(context context.Context, book *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s, %s`,
		schema.Books.Table,
		schema.Books.OwnerID, schema.Books.Title, schema.Books.Author, schema.Books.Description,
		schema.Books.ID, schema.Books.PagesRead, schema.Books.IsFavorite, schema.Books.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		book.OwnerID,
		book.Title,
		book.Author,
		book.Description,
	).Scan(&book.ID, &book.PagesRead, &book.IsFavorite, &book.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "book")
	}

	return nil
}

/*
MarkRead overwrites the pages-read counter of an owned book.

Description: Single UPDATE filtered on both the book ID and the owner. A
missing or non-owned book affects no row and surfaces as NotFound.

Parameters:
  - context: context.Context
  - ownerID: int64
  - bookID: int64
  - pagesRead: int

Returns:
  - *Book: Updated entity
  - error: NotFound or execution errors
*/
func (repository *PostgresBookRepository) MarkRead(context context.Context, ownerID, bookID int64, pagesRead int) (*Book, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3
		WHERE %s = $1 AND %s = $2
		RETURNING %s, %s, %s, %s, %s, %s, %s, %s`,
		schema.Books.Table,
		schema.Books.PagesRead,
		schema.Books.ID, schema.Books.OwnerID,
		schema.Books.ID, schema.Books.OwnerID, schema.Books.Title, schema.Books.Author,
		schema.Books.Description, schema.Books.PagesRead, schema.Books.IsFavorite, schema.Books.CreatedAt,
	)

	return repository.scanOne(context, query, bookID, ownerID, pagesRead)
}

/*
SetFavorite sets the favorite flag of an owned book.

Parameters:
  - context: context.Context
  - ownerID: int64
  - bookID: int64
  - value: bool

Returns:
  - *Book: Updated entity
  - error: NotFound or execution errors
*/
func (repository *PostgresBookRepository) SetFavorite(context context.Context, ownerID, bookID int64, value bool) (*Book, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3
		WHERE %s = $1 AND %s = $2
		RETURNING %s, %s, %s, %s, %s, %s, %s, %s`,
		schema.Books.Table,
		schema.Books.IsFavorite,
		schema.Books.ID, schema.Books.OwnerID,
		schema.Books.ID, schema.Books.OwnerID, schema.Books.Title, schema.Books.Author,
		schema.Books.Description, schema.Books.PagesRead, schema.Books.IsFavorite, schema.Books.CreatedAt,
	)

	return repository.scanOne(context, query, bookID, ownerID, value)
}

/*
ListForOwner returns every book owned by ownerID in insertion order.

Parameters:
  - context: context.Context
  - ownerID: int64

Returns:
  - []*Book: Owned books; empty slice when none exist
  - error: Retrieval failures
*/
func (repository *PostgresBookRepository) ListForOwner(context context.Context, ownerID int64) ([]*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC`,
		schema.Books.ID, schema.Books.OwnerID, schema.Books.Title, schema.Books.Author,
		schema.Books.Description, schema.Books.PagesRead, schema.Books.IsFavorite, schema.Books.CreatedAt,
		schema.Books.Table,
		schema.Books.OwnerID,
		schema.Books.ID,
	)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "books")
	}
	defer rows.Close()

	books := make([]*Book, 0)
	for rows.Next() {
		book := &Book{}
		if err := rows.Scan(
			&book.ID,
			&book.OwnerID,
			&book.Title,
			&book.Author,
			&book.Description,
			&book.PagesRead,
			&book.IsFavorite,
			&book.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "books")
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "books")
	}

	return books, nil
}

// scanOne executes a single-row RETURNING statement and hydrates the entity.
func (repository *PostgresBookRepository) scanOne(context context.Context, query string, args ...any) (*Book, error) {
	book := &Book{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&book.ID,
		&book.OwnerID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.PagesRead,
		&book.IsFavorite,
		&book.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "book")
	}

	return book, nil
}
