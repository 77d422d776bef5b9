// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package library implements the personal book list of a user.

It defines the Book entity, the ownership-scoped repository contract, and the
operations for adding books from the catalog, tracking read progress, and
flagging favorites.

# Ownership Invariant

Every book has exactly one owning user, and is only ever visible to or
mutable by that owner. Enforcement happens inside the repository queries
themselves (the owner column is part of every WHERE clause), never as a
post-fetch check, so a forged or mismatched book ID can never leak or mutate
another user's data.
*/
package library

import (
	"context"
	"time"
)

// # Domain Entities

// Book is a catalog item a user has added to their personal list.
type Book struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"-"` // Never exposed; ownership is implicit in the authenticated route.
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	PagesRead   int       `json:"pages_read"`
	IsFavorite  bool      `json:"is_favorite"`
	CreatedAt   time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldBookID    = "book_id"
	FieldPagesRead = "pages_read"
	FieldGenre     = "genre"
)

// # Repository Contract

// BookRepository defines ownership-scoped data access for books.
//
// Every read or write that targets a single book takes the owner identity
// and filters on it inside the query.
type BookRepository interface {

	/*
		Add persists a new book for the given owner. Pages-read starts at 0
		and the favorite flag starts false.

		Parameters:
		  - context: context.Context
		  - book: *Book (OwnerID, Title, Author, Description set)

		Returns:
		  - error: Persistence failures
	*/
	Add(context context.Context, book *Book) error

	/*
		MarkRead overwrites the pages-read counter of an owned book.

		Parameters:
		  - context: context.Context
		  - ownerID: int64
		  - bookID: int64
		  - pagesRead: int (replacement value, not a delta)

		Returns:
		  - *Book: Updated entity
		  - error: NotFound when the book does not exist or is not owned by ownerID
	*/
	MarkRead(context context.Context, ownerID, bookID int64, pagesRead int) (*Book, error)

	/*
		SetFavorite sets the favorite flag of an owned book. Idempotent for
		repeated calls with the same value.

		Parameters:
		  - context: context.Context
		  - ownerID: int64
		  - bookID: int64
		  - value: bool

		Returns:
		  - *Book: Updated entity
		  - error: NotFound when the book does not exist or is not owned by ownerID
	*/
	SetFavorite(context context.Context, ownerID, bookID int64, value bool) (*Book, error)

	/*
		ListForOwner returns every book owned by ownerID in insertion order.

		Parameters:
		  - context: context.Context
		  - ownerID: int64

		Returns:
		  - []*Book: Owned books; empty slice when none exist
		  - error: Retrieval failures
	*/
	ListForOwner(context context.Context, ownerID int64) ([]*Book, error)
}
