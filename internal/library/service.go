// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library

import (
	"context"
	"log/slog"

	"github.com/shelfmark/shelfmark/internal/catalog"
)

// # Contracts & Types

// CatalogProvider is the outbound surface this package needs from the
// external catalog integration.
type CatalogProvider interface {
	// Search returns candidate volumes for a free-text keyword.
	Search(context context.Context, query string) ([]catalog.Volume, error)

	// Lookup resolves a provider volume ID, failing with NotFound on no match.
	Lookup(context context.Context, id string) (*catalog.Volume, error)
}

// Service orchestrates the personal book list use cases.
type Service struct {
	bookRepository BookRepository
	provider       CatalogProvider
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(bookRepo BookRepository, provider CatalogProvider, logger *slog.Logger) *Service {
	return &Service{
		bookRepository: bookRepo,
		provider:       provider,
		logger:         logger,
	}
}

// # Catalog Search

/*
SearchCatalog returns candidate volumes for a genre or free-text keyword.

Description: Pure pass-through to the catalog provider; requires no
authentication and touches no persistent state.

Parameters:
  - context: context.Context
  - genre: string

Returns:
  - []catalog.Volume: Unordered candidates
  - err: BadGateway on provider failures
*/
func (service *Service) SearchCatalog(context context.Context, genre string) ([]catalog.Volume, error) {
	return service.provider.Search(context, genre)
}

// # Book List Management

/*
AddBook resolves a provider volume and adds it to the owner's list.

Description: Fetches title, author, and description from the catalog
provider, then persists a new owned book with zero progress and the favorite
flag unset.

Parameters:
  - context: context.Context
  - ownerID: int64
  - catalogID: string (provider volume ID)

Returns:
  - *Book: Created entity
  - err: NotFound when the provider has no match, BadGateway, or storage failures
*/
func (service *Service) AddBook(context context.Context, ownerID int64, catalogID string) (*Book, error) {
	volume, err := service.provider.Lookup(context, catalogID)
	if err != nil {
		return nil, err
	}

	book := &Book{
		OwnerID:     ownerID,
		Title:       volume.Title,
		Author:      volume.Author,
		Description: volume.Description,
	}

	if err := service.bookRepository.Add(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_added",
		slog.Int64("user_id", ownerID),
		slog.Int64("book_id", book.ID),
	)

	return book, nil
}

/*
MarkRead overwrites the pages-read counter of an owned book.

Description: The supplied value replaces the stored counter; it is not an
increment, and decreases are accepted.

Parameters:
  - context: context.Context
  - ownerID: int64
  - bookID: int64
  - pagesRead: int

Returns:
  - *Book: Updated entity
  - err: NotFound when the book is absent or owned by someone else
*/
func (service *Service) MarkRead(context context.Context, ownerID, bookID int64, pagesRead int) (*Book, error) {
	return service.bookRepository.MarkRead(context, ownerID, bookID, pagesRead)
}

/*
SetFavorite sets or clears the favorite flag of an owned book.

Parameters:
  - context: context.Context
  - ownerID: int64
  - bookID: int64
  - value: bool

Returns:
  - *Book: Updated entity
  - err: NotFound when the book is absent or owned by someone else
*/
func (service *Service) SetFavorite(context context.Context, ownerID, bookID int64, value bool) (*Book, error) {
	return service.bookRepository.SetFavorite(context, ownerID, bookID, value)
}

/*
ListBooks returns every book on the owner's list.

Parameters:
  - context: context.Context
  - ownerID: int64

Returns:
  - []*Book: Owned books in insertion order; empty when none exist
  - err: Retrieval failures
*/
func (service *Service) ListBooks(context context.Context, ownerID int64) ([]*Book, error) {
	return service.bookRepository.ListForOwner(context, ownerID)
}
