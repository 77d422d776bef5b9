// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the book list HTTP endpoints.
type Handler struct {
	libraryService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{libraryService: service}
}

// Routes returns a [chi.Router] with the book endpoints.
//
// # Endpoints
//   - GET  /search_books/{genre} : Public catalog search.
//   - POST /add_book             : Adds a catalog volume to the caller's list.
//   - POST /mark_read            : Overwrites the pages-read counter.
//   - POST /add_favorite         : Sets the favorite flag.
//   - POST /remove_favorite      : Clears the favorite flag.
//   - GET  /my_books             : Lists the caller's books.
func (handler *Handler) Routes(resolver middleware.SubjectResolver) chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/search_books/{genre}", handler.searchBooks)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(resolver))
		r.Post("/add_book", handler.addBook)
		r.Post("/mark_read", handler.markRead)
		r.Post("/add_favorite", handler.addFavorite)
		r.Post("/remove_favorite", handler.removeFavorite)
		r.Get("/my_books", handler.myBooks)
	})

	return router
}

// # Request Payloads

type addBookRequest struct {
	BookID string `json:"book_id"` // Provider volume ID from a search result.
}

type markReadRequest struct {
	BookID    int64 `json:"book_id"`
	PagesRead int   `json:"pages_read"`
}

type favoriteRequest struct {
	BookID int64 `json:"book_id"`
}

/*
SearchBooks queries the catalog provider for a genre.

GET /books/search_books/{genre}

Response:
  - 200: {books}: Candidate volumes (possibly empty)
  - 502: UpstreamError: Provider unreachable or malformed
*/
func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	genre := requestutil.Param(request, "genre")

	validator := &validate.Validator{}
	validator.Required(FieldGenre, genre).MaxLen(FieldGenre, genre, 100)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	volumes, err := handler.libraryService.SearchCatalog(request.Context(), genre)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"books": volumes,
	})
}

/*
AddBook adds a catalog volume to the caller's list.

POST /books/add_book

Request:
  - Body: addBookRequest (BookID: provider volume ID)

Response:
  - 201: Book: Created entry with zero progress
  - 401: Unauthorized
  - 404: NotFound: Provider has no match for the ID
  - 502: UpstreamError
*/
func (handler *Handler) addBook(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldBookID, input.BookID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.libraryService.AddBook(request.Context(), ownerID, input.BookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, book)
}

/*
MarkRead overwrites the pages-read counter of an owned book.

POST /books/mark_read

Request:
  - Body: markReadRequest (BookID, PagesRead)

Response:
  - 200: Book: Updated entry
  - 401: Unauthorized
  - 404: NotFound: Book absent or owned by another user
*/
func (handler *Handler) markRead(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input markReadRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Positive(FieldBookID, input.BookID).
		NonNegative(FieldPagesRead, input.PagesRead)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.libraryService.MarkRead(request.Context(), ownerID, input.BookID, input.PagesRead)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

/*
AddFavorite sets the favorite flag of an owned book.

POST /books/add_favorite

Response:
  - 200: Book: Updated entry
  - 401: Unauthorized
  - 404: NotFound: Book absent or owned by another user
*/
func (handler *Handler) addFavorite(writer http.ResponseWriter, request *http.Request) {
	handler.setFavorite(writer, request, true)
}

/*
RemoveFavorite clears the favorite flag of an owned book.

POST /books/remove_favorite

Response:
  - 200: Book: Updated entry
  - 401: Unauthorized
  - 404: NotFound: Book absent or owned by another user
*/
func (handler *Handler) removeFavorite(writer http.ResponseWriter, request *http.Request) {
	handler.setFavorite(writer, request, false)
}

func (handler *Handler) setFavorite(writer http.ResponseWriter, request *http.Request, value bool) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input favoriteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Positive(FieldBookID, input.BookID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.libraryService.SetFavorite(request.Context(), ownerID, input.BookID, value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

/*
MyBooks lists every book on the caller's list.

GET /books/my_books

Response:
  - 200: {books}: Owned entries in insertion order
  - 401: Unauthorized
*/
func (handler *Handler) myBooks(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.libraryService.ListBooks(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"books": books,
	})
}
