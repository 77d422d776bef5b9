// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/api"
	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/library"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/config"
	"github.com/shelfmark/shelfmark/internal/platform/constants"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
	"github.com/shelfmark/shelfmark/internal/users/auth"
	"github.com/shelfmark/shelfmark/internal/users/profile"
)

// # In-Memory Fixtures
//
// The end-to-end tests run the real router, middleware chain, services, and
// token issuance; only the Postgres repositories and the catalog provider
// are replaced with in-memory equivalents.

type fakeUserRepository struct {
	nextID  int64
	users   map[int64]*auth.User
	cascade func(ownerID int64)
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[int64]*auth.User)}
}

func (r *fakeUserRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("user")
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Email != nil && *user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (r *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return apperr.Conflict("user already exists")
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperr.NotFound("user")
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

// Delete removes the user and cascades to the shared book repository,
// mirroring the ON DELETE CASCADE of the real schema.
func (r *fakeUserRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("user")
	}
	delete(r.users, id)
	if r.cascade != nil {
		r.cascade(id)
	}
	return nil
}

type fakeBookRepository struct {
	nextID int64
	books  map[int64]*library.Book
}

func newFakeBookRepository() *fakeBookRepository {
	return &fakeBookRepository{books: make(map[int64]*library.Book)}
}

func (r *fakeBookRepository) Add(_ context.Context, book *library.Book) error {
	r.nextID++
	book.ID = r.nextID
	book.CreatedAt = time.Now()
	copied := *book
	r.books[book.ID] = &copied
	return nil
}

func (r *fakeBookRepository) MarkRead(_ context.Context, ownerID, bookID int64, pagesRead int) (*library.Book, error) {
	book, ok := r.books[bookID]
	if !ok || book.OwnerID != ownerID {
		return nil, apperr.NotFound("book")
	}
	book.PagesRead = pagesRead
	copied := *book
	return &copied, nil
}

func (r *fakeBookRepository) SetFavorite(_ context.Context, ownerID, bookID int64, value bool) (*library.Book, error) {
	book, ok := r.books[bookID]
	if !ok || book.OwnerID != ownerID {
		return nil, apperr.NotFound("book")
	}
	book.IsFavorite = value
	copied := *book
	return &copied, nil
}

func (r *fakeBookRepository) ListForOwner(_ context.Context, ownerID int64) ([]*library.Book, error) {
	books := make([]*library.Book, 0)
	for id := int64(1); id <= r.nextID; id++ {
		if book, ok := r.books[id]; ok && book.OwnerID == ownerID {
			copied := *book
			books = append(books, &copied)
		}
	}
	return books, nil
}

func (r *fakeBookRepository) deleteForOwner(ownerID int64) {
	for id, book := range r.books {
		if book.OwnerID == ownerID {
			delete(r.books, id)
		}
	}
}

type fakeProvider struct {
	volumes map[string]catalog.Volume
}

func (p *fakeProvider) Search(_ context.Context, _ string) ([]catalog.Volume, error) {
	results := make([]catalog.Volume, 0, len(p.volumes))
	for _, volume := range p.volumes {
		results = append(results, volume)
	}
	return results, nil
}

func (p *fakeProvider) Lookup(_ context.Context, id string) (*catalog.Volume, error) {
	if volume, ok := p.volumes[id]; ok {
		return &volume, nil
	}
	return nil, apperr.NotFound("book")
}

// newTestServer wires the full application with in-memory storage. The book
// repository is returned alongside the server so tests can observe storage
// state that no endpoint exposes, such as the delete cascade.
func newTestServer(t *testing.T) (*httptest.Server, *fakeBookRepository) {
	t.Helper()

	log := slog.New(slog.DiscardHandler)
	cfg := &config.Config{ServerPort: "0", Environment: "development"}

	tokenService := sec.NewTokenService("e2e-test-secret", constants.AuthIssuer, constants.SessionTokenTTL)

	userRepo := newFakeUserRepository()
	bookRepo := newFakeBookRepository()
	userRepo.cascade = bookRepo.deleteForOwner

	provider := &fakeProvider{volumes: map[string]catalog.Volume{
		"vol-dune": {ID: "vol-dune", Title: "Dune", Author: "Herbert", Description: "Desert planet epic."},
	}}

	authService := auth.NewService(userRepo, tokenService)
	profileService := profile.NewService(userRepo, log)
	libraryService := library.NewService(bookRepo, provider, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, cfg, log, tokenService, authService, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Profile:   profile.NewHandler(profileService),
		Library:   library.NewHandler(libraryService),
	})

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts, bookRepo
}

// # HTTP Helpers

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	decoded := make(map[string]any)
	_ = json.NewDecoder(response.Body).Decode(&decoded)
	return response, decoded
}

func dataField(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok, "expected data envelope, got %v", envelope)
	return data
}

// # Scenarios

/*
TestEndToEnd_RegisterLoginAddAndTrack drives the primary user journey
through the real router and middleware chain: register, login, add a book
from the catalog, record read progress, and list the resulting library.
*/
func TestEndToEnd_RegisterLoginAddAndTrack(t *testing.T) {
	ts, _ := newTestServer(t)

	// Register alice.
	response, _ := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]any{
		"username": "alice",
		"password": "pw123",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	// Login returns a bearer token.
	response, envelope := doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]any{
		"username": "alice",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	session := dataField(t, envelope)
	token, _ := session["access_token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "bearer", session["token_type"])

	// The token identifies alice.
	response, envelope = doJSON(t, http.MethodGet, ts.URL+"/auth/me", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "alice", dataField(t, envelope)["username"])

	// Add Dune from the catalog.
	response, envelope = doJSON(t, http.MethodPost, ts.URL+"/books/add_book", token, map[string]any{
		"book_id": "vol-dune",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	book := dataField(t, envelope)
	assert.Equal(t, "Dune", book["title"])
	assert.Equal(t, "Herbert", book["author"])
	bookID := book["id"].(float64)

	// Record 120 pages of progress.
	response, envelope = doJSON(t, http.MethodPost, ts.URL+"/books/mark_read", token, map[string]any{
		"book_id":    bookID,
		"pages_read": 120,
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, float64(120), dataField(t, envelope)["pages_read"])

	// The library shows one item with the recorded progress and no favorite flag.
	response, envelope = doJSON(t, http.MethodGet, ts.URL+"/books/my_books", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	books, ok := dataField(t, envelope)["books"].([]any)
	require.True(t, ok)
	require.Len(t, books, 1)

	entry := books[0].(map[string]any)
	assert.Equal(t, "Dune", entry["title"])
	assert.Equal(t, float64(120), entry["pages_read"])
	assert.Equal(t, false, entry["is_favorite"])
}

/*
TestEndToEnd_OwnershipIsolation verifies that one user's book is invisible
to and unmutable by another authenticated user.
*/
func TestEndToEnd_OwnershipIsolation(t *testing.T) {
	ts, _ := newTestServer(t)

	registerAndLogin := func(username string) string {
		response, _ := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]any{
			"username": username,
			"password": "pw123",
		})
		require.Equal(t, http.StatusCreated, response.StatusCode)

		response, envelope := doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]any{
			"username": username,
			"password": "pw123",
		})
		require.Equal(t, http.StatusOK, response.StatusCode)
		token, _ := dataField(t, envelope)["access_token"].(string)
		require.NotEmpty(t, token)
		return token
	}

	aliceToken := registerAndLogin("alice")
	bobToken := registerAndLogin("bob")

	response, envelope := doJSON(t, http.MethodPost, ts.URL+"/books/add_book", aliceToken, map[string]any{
		"book_id": "vol-dune",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	bookID := dataField(t, envelope)["id"].(float64)

	// Bob cannot mutate alice's book.
	response, _ = doJSON(t, http.MethodPost, ts.URL+"/books/mark_read", bobToken, map[string]any{
		"book_id":    bookID,
		"pages_read": 10,
	})
	assert.Equal(t, http.StatusNotFound, response.StatusCode)

	// Bob's library stays empty.
	response, envelope = doJSON(t, http.MethodGet, ts.URL+"/books/my_books", bobToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	books, _ := dataField(t, envelope)["books"].([]any)
	assert.Empty(t, books)
}

/*
TestEndToEnd_DeletedAccountTokenFailsClosed verifies that a still-unexpired
token stops working the moment its account is deleted, and that the deletion
cascaded to the book list.
*/
func TestEndToEnd_DeletedAccountTokenFailsClosed(t *testing.T) {
	ts, bookRepo := newTestServer(t)

	response, _ := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]any{
		"username": "alice",
		"password": "pw123",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	response, envelope := doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]any{
		"username": "alice",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	token, _ := dataField(t, envelope)["access_token"].(string)

	response, _ = doJSON(t, http.MethodPost, ts.URL+"/books/add_book", token, map[string]any{
		"book_id": "vol-dune",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	require.Len(t, bookRepo.books, 1)

	// Delete the account. The storage cascade must take the book with it.
	response, _ = doJSON(t, http.MethodDelete, ts.URL+"/profile", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Empty(t, bookRepo.books, "deleting the account must remove every owned book")

	// The signature and expiry still verify, but subject resolution fails.
	for _, path := range []string{"/auth/me", "/books/my_books", "/profile"} {
		response, _ = doJSON(t, http.MethodGet, ts.URL+path, token, nil)
		assert.Equal(t, http.StatusUnauthorized, response.StatusCode,
			fmt.Sprintf("GET %s must fail closed after account deletion", path))
	}
}

/*
TestEndToEnd_ProfilePatchAndClearEmail verifies the three patch states over
the wire: an absent field stays untouched, a supplied value updates, and an
explicit null clears the optional email. It also pins down that renaming the
account invalidates outstanding tokens, since their subject no longer
resolves to a live row.
*/
func TestEndToEnd_ProfilePatchAndClearEmail(t *testing.T) {
	ts, _ := newTestServer(t)

	response, _ := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]any{
		"username": "alice",
		"password": "pw123",
		"email":    "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	response, envelope := doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]any{
		"username": "alice",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	token, _ := dataField(t, envelope)["access_token"].(string)
	require.NotEmpty(t, token)

	// An explicit null clears the email; the absent username key survives.
	response, envelope = doJSON(t, http.MethodPut, ts.URL+"/profile", token, map[string]any{
		"email": nil,
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	view := dataField(t, envelope)
	assert.Equal(t, "alice", view["username"])
	assert.NotContains(t, view, "email")

	// The cleared address stays cleared on a fresh read.
	response, envelope = doJSON(t, http.MethodGet, ts.URL+"/profile", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.NotContains(t, dataField(t, envelope), "email")

	// A supplied value sets the email again.
	response, envelope = doJSON(t, http.MethodPut, ts.URL+"/profile", token, map[string]any{
		"email": "new@example.com",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "new@example.com", dataField(t, envelope)["email"])

	// Renaming succeeds, but the old token's subject no longer resolves.
	response, envelope = doJSON(t, http.MethodPut, ts.URL+"/profile", token, map[string]any{
		"username": "alice2",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	view = dataField(t, envelope)
	assert.Equal(t, "alice2", view["username"])
	assert.Equal(t, "new@example.com", view["email"])

	response, _ = doJSON(t, http.MethodGet, ts.URL+"/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	// Logging in under the new name restores access to the same account.
	response, envelope = doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]any{
		"username": "alice2",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	newToken, _ := dataField(t, envelope)["access_token"].(string)

	response, envelope = doJSON(t, http.MethodGet, ts.URL+"/profile", newToken, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "new@example.com", dataField(t, envelope)["email"])
}

/*
TestEndToEnd_UnauthenticatedAccess verifies that protected routes reject
missing tokens while the public search stays open.
*/
func TestEndToEnd_UnauthenticatedAccess(t *testing.T) {
	ts, _ := newTestServer(t)

	response, _ := doJSON(t, http.MethodGet, ts.URL+"/books/my_books", "", nil)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	response, envelope := doJSON(t, http.MethodGet, ts.URL+"/books/search_books/fantasy", "", nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	books, ok := dataField(t, envelope)["books"].([]any)
	require.True(t, ok)
	assert.Len(t, books, 1)
}
