// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package profile_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/users/auth"
	"github.com/shelfmark/shelfmark/internal/users/profile"
	"github.com/shelfmark/shelfmark/pkg/patch"
	"github.com/shelfmark/shelfmark/pkg/pointer"
)

// # Test Doubles

// memoryAccountRepository is an in-memory AccountRepository that mimics the
// unique constraints of the users table.
type memoryAccountRepository struct {
	users map[int64]*auth.User
}

func newMemoryAccountRepository(seed ...*auth.User) *memoryAccountRepository {
	repo := &memoryAccountRepository{users: make(map[int64]*auth.User)}
	for _, user := range seed {
		copied := *user
		repo.users[user.ID] = &copied
	}
	return repo
}

func (r *memoryAccountRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("user")
}

func (r *memoryAccountRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperr.NotFound("user")
	}
	for id, existing := range r.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return apperr.Conflict("user already exists")
		}
		if existing.Email != nil && user.Email != nil && *existing.Email == *user.Email {
			return apperr.Conflict("user already exists")
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryAccountRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("user")
	}
	delete(r.users, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func seedUser(id int64, username string, email *string) *auth.User {
	return &auth.User{
		ID:        id,
		Username:  username,
		Email:     email,
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

// # Tests

/*
TestService_GetProfile verifies the transport view mapping.
*/
func TestService_GetProfile(t *testing.T) {
	repo := newMemoryAccountRepository(seedUser(1, "alice", pointer.To("alice@example.com")))
	service := profile.NewService(repo, testLogger())

	view, err := service.GetProfile(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, "alice@example.com", pointer.Val(view.Email))
	assert.Equal(t, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), view.CreatedAt)
}

/*
TestService_UpdateProfile_PartialPatch verifies that only supplied fields
change and absent fields stay untouched.
*/
func TestService_UpdateProfile_PartialPatch(t *testing.T) {
	repo := newMemoryAccountRepository(seedUser(1, "alice", pointer.To("alice@example.com")))
	service := profile.NewService(repo, testLogger())

	// Only the username is supplied; the email must survive.
	view, err := service.UpdateProfile(context.Background(), 1, profile.UpdateInput{
		Username: patch.Of("alice2"),
	})

	require.NoError(t, err)
	assert.Equal(t, "alice2", view.Username)
	assert.Equal(t, "alice@example.com", pointer.Val(view.Email))

	// Only the email is supplied; the renamed username must survive.
	view, err = service.UpdateProfile(context.Background(), 1, profile.UpdateInput{
		Email: patch.Of(pointer.To("new@example.com")),
	})

	require.NoError(t, err)
	assert.Equal(t, "alice2", view.Username)
	assert.Equal(t, "new@example.com", pointer.Val(view.Email))
}

/*
TestService_UpdateProfile_ClearEmail verifies that an explicitly supplied nil
email clears the stored address, while an unset field leaves it alone.
*/
func TestService_UpdateProfile_ClearEmail(t *testing.T) {
	repo := newMemoryAccountRepository(seedUser(1, "alice", pointer.To("alice@example.com")))
	service := profile.NewService(repo, testLogger())

	// An unset email field must not clear anything.
	view, err := service.UpdateProfile(context.Background(), 1, profile.UpdateInput{
		Username: patch.Of("alice2"),
	})
	require.NoError(t, err)
	require.NotNil(t, view.Email)

	// A present-but-nil email is an explicit clear.
	view, err = service.UpdateProfile(context.Background(), 1, profile.UpdateInput{
		Email: patch.Of[*string](nil),
	})
	require.NoError(t, err)
	assert.Nil(t, view.Email)

	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, stored.Email)
}

/*
TestService_UpdateProfile_Conflict verifies that renaming onto a taken
username surfaces as Conflict.
*/
func TestService_UpdateProfile_Conflict(t *testing.T) {
	repo := newMemoryAccountRepository(
		seedUser(1, "alice", nil),
		seedUser(2, "bob", nil),
	)
	service := profile.NewService(repo, testLogger())

	_, err := service.UpdateProfile(context.Background(), 1, profile.UpdateInput{
		Username: patch.Of("bob"),
	})

	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

/*
TestService_DeleteProfile verifies deletion and the not-found follow-up.
*/
func TestService_DeleteProfile(t *testing.T) {
	repo := newMemoryAccountRepository(seedUser(1, "alice", nil))
	service := profile.NewService(repo, testLogger())

	require.NoError(t, service.DeleteProfile(context.Background(), 1))

	_, err := service.GetProfile(context.Background(), 1)
	assert.True(t, apperr.IsNotFound(err))

	err = service.DeleteProfile(context.Background(), 1)
	assert.True(t, apperr.IsNotFound(err))
}
