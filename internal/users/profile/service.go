// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package profile

import (
	"context"
	"log/slog"

	"github.com/shelfmark/shelfmark/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for a user's own account record.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the caller's own identity record.

Parameters:
  - context: context.Context
  - ownerID: int64

Returns:
  - *View: Transport-safe profile fields
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, ownerID int64) (*View, error) {
	user, err := service.accountRepository.FindByID(context, ownerID)
	if err != nil {
		return nil, err
	}
	return toView(user), nil
}

/*
UpdateProfile applies a partial set of changes to the caller's account.

Description: Fetches the existing state, overrides only the supplied fields,
and synchronizes the change to persistent storage. Uniqueness of username and
email is re-checked by the storage constraints; violations surface as Conflict.

Parameters:
  - context: context.Context
  - ownerID: int64
  - input: UpdateInput

Returns:
  - *View: The updated profile
  - error: Conflict, NotFound, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, ownerID int64, input UpdateInput) (*View, error) {

	user, err := service.accountRepository.FindByID(context, ownerID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Username.Set {
		user.Username = input.Username.Value
	}

	// A supplied null email clears the stored address.
	if input.Email.Set {
		user.Email = input.Email.Value
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.Int64("user_id", ownerID))

	return toView(user), nil
}

/*
DeleteProfile permanently removes the caller's account.

Description: Hard delete. The storage cascade removes every catalog item the
account owns in the same transaction. Outstanding session tokens stay valid
until their TTL but fail subject resolution on the next request.

Parameters:
  - context: context.Context
  - ownerID: int64

Returns:
  - error: NotFound or storage failures
*/
func (service *Service) DeleteProfile(context context.Context, ownerID int64) error {
	if err := service.accountRepository.Delete(context, ownerID); err != nil {
		return err
	}

	service.logger.Warn("user_account_deleted", slog.Int64("user_id", ownerID))
	return nil
}

func toView(user *auth.User) *View {
	return &View{
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
