// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/middleware"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/internal/users/auth"
	"github.com/shelfmark/shelfmark/pkg/patch"
)

// # Definitions & Constructors

// Handler implements profile-related HTTP endpoints.
type Handler struct {
	profileService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{profileService: service}
}

// Routes returns a [chi.Router] with the profile endpoints, all of which
// require a live authenticated account.
//
// # Endpoints
//   - GET    / : Returns the caller's profile.
//   - PUT    / : Partially updates username and/or email.
//   - DELETE / : Deletes the account and all owned catalog items.
func (handler *Handler) Routes(resolver middleware.SubjectResolver) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireUser(resolver))

	router.Get("/", handler.getProfile)
	router.Put("/", handler.updateProfile)
	router.Delete("/", handler.deleteProfile)

	return router
}

// # Request Payloads

// updateProfileRequest distinguishes absent keys from explicit nulls: an
// absent field is left unchanged, while "email": null clears the address.
type updateProfileRequest struct {
	Username patch.Field[string]  `json:"username"`
	Email    patch.Field[*string] `json:"email"`
}

/*
GetProfile returns the authenticated caller's account record.

GET /profile

Response:
  - 200: View: username, email, created_at
  - 401: Unauthorized: Missing, invalid, or expired token
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.profileService.GetProfile(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
UpdateProfile applies a partial update to the caller's account.

PUT /profile

Description: Only the fields present in the body are changed. Absent fields
are left untouched; an explicit "email": null clears the stored address.

Request:
  - Body: updateProfileRequest (optional Username, optional Email)

Response:
  - 200: View: Updated profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: Unauthorized
  - 409: Conflict: New username or email already taken
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Username.Set {
		// Username is NOT NULL in storage, so a supplied null fails Required.
		validator.Required(auth.FieldUsername, input.Username.Value).
			MinLen(auth.FieldUsername, input.Username.Value, 3).
			MaxLen(auth.FieldUsername, input.Username.Value, 50)
	}
	if input.Email.Set && input.Email.Value != nil {
		// A null email is a clear request and skips format validation.
		validator.Email(auth.FieldEmail, *input.Email.Value)
	}

	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	view, err := handler.profileService.UpdateProfile(request.Context(), ownerID, UpdateInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
DeleteProfile permanently removes the caller's account.

DELETE /profile

Response:
  - 200: {message}: Confirmation
  - 401: Unauthorized
*/
func (handler *Handler) deleteProfile(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.profileService.DeleteProfile(request.Context(), ownerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		auth.FieldMessage: "Account deleted",
	})
}
