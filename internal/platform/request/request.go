// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/ctxutil"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// Returns [validate.ErrInvalidJSON] if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims extracts the verified session claims from the request context.
//
// Returns nil if the request is not authenticated.
func Claims(request *http.Request) *sec.SessionClaims {
	return ctxutil.GetClaims(request.Context())
}

// RequiredOwnerID returns the resolved numeric identity of the calling user.
//
// It only succeeds when the middleware chain both verified the bearer token
// and resolved its subject against a live account row. Everything else fails
// closed with a generic auth failure.
func RequiredOwnerID(request *http.Request) (int64, error) {
	ownerID, ok := ctxutil.GetOwnerID(request.Context())
	if !ok {
		return 0, apperr.Unauthorized("Authentication required")
	}
	return ownerID, nil
}
