// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// It is used to store and retrieve per-request values (session claims, resolved
// owner identity, request ID, logger). Using a private, unexported type for keys
// prevents collisions with third-party packages that might also use context for
// storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyClaims is the context key for the verified session claims ([sec.SessionClaims]).
	KeyClaims key = "claims"

	// KeyOwnerID is the context key for the resolved numeric user identity.
	//
	// Set only after the token subject was resolved against a live account row.
	KeyOwnerID key = "owner_id"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
