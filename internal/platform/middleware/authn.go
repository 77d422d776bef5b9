// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/ctxutil"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the [sec] token
// service construction, allowing distinct keys/clocks per test.
type TokenVerifier interface {
	Verify(tokenStr string) (*sec.SessionClaims, error)
}

// SubjectResolver resolves a verified token subject to a live account identity.
//
// The token binds only a username to an expiry; it is not proof of a
// still-existing account. Resolution happens here, at a single choke point,
// so a valid token for a deleted account fails closed everywhere.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, subject string) (int64, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, verify the signature and expiry via [TokenVerifier].
//  4. Inject [*sec.SessionClaims] into the request context for downstream use.
//
// Any malformed header or failed verification is a generic auth failure —
// the response never reveals which check rejected the token.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireUser blocks unauthenticated requests and resolves the token subject
// to the owning account's numeric identity.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.SessionClaims] exists in context.
//  2. Resolve the subject (username) to a live user row via [SubjectResolver].
//  3. Inject the numeric owner ID for handlers and repositories.
//
// A token whose subject no longer matches an account (profile deleted after
// issuance) is rejected here with the same generic 401 as a missing token.
func RequireUser(resolver SubjectResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetClaims(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			ownerID, err := resolver.ResolveSubject(request.Context(), claims.Subject)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			ctx := ctxutil.WithOwnerID(request.Context(), ownerID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
