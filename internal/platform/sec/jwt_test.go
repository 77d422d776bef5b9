// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/platform/sec"
)

const (
	testSecret = "unit-test-signing-secret"
	testIssuer = "shelfmark.app"
	testTTL    = 30 * time.Minute
)

// frozenClock returns a clock function pinned to the given instant.
func frozenClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

/*
TestTokenService_IssueAndVerify checks the round trip of a freshly issued
token.
*/
func TestTokenService_IssueAndVerify(t *testing.T) {
	service := sec.NewTokenService(testSecret, testIssuer, testTTL)

	tokenString, err := service.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := service.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
}

/*
TestTokenService_ExpiryBoundary verifies validity at TTL−1s and failure at
TTL+1s using injected clocks, with the same signing secret on both sides.
*/
func TestTokenService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	issuer := sec.NewTokenServiceWithClock(testSecret, testIssuer, testTTL, frozenClock(issuedAt))
	tokenString, err := issuer.Issue("alice")
	require.NoError(t, err)

	// One second before expiry the token must still verify.
	beforeExpiry := sec.NewTokenServiceWithClock(testSecret, testIssuer, testTTL,
		frozenClock(issuedAt.Add(testTTL-time.Second)))
	claims, err := beforeExpiry.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	// One second after expiry it must fail.
	afterExpiry := sec.NewTokenServiceWithClock(testSecret, testIssuer, testTTL,
		frozenClock(issuedAt.Add(testTTL+time.Second)))
	_, err = afterExpiry.Verify(tokenString)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsForeignKey verifies that a token signed with a
different secret never verifies.
*/
func TestTokenService_RejectsForeignKey(t *testing.T) {
	issuer := sec.NewTokenService("other-secret", testIssuer, testTTL)
	tokenString, err := issuer.Issue("alice")
	require.NoError(t, err)

	verifier := sec.NewTokenService(testSecret, testIssuer, testTTL)
	_, err = verifier.Verify(tokenString)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsForeignIssuer verifies the issuer claim check.
*/
func TestTokenService_RejectsForeignIssuer(t *testing.T) {
	issuer := sec.NewTokenService(testSecret, "someone-else.example", testTTL)
	tokenString, err := issuer.Issue("alice")
	require.NoError(t, err)

	verifier := sec.NewTokenService(testSecret, testIssuer, testTTL)
	_, err = verifier.Verify(tokenString)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsMalformed verifies that garbage input fails cleanly.
*/
func TestTokenService_RejectsMalformed(t *testing.T) {
	service := sec.NewTokenService(testSecret, testIssuer, testTTL)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not_a_jwt", "this-is-not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}
