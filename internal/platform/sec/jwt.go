// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces defined at the point of use.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the payload embedded inside a session token.
//
// The token binds a subject (username) to an expiry instant and nothing more.
// It is deliberately NOT proof of a still-existing account: callers must
// resolve the subject back to a live user row before acting on it.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed session tokens.
//
// The signing secret and the clock are injected at construction so tests can
// run with distinct keys and frozen time. There is no module-level state.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with the given secret.
//
// Rotating the secret invalidates every outstanding token immediately, which
// is the accepted fail-safe behavior for this system.
func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewTokenServiceWithClock creates a TokenService with an injected clock.
// Intended for tests that exercise expiry boundaries deterministically.
func NewTokenServiceWithClock(secret, issuer string, ttl time.Duration, now func() time.Time) *TokenService {
	service := NewTokenService(secret, issuer, ttl)
	service.now = now
	return service
}

// TTL returns the fixed token lifetime.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue creates a signed session token for the given subject.
func (service *TokenService) Issue(subject string) (string, error) {
	currentTime := service.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a session token string.
//
// A malformed token, a bad signature, and an expired token all produce an
// error; the caller maps every variant to the same generic auth failure.
func (service *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return service.secret, nil
		},
		jwt.WithTimeFunc(service.now),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("sec: token missing subject")
	}

	return claims, nil
}
