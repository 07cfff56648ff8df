// Copyright (c) 2026 Dugout. All rights reserved.

// Package sec verifies the bearer tokens issued by the hosted identity provider.
//
// # Architecture
//
// Dugout never stores credentials. Coaches sign in against the external auth
// service (Supabase-style, HS256 shared secret) and present the resulting
// access token; this package only checks signature, expiry and issuer.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrAuthDisabled is returned by a verifier constructed without a secret.
var ErrAuthDisabled = errors.New("sec: token verification is disabled")

// Roles carried in the provider's "role" claim. The anon role belongs to the
// project's public key, not to a signed-in coach.
const (
	RoleAuthenticated = "authenticated"
	RoleAnon          = "anon"
)

// Claims is the subset of the identity provider's access-token payload we use.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Actor is the value recorded as created_by/updated_by for this caller.
func (c *Claims) Actor() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Subject
}

// Anonymous reports whether the token was minted for the public project key.
func (c *Claims) Anonymous() bool {
	return c.Role == RoleAnon
}

// TokenService verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService. An empty secret yields a
// service whose Enabled method reports false.
func NewTokenService(secret, issuer string) *TokenService {
	return &TokenService{secret: []byte(secret), issuer: issuer}
}

// Enabled reports whether a signing secret was configured.
func (service *TokenService) Enabled() bool {
	return len(service.secret) > 0
}

// VerifyToken checks the signature and validity of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*Claims, error) {
	if !service.Enabled() {
		return nil, ErrAuthDisabled
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if service.issuer != "" {
		options = append(options, jwt.WithIssuer(service.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("sec: token has no subject")
	}

	return claims, nil
}

// SignToken issues an HS256 token. Used by tests and the local dev tooling.
func (service *TokenService) SignToken(subject, email string, timeToLive time.Duration) (string, error) {
	if !service.Enabled() {
		return "", ErrAuthDisabled
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(timeToLive)),
		},
		Email: email,
		Role:  RoleAuthenticated,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signed, nil
}
