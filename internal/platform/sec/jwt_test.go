// Copyright (c) 2026 Dugout. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/platform/sec"
)

func TestTokenService_RoundTrip(t *testing.T) {
	service := sec.NewTokenService("super-secret", "https://auth.dugout.test")

	token, err := service.SignToken("user-1", "coach@example.com", time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "coach@example.com", claims.Actor())
}

func TestTokenService_Rejects(t *testing.T) {
	signer := sec.NewTokenService("super-secret", "https://auth.dugout.test")

	expired, err := signer.SignToken("user-1", "", -time.Hour)
	require.NoError(t, err)

	otherIssuer, err := sec.NewTokenService("super-secret", "https://elsewhere").SignToken("user-1", "", time.Minute)
	require.NoError(t, err)

	wrongKey, err := sec.NewTokenService("another-secret", "https://auth.dugout.test").SignToken("user-1", "", time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"other_issuer": otherIssuer,
		"wrong_key":    wrongKey,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := signer.VerifyToken(token)
			assert.Error(t, err)
		})
	}
}

func TestTokenService_Disabled(t *testing.T) {
	service := sec.NewTokenService("", "")
	assert.False(t, service.Enabled())

	_, err := service.VerifyToken("anything")
	assert.ErrorIs(t, err, sec.ErrAuthDisabled)
}
