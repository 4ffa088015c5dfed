package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	clock := NewStubClock()
	issuer := NewTokenIssuer("secret", time.Hour, clock)

	token, err := issuer.Generate(7)
	require.NoError(t, err)

	userID, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	other := NewTokenIssuer("other", time.Hour, clock)
	_, err = other.Validate(token)
	assert.Error(t, err, "signature from another secret")

	clock.Advance(2 * time.Hour)
	_, err = issuer.Validate(token)
	assert.Error(t, err, "expired")
}
