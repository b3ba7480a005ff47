package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-service/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    42,
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  model.RoleUser,
	}
}

func TestTokenProvider_RoundTrip(t *testing.T) {
	provider := NewTokenProvider("secret", time.Hour)

	token, err := provider.Generate(testUser())
	require.NoError(t, err)

	claims, err := provider.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, string(model.RoleUser), claims.Role)
	assert.Equal(t, "alice@example.com", claims.Subject)
}

func TestTokenProvider_Expired(t *testing.T) {
	provider := NewTokenProvider("secret", -time.Minute)

	token, err := provider.Generate(testUser())
	require.NoError(t, err)

	_, err = provider.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenProvider_WrongSecret(t *testing.T) {
	issuer := NewTokenProvider("secret", time.Hour)
	verifier := NewTokenProvider("other-secret", time.Hour)

	token, err := issuer.Generate(testUser())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenProvider_Garbage(t *testing.T) {
	provider := NewTokenProvider("secret", time.Hour)

	_, err := provider.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
