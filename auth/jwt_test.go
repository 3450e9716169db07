package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensIssueAndParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tokens := NewTokens("test-secret", "todomarket:auth", "todomarket", time.Hour)

		token, err := tokens.Issue("lebron", "lebron@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		username, err := tokens.Parse(token)
		assert.NoError(t, err)
		assert.Equal(t, "lebron", username)
	})

	t.Run("expired token is invalid", func(t *testing.T) {
		tokens := NewTokens("test-secret", "todomarket:auth", "todomarket", -time.Hour)

		token, err := tokens.Issue("lebron", "lebron@example.com")
		require.NoError(t, err)

		_, err = tokens.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret is invalid", func(t *testing.T) {
		issuer := NewTokens("secret-one", "todomarket:auth", "todomarket", time.Hour)
		verifier := NewTokens("secret-two", "todomarket:auth", "todomarket", time.Hour)

		token, err := issuer.Issue("lebron", "lebron@example.com")
		require.NoError(t, err)

		_, err = verifier.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong audience is invalid", func(t *testing.T) {
		issuer := NewTokens("test-secret", "other:auth", "todomarket", time.Hour)
		verifier := NewTokens("test-secret", "todomarket:auth", "todomarket", time.Hour)

		token, err := issuer.Issue("lebron", "lebron@example.com")
		require.NoError(t, err)

		_, err = verifier.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage is invalid", func(t *testing.T) {
		tokens := NewTokens("test-secret", "todomarket:auth", "todomarket", time.Hour)

		_, err := tokens.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGenerateSalt(t *testing.T) {
	salt1, err := GenerateSalt()
	require.NoError(t, err)
	salt2, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, salt1, 32)
	assert.NotEqual(t, salt1, salt2)
}

func TestGenerateVerificationCode(t *testing.T) {
	code, err := GenerateVerificationCode()
	require.NoError(t, err)
	assert.Len(t, code, 6)
}
