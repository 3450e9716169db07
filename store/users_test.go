package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Run("creates user with profile", func(t *testing.T) {
		s := CreateTestStore()

		user, err := s.Register("lebron", "lebron@example.com", "opensesame")
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.True(t, user.IsActive)
		assert.False(t, user.EmailVerified)
		assert.NotEqual(t, "opensesame", user.Password)
		assert.NotEmpty(t, user.Salt)

		loaded, err := s.GetUserByUsername("lebron")
		require.NoError(t, err)
		assert.Equal(t, user.ID, loaded.Profile.UserID)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		s := CreateTestStore()

		_, err := s.Register("lebron", "lebron@example.com", "opensesame")
		require.NoError(t, err)

		_, err = s.Register("other", "lebron@example.com", "opensesame")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		s := CreateTestStore()

		_, err := s.Register("lebron", "lebron@example.com", "opensesame")
		require.NoError(t, err)

		_, err = s.Register("lebron", "other@example.com", "opensesame")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		s := CreateTestStore()

		_, err := s.Register("x", "x@example.com", "opensesame")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = s.Register("lebron", "not-an-email", "opensesame")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = s.Register("lebron", "lebron@example.com", "short")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAuthenticate(t *testing.T) {
	s := CreateTestStore()
	user := createTestUser(t, s, "lebron")

	t.Run("valid credentials", func(t *testing.T) {
		got, err := s.Authenticate("lebron@example.com", "opensesame")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password fails closed", func(t *testing.T) {
		_, err := s.Authenticate("lebron@example.com", "wrongpassword")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown email fails closed", func(t *testing.T) {
		_, err := s.Authenticate("nobody@example.com", "opensesame")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("email change clears verification", func(t *testing.T) {
		s := CreateTestStore()
		user := createTestUser(t, s, "lebron")

		require.NoError(t, s.MarkEmailVerified(user))
		loaded, err := s.GetUserByID(user.ID)
		require.NoError(t, err)
		require.True(t, loaded.EmailVerified)

		email := "new@example.com"
		updated, err := s.UpdateUser(loaded, UserPatch{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
		assert.False(t, updated.EmailVerified)
	})

	t.Run("password change rotates salt", func(t *testing.T) {
		s := CreateTestStore()
		user := createTestUser(t, s, "lebron")
		oldSalt := user.Salt

		password := "evenmoresecret"
		updated, err := s.UpdateUser(user, UserPatch{Password: &password})
		require.NoError(t, err)
		assert.NotEqual(t, oldSalt, updated.Salt)

		_, err = s.Authenticate("lebron@example.com", "evenmoresecret")
		assert.NoError(t, err)
		_, err = s.Authenticate("lebron@example.com", "opensesame")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("taken email conflicts", func(t *testing.T) {
		s := CreateTestStore()
		user := createTestUser(t, s, "lebron")
		createTestUser(t, s, "davis")

		email := "davis@example.com"
		_, err := s.UpdateUser(user, UserPatch{Email: &email})
		assert.ErrorIs(t, err, ErrConflict)
	})
}
