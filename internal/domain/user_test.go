package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("creates user with default role", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("Ada Lovelace", "ada@example.com", "correct-horse-battery")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "Ada Lovelace", user.Name)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, RoleUser, user.Role)
		assert.False(t, user.CreatedAt.IsZero())
	})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{name: "empty name", userName: "", email: "a@example.com", password: "correct-horse-battery", wantErr: ErrEmptyName},
		{name: "empty email", userName: "Ada", email: "", password: "correct-horse-battery", wantErr: ErrEmptyEmail},
		{name: "email without at", userName: "Ada", email: "ada.example.com", password: "correct-horse-battery", wantErr: ErrInvalidEmail},
		{name: "email without domain dot", userName: "Ada", email: "ada@example", password: "correct-horse-battery", wantErr: ErrInvalidEmail},
		{name: "password too short", userName: "Ada", email: "a@example.com", password: "short", wantErr: ErrPasswordTooShort},
		{name: "password too long", userName: "Ada", email: "a@example.com", password: strings.Repeat("x", 73), wantErr: ErrPasswordTooLong},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewUser(tc.userName, tc.email, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from the store has no plaintext password; the hash alone
	// must satisfy validation.
	user := &User{
		ID:             uuid.New(),
		Name:           "Ada",
		Email:          "ada@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		Role:           RoleAdmin,
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}

func TestUserPrincipal(t *testing.T) {
	t.Parallel()

	user, err := NewUser("Ada", "ada@example.com", "correct-horse-battery")
	require.NoError(t, err)

	principal := user.Principal()
	assert.Equal(t, user.ID, principal.ID)
	assert.Equal(t, user.Name, principal.Name)
	assert.Equal(t, user.Email, principal.Email)
	assert.Equal(t, user.Role, principal.Role)
}

func TestRoleValid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestPrincipalIsAdmin(t *testing.T) {
	t.Parallel()

	assert.True(t, Principal{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Principal{Role: RoleUser}.IsAdmin())
}
