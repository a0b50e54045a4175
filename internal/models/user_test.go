package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPasswordHashing(t *testing.T) {
	user := &User{Email: "cook@example.com", Password: "secret123"}
	require.NoError(t, user.HashPassword())

	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUserEmptyPasswordIsUnusable(t *testing.T) {
	user := &User{Email: "cook@example.com"}
	require.NoError(t, user.HashPassword())

	assert.Empty(t, user.Password)
	assert.False(t, user.CheckPassword(""))
	assert.False(t, user.CheckPassword("anything"))
}

func TestUserRole(t *testing.T) {
	assert.Equal(t, RoleUser, (&User{}).Role())
	assert.Equal(t, RoleAdmin, (&User{IsStaff: true}).Role())
}

func TestNormalizeEmail(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"Cook@EXAMPLE.com", "Cook@example.com"},
		{"  chef@Kitchen.ORG ", "chef@kitchen.org"},
		{"no-at-sign", "no-at-sign"},
		{"", ""},
	}
	for _, tt := range testCases {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.in))
		})
	}
}

func TestOAuthClientVerifyPassword(t *testing.T) {
	public := &OAuthClient{ID: "web", Public: true}
	assert.True(t, public.VerifyPassword(""))
	assert.Equal(t, "", public.GetUserID())

	confidential := &OAuthClient{ID: "svc", UserID: 7}
	assert.False(t, confidential.VerifyPassword("anything"), "client without a hash never verifies")
	assert.Equal(t, "7", confidential.GetUserID())
}
