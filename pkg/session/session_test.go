package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/session"
)

func TestDefaultAuthenticator(t *testing.T) {
	auth, err := session.NewAuthenticator("", "")
	require.NoError(t, err)
	assert.Equal(t, "admin", auth.User())

	assert.NoError(t, auth.Authenticate("admin", "admin123"))

	for _, tc := range []struct{ user, password string }{
		{"admin", "wrong"},
		{"root", "admin123"},
		{"", ""},
		{"Admin", "admin123"},
	} {
		err := auth.Authenticate(tc.user, tc.password)
		require.Error(t, err, tc)
		assert.True(t, errors.IsUnauthorized(err))
		assert.Equal(t, errors.KindUnauthorized, errors.KindOf(err))
		assert.NotContains(t, err.Error(), "admin123")
	}
}

func TestCustomCredentials(t *testing.T) {
	auth, err := session.NewAuthenticator("librarian", "s3cret!")
	require.NoError(t, err)
	assert.NoError(t, auth.Authenticate("librarian", "s3cret!"))
	assert.Error(t, auth.Authenticate("admin", "admin123"))
}

func TestAuthenticatorFromHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	auth, err := session.NewAuthenticatorFromHash("", hash)
	require.NoError(t, err)
	assert.NoError(t, auth.Authenticate("admin", "pw"))

	_, err = session.NewAuthenticatorFromHash("admin", []byte("not-a-hash"))
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestNopLockdown(t *testing.T) {
	var lockdown session.NopLockdown
	ctx := context.Background()

	assert.False(t, lockdown.Restricted())
	require.NoError(t, lockdown.EnterRestrictedMode(ctx))
	assert.True(t, lockdown.Restricted())
	require.NoError(t, lockdown.ExitRestrictedMode(ctx))
	assert.False(t, lockdown.Restricted())
}
