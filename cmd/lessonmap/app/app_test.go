package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agentstation/lessonmap/pkg/devices"
)

func TestNew(t *testing.T) {
	clearEnv(t)

	a, err := New("1.2.3", "deadbeef", "2024-05-01", "goreleaser")
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", a.Version())
	assert.Equal(t, "deadbeef", a.Commit())
	assert.Equal(t, "2024-05-01", a.Date())
	assert.Equal(t, "goreleaser", a.BuiltBy())
	assert.NotNil(t, a.Config())
	assert.NotNil(t, a.Logger())
}

func TestOutputFormat(t *testing.T) {
	a, err := New("dev", "", "", "", WithConfig(&Config{Format: "YAML"}))
	require.NoError(t, err)
	assert.Equal(t, "yaml", a.OutputFormat())
}

func TestLessonmapIsShared(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	a, err := New("dev", "", "", "", WithConfig(&Config{Root: root}))
	require.NoError(t, err)

	first, err := a.Lessonmap()
	require.NoError(t, err)
	second, err := a.Lessonmap()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, root, first.Store().Root())
	assert.NoError(t, a.Shutdown(context.Background()))
}

func TestAuthenticator(t *testing.T) {
	t.Run("default credentials", func(t *testing.T) {
		a, err := New("dev", "", "", "", WithConfig(&Config{AdminUser: "admin"}))
		require.NoError(t, err)

		auth, err := a.Authenticator()
		require.NoError(t, err)
		assert.NoError(t, auth.Authenticate("admin", "admin123"))
		assert.Error(t, auth.Authenticate("admin", "wrong"))

		again, err := a.Authenticator()
		require.NoError(t, err)
		assert.Same(t, auth, again)
	})

	t.Run("configured password", func(t *testing.T) {
		a, err := New("dev", "", "", "", WithConfig(&Config{AdminUser: "librarian", AdminPassword: "s3cret"}))
		require.NoError(t, err)

		auth, err := a.Authenticator()
		require.NoError(t, err)
		assert.NoError(t, auth.Authenticate("librarian", "s3cret"))
		assert.Error(t, auth.Authenticate("admin", "admin123"))
	})

	t.Run("hash wins over password", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("from-hash"), bcrypt.MinCost)
		require.NoError(t, err)

		a, err := New("dev", "", "", "", WithConfig(&Config{
			AdminUser:         "admin",
			AdminPassword:     "ignored",
			AdminPasswordHash: string(hash),
		}))
		require.NoError(t, err)

		auth, err := a.Authenticator()
		require.NoError(t, err)
		assert.NoError(t, auth.Authenticate("admin", "from-hash"))
		assert.Error(t, auth.Authenticate("admin", "ignored"))
	})
}

func TestDevicesProvider(t *testing.T) {
	a, err := New("dev", "", "", "", WithConfig(&Config{Device: "/media/usb"}))
	require.NoError(t, err)
	assert.Equal(t, devices.Static{Path: "/media/usb"}, a.Devices())

	a, err = New("dev", "", "", "", WithConfig(&Config{MountRoots: []string{t.TempDir()}}))
	require.NoError(t, err)
	_, ok := a.Devices().(*devices.MountScanner)
	assert.True(t, ok)
}
