package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/errors"
)

// clearEnv unsets the variables LoadConfig reads so the host environment
// cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LESSONMAP_ROOT", "LESSONMAP_DEVICE", "LESSONMAP_MOUNT_ROOTS", "LESSONMAP_POLL_INTERVAL",
		"LESSONMAP_ADMIN_USER", "LESSONMAP_ADMIN_PASSWORD", "LESSONMAP_ADMIN_PASSWORD_HASH",
		"LESSONMAP_CONFIG", "LESSONMAP_FORMAT", "LESSONMAP_VERBOSE",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultDataFolder, config.Root)
	assert.Equal(t, constants.DevicePollInterval, config.PollInterval)
	assert.Equal(t, constants.AdminUsername, config.AdminUser)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.LogLevel)
}

func TestLoadConfigEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LESSONMAP_ROOT", "/srv/lessons")
	t.Setenv("LESSONMAP_DEVICE", "/media/usb")
	t.Setenv("LESSONMAP_POLL_INTERVAL", "5s")
	t.Setenv("LESSONMAP_VERBOSE", "true")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/lessons", config.Root)
	assert.Equal(t, "/media/usb", config.Device)
	assert.Equal(t, 5*time.Second, config.PollInterval)
	assert.True(t, config.Verbose)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lessonmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`root: /data/lessons
mount_roots:
  - /mnt/a
  - /mnt/b
admin_user: librarian
admin_password: s3cret
format: yaml
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "/data/lessons", config.Root)
	assert.Equal(t, []string{"/mnt/a", "/mnt/b"}, config.MountRoots)
	assert.Equal(t, "librarian", config.AdminUser)
	assert.Equal(t, "s3cret", config.AdminPassword)
	assert.Equal(t, "yaml", config.Format)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lessonmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: /from/file\n"), 0o644))
	t.Setenv("LESSONMAP_ROOT", "/from/env")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", config.Root)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedDefaultFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".lessonmap.yaml"), []byte("root: [unclosed\n"), 0o644))

	_, err := LoadConfig("")
	var configErr *errors.ConfigError
	assert.ErrorAs(t, err, &configErr)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Root: "/from/config", Format: "yaml", LogLevel: "warn"}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("root", "", "")
	fs.String("format", "", "")
	fs.String("log-level", "", "")
	fs.Bool("verbose", false, "")
	fs.Bool("quiet", false, "")
	fs.Bool("no-color", false, "")
	require.NoError(t, fs.Parse([]string{"--root", "/from/flag", "--verbose"}))

	config.UpdateFromFlags(fs)

	assert.Equal(t, "/from/flag", config.Root)
	assert.True(t, config.Verbose)
	// Unset flags keep the configured values
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "warn", config.LogLevel)
}
