// Package app provides the application context and dependency management
// for the lessonmap CLI. It centralizes configuration, logging and the
// lazily opened catalog client so commands receive their dependencies
// through the application.Application interface.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/lessonmap"
	"github.com/agentstation/lessonmap/cmd/application"
	"github.com/agentstation/lessonmap/internal/cmd/output"
	"github.com/agentstation/lessonmap/pkg/devices"
	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/session"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the lessonmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	flags  *rootFlags
	logger *zerolog.Logger

	// Command output, the process streams when nil
	stdout io.Writer
	stderr io.Writer

	// Lazily created, shared by every command of the process
	mu     sync.RWMutex
	client lessonmap.Client
	auth   *session.Authenticator
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		flags:   &rootFlags{},
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the requested output format, detecting one from the
// terminal when none was configured.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Lessonmap returns the catalog client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Lessonmap() (lessonmap.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := lessonmap.New(
		lessonmap.WithRoot(a.config.Root),
		lessonmap.WithLogger(a.logger),
	)
	if err != nil {
		return nil, errors.WrapResource("open", "catalog", a.config.Root, err)
	}

	a.client = c
	return c, nil
}

// Authenticator returns the administrator credential check. A configured
// bcrypt hash takes precedence over a configured plain password.
func (a *App) Authenticator() (*session.Authenticator, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.auth != nil {
		return a.auth, nil
	}

	var (
		auth *session.Authenticator
		err  error
	)
	if a.config.AdminPasswordHash != "" {
		auth, err = session.NewAuthenticatorFromHash(a.config.AdminUser, []byte(a.config.AdminPasswordHash))
	} else {
		auth, err = session.NewAuthenticator(a.config.AdminUser, a.config.AdminPassword)
	}
	if err != nil {
		return nil, err
	}

	a.auth = auth
	return auth, nil
}

// Devices returns the removable-device provider.
func (a *App) Devices() devices.Provider {
	if a.config.Device != "" {
		return devices.Static{Path: a.config.Device}
	}
	return devices.NewMountScanner(a.config.MountRoots...)
}

// Shutdown performs graceful shutdown of the application. Background work
// (device monitor, catalog watcher) is owned by the command that started it
// and ends with the command context, so there is only a final log line.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	opened := a.client != nil
	a.mu.RUnlock()

	if opened {
		a.logger.Debug().Str("root", a.config.Root).Msg("Catalog closed")
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithOutput redirects command output (useful for testing).
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) error {
		a.stdout = stdout
		a.stderr = stderr
		return nil
	}
}

// WithLessonmap sets a custom catalog client (useful for testing).
func WithLessonmap(c lessonmap.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
