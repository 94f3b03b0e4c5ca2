// Package application provides the application interface for lessonmap commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested against internal/cmd/application.Mock.
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            lm, err := app.Lessonmap()
//	            if err != nil {
//	                return err
//	            }
//	            all, err := lm.Lessons(cmd.Context())
//	            // ... render all
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/lessonmap"
	"github.com/agentstation/lessonmap/pkg/devices"
	"github.com/agentstation/lessonmap/pkg/session"
)

// Application provides what commands need from the running process.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Lessonmap returns the process-wide catalog client, opening it on first use.
	Lessonmap() (lessonmap.Client, error)

	// Authenticator returns the administrator credential check.
	Authenticator() (*session.Authenticator, error)

	// Devices returns the removable-device provider. A configured device
	// path pins it to that directory.
	Devices() devices.Provider

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
