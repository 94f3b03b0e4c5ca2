// Package kiosk provides the command that starts the student terminal.
package kiosk

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/cmd/application"
	"github.com/agentstation/lessonmap/internal/kiosk"
	"github.com/agentstation/lessonmap/pkg/devices"
	"github.com/agentstation/lessonmap/pkg/session"
)

// NewCommand creates the kiosk command. interval is the configured device
// poll interval.
func NewCommand(app application.Application, interval time.Duration) *cobra.Command {
	var (
		unlocked bool
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "kiosk",
		Short: "Start the full-screen student kiosk",
		Long: `Kiosk lets students browse the catalog and download single lessons to
their removable device. Connected devices are detected automatically.

Leaving the kiosk asks for the administrator credentials unless
--unlocked is given. Logs go to LOG_OUTPUT when it names a file and
are discarded otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lm, err := app.Lessonmap()
			if err != nil {
				return err
			}
			auth, err := app.Authenticator()
			if err != nil {
				return err
			}

			return kiosk.Run(cmd.Context(), kiosk.Config{
				Client:   lm,
				Monitor:  devices.NewMonitor(app.Devices(), devices.WithInterval(interval)),
				Auth:     auth,
				Lockdown: &session.NopLockdown{},
				Logger:   app.Logger(),
				Unlocked: unlocked,
				Watch:    watch,
			})
		},
	}

	cmd.Flags().BoolVar(&unlocked, "unlocked", false, "allow q to quit without the administrator login")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload when the catalog changes on disk")

	return cmd
}
