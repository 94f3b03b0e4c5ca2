// Package kiosk is the student terminal: a full-screen browser over the
// catalog folders that downloads single lessons to a removable device.
// Leaving the kiosk requires the administrator credentials unless it runs
// unlocked.
package kiosk

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/agentstation/lessonmap"
	"github.com/agentstation/lessonmap/pkg/devices"
	pkgerrors "github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/lessons"
	"github.com/agentstation/lessonmap/pkg/logging"
	"github.com/agentstation/lessonmap/pkg/session"
)

// Config holds the kiosk collaborators.
type Config struct {
	Client   lessonmap.Client
	Monitor  *devices.Monitor
	Auth     *session.Authenticator
	Lockdown session.Lockdown
	Logger   *zerolog.Logger

	// Unlocked lets q and ctrl+c quit without the administrator login.
	Unlocked bool

	// Watch reloads the catalog when another process rewrites it.
	Watch bool

	// ProgramOptions are passed to tea.NewProgram after the defaults.
	ProgramOptions []tea.ProgramOption
}

// Run shows the kiosk until the administrator leaves it or ctx ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Client == nil || cfg.Monitor == nil || cfg.Auth == nil {
		return pkgerrors.NewConfigError("kiosk", "client, device monitor and authenticator are required", nil)
	}
	if cfg.Lockdown == nil {
		cfg.Lockdown = &session.NopLockdown{}
	}
	if cfg.Logger != nil {
		ctx = logging.WithLogger(ctx, cfg.Logger)
	}
	logger := logging.FromContext(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := cfg.Lockdown.EnterRestrictedMode(ctx); err != nil {
		return err
	}
	defer func() {
		// ctx is canceled by now; the exit must still be logged.
		if err := cfg.Lockdown.ExitRestrictedMode(logging.WithLogger(context.Background(), logger)); err != nil {
			logger.Error().Err(err).Msg("Leaving restricted mode failed")
		}
	}()

	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, cfg.ProgramOptions...)
	p := tea.NewProgram(NewModel(ctx, cfg), opts...)

	cfg.Monitor.OnChange(func(devices.Event) {
		p.Send(devicesMsg(cfg.Monitor.Devices()))
	})
	if err := cfg.Monitor.Start(ctx); err != nil {
		return err
	}
	defer cfg.Monitor.Stop()

	cfg.Client.OnReload(func([]lessons.Lesson) {
		p.Send(reloadMsg{})
	})
	if cfg.Watch {
		go func() {
			if err := cfg.Client.Watch(ctx); err != nil {
				logger.Warn().Err(err).Msg("Catalog watch stopped")
			}
		}()
	}

	logger.Info().Msg("Kiosk started")
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	logger.Info().Msg("Kiosk stopped")
	return err
}
