// Package session holds the kiosk session collaborators: OS lockdown behind a
// narrow interface, and the administrator credential check.
package session

import (
	"context"
	"sync"

	"github.com/agentstation/lessonmap/pkg/logging"
)

// Lockdown restricts the host UI while the student kiosk runs.
type Lockdown interface {
	EnterRestrictedMode(ctx context.Context) error
	ExitRestrictedMode(ctx context.Context) error
}

// Compile-time interface check.
var _ Lockdown = (*NopLockdown)(nil)

// NopLockdown records the mode and logs transitions without touching the OS.
type NopLockdown struct {
	mu         sync.Mutex
	restricted bool
}

// EnterRestrictedMode marks the session restricted.
func (l *NopLockdown) EnterRestrictedMode(ctx context.Context) error {
	l.mu.Lock()
	l.restricted = true
	l.mu.Unlock()
	logging.FromContext(ctx).Info().Msg("Entered restricted mode")
	return nil
}

// ExitRestrictedMode clears the restricted mark.
func (l *NopLockdown) ExitRestrictedMode(ctx context.Context) error {
	l.mu.Lock()
	l.restricted = false
	l.mu.Unlock()
	logging.FromContext(ctx).Info().Msg("Exited restricted mode")
	return nil
}

// Restricted reports the current mode.
func (l *NopLockdown) Restricted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.restricted
}
