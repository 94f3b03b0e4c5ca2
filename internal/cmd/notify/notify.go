// Package notify writes status alerts next to command output. Alerts go to
// stdout for table output and to stderr when stdout carries JSON or YAML.
package notify

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/lessonmap/internal/cmd/alerts"
	"github.com/agentstation/lessonmap/internal/cmd/output"
)

// Notifier sends alerts for one command invocation.
type Notifier struct {
	writer alerts.Writer
	quiet  bool
}

// New creates a Notifier for cmd. Quiet suppresses info and success alerts.
func New(cmd *cobra.Command, format string, quiet bool) *Notifier {
	var w io.Writer = cmd.OutOrStdout()
	if output.Format(format).Structured() {
		w = cmd.ErrOrStderr()
	}
	return &Notifier{
		writer: alerts.NewFormatWriter(w, output.FormatTable),
		quiet:  quiet,
	}
}

// NewWithWriter creates a Notifier over an existing alert writer.
func NewWithWriter(w alerts.Writer) *Notifier {
	return &Notifier{writer: w}
}

// Send writes alert unless it is suppressed.
func (n *Notifier) Send(alert *alerts.Alert) error {
	if alert == nil {
		return nil
	}
	if n.quiet && (alert.Level == alerts.LevelInfo || alert.Level == alerts.LevelSuccess) {
		return nil
	}
	return n.writer.WriteAlert(alert)
}

// Success reports a completed operation.
func (n *Notifier) Success(message string, details ...string) error {
	return n.Send(alerts.NewSuccess(message).WithDetails(details...))
}

// Info reports general information.
func (n *Notifier) Info(message string, details ...string) error {
	return n.Send(alerts.NewInfo(message).WithDetails(details...))
}

// Warning reports a non-fatal issue.
func (n *Notifier) Warning(message string, details ...string) error {
	return n.Send(alerts.NewWarning(message).WithDetails(details...))
}
