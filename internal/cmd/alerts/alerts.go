// Package alerts provides a structured system for status notifications.
package alerts

import (
	"fmt"
	"io"
	"time"

	"github.com/agentstation/lessonmap/pkg/errors"
)

// Alert represents a status notification.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp time.Time
	Err       error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// FromError builds the user-facing alert for err. Validation, lookup and
// credential failures carry their own message; I/O failures get a generic
// message so file paths stay out of the student screen. Err keeps the
// original for logging.
func FromError(err error) *Alert {
	if err == nil {
		return nil
	}

	var message string
	switch errors.KindOf(err) {
	case errors.KindValidation:
		message = "invalid input"
		var verr *errors.ValidationError
		if errors.As(err, &verr) {
			message = verr.Message
		}
	case errors.KindNotFound:
		message = "not found"
		var nerr *errors.NotFoundError
		if errors.As(err, &nerr) {
			message = fmt.Sprintf("%s not found", nerr.Resource)
		}
	case errors.KindConflict:
		message = "already exists"
	case errors.KindUnauthorized:
		message = "invalid username or password"
	case errors.KindNoDevice:
		message = "no removable device connected"
	case errors.KindCanceled:
		return New(LevelWarning, "operation canceled")
	default:
		message = "operation failed"
	}

	a := NewError(message)
	a.Err = err
	return a
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the icon and message. The underlying error is not part of
// the text; writers decide whether to show it.
func (a *Alert) String() string {
	return fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
}

// Writer handles alert output to different formats and destinations.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc is an adapter to allow functions to be used as Writers.
type WriterFunc func(*Alert) error

// WriteAlert calls the function.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// MultiWriter creates a writer that writes to multiple writers.
func MultiWriter(writers ...Writer) Writer {
	return WriterFunc(func(alert *Alert) error {
		for _, w := range writers {
			if err := w.WriteAlert(alert); err != nil {
				return err
			}
		}
		return nil
	})
}

// DiscardWriter is a Writer that discards all alerts.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// NewWriterTo creates a Writer that writes to an io.Writer.
func NewWriterTo(w io.Writer) Writer {
	return WriterFunc(func(alert *Alert) error {
		_, err := fmt.Fprintln(w, alert.String())
		return err
	})
}
