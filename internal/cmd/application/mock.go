// Package application provides a mock of cmd/application.Application for
// command tests.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/lessonmap"
	"github.com/agentstation/lessonmap/pkg/devices"
	"github.com/agentstation/lessonmap/pkg/session"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
//	lm, _ := lessonmap.New(lessonmap.WithRoot(t.TempDir()))
//	mock := &application.Mock{
//	    LessonmapFunc: func() (lessonmap.Client, error) { return lm, nil },
//	}
//	cmd := list.NewCommand(mock)
type Mock struct {
	LessonmapFunc     func() (lessonmap.Client, error)
	AuthenticatorFunc func() (*session.Authenticator, error)
	DevicesFunc       func() devices.Provider
	LoggerFunc        func() *zerolog.Logger
	OutputFormatFunc  func() string
	VersionFunc       func() string
	CommitFunc        func() string
	DateFunc          func() string
	BuiltByFunc       func() string
}

// Lessonmap returns a client using the mock function or nil.
func (m *Mock) Lessonmap() (lessonmap.Client, error) {
	if m.LessonmapFunc != nil {
		return m.LessonmapFunc()
	}
	return nil, nil
}

// Authenticator returns the mock authenticator or one with the default credentials.
func (m *Mock) Authenticator() (*session.Authenticator, error) {
	if m.AuthenticatorFunc != nil {
		return m.AuthenticatorFunc()
	}
	return session.NewAuthenticator("", "")
}

// Devices returns the mock provider or one that never finds a device.
func (m *Mock) Devices() devices.Provider {
	if m.DevicesFunc != nil {
		return m.DevicesFunc()
	}
	return devices.Static{}
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
