package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/lessonmap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "lesson",
			ID:       "abc-123",
		}
		assert.Equal(t, "lesson with ID abc-123 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("lesson", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "title",
			Message: "must be at least 3 characters",
		}
		assert.Equal(t, "validation failed for field title: must be at least 3 characters", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty draft"}
		assert.Equal(t, "validation failed: empty draft", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestIOError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.IOError{
			Operation: "copy",
			Path:      "/tmp/lesson.mp3",
			Message:   "permission denied",
		}
		assert.Contains(t, err.Error(), "copy")
		assert.Contains(t, err.Error(), "/tmp/lesson.mp3")
		assert.True(t, pkgerrors.IsIO(err))
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/lessons_metadata.json", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapIO("delete", "/data/AudioFiles/x.mp3", errors.New("busy"))
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "delete", ioErr.Operation)
		assert.Nil(t, pkgerrors.WrapIO("delete", "x", nil))
	})
}

func TestParseError(t *testing.T) {
	err := pkgerrors.WrapParse("json", "lessons_metadata.json", errors.New("unexpected end of JSON input"))
	assert.Contains(t, err.Error(), "json")
	assert.Contains(t, err.Error(), "lessons_metadata.json")
	assert.True(t, pkgerrors.IsIO(err))
}

func TestAuthenticationError(t *testing.T) {
	err := pkgerrors.NewAuthenticationError("admin", "invalid username or password", nil)
	assert.Contains(t, err.Error(), "admin")
	assert.True(t, pkgerrors.IsUnauthorized(err))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want pkgerrors.Kind
	}{
		{"nil", nil, pkgerrors.KindNone},
		{"not found", pkgerrors.NewNotFoundError("lesson", "1"), pkgerrors.KindNotFound},
		{"validation", pkgerrors.NewValidationError("year", "", "required"), pkgerrors.KindValidation},
		{"conflict", &pkgerrors.AlreadyExistsError{Resource: "lesson", ID: "1"}, pkgerrors.KindConflict},
		{"io", pkgerrors.NewIOError("read", "x", errors.New("eof")), pkgerrors.KindIO},
		{"parse", pkgerrors.WrapParse("json", "x", errors.New("bad")), pkgerrors.KindIO},
		{"unauthorized", pkgerrors.NewAuthenticationError("", "nope", nil), pkgerrors.KindUnauthorized},
		{"context canceled", context.Canceled, pkgerrors.KindCanceled},
		{"no device", pkgerrors.WrapResource("download", "device", "", pkgerrors.ErrNoDevice), pkgerrors.KindNoDevice},
		{"plain", errors.New("boom"), pkgerrors.KindUnknown},
		{
			"resource wrapping not found",
			pkgerrors.WrapResource("delete", "lesson", "1", pkgerrors.NewNotFoundError("lesson", "1")),
			pkgerrors.KindNotFound,
		},
		{
			"fmt wrapping io",
			fmt.Errorf("saving: %w", pkgerrors.NewIOError("write", "x", nil)),
			pkgerrors.KindIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pkgerrors.KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ok", pkgerrors.KindNone.String())
	assert.Equal(t, "not-found", pkgerrors.KindNotFound.String())
	assert.Equal(t, "io", pkgerrors.KindIO.String())
	assert.Equal(t, "no-device", pkgerrors.KindNoDevice.String())
	assert.Equal(t, "unknown", pkgerrors.Kind(99).String())
}
