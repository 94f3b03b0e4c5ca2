package fsutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lessonmap/pkg/errors"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "lessons_metadata.json")

	require.NoError(t, WriteFileAtomic(path, []byte("[]")))
	require.NoError(t, WriteFileAtomic(path, []byte(`[{"id":"1"}]`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are renamed away")
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lesson.mp3")
	require.NoError(t, os.WriteFile(src, []byte("audio bytes"), 0o644))

	dst := filepath.Join(dir, "device", "Talmud", "Lesson A_2024.mp3")
	n, err := CopyFile(context.Background(), src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(len("audio bytes")), n)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "audio bytes", string(data))
	assert.NoFileExists(t, dst+".partial")
}

func TestCopyFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "new.mp3")
	dst := filepath.Join(dir, "old.mp3")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("old contents"), 0o644))

	_, err := CopyFile(context.Background(), src, dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestCopyFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := CopyFile(context.Background(), filepath.Join(dir, "missing.mp3"), filepath.Join(dir, "out.mp3"))
	require.Error(t, err)
	assert.True(t, errors.IsIO(err))

	_, err = CopyFile(context.Background(), dir, filepath.Join(dir, "out.mp3"))
	require.Error(t, err)
	assert.True(t, errors.IsIO(err))

	src := filepath.Join(dir, "lesson.mp3")
	require.NoError(t, os.WriteFile(src, []byte("audio"), 0o644))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = CopyFile(ctx, src, filepath.Join(dir, "out.mp3"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "out.mp3"))
}

func TestIsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	assert.True(t, IsFile(path))
	assert.False(t, IsFile(dir))
	assert.False(t, IsFile(filepath.Join(dir, "missing")))
}
