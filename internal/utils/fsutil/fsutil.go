// Package fsutil holds the file operations shared by the store and transfer
// packages: context-aware copies and atomic writes.
package fsutil

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/errors"
)

// WriteFileAtomic writes data next to path and renames it into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapIO("sync", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		cleanup()
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// CopyFile copies src to dst through a sibling partial file and returns the
// number of bytes written. dst is replaced only once the copy is complete.
func CopyFile(ctx context.Context, src, dst string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, errors.WrapIO("open", src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return 0, errors.WrapIO("stat", src, err)
	}
	if !info.Mode().IsRegular() {
		return 0, errors.NewIOError("copy", src, errors.New("not a regular file"))
	}

	if err := os.MkdirAll(filepath.Dir(dst), constants.DirPermissions); err != nil {
		return 0, errors.WrapIO("create", filepath.Dir(dst), err)
	}

	partial := dst + ".partial"
	out, err := os.OpenFile(partial, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return 0, errors.WrapIO("create", partial, err)
	}

	n, err := io.Copy(out, &contextReader{ctx: ctx, r: in})
	if err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(partial)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, errors.WrapIO("copy", src, err)
	}

	if err := os.Rename(partial, dst); err != nil {
		_ = os.Remove(partial)
		return 0, errors.WrapIO("rename", dst, err)
	}
	return n, nil
}

// contextReader stops a long copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// IsFile reports whether path names an existing regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
