package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/lessonmap/internal/utils/fsutil"
	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/errors"
)

// audioDest is the managed audio path for id, keeping the source extension.
func (s *Store) audioDest(id, src string) string {
	return filepath.Join(s.audioDir, id+extension(src))
}

// pdfDest is the managed PDF path for id, keeping the source extension.
func (s *Store) pdfDest(id, src string) string {
	return filepath.Join(s.pdfDir, id+constants.PdfSuffix+extension(src))
}

// stagedSuffix marks a copy waiting for the document save.
const stagedSuffix = ".staged"

// staged is a media copy at tmp that replaces dst on commit.
type staged struct {
	tmp string
	dst string
}

// stage copies src next to dst without touching dst.
func (s *Store) stage(ctx context.Context, src, dst string) (staged, int64, error) {
	st := staged{tmp: dst + stagedSuffix, dst: dst}
	n, err := fsutil.CopyFile(ctx, src, st.tmp)
	if err != nil {
		return staged{}, 0, err
	}
	return st, n, nil
}

// commit renames a staged copy over its destination.
func (s *Store) commit(st staged) error {
	if err := os.Rename(st.tmp, st.dst); err != nil {
		return errors.WrapIO("rename", st.dst, err)
	}
	return nil
}

func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// IsManaged reports whether path lies inside the store's media directories.
func (s *Store) IsManaged(path string) bool {
	if path == "" {
		return false
	}
	clean := filepath.Clean(path)
	for _, dir := range []string{s.audioDir, s.pdfDir} {
		rel, err := filepath.Rel(dir, clean)
		if err == nil && rel != "." && filepath.IsLocal(rel) {
			return true
		}
	}
	return false
}

// remove deletes a managed file, logging instead of failing. Paths outside
// managed storage are never touched.
func (s *Store) remove(ctx context.Context, path string) {
	if path == "" {
		return
	}
	logger := s.log(ctx)
	if !s.IsManaged(path) {
		logger.Warn().Str("path", path).Msg("Refusing to delete file outside managed storage")
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to delete managed file")
		return
	}
	logger.Debug().Str("path", path).Msg("Deleted managed file")
}
