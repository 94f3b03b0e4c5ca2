package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/agentstation/lessonmap/internal/utils/fsutil"
	"github.com/agentstation/lessonmap/pkg/errors"
)

// Media kinds reported by Audit.
const (
	MediaAudio = "audio"
	MediaPdf   = "pdf"
)

// MissingFile is a record whose managed file is gone or lies outside managed storage.
type MissingFile struct {
	LessonID string `json:"lessonId" yaml:"lesson_id"`
	Title    string `json:"title" yaml:"title"`
	Media    string `json:"media" yaml:"media"`
	Path     string `json:"path" yaml:"path"`
	Outside  bool   `json:"outside,omitempty" yaml:"outside,omitempty"`
}

// AuditReport compares the document with managed storage. Crashes between a
// copy and a document rewrite leave one side without the other.
type AuditReport struct {
	Lessons int           `json:"lessons" yaml:"lessons"`
	Missing []MissingFile `json:"missing" yaml:"missing"`
	Orphans []string      `json:"orphans" yaml:"orphans"`
}

// Clean reports whether the audit found nothing.
func (r AuditReport) Clean() bool {
	return len(r.Missing) == 0 && len(r.Orphans) == 0
}

// Audit lists records with missing media and managed files no record references.
func (s *Store) Audit(ctx context.Context) (AuditReport, error) {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return AuditReport{}, errors.WrapResource("audit", "catalog", "", err)
	}

	report := AuditReport{Lessons: len(all), Missing: []MissingFile{}, Orphans: []string{}}
	referenced := make(map[string]struct{}, len(all)*2)

	check := func(id, title, media, path string) {
		referenced[filepath.Clean(path)] = struct{}{}
		switch {
		case !s.IsManaged(path):
			report.Missing = append(report.Missing, MissingFile{LessonID: id, Title: title, Media: media, Path: path, Outside: true})
		case !fsutil.IsFile(path):
			report.Missing = append(report.Missing, MissingFile{LessonID: id, Title: title, Media: media, Path: path})
		}
	}

	for _, l := range all {
		check(l.ID, l.Title, MediaAudio, l.AudioPath)
		if l.HasPdf || l.PdfPath != "" {
			check(l.ID, l.Title, MediaPdf, l.PdfPath)
		}
	}

	for _, dir := range []string{s.audioDir, s.pdfDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return AuditReport{}, errors.WrapIO("read", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if _, ok := referenced[path]; !ok {
				report.Orphans = append(report.Orphans, path)
			}
		}
	}
	slices.Sort(report.Orphans)

	s.log(ctx).Debug().
		Int("lessons", report.Lessons).
		Int("missing", len(report.Missing)).
		Int("orphans", len(report.Orphans)).
		Msg("Audit complete")
	return report, nil
}

// Prune deletes the orphaned files of report and returns how many were removed.
// Files referenced by the document at prune time are kept.
func (s *Store) Prune(ctx context.Context, report AuditReport) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return 0, errors.WrapResource("prune", "catalog", "", err)
	}
	referenced := make(map[string]struct{}, len(all)*2)
	for _, l := range all {
		referenced[filepath.Clean(l.AudioPath)] = struct{}{}
		if l.PdfPath != "" {
			referenced[filepath.Clean(l.PdfPath)] = struct{}{}
		}
	}

	removed := 0
	var errs []error
	for _, path := range report.Orphans {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if _, ok := referenced[filepath.Clean(path)]; ok || !s.IsManaged(path) {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, errors.WrapIO("delete", path, err))
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}
