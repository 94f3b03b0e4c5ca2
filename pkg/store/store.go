// Package store persists lesson records as a single JSON document and owns the
// managed copies of their audio and PDF files.
//
// Layout under the storage root:
//
//	lessons_metadata.json
//	AudioFiles/<id><ext>
//	PdfFiles/<id>_pdf<ext>
//
// Every write re-reads the document, mutates the list in memory and rewrites
// the whole document through a temp file and rename. Writers inside one
// process are serialised; nothing guards against other processes.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/lessonmap/internal/utils/fsutil"
	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/lessons"
	"github.com/agentstation/lessonmap/pkg/logging"
)

// Store is the single writer of on-disk catalog state.
type Store struct {
	mu sync.Mutex

	root         string
	metadataPath string
	audioDir     string
	pdfDir       string

	options *options
}

// New creates a store rooted at root. The root is made absolute so persisted
// media paths are absolute too. Call Initialize before the first write.
func New(root string, opts ...Option) (*Store, error) {
	if root == "" {
		root = constants.DefaultDataFolder
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapIO("resolve", root, err)
	}

	o := defaults().apply(opts...)
	return &Store{
		root:         abs,
		metadataPath: filepath.Join(abs, o.metadataFile),
		audioDir:     filepath.Join(abs, o.audioFolder),
		pdfDir:       filepath.Join(abs, o.pdfFolder),
		options:      o,
	}, nil
}

// Root returns the absolute storage root.
func (s *Store) Root() string { return s.root }

// MetadataPath returns the absolute path of the JSON document.
func (s *Store) MetadataPath() string { return s.metadataPath }

// AudioDir returns the managed audio directory.
func (s *Store) AudioDir() string { return s.audioDir }

// PdfDir returns the managed PDF directory.
func (s *Store) PdfDir() string { return s.pdfDir }

// Initialize ensures the root and its media directories exist. Idempotent.
func (s *Store) Initialize(ctx context.Context) error {
	for _, dir := range []string{s.root, s.audioDir, s.pdfDir} {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			s.log(ctx).Error().Err(err).Str("dir", dir).Msg("Failed to create storage directory")
			return errors.WrapIO("create", dir, err)
		}
	}
	s.log(ctx).Debug().Str("root", s.root).Msg("Storage initialized")
	return nil
}

// LoadAll reads every lesson. A missing document yields an empty list and no
// error. An unreadable or malformed document yields an empty list together
// with an IOError or ParseError, so callers can degrade to "no lessons" while
// still telling that apart from an empty catalog.
func (s *Store) LoadAll(ctx context.Context) ([]lessons.Lesson, error) {
	all, err := s.load()
	if err != nil {
		s.log(ctx).Error().Err(err).Str("path", s.metadataPath).Msg("Failed to load lessons")
		return []lessons.Lesson{}, err
	}
	return all, nil
}

// SaveAll replaces the document with all.
func (s *Store) SaveAll(ctx context.Context, all []lessons.Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, all)
}

func (s *Store) load() ([]lessons.Lesson, error) {
	data, err := os.ReadFile(s.metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []lessons.Lesson{}, nil
		}
		return nil, errors.WrapIO("read", s.metadataPath, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []lessons.Lesson{}, nil
	}

	var all []lessons.Lesson
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, errors.WrapParse("json", s.metadataPath, err)
	}
	if all == nil {
		all = []lessons.Lesson{}
	}
	return all, nil
}

func (s *Store) save(ctx context.Context, all []lessons.Lesson) error {
	if all == nil {
		all = []lessons.Lesson{}
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return errors.WrapParse("json", s.metadataPath, err)
	}
	data = append(data, '\n')

	if err := fsutil.WriteFileAtomic(s.metadataPath, data); err != nil {
		s.log(ctx).Error().Err(err).Str("path", s.metadataPath).Msg("Failed to save lessons")
		return err
	}

	s.log(ctx).Debug().Int("count", len(all)).Msg("Saved lessons")
	return nil
}

// AddLesson copies the media into managed storage under the lesson id and
// appends the record. The audio source is required; a PDF source that does not
// exist is skipped with a warning. On failure nothing is persisted and copied
// files are removed.
func (s *Store) AddLesson(ctx context.Context, lesson lessons.Lesson, audioSrc, pdfSrc string) (lessons.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lesson.ID == "" {
		lesson.ID = lessons.NewID()
	}
	if !lessons.ValidID(lesson.ID) {
		return lessons.Lesson{}, errors.NewValidationError("id", lesson.ID, "lesson id is not usable as a file name")
	}
	if lesson.CreatedAt.IsZero() {
		lesson.CreatedAt = s.options.now()
	}

	ctx = logging.WithOperation(logging.WithLesson(ctx, lesson.ID), "add")
	logger := s.log(ctx)

	if err := ctx.Err(); err != nil {
		return lessons.Lesson{}, err
	}

	all, err := s.load()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load lessons")
		return lessons.Lesson{}, errors.WrapResource("add", "lesson", lesson.ID, err)
	}
	if _, ok := lessons.Find(all, lesson.ID); ok {
		return lessons.Lesson{}, &errors.AlreadyExistsError{Resource: "lesson", ID: lesson.ID}
	}

	var copied []string
	rollback := func() {
		for _, path := range copied {
			s.remove(ctx, path)
		}
	}

	audioDst := s.audioDest(lesson.ID, audioSrc)
	size, err := fsutil.CopyFile(ctx, audioSrc, audioDst)
	if err != nil {
		logger.Error().Err(err).Str("source", audioSrc).Msg("Failed to copy audio")
		return lessons.Lesson{}, errors.WrapResource("add", "lesson", lesson.ID, err)
	}
	copied = append(copied, audioDst)
	lesson.AudioPath = audioDst
	lesson.AudioSize = size

	lesson.PdfPath, lesson.PdfSize, lesson.HasPdf = "", 0, false
	if pdfSrc != "" {
		if fsutil.IsFile(pdfSrc) {
			pdfDst := s.pdfDest(lesson.ID, pdfSrc)
			size, err := fsutil.CopyFile(ctx, pdfSrc, pdfDst)
			if err != nil {
				rollback()
				logger.Error().Err(err).Str("source", pdfSrc).Msg("Failed to copy PDF")
				return lessons.Lesson{}, errors.WrapResource("add", "lesson", lesson.ID, err)
			}
			copied = append(copied, pdfDst)
			lesson.PdfPath = pdfDst
			lesson.PdfSize = size
			lesson.HasPdf = true
		} else {
			logger.Warn().Str("source", pdfSrc).Msg("PDF source not found, lesson added without PDF")
		}
	}

	all = append(all, lesson)
	if err := s.save(ctx, all); err != nil {
		rollback()
		return lessons.Lesson{}, errors.WrapResource("add", "lesson", lesson.ID, err)
	}

	logger.Info().Str("title", lesson.Title).Bool("has_pdf", lesson.HasPdf).Msg("Lesson added")
	return lesson, nil
}

// UpdateLesson replaces the text fields of the stored record with those of
// updated and reconciles its media.
//
// Audio: when updated.AudioPath differs from the stored path and names an
// existing file, that file is copied in and the old managed copy is removed.
//
// PDF: a differing existing path is copied in the same way and sets HasPdf; an
// empty path while the record has a PDF removes it and clears HasPdf; anything
// else leaves the PDF untouched.
//
// Failing to delete an old managed file is logged and does not fail the update.
func (s *Store) UpdateLesson(ctx context.Context, updated lessons.Lesson) (lessons.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = logging.WithOperation(logging.WithLesson(ctx, updated.ID), "update")
	logger := s.log(ctx)

	if err := ctx.Err(); err != nil {
		return lessons.Lesson{}, err
	}

	all, err := s.load()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load lessons")
		return lessons.Lesson{}, errors.WrapResource("update", "lesson", updated.ID, err)
	}
	i := slices.IndexFunc(all, func(l lessons.Lesson) bool { return l.ID == updated.ID })
	if i < 0 {
		return lessons.Lesson{}, errors.NewNotFoundError("lesson", updated.ID)
	}

	current := all[i]
	current.Title = updated.Title
	current.Subject = updated.Subject
	current.SubSubject = updated.SubSubject
	current.Year = updated.Year

	// Replacement media is staged next to its final name and only renamed into
	// place once the document is saved, so a failed update leaves the stored
	// files as they were.
	var (
		pending []staged
		stale   []string
	)
	rollback := func() {
		for _, st := range pending {
			s.remove(ctx, st.tmp)
		}
	}

	if updated.AudioPath != "" && updated.AudioPath != current.AudioPath {
		if fsutil.IsFile(updated.AudioPath) {
			dst := s.audioDest(current.ID, updated.AudioPath)
			st, size, err := s.stage(ctx, updated.AudioPath, dst)
			if err != nil {
				logger.Error().Err(err).Str("source", updated.AudioPath).Msg("Failed to copy audio")
				return lessons.Lesson{}, errors.WrapResource("update", "lesson", current.ID, err)
			}
			pending = append(pending, st)
			if dst != current.AudioPath {
				stale = append(stale, current.AudioPath)
			}
			current.AudioPath = dst
			current.AudioSize = size
		} else {
			logger.Warn().Str("source", updated.AudioPath).Msg("Audio source not found, keeping current audio")
		}
	}

	switch {
	case updated.PdfPath != "" && updated.PdfPath != current.PdfPath:
		if !fsutil.IsFile(updated.PdfPath) {
			logger.Warn().Str("source", updated.PdfPath).Msg("PDF source not found, keeping current PDF")
			break
		}
		dst := s.pdfDest(current.ID, updated.PdfPath)
		st, size, err := s.stage(ctx, updated.PdfPath, dst)
		if err != nil {
			rollback()
			logger.Error().Err(err).Str("source", updated.PdfPath).Msg("Failed to copy PDF")
			return lessons.Lesson{}, errors.WrapResource("update", "lesson", current.ID, err)
		}
		pending = append(pending, st)
		if dst != current.PdfPath && current.HasPdf {
			stale = append(stale, current.PdfPath)
		}
		current.PdfPath = dst
		current.PdfSize = size
		current.HasPdf = true
	case updated.PdfPath == "" && current.HasPdf:
		stale = append(stale, current.PdfPath)
		current.PdfPath = ""
		current.PdfSize = 0
		current.HasPdf = false
	}

	all[i] = current
	if err := s.save(ctx, all); err != nil {
		rollback()
		return lessons.Lesson{}, errors.WrapResource("update", "lesson", current.ID, err)
	}

	var commitErr error
	for _, st := range pending {
		if err := s.commit(st); err != nil {
			logger.Error().Err(err).Str("path", st.dst).Msg("Failed to move staged file into place")
			s.remove(ctx, st.tmp)
			commitErr = err
		}
	}
	if commitErr != nil {
		return current, errors.WrapResource("update", "lesson", current.ID, commitErr)
	}

	for _, path := range stale {
		s.remove(ctx, path)
	}

	logger.Info().Str("title", current.Title).Bool("has_pdf", current.HasPdf).Msg("Lesson updated")
	return current, nil
}

// DeleteLesson removes the record and, best-effort, its managed files.
func (s *Store) DeleteLesson(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = logging.WithOperation(logging.WithLesson(ctx, id), "delete")
	logger := s.log(ctx)

	if err := ctx.Err(); err != nil {
		return err
	}

	all, err := s.load()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load lessons")
		return errors.WrapResource("delete", "lesson", id, err)
	}
	i := slices.IndexFunc(all, func(l lessons.Lesson) bool { return l.ID == id })
	if i < 0 {
		return errors.NewNotFoundError("lesson", id)
	}
	lesson := all[i]

	s.remove(ctx, lesson.AudioPath)
	if lesson.HasPdf {
		s.remove(ctx, lesson.PdfPath)
	}

	all = slices.Delete(all, i, i+1)
	if err := s.save(ctx, all); err != nil {
		return errors.WrapResource("delete", "lesson", id, err)
	}

	logger.Info().Str("title", lesson.Title).Msg("Lesson deleted")
	return nil
}

func (s *Store) log(ctx context.Context) *zerolog.Logger {
	return logging.FromContextOr(ctx, s.options.logger)
}
