// Package transfer copies managed lesson media onto a removable device.
package transfer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/agentstation/lessonmap/internal/utils/fsutil"
	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/lessons"
	"github.com/agentstation/lessonmap/pkg/logging"
	"github.com/agentstation/lessonmap/pkg/navigator"
)

// Default extensions when a managed file has none.
const (
	defaultAudioExt = ".mp3"
	defaultPdfExt   = ".pdf"
)

// Result lists what a transfer wrote.
type Result struct {
	Copied  []string `json:"copied" yaml:"copied"`
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Bytes   int64    `json:"bytes" yaml:"bytes"`
}

func (r *Result) add(path string, n int64) {
	r.Copied = append(r.Copied, path)
	r.Bytes += n
}

// DownloadLesson copies the lesson audio, and its PDF when present, into
// destDir as <subject>_<subSubject>_<title><ext>. Existing files are
// overwritten. A missing managed audio file is a not-found error.
func DownloadLesson(ctx context.Context, lesson lessons.Lesson, destDir string) (Result, error) {
	ctx = logging.WithOperation(logging.WithDevice(logging.WithLesson(ctx, lesson.ID), destDir), "download")
	logger := logging.FromContext(ctx)

	var result Result
	if err := checkDestination(destDir); err != nil {
		return result, errors.WrapResource("download", "lesson", lesson.ID, err)
	}
	if !fsutil.IsFile(lesson.AudioPath) {
		return result, errors.NewNotFoundError("audio file", lesson.ID)
	}

	audioDst := filepath.Join(destDir, DownloadName(lesson.Subject, lesson.SubSubject, lesson.Title, extOr(lesson.AudioPath, defaultAudioExt)))
	n, err := fsutil.CopyFile(ctx, lesson.AudioPath, audioDst)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to copy audio to device")
		return result, errors.WrapResource("download", "lesson", lesson.ID, err)
	}
	result.add(audioDst, n)

	if lesson.HasPdf {
		if fsutil.IsFile(lesson.PdfPath) {
			pdfDst := filepath.Join(destDir, DownloadName(lesson.Subject, lesson.SubSubject, lesson.Title, extOr(lesson.PdfPath, defaultPdfExt)))
			n, err := fsutil.CopyFile(ctx, lesson.PdfPath, pdfDst)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to copy PDF to device")
				return result, errors.WrapResource("download", "lesson", lesson.ID, err)
			}
			result.add(pdfDst, n)
		} else {
			logger.Warn().Str("path", lesson.PdfPath).Msg("Managed PDF missing, downloading audio only")
			result.Skipped = append(result.Skipped, lesson.PdfPath)
		}
	}

	logger.Info().Int("files", len(result.Copied)).Int64("bytes", result.Bytes).Msg("Lesson downloaded")
	return result, nil
}

// ExportFolder copies every lesson below folder into destDir, recreating the
// folder and its sub-folders by name: a subject folder becomes
// <dest>/<subject>/<subSubject>/<title>_<year><ext> and a sub-subject folder
// becomes <dest>/<subSubject>/<title>_<year><ext>. Lessons whose managed audio
// is missing are skipped and listed in the result.
func ExportFolder(ctx context.Context, items []navigator.Item, folder navigator.Item, destDir string) (Result, error) {
	ctx = logging.WithOperation(logging.WithDevice(ctx, destDir), "export")
	logger := logging.FromContext(ctx).With().Str("folder", folder.Path).Logger()

	var result Result
	if !folder.Folder || folder.IsBack() {
		return result, errors.NewValidationError("folder", folder.Path, "only folders can be exported")
	}
	if err := checkDestination(destDir); err != nil {
		return result, errors.WrapResource("export", "folder", folder.Path, err)
	}

	root := filepath.Join(destDir, SanitizeFileName(folder.Label))
	if err := os.MkdirAll(root, constants.DirPermissions); err != nil {
		return result, errors.WrapIO("create", root, err)
	}

	for _, leaf := range navigator.Leaves(items, folder) {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if leaf.Lesson == nil {
			continue
		}
		lesson := *leaf.Lesson

		dir := root
		if folder.Level == navigator.LevelSubject {
			dir = filepath.Join(root, SanitizeFileName(lesson.SubSubject))
		}
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return result, errors.WrapIO("create", dir, err)
		}

		if !fsutil.IsFile(lesson.AudioPath) {
			logger.Warn().Str("lesson_id", lesson.ID).Msg("Managed audio missing, skipping lesson")
			result.Skipped = append(result.Skipped, lesson.ID)
			continue
		}

		dst := filepath.Join(dir, ExportName(lesson.Title, lesson.Year, extOr(lesson.AudioPath, defaultAudioExt)))
		n, err := fsutil.CopyFile(ctx, lesson.AudioPath, dst)
		if err != nil {
			logger.Error().Err(err).Str("lesson_id", lesson.ID).Msg("Failed to export lesson")
			return result, errors.WrapResource("export", "lesson", lesson.ID, err)
		}
		result.add(dst, n)

		if lesson.HasPdf && fsutil.IsFile(lesson.PdfPath) {
			pdfDst := filepath.Join(dir, ExportName(lesson.Title, lesson.Year, extOr(lesson.PdfPath, defaultPdfExt)))
			n, err := fsutil.CopyFile(ctx, lesson.PdfPath, pdfDst)
			if err != nil {
				return result, errors.WrapResource("export", "lesson", lesson.ID, err)
			}
			result.add(pdfDst, n)
		}
	}

	logger.Info().Int("files", len(result.Copied)).Int("skipped", len(result.Skipped)).Msg("Folder exported")
	return result, nil
}

func checkDestination(dir string) error {
	if dir == "" {
		return errors.ErrNoDevice
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Join(errors.ErrNoDevice, err)
		}
		return errors.WrapIO("stat", dir, err)
	}
	if !info.IsDir() {
		return errors.NewValidationError("destination", dir, "destination is not a directory")
	}
	return nil
}
