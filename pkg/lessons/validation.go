package lessons

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agentstation/lessonmap/internal/utils/fsutil"
	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/errors"
)

// Mode selects which validation rules apply.
type Mode int

const (
	// ModeCreate requires an audio source.
	ModeCreate Mode = iota
	// ModeUpdate leaves the audio source optional.
	ModeUpdate
)

// Draft is the user-entered form for creating or editing a lesson.
// Sources are the original, user-selected file paths.
type Draft struct {
	Title       string
	Subject     string
	SubSubject  string
	Year        string
	AudioSource string
	PdfSource   string
	ClearPdf    bool
}

// Field names reported in validation errors.
const (
	FieldTitle      = "title"
	FieldSubject    = "subject"
	FieldSubSubject = "subSubject"
	FieldYear       = "year"
	FieldAudio      = "audio"
	FieldPdf        = "pdf"
)

// Validate checks a draft before any I/O happens and returns the first failing
// field as an *errors.ValidationError. Names may not contain the path-model
// separator, since folder paths are split on it.
func Validate(d Draft, mode Mode, now time.Time) error {
	title := strings.TrimSpace(d.Title)
	switch {
	case title == "":
		return errors.NewValidationError(FieldTitle, d.Title, "please enter a lesson title")
	case utf8.RuneCountInString(title) < constants.MinTitleLength:
		return errors.NewValidationError(FieldTitle, d.Title,
			fmt.Sprintf("lesson title must contain at least %d characters", constants.MinTitleLength))
	case strings.Contains(title, constants.PathSeparator):
		return errors.NewValidationError(FieldTitle, d.Title, "lesson title may not contain '/'")
	}

	subject := strings.TrimSpace(d.Subject)
	switch {
	case subject == "":
		return errors.NewValidationError(FieldSubject, d.Subject, "please select a subject")
	case strings.Contains(subject, constants.PathSeparator):
		return errors.NewValidationError(FieldSubject, d.Subject, "subject may not contain '/'")
	}

	subSubject := strings.TrimSpace(d.SubSubject)
	switch {
	case subSubject == "":
		return errors.NewValidationError(FieldSubSubject, d.SubSubject, "please select or enter a sub-subject")
	case strings.Contains(subSubject, constants.PathSeparator):
		return errors.NewValidationError(FieldSubSubject, d.SubSubject, "sub-subject may not contain '/'")
	}

	year := strings.TrimSpace(d.Year)
	if year == "" {
		return errors.NewValidationError(FieldYear, d.Year, "please select a year")
	}
	if !slices.Contains(YearChoices(now), year) {
		return errors.NewValidationError(FieldYear, d.Year,
			fmt.Sprintf("year must be one of %s", strings.Join(YearChoices(now), ", ")))
	}

	if mode == ModeCreate && d.AudioSource == "" {
		return errors.NewValidationError(FieldAudio, d.AudioSource, "please select an audio file")
	}
	if d.AudioSource != "" && !fsutil.IsFile(d.AudioSource) {
		return errors.NewValidationError(FieldAudio, d.AudioSource,
			"the selected audio file was not found, please choose another file")
	}

	if d.PdfSource != "" && !d.ClearPdf && !fsutil.IsFile(d.PdfSource) {
		return errors.NewValidationError(FieldPdf, d.PdfSource,
			"the selected PDF file was not found, please choose another file")
	}

	return nil
}

// Warnings returns non-blocking notices about the draft, such as very large
// media files that will take a while to copy.
func Warnings(d Draft) []string {
	var warnings []string
	if size, ok := fileSize(d.AudioSource); ok && size > constants.LargeAudioWarningBytes {
		warnings = append(warnings, fmt.Sprintf("the selected audio file is large (%.1f MB), copying may take a while", megabytes(size)))
	}
	if size, ok := fileSize(d.PdfSource); ok && size > constants.LargePdfWarningBytes {
		warnings = append(warnings, fmt.Sprintf("the selected PDF file is large (%.1f MB), copying may take a while", megabytes(size)))
	}
	return warnings
}

func fileSize(path string) (int64, bool) {
	if path == "" {
		return 0, false
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

func megabytes(n int64) float64 {
	return float64(n) / (1024 * 1024)
}
