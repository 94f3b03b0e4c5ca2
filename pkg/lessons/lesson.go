// Package lessons defines the Lesson record, its field validation, and the
// pure read-side projections (grouping and distinct-value queries) computed
// over a flat list of lessons.
package lessons

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lesson is a single teachable unit: an audio file with an optional PDF,
// classified by subject, sub-subject and year.
type Lesson struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Subject    string    `json:"subject" yaml:"subject"`
	SubSubject string    `json:"subSubject" yaml:"sub_subject"`
	Year       string    `json:"year" yaml:"year"`
	AudioPath  string    `json:"audioPath" yaml:"audio_path"`
	PdfPath    string    `json:"pdfPath" yaml:"pdf_path"`
	CreatedAt  time.Time `json:"createdAt" yaml:"created_at"`
	AudioSize  int64     `json:"audioSize" yaml:"audio_size"`
	PdfSize    int64     `json:"pdfSize" yaml:"pdf_size"`
	HasPdf     bool      `json:"hasPdf" yaml:"has_pdf"`
}

// New creates a lesson from a draft, assigning a fresh id and creation time.
// Media paths are left empty; the store fills them when it copies the files.
func New(d Draft, now time.Time) Lesson {
	return Lesson{
		ID:         NewID(),
		Title:      strings.TrimSpace(d.Title),
		Subject:    strings.TrimSpace(d.Subject),
		SubSubject: strings.TrimSpace(d.SubSubject),
		Year:       strings.TrimSpace(d.Year),
		CreatedAt:  now,
	}
}

// NewID returns an opaque, filesystem-safe lesson identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id can be used as a managed-file stem.
func ValidID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\:*?"<>|`) && !strings.ContainsRune(id, 0)
}

// Apply copies the draft's text fields and media sources onto an existing lesson,
// producing the value handed to the store for an update. An empty PdfSource
// with ClearPdf unset keeps the stored PDF.
func (l Lesson) Apply(d Draft) Lesson {
	l.Title = strings.TrimSpace(d.Title)
	l.Subject = strings.TrimSpace(d.Subject)
	l.SubSubject = strings.TrimSpace(d.SubSubject)
	l.Year = strings.TrimSpace(d.Year)
	if d.AudioSource != "" {
		l.AudioPath = d.AudioSource
	}
	switch {
	case d.ClearPdf:
		l.PdfPath = ""
	case d.PdfSource != "":
		l.PdfPath = d.PdfSource
	}
	return l
}

// Label is the display name used for the lesson in listings.
func (l Lesson) Label() string {
	if l.Year == "" {
		return l.Title
	}
	return l.Title + " (" + l.Year + ")"
}
