package store

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/lessonmap/pkg/constants"
)

// options configures a Store.
type options struct {
	metadataFile string
	audioFolder  string
	pdfFolder    string
	now          func() time.Time
	logger       *zerolog.Logger
}

// Option is a functional option for configuring a Store.
type Option func(*options)

func defaults() *options {
	return &options{
		metadataFile: constants.MetadataFile,
		audioFolder:  constants.AudioFolder,
		pdfFolder:    constants.PdfFolder,
		now:          time.Now,
	}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMetadataFile overrides the name of the JSON document under the root.
func WithMetadataFile(name string) Option {
	return func(o *options) {
		o.metadataFile = name
	}
}

// WithAudioFolder overrides the managed audio directory name.
func WithAudioFolder(name string) Option {
	return func(o *options) {
		o.audioFolder = name
	}
}

// WithPdfFolder overrides the managed PDF directory name.
func WithPdfFolder(name string) Option {
	return func(o *options) {
		o.pdfFolder = name
	}
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
