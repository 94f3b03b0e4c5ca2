package lessonmap

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/store"
)

// options configures a Client.
type options struct {
	root         string
	storeOptions []store.Option
	now          func() time.Time
	logger       *zerolog.Logger
	debounce     time.Duration
}

// Option is a function that configures a Client instance
type Option func(*options)

func defaults() *options {
	return &options{
		root:     constants.DefaultDataFolder,
		now:      time.Now,
		debounce: constants.WatchDebounce,
	}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRoot configures the storage root holding the document and media folders
func WithRoot(path string) Option {
	return func(o *options) {
		if path != "" {
			o.root = path
		}
	}
}

// WithStoreOptions passes options through to the underlying store
func WithStoreOptions(opts ...store.Option) Option {
	return func(o *options) {
		o.storeOptions = append(o.storeOptions, opts...)
	}
}

// WithClock configures the time source used for validation and creation times
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger configures the logger used when a context carries none
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithWatchDebounce configures how long Watch waits for a burst of file
// events to settle before reloading
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}
