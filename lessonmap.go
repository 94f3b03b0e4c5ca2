// Package lessonmap provides the process-wide handle on a lesson catalog.
// Every surface of the application, the admin CLI and the student kiosk,
// shares one Client instead of opening the store independently.
//
// The Client wraps the store with:
//   - validation of user drafts before any I/O
//   - event hooks for lessons added, updated and removed
//   - reload notification when another process rewrites the document
//   - device transfer of single lessons and whole folders
//
// Example usage:
//
//	lm, err := lessonmap.New(lessonmap.WithRoot("./LessonsData"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	lm.OnLessonAdded(func(l lessons.Lesson) {
//	    log.Printf("New lesson: %s", l.Title)
//	})
//
//	l, err := lm.Add(ctx, lessons.Draft{
//	    Title: "Lesson A", Subject: "Talmud", SubSubject: "Shabbat",
//	    Year: "2024", AudioSource: "/home/me/lesson.mp3",
//	})
package lessonmap

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/lessons"
	"github.com/agentstation/lessonmap/pkg/logging"
	"github.com/agentstation/lessonmap/pkg/navigator"
	"github.com/agentstation/lessonmap/pkg/store"
	"github.com/agentstation/lessonmap/pkg/transfer"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Catalog provides read access to the lessons.
type Catalog interface {
	// Lessons returns every lesson
	Lessons(ctx context.Context) ([]lessons.Lesson, error)

	// Lesson returns one lesson by id
	Lesson(ctx context.Context, id string) (lessons.Lesson, error)

	// Grouped returns the Subject, SubSubject, Lesson tree
	Grouped(ctx context.Context) ([]lessons.SubjectNode, error)

	// Subjects returns the sorted distinct subjects
	Subjects(ctx context.Context) ([]string, error)

	// SubSubjects returns the sorted distinct sub-subjects of subject
	SubSubjects(ctx context.Context, subject string) ([]string, error)

	// Items returns the navigator items built from the grouped tree
	Items(ctx context.Context) ([]navigator.Item, error)
}

// Editor changes lessons after validating the draft.
type Editor interface {
	// Add validates d, copies its media and stores a new lesson
	Add(ctx context.Context, d lessons.Draft) (lessons.Lesson, error)

	// Update validates d and applies it to the lesson with id
	Update(ctx context.Context, id string, d lessons.Draft) (lessons.Lesson, error)

	// Delete removes the lesson and its managed files
	Delete(ctx context.Context, id string) error
}

// Transfers copies lessons to a destination directory.
type Transfers interface {
	// Download copies one lesson to destDir
	Download(ctx context.Context, id, destDir string) (transfer.Result, error)

	// Export copies every lesson below the folder at path to destDir
	Export(ctx context.Context, path, destDir string) (transfer.Result, error)
}

// Maintenance inspects and repairs managed storage.
type Maintenance interface {
	// Audit compares the document with managed storage
	Audit(ctx context.Context) (store.AuditReport, error)

	// Prune deletes the orphaned files of report
	Prune(ctx context.Context, report store.AuditReport) (int, error)
}

// Client is the process-wide catalog service.
type Client interface {
	Catalog
	Editor
	Transfers
	Maintenance
	Hooks

	// Reload re-reads the document and fires hooks for external changes
	Reload(ctx context.Context) error

	// Watch reloads whenever the document changes on disk until ctx ends
	Watch(ctx context.Context) error

	// Store returns the underlying store
	Store() *store.Store
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	store   *store.Store

	// snapshot is the last lesson list this client saw. Reload diffs against
	// it so the client's own writes do not look like external changes.
	mu       sync.Mutex
	snapshot []lessons.Lesson

	hooks *hooks
}

// New creates the Client, initialising the storage root. A document that
// cannot be read is logged and treated as empty until the next Reload.
func New(opts ...Option) (Client, error) {
	o := defaults().apply(opts...)

	storeOpts := append([]store.Option{store.WithClock(o.now)}, o.storeOptions...)
	if o.logger != nil {
		storeOpts = append(storeOpts, store.WithLogger(o.logger))
	}
	st, err := store.New(o.root, storeOpts...)
	if err != nil {
		return nil, errors.WrapResource("create", "store", o.root, err)
	}

	c := &client{
		options: o,
		store:   st,
		hooks:   newHooks(),
	}

	ctx := logging.WithLogger(context.Background(), c.logger())
	if err := st.Initialize(ctx); err != nil {
		return nil, errors.WrapResource("initialize", "store", o.root, err)
	}

	all, err := st.LoadAll(ctx)
	if err != nil {
		c.logger().Warn().Err(err).Msg("Catalog unreadable, starting empty")
	}
	c.snapshot = all

	c.logger().Debug().Str("root", st.Root()).Int("lessons", len(all)).Msg("Catalog opened")
	return c, nil
}

// Store returns the underlying store.
func (c *client) Store() *store.Store { return c.store }

func (c *client) OnLessonAdded(fn LessonAddedHook)     { c.hooks.OnLessonAdded(fn) }
func (c *client) OnLessonUpdated(fn LessonUpdatedHook) { c.hooks.OnLessonUpdated(fn) }
func (c *client) OnLessonRemoved(fn LessonRemovedHook) { c.hooks.OnLessonRemoved(fn) }
func (c *client) OnReload(fn ReloadHook)               { c.hooks.OnReload(fn) }

// Lessons returns every lesson.
func (c *client) Lessons(ctx context.Context) ([]lessons.Lesson, error) {
	return c.store.LoadAll(c.context(ctx))
}

// Lesson returns one lesson by id.
func (c *client) Lesson(ctx context.Context, id string) (lessons.Lesson, error) {
	return c.store.GetByID(c.context(ctx), id)
}

// Grouped returns the Subject, SubSubject, Lesson tree.
func (c *client) Grouped(ctx context.Context) ([]lessons.SubjectNode, error) {
	return c.store.GetAllGrouped(c.context(ctx))
}

// Subjects returns the distinct subjects, or the default subjects while the
// catalog is empty.
func (c *client) Subjects(ctx context.Context) ([]string, error) {
	subjects, err := c.store.GetDistinctSubjects(c.context(ctx))
	if err == nil && len(subjects) == 0 {
		return append([]string(nil), lessons.DefaultSubjects...), nil
	}
	return subjects, err
}

// SubSubjects returns the distinct sub-subjects of subject.
func (c *client) SubSubjects(ctx context.Context, subject string) ([]string, error) {
	return c.store.GetDistinctSubSubjects(c.context(ctx), subject)
}

// Items returns the navigator items built from the grouped tree.
func (c *client) Items(ctx context.Context) ([]navigator.Item, error) {
	grouped, err := c.Grouped(ctx)
	return navigator.Build(grouped), err
}

// Reload re-reads the document and fires hooks for any difference from the
// last known state.
func (c *client) Reload(ctx context.Context) error {
	ctx = c.context(ctx)
	all, err := c.store.LoadAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	old := c.snapshot
	c.snapshot = all
	c.mu.Unlock()

	if c.hooks.triggerCatalogUpdate(old, all) {
		logging.FromContext(ctx).Info().Int("lessons", len(all)).Msg("Catalog reloaded")
	}
	return nil
}

// Audit compares the document with managed storage.
func (c *client) Audit(ctx context.Context) (store.AuditReport, error) {
	return c.store.Audit(c.context(ctx))
}

// Prune deletes the orphaned files of report.
func (c *client) Prune(ctx context.Context, report store.AuditReport) (int, error) {
	return c.store.Prune(c.context(ctx), report)
}

// refresh updates the snapshot after one of this client's own writes.
func (c *client) refresh(ctx context.Context) {
	all, err := c.store.LoadAll(ctx)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.snapshot = all
	c.mu.Unlock()
}

// context attaches the configured logger unless ctx already has one.
func (c *client) context(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.FromContextOr(ctx, c.options.logger))
}

func (c *client) logger() *zerolog.Logger {
	if c.options.logger != nil {
		return c.options.logger
	}
	return logging.Default()
}
