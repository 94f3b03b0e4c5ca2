package lessonmap

import (
	"context"

	"github.com/agentstation/lessonmap/pkg/lessons"
)

// Add validates d, copies its media into managed storage and stores a new
// lesson. Nothing touches disk when validation fails. Callers report
// lessons.Warnings themselves.
func (c *client) Add(ctx context.Context, d lessons.Draft) (lessons.Lesson, error) {
	ctx = c.context(ctx)
	now := c.options.now()

	if err := lessons.Validate(d, lessons.ModeCreate, now); err != nil {
		return lessons.Lesson{}, err
	}

	added, err := c.store.AddLesson(ctx, lessons.New(d, now), d.AudioSource, d.PdfSource)
	if err != nil {
		return lessons.Lesson{}, err
	}

	c.refresh(ctx)
	c.hooks.triggerAdded(added)
	return added, nil
}

// Update validates d and applies it to the lesson with id. An empty audio
// source keeps the current audio. An empty PDF source keeps the current PDF
// unless d.ClearPdf is set.
func (c *client) Update(ctx context.Context, id string, d lessons.Draft) (lessons.Lesson, error) {
	ctx = c.context(ctx)

	if err := lessons.Validate(d, lessons.ModeUpdate, c.options.now()); err != nil {
		return lessons.Lesson{}, err
	}

	old, err := c.store.GetByID(ctx, id)
	if err != nil {
		return lessons.Lesson{}, err
	}

	updated, err := c.store.UpdateLesson(ctx, old.Apply(d))
	if err != nil {
		return lessons.Lesson{}, err
	}

	c.refresh(ctx)
	c.hooks.triggerUpdated(old, updated)
	return updated, nil
}

// Delete removes the lesson and, best-effort, its managed files.
func (c *client) Delete(ctx context.Context, id string) error {
	ctx = c.context(ctx)

	old, err := c.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.store.DeleteLesson(ctx, id); err != nil {
		return err
	}

	c.refresh(ctx)
	c.hooks.triggerRemoved(old)
	return nil
}

// EditDraft returns the draft that reproduces l unchanged, for pre-filling an
// edit form.
func EditDraft(l lessons.Lesson) lessons.Draft {
	return lessons.Draft{
		Title:      l.Title,
		Subject:    l.Subject,
		SubSubject: l.SubSubject,
		Year:       l.Year,
	}
}
