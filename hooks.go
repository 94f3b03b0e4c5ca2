package lessonmap

import (
	"reflect"
	"sync"

	"github.com/agentstation/lessonmap/pkg/lessons"
)

// Hook function types for lesson events
type (
	// LessonAddedHook is called when a lesson is added to the catalog
	LessonAddedHook func(lesson lessons.Lesson)

	// LessonUpdatedHook is called when a lesson is updated in the catalog
	LessonUpdatedHook func(old, new lessons.Lesson)

	// LessonRemovedHook is called when a lesson is removed from the catalog
	LessonRemovedHook func(lesson lessons.Lesson)

	// ReloadHook is called with the full lesson list after the document
	// changed outside this client
	ReloadHook func(all []lessons.Lesson)
)

// Hooks provides event callback registration.
type Hooks interface {
	// OnLessonAdded registers a callback for when lessons are added
	OnLessonAdded(LessonAddedHook)

	// OnLessonUpdated registers a callback for when lessons are updated
	OnLessonUpdated(LessonUpdatedHook)

	// OnLessonRemoved registers a callback for when lessons are removed
	OnLessonRemoved(LessonRemovedHook)

	// OnReload registers a callback for external document changes
	OnReload(ReloadHook)
}

// hooks manages event callbacks for catalog changes
type hooks struct {
	mu              sync.RWMutex
	onLessonAdded   []LessonAddedHook
	onLessonUpdated []LessonUpdatedHook
	onLessonRemoved []LessonRemovedHook
	onReload        []ReloadHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnLessonAdded registers a callback for when lessons are added
func (h *hooks) OnLessonAdded(fn LessonAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onLessonAdded = append(h.onLessonAdded, fn)
}

// OnLessonUpdated registers a callback for when lessons are updated
func (h *hooks) OnLessonUpdated(fn LessonUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onLessonUpdated = append(h.onLessonUpdated, fn)
}

// OnLessonRemoved registers a callback for when lessons are removed
func (h *hooks) OnLessonRemoved(fn LessonRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onLessonRemoved = append(h.onLessonRemoved, fn)
}

// OnReload registers a callback for external document changes
func (h *hooks) OnReload(fn ReloadHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReload = append(h.onReload, fn)
}

// snapshot copies the registered hooks so they run without the lock held.
func (h *hooks) snapshot() hooks {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return hooks{
		onLessonAdded:   append([]LessonAddedHook(nil), h.onLessonAdded...),
		onLessonUpdated: append([]LessonUpdatedHook(nil), h.onLessonUpdated...),
		onLessonRemoved: append([]LessonRemovedHook(nil), h.onLessonRemoved...),
		onReload:        append([]ReloadHook(nil), h.onReload...),
	}
}

func (h *hooks) triggerAdded(l lessons.Lesson) {
	hs := h.snapshot()
	for _, hook := range hs.onLessonAdded {
		hook(l)
	}
}

func (h *hooks) triggerUpdated(old, new lessons.Lesson) {
	hs := h.snapshot()
	for _, hook := range hs.onLessonUpdated {
		hook(old, new)
	}
}

func (h *hooks) triggerRemoved(l lessons.Lesson) {
	hs := h.snapshot()
	for _, hook := range hs.onLessonRemoved {
		hook(l)
	}
}

// triggerCatalogUpdate compares old and new lesson lists, triggers the
// per-lesson hooks and then the reload hooks. It reports whether anything
// changed; nothing fires when the lists match.
func (h *hooks) triggerCatalogUpdate(oldLessons, newLessons []lessons.Lesson) bool {
	hs := h.snapshot()

	// Create maps for efficient lookup
	oldMap := make(map[string]lessons.Lesson, len(oldLessons))
	for _, l := range oldLessons {
		oldMap[l.ID] = l
	}
	newMap := make(map[string]lessons.Lesson, len(newLessons))
	for _, l := range newLessons {
		newMap[l.ID] = l
	}

	changed := false

	// Detect changes and trigger hooks
	for _, l := range newLessons {
		if old, exists := oldMap[l.ID]; exists {
			if !reflect.DeepEqual(old, l) {
				changed = true
				for _, hook := range hs.onLessonUpdated {
					hook(old, l)
				}
			}
		} else {
			changed = true
			for _, hook := range hs.onLessonAdded {
				hook(l)
			}
		}
	}

	// Check for removed lessons
	for _, l := range oldLessons {
		if _, exists := newMap[l.ID]; !exists {
			changed = true
			for _, hook := range hs.onLessonRemoved {
				hook(l)
			}
		}
	}

	if changed {
		for _, hook := range hs.onReload {
			hook(newLessons)
		}
	}
	return changed
}
