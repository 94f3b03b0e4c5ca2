// Package navigator presents the grouped catalog as a path-addressed tree
// with a current-folder pointer, shared by the admin and kiosk browsers.
//
// At the root the visible set is the subject folders. Inside a folder it is a
// synthetic ".." entry followed by the folder's direct children. Every
// transition recomputes the visible set from the complete item list.
package navigator

import (
	"sync"

	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/errors"
)

// FolderChangedFunc is called after the current folder changes. current is
// nil at the root.
type FolderChangedFunc func(current *Item)

// Navigator tracks the current folder over a fixed item list. Safe for
// concurrent use; hooks run outside the lock.
type Navigator struct {
	mu      sync.RWMutex
	items   []Item
	current *Item
	filter  filter
	visible []Item
	hooks   []FolderChangedFunc
}

// New creates a navigator at the root.
func New(items []Item) *Navigator {
	n := &Navigator{items: clone(items)}
	n.recompute()
	return n
}

// OnFolderChanged registers fn to run after every folder transition.
func (n *Navigator) OnFolderChanged(fn FolderChangedFunc) {
	if fn == nil {
		return
	}
	n.mu.Lock()
	n.hooks = append(n.hooks, fn)
	n.mu.Unlock()
}

// Items returns a copy of the full item list.
func (n *Navigator) Items() []Item {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return clone(n.items)
}

// SetItems replaces the item list after a catalog reload. The current folder
// is kept when a folder with the same path still exists, otherwise the
// navigator returns to the root.
func (n *Navigator) SetItems(items []Item) {
	n.mu.Lock()
	n.items = clone(items)
	changed := false
	if n.current != nil {
		if folder, ok := n.folder(n.current.Path); ok {
			n.current = &folder
		} else {
			n.current = nil
			changed = true
		}
	}
	n.recompute()
	n.mu.Unlock()

	if changed {
		n.notify()
	}
}

// Current returns the current folder, or nil at the root.
func (n *Navigator) Current() *Item {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.current == nil {
		return nil
	}
	current := *n.current
	return &current
}

// AtRoot reports whether the navigator is at the root.
func (n *Navigator) AtRoot() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current == nil
}

// Visible returns the entries of the current folder.
func (n *Navigator) Visible() []Item {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return clone(n.visible)
}

// NavigateToFolder enters folder. Selecting the ".." entry goes to its
// target. Leaves are rejected with a validation error and folders missing
// from the item list with a not-found error.
func (n *Navigator) NavigateToFolder(folder Item) error {
	if folder.IsBack() {
		return n.NavigateToPath(folder.Path)
	}
	if !folder.Folder {
		return errors.NewValidationError("folder", folder.Path, "only folders can be opened")
	}
	return n.NavigateToPath(folder.Path)
}

// NavigateToPath enters the folder at path. The empty path is the root.
func (n *Navigator) NavigateToPath(path string) error {
	n.mu.Lock()
	if path == "" {
		n.current = nil
	} else {
		folder, ok := n.folder(path)
		if !ok {
			n.mu.Unlock()
			return errors.NewNotFoundError("folder", path)
		}
		n.current = &folder
	}
	n.recompute()
	n.mu.Unlock()

	n.notify()
	return nil
}

// NavigateBack goes to the parent folder. From a subject folder, or from the
// root, it goes to the root.
func (n *Navigator) NavigateBack() {
	n.mu.Lock()
	if n.current != nil && n.current.Level > 0 {
		parent, ok := n.folder(ParentPath(n.current.Path))
		if ok {
			n.current = &parent
		} else {
			n.current = nil
		}
	} else {
		n.current = nil
	}
	n.recompute()
	n.mu.Unlock()

	n.notify()
}

// NavigateToRoot goes to the root unconditionally.
func (n *Navigator) NavigateToRoot() {
	n.mu.Lock()
	n.current = nil
	n.recompute()
	n.mu.Unlock()

	n.notify()
}

// Breadcrumb returns the path segments of the current folder, empty at the root.
func (n *Navigator) Breadcrumb() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.current == nil {
		return []string{}
	}
	return SplitPath(n.current.Path)
}

// Title is the breadcrumb joined for display, or the root label.
func (n *Navigator) Title() string {
	crumbs := n.Breadcrumb()
	if len(crumbs) == 0 {
		return constants.RootLabel
	}
	return JoinPath(crumbs...)
}

// ToggleExpanded flips the display-only expanded flag of the folder at path.
func (n *Navigator) ToggleExpanded(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.items {
		if n.items[i].Folder && n.items[i].Path == path {
			n.items[i].Expanded = !n.items[i].Expanded
		}
	}
	n.recompute()
}

// folder finds a folder by path. Callers hold the lock.
func (n *Navigator) folder(path string) (Item, bool) {
	for _, item := range n.items {
		if item.Folder && item.Path == path {
			return item, true
		}
	}
	return Item{}, false
}

// recompute rebuilds the visible set. Callers hold the write lock.
func (n *Navigator) recompute() {
	for i := range n.items {
		if n.items[i].Folder {
			n.items[i].HasChildren = hasDescendant(n.items, n.items[i].Path)
		}
	}

	path := ""
	var visible []Item
	if n.current != nil {
		path = n.current.Path
		visible = append(visible, backEntry(*n.current))
	}

	for _, child := range Children(n.items, path) {
		if n.filter.active() && !n.filter.keeps(n.items, child) {
			continue
		}
		visible = append(visible, child)
	}
	n.visible = visible
}

func (n *Navigator) notify() {
	n.mu.RLock()
	hooks := make([]FolderChangedFunc, len(n.hooks))
	copy(hooks, n.hooks)
	var current *Item
	if n.current != nil {
		c := *n.current
		current = &c
	}
	n.mu.RUnlock()

	for _, fn := range hooks {
		fn(current)
	}
}

// backEntry points at the parent of current, or at the root from level 0.
func backEntry(current Item) Item {
	return Item{
		Name:        constants.BackEntryName,
		Label:       constants.BackEntryName,
		Path:        ParentPath(current.Path),
		ID:          BackID,
		Folder:      true,
		Level:       current.Level - 1,
		HasChildren: true,
	}
}

func clone(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
