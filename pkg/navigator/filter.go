package navigator

import (
	"strings"

	"golang.org/x/text/cases"
)

// filter narrows the visible set to entries matching a query.
// Callers hold the navigator's write lock, since a Caser is stateful.
type filter struct {
	query  string
	folded string
	caser  cases.Caser
}

// SetFilter narrows the visible set. Folders stay when their name or anything
// below them matches; lessons stay when their title, year or label
// match. Matching is case-insensitive. An empty query clears the filter.
func (n *Navigator) SetFilter(query string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	query = strings.TrimSpace(query)
	caser := cases.Fold()
	n.filter = filter{query: query, folded: caser.String(query), caser: caser}
	n.recompute()
}

// Filter returns the active query.
func (n *Navigator) Filter() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.filter.query
}

func (f filter) active() bool {
	return f.folded != ""
}

func (f filter) matches(s string) bool {
	return strings.Contains(f.caser.String(s), f.folded)
}

func (f filter) matchesLeaf(item Item) bool {
	if f.matches(item.Name) || f.matches(item.Label) {
		return true
	}
	return item.Lesson != nil && (f.matches(item.Lesson.Title) || f.matches(item.Lesson.Year))
}

func (f filter) keeps(items []Item, item Item) bool {
	if !item.Folder {
		return f.matchesLeaf(item)
	}
	if f.matches(item.Label) || f.matches(item.Name) {
		return true
	}
	for _, below := range items {
		if !IsBelow(below.Path, item.Path) {
			continue
		}
		if below.Folder && (f.matches(below.Label) || f.matches(below.Name)) {
			return true
		}
		if !below.Folder && f.matchesLeaf(below) {
			return true
		}
	}
	return false
}
