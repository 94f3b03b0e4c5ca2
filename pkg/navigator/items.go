package navigator

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/lessons"
)

// Folder ID prefixes. Leaf IDs are lesson IDs.
const (
	SubjectIDPrefix    = "subject_"
	SubSubjectIDPrefix = "subsubject_"
	BackID             = "back"
)

// Level of an item in the tree.
const (
	LevelSubject    = 0
	LevelSubSubject = 1
	LevelLesson     = 2
)

// sanitizedSeparator replaces the path separator inside names.
const sanitizedSeparator = "∕"

// Item is an addressable node: a subject or sub-subject folder, or a lesson leaf.
// Path is the slash-join of the names from the root down to the item.
type Item struct {
	Name        string          `json:"name" yaml:"name"`
	Label       string          `json:"label" yaml:"label"`
	Path        string          `json:"path" yaml:"path"`
	ID          string          `json:"id" yaml:"id"`
	Folder      bool            `json:"folder" yaml:"folder"`
	Level       int             `json:"level" yaml:"level"`
	Lesson      *lessons.Lesson `json:"lesson,omitempty" yaml:"lesson,omitempty"`
	HasChildren bool            `json:"hasChildren,omitempty" yaml:"has_children,omitempty"`
	Expanded    bool            `json:"expanded,omitempty" yaml:"expanded,omitempty"`
}

// IsBack reports whether the item is the synthetic parent entry.
func (i Item) IsBack() bool {
	return i.ID == BackID && i.Name == constants.BackEntryName
}

// Build flattens the grouped catalog into items at levels 0, 1 and 2.
// Names containing the path separator are sanitised so paths stay splittable.
func Build(subjects []lessons.SubjectNode) []Item {
	var items []Item
	for _, subject := range subjects {
		subjectName := SanitizeName(subject.Name)
		items = append(items, Item{
			Name:        subjectName,
			Label:       subject.Name,
			Path:        subjectName,
			ID:          SubjectIDPrefix + subject.Name,
			Folder:      true,
			Level:       LevelSubject,
			HasChildren: len(subject.SubSubjects) > 0,
		})

		for _, sub := range subject.SubSubjects {
			subName := SanitizeName(sub.Name)
			subPath := JoinPath(subjectName, subName)
			items = append(items, Item{
				Name:        subName,
				Label:       sub.Name,
				Path:        subPath,
				ID:          SubSubjectIDPrefix + subject.Name + constants.PathSeparator + sub.Name,
				Folder:      true,
				Level:       LevelSubSubject,
				HasChildren: len(sub.Lessons) > 0,
			})

			for _, l := range sub.Lessons {
				lesson := l
				title := SanitizeName(l.Title)
				items = append(items, Item{
					Name:   title,
					Label:  l.Label(),
					Path:   JoinPath(subPath, title),
					ID:     l.ID,
					Level:  LevelLesson,
					Lesson: &lesson,
				})
			}
		}
	}
	return items
}

// SanitizeName replaces path separators inside a single name.
func SanitizeName(name string) string {
	return strings.ReplaceAll(name, constants.PathSeparator, sanitizedSeparator)
}

// JoinPath joins path segments with the separator.
func JoinPath(segments ...string) string {
	return strings.Join(segments, constants.PathSeparator)
}

// SplitPath splits a path into its segments. The root path has none.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, constants.PathSeparator)
}

// ParentPath drops the last segment. Level-0 paths have the root ("") as parent.
func ParentPath(path string) string {
	i := strings.LastIndex(path, constants.PathSeparator)
	if i < 0 {
		return ""
	}
	return path[:i]
}

// IsChildOf reports whether child sits directly below parent; "" is the root.
func IsChildOf(child, parent string) bool {
	if parent == "" {
		return child != "" && !strings.Contains(child, constants.PathSeparator)
	}
	rest, ok := strings.CutPrefix(child, parent+constants.PathSeparator)
	return ok && rest != "" && !strings.Contains(rest, constants.PathSeparator)
}

// IsBelow reports whether path is a strict descendant of folder.
func IsBelow(path, folder string) bool {
	if folder == "" {
		return path != ""
	}
	return strings.HasPrefix(path, folder+constants.PathSeparator)
}

// Leaves returns every lesson item at or below folder, in tree order.
func Leaves(items []Item, folder Item) []Item {
	var out []Item
	for _, item := range items {
		if item.Folder {
			continue
		}
		if !folder.Folder && item.Path == folder.Path && item.ID == folder.ID {
			out = append(out, item)
			continue
		}
		if folder.Folder && IsBelow(item.Path, folder.Path) {
			out = append(out, item)
		}
	}
	return out
}

// Children returns the direct children of the folder at path, sorted with
// folders first and then by name.
func Children(items []Item, path string) []Item {
	var out []Item
	for _, item := range items {
		if IsChildOf(item.Path, path) {
			out = append(out, item)
		}
	}
	Sort(out)
	return out
}

// Sort orders items with folders before leaves, then by name, then by id.
func Sort(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		if a.Folder != b.Folder {
			if a.Folder {
				return -1
			}
			return 1
		}
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Label, b.Label), cmp.Compare(a.ID, b.ID))
	})
}

// Find returns the item with path, preferring folders.
func Find(items []Item, path string) (Item, bool) {
	var leaf *Item
	for i := range items {
		if items[i].Path != path {
			continue
		}
		if items[i].Folder {
			return items[i], true
		}
		if leaf == nil {
			leaf = &items[i]
		}
	}
	if leaf != nil {
		return *leaf, true
	}
	return Item{}, false
}

// FindByID returns the item with id.
func FindByID(items []Item, id string) (Item, bool) {
	i := slices.IndexFunc(items, func(item Item) bool { return item.ID == id })
	if i < 0 {
		return Item{}, false
	}
	return items[i], true
}

func hasDescendant(items []Item, path string) bool {
	return slices.ContainsFunc(items, func(item Item) bool { return IsBelow(item.Path, path) })
}
