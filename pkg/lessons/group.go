package lessons

import (
	"cmp"
	"slices"
)

// SubjectNode groups the sub-subjects of one subject. Derived on every read,
// never persisted.
type SubjectNode struct {
	Name        string           `json:"name" yaml:"name"`
	SubSubjects []SubSubjectNode `json:"subSubjects" yaml:"sub_subjects"`
}

// SubSubjectNode groups the lessons of one sub-subject, sorted by title.
type SubSubjectNode struct {
	Name    string   `json:"name" yaml:"name"`
	Lessons []Lesson `json:"lessons" yaml:"lessons"`
}

// Count returns the number of lessons below the subject.
func (s SubjectNode) Count() int {
	n := 0
	for _, sub := range s.SubSubjects {
		n += len(sub.Lessons)
	}
	return n
}

// Group partitions lessons by subject then sub-subject. Both levels and the
// lessons inside are ordered alphabetically, so the result never depends on
// the input order. Empty nodes cannot occur.
func Group(all []Lesson) []SubjectNode {
	bySubject := make(map[string]map[string][]Lesson)
	for _, l := range all {
		subs, ok := bySubject[l.Subject]
		if !ok {
			subs = make(map[string][]Lesson)
			bySubject[l.Subject] = subs
		}
		subs[l.SubSubject] = append(subs[l.SubSubject], l)
	}

	subjects := make([]SubjectNode, 0, len(bySubject))
	for _, name := range sortedKeys(bySubject) {
		subs := bySubject[name]
		node := SubjectNode{Name: name, SubSubjects: make([]SubSubjectNode, 0, len(subs))}
		for _, subName := range sortedKeys(subs) {
			group := subs[subName]
			SortByTitle(group)
			node.SubSubjects = append(node.SubSubjects, SubSubjectNode{Name: subName, Lessons: group})
		}
		subjects = append(subjects, node)
	}
	return subjects
}

// SortByTitle orders lessons by title, breaking ties by year then id.
func SortByTitle(ls []Lesson) {
	slices.SortStableFunc(ls, func(a, b Lesson) int {
		return cmp.Or(
			cmp.Compare(a.Title, b.Title),
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

// DistinctSubjects returns the sorted unique subjects.
func DistinctSubjects(all []Lesson) []string {
	seen := make(map[string]struct{})
	for _, l := range all {
		seen[l.Subject] = struct{}{}
	}
	return sortedKeys(seen)
}

// DistinctSubSubjects returns the sorted unique sub-subjects of subject.
func DistinctSubSubjects(all []Lesson, subject string) []string {
	seen := make(map[string]struct{})
	for _, l := range all {
		if l.Subject == subject {
			seen[l.SubSubject] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// FilterBy returns the lessons of one subject and sub-subject, sorted by title.
func FilterBy(all []Lesson, subject, subSubject string) []Lesson {
	var out []Lesson
	for _, l := range all {
		if l.Subject == subject && l.SubSubject == subSubject {
			out = append(out, l)
		}
	}
	SortByTitle(out)
	return out
}

// Find returns the lesson with id and whether it exists.
func Find(all []Lesson, id string) (Lesson, bool) {
	i := slices.IndexFunc(all, func(l Lesson) bool { return l.ID == id })
	if i < 0 {
		return Lesson{}, false
	}
	return all[i], true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
