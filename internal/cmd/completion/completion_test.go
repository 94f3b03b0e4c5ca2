package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/lessonmap/pkg/lessons"
	"github.com/agentstation/lessonmap/pkg/navigator"
)

func TestFolders(t *testing.T) {
	items := navigator.Build([]lessons.SubjectNode{
		{Name: "Talmud", SubSubjects: []lessons.SubSubjectNode{
			{Name: "Shabbat", Lessons: []lessons.Lesson{{ID: "a", Title: "Lesson A", Subject: "Talmud", SubSubject: "Shabbat", Year: "2024"}}},
		}},
		{Name: "Tanach", SubSubjects: []lessons.SubSubjectNode{
			{Name: "Bereshit", Lessons: []lessons.Lesson{{ID: "b", Title: "Lesson B", Subject: "Tanach", SubSubject: "Bereshit", Year: "2024"}}},
		}},
	})

	assert.ElementsMatch(t, []string{"Talmud", "Talmud/Shabbat"}, Folders(items, "Tal"))
	assert.ElementsMatch(t, []string{"Talmud/Shabbat"}, Folders(items, "Talmud/"))
	assert.Len(t, Folders(items, ""), 4)
	assert.Empty(t, Folders(items, "Zohar"))
}
