package lessons

import (
	"strconv"
	"time"

	"github.com/agentstation/lessonmap/pkg/constants"
)

// YearChoices lists the selectable years, newest first: one year ahead of
// now down to five years back.
func YearChoices(now time.Time) []string {
	current := now.Year()
	years := make([]string, 0, constants.YearsBack+constants.YearsForward+1)
	for y := current + constants.YearsForward; y >= current-constants.YearsBack; y-- {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

// DefaultYear is the year preselected when creating a lesson.
func DefaultYear(now time.Time) string {
	return strconv.Itoa(now.Year())
}

// DefaultSubjects are offered when the catalog is still empty.
var DefaultSubjects = []string{"גמרא", "הלכה", "מוסר", "קבלה"}
