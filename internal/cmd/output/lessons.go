package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/lessonmap/internal/cmd/emoji"
	"github.com/agentstation/lessonmap/pkg/devices"
	"github.com/agentstation/lessonmap/pkg/lessons"
	"github.com/agentstation/lessonmap/pkg/navigator"
	"github.com/agentstation/lessonmap/pkg/store"
	"github.com/agentstation/lessonmap/pkg/transfer"
)

// LessonsToData converts lessons to table format. The plain table shows
// the classification columns; wide adds media details.
func LessonsToData(all []lessons.Lesson) Data {
	rows := make([][]string, 0, len(all))
	for _, l := range all {
		rows = append(rows, []string{
			l.ID,
			l.Title,
			l.Subject,
			l.SubSubject,
			dash(l.Year),
			yesNo(l.HasPdf),
			FormatBytes(l.AudioSize),
			FormatBytes(l.PdfSize),
			l.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return Data{
		Headers:         []string{"ID", "Title", "Subject", "Sub-Subject", "Year", "PDF", "Audio Size", "PDF Size", "Created"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignCenter, AlignCenter, AlignRight, AlignRight, AlignLeft},
		NarrowColumns:   6,
	}
}

// LessonToData converts one lesson to a key-value table.
func LessonToData(l lessons.Lesson) Data {
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"ID", l.ID},
			{"Title", l.Title},
			{"Subject", l.Subject},
			{"Sub-Subject", l.SubSubject},
			{"Year", dash(l.Year)},
			{"Audio", l.AudioPath},
			{"Audio Size", FormatBytes(l.AudioSize)},
			{"PDF", dash(l.PdfPath)},
			{"PDF Size", FormatBytes(l.PdfSize)},
			{"Created", l.CreatedAt.Format("2006-01-02 15:04:05")},
		},
	}
}

// ItemsToData converts a folder listing to table format.
func ItemsToData(items []navigator.Item) Data {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		kind := "lesson"
		switch {
		case item.IsBack():
			kind = "back"
		case item.Folder:
			kind = "folder"
		}
		id := item.ID
		if item.Lesson != nil {
			id = item.Lesson.ID
		}
		rows = append(rows, []string{kind, item.Label, item.Path, id})
	}
	return Data{
		Headers:       []string{"Type", "Name", "Path", "ID"},
		Rows:          rows,
		NarrowColumns: 3,
	}
}

// Tree renders the grouped catalog as an indented outline.
func Tree(subjects []lessons.SubjectNode) string {
	var b strings.Builder
	for _, s := range subjects {
		fmt.Fprintf(&b, "%s (%d)\n", s.Name, s.Count())
		for _, ss := range s.SubSubjects {
			fmt.Fprintf(&b, "  %s (%d)\n", ss.Name, len(ss.Lessons))
			for _, l := range ss.Lessons {
				fmt.Fprintf(&b, "    %s\n", l.Label())
			}
		}
	}
	return b.String()
}

// ValuesToData converts a list of names to a one-column table.
func ValuesToData(header string, values []string) Data {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, []string{v})
	}
	return Data{Headers: []string{header}, Rows: rows}
}

// DevicesToData converts removable devices to table format.
func DevicesToData(ds []devices.Device) Data {
	rows := make([][]string, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, []string{d.Name, d.Path})
	}
	return Data{Headers: []string{"Name", "Path"}, Rows: rows}
}

// ResultToData converts a transfer result to table format.
func ResultToData(r transfer.Result) Data {
	rows := make([][]string, 0, len(r.Copied)+len(r.Skipped))
	for _, p := range r.Copied {
		rows = append(rows, []string{emoji.Success, p})
	}
	for _, id := range r.Skipped {
		rows = append(rows, []string{emoji.Optional, id})
	}
	return Data{Headers: []string{"", "File"}, Rows: rows}
}

// AuditToData converts an audit report to table format.
func AuditToData(r store.AuditReport) Data {
	rows := make([][]string, 0, len(r.Missing)+len(r.Orphans))
	for _, m := range r.Missing {
		problem := "missing " + m.Media
		if m.Outside {
			problem = m.Media + " outside storage"
		}
		rows = append(rows, []string{problem, m.LessonID, m.Title, m.Path})
	}
	for _, p := range r.Orphans {
		rows = append(rows, []string{"orphan", "-", "-", p})
	}
	return Data{Headers: []string{"Problem", "Lesson", "Title", "Path"}, Rows: rows}
}

// FormatBytes formats a byte count with a binary unit.
func FormatBytes(n int64) string {
	if n <= 0 {
		return "-"
	}
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return emoji.Success
	}
	return emoji.Optional
}
