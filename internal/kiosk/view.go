package kiosk

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentstation/lessonmap/internal/cmd/alerts"
	"github.com/agentstation/lessonmap/internal/cmd/emoji"
	"github.com/agentstation/lessonmap/pkg/navigator"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa"))
	crumbStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5fff87"))
	folderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#c4b5fd"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Bold(true)
	badStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	loginBox      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7c3aed")).
			Padding(1, 2)
)

// chrome is the number of lines around the item list.
const chrome = 7

// View renders the screen.
func (m Model) View() string {
	if m.done {
		return ""
	}
	if m.mode == modeLogin {
		return m.viewLogin()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Lessons"))
	b.WriteString("  ")
	b.WriteString(crumbStyle.Render(m.breadcrumb()))
	b.WriteString("\n")
	b.WriteString(m.viewDevice())
	b.WriteString("\n\n")

	b.WriteString(m.viewItems())

	b.WriteString("\n")
	if m.mode == modeFilter || m.nav.Filter() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	if m.status != nil {
		b.WriteString(renderAlert(m.status))
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render(m.help()))
	return b.String()
}

func (m Model) breadcrumb() string {
	crumbs := m.nav.Breadcrumb()
	if len(crumbs) == 0 {
		return m.nav.Title()
	}
	return strings.Join(crumbs, " › ")
}

func (m Model) viewDevice() string {
	if len(m.devices) == 0 {
		return warnStyle.Render(emoji.Device + " No removable device connected")
	}
	d := m.devices[0]
	line := okStyle.Render(emoji.Device+" "+d.Name) + faintStyle.Render(" "+d.Path)
	if extra := len(m.devices) - 1; extra > 0 {
		line += faintStyle.Render(" (+" + strconv.Itoa(extra) + " more)")
	}
	return line
}

func (m Model) viewItems() string {
	visible := m.nav.Visible()
	if len(visible) == 0 {
		if m.nav.Filter() != "" {
			return faintStyle.Render("  nothing matches the filter") + "\n"
		}
		return faintStyle.Render("  no lessons yet") + "\n"
	}

	start, end := 0, len(visible)
	if m.height > chrome {
		rows := m.height - chrome
		if m.cursor >= rows {
			start = m.cursor - rows + 1
		}
		end = min(start+rows, len(visible))
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		line := itemLine(visible[i])
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else if visible[i].Folder {
			b.WriteString("  " + folderStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func itemLine(item navigator.Item) string {
	switch {
	case item.IsBack():
		return emoji.Back + " " + item.Name
	case item.Folder:
		return emoji.Folder + " " + item.Label
	case item.Lesson != nil && item.Lesson.HasPdf:
		return "  " + item.Label + " [PDF]"
	default:
		return "  " + item.Label
	}
}

func (m Model) help() string {
	switch {
	case m.mode == modeFilter:
		return "type to filter • enter keep • esc clear"
	case m.busy:
		return "copying..."
	default:
		return "↑/↓ move • enter open/download • ← back • / filter • q quit"
	}
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Administrator login"))
	b.WriteString("\n\n")
	b.WriteString(m.user.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n")
	if m.status != nil && m.status.Level == alerts.LevelError {
		b.WriteString("\n")
		b.WriteString(renderAlert(m.status))
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("tab switch • enter login • esc back"))
	return loginBox.Render(b.String())
}

func renderAlert(a *alerts.Alert) string {
	switch a.Level {
	case alerts.LevelError:
		return badStyle.Render(a.String())
	case alerts.LevelWarning:
		return warnStyle.Render(a.String())
	case alerts.LevelSuccess:
		return okStyle.Render(a.String())
	default:
		return a.String()
	}
}
