package kiosk

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentstation/lessonmap"
	"github.com/agentstation/lessonmap/pkg/devices"
	"github.com/agentstation/lessonmap/pkg/lessons"
	"github.com/agentstation/lessonmap/pkg/navigator"
	"github.com/agentstation/lessonmap/pkg/transfer"
)

// itemsMsg carries a freshly built item list.
type itemsMsg struct {
	items []navigator.Item
	err   error
}

// reloadMsg asks the model to rebuild its items after an external change.
type reloadMsg struct{}

// devicesMsg carries the devices currently connected.
type devicesMsg []devices.Device

// downloadedMsg reports a finished download.
type downloadedMsg struct {
	lesson lessons.Lesson
	device devices.Device
	result transfer.Result
	err    error
}

func loadItems(ctx context.Context, client lessonmap.Client) tea.Cmd {
	return func() tea.Msg {
		items, err := client.Items(ctx)
		return itemsMsg{items: items, err: err}
	}
}

func download(ctx context.Context, client lessonmap.Client, l lessons.Lesson, d devices.Device) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Download(ctx, l.ID, d.Path)
		return downloadedMsg{lesson: l, device: d, result: result, err: err}
	}
}
