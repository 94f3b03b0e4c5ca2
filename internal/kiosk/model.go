package kiosk

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/agentstation/lessonmap"
	"github.com/agentstation/lessonmap/internal/cmd/alerts"
	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/devices"
	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/logging"
	"github.com/agentstation/lessonmap/pkg/navigator"
	"github.com/agentstation/lessonmap/pkg/session"
)

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeLogin
)

// Model is the kiosk screen state.
type Model struct {
	ctx      context.Context
	client   lessonmap.Client
	auth     *session.Authenticator
	logger   *zerolog.Logger
	unlocked bool

	nav     *navigator.Navigator
	devices []devices.Device
	cursor  int
	mode    mode

	filter     textinput.Model
	user       textinput.Model
	password   textinput.Model
	loginFocus int

	busy   bool
	status *alerts.Alert

	width  int
	height int
	done   bool
}

// NewModel creates the kiosk model. Items load on Init.
func NewModel(ctx context.Context, cfg Config) Model {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter"

	user := textinput.New()
	user.Prompt = "user:     "
	user.SetValue(constants.AdminUsername)

	password := textinput.New()
	password.Prompt = "password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	var devs []devices.Device
	if cfg.Monitor != nil {
		devs = cfg.Monitor.Devices()
	}

	return Model{
		ctx:      ctx,
		client:   cfg.Client,
		auth:     cfg.Auth,
		logger:   logging.FromContextOr(ctx, cfg.Logger),
		unlocked: cfg.Unlocked,
		nav:      navigator.New(nil),
		devices:  devs,
		filter:   filter,
		user:     user,
		password: password,
	}
}

// Init loads the catalog.
func (m Model) Init() tea.Cmd {
	return loadItems(m.ctx, m.client)
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case itemsMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("Loading catalog failed")
			m.status = alerts.FromError(msg.err)
			return m, nil
		}
		m.nav.SetItems(msg.items)
		m.clampCursor()
		return m, nil

	case reloadMsg:
		return m, loadItems(m.ctx, m.client)

	case devicesMsg:
		m.devices = msg
		return m, nil

	case downloadedMsg:
		m.busy = false
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Str("lesson_id", msg.lesson.ID).Msg("Download failed")
			m.status = alerts.FromError(msg.err)
			return m, nil
		}
		m.logger.Info().Str("lesson_id", msg.lesson.ID).Str("device", msg.device.Path).
			Int("files", len(msg.result.Copied)).Msg("Lesson downloaded")
		m.status = alerts.NewSuccess("Downloaded " + msg.lesson.Label() + " to " + msg.device.Name)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeLogin:
			return m.updateLogin(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.nav.Visible()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(visible)-1, 0)
	case "enter", "right", "l":
		if len(visible) == 0 {
			return m, nil
		}
		return m.open(visible[m.cursor])
	case "d":
		if len(visible) == 0 {
			return m, nil
		}
		return m.startDownload(visible[m.cursor])
	case "backspace", "left", "h":
		m.nav.NavigateBack()
		m.cursor = 0
	case "~":
		m.nav.NavigateToRoot()
		m.cursor = 0
	case "/":
		m.mode = modeFilter
		return m, m.filter.Focus()
	case "esc":
		if m.nav.Filter() != "" {
			m.filter.SetValue("")
			m.nav.SetFilter("")
			m.clampCursor()
		}
	case "q", "ctrl+c":
		if m.unlocked {
			m.done = true
			return m, tea.Quit
		}
		m.mode = modeLogin
		m.status = nil
		m.loginFocus = 1
		m.password.SetValue("")
		m.user.Blur()
		return m, m.password.Focus()
	}
	return m, nil
}

// open enters a folder or downloads a lesson.
func (m Model) open(item navigator.Item) (tea.Model, tea.Cmd) {
	if !item.Folder {
		return m.startDownload(item)
	}
	if err := m.nav.NavigateToFolder(item); err != nil {
		m.status = alerts.FromError(err)
		return m, nil
	}
	m.cursor = 0
	m.status = nil
	return m, nil
}

func (m Model) startDownload(item navigator.Item) (tea.Model, tea.Cmd) {
	if item.Folder || item.Lesson == nil {
		m.status = alerts.NewInfo("Select a lesson to download")
		return m, nil
	}
	if m.busy {
		return m, nil
	}
	if len(m.devices) == 0 {
		m.status = alerts.FromError(errors.ErrNoDevice)
		return m, nil
	}

	m.busy = true
	m.status = alerts.NewInfo("Downloading " + item.Lesson.Label() + "...")
	return m, download(m.ctx, m.client, *item.Lesson, m.devices[0])
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeBrowse
		m.filter.Blur()
		return m, nil
	case "esc":
		m.mode = modeBrowse
		m.filter.Blur()
		m.filter.SetValue("")
		m.nav.SetFilter("")
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.nav.SetFilter(m.filter.Value())
	m.clampCursor()
	return m, cmd
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.password.SetValue("")
		m.password.Blur()
		m.user.Blur()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.password.Blur()
			return m, m.user.Focus()
		}
		m.user.Blur()
		return m, m.password.Focus()
	case "enter":
		err := m.auth.Authenticate(m.user.Value(), m.password.Value())
		m.password.SetValue("")
		if err != nil {
			m.logger.Warn().Str("user", m.user.Value()).Msg("Administrator login failed")
			m.status = alerts.FromError(err)
			return m, nil
		}
		m.logger.Info().Str("user", m.user.Value()).Msg("Administrator left the kiosk")
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.user, cmd = m.user.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) clampCursor() {
	n := len(m.nav.Visible())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}
