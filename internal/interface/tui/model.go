package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/utsavm/nexus/internal/core/api"
	"github.com/utsavm/nexus/internal/core/commands"
	"github.com/utsavm/nexus/internal/core/health"
	"github.com/utsavm/nexus/internal/core/models"
	"github.com/utsavm/nexus/internal/core/store"
	"github.com/utsavm/nexus/internal/core/telegram"
)

type viewMode int

const (
	chatView viewMode = iota
	boardView
	sessionsView
	notificationsView
	settingsView
	helpView
)

// inputMode is a modal prompt layered over the current view
type inputMode int

const (
	inputNone inputMode = iota
	inputNewTask
	inputNewProject
	inputConfirmDelete
	inputReminder
)

// App bundles everything the TUI needs. The CLI layer builds one and
// hands it over; the model never constructs its own dependencies.
type App struct {
	Store     *store.Store
	Client    *api.Client
	Monitor   *health.Monitor
	Poller    *telegram.Poller // nil when telegram is not configured
	Scheduler *commands.ReminderScheduler
	Version   string
}

// pendingAction collects the side effects a palette command requests.
// Command closures run synchronously inside Update, so writing through
// this pointer and reading it right after Run returns is safe.
type pendingAction struct {
	navigate   string
	newSession bool
	prompt     string
	taskType   string
	composed   bool
	remind     bool
}

type Model struct {
	app    App
	mode   viewMode
	width  int
	height int
	err    error

	// Chat
	composer   textinput.Model
	transcript viewport.Model
	spin       spinner.Model
	taskType   string // router hint for the next send, cleared after

	// Board
	laneIdx int
	cardIdx int

	// Modal input overlay
	input      inputMode
	inputField textinput.Model
	inputErr   string
	// Second field for two-step prompts (new task description)
	inputStage int
	inputFirst string

	// Sessions
	sessions   []models.Session
	sessionIdx int

	// Notifications
	notifIdx int

	// Palette
	paletteOpen  bool
	paletteInput textinput.Model
	paletteIdx   int
	action       *pendingAction
}

func New(app App) Model {
	composer := textinput.New()
	composer.Placeholder = "Message NEXUS..."
	composer.Focus()
	composer.CharLimit = 4000

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		app:          app,
		mode:         chatView,
		composer:     composer,
		spin:         sp,
		inputField:   textinput.New(),
		paletteInput: textinput.New(),
		action:       &pendingAction{},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadBoard(m.app.Store),
		loadSessions(m.app.Client),
		tick(),
		m.spin.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.transcript = viewport.New(msg.Width, max(msg.Height-6, 3))
		m.syncTranscript()
		return m, nil

	case tickMsg:
		// Drives toast expiry and the status bar; state lives in the
		// stores, the tick only forces a repaint.
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case chatDoneMsg:
		m.syncTranscript()
		m.transcript.GotoBottom()
		return m, nil

	case boardChangedMsg:
		m.clampBoardCursor()
		return m, nil

	case sessionsLoadedMsg:
		m.sessions = msg.sessions
		if m.sessionIdx >= len(m.sessions) {
			m.sessionIdx = 0
		}
		return m, nil

	case sessionAdoptedMsg:
		m.mode = chatView
		m.syncTranscript()
		m.transcript.GotoBottom()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal layers swallow keys first
	if m.paletteOpen {
		return m.updatePalette(msg)
	}
	if m.input != inputNone {
		return m.updateInput(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+k":
		return m.openPalette()
	case "tab":
		m.mode = nextMode(m.mode)
		return m, m.enterMode()
	case "shift+tab":
		m.mode = prevMode(m.mode)
		return m, m.enterMode()
	}

	// Single-key navigation only works outside the chat composer
	if m.mode != chatView {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "c":
			m.mode = chatView
			return m, nil
		case "b":
			m.mode = boardView
			return m, loadBoard(m.app.Store)
		case "s":
			m.mode = sessionsView
			return m, loadSessions(m.app.Client)
		case "n":
			if m.mode != boardView {
				m.mode = notificationsView
				return m, nil
			}
		case "?":
			m.mode = helpView
			return m, nil
		}
	}

	switch m.mode {
	case chatView:
		return m.updateChat(msg)
	case boardView:
		return m.updateBoard(msg)
	case sessionsView:
		return m.updateSessions(msg)
	case notificationsView:
		return m.updateNotifications(msg)
	case settingsView:
		return m.updateSettings(msg)
	case helpView:
		return m.updateHelp(msg)
	}
	return m, nil
}

// enterMode runs the refresh a view wants when it becomes active
func (m *Model) enterMode() tea.Cmd {
	switch m.mode {
	case boardView:
		return loadBoard(m.app.Store)
	case sessionsView:
		return loadSessions(m.app.Client)
	}
	return nil
}

func nextMode(v viewMode) viewMode {
	if v == helpView {
		return chatView
	}
	return v + 1
}

func prevMode(v viewMode) viewMode {
	if v == chatView {
		return helpView
	}
	return v - 1
}

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n\nPress ctrl+c to quit"
	}

	var body string
	switch m.mode {
	case chatView:
		body = m.viewChat()
	case boardView:
		body = m.viewBoard()
	case sessionsView:
		body = m.viewSessions()
	case notificationsView:
		body = m.viewNotifications()
	case settingsView:
		body = m.viewSettings()
	case helpView:
		body = m.viewHelp()
	}

	if m.input != inputNone {
		body = m.overlayInput(body)
	}
	if m.paletteOpen {
		body = m.overlayPalette(body)
	}
	body = m.overlayToasts(body)

	return body + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	backend := offlineStyle.Render("backend: offline")
	if m.app.Monitor.BackendOnline() {
		backend = onlineStyle.Render("backend: online")
	}
	model := offlineStyle.Render("ollama: down")
	if m.app.Monitor.ModelOnline() {
		model = onlineStyle.Render("ollama: up")
	}

	parts := []string{modeName(m.mode), backend, model}
	if m.app.Poller != nil {
		tg := offlineStyle.Render("telegram: off")
		if m.app.Poller.Connected() {
			tg = onlineStyle.Render("telegram: on")
		}
		parts = append(parts, tg)
	}
	if unread := m.app.Store.Notifications.Unread(); unread > 0 {
		parts = append(parts, levelStyles[models.LevelInfo].Render(
			plural(unread, "notification")))
	}
	if m.app.Store.Chat.Busy() {
		parts = append(parts, m.spin.View()+"thinking")
	}
	parts = append(parts, statusBarStyle.Render("ctrl+k palette | tab switch | ? help"))

	return statusBarStyle.Render(strings.Join(parts, "  "))
}

func modeName(v viewMode) string {
	switch v {
	case chatView:
		return "CHAT"
	case boardView:
		return "BOARD"
	case sessionsView:
		return "SESSIONS"
	case notificationsView:
		return "INBOX"
	case settingsView:
		return "SETTINGS"
	case helpView:
		return "HELP"
	}
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
