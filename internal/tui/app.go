package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	calpkg "calnotes/internal/calendar"
	"calnotes/internal/config"
	"calnotes/internal/logs"
	"calnotes/internal/notes"
	calview "calnotes/internal/tui/calendar"
	"calnotes/internal/tui/messages"
	"calnotes/internal/tui/panel"
	"calnotes/internal/tui/search"
	"calnotes/internal/tui/shared"
)

// calendarWidth fits seven five-column cells plus the pane border.
const calendarWidth = 7*5 + 4

// AppModel is the root model that dispatches to child views
type AppModel struct {
	store      *notes.Store
	persister  *notes.Persister
	monthView  calview.MonthModel
	panelView  panel.Model
	searchView search.Model
	focus      pane
	seen       uint64 // store version the month markers reflect
	showHelp   bool
	width      int
	height     int
	ready      bool
}

// NewAppModel creates the root application model. persister may be nil.
func NewAppModel(cfg *config.Config, store *notes.Store, persister *notes.Persister, now func() time.Time) AppModel {
	saveDelay, statusDuration := config.DefaultSaveDelay, config.DefaultStatusDuration
	if cfg != nil {
		saveDelay, statusDuration = cfg.SaveDelay, cfg.StatusDuration
	}

	m := AppModel{
		store:     store,
		persister: persister,
		monthView: calview.NewMonthModel(calpkg.NewNavigator(now)),
		panelView: panel.New(store, saveDelay, statusDuration),
	}
	m.monthView.SetNotes(store.NotesByDate())
	m.seen = store.Version()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	model.syncMarkers()
	return model, cmd
}

func (m AppModel) update(msg tea.Msg) (AppModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 3 // Reserve space for status bar
		m.monthView.SetSize(calendarWidth, contentHeight)
		m.panelView.SetSize(max(20, msg.Width-calendarWidth-6), contentHeight-2)
		m.searchView.SetWidth(msg.Width)
		return m, nil

	case messages.SelectDateMsg:
		cmd := m.panelView.SelectDate(msg.Key)
		m.focus = panePanel
		return m, cmd

	case messages.JumpToNoteMsg:
		m.monthView.JumpTo(msg.Key)
		m.panelView.SelectDate(msg.Key)
		cmd := m.panelView.FocusNote(msg.NoteID)
		m.focus = panePanel
		return m, cmd

	case messages.PanelClosedMsg:
		m.focus = paneCalendar
		return m, nil

	case messages.SearchClosedMsg:
		m.focus = m.returnFocus()
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch m.focus {
		case paneSearch:
			var cmd tea.Cmd
			m.searchView, cmd = m.searchView.Update(msg)
			return m, cmd

		case panePanel:
			if m.panelView.EditorFocused() || m.panelView.Confirming() {
				break
			}
			switch msg.String() {
			case "/":
				return m.openSearch()
			case "?":
				m.showHelp = true
				return m, nil
			case "tab":
				m.focus = paneCalendar
				return m, nil
			}

		case paneCalendar:
			if m.monthView.IsPicking() {
				break
			}
			switch msg.String() {
			case "q":
				return m, m.quit()
			case "/":
				return m.openSearch()
			case "?":
				m.showHelp = true
				return m, nil
			case "tab":
				if m.panelView.Visible() {
					m.focus = panePanel
				}
				return m, nil
			case "esc":
				if m.panelView.Visible() {
					return m, m.panelView.Close()
				}
				return m, nil
			}
		}
	}

	// Keys go to the focused child view
	var cmd tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); isKey {
		switch m.focus {
		case paneCalendar:
			m.monthView, cmd = m.monthView.Update(msg)
		case panePanel:
			m.panelView, cmd = m.panelView.Update(msg)
		}
		return m, cmd
	}

	// Timers and blinks: the panel owns its commit and status ticks
	m.panelView, cmd = m.panelView.Update(msg)
	if m.focus == paneSearch {
		var searchCmd tea.Cmd
		m.searchView, searchCmd = m.searchView.Update(msg)
		return m, tea.Batch(cmd, searchCmd)
	}
	return m, cmd
}

func (m AppModel) openSearch() (AppModel, tea.Cmd) {
	m.searchView = search.New(m.store.All())
	m.searchView.SetWidth(m.width)
	m.focus = paneSearch
	return m, m.searchView.Init()
}

// returnFocus picks the pane to show once search closes.
func (m AppModel) returnFocus() pane {
	if m.panelView.Visible() {
		return panePanel
	}
	return paneCalendar
}

// quit commits the open edit and writes pending notes before exiting.
func (m *AppModel) quit() tea.Cmd {
	m.panelView.CommitPending()
	if m.persister != nil {
		m.persister.Flush()
		if err := m.persister.LastError(); err != nil {
			logs.Logger.Printf("Error saving notes on exit: %v", err)
		}
	}
	return tea.Quit
}

func (m *AppModel) syncMarkers() {
	if v := m.store.Version(); v != m.seen {
		m.monthView.SetNotes(m.store.NotesByDate())
		m.seen = v
	}
}

// Focus returns the name of the pane receiving keys.
func (m AppModel) Focus() string {
	return m.focus.String()
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup("calnotes - Keyboard Shortcuts", helpSections, helpLegend, m.width, m.height)
	}

	contentHeight := m.height - 3

	calStyle := calendarPaneStyle
	if m.focus == paneCalendar {
		calStyle = focusedPaneStyle
	}
	content := calStyle.Render(m.monthView.View())

	if m.panelView.Visible() {
		pStyle := panelPaneStyle
		if m.focus == panePanel {
			pStyle = focusedPaneStyle
		}
		panelWidth := max(20, m.width-lipgloss.Width(content)-4)
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, " ", pStyle.Width(panelWidth).Render(m.panelView.View()))
	}

	if m.focus == paneSearch {
		content = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, m.searchView.View())
	}

	var statusText string
	switch m.focus {
	case paneSearch:
		statusText = "Search | enter: open  esc: cancel"
	case panePanel:
		statusText = "Notes | " + m.panelView.HintText() + " | tab: calendar  /: search  ?: help"
	default:
		statusText = "Calendar | enter: notes  /: search  ?: help  q: quit"
	}

	statusBar := StatusBarStyle.Width(m.width).Render(
		HelpStyle.Render(statusText),
	)

	return shared.PinFooter(content, statusBar, m.height)
}

var helpSections = []shared.HelpSection{
	{
		Title: "Global",
		Binds: []shared.HelpBind{
			{Key: "/", Desc: "Search all notes"},
			{Key: "tab", Desc: "Switch calendar / notes"},
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit (from calendar)"},
			{Key: "ctrl+c", Desc: "Save and quit"},
		},
	},
	{
		Title: "Calendar",
		Binds: []shared.HelpBind{
			{Key: "h / l", Desc: "Previous / next day"},
			{Key: "k / j", Desc: "Previous / next week"},
			{Key: "← / → H / L", Desc: "Previous / next month"},
			{Key: "[ / ]", Desc: "Previous / next year"},
			{Key: "m / y", Desc: "Pick month / year"},
			{Key: "t", Desc: "Jump to today"},
			{Key: "enter", Desc: "Open notes for day"},
			{Key: "esc", Desc: "Close notes panel"},
		},
	},
	{
		Title: "Notes",
		Binds: []shared.HelpBind{
			{Key: "j / k", Desc: "Navigate notes"},
			{Key: "enter / e", Desc: "Edit note"},
			{Key: "n / ctrl+n", Desc: "New note"},
			{Key: "d / ctrl+d", Desc: "Delete note"},
			{Key: "esc", Desc: "Finish editing / close panel"},
		},
	},
}

var helpLegend = []shared.HelpBind{
	{Key: "12*", Desc: "day has notes"},
}
