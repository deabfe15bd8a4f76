package tui

import "calnotes/internal/tui/theme"

var (
	StatusBarStyle = theme.StatusBar
	HelpStyle      = theme.HelpHint

	calendarPaneStyle = theme.Pane
	panelPaneStyle    = theme.Pane
	focusedPaneStyle  = theme.PaneFocused
)
