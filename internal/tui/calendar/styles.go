package calendar

import (
	"github.com/charmbracelet/lipgloss"

	"calnotes/internal/tui/theme"
)

// -- month.go styles --
var (
	calDayHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.TextMuted).Width(5).Align(lipgloss.Center)
	calDayStyle        = lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
	calTodayStyle      = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Bold(true).Foreground(theme.Success)
	calCursorStyle     = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Bold(true).Foreground(theme.TextBright).Background(theme.Primary)
	calHasNotesStyle   = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Foreground(theme.Warning)
	calOutsideStyle    = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Foreground(theme.TextMuted)
	calMonthTitleStyle = theme.Title
	navHintStyle       = theme.HelpHint
)

// -- picker.go styles --
var (
	pickerBoxStyle      = theme.ModalBox
	pickerTitleStyle    = theme.ModalTitle
	pickerSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright).Background(theme.Primary)
	pickerItemStyle     = lipgloss.NewStyle().Foreground(theme.Text)
	pickerHelpStyle     = theme.ModalHelp
)
