package panel

import (
	"github.com/charmbracelet/lipgloss"

	"calnotes/internal/tui/theme"
)

// -- confirm.go styles --
var (
	confirmModalBoxStyle = theme.ModalBox
	confirmTitleStyle    = theme.ModalTitle
	confirmYesStyle      = theme.Error
	confirmNoStyle       = theme.Ok
)

// -- panel.go styles --
var (
	headerStyle    = theme.Subtitle
	countStyle     = theme.Muted
	emptyStyle     = lipgloss.NewStyle().Foreground(theme.TextMuted).Italic(true)
	previewStyle   = lipgloss.NewStyle().Foreground(theme.Text)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright).Background(theme.Primary)
	cursorStyle    = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	updatedStyle   = theme.Timestamp
	statusStyle    = theme.Ok
	hintStyle      = theme.HelpHint
	editorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.BorderFocused)
)
