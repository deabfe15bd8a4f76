package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"calnotes/internal/tui/theme"
)

// HelpBind pairs a key, or a grid marker in the legend, with what it does.
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection is one titled column of the help overlay.
type HelpSection struct {
	Title string
	Binds []HelpBind
}

var (
	helpTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(theme.Primary)
	helpKeyStyle     = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	helpDescStyle    = lipgloss.NewStyle().Foreground(theme.Text)
	helpLegendStyle  = lipgloss.NewStyle().Foreground(theme.TextMuted)
	helpBoxStyle     = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(theme.Primary).
				Padding(1, 2)
)

const helpColumnGap = "    "

// RenderHelpPopup centers a help box in a width x height area. Sections sit
// side by side when they fit and stack otherwise. Legend entries explain the
// grid markers and share the dismiss line at the bottom.
func RenderHelpPopup(title string, sections []HelpSection, legend []HelpBind, width, height int) string {
	columns := make([]string, len(sections))
	for i, section := range sections {
		columns[i] = renderHelpSection(section)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, interleave(columns, helpColumnGap)...)
	// Border and padding take 6 columns.
	if width > 0 && lipgloss.Width(body)+6 > width {
		body = lipgloss.JoinVertical(lipgloss.Left, interleave(columns, "")...)
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(helpTitleStyle.Render(title))
		sb.WriteString("\n\n")
	}
	sb.WriteString(body)
	sb.WriteString("\n\n")

	footer := make([]string, 0, len(legend)+1)
	for _, l := range legend {
		footer = append(footer, helpKeyStyle.Render(l.Key)+" "+helpLegendStyle.Render(l.Desc))
	}
	footer = append(footer, helpLegendStyle.Render("any key closes"))
	sb.WriteString(strings.Join(footer, helpLegendStyle.Render("  ·  ")))

	box := helpBoxStyle.Render(sb.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderHelpSection aligns descriptions on the section's longest key.
func renderHelpSection(section HelpSection) string {
	keyWidth := 0
	for _, bind := range section.Binds {
		keyWidth = max(keyWidth, lipgloss.Width(bind.Key))
	}

	lines := []string{helpSectionStyle.Render(section.Title)}
	for _, bind := range section.Binds {
		lines = append(lines, helpKeyStyle.Width(keyWidth+2).Render(bind.Key)+helpDescStyle.Render(bind.Desc))
	}
	return strings.Join(lines, "\n")
}

// interleave puts sep between blocks. An empty sep means a blank line.
func interleave(blocks []string, sep string) []string {
	out := make([]string, 0, 2*len(blocks))
	for i, b := range blocks {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, b)
	}
	return out
}
