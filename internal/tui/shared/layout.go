package shared

import "strings"

// CenterContent renders content vertically centered in the available height.
func CenterContent(content string, height int) string {
	contentLines := splitLines(content)
	if len(contentLines) >= height {
		return strings.Join(contentLines, "\n")
	}

	topPad := (height - len(contentLines)) / 2

	lines := make([]string, 0, height)
	for i := 0; i < topPad; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, contentLines...)
	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// PinFooter renders content from the top of the available height with the
// footer on the very last lines. Content that does not fit is cut from the bottom.
func PinFooter(content, footer string, height int) string {
	contentLines := splitLines(content)
	footerLines := splitLines(footer)

	room := height - len(footerLines)
	if room < 0 {
		room = 0
	}
	if len(contentLines) > room {
		contentLines = contentLines[:room]
	}

	lines := make([]string, 0, height)
	lines = append(lines, contentLines...)
	for len(lines) < room {
		lines = append(lines, "")
	}
	lines = append(lines, footerLines...)

	return strings.Join(lines, "\n")
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
