package notes

import (
	"sort"
	"strings"
)

const (
	previewMaxLen     = 50
	previewEllipsis   = "..."
	previewEmptyLabel = "(Empty)"
)

// SortNotes returns a copy of list ordered by UpdatedAt, newest first.
// Notes updated at the same instant keep their insertion order.
func SortNotes(list []Note) []Note {
	sorted := make([]Note, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	return sorted
}

// Preview returns the first line of content, cut to 50 characters with an
// ellipsis. Blank content yields "(Empty)".
func Preview(content string) string {
	if strings.TrimSpace(content) == "" {
		return previewEmptyLabel
	}
	firstLine, _, _ := strings.Cut(content, "\n")
	firstLine = strings.TrimSuffix(firstLine, "\r")

	runes := []rune(firstLine)
	if len(runes) > previewMaxLen {
		return string(runes[:previewMaxLen]) + previewEllipsis
	}
	return firstLine
}

// SearchString returns the text used to fuzzy-match a note.
func SearchString(n Note) string {
	return string(n.DateKey) + " " + strings.ReplaceAll(n.Content, "\n", " ")
}
