package tui

// pane identifies which child receives key events
type pane int

const (
	paneCalendar pane = iota
	panePanel
	paneSearch
)

func (p pane) String() string {
	switch p {
	case panePanel:
		return "notes"
	case paneSearch:
		return "search"
	default:
		return "calendar"
	}
}
