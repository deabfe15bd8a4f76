package calendar

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	calpkg "calnotes/internal/calendar"
)

type pickerKind int

const (
	pickMonth pickerKind = iota
	pickYear
)

const pickerVisibleRows = 9

// picker is a small list for jumping straight to a month or a year.
type picker struct {
	kind     pickerKind
	options  []int
	labels   []string
	selected int
}

func newMonthPicker(current int) *picker {
	p := &picker{kind: pickMonth, labels: calpkg.MonthNames}
	for i := range calpkg.MonthNames {
		p.options = append(p.options, i)
	}
	p.selected = clamp(current, 0, len(p.options)-1)
	return p
}

func newYearPicker(current int) *picker {
	years := calpkg.YearOptions(current, calpkg.DefaultYearSpan)
	p := &picker{kind: pickYear, options: years}
	for i, y := range years {
		p.labels = append(p.labels, fmt.Sprintf("%d", y))
		if y == current {
			p.selected = i
		}
	}
	return p
}

// update returns done=true when the picker should close, and apply=true
// when the highlighted option was chosen.
func (p *picker) update(msg tea.KeyMsg) (done, apply bool) {
	switch msg.String() {
	case "j", "down":
		if p.selected < len(p.options)-1 {
			p.selected++
		}
	case "k", "up":
		if p.selected > 0 {
			p.selected--
		}
	case "enter":
		return true, true
	case "esc", "q":
		return true, false
	}
	return false, false
}

func (p *picker) value() int {
	return p.options[p.selected]
}

func (p *picker) view() string {
	var sb strings.Builder
	title := "Go to month"
	if p.kind == pickYear {
		title = "Go to year"
	}
	sb.WriteString(pickerTitleStyle.Render(title))
	sb.WriteString("\n\n")

	start := clamp(p.selected-pickerVisibleRows/2, 0, max(0, len(p.labels)-pickerVisibleRows))
	end := min(len(p.labels), start+pickerVisibleRows)
	for i := start; i < end; i++ {
		if i == p.selected {
			sb.WriteString(pickerSelectedStyle.Render(" " + p.labels[i] + " "))
		} else {
			sb.WriteString(pickerItemStyle.Render(" " + p.labels[i] + " "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(pickerHelpStyle.Render("j/k: move  enter: go  esc: cancel"))
	return pickerBoxStyle.Render(sb.String())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
