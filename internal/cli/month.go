package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"calnotes/internal/calendar"
	"calnotes/internal/notes"
)

const cellWidth = 4 // "%3d" plus the note marker

func addMonth(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Print a month calendar, marking days that have notes.",
		Example: `
calnotes month
calnotes month 2024-02
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := calendar.StateFor(time.Now())
			if len(args) == 1 {
				t, err := time.ParseInLocation("2006-01", args[0], time.Local)
				if err != nil {
					return fmt.Errorf("invalid month %q, want YYYY-MM", args[0])
				}
				state = calendar.StateFor(t)
			}

			return ro.withSession(func(s *session) error {
				printMonth(cmd.OutOrStdout(), state, s.store.NotesByDate(), time.Now())
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func printMonth(out io.Writer, state calendar.State, nb notes.NotesByDate, today time.Time) {
	width := cellWidth * len(calendar.WeekdayNames)
	title := state.String()
	pad := max(0, (width-len(title))/2)

	tf := color.New(color.Bold)
	hf := color.New(color.Faint)
	nf := color.New(color.Bold, color.FgYellow)
	tdf := color.New(color.Underline)

	fmt.Fprintln(out, strings.Repeat(" ", pad)+tf.Sprint(title))
	for _, d := range calendar.WeekdayNames {
		fmt.Fprint(out, hf.Sprintf("%*s", cellWidth, d))
	}
	fmt.Fprintln(out)

	total := 0
	for _, week := range calendar.BuildMatrix(state.Year, state.Month, today) {
		for _, day := range week {
			if !day.IsCurrentMonth {
				fmt.Fprint(out, strings.Repeat(" ", cellWidth))
				continue
			}
			cell := fmt.Sprintf("%3d", day.DayNumber)
			count := len(nb[day.Key])
			total += count
			switch {
			case count > 0:
				fmt.Fprint(out, nf.Sprint(cell)+"*")
			case day.IsToday:
				fmt.Fprint(out, tdf.Sprint(cell)+" ")
			default:
				fmt.Fprint(out, cell+" ")
			}
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "\n%d note(s) this month\n", total)
}
