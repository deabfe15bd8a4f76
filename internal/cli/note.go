package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"calnotes/internal/calendar"
	"calnotes/internal/datekey"
	"calnotes/internal/notes"
)

var errAmbiguousID = errors.New("ambiguous note id")

func addNote(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes", "n"},
		Short:   "Add, list, edit and remove notes.",
	}

	addNoteAdd(cmd, ro)
	addNoteList(cmd, ro)
	addNoteEdit(cmd, ro)
	addNoteRemove(cmd, ro)

	topLevel.AddCommand(cmd)
}

func addNoteAdd(parent *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:     "add <date> <content>",
		Aliases: []string{"a"},
		Short:   "Add a note to a day.",
		Example: `
calnotes note add 2024-01-02 Buy milk
calnotes note add today "Call the dentist"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseDay(args[0])
			if err != nil {
				return err
			}
			content := strings.Join(args[1:], " ")

			return ro.withSession(func(s *session) error {
				n := s.store.CreateNote(key)
				if content != "" {
					if n, err = s.store.UpdateNote(n.ID, content); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", notes.Preview(n.Content))
				fmt.Fprintf(cmd.OutOrStdout(), "ID: %s\n", n.ID)
				return nil
			})
		},
	}
	parent.AddCommand(cmd)
}

func addNoteList(parent *cobra.Command, ro *rootOptions) {
	span := ""
	cmd := &cobra.Command{
		Use:     "list [date]",
		Aliases: []string{"ls", "l"},
		Short:   "List notes, optionally for a single day or the week or month around it.",
		Example: `
calnotes note list
calnotes note list 2024-01-02
calnotes note list --span week
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var anchor datekey.Key
			if len(args) == 1 {
				key, err := parseDay(args[0])
				if err != nil {
					return err
				}
				anchor = key
			}

			include := func(datekey.Key) bool { return true }
			switch {
			case span != "":
				if anchor == "" {
					anchor = datekey.Today()
				}
				at, _ := anchor.Time()
				r, err := calendar.SpanRange(span, at)
				if err != nil {
					return err
				}
				include = func(key datekey.Key) bool {
					t, err := key.Time()
					return err == nil && r.Contains(t)
				}
			case anchor != "":
				include = func(key datekey.Key) bool { return key == anchor }
			}

			return ro.withSession(func(s *session) error {
				nb := s.store.NotesByDate()
				var rows []notes.Note
				for _, key := range notes.Dates(nb) {
					if !include(key) {
						continue
					}
					rows = append(rows, notes.SortNotes(nb[key])...)
				}

				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(out, "No notes found.")
					return nil
				}

				bold := color.New(color.Bold)
				faint := color.New(color.Faint)

				tbl := uitable.New()
				tbl.Separator = "  "
				tbl.MaxColWidth = 60
				tbl.AddRow(bold.Sprint("ID"), bold.Sprint("DATE"), bold.Sprint("UPDATED"), bold.Sprint("NOTE"))
				for _, n := range rows {
					tbl.AddRow(shortID(n.ID), string(n.DateKey), faint.Sprint(datekey.FormatDateTime(n.UpdatedAt)), notes.Preview(n.Content))
				}
				fmt.Fprintln(out, tbl)
				fmt.Fprintf(out, "\n%d note(s)\n", len(rows))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&span, "span", "", "List the day, week or month around the date (default today).")
	parent.AddCommand(cmd)
}

func addNoteEdit(parent *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:     "edit <id> <content>",
		Aliases: []string{"e"},
		Short:   "Replace the content of a note.",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args[1:], " ")
			return ro.withSession(func(s *session) error {
				n, err := findNoteByPartialID(s.store, args[0])
				if err != nil {
					return err
				}
				if _, err := s.store.UpdateNote(n.ID, content); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", notes.Preview(content))
				return nil
			})
		},
	}
	parent.AddCommand(cmd)
}

func addNoteRemove(parent *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete", "del"},
		Short:   "Delete a note.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withSession(func(s *session) error {
				n, err := findNoteByPartialID(s.store, args[0])
				if err != nil {
					return err
				}
				if err := s.store.DeleteNote(n.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", notes.Preview(n.Content))
				return nil
			})
		},
	}
	parent.AddCommand(cmd)
}

// parseDay accepts a YYYY-MM-DD key or "today".
func parseDay(s string) (datekey.Key, error) {
	if strings.EqualFold(s, "today") {
		return datekey.Today(), nil
	}
	if _, err := datekey.Parse(s); err != nil {
		return "", err
	}
	return datekey.Key(s), nil
}

// findNoteByPartialID finds a note by full ID or unique prefix.
func findNoteByPartialID(store *notes.Store, partial string) (notes.Note, error) {
	if n, ok := store.Note(partial); ok {
		return n, nil
	}

	var matches []notes.Note
	for _, n := range store.All() {
		if strings.HasPrefix(n.ID, partial) {
			matches = append(matches, n)
		}
	}

	switch len(matches) {
	case 0:
		return notes.Note{}, fmt.Errorf("%w: %s", notes.ErrNoteNotFound, partial)
	case 1:
		return matches[0], nil
	default:
		return notes.Note{}, fmt.Errorf("%w: %s matches %d notes", errAmbiguousID, partial, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
