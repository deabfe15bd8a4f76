package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"calnotes/internal/notes"
)

const htmlIndexName = "index.html"

func addExport(topLevel *cobra.Command, ro *rootOptions) {
	withHTML := false
	cmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every note as a markdown file with YAML frontmatter.",
		Example: `
calnotes export ~/notes-backup
calnotes export ./site --html
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			return ro.withSession(func(s *session) error {
				nb := s.store.NotesByDate()
				written, err := notes.ExportMarkdown(nb, dir)
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d note(s) to %s\n", written, dir)

				if !withHTML {
					return nil
				}
				page, err := notes.RenderHTML(nb, "calnotes")
				if err != nil {
					return fmt.Errorf("render html: %w", err)
				}
				path := filepath.Join(dir, htmlIndexName)
				if err := os.WriteFile(path, page, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&withHTML, "html", false, "Also write an index.html rendering all notes.")
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Read markdown notes from a directory. Notes whose id already exists are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := notes.ScanDir(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			return ro.withSession(func(s *session) error {
				added := s.store.Import(found)
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d note(s), skipped %d\n", added, len(found)-added)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}
