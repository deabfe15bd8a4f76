package notes

import (
	"bytes"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"calnotes/internal/datekey"
)

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

type noteFrontmatter struct {
	ID        string `yaml:"id,omitempty"`
	Date      string `yaml:"date"`
	CreatedAt string `yaml:"created_at,omitempty"`
	UpdatedAt string `yaml:"updated_at,omitempty"`
}

// MarkdownFileName returns the file name a note is exported under.
func MarkdownFileName(n Note) string {
	short := n.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s-%s.md", n.DateKey, short)
}

// MarshalMarkdown renders a note as markdown with YAML frontmatter.
func MarshalMarkdown(n Note) ([]byte, error) {
	fm, err := yaml.Marshal(noteFrontmatter{
		ID:        n.ID,
		Date:      string(n.DateKey),
		CreatedAt: formatTimestamp(n.CreatedAt),
		UpdatedAt: formatTimestamp(n.UpdatedAt),
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n")
	buf.WriteString(n.Content)
	if n.Content != "" && !strings.HasSuffix(n.Content, "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// ExportMarkdown writes one markdown file per note into dir and returns
// the number of files written.
func ExportMarkdown(nb NotesByDate, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	written := 0
	for _, key := range Dates(nb) {
		for _, n := range nb[key] {
			data, err := MarshalMarkdown(n)
			if err != nil {
				return written, fmt.Errorf("export %s: %w", n.ID, err)
			}
			if err := os.WriteFile(filepath.Join(dir, MarkdownFileName(n)), data, 0o644); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}

// RenderHTML renders all notes as a single HTML page grouped by day, with
// note content converted from markdown.
func RenderHTML(nb NotesByDate, title string) ([]byte, error) {
	md := goldmark.New()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n", html.EscapeString(title))
	fmt.Fprintf(&buf, "<h1>%s</h1>\n", html.EscapeString(title))

	for _, key := range Dates(nb) {
		fmt.Fprintf(&buf, "<section id=\"%s\">\n<h2>%s</h2>\n", html.EscapeString(string(key)), html.EscapeString(datekey.FormatDay(key)))
		for _, n := range SortNotes(nb[key]) {
			fmt.Fprintf(&buf, "<article id=\"note-%s\">\n", html.EscapeString(n.ID))
			if err := md.Convert([]byte(n.Content), &buf); err != nil {
				return nil, fmt.Errorf("render %s: %w", n.ID, err)
			}
			fmt.Fprintf(&buf, "<p><small>Updated %s</small></p>\n</article>\n", html.EscapeString(datekey.FormatDateTime(n.UpdatedAt)))
		}
		buf.WriteString("</section>\n")
	}

	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// ParseMarkdown parses a markdown note. The day comes from the frontmatter
// `date`, or failing that from a YYYY-MM-DD in fileName. It returns false
// when no day can be determined. Missing ids are generated and missing
// timestamps fall back to modTime.
func ParseMarkdown(content []byte, fileName string, modTime time.Time) (Note, bool) {
	fm, body := splitFrontmatter(content)

	key := datekey.Key("")
	if fm.Date != "" && datekey.Key(fm.Date).Valid() {
		key = datekey.Key(fm.Date)
	}
	if key == "" {
		if match := datePattern.FindString(fileName); match != "" && datekey.Key(match).Valid() {
			key = datekey.Key(match)
		}
	}
	if key == "" {
		return Note{}, false
	}

	id := fm.ID
	if id == "" {
		id = NewID()
	}

	created, err := parseTimestamp(fm.CreatedAt)
	if err != nil {
		created = modTime
	}
	updated, err := parseTimestamp(fm.UpdatedAt)
	if err != nil {
		updated = created
	}

	return Note{
		ID:        id,
		DateKey:   key,
		Content:   strings.TrimRight(string(body), "\n"),
		CreatedAt: created,
		UpdatedAt: updated,
	}, true
}

// ParseNoteFile reads and parses a markdown note from disk.
func ParseNoteFile(path string) (Note, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Note{}, false
	}
	var modTime time.Time
	if info, err := os.Stat(path); err == nil {
		modTime = info.ModTime()
	}
	return ParseMarkdown(content, filepath.Base(path), modTime)
}

// ScanDir parses every .md file under dir. Files without a recognisable day are skipped.
func ScanDir(dir string) ([]Note, error) {
	var found []Note
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		if n, ok := ParseNoteFile(path); ok {
			found = append(found, n)
		}
		return nil
	})
	return found, err
}

// splitFrontmatter separates optional YAML frontmatter from the body.
func splitFrontmatter(content []byte) (noteFrontmatter, []byte) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return noteFrontmatter{}, content
	}

	var fmEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			fmEnd = i
			break
		}
	}

	if fmEnd == 0 {
		return noteFrontmatter{}, content
	}

	fmBytes := bytes.Join(lines[1:fmEnd], []byte("\n"))
	var fm noteFrontmatter
	if err := yaml.Unmarshal(fmBytes, &fm); err != nil {
		return noteFrontmatter{}, content
	}

	return fm, bytes.Join(lines[fmEnd+1:], []byte("\n"))
}
