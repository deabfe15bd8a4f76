package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestMarshalParseMarkdown(t *testing.T) {
	ts := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	n := Note{
		ID:        "0f8c2a9e-1111-4222-8333-444455556666",
		DateKey:   "2024-01-02",
		Content:   "Buy milk\n\n- eggs",
		CreatedAt: ts,
		UpdatedAt: ts.Add(time.Hour),
	}

	data, err := MarshalMarkdown(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\n") {
		t.Errorf("expected frontmatter, got %q", data)
	}

	got, ok := ParseMarkdown(data, MarkdownFileName(n), time.Time{})
	if !ok {
		t.Fatal("expected note to parse")
	}
	if got.ID != n.ID || got.DateKey != n.DateKey || got.Content != n.Content {
		t.Errorf("expected %+v, got %+v", n, got)
	}
	if !got.CreatedAt.Equal(n.CreatedAt) || !got.UpdatedAt.Equal(n.UpdatedAt) {
		t.Errorf("timestamps not preserved: %+v", got)
	}
}

func TestMarkdownFileName(t *testing.T) {
	n := Note{ID: "0f8c2a9e-1111", DateKey: "2024-01-02"}
	if got := MarkdownFileName(n); got != "2024-01-02-0f8c2a9e.md" {
		t.Errorf("unexpected file name %q", got)
	}
}

func TestParseMarkdown_DateFromFileName(t *testing.T) {
	mod := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	got, ok := ParseMarkdown([]byte("plain body\n"), "2024-03-01 standup.md", mod)
	if !ok {
		t.Fatal("expected note to parse")
	}
	if got.DateKey != "2024-03-01" {
		t.Errorf("expected date from file name, got %q", got.DateKey)
	}
	if got.ID == "" {
		t.Error("expected generated id")
	}
	if !got.CreatedAt.Equal(mod) || !got.UpdatedAt.Equal(mod) {
		t.Errorf("expected timestamps from modTime, got %+v", got)
	}
	if got.Content != "plain body" {
		t.Errorf("unexpected content %q", got.Content)
	}
}

func TestParseMarkdown_NoDate(t *testing.T) {
	if _, ok := ParseMarkdown([]byte("hello"), "notes.md", time.Now()); ok {
		t.Error("expected note without a day to be rejected")
	}
	if _, ok := ParseMarkdown([]byte("---\ndate: 2024-02-30\n---\nx"), "notes.md", time.Now()); ok {
		t.Error("expected invalid frontmatter date to be rejected")
	}
}

func TestExportAndScanDir(t *testing.T) {
	ts := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	nb := NotesByDate{
		"2024-01-02": {{ID: "aaaaaaaa-1", DateKey: "2024-01-02", Content: "one", CreatedAt: ts, UpdatedAt: ts}},
		"2024-01-05": {{ID: "bbbbbbbb-2", DateKey: "2024-01-05", Content: "two", CreatedAt: ts, UpdatedAt: ts}},
	}
	dir := t.TempDir()

	written, err := ExportMarkdown(nb, dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if written != 2 {
		t.Errorf("expected 2 files, got %d", written)
	}

	hidden := filepath.Join(dir, ".trash")
	os.MkdirAll(hidden, 0o755)
	os.WriteFile(filepath.Join(hidden, "2024-01-09-x.md"), []byte("ignored"), 0o644)
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("2024-01-09"), 0o644)

	found, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(found))
	}

	s := NewStore(nil)
	if added := s.Import(found); added != 2 {
		t.Errorf("expected 2 imported, got %d", added)
	}
	if added := s.Import(found); added != 0 {
		t.Errorf("expected re-import to add nothing, got %d", added)
	}
}

func TestRenderHTML(t *testing.T) {
	ts := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	nb := NotesByDate{
		"2024-01-02": {{ID: "a", DateKey: "2024-01-02", Content: "# Heading\n\n**bold** <b>", CreatedAt: ts, UpdatedAt: ts}},
	}

	out, err := RenderHTML(nb, "My <Notes>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"<title>My &lt;Notes&gt;</title>",
		`<section id="2024-01-02">`,
		"<h2>Tue, 2024-01-02</h2>",
		"<h1>Heading</h1>",
		"<strong>bold</strong>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q\n%s", want, html)
		}
	}
	if strings.Contains(html, "<b>") {
		t.Error("raw HTML in note content must not be passed through")
	}
}
