// Package notes renders trending stories and board ideas into markdown files
// inside the second-brain ideas folder.
package notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"
	"time"

	"github.com/LJTian/TrendScout/internal/collector"
)

const (
	// DefaultSource is the source label written into every scout note.
	DefaultSource = "Hacker News"

	// TimestampLayout renders the fetch time with minute precision.
	TimestampLayout = "2006-01-02 15:04 UTC"

	missingScore = "n/a"
)

var noteTemplate = template.Must(template.New("note").Parse(`# Idea: {{.Title}}
- **Source:** {{.Source}}
- **URL:** {{.URL}}
- **Fetched:** {{.Fetched}}
- **Score:** {{.Score}}

## Initial Thoughts
{{.Title}} is currently trending on HN. This could be a good candidate for a Reviewer-style post or a deep-dive in the newsletter.

## Draft Snippet
(To be filled during the drafting phase)
`))

type noteData struct {
	Title   string
	Source  string
	URL     string
	Fetched string
	Score   string
}

// Writer writes one note per story into Dir.
type Writer struct {
	Dir    string
	Source string
	// Now is the clock used for the Fetched field. Defaults to time.Now.
	Now func() time.Time
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Source: DefaultSource, Now: time.Now}
}

// FileName maps a story id to its note file name.
func FileName(id int) string {
	return "Idea-" + strconv.Itoa(id) + ".md"
}

// Write renders the note for s and writes it to Dir, replacing any existing
// file with the same name. It returns the file name (not the full path).
func (w *Writer) Write(s collector.Story) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("notes: create dir %s: %w", w.Dir, err)
	}

	content, err := w.Render(s)
	if err != nil {
		return "", err
	}

	name := FileName(s.ID)
	if err := os.WriteFile(filepath.Join(w.Dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("notes: write %s: %w", name, err)
	}
	return name, nil
}

// Render returns the note content for s without touching the filesystem.
func (w *Writer) Render(s collector.Story) ([]byte, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	source := w.Source
	if source == "" {
		source = DefaultSource
	}

	var buf bytes.Buffer
	err := noteTemplate.Execute(&buf, noteData{
		Title:   s.Title,
		Source:  source,
		URL:     s.URL,
		Fetched: now().UTC().Format(TimestampLayout),
		Score:   formatScore(s.Score),
	})
	if err != nil {
		return nil, fmt.Errorf("notes: render story %d: %w", s.ID, err)
	}
	return buf.Bytes(), nil
}

func formatScore(score *int) string {
	if score == nil {
		return missingScore
	}
	return strconv.Itoa(*score)
}
