package notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"
)

var ideaTemplate = template.Must(template.New("idea").Parse(`# {{.Title}}

**Type:** {{.Type}}
**Date:** {{.Date}}
**Status:** {{.Status}}

## Notes
{{.Notes}}`))

// IdeaNote is the subset of a board idea mirrored into markdown.
type IdeaNote struct {
	ID     int64
	Title  string
	Type   string
	Date   string
	Status string
	Notes  string
}

// IdeaFileName maps a board idea id to its markdown mirror.
func IdeaFileName(id int64) string {
	return "idea-" + strconv.FormatInt(id, 10) + ".md"
}

func RenderIdea(idea IdeaNote) ([]byte, error) {
	var buf bytes.Buffer
	if err := ideaTemplate.Execute(&buf, idea); err != nil {
		return nil, fmt.Errorf("notes: render idea %d: %w", idea.ID, err)
	}
	return buf.Bytes(), nil
}

// WriteIdea writes the markdown mirror of idea into dir and returns the file name.
func WriteIdea(dir string, idea IdeaNote) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("notes: create dir %s: %w", dir, err)
	}

	content, err := RenderIdea(idea)
	if err != nil {
		return "", err
	}

	name := IdeaFileName(idea.ID)
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("notes: write %s: %w", name, err)
	}
	return name, nil
}
