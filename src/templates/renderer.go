package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
)

// Renderer executes the embedded page templates
type Renderer struct {
	t *template.Template
}

// NewRenderer parses every page template
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"lower": strings.ToLower,
	}

	t, err := template.New("root").Funcs(funcMap).ParseFS(files, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

// Render executes the named page into w. Output is buffered so a failed
// render writes nothing.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute %s template: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Assets returns the static assets filesystem rooted at assets/
func Assets() fs.FS {
	sub, err := fs.Sub(files, "assets")
	if err != nil {
		panic("assets directory missing from embed: " + err.Error())
	}
	return sub
}
