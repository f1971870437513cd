package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// ErrTemplateNotFound is returned for render paths that name no template.
var ErrTemplateNotFound = errors.New("render: template not found")

type Renderer struct {
	t *template.Template
	// StaticBase is the URL prefix the host serves our static bundle under.
	StaticBase string
}

func New(staticBase string) (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t, StaticBase: staticBase}, nil
}

// Render executes the named template. Unknown names fail with
// ErrTemplateNotFound so callers can map them to a 404.
func (r *Renderer) Render(name string, ctx any) ([]byte, error) {
	if r.t.Lookup(name) == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, ctx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) CSSURL(name string) string { return r.StaticBase + "/css/" + name }
func (r *Renderer) JSURL(name string) string  { return r.StaticBase + "/js/" + name }

// StaticHandler serves the embedded css/js bundle.
func StaticHandler() http.Handler {
	sub, _ := fs.Sub(staticFS, "static")
	return http.FileServer(http.FS(sub))
}
