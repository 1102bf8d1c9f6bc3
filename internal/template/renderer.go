package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"text/template"
	"time"
)

// Context carries the values available to .tmpl payloads.
type Context struct {
	ProjectName    string // Folder name chosen by the operator.
	PackageManager string // npm, pnpm, or yarn.
	Version        string // Generator version, for provenance lines.
	CreatedAt      string // RFC 3339 generation timestamp.
}

// NewContext builds a render Context with the timestamp filled in.
func NewContext(projectName, manager, version string) *Context {
	return &Context{
		ProjectName:    projectName,
		PackageManager: manager,
		Version:        version,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
}

// Renderer renders .tmpl payloads with strict missing-key handling.
type Renderer interface {
	// Render parses the named template from the payload filesystem and
	// executes it with the given context.
	Render(name string, ctx *Context) ([]byte, error)
}

type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by the given filesystem.
// In production the fs.FS comes from go:embed; tests use fstest.MapFS.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

func (r *renderer) Render(name string, ctx *Context) ([]byte, error) {
	raw, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("render template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}
