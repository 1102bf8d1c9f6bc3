// Package template holds the embedded Node.js backend payloads and the
// machinery that writes a profile's file set into a project directory.
package template

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/forgeapi/forgeapi/internal/defs"
)

// Deployer writes a profile's payload files into a project root.
type Deployer interface {
	// Deploy writes every file of the profile under projectRoot,
	// overwriting existing files, and returns the relative paths written.
	// Files whose source ends in .tmpl are rendered with tmplCtx and
	// saved without the suffix implied by their dest mapping.
	Deploy(ctx context.Context, projectRoot string, profile *Profile, tmplCtx *Context) ([]string, error)

	// ExtractPayload returns the raw content of a single payload by path.
	ExtractPayload(name string) ([]byte, error)
}

type deployer struct {
	fsys     fs.FS
	renderer Renderer
}

// NewDeployer creates a Deployer backed by the given payload filesystem.
func NewDeployer(fsys fs.FS) Deployer {
	return &deployer{fsys: fsys, renderer: NewRenderer(fsys)}
}

// NewDeployerWithRenderer creates a Deployer with an explicit Renderer.
func NewDeployerWithRenderer(fsys fs.FS, renderer Renderer) Deployer {
	return &deployer{fsys: fsys, renderer: renderer}
}

func (d *deployer) Deploy(ctx context.Context, projectRoot string, profile *Profile, tmplCtx *Context) ([]string, error) {
	projectRoot = filepath.Clean(projectRoot)

	var written []string
	for _, fm := range profile.Files {
		// Check context cancellation before each file.
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		if err := validateDestPath(projectRoot, fm.Dest); err != nil {
			return written, err
		}

		var content []byte
		if strings.HasSuffix(fm.Src, ".tmpl") && tmplCtx != nil {
			rendered, err := d.renderer.Render(fm.Src, tmplCtx)
			if err != nil {
				return written, err
			}
			content = rendered
		} else {
			raw, err := fs.ReadFile(d.fsys, fm.Src)
			if err != nil {
				return written, fmt.Errorf("%w: %s", ErrTemplateNotFound, fm.Src)
			}
			content = raw
		}

		destPath := filepath.Join(projectRoot, filepath.FromSlash(fm.Dest))
		if err := os.MkdirAll(filepath.Dir(destPath), defs.DirPerm); err != nil {
			return written, fmt.Errorf("template deploy mkdir %q: %w", filepath.Dir(destPath), err)
		}

		// Overwrite without warning; generation is not a merge.
		if err := os.WriteFile(destPath, content, defs.FilePerm); err != nil {
			return written, fmt.Errorf("template deploy write %q: %w", destPath, err)
		}

		written = append(written, fm.Dest)
	}

	return written, nil
}

func (d *deployer) ExtractPayload(name string) ([]byte, error) {
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return data, nil
}

// validateDestPath ensures a destination path stays inside projectRoot.
func validateDestPath(projectRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}
	absPath := filepath.Join(absRoot, cleaned)
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q", ErrPathTraversal, relPath)
	}
	return nil
}
