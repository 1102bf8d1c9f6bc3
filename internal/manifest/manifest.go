// Package manifest rewrites the npm package.json produced by the package
// manager's initializer, overlaying the generator's fixed fields while
// preserving everything the initializer produced.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forgeapi/forgeapi/internal/defs"
)

// Script commands written into every generated manifest.
const (
	StartScript = "node server.js"
	DevScript   = "nodemon server.js"
)

// Fixed metadata defaults.
const (
	defaultDescription = "REST API backend scaffolded with forgeapi"
	defaultLicense     = "MIT"
)

var defaultKeywords = []string{"express", "mongodb", "rest", "api"}

// Overrides carries the metadata fields written into the manifest.
// Zero values fall back to the fixed defaults.
type Overrides struct {
	Description string
	Keywords    []string
	Author      string
	License     string
}

// Load reads and parses package.json from projectRoot.
func Load(projectRoot string) (map[string]any, error) {
	path := filepath.Join(projectRoot, defs.PackageJSON)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", defs.PackageJSON, err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", defs.PackageJSON, err)
	}
	return m, nil
}

// Rewrite loads package.json from projectRoot, overwrites the generator's
// fixed field set, and writes it back with two-space indentation. Keys the
// initializer produced (name, version, ...) are left untouched.
func Rewrite(projectRoot string, o Overrides) error {
	m, err := Load(projectRoot)
	if err != nil {
		return err
	}

	m["type"] = "module"
	m["main"] = defs.ServerJS
	m["scripts"] = map[string]string{
		"start": StartScript,
		"dev":   DevScript,
	}

	if o.Description == "" {
		o.Description = defaultDescription
	}
	if len(o.Keywords) == 0 {
		o.Keywords = defaultKeywords
	}
	if o.License == "" {
		o.License = defaultLicense
	}
	m["description"] = o.Description
	m["keywords"] = o.Keywords
	m["author"] = o.Author
	m["license"] = o.License

	return save(projectRoot, m)
}

// save serializes the manifest with stable key order and human-readable
// indentation.
func save(projectRoot string, m map[string]any) error {
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", defs.PackageJSON, err)
	}
	out = append(out, '\n')

	path := filepath.Join(projectRoot, defs.PackageJSON)
	if err := os.WriteFile(path, out, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", defs.PackageJSON, err)
	}
	return nil
}
