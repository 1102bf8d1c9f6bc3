package template

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// FileMapping maps an embedded payload path to its destination inside the
// generated project.
type FileMapping struct {
	Src  string `yaml:"src"`
	Dest string `yaml:"dest"`
}

// Profile describes one named template bundle: the files it generates and
// the npm packages the generated backend needs.
type Profile struct {
	Name            string        `yaml:"-"`
	Description     string        `yaml:"description"`
	Files           []FileMapping `yaml:"files"`
	Dependencies    []string      `yaml:"dependencies"`
	DevDependencies []string      `yaml:"devDependencies"`
}

// Profiles is the parsed profile manifest.
type Profiles struct {
	byName map[string]*Profile
}

// profileManifest mirrors the profiles.yaml document structure.
type profileManifest struct {
	Profiles map[string]*Profile `yaml:"profiles"`
}

// ParseProfiles parses a profiles.yaml document.
func ParseProfiles(data []byte) (*Profiles, error) {
	var doc profileManifest
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse profile manifest: %w", err)
	}
	if len(doc.Profiles) == 0 {
		return nil, fmt.Errorf("profile manifest declares no profiles")
	}
	for name, p := range doc.Profiles {
		p.Name = name
		if len(p.Files) == 0 {
			return nil, fmt.Errorf("profile %q declares no files", name)
		}
	}
	return &Profiles{byName: doc.Profiles}, nil
}

// LoadProfiles parses the embedded profile manifest.
func LoadProfiles() (*Profiles, error) {
	data, err := ProfileManifest()
	if err != nil {
		return nil, fmt.Errorf("read profile manifest: %w", err)
	}
	return ParseProfiles(data)
}

// Get returns the named profile or ErrProfileNotFound.
func (ps *Profiles) Get(name string) (*Profile, error) {
	p, ok := ps.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return p, nil
}

// Names returns the sorted profile names.
func (ps *Profiles) Names() []string {
	names := make([]string, 0, len(ps.byName))
	for name := range ps.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
