package template

import (
	"errors"
	"testing"
)

func TestParseProfiles(t *testing.T) {
	t.Run("valid_manifest", func(t *testing.T) {
		doc := `
profiles:
  tiny:
    description: smallest possible bundle
    files:
      - src: common/env
        dest: .env
    dependencies: [express]
    devDependencies: [nodemon]
`
		profiles, err := ParseProfiles([]byte(doc))
		if err != nil {
			t.Fatalf("ParseProfiles error: %v", err)
		}
		p, err := profiles.Get("tiny")
		if err != nil {
			t.Fatalf("Get error: %v", err)
		}
		if p.Name != "tiny" || len(p.Files) != 1 || p.Files[0].Dest != ".env" {
			t.Errorf("unexpected profile: %+v", p)
		}
	})

	t.Run("empty_manifest_rejected", func(t *testing.T) {
		if _, err := ParseProfiles([]byte("profiles: {}")); err == nil {
			t.Fatal("ParseProfiles accepted empty manifest")
		}
	})

	t.Run("profile_without_files_rejected", func(t *testing.T) {
		doc := "profiles:\n  broken:\n    description: no files\n"
		if _, err := ParseProfiles([]byte(doc)); err == nil {
			t.Fatal("ParseProfiles accepted profile without files")
		}
	})

	t.Run("malformed_yaml_rejected", func(t *testing.T) {
		if _, err := ParseProfiles([]byte("profiles: [")); err == nil {
			t.Fatal("ParseProfiles accepted malformed YAML")
		}
	})
}

func TestLoadProfilesEmbedded(t *testing.T) {
	profiles, err := LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles error: %v", err)
	}

	names := profiles.Names()
	if len(names) != 2 || names[0] != "full" || names[1] != "minimal" {
		t.Fatalf("Names = %v, want [full minimal]", names)
	}

	full, err := profiles.Get("full")
	if err != nil {
		t.Fatalf("Get full: %v", err)
	}
	if len(full.Files) != 15 {
		t.Errorf("full profile has %d files, want 15", len(full.Files))
	}
	if len(full.Dependencies) == 0 || len(full.DevDependencies) == 0 {
		t.Error("full profile missing dependency lists")
	}

	minimal, err := profiles.Get("minimal")
	if err != nil {
		t.Fatalf("Get minimal: %v", err)
	}
	if len(minimal.Files) != 8 {
		t.Errorf("minimal profile has %d files, want 8", len(minimal.Files))
	}

	// Every referenced payload exists in the embedded filesystem.
	payloads, err := Payloads()
	if err != nil {
		t.Fatalf("Payloads error: %v", err)
	}
	d := NewDeployer(payloads)
	for _, name := range names {
		p, _ := profiles.Get(name)
		for _, fm := range p.Files {
			if _, err := d.ExtractPayload(fm.Src); err != nil {
				t.Errorf("profile %s references missing payload %q: %v", name, fm.Src, err)
			}
		}
	}

	if _, err := profiles.Get("enterprise"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Get unknown = %v, want ErrProfileNotFound", err)
	}
}
