package scaffold

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forgeapi/forgeapi/internal/defs"
	"github.com/forgeapi/forgeapi/internal/manifest"
	"github.com/forgeapi/forgeapi/internal/npm"
	"github.com/forgeapi/forgeapi/internal/template"
)

// initManifestJSON is what the fake package-manager initializer produces.
const initManifestJSON = `{
  "name": "myapp",
  "version": "1.0.0",
  "main": "index.js"
}
`

// newFakeRunner returns a RunFunc that records every invocation, simulates
// "init" by writing a package.json, and fails commands matched by failOn.
func newFakeRunner(t *testing.T, calls *[]npm.CmdSpec, failOn func(npm.CmdSpec) error) npm.RunFunc {
	t.Helper()
	return func(_ context.Context, spec npm.CmdSpec) (string, error) {
		*calls = append(*calls, spec)
		if failOn != nil {
			if err := failOn(spec); err != nil {
				return "", err
			}
		}
		if len(spec.Args) > 0 && spec.Args[0] == "init" {
			path := filepath.Join(spec.Dir, defs.PackageJSON)
			if err := os.WriteFile(path, []byte(initManifestJSON), 0o644); err != nil {
				t.Fatalf("fake init write: %v", err)
			}
		}
		return "", nil
	}
}

func newTestGenerator(t *testing.T, calls *[]npm.CmdSpec, failOn func(npm.CmdSpec) error) Generator {
	t.Helper()

	profiles, err := template.LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles error: %v", err)
	}
	payloads, err := template.Payloads()
	if err != nil {
		t.Fatalf("Payloads error: %v", err)
	}

	client := npm.NewClient(npm.ManagerNPM, npm.WithRunFunc(newFakeRunner(t, calls, failOn)))
	return NewGenerator(profiles, template.NewDeployer(payloads), client)
}

func TestGeneratorRun(t *testing.T) {
	t.Run("full_profile_generates_complete_tree", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "myapp")
		var calls []npm.CmdSpec
		gen := newTestGenerator(t, &calls, nil)

		result, err := gen.Run(context.Background(), Options{
			ProjectName: "myapp",
			ProjectRoot: root,
			Profile:     "full",
		})
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}

		if len(result.CreatedDirs) != len(defs.ProjectDirs) {
			t.Errorf("CreatedDirs = %d, want %d", len(result.CreatedDirs), len(defs.ProjectDirs))
		}
		for _, dir := range defs.ProjectDirs {
			info, err := os.Stat(filepath.Join(root, dir))
			if err != nil || !info.IsDir() {
				t.Errorf("expected directory %q: %v", dir, err)
			}
		}

		profiles, _ := template.LoadProfiles()
		full, _ := profiles.Get("full")
		for _, fm := range full.Files {
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(fm.Dest)))
			if err != nil {
				t.Errorf("expected file %q: %v", fm.Dest, err)
				continue
			}
			if len(data) == 0 {
				t.Errorf("file %q is empty", fm.Dest)
			}
		}

		// README carries the chosen folder name.
		readme, err := os.ReadFile(filepath.Join(root, defs.ReadmeMD))
		if err != nil {
			t.Fatalf("read README: %v", err)
		}
		if !strings.Contains(string(readme), "# myapp") {
			t.Errorf("README does not mention project name:\n%s", readme)
		}
	})

	t.Run("manifest_rewritten_with_scripts_and_module_type", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "myapp")
		var calls []npm.CmdSpec
		gen := newTestGenerator(t, &calls, nil)

		if _, err := gen.Run(context.Background(), Options{ProjectName: "myapp", ProjectRoot: root, Profile: "full"}); err != nil {
			t.Fatalf("Run error: %v", err)
		}

		m, err := manifest.Load(root)
		if err != nil {
			t.Fatalf("Load manifest: %v", err)
		}
		if m["type"] != "module" {
			t.Errorf("type = %v, want module", m["type"])
		}
		scripts, ok := m["scripts"].(map[string]any)
		if !ok {
			t.Fatalf("scripts missing or wrong shape: %T", m["scripts"])
		}
		if scripts["start"] != "node server.js" || scripts["dev"] != "nodemon server.js" {
			t.Errorf("scripts = %v", scripts)
		}
		if len(scripts) != 2 {
			t.Errorf("scripts has %d entries, want 2", len(scripts))
		}
		// Initializer-produced fields survive the rewrite.
		if m["name"] != "myapp" || m["version"] != "1.0.0" {
			t.Errorf("initializer fields lost: name=%v version=%v", m["name"], m["version"])
		}
	})

	t.Run("step_sequence_includes_update_but_not_launch", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "app")
		var calls []npm.CmdSpec
		gen := newTestGenerator(t, &calls, nil)

		if _, err := gen.Run(context.Background(), Options{ProjectName: "app", ProjectRoot: root, Profile: "minimal"}); err != nil {
			t.Fatalf("Run error: %v", err)
		}

		var seq []string
		for _, c := range calls {
			seq = append(seq, c.Name+" "+c.Args[0])
		}
		want := []string{"npm init", "npm install", "npm install", "npx npm-check-updates", "npm install"}
		if len(seq) != len(want) {
			t.Fatalf("call sequence = %v, want %v", seq, want)
		}
		for i := range want {
			if seq[i] != want[i] {
				t.Errorf("call %d = %q, want %q", i, seq[i], want[i])
			}
		}
	})

	t.Run("install_failure_is_fatal_and_stops_the_run", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "app")
		var calls []npm.CmdSpec
		installErr := errors.New("exit status 1")
		gen := newTestGenerator(t, &calls, func(spec npm.CmdSpec) error {
			if spec.Name == "npm" && len(spec.Args) > 1 && spec.Args[0] == "install" {
				return installErr
			}
			return nil
		})

		_, err := gen.Run(context.Background(), Options{ProjectName: "app", ProjectRoot: root, Profile: "full"})
		if err == nil {
			t.Fatal("Run succeeded, want install failure")
		}

		for _, c := range calls {
			if c.Name == "npx" {
				t.Error("update step attempted after fatal install failure")
			}
		}
	})

	t.Run("update_failure_is_tolerated", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "app")
		var calls []npm.CmdSpec
		gen := newTestGenerator(t, &calls, func(spec npm.CmdSpec) error {
			if spec.Name == "npx" {
				return errors.New("exit status 1")
			}
			return nil
		})

		result, err := gen.Run(context.Background(), Options{ProjectName: "app", ProjectRoot: root, Profile: "full"})
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		if len(result.Warnings) != 1 {
			t.Errorf("Warnings = %v, want one update warning", result.Warnings)
		}

		var updateOutcome *StepOutcome
		for i := range result.Outcomes {
			if result.Outcomes[i].Step == StepUpdate {
				updateOutcome = &result.Outcomes[i]
			}
		}
		if updateOutcome == nil {
			t.Fatal("no outcome recorded for update step")
		}
		if !updateOutcome.Tolerated || !updateOutcome.Failed() {
			t.Errorf("update outcome = %+v, want tolerated failure", updateOutcome)
		}
	})

	t.Run("skip_install_stops_after_rewrite", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "app")
		var calls []npm.CmdSpec
		gen := newTestGenerator(t, &calls, nil)

		_, err := gen.Run(context.Background(), Options{
			ProjectName: "app",
			ProjectRoot: root,
			Profile:     "minimal",
			SkipInstall: true,
		})
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		if len(calls) != 1 || calls[0].Args[0] != "init" {
			t.Errorf("calls = %v, want only init", calls)
		}
	})

	t.Run("existing_file_is_overwritten_not_merged", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "app")
		if err := os.MkdirAll(root, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(root, defs.ServerJS), []byte("stale content"), 0o644); err != nil {
			t.Fatal(err)
		}

		var calls []npm.CmdSpec
		gen := newTestGenerator(t, &calls, nil)
		if _, err := gen.Run(context.Background(), Options{ProjectName: "app", ProjectRoot: root, Profile: "full"}); err != nil {
			t.Fatalf("Run error: %v", err)
		}

		payloads, _ := template.Payloads()
		want, err := fs.ReadFile(payloads, "full/server.js")
		if err != nil {
			t.Fatalf("read payload: %v", err)
		}
		got, err := os.ReadFile(filepath.Join(root, defs.ServerJS))
		if err != nil {
			t.Fatalf("read generated server.js: %v", err)
		}
		if string(got) != string(want) {
			t.Error("server.js was not overwritten with the template content")
		}
	})

	t.Run("unknown_profile_rejected", func(t *testing.T) {
		var calls []npm.CmdSpec
		gen := newTestGenerator(t, &calls, nil)

		_, err := gen.Run(context.Background(), Options{ProjectName: "app", ProjectRoot: t.TempDir(), Profile: "enterprise"})
		if !errors.Is(err, template.ErrProfileNotFound) {
			t.Fatalf("Run error = %v, want ErrProfileNotFound", err)
		}
	})
}
