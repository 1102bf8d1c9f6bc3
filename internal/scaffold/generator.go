// Package scaffold orchestrates project generation: directory layout,
// template deployment, manifest rewriting, and dependency installation.
// The blocking dev-server launch is driven by the CLI layer.
package scaffold

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/forgeapi/forgeapi/internal/defs"
	"github.com/forgeapi/forgeapi/internal/manifest"
	"github.com/forgeapi/forgeapi/internal/npm"
	"github.com/forgeapi/forgeapi/internal/template"
	"github.com/forgeapi/forgeapi/pkg/version"
)

// Step names reported in outcomes.
const (
	StepScaffold = "scaffold"
	StepDeploy   = "templates"
	StepInit     = "manifest init"
	StepRewrite  = "manifest rewrite"
	StepInstall  = "install"
	StepUpdate   = "update"
	StepLaunch   = "dev server"
)

// Options configures a generation run.
type Options struct {
	ProjectName string // Validated folder name.
	ProjectRoot string // Absolute target directory. Derived from ProjectName when empty.
	Profile     string // Template profile name.
	SkipInstall bool   // Stop after the manifest rewrite.
	SkipUpdate  bool   // Skip the best-effort dependency-update step.
}

// StepOutcome records the result of one externally-visible step.
// Tolerated outcomes carry an error that did not abort the run.
type StepOutcome struct {
	Step      string
	Err       error
	Tolerated bool
}

// Failed reports whether the step ended in error, tolerated or not.
func (o StepOutcome) Failed() bool {
	return o.Err != nil
}

// Result summarizes a generation run.
type Result struct {
	ProjectRoot  string
	Profile      string
	CreatedDirs  []string
	CreatedFiles []string
	Outcomes     []StepOutcome
	Warnings     []string
}

// ProgressFunc receives step announcements for terminal feedback.
type ProgressFunc func(step, detail string)

// Generator runs the full scaffolding pass.
type Generator interface {
	Run(ctx context.Context, opts Options) (*Result, error)
}

type generator struct {
	profiles *template.Profiles
	deployer template.Deployer
	client   *npm.Client
	logger   *slog.Logger
	progress ProgressFunc
}

// GeneratorOption configures a generator.
type GeneratorOption func(*generator)

// WithLogger sets the generator's logger.
func WithLogger(l *slog.Logger) GeneratorOption {
	return func(g *generator) {
		g.logger = l
	}
}

// WithProgress sets a callback invoked before each step.
func WithProgress(fn ProgressFunc) GeneratorOption {
	return func(g *generator) {
		g.progress = fn
	}
}

// NewGenerator creates a Generator from its collaborators.
func NewGenerator(profiles *template.Profiles, deployer template.Deployer, client *npm.Client, opts ...GeneratorOption) Generator {
	g := &generator{
		profiles: profiles,
		deployer: deployer,
		client:   client,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		progress: func(string, string) {},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run executes the generation pass. The flow is strictly linear: any
// filesystem, manifest-parse, or mandatory-install error aborts the run,
// while the dependency-update step tolerates failure.
func (g *generator) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profile, err := g.profiles.Get(opts.Profile)
	if err != nil {
		return nil, err
	}

	root := opts.ProjectRoot
	if root == "" {
		root, err = filepath.Abs(opts.ProjectName)
		if err != nil {
			return nil, fmt.Errorf("resolve project path %q: %w", opts.ProjectName, err)
		}
	}

	g.logger.Info("generating project",
		"root", root,
		"profile", profile.Name,
		"manager", g.client.Manager(),
	)

	result := &Result{ProjectRoot: root, Profile: profile.Name}

	// Step 1: directory skeleton.
	g.progress(StepScaffold, "Creating project directories")
	if err := g.createDirs(root, result); err != nil {
		return nil, fmt.Errorf("scaffold %q: %w", root, err)
	}
	result.Outcomes = append(result.Outcomes, StepOutcome{Step: StepScaffold})

	// Step 2: template payloads.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.progress(StepDeploy, fmt.Sprintf("Writing %d template files", len(profile.Files)))
	tmplCtx := template.NewContext(opts.ProjectName, g.client.Manager(), version.GetVersion())
	written, err := g.deployer.Deploy(ctx, root, profile, tmplCtx)
	result.CreatedFiles = append(result.CreatedFiles, written...)
	if err != nil {
		return nil, fmt.Errorf("deploy templates: %w", err)
	}
	result.Outcomes = append(result.Outcomes, StepOutcome{Step: StepDeploy})

	// Step 3: package manifest via the external initializer, then rewrite.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.progress(StepInit, "Initializing package manifest")
	if err := g.client.Init(ctx, root); err != nil {
		return nil, err
	}
	result.Outcomes = append(result.Outcomes, StepOutcome{Step: StepInit})

	if err := manifest.Rewrite(root, manifest.Overrides{}); err != nil {
		return nil, err
	}
	result.CreatedFiles = append(result.CreatedFiles, defs.PackageJSON)
	result.Outcomes = append(result.Outcomes, StepOutcome{Step: StepRewrite})

	if opts.SkipInstall {
		return result, nil
	}

	// Step 4: mandatory dependency installation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.progress(StepInstall, fmt.Sprintf("Installing %d dependencies", len(profile.Dependencies)))
	if err := g.client.Install(ctx, root, profile.Dependencies, false); err != nil {
		return nil, err
	}
	g.progress(StepInstall, fmt.Sprintf("Installing %d dev dependencies", len(profile.DevDependencies)))
	if err := g.client.Install(ctx, root, profile.DevDependencies, true); err != nil {
		return nil, err
	}
	result.Outcomes = append(result.Outcomes, StepOutcome{Step: StepInstall})

	// Step 5: best-effort update to latest versions.
	if !opts.SkipUpdate {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.progress(StepUpdate, "Checking for dependency updates")
		if _, err := g.client.UpdateLatest(ctx, root); err != nil {
			result.Outcomes = append(result.Outcomes, StepOutcome{Step: StepUpdate, Err: err, Tolerated: true})
			result.Warnings = append(result.Warnings, fmt.Sprintf("dependency update skipped: %s", err))
			g.logger.Warn("dependency update failed", "error", err)
		} else {
			result.Outcomes = append(result.Outcomes, StepOutcome{Step: StepUpdate})
		}
	}

	g.logger.Info("project generated",
		"dirs", len(result.CreatedDirs),
		"files", len(result.CreatedFiles),
	)

	return result, nil
}

// createDirs creates the target directory and the fixed subdirectories.
func (g *generator) createDirs(root string, result *Result) error {
	if err := os.MkdirAll(root, defs.DirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", root, err)
	}
	for _, dir := range defs.ProjectDirs {
		dirPath := filepath.Join(root, dir)
		if err := os.MkdirAll(dirPath, defs.DirPerm); err != nil {
			return fmt.Errorf("mkdir %s: %w", dirPath, err)
		}
		result.CreatedDirs = append(result.CreatedDirs, dir)
	}
	return nil
}
