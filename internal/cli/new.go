package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/forgeapi/forgeapi/internal/cli/wizard"
	"github.com/forgeapi/forgeapi/internal/config"
	"github.com/forgeapi/forgeapi/internal/defs"
	"github.com/forgeapi/forgeapi/internal/npm"
	"github.com/forgeapi/forgeapi/internal/scaffold"
	"github.com/forgeapi/forgeapi/internal/template"
	"github.com/forgeapi/forgeapi/internal/ui"
	"github.com/forgeapi/forgeapi/pkg/version"
)

// newClientFactory creates the package-manager client for a run.
// Tests replace it with a factory returning a fake-runner client.
var newClientFactory = func(manager string) *npm.Client {
	return npm.NewClient(manager, npm.WithLogger(slog.Default()))
}

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Generate a new Express + MongoDB backend",
	Long: `Generate a new Express + MongoDB backend project.

Usage patterns:
  forgeapi new my-api        Create ./my-api/ and generate inside it
  forgeapi new               Prompt for the folder name (default: server)

The generated project is immediately runnable: forgeapi initializes
package.json, installs dependencies, and starts the dev server unless
--no-launch is given.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateNewFlags,
	RunE:    runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("profile", "", "Template profile: full or minimal (default from config)")
	newCmd.Flags().String("package-manager", "", "Package manager: npm, pnpm, or yarn (default from config)")
	newCmd.Flags().Bool("skip-install", false, "Stop after rewriting package.json")
	newCmd.Flags().Bool("skip-update", false, "Skip the best-effort dependency update step")
	newCmd.Flags().Bool("no-launch", false, "Do not start the dev server")
	newCmd.Flags().BoolP("yes", "y", false, "Non-interactive; use flags and defaults")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// validateNewFlags validates flag values before execution.
func validateNewFlags(cmd *cobra.Command, _ []string) error {
	manager := getStringFlag(cmd, "package-manager")
	if manager != "" {
		valid := []string{npm.ManagerNPM, npm.ManagerPNPM, npm.ManagerYarn}
		if !slices.Contains(valid, manager) {
			return fmt.Errorf("invalid --package-manager value %q: must be one of: npm, pnpm, yarn", manager)
		}
	}
	return nil
}

// runNew executes the generation workflow.
func runNew(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// User config is advisory; fall back to defaults when unavailable.
	settings := &config.Settings{
		PackageManager: config.DefaultPackageManager,
		DefaultProfile: config.DefaultProfile,
	}
	if dir, err := config.Dir(); err == nil {
		if loaded, err := config.Load(dir); err == nil {
			settings = loaded
		} else {
			_, _ = fmt.Fprintln(out, cliWarn.Render(fmt.Sprintf("Warning: config not loaded: %v", err)))
		}
	}

	profiles, err := template.LoadProfiles()
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}

	rawName := ""
	if len(args) > 0 {
		rawName = args[0]
	}
	profileName := getStringFlag(cmd, "profile")
	nonInteractive := getBoolFlag(cmd, "yes")

	if rawName == "" && !nonInteractive && isatty.IsTerminal(os.Stdin.Fd()) {
		printBanner(version.GetVersion())

		descs := make(map[string]string)
		for _, name := range profiles.Names() {
			if p, err := profiles.Get(name); err == nil {
				descs[name] = p.Description
			}
		}
		result, err := wizard.Run(wizard.DefaultQuestions(profiles.Names(), descs, settings.DefaultProfile))
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "Generation cancelled.")
				return nil
			}
			return fmt.Errorf("wizard failed: %w", err)
		}
		rawName = result.ProjectName
		if profileName == "" {
			profileName = result.Profile
		}
	}

	projectName, err := scaffold.ResolveProjectName(rawName)
	if err != nil {
		return err
	}
	if profileName == "" {
		profileName = settings.DefaultProfile
	}

	manager := getStringFlag(cmd, "package-manager")
	if manager == "" {
		manager = settings.PackageManager
	}

	payloads, err := template.Payloads()
	if err != nil {
		return fmt.Errorf("load embedded templates: %w", err)
	}

	client := newClientFactory(manager)
	deployer := template.NewDeployer(payloads)

	reporter := newStepReporter(out)
	defer reporter.Close()

	gen := scaffold.NewGenerator(profiles, deployer, client,
		scaffold.WithLogger(slog.Default()),
		scaffold.WithProgress(reporter.Report),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := gen.Run(ctx, scaffold.Options{
		ProjectName: projectName,
		Profile:     profileName,
		SkipInstall: getBoolFlag(cmd, "skip-install"),
		SkipUpdate:  getBoolFlag(cmd, "skip-update") || settings.SkipUpdate,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	reporter.Close()

	details := []string{
		renderKeyValueLines([]kvPair{
			{"Project", projectName},
			{"Profile", result.Profile},
			{"Directories", fmt.Sprintf("%d created", len(result.CreatedDirs))},
			{"Files", fmt.Sprintf("%d created", len(result.CreatedFiles))},
		}),
	}
	for _, w := range result.Warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard("Backend project generated", details...))

	if getBoolFlag(cmd, "no-launch") || getBoolFlag(cmd, "skip-install") {
		previewReadme(cmd, result.ProjectRoot)
		printNextSteps(cmd, projectName, manager)
		return nil
	}

	return launchDev(cmd, client, result.ProjectRoot, projectName, manager)
}

// launchDev starts the generated project's dev script, blocking until it
// exits. An interrupted or crashed dev server is the designed exit path:
// the error is reported with restart instructions and swallowed.
func launchDev(cmd *cobra.Command, client *npm.Client, projectRoot, projectName, manager string) error {
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, cliPrimary.Render("Starting dev server")+cliMuted.Render(" (Ctrl-C to stop)"))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := client.RunScript(ctx, projectRoot, "dev"); err != nil {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, cliMuted.Render("Dev server stopped."))
		printNextSteps(cmd, projectName, manager)
	}
	return nil
}

// printNextSteps prints the manual start instructions.
func printNextSteps(cmd *cobra.Command, projectName, manager string) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderKeyValueLines([]kvPair{
		{"Start the server", fmt.Sprintf("cd %s && %s run dev", projectName, manager)},
		{"Configuration", filepath.Join(projectName, defs.EnvFile)},
	}))
}

// previewReadme renders the generated README to the terminal.
func previewReadme(cmd *cobra.Command, projectRoot string) {
	out := cmd.OutOrStdout()

	data, err := os.ReadFile(filepath.Join(projectRoot, defs.ReadmeMD))
	if err != nil {
		return
	}

	rendered, err := glamour.Render(string(data), "auto")
	if err != nil {
		return
	}
	_, _ = fmt.Fprint(out, rendered)
}

// stepReporter prints step announcements and keeps a spinner alive for
// the captured-output dependency-update step.
type stepReporter struct {
	out     io.Writer
	spinner ui.Spinner
}

func newStepReporter(out io.Writer) *stepReporter {
	return &stepReporter{out: out}
}

// Report announces a step. The update step runs with captured subprocess
// output, so it gets a spinner; every other step inherits the terminal
// and only gets a heading line.
func (r *stepReporter) Report(step, detail string) {
	r.Close()
	if step == scaffold.StepUpdate {
		r.spinner = ui.NewSpinner(detail)
		return
	}
	_, _ = fmt.Fprintln(r.out, cliPrimary.Render("→ ")+detail)
}

// Close stops any running spinner.
func (r *stepReporter) Close() {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
}
