package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/forgeapi/forgeapi/internal/template"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List template profiles",
	Long:  "List the available template profiles and the files each one generates.",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	profiles, err := template.LoadProfiles()
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}

	title := cases.Title(language.English)
	for _, name := range profiles.Names() {
		p, err := profiles.Get(name)
		if err != nil {
			return err
		}

		header := cliPrimary.Bold(true).Render(title.String(name)) + " " + cliMuted.Render("("+name+")")
		_, _ = fmt.Fprintln(out, header)
		_, _ = fmt.Fprintln(out, "  "+p.Description)
		_, _ = fmt.Fprintln(out, cliMuted.Render(fmt.Sprintf("  %d files, %d dependencies, %d dev dependencies",
			len(p.Files), len(p.Dependencies), len(p.DevDependencies))))
		for _, fm := range p.Files {
			_, _ = fmt.Fprintln(out, "    "+fm.Dest)
		}
		_, _ = fmt.Fprintln(out)
	}
	return nil
}
