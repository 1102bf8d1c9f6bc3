package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgeapi/forgeapi/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "forgeapi",
	Short: "forgeapi: Express + MongoDB backend scaffolding",
	Long: `forgeapi generates a ready-to-run Node.js REST API backend:
an Express server with routes, controllers, middleware, a MongoDB
connector, and JWT auth, wired together with npm scripts.

It creates the project folder, writes the template files, rewrites
package.json, installs dependencies, and can start the dev server.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), renderError(err))
		return err
	}
	return nil
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("forgeapi %s\n", version.GetVersion()))
}
