// Command hcctl manages named clusters from the command line, using the same
// registry and configuration directories as the server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hadoop-cluster-backend/internal/app"
	"hadoop-cluster-backend/internal/config"
	"hadoop-cluster-backend/internal/pkg/logger"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "hcctl",
		Short:         "Manage Hadoop named cluster configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log service activity")

	withApp := func(run func(ctx context.Context, a *app.App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			appLogger := logger.NewNopLogger()
			if verbose {
				appLogger = logger.NewLogger(cfg.Logging)
			}
			a, err := app.New(cmd.Context(), cfg, appLogger)
			if err != nil {
				return err
			}
			defer a.Close()
			return run(cmd.Context(), a, args)
		}
	}

	rootCmd.AddCommand(
		newListCmd(withApp),
		newGetCmd(withApp),
		newDeleteCmd(withApp),
		newImportCmd(withApp),
		newShimsCmd(withApp),
		newTestCmd(withApp),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
