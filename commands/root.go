// Package commands wires configuration, providers, tracing and the user
// interfaces into the logingate command line.
package commands

import (
	"fmt"

	"logingate/config"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagHeadless bool
)

// NewRootCmd creates the root command. Without a subcommand it runs the
// login form.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "logingate",
		Short:   "Login form with a lockout after failed attempts",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagConfig != "" {
				config.ConfigFilePath = flagConfig
			}
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			app, err := newApp(version)
			if err != nil {
				return err
			}
			defer func() {
				if trackErr := app.tracker.Err(); trackErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: event trail incomplete: %v\n", trackErr)
				}
				if closeErr := app.Close(); closeErr != nil && err == nil {
					err = fmt.Errorf("failed to close event trail: %w", closeErr)
				}
			}()

			if flagHeadless {
				return app.RunHeadless(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return app.RunTUI(cmd.Context())
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.logingate/config.yml)")
	root.Flags().BoolVar(&flagHeadless, "headless", false, "Read logins from stdin instead of running the TUI")

	root.AddCommand(
		newHistoryCmd(),
		newConfigCmd(),
	)

	return root
}
