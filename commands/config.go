package commands

import (
	"fmt"

	"logingate/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the default configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.InitFile()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.NewConfigManager().Load()
				if err != nil {
					return err
				}
				if cfg.Provider.SupabaseKey != "" {
					cfg.Provider.SupabaseKey = "[REDACTED]"
				}
				data, err := yaml.Marshal(&cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				if err != nil {
					return err
				}
				if err := cfg.Validate(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "\nconfiguration problems:\n%v\n", err)
				}
				return nil
			},
		},
	)

	return cmd
}
