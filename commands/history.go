package commands

import (
	"fmt"
	"io"
	"strconv"

	"logingate/config"
	"logingate/tracing"
	"logingate/tui/components/history"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded login attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfigManager().Load()
			if err != nil {
				return err
			}
			if !cfg.Tracing.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Tracing is disabled; no history is recorded.")
				return nil
			}
			records, err := tracing.LoadAttempts(cfg.Tracing.LocalDir, limit)
			if err != nil {
				return err
			}
			return renderHistory(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of attempts to show (0 for all)")
	return cmd
}

// renderHistory writes records as a table
func renderHistory(w io.Writer, records []tracing.AttemptRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No attempts recorded yet.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("When", "Login", "Attempt", "Result", "Took")
	for _, r := range records {
		row := []string{
			r.At.Format("2006-01-02 15:04:05"),
			r.Login,
			strconv.Itoa(r.Attempt),
			history.Result(r),
			r.Duration.String(),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
