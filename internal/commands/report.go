package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/report"
)

func newReportCommand(configPath *string) *cobra.Command {
	var tabRef string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the tab's summary card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			tabID, err := e.resolveTab(tabRef)
			if err != nil {
				return err
			}
			led, err := e.ledgers.Get(tabID)
			if err != nil {
				return err
			}
			report.RenderSummary(cmd.OutOrStdout(), led, e.cfg.Display.CurrencySymbol)
			return nil
		},
	}

	dailyCmd := &cobra.Command{
		Use:   "daily",
		Short: "Show per-day spend by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			tabID, err := e.resolveTab(tabRef)
			if err != nil {
				return err
			}
			series, err := e.reports.DailySeries(tabID)
			if err != nil {
				return err
			}
			symbol := e.cfg.Display.CurrencySymbol
			for i, date := range series.Labels {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", date)
				for _, ds := range series.Datasets {
					if ds.Data[i].IsZero() {
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %s%s\n", ds.Label, symbol, ds.Data[i])
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&tabRef, "tab", "", tabFlagUsage())
	cmd.AddCommand(dailyCmd)
	return cmd
}
