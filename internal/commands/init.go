package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/config"
	"github.com/budgetbook-dev/budgetbook/internal/store"
)

func newInitCommand(configPath *string) *cobra.Command {
	var storePath string
	var symbol string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and create the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if storePath != "" {
				cfg.Store.Path = storePath
			}
			if symbol != "" {
				cfg.Display.CurrencySymbol = symbol
			}

			if err := config.Save(*configPath, cfg); err != nil {
				return err
			}

			st, err := store.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", *configPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Store ready at %s\n", cfg.Store.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "override the store database path")
	cmd.Flags().StringVar(&symbol, "currency-symbol", "", "currency symbol for display")

	return cmd
}
