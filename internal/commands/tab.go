package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTabCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tab",
		Short: "Manage monthly tabs",
	}
	cmd.AddCommand(newTabAddCommand(configPath))
	cmd.AddCommand(newTabListCommand(configPath))
	cmd.AddCommand(newTabDeleteCommand(configPath))
	cmd.AddCommand(newTabSelectCommand(configPath))
	return cmd
}

func newTabAddCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <month> <year>",
		Short: "Create a tab for a month, e.g. 'tab add January 2025'",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[1])
			}

			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			tab, err := e.tabs.Create(args[0], year)
			if err != nil {
				return err
			}
			// A freshly created tab becomes the selection, as in the UI.
			if err := e.tabs.SetActive(tab.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", tab.MonthYear, tab.ID)
			return nil
		},
	}
}

func newTabListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tabs in calendar order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			all, err := e.tabs.List()
			if err != nil {
				return err
			}
			active, err := e.tabs.Active()
			if err != nil {
				return err
			}
			for _, t := range all {
				marker := " "
				if t.ID == active {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-16s %s\n", marker, t.MonthYear, t.ID)
			}
			return nil
		},
	}
}

func newTabDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tab>",
		Short: "Delete a tab and its ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			tabID, err := e.resolveTab(args[0])
			if err != nil {
				return err
			}
			if err := e.tabs.Delete(tabID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", tabID)
			return nil
		},
	}
}

func newTabSelectCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "select <tab>",
		Short: "Make a tab the default for other commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			tabID, err := e.resolveTab(args[0])
			if err != nil {
				return err
			}
			if err := e.tabs.SetActive(tabID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected %s\n", tabID)
			return nil
		},
	}
}
