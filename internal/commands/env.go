package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/config"
	"github.com/budgetbook-dev/budgetbook/internal/ledger"
	"github.com/budgetbook-dev/budgetbook/internal/report"
	"github.com/budgetbook-dev/budgetbook/internal/store"
	"github.com/budgetbook-dev/budgetbook/internal/tabs"
)

// env wires the config, store, and services a command needs.
type env struct {
	cfg     *config.Config
	store   *store.Store
	tabs    *tabs.Service
	ledgers *ledger.Service
	reports *report.Service
}

func openEnv(configPath string) (*env, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	ledgers := ledger.NewService(st)
	return &env{
		cfg:     cfg,
		store:   st,
		tabs:    tabs.NewService(st),
		ledgers: ledgers,
		reports: report.NewService(ledgers),
	}, nil
}

func (e *env) close() {
	_ = e.store.Close()
}

// resolveTab turns a --tab value (tab ID or month-year label) into a tab ID,
// falling back to the active selection, then to the first tab in order.
func (e *env) resolveTab(ref string) (string, error) {
	if ref != "" {
		if t, ok, err := e.tabs.Get(ref); err != nil {
			return "", err
		} else if ok {
			return t.ID, nil
		}
		if t, ok, err := e.tabs.GetByMonthYear(ref); err != nil {
			return "", err
		} else if ok {
			return t.ID, nil
		}
		return "", fmt.Errorf("no tab %q", ref)
	}

	active, err := e.tabs.Active()
	if err != nil {
		return "", err
	}
	if active != "" {
		if _, ok, err := e.tabs.Get(active); err != nil {
			return "", err
		} else if ok {
			return active, nil
		}
	}

	all, err := e.tabs.List()
	if err != nil {
		return "", err
	}
	if len(all) == 0 {
		return "", fmt.Errorf("no tabs exist yet; create one with 'budgetbook tab add'")
	}
	return all[0].ID, nil
}

// confirmOverage prints the guard's report and asks for a yes/no decision.
func confirmOverage(cmd *cobra.Command, ov *ledger.Overage, symbol string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: budget will be exceeded by %s%s (spent %s%s of %s%s)\n",
		ov.Category, symbol, ov.Over, symbol, ov.CurrentTotal, symbol, ov.Budget)
	fmt.Fprint(cmd.OutOrStdout(), "Do you want to continue? [y/N]: ")

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func tabFlagUsage() string {
	return "tab to operate on (ID or label like January-2025); defaults to the selected tab"
}
