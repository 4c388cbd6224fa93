package main

import (
	"errors"
	"fmt"

	"github.com/kastheco/feedr/config"
	"github.com/kastheco/feedr/internal/check"
	"github.com/spf13/cobra"
)

// errUnhealthy is returned when health < 100% to signal exit code 1 without printing a message.
var errUnhealthy = errors.New("unhealthy")

func newCheckCmd() *cobra.Command {
	var sidebarPath string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check config, sidebar, audit log and metrics settings",
		Long: `Checks everything feedr reads at startup:

  1. Config      (~/.config/feedr/config.json)
  2. Sidebar     (sidebar.toml: empty labels, duplicate group titles)
  3. Audit log   (SQLite database)
  4. Metrics     (metrics_addr)

Exit code 0 if nothing fails, exit code 1 otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, sidebarPath)
		},
		// Health failures are not usage errors.
		SilenceUsage: true,
		// Suppress cobra's "Error: ..." line for the unhealthy sentinel.
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&sidebarPath, "sidebar", "", "path to sidebar.toml (default from config)")
	return cmd
}

func runCheck(cmd *cobra.Command, sidebarPath string) error {
	cfg := config.LoadConfig()
	configDir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	if sidebarPath == "" {
		if sidebarPath, err = cfg.SidebarPath(); err != nil {
			return err
		}
	}
	auditPath, err := config.AuditDBPath()
	if err != nil {
		return err
	}

	result := check.Audit(check.Inputs{
		ConfigDir:   configDir,
		Config:      cfg,
		SidebarPath: sidebarPath,
		AuditDBPath: auditPath,
	})

	out := cmd.OutOrStdout()
	for _, it := range result.Items {
		fmt.Fprintf(out, "  %s %-12s %s\n", statusGlyph(it.Status), it.Name, it.Detail)
	}

	ok, total := result.Summary()
	pct := 0
	if total > 0 {
		pct = ok * 100 / total
	}

	fmt.Fprintf(out, "\nHealth: %d/%d OK (%d%%)\n", ok, total, pct)

	if pct < 100 {
		return errUnhealthy
	}
	return nil
}

func statusGlyph(s check.Status) string {
	switch s {
	case check.StatusOK:
		return "✓"
	case check.StatusWarn:
		return "⊘"
	default:
		return "✗"
	}
}
