package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kastheco/feedr/app"
	cmd2 "github.com/kastheco/feedr/cmd"
	"github.com/kastheco/feedr/config"
	initcmd "github.com/kastheco/feedr/internal/initcmd"
	sentrypkg "github.com/kastheco/feedr/internal/sentry"
	"github.com/kastheco/feedr/log"
	"github.com/spf13/cobra"
)

var (
	version     = "0.1.0"
	expandFlag  string
	sidebarFlag string
	rootCmd     = &cobra.Command{
		Use:   "feedr",
		Short: "feedr - a feed reader sidebar for the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg := config.LoadConfig()
			defer startLogging(cfg)()
			defer sentrypkg.RecoverPanic()

			// Sidebar flag overrides config
			sidebarPath := sidebarFlag
			if sidebarPath == "" {
				p, err := cfg.SidebarPath()
				if err != nil {
					return err
				}
				sidebarPath = p
			}

			sentrypkg.SetContext(cfg.Username, countGroups(sidebarPath), sidebarFlag != "" || cfg.SidebarFile != "")

			return app.Run(ctx, cfg, sidebarPath, expandFlag)
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			sidebarPath, err := cfg.SidebarPath()
			if err != nil {
				return err
			}
			auditPath, err := config.AuditDBPath()
			if err != nil {
				return err
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Fprintf(out, "Sidebar: %s\n", sidebarPath)
			fmt.Fprintf(out, "Audit log: %s\n", auditPath)
			fmt.Fprintf(out, "Log file: %s\n", log.LogPath())

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of feedr",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "feedr version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "https://github.com/kastheco/feedr/releases/tag/v%s\n", version)
		},
	}
)

// sentryInit is swapped out in tests.
var sentryInit = sentrypkg.Init

// startLogging sets up crash reporting and the log file. A Sentry failure is
// logged and does not stop startup. The returned func flushes and closes both.
func startLogging(cfg *config.Config) func() {
	sentryErr := sentryInit(version, cfg.IsTelemetryEnabled())
	log.Initialize(cfg.IsTelemetryEnabled())
	if sentryErr != nil {
		log.WarningLog.Printf("sentry disabled: %v", sentryErr)
	}
	return func() {
		log.Close()
		sentrypkg.Flush()
	}
}

// countGroups reports the number of feed groups for crash context. Load
// errors are left for app.Run to surface.
func countGroups(path string) int {
	sb, err := config.LoadSidebar(path)
	if err != nil {
		return 0
	}
	return sb.Tree.Len()
}

func init() {
	rootCmd.Flags().StringVarP(&expandFlag, "expand", "e", "",
		"Feed group to open at startup instead of the first one")
	rootCmd.Flags().StringVar(&sidebarFlag, "sidebar", "",
		"Path to sidebar.toml (default ~/.config/feedr/sidebar.toml)")

	var forceFlag bool
	var cleanFlag bool

	setupCmd := &cobra.Command{
		Use:     "setup",
		Aliases: []string{"init"},
		Short:   "Configure feedr and write a sample sidebar",
		Long: `Run an interactive wizard to:
  1. Set the account name shown in the sidebar
  2. Toggle crash reports, the audit log and the metrics endpoint
  3. Pick the sample feed groups
  4. Write ~/.config/feedr/config.json and sidebar.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initcmd.Run(initcmd.Options{
				Force: forceFlag,
				Clean: cleanFlag,
			})
		},
	}

	setupCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing sidebar.toml")
	setupCmd.Flags().BoolVar(&cleanFlag, "clean", false, "Ignore existing config, start with factory defaults")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(cmd2.NewFeedsCmd())
	rootCmd.AddCommand(cmd2.NewAuditCmd())
	rootCmd.AddCommand(newCheckCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errUnhealthy) {
			os.Exit(1)
		}
		fmt.Println(err)
		os.Exit(1)
	}
}
