package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kastheco/feedr/config"
	"github.com/kastheco/feedr/internal/initcmd/wizard"
)

// Options holds the CLI flags for feedr setup.
type Options struct {
	Force bool // overwrite an existing sidebar.toml
	Clean bool // ignore existing config, start with factory defaults
}

// Result describes one file written (or skipped) by Apply.
type Result struct {
	Path    string
	Created bool
}

// Run executes the feedr setup workflow.
func Run(opts Options) error {
	var existing *config.Config
	if !opts.Clean {
		existing = config.LoadConfig()
	}

	state, err := wizard.Run(existing)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	fmt.Println(state.Summary())
	fmt.Println("\nWriting config...")
	results, err := Apply(state, existing, opts)
	if err != nil {
		return err
	}
	for _, r := range results {
		status := "OK"
		if !r.Created {
			status = "SKIP (exists, use --force)"
		}
		fmt.Printf("  %-50s %s\n", r.Path, status)
	}

	fmt.Println("\nDone! Run 'feedr' to start.")
	return nil
}

// Apply writes config.json and, when requested, a sample sidebar.toml. An
// existing sidebar file is only replaced with opts.Force.
func Apply(state *wizard.State, existing *config.Config, opts Options) ([]Result, error) {
	cfg := state.ToConfig(existing)
	if err := config.SaveConfig(cfg); err != nil {
		return nil, fmt.Errorf("save config: %w", err)
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	results := []Result{{Path: filepath.Join(dir, config.ConfigFileName), Created: true}}

	if !state.WriteSidebar {
		return results, nil
	}
	path, err := cfg.SidebarPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil && !opts.Force {
		return append(results, Result{Path: path}), nil
	}
	sc := state.ToSidebarConfig()
	// Validate before writing so setup never leaves an unloadable file.
	if _, err := sc.Build(path); err != nil {
		return nil, fmt.Errorf("sample sidebar: %w", err)
	}
	if err := config.SaveSidebar(path, sc); err != nil {
		return nil, fmt.Errorf("save sidebar: %w", err)
	}
	return append(results, Result{Path: path, Created: true}), nil
}
