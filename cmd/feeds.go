package cmd

import (
	"fmt"
	"strings"

	"github.com/kastheco/feedr/config"
	"github.com/kastheco/feedr/navigation/accordion"
	"github.com/kastheco/feedr/ui"
	"github.com/spf13/cobra"
)

// resolveSidebarPath returns the --sidebar flag when set, otherwise the path
// from config.json.
func resolveSidebarPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	return config.LoadConfig().SidebarPath()
}

// executeFeedsList returns the primary views followed by the feed groups in
// display order. The group the sidebar opens with is marked with '*'.
// Exported for testing without cobra plumbing.
func executeFeedsList(sb *config.Sidebar) string {
	var b strings.Builder
	source := sb.Source
	if source == "" {
		source = "built-in sidebar"
	}
	fmt.Fprintf(&b, "# %s\n", source)

	b.WriteString("views:\n")
	for _, e := range sb.Catalog.Entries() {
		line := fmt.Sprintf("  %s %-20s %s", ui.NavIcon(e.Icon), e.Label, e.Target)
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}

	b.WriteString("feeds:\n")
	if sb.Tree.IsEmpty() {
		b.WriteString("  (none)\n")
		return b.String()
	}
	initial := accordion.Initial(sb.Tree)
	for _, g := range sb.Tree.Groups() {
		marker := " "
		if initial.Is(g.Title) {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-20s %d\n", marker, g.Title, g.Len())
	}
	return b.String()
}

// executeFeedsValidate loads and builds the sidebar at path and reports the
// number of feed groups. Duplicate titles and empty labels are returned as
// errors.
func executeFeedsValidate(path string) (string, error) {
	sb, err := config.LoadSidebar(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ok: %d groups\n", sb.Tree.Len()), nil
}

// NewFeedsCmd returns the `feeds` command group.
func NewFeedsCmd() *cobra.Command {
	feedsCmd := &cobra.Command{
		Use:   "feeds",
		Short: "inspect the sidebar configuration (list, validate)",
	}

	var sidebarFlag string
	feedsCmd.PersistentFlags().StringVar(&sidebarFlag, "sidebar", "", "path to sidebar.toml (default from config)")

	// feedr feeds list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list views and feed groups in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSidebarPath(sidebarFlag)
			if err != nil {
				return err
			}
			sb, err := config.LoadSidebar(path)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), executeFeedsList(sb))
			return nil
		},
	}
	feedsCmd.AddCommand(listCmd)

	// feedr feeds validate
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "check sidebar.toml for empty labels and duplicate group titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSidebarPath(sidebarFlag)
			if err != nil {
				return err
			}
			out, err := executeFeedsValidate(path)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	feedsCmd.AddCommand(validateCmd)

	return feedsCmd
}
