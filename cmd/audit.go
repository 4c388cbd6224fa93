package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kastheco/feedr/config"
	"github.com/kastheco/feedr/config/auditlog"
	"github.com/spf13/cobra"
)

// executeAudit returns the newest audit events, one per line, optionally
// restricted to a single kind. Exported for testing without cobra plumbing.
func executeAudit(logger auditlog.Logger, limit int, kind string) (string, error) {
	filter := auditlog.QueryFilter{Limit: limit}
	if kind != "" {
		k, ok := auditlog.ParseKind(kind)
		if !ok {
			names := make([]string, 0, len(auditlog.AllKinds()))
			for _, k := range auditlog.AllKinds() {
				names = append(names, k.String())
			}
			return "", fmt.Errorf("unknown event kind %q (want one of: %s)", kind, strings.Join(names, ", "))
		}
		filter.Kinds = []auditlog.EventKind{k}
	}

	events, err := logger.Query(filter)
	if err != nil {
		return "", fmt.Errorf("query audit log: %w", err)
	}
	if len(events) == 0 {
		return "no audit events\n", nil
	}

	var b strings.Builder
	for _, e := range events {
		subject := e.Group
		if e.Entry != "" {
			if subject != "" {
				subject += " › "
			}
			subject += e.Entry
		}
		if subject == "" {
			subject = "-"
		}
		line := fmt.Sprintf("%s  %-5s %-16s %-24s %s",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Level, e.Kind, subject, e.Message)
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return b.String(), nil
}

// NewAuditCmd returns the `audit` command.
func NewAuditCmd() *cobra.Command {
	var (
		limit int
		kind  string
	)
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "show recent sidebar events, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.AuditDBPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "no audit events")
				return nil
			}
			logger, err := auditlog.NewSQLiteLogger(path)
			if err != nil {
				return err
			}
			defer logger.Close()

			out, err := executeAudit(logger, limit, kind)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	auditCmd.Flags().IntVar(&limit, "limit", 20, "maximum number of events (at most 500)")
	auditCmd.Flags().StringVar(&kind, "kind", "", "only show events of this kind (e.g. group_expanded)")
	return auditCmd
}
