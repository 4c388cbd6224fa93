package wizard

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/feedr/config"
)

// State holds all wizard-collected values.
type State struct {
	Username         string
	TelemetryEnabled bool
	AuditLogEnabled  bool
	// MetricsAddr is empty when the Prometheus endpoint is disabled.
	MetricsAddr string

	// WriteSidebar controls whether a sample sidebar.toml is written.
	WriteSidebar bool
	// Groups are the sample feed groups to keep, in display order.
	Groups []string
}

// DefaultState pre-populates the wizard from an existing config, or from
// factory defaults when existing is nil.
func DefaultState(existing *config.Config) *State {
	if existing == nil {
		existing = config.DefaultConfig()
	}
	s := &State{
		Username:         existing.Username,
		TelemetryEnabled: existing.IsTelemetryEnabled(),
		AuditLogEnabled:  existing.IsAuditLogEnabled(),
		MetricsAddr:      existing.MetricsAddr,
		WriteSidebar:     true,
	}
	for _, g := range config.DefaultSidebar().Feeds {
		s.Groups = append(s.Groups, g.Title)
	}
	return s
}

// Run shows the setup form and returns the collected state.
func Run(existing *config.Config) (*State, error) {
	state := DefaultState(existing)

	var groupOptions []huh.Option[string]
	for _, g := range config.DefaultSidebar().Feeds {
		groupOptions = append(groupOptions, huh.NewOption(g.Title, g.Title).Selected(true))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("feedr setup").
				Description("Writes ~/.config/feedr/config.json and a sample sidebar.toml."),
			huh.NewInput().
				Title("Username").
				Prompt(inputPrompt).
				Description("Shown on the account button at the bottom of the sidebar.").
				Value(&state.Username).
				Validate(ValidateUsername),
			huh.NewConfirm().
				Title("Send crash reports?").
				Value(&state.TelemetryEnabled),
			huh.NewConfirm().
				Title("Record sidebar activity in the audit log?").
				Value(&state.AuditLogEnabled),
			huh.NewInput().
				Title("Metrics address").
				Prompt(inputPrompt).
				Description("host:port for the Prometheus endpoint. Leave empty to disable.").
				Placeholder("127.0.0.1:9464").
				Value(&state.MetricsAddr).
				Validate(ValidateMetricsAddr),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Write a sample sidebar.toml?").
				Value(&state.WriteSidebar),
			huh.NewMultiSelect[string]().
				Title("Feed groups").
				Description("The first selected group starts expanded.").
				Options(groupOptions...).
				Value(&state.Groups),
		),
	).WithTheme(formTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, fmt.Errorf("wizard cancelled")
		}
		return nil, err
	}
	state.Username = strings.TrimSpace(state.Username)
	state.MetricsAddr = strings.TrimSpace(state.MetricsAddr)
	return state, nil
}

// ValidateUsername rejects blank names.
func ValidateUsername(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("username is required")
	}
	return nil
}

// ValidateMetricsAddr accepts an empty string or a host:port pair.
func ValidateMetricsAddr(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, port, err := net.SplitHostPort(s); err != nil || port == "" {
		return fmt.Errorf("metrics address must be host:port")
	}
	return nil
}

// ToConfig applies the wizard state on top of base. Fields the wizard does
// not ask about are preserved.
func (s *State) ToConfig(base *config.Config) *config.Config {
	cfg := config.DefaultConfig()
	if base != nil {
		copied := *base
		cfg = &copied
	}
	telemetry := s.TelemetryEnabled
	audit := s.AuditLogEnabled
	cfg.Username = s.Username
	cfg.TelemetryEnabled = &telemetry
	cfg.AuditLogEnabled = &audit
	cfg.MetricsAddr = s.MetricsAddr
	return cfg
}

// ToSidebarConfig returns the built-in sidebar restricted to the selected
// groups. Groups keep their built-in order.
func (s *State) ToSidebarConfig() *config.SidebarConfig {
	keep := make(map[string]bool, len(s.Groups))
	for _, g := range s.Groups {
		keep[g] = true
	}
	sc := config.DefaultSidebar()
	feeds := sc.Feeds[:0]
	for _, g := range sc.Feeds {
		if keep[g.Title] {
			feeds = append(feeds, g)
		}
	}
	sc.Feeds = feeds
	return sc
}

// Summary renders the collected settings as a card.
func (s *State) Summary() string {
	onOff := func(b bool) string {
		if b {
			return onStyle.Render("on")
		}
		return mutedStyle.Render("off")
	}
	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-12s", label)) + value
	}

	metrics := mutedStyle.Render("disabled")
	if s.MetricsAddr != "" {
		metrics = valueStyle.Render(s.MetricsAddr)
	}

	var groups string
	switch {
	case !s.WriteSidebar:
		groups = mutedStyle.Render("keep existing")
	case len(s.Groups) == 0:
		groups = mutedStyle.Render("none")
	default:
		parts := make([]string, 0, len(s.Groups))
		for _, g := range s.ToSidebarConfig().Feeds {
			if len(parts) == 0 {
				parts = append(parts, valueStyle.Render(g.Title)+firstTagStyle.Render("*"))
				continue
			}
			parts = append(parts, valueStyle.Render(g.Title))
		}
		groups = strings.Join(parts, ", ")
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("feedr"),
		"",
		row("username", valueStyle.Render(s.Username)),
		row("telemetry", onOff(s.TelemetryEnabled)),
		row("audit log", onOff(s.AuditLogEnabled)),
		row("metrics", metrics),
		row("feeds", groups),
	))
}
