package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kastheco/feedr/config"
	"github.com/kastheco/feedr/config/auditlog"
	"github.com/kastheco/feedr/internal/metrics"
	"github.com/kastheco/feedr/log"
	"github.com/kastheco/feedr/navigation"
	"github.com/kastheco/feedr/navigation/accordion"
	"github.com/kastheco/feedr/navigation/usermenu"
	"github.com/kastheco/feedr/ui"
	"github.com/kastheco/feedr/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// activityLimit is how many recent audit events the activity pane shows.
const activityLimit = 50

// Run is the main entrypoint into the application. It loads the sidebar from
// sidebarPath, applies the optional initial expansion and runs the TUI. When
// cfg.MetricsAddr is set the Prometheus endpoint is served alongside it.
func Run(ctx context.Context, cfg *config.Config, sidebarPath, expand string) error {
	sb, err := config.LoadSidebar(sidebarPath)
	if err != nil {
		return fmt.Errorf("load sidebar: %w", err)
	}

	auditLogger := openAuditLogger(cfg)
	defer func() {
		if err := auditLogger.Close(); err != nil {
			log.WarningLog.Printf("close audit log: %v", err)
		}
	}()

	reg := prometheus.NewRegistry()
	h, err := newHome(ctx, Options{
		Config:      cfg,
		Sidebar:     sb,
		SidebarPath: sidebarPath,
		Expand:      expand,
		AuditLogger: auditLogger,
		Metrics:     metrics.NewRecorder(reg),
	})
	if err != nil {
		return err
	}

	// Set the terminal's default background to the theme base color so every
	// ANSI reset and unstyled cell falls back to it instead of black.
	restore := ui.SetTerminalBackground(string(ui.ColorBase))
	defer restore()

	zone.NewGlobal()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		p := tea.NewProgram(
			h,
			tea.WithAltScreen(),
			tea.WithMouseAllMotion(),
			tea.WithContext(gctx),
		)
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			log.InfoLog.Printf("serving metrics on %s", cfg.MetricsAddr)
			return metrics.Serve(gctx, cfg.MetricsAddr, reg)
		})
	}
	return g.Wait()
}

func openAuditLogger(cfg *config.Config) auditlog.Logger {
	if !cfg.IsAuditLogEnabled() {
		return auditlog.NopLogger()
	}
	path, err := config.AuditDBPath()
	if err != nil {
		log.WarningLog.Printf("audit log disabled: %v", err)
		return auditlog.NopLogger()
	}
	l, err := auditlog.NewSQLiteLogger(path)
	if err != nil {
		log.WarningLog.Printf("audit log disabled: %v", err)
		return auditlog.NopLogger()
	}
	return l
}

// Options are the dependencies of the TUI model.
type Options struct {
	Config      *config.Config
	Sidebar     *config.Sidebar
	SidebarPath string
	// Expand names a group to open after the default policy is applied.
	Expand      string
	AuditLogger auditlog.Logger
	Metrics     metrics.Recorder
}

type state int

const (
	stateDefault state = iota
	// stateUserMenu is the state while the account dropdown is open.
	stateUserMenu
	// stateHelp is the state when a help screen is displayed.
	stateHelp
)

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	// appConfig stores persistent application configuration
	appConfig *config.Config
	// sidebarPath is where ctrl+r reloads the sidebar from.
	sidebarPath string
	// source is the file the current sidebar came from; empty for defaults.
	source string
	// auditLogger records every accepted and rejected intent.
	auditLogger auditlog.Logger
	// metrics counts intents for the Prometheus endpoint.
	metrics metrics.Recorder

	// -- State --

	// state is the current discrete state of the application
	state state
	// catalog is the list of primary views.
	catalog *navigation.Catalog
	// accordion owns which feed group is expanded.
	accordion *accordion.Controller
	// userMenu is the account dropdown's open state.
	userMenu *usermenu.Menu
	// actions are the entries of the account dropdown.
	actions []usermenu.Action
	// activeView is the label of the selected primary view.
	activeView string
	// opened is the detail of the last opened feed entry.
	opened []string

	// keySent is used to manage underlining menu items
	keySent bool

	// -- UI Components --

	sidebar *ui.Sidebar
	// menu displays the bottom key hints
	menu      *ui.Menu
	statusBar *ui.StatusBar
	activity  *ui.ActivityPane
	// toastManager manages toast notifications
	toastManager *overlay.ToastManager
	// textOverlay displays the help screen
	textOverlay *overlay.TextOverlay

	// -- Layout --

	termWidth     int
	termHeight    int
	sidebarWidth  int
	contentHeight int
}

func newHome(ctx context.Context, opts Options) (*home, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Sidebar == nil {
		sb, err := config.DefaultSidebar().Build("")
		if err != nil {
			return nil, err
		}
		opts.Sidebar = sb
	}
	if opts.AuditLogger == nil {
		opts.AuditLogger = auditlog.NopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop()
	}

	h := &home{
		ctx:          ctx,
		appConfig:    opts.Config,
		sidebarPath:  opts.SidebarPath,
		source:       opts.Sidebar.Source,
		auditLogger:  opts.AuditLogger,
		metrics:      opts.Metrics,
		state:        stateDefault,
		catalog:      opts.Sidebar.Catalog,
		accordion:    accordion.New(opts.Sidebar.Tree),
		userMenu:     usermenu.New(),
		actions:      usermenu.DefaultActions(),
		sidebar:      ui.NewSidebar(),
		menu:         ui.NewMenu(),
		statusBar:    ui.NewStatusBar(),
		activity:     ui.NewActivityPane(),
		toastManager: overlay.NewToastManager(),
	}

	if opts.Expand != "" && !h.accordion.IsExpanded(opts.Expand) {
		if _, err := h.accordion.Select(opts.Expand); err != nil {
			return nil, fmt.Errorf("--expand: %w", err)
		}
	}

	if entries := h.catalog.Entries(); len(entries) > 0 {
		h.activeView = entries[0].Label
	}
	h.sidebar.SetUsername(h.appConfig.Username)
	h.sidebar.SetData(h.catalog, h.accordion.Tree())
	h.sidebar.SetMenu(false, h.actions)
	h.sidebar.SetActiveView(h.activeView)
	h.sidebar.SetFocused(true)
	h.syncChrome()
	h.refreshActivity()
	return h, nil
}

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	// Two-column layout below the status bar: sidebar (25%), activity (rest).
	sidebarWidth := int(float32(msg.Width) * 0.25)
	if sidebarWidth < 26 {
		sidebarWidth = 26
	}
	if sidebarWidth > msg.Width {
		sidebarWidth = msg.Width
	}
	activityWidth := msg.Width - sidebarWidth - 2
	if activityWidth < 0 {
		activityWidth = 0
	}

	// One row for the status bar, one for the key hints.
	menuHeight := 1
	if msg.Height < 3 {
		menuHeight = 0
	}
	contentHeight := msg.Height - menuHeight - 1
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.termWidth = msg.Width
	m.termHeight = msg.Height
	m.sidebarWidth = sidebarWidth
	m.contentHeight = contentHeight

	m.toastManager.SetSize(msg.Width, msg.Height)
	m.statusBar.SetSize(msg.Width)
	m.sidebar.SetSize(sidebarWidth, contentHeight)
	m.activity.SetSize(activityWidth, contentHeight-1)
	m.menu.SetSize(msg.Width, menuHeight)
	if m.textOverlay != nil {
		m.textOverlay.SetWidth(int(float32(msg.Width) * 0.6))
	}
}

func (m *home) Init() tea.Cmd {
	return m.toastTickCmd()
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overlay.ToastTickMsg:
		m.toastManager.Tick()
		if m.toastManager.HasActiveToasts() {
			return m, m.toastTickCmd()
		}
		return m, nil
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case sidebarLoadedMsg:
		return m, m.applySidebar(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *home) View() string {
	colStyle := lipgloss.NewStyle().Height(m.contentHeight)
	sidebarView := colStyle.Render(m.sidebar.String())
	activityView := colStyle.PaddingLeft(2).PaddingTop(1).Render(
		zone.Mark(ui.ZoneActivityPane, m.activity.String()))

	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.statusBar.String(),
		lipgloss.JoinHorizontal(lipgloss.Top, sidebarView, activityView),
		m.menu.String(),
	)

	var result string
	switch {
	case m.state == stateHelp:
		if m.textOverlay == nil {
			log.ErrorLog.Printf("text overlay is nil")
			result = mainView
			break
		}
		result = overlay.PlaceOverlay(0, 0, m.textOverlay.Render(), mainView, true)
	default:
		result = mainView
	}

	if toastView := m.toastManager.View(); toastView != "" {
		x, y := m.toastManager.GetPosition()
		result = overlay.PlaceOverlay(x, y, toastView, result, false)
	}

	// Process bubblezone markers before rendering is complete
	// (zone markers inflate lipgloss.Width if left in place).
	result = zone.Scan(result)

	// Height-fill so bubbletea's alt-screen renderer covers the terminal.
	result = ui.FillBackground(result, m.termHeight)

	return result
}

// syncChrome pushes the current accordion, menu and cursor state into the
// status bar, key hints and activity header.
func (m *home) syncChrome() {
	st := m.accordion.Current()
	m.sidebar.SetExpansion(st)
	m.sidebar.SetMenu(m.userMenu.IsOpen(), m.actions)
	m.sidebar.SetActiveView(m.activeView)
	m.menu.SetSpaceAction(m.sidebar.SpaceAction())
	m.statusBar.SetData(ui.StatusBarData{
		Source:    m.source,
		Expanded:  st.Title(),
		View:      m.activeView,
		MenuOpen:  m.userMenu.IsOpen(),
		GroupsLen: m.accordion.Tree().Len(),
	})
	m.activity.SetTitle(m.activeView)
	m.activity.SetDetail(m.detailLines()...)
}

// detailLines describes the row under the cursor, followed by the last
// opened entry.
func (m *home) detailLines() []string {
	var lines []string
	if row, ok := m.sidebar.Selected(); ok {
		switch row.Kind {
		case ui.RowNav:
			lines = append(lines, fmt.Sprintf("view %s → %s", row.Label, row.Target))
		case ui.RowGroupHeader:
			state := "collapsed"
			if row.Expanded {
				state = "expanded"
			}
			lines = append(lines, fmt.Sprintf("%s · %d feeds · %s", row.Label, row.Count, state))
		case ui.RowFeedEntry:
			lines = append(lines, fmt.Sprintf("%s › %s", row.Group, row.Label), linkOrPlaceholder(row.Link))
		case ui.RowAccount:
			lines = append(lines, "signed in as "+m.appConfig.Username)
		case ui.RowMenuAction:
			lines = append(lines, "account › "+row.Label)
		}
	}
	if len(m.opened) > 0 {
		lines = append(lines, "")
		lines = append(lines, m.opened...)
	}
	return lines
}

func linkOrPlaceholder(link string) string {
	if link == "" {
		return "no link configured"
	}
	return link
}

// refreshActivity reloads the activity feed from the audit log.
func (m *home) refreshActivity() {
	events, err := m.auditLogger.Query(auditlog.QueryFilter{Limit: activityLimit})
	if err != nil {
		log.WarningLog.Printf("query audit log: %v", err)
		return
	}
	display := make([]ui.ActivityEventDisplay, 0, len(events))
	for _, e := range events {
		icon, color := ui.EventKindIcon(e.Kind.String())
		display = append(display, ui.ActivityEventDisplay{
			Time:    e.Timestamp.Local().Format("15:04"),
			Kind:    e.Kind.String(),
			Icon:    icon,
			Message: e.Message,
			Color:   color,
			Level:   e.Level,
		})
	}
	m.activity.SetEvents(display)
}

// audit records an event and refreshes the activity feed.
func (m *home) audit(kind auditlog.EventKind, msg string, opts ...auditlog.EventOption) {
	m.auditLogger.Emit(auditlog.NewEvent(kind, msg, opts...))
	m.refreshActivity()
}

func (m *home) toastTickCmd() tea.Cmd {
	return func() tea.Msg {
		time.Sleep(overlay.TickInterval)
		return overlay.ToastTickMsg{}
	}
}

type keyupMsg struct{}

// sidebarLoadedMsg delivers the result of an async sidebar reload.
type sidebarLoadedMsg struct {
	sidebar *config.Sidebar
	err     error
}
