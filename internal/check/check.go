package check

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/kastheco/feedr/config"
	"github.com/kastheco/feedr/config/auditlog"
)

// Status represents the state of a single check.
type Status int

const (
	StatusOK   Status = iota // working as configured
	StatusWarn               // usable, but falling back to a default
	StatusFail               // feedr will refuse to start or lose data
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Item is one check's result.
type Item struct {
	Name   string
	Status Status
	Detail string // e.g. file path, error message
}

// Inputs are the locations and settings to audit.
type Inputs struct {
	ConfigDir   string
	Config      *config.Config
	SidebarPath string
	AuditDBPath string
}

// Result is the complete output of feedr check.
type Result struct {
	Items []Item
}

// Summary returns the number of non-failing checks and the total.
func (r Result) Summary() (ok, total int) {
	for _, it := range r.Items {
		if it.Status != StatusFail {
			ok++
		}
	}
	return ok, len(r.Items)
}

// Audit runs every check in display order.
func Audit(in Inputs) Result {
	if in.Config == nil {
		in.Config = config.DefaultConfig()
	}
	return Result{Items: []Item{
		checkConfigDir(in.ConfigDir),
		checkConfigFile(in.ConfigDir),
		checkSidebar(in.SidebarPath),
		checkAuditLog(in.Config, in.AuditDBPath),
		checkMetrics(in.Config.MetricsAddr),
	}}
}

func checkConfigDir(dir string) Item {
	it := Item{Name: "config dir", Detail: dir}
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		it.Status = StatusWarn
		it.Detail = dir + " (created on first run)"
	case err != nil:
		it.Status = StatusFail
		it.Detail = err.Error()
	case !info.IsDir():
		it.Status = StatusFail
		it.Detail = dir + " is not a directory"
	}
	return it
}

func checkConfigFile(dir string) Item {
	path := filepath.Join(dir, config.ConfigFileName)
	it := Item{Name: "config.json", Detail: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		it.Status = StatusWarn
		it.Detail = "not found, using defaults"
		return it
	}
	if err != nil {
		it.Status = StatusFail
		it.Detail = err.Error()
		return it
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		it.Status = StatusFail
		it.Detail = fmt.Sprintf("invalid JSON: %v", err)
	}
	return it
}

func checkSidebar(path string) Item {
	it := Item{Name: "sidebar"}
	sb, err := config.LoadSidebar(path)
	if err != nil {
		it.Status = StatusFail
		it.Detail = err.Error()
		return it
	}
	it.Detail = fmt.Sprintf("%d views, %d feed groups", sb.Catalog.Len(), sb.Tree.Len())
	if sb.Source == "" {
		it.Status = StatusWarn
		it.Detail = path + " not found, using built-in sidebar"
	}
	return it
}

func checkAuditLog(cfg *config.Config, path string) Item {
	it := Item{Name: "audit log", Detail: path}
	if !cfg.IsAuditLogEnabled() {
		it.Status = StatusWarn
		it.Detail = "disabled"
		return it
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		it.Detail = path + " (created on first run)"
		return it
	}
	l, err := auditlog.NewSQLiteLogger(path)
	if err != nil {
		it.Status = StatusFail
		it.Detail = err.Error()
		return it
	}
	defer l.Close()
	events, err := l.Query(auditlog.QueryFilter{Limit: auditQueryLimit})
	if err != nil {
		it.Status = StatusFail
		it.Detail = err.Error()
		return it
	}
	it.Detail = fmt.Sprintf("%s (%d recent events)", path, len(events))
	return it
}

// auditQueryLimit bounds the health-check query.
const auditQueryLimit = 500

func checkMetrics(addr string) Item {
	it := Item{Name: "metrics"}
	if addr == "" {
		it.Detail = "disabled"
		return it
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		it.Status = StatusFail
		it.Detail = fmt.Sprintf("invalid metrics_addr %q: %v", addr, err)
		return it
	}
	it.Detail = "http://" + addr + "/metrics"
	return it
}
