// Package metrics exposes Prometheus counters for sidebar interactions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts sidebar interactions.
type Recorder interface {
	// GroupToggled records an accordion transition; state is "expanded" or
	// "collapsed".
	GroupToggled(state string)
	// IntentRejected records an intent that failed validation, by kind.
	IntentRejected(kind string)
	// MenuEvent records an account menu event ("opened", "closed" or an
	// action ID).
	MenuEvent(event string)
	// ViewSelected records activation of a primary navigation view.
	ViewSelected(view string)
}

type counters struct {
	toggles  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	menu     *prometheus.CounterVec
	views    *prometheus.CounterVec
}

func newCounterVec(reg prometheus.Registerer, name, help string, labels ...string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feedr",
		Name:      name,
		Help:      help,
	}, labels)
	reg.MustRegister(vec)
	return vec
}

// NewRecorder registers the feedr counters with reg and returns a Recorder
// backed by them. It panics if the counters are already registered.
func NewRecorder(reg prometheus.Registerer) Recorder {
	return &counters{
		toggles:  newCounterVec(reg, "group_toggles_total", "Accordion transitions by resulting state.", "state"),
		rejected: newCounterVec(reg, "intents_rejected_total", "Rejected sidebar intents by kind.", "kind"),
		menu:     newCounterVec(reg, "menu_events_total", "Account menu events.", "event"),
		views:    newCounterVec(reg, "view_selections_total", "Primary navigation view selections.", "view"),
	}
}

func (c *counters) GroupToggled(state string)  { c.toggles.WithLabelValues(state).Inc() }
func (c *counters) IntentRejected(kind string) { c.rejected.WithLabelValues(kind).Inc() }
func (c *counters) MenuEvent(event string)     { c.menu.WithLabelValues(event).Inc() }
func (c *counters) ViewSelected(view string)   { c.views.WithLabelValues(view).Inc() }

type nopRecorder struct{}

// Nop returns a Recorder that discards everything.
func Nop() Recorder { return nopRecorder{} }

func (nopRecorder) GroupToggled(string)   {}
func (nopRecorder) IntentRejected(string) {}
func (nopRecorder) MenuEvent(string)      {}
func (nopRecorder) ViewSelected(string)   {}
