package auditlog

import "time"

// EventKind identifies the type of audit event.
type EventKind string

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	return string(k)
}

// Accordion events.
const (
	EventGroupExpanded   EventKind = "group_expanded"
	EventGroupCollapsed  EventKind = "group_collapsed"
	EventAccordionReset  EventKind = "accordion_reset"
	EventSidebarReloaded EventKind = "sidebar_reloaded"
)

// Navigation events.
const (
	EventViewSelected EventKind = "view_selected"
	EventEntryOpened  EventKind = "entry_opened"
	EventLinkCopied   EventKind = "link_copied"
)

// Account menu events.
const (
	EventMenuOpened EventKind = "menu_opened"
	EventMenuClosed EventKind = "menu_closed"
	EventMenuAction EventKind = "menu_action"
)

// Operational events.
const (
	EventIntentRejected EventKind = "intent_rejected"
	EventError          EventKind = "error"
)

// AllKinds lists every known event kind in declaration order.
func AllKinds() []EventKind {
	return []EventKind{
		EventGroupExpanded, EventGroupCollapsed, EventAccordionReset, EventSidebarReloaded,
		EventViewSelected, EventEntryOpened, EventLinkCopied,
		EventMenuOpened, EventMenuClosed, EventMenuAction,
		EventIntentRejected, EventError,
	}
}

// ParseKind returns the EventKind named s, or false if it is not known.
func ParseKind(s string) (EventKind, bool) {
	for _, k := range AllKinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Event is a single audit log entry.
type Event struct {
	ID        int64
	Kind      EventKind
	Timestamp time.Time
	Group     string // feed group title, when relevant
	Entry     string // feed entry or navigation label
	Message   string
	Detail    string // JSON-encoded extra data
	Level     string // info, warn, error
}
