package ui

import "fmt"

// Zone ID constants for bubblezone hit detection.
// These are used both in render paths (zone.Mark) and input paths (zone.Get().InBounds).
const (
	ZoneActivityPane = "zone-activity-pane"
)

// SidebarRowZoneID returns the zone ID for a sidebar row by its rows-slice index.
func SidebarRowZoneID(idx int) string {
	return fmt.Sprintf("zone-sidebar-row-%d", idx)
}
