// Package mapview renders an item's location and, in selectable mode, lets
// the user pick precise coordinates. The underlying map engine is an owned
// resource acquired and released around every configuration change.
package mapview

// Coordinate is a geographic point.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Marker colors distinguish "drag me" from "informational".
const (
	MarkerSelectable = "#DC2626" // red: interactive, item position is being chosen
	MarkerStatic     = "#0EA5E9" // blue: display only
)

// Zoom levels. Close when real coordinates are known or the user is picking
// a point; far otherwise.
const (
	ZoomClose = 12
	ZoomFar   = 10
)

// Config describes one engine acquisition. Partial reconfiguration is not
// supported; a new Config means release-then-acquire.
type Config struct {
	Center      Coordinate
	Zoom        int
	MarkerColor string
	Draggable   bool
}

// Handle is a live map instance with exactly one marker.
type Handle interface {
	// Marker returns the marker's current coordinate.
	Marker() Coordinate
	// MoveMarker repositions the marker.
	MoveMarker(c Coordinate)
	// Render draws the map region at the given size.
	Render(width, height int) string
	// Release frees the instance. Using the handle afterwards is invalid.
	Release()
}

// Engine constructs map instances. Acquire may fail when the tile service is
// unreachable; callers must degrade to fallback content.
type Engine interface {
	Acquire(cfg Config) (Handle, error)
}
