package mapview

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/reunite-ai/reunite/internal/logger"
)

// SelectFunc receives the coordinate chosen by a drag or click.
type SelectFunc func(lat, lng float64)

// Options is the picker's external configuration. Latitude and Longitude are
// either both set or both nil ("no known coordinates"). OnSelect is only
// meaningful when Selectable is true.
type Options struct {
	Location      string
	Latitude      *float64
	Longitude     *float64
	Selectable    bool
	OnSelect      SelectFunc
	DefaultCenter Coordinate
}

// Picker owns one map engine instance and reconciles it with its options.
// Any option change tears the instance down fully before acquiring a new one
// so no stale handler can reference a superseded callback.
type Picker struct {
	engine Engine
	opts   Options

	handle   Handle
	fallback bool
	lastErr  error
}

// New creates a picker that has not acquired anything yet. Call Configure to
// make it live.
func New(engine Engine) *Picker {
	return &Picker{engine: engine, fallback: true}
}

// Configure applies new options, releasing any existing engine instance
// first. Returns an error when engine acquisition fails; the picker is left
// in fallback mode in that case and stays usable.
func (p *Picker) Configure(opts Options) error {
	p.releaseHandle()
	p.opts = opts
	p.lastErr = nil

	hasCoords := opts.Latitude != nil && opts.Longitude != nil

	// Nothing to show interactively: static fallback, engine never touched.
	if !opts.Selectable && !hasCoords {
		p.fallback = true
		return nil
	}

	center := opts.DefaultCenter
	if hasCoords {
		center = Coordinate{Latitude: *opts.Latitude, Longitude: *opts.Longitude}
	}

	zoom := ZoomFar
	if hasCoords || opts.Selectable {
		zoom = ZoomClose
	}

	color := MarkerStatic
	if opts.Selectable {
		color = MarkerSelectable
	}

	handle, err := p.engine.Acquire(Config{
		Center:      center,
		Zoom:        zoom,
		MarkerColor: color,
		Draggable:   opts.Selectable,
	})
	if err != nil {
		logger.Error("Map engine acquisition failed: %v", err)
		p.fallback = true
		p.lastErr = err
		return fmt.Errorf("initializing map: %w", err)
	}

	p.handle = handle
	p.fallback = false
	return nil
}

// Close releases the engine instance unconditionally.
func (p *Picker) Close() {
	p.releaseHandle()
	p.fallback = true
}

func (p *Picker) releaseHandle() {
	if p.handle != nil {
		p.handle.Release()
		p.handle = nil
	}
}

// Active reports whether a live engine instance is showing.
func (p *Picker) Active() bool {
	return p.handle != nil
}

// Fallback reports whether static fallback content is showing.
func (p *Picker) Fallback() bool {
	return p.fallback
}

// Err returns the acquisition error behind the current fallback, if any.
func (p *Picker) Err() error {
	return p.lastErr
}

// Marker returns the marker's current coordinate. Only valid when Active.
func (p *Picker) Marker() Coordinate {
	if p.handle == nil {
		return Coordinate{}
	}
	return p.handle.Marker()
}

// MoveMarker repositions the marker without selecting, mirroring an
// in-progress drag. No-op unless selectable and active.
func (p *Picker) MoveMarker(c Coordinate) {
	if p.handle == nil || !p.opts.Selectable {
		return
	}
	p.handle.MoveMarker(c)
}

// FinishDrag ends a marker drag: the marker's resulting coordinate is read
// and reported through the selection callback.
func (p *Picker) FinishDrag() {
	if p.handle == nil || !p.opts.Selectable || p.opts.OnSelect == nil {
		return
	}
	c := p.handle.Marker()
	p.opts.OnSelect(c.Latitude, c.Longitude)
}

// Click moves the marker to the clicked point and reports it through the
// selection callback.
func (p *Picker) Click(c Coordinate) {
	if p.handle == nil || !p.opts.Selectable || p.opts.OnSelect == nil {
		return
	}
	p.handle.MoveMarker(c)
	p.opts.OnSelect(c.Latitude, c.Longitude)
}

// View renders the map region or the fallback content at the given size.
// The region is never blank: a failed or absent engine shows the fallback.
func (p *Picker) View(width, height int) string {
	if p.handle != nil {
		return p.handle.Render(width, height)
	}

	label := p.opts.Location
	if label == "" {
		label = "Location not specified"
	}

	body := lipgloss.JoinVertical(
		lipgloss.Center,
		"📍 "+label,
		"",
		"Coordinates are unavailable for mapping.",
	)

	boxStyle := lipgloss.NewStyle().
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#6c7086"))

	return boxStyle.Render(body)
}
