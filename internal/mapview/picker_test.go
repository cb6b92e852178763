package mapview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// The picker must never leave anything running after Close.
	goleak.VerifyTestMain(m)
}

// fakeEngine records acquisitions and releases.
type fakeEngine struct {
	acquired  int
	released  int
	failNext  error
	lastCfg   Config
	liveCount int
}

func (f *fakeEngine) Acquire(cfg Config) (Handle, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	f.acquired++
	f.liveCount++
	f.lastCfg = cfg
	return &fakeHandle{engine: f, marker: cfg.Center}, nil
}

type fakeHandle struct {
	engine   *fakeEngine
	marker   Coordinate
	released bool
}

func (h *fakeHandle) Marker() Coordinate { return h.marker }
func (h *fakeHandle) MoveMarker(c Coordinate) {
	h.marker = c
}
func (h *fakeHandle) Render(width, height int) string { return "map" }
func (h *fakeHandle) Release() {
	if !h.released {
		h.released = true
		h.engine.released++
		h.engine.liveCount--
	}
}

func ptr(f float64) *float64 { return &f }

func TestFallbackWithoutCoordinatesOrSelection(t *testing.T) {
	engine := &fakeEngine{}
	p := New(engine)

	require.NoError(t, p.Configure(Options{Location: "Koramangala", Selectable: false}))

	assert.True(t, p.Fallback())
	assert.False(t, p.Active())
	assert.Equal(t, 0, engine.acquired, "engine must not be constructed for fallback")

	view := p.View(50, 10)
	assert.Contains(t, view, "Koramangala")
	assert.Contains(t, view, "unavailable")
}

func TestFallbackPlaceholderLabel(t *testing.T) {
	p := New(&fakeEngine{})
	require.NoError(t, p.Configure(Options{Selectable: false}))

	assert.Contains(t, p.View(50, 10), "Location not specified")
}

func TestAcquireWithCoordinates(t *testing.T) {
	engine := &fakeEngine{}
	p := New(engine)
	defer p.Close()

	require.NoError(t, p.Configure(Options{
		Latitude:  ptr(12.9716),
		Longitude: ptr(77.5946),
	}))

	assert.True(t, p.Active())
	assert.Equal(t, 1, engine.acquired)
	assert.Equal(t, ZoomClose, engine.lastCfg.Zoom)
	assert.Equal(t, MarkerStatic, engine.lastCfg.MarkerColor)
	assert.False(t, engine.lastCfg.Draggable)
	assert.InDelta(t, 12.9716, engine.lastCfg.Center.Latitude, 1e-9)
}

func TestSelectableWithoutCoordinatesUsesDefaultCenter(t *testing.T) {
	engine := &fakeEngine{}
	p := New(engine)
	defer p.Close()

	require.NoError(t, p.Configure(Options{
		Selectable:    true,
		DefaultCenter: Coordinate{Latitude: 17.375685, Longitude: 78.474661},
	}))

	assert.Equal(t, ZoomClose, engine.lastCfg.Zoom, "selectable mode zooms in even without coordinates")
	assert.Equal(t, MarkerSelectable, engine.lastCfg.MarkerColor)
	assert.True(t, engine.lastCfg.Draggable)
	assert.InDelta(t, 17.375685, engine.lastCfg.Center.Latitude, 1e-9)
}

func TestReconfigureReleasesBeforeAcquiring(t *testing.T) {
	engine := &fakeEngine{}
	p := New(engine)
	defer p.Close()

	require.NoError(t, p.Configure(Options{Latitude: ptr(1.0), Longitude: ptr(2.0)}))
	require.NoError(t, p.Configure(Options{Latitude: ptr(3.0), Longitude: ptr(4.0)}))

	assert.Equal(t, 2, engine.acquired)
	assert.Equal(t, 1, engine.released)
	assert.Equal(t, 1, engine.liveCount, "exactly one live instance after reconfigure")
}

func TestFallbackToSelectableConstructsExactlyOne(t *testing.T) {
	engine := &fakeEngine{}
	p := New(engine)
	defer p.Close()

	// Fallback first: nothing constructed
	require.NoError(t, p.Configure(Options{Selectable: false}))
	require.Equal(t, 0, engine.acquired)

	// Flip to selectable: nothing to tear down, one construction
	require.NoError(t, p.Configure(Options{Selectable: true}))
	assert.Equal(t, 1, engine.acquired)
	assert.Equal(t, 0, engine.released)
}

func TestCloseReleasesUnconditionally(t *testing.T) {
	engine := &fakeEngine{}
	p := New(engine)

	require.NoError(t, p.Configure(Options{Selectable: true}))
	p.Close()
	p.Close() // second close is harmless

	assert.Equal(t, 0, engine.liveCount)
	assert.True(t, p.Fallback())
}

func TestDragEndInvokesCallbackOnce(t *testing.T) {
	engine := &fakeEngine{}
	var got []Coordinate
	p := New(engine)
	defer p.Close()

	require.NoError(t, p.Configure(Options{
		Selectable: true,
		OnSelect: func(lat, lng float64) {
			got = append(got, Coordinate{Latitude: lat, Longitude: lng})
		},
	}))

	p.MoveMarker(Coordinate{Latitude: 12.34, Longitude: 56.78})
	assert.Empty(t, got, "moving mid-drag must not select")

	p.FinishDrag()
	require.Len(t, got, 1)
	assert.InDelta(t, 12.34, got[0].Latitude, 0.01)
	assert.InDelta(t, 56.78, got[0].Longitude, 0.01)
}

func TestClickMovesMarkerAndSelects(t *testing.T) {
	engine := &fakeEngine{}
	var got []Coordinate
	p := New(engine)
	defer p.Close()

	require.NoError(t, p.Configure(Options{
		Selectable: true,
		OnSelect: func(lat, lng float64) {
			got = append(got, Coordinate{Latitude: lat, Longitude: lng})
		},
	}))

	p.Click(Coordinate{Latitude: 9.9, Longitude: 8.8})
	require.Len(t, got, 1)
	assert.InDelta(t, 9.9, got[0].Latitude, 1e-9)
	assert.InDelta(t, 9.9, p.Marker().Latitude, 1e-9, "marker follows the click")
}

func TestNonSelectableIgnoresInteraction(t *testing.T) {
	engine := &fakeEngine{}
	called := false
	p := New(engine)
	defer p.Close()

	require.NoError(t, p.Configure(Options{
		Latitude:  ptr(1.0),
		Longitude: ptr(2.0),
		OnSelect:  func(lat, lng float64) { called = true },
	}))

	before := p.Marker()
	p.Click(Coordinate{Latitude: 5, Longitude: 5})
	p.FinishDrag()

	assert.False(t, called)
	assert.Equal(t, before, p.Marker())
}

func TestAcquireFailureDegradesToFallback(t *testing.T) {
	engine := &fakeEngine{failNext: errors.New("tile service unreachable")}
	p := New(engine)

	err := p.Configure(Options{Location: "MG Road", Selectable: true})
	require.Error(t, err)

	assert.True(t, p.Fallback())
	assert.ErrorContains(t, p.Err(), "unreachable")

	// The region is never blank
	view := p.View(50, 10)
	assert.Contains(t, view, "MG Road")

	// A later successful configure recovers
	require.NoError(t, p.Configure(Options{Selectable: true}))
	assert.True(t, p.Active())
	p.Close()
}
