package mapview

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/reunite-ai/reunite/internal/logger"
)

// TileEngine is the production Engine. It validates the vector-tile service
// on acquisition (the style document must be fetchable with the configured
// key) and renders a textual viewport. A dead tile service therefore fails
// at Acquire time, which is what lets the picker degrade to fallback.
type TileEngine struct {
	styleURL string
	apiKey   string
	http     *http.Client
}

// NewTileEngine creates an engine for a LocationIQ-style vector tile service.
func NewTileEngine(styleURL, apiKey string) *TileEngine {
	return &TileEngine{
		styleURL: styleURL,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Acquire implements Engine.
func (e *TileEngine) Acquire(cfg Config) (Handle, error) {
	u, err := url.Parse(e.styleURL)
	if err != nil {
		return nil, fmt.Errorf("parsing tile URL: %w", err)
	}
	q := u.Query()
	q.Set("key", e.apiKey)
	u.RawQuery = q.Encode()

	resp, err := e.http.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("reaching tile service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("tile service returned status %d", resp.StatusCode)
	}

	logger.Debug("Map engine acquired: center=(%.4f, %.4f) zoom=%d draggable=%v",
		cfg.Center.Latitude, cfg.Center.Longitude, cfg.Zoom, cfg.Draggable)

	return &tileHandle{cfg: cfg, marker: cfg.Center}, nil
}

// tileHandle renders a character-cell viewport centered on the acquisition
// point with the single marker drawn at its offset.
type tileHandle struct {
	cfg      Config
	marker   Coordinate
	released bool
}

func (h *tileHandle) Marker() Coordinate {
	return h.marker
}

func (h *tileHandle) MoveMarker(c Coordinate) {
	if h.released {
		return
	}
	h.marker = c
}

func (h *tileHandle) Release() {
	h.released = true
}

// degreesPerCell maps zoom level to the geographic span of one viewport cell.
func (h *tileHandle) degreesPerCell() float64 {
	// Rough Mercator-ish scaling: each zoom level halves the span.
	return 360.0 / math.Exp2(float64(h.cfg.Zoom)) / 4.0
}

func (h *tileHandle) Render(width, height int) string {
	if h.released {
		return ""
	}
	if width < 10 {
		width = 10
	}
	if height < 5 {
		height = 5
	}

	inner := width - 2
	rows := height - 3 // border + caption line

	// Marker offset from center in cells
	cell := h.degreesPerCell()
	dx := int(math.Round((h.marker.Longitude - h.cfg.Center.Longitude) / cell))
	dy := int(math.Round((h.cfg.Center.Latitude - h.marker.Latitude) / cell))

	mx := inner/2 + dx
	my := rows/2 + dy

	markerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(h.cfg.MarkerColor)).Bold(true)
	gridStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#45475a"))

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < inner; x++ {
			switch {
			case x == mx && y == my:
				b.WriteString(markerStyle.Render("▼"))
			case x%8 == 4 && y%4 == 2:
				b.WriteString(gridStyle.Render("+"))
			default:
				b.WriteString(" ")
			}
		}
		if y < rows-1 {
			b.WriteString("\n")
		}
	}

	caption := fmt.Sprintf("Lat %.4f  Lng %.4f  z%d", h.marker.Latitude, h.marker.Longitude, h.cfg.Zoom)
	if h.cfg.Draggable {
		caption += "  (arrows move, enter sets)"
	}

	grid := b.String() + "\n" + lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a6adc8")).
		Width(inner).
		Align(lipgloss.Center).
		Render(caption)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#585b70")).
		Render(grid)
}
