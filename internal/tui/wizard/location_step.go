package wizard

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/reunite-ai/reunite/internal/draft"
	"github.com/reunite-ai/reunite/internal/mapview"
)

// markerStep is the per-keypress marker movement in degrees.
const markerStep = 0.0025

// LocationStep collects where and when the item was lost or found.
// A named place or a point picked on the map satisfies the location
// requirement; the date is always required.
type LocationStep struct {
	st       *draft.State
	name     textinput.Model
	date     textinput.Model
	picker   *mapview.Picker
	center   mapview.Coordinate
	focusIdx int // 0 = name, 1 = date, 2 = map, -1 = blurred
	dateErr  string
	selected *mapview.Coordinate
	width    int
	height   int
}

// NewLocationStep creates the location step. The picker is configured
// selectable; engine acquisition happens in Init.
func NewLocationStep(st *draft.State, engine mapview.Engine, defaultCenter mapview.Coordinate) *LocationStep {
	name := textinput.New()
	name.Placeholder = "e.g., 'Central Library, 2nd floor'"
	name.CharLimit = 120
	name.SetValue(st.Draft.LocationName)
	name.Focus()

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD HH:MM"
	date.CharLimit = 16
	if st.Draft.DateOccurred != "" {
		date.SetValue(strings.Replace(st.Draft.DateOccurred, "T", " ", 1))
	}

	return &LocationStep{
		st:     st,
		name:   name,
		date:   date,
		picker: mapview.New(engine),
		center: defaultCenter,
	}
}

func (s *LocationStep) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, s.configureMap()}
	return tea.Batch(cmds...)
}

// configureMap (re)configures the picker from the draft.
func (s *LocationStep) configureMap() tea.Cmd {
	opts := mapview.Options{
		Location:      s.st.Draft.LocationName,
		Selectable:    true,
		DefaultCenter: s.center,
		OnSelect: func(lat, lng float64) {
			s.selected = &mapview.Coordinate{Latitude: lat, Longitude: lng}
		},
	}
	if c := s.st.Draft.Coordinates; c != nil {
		lat, lng := c.Latitude, c.Longitude
		opts.Latitude = &lat
		opts.Longitude = &lng
	}

	if err := s.picker.Configure(opts); err != nil {
		return func() tea.Msg { return MapUnavailableMsg{Err: err} }
	}
	return nil
}

// Close releases the map engine.
func (s *LocationStep) Close() {
	s.picker.Close()
}

func (s *LocationStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyPressMsg)
	if !isKey {
		return s.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "tab":
		switch s.focusIdx {
		case 0:
			s.focusIdx = 1
			s.name.Blur()
			return s.date.Focus()
		case 1:
			s.date.Blur()
			if s.picker.Active() {
				s.focusIdx = 2
				return nil
			}
			return func() tea.Msg { return TabExitForwardMsg{} }
		default:
			return func() tea.Msg { return TabExitForwardMsg{} }
		}
	case "shift+tab":
		switch s.focusIdx {
		case 2:
			s.focusIdx = 1
			return s.date.Focus()
		case 1:
			s.focusIdx = 0
			s.date.Blur()
			return s.name.Focus()
		default:
			return func() tea.Msg { return TabExitBackwardMsg{} }
		}
	}

	if s.focusIdx == 2 {
		return s.updateMap(keyMsg)
	}
	return s.updateInputs(msg)
}

// updateMap handles marker movement and selection on the map region.
func (s *LocationStep) updateMap(keyMsg tea.KeyPressMsg) tea.Cmd {
	m := s.picker.Marker()
	switch keyMsg.String() {
	case "up", "k":
		m.Latitude += markerStep
		s.picker.MoveMarker(m)
	case "down", "j":
		m.Latitude -= markerStep
		s.picker.MoveMarker(m)
	case "left", "h":
		m.Longitude -= markerStep
		s.picker.MoveMarker(m)
	case "right", "l":
		m.Longitude += markerStep
		s.picker.MoveMarker(m)
	case "enter", " ":
		s.selected = nil
		s.picker.FinishDrag()
		if s.selected != nil {
			lat, lng := s.selected.Latitude, s.selected.Longitude
			s.st.SetCoordinates(lat, lng)
			return func() tea.Msg {
				return CoordinateSelectedMsg{Latitude: lat, Longitude: lng}
			}
		}
	}
	return nil
}

func (s *LocationStep) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focusIdx {
	case 0:
		s.name, cmd = s.name.Update(msg)
		s.st.SetLocationName(strings.TrimSpace(s.name.Value()))
	case 1:
		s.date, cmd = s.date.Update(msg)
		s.applyDate()
	}
	return cmd
}

// applyDate validates the date field and folds it into the draft.
// Invalid input leaves the draft date empty so the final gate holds.
func (s *LocationStep) applyDate() {
	raw := strings.TrimSpace(s.date.Value())
	if raw == "" {
		s.dateErr = ""
		s.st.SetDateOccurred("")
		return
	}

	if t, err := time.Parse("2006-01-02 15:04", raw); err == nil {
		s.dateErr = ""
		s.st.SetDateOccurred(t.Format("2006-01-02T15:04"))
		return
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		s.dateErr = ""
		s.st.SetDateOccurred(t.Format("2006-01-02T15:04"))
		return
	}

	s.dateErr = "use YYYY-MM-DD or YYYY-MM-DD HH:MM"
	s.st.SetDateOccurred("")
}

func (s *LocationStep) View() string {
	nameBox := styleInputBox(s.focusIdx == 0).Width(50).Render(s.name.View())
	dateBox := styleInputBox(s.focusIdx == 1).Width(24).Render(s.date.View())

	var dateNote string
	if s.dateErr != "" {
		dateNote = styleErrorText().Render("✗ " + s.dateErr)
	}

	mapView := s.picker.View(54, 12)
	if s.focusIdx == 2 {
		mapView = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(focusBorderColor())).
			Render(mapView)
	}

	var coordNote string
	if c := s.st.Draft.Coordinates; c != nil {
		coordNote = styleNoteText().Render(
			"pinned at " + formatCoordinate(c.Latitude, c.Longitude))
	}

	var hint string
	switch s.focusIdx {
	case 2:
		hint = renderHintBar("arrows", "move pin", "enter", "set location", "tab", "buttons")
	default:
		hint = renderHintBar("tab", "next field", "shift+tab", "previous")
	}

	sections := []string{
		styleFieldLabel().Render("Where (place name)"),
		nameBox,
		"",
		styleFieldLabel().Render("When"),
		dateBox,
	}
	if dateNote != "" {
		sections = append(sections, dateNote)
	}
	sections = append(sections, "", styleFieldLabel().Render("Pin on map (optional)"), mapView)
	if coordNote != "" {
		sections = append(sections, coordNote)
	}
	sections = append(sections, "", hint)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *LocationStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *LocationStep) Focus() {
	s.focusIdx = 0
	s.name.Focus()
}

func (s *LocationStep) Blur() {
	s.focusIdx = -1
	s.name.Blur()
	s.date.Blur()
}
