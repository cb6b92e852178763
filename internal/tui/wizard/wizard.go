package wizard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/reunite-ai/reunite/internal/auth"
	"github.com/reunite-ai/reunite/internal/config"
	"github.com/reunite-ai/reunite/internal/draft"
	"github.com/reunite-ai/reunite/internal/logger"
	"github.com/reunite-ai/reunite/internal/mapview"
	"github.com/reunite-ai/reunite/internal/tui/theme"
)

// ItemCreator submits a finished draft to the backend.
type ItemCreator interface {
	CreateItem(ctx context.Context, d draft.Draft) (string, error)
}

// Model drives the five-step item report flow.
// It owns one draft.State; steps mutate the draft through its operations and
// the gate predicates decide whether Next is allowed.
type Model struct {
	st      *draft.State
	creator ItemCreator
	tokens  auth.TokenSource
	engine  mapview.Engine
	center  mapview.Coordinate

	width      int
	height     int
	standalone bool
	cancelled  bool
	authAbsent bool
	createdID  string
	errText    string

	// Step components (recreated on entry, restored from the draft)
	typeStep     *TypeStep
	detailsStep  *DetailsStep
	categoryStep *CategoryStep
	imagesStep   *ImagesStep
	locationStep *LocationStep

	buttonBar     *ButtonBar
	buttonFocused bool
	barStep       int
}

// New creates a wizard for embedding in a larger program.
func New(creator ItemCreator, tokens auth.TokenSource, engine mapview.Engine, center mapview.Coordinate) *Model {
	return &Model{
		st:      draft.NewState(),
		creator: creator,
		tokens:  tokens,
		engine:  engine,
		center:  center,
	}
}

// Run is the standalone entry point (the `report` subcommand).
// Returns the created item ID, or an error if the wizard was abandoned.
func Run(cfg *config.Config, creator ItemCreator, tokens auth.TokenSource) (string, error) {
	engine := mapview.NewTileEngine(cfg.TileURL, cfg.TileAPIKey)
	m := New(creator, tokens, engine, mapview.Coordinate{
		Latitude:  cfg.DefaultLat,
		Longitude: cfg.DefaultLng,
	})
	m.standalone = true

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("wizard failed: %w", err)
	}

	wizModel, ok := finalModel.(*Model)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}

	if wizModel.authAbsent {
		return "", fmt.Errorf("not logged in: run `reunite login` first")
	}
	if wizModel.cancelled {
		return "", fmt.Errorf("report cancelled")
	}
	return wizModel.createdID, nil
}

// State exposes the wizard state for the embedding app.
func (m *Model) State() *draft.State {
	return m.st
}

// CreatedID returns the backend ID once submission succeeded.
func (m *Model) CreatedID() string {
	return m.createdID
}

// Close releases resources held by step components.
func (m *Model) Close() {
	if m.locationStep != nil {
		m.locationStep.Close()
		m.locationStep = nil
	}
}

// Init initializes the wizard model.
func (m *Model) Init() tea.Cmd {
	return m.initCurrentStep()
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// Button-focused keyboard input
		if m.buttonFocused && m.buttonBar != nil {
			switch msg.String() {
			case "tab", "right":
				if !m.buttonBar.FocusNext() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					m.focusStepContent()
					return m, nil
				}
				return m, nil
			case "shift+tab", "left":
				if !m.buttonBar.FocusPrev() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					m.focusStepContent()
					return m, nil
				}
				return m, nil
			case "enter", " ":
				return m.activateButton(m.buttonBar.FocusedButton())
			}
		}

		switch msg.String() {
		case "ctrl+c":
			return m.cancel()
		case "esc":
			if m.st.Step == 1 {
				return m.cancel()
			}
			return m.goBack()
		case "ctrl+n":
			return m, m.goNext()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateCurrentStepSize()
		return m, nil

	case TabExitForwardMsg:
		m.buttonFocused = true
		m.blurStepContent()
		m.ensureButtonBar()
		m.buttonBar.FocusFirst()
		return m, nil

	case TabExitBackwardMsg:
		m.buttonFocused = true
		m.blurStepContent()
		m.ensureButtonBar()
		m.buttonBar.FocusLast()
		return m, nil

	case SubmittedMsg:
		logger.Info("Report created: %s", msg.ID)
		m.st.Submitting = false
		m.createdID = msg.ID
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case SubmitFailedMsg:
		logger.Error("Report submission failed: %v", msg.Err)
		m.st.Submitting = false
		m.errText = msg.Err.Error()
		return m, nil

	case AuthRequiredMsg:
		m.authAbsent = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case MapUnavailableMsg:
		logger.Warn("Map unavailable, using fallback: %v", msg.Err)
		return m, nil

	case CoordinateSelectedMsg:
		// Consumed here in standalone mode; the embedding app also sees it
		// and raises a toast.
		return m, nil
	}

	// Forward to current step
	return m, m.updateCurrentStep(msg)
}

// cancel abandons the wizard, releasing the map engine.
func (m *Model) cancel() (tea.Model, tea.Cmd) {
	m.cancelled = true
	m.Close()
	if m.standalone {
		return m, tea.Quit
	}
	return m, func() tea.Msg { return CancelledMsg{} }
}

// goBack retreats one step. Never validated.
func (m *Model) goBack() (tea.Model, tea.Cmd) {
	if m.st.Step == draft.StepCount && m.locationStep != nil {
		m.locationStep.Close()
		m.locationStep = nil
	}
	if !m.st.Retreat() {
		return m, nil
	}
	m.errText = ""
	m.buttonFocused = false
	return m, m.initCurrentStep()
}

// goNext advances when the current step's gate passes; on the final step it
// submits. A failed gate surfaces the step's violation message.
func (m *Model) goNext() tea.Cmd {
	if m.st.Step == draft.StepCount {
		return m.submit()
	}
	if !m.st.Advance() {
		m.errText = stepViolationMessage(m.st.Step)
		return nil
	}
	m.errText = ""
	m.buttonFocused = false
	return m.initCurrentStep()
}

// submit runs the submission protocol: gate check, re-entrancy guard,
// credential check (no request without one), then the multipart upload.
func (m *Model) submit() tea.Cmd {
	if m.st.Submitting {
		return nil
	}
	if !m.st.ReadyToSubmit() {
		m.errText = stepViolationMessage(draft.StepCount)
		return nil
	}

	m.st.Submitting = true

	tok, err := m.tokens.Token()
	if err != nil || tok == "" {
		m.st.Submitting = false
		return func() tea.Msg { return AuthRequiredMsg{} }
	}

	d := m.st.Draft
	creator := m.creator
	return func() tea.Msg {
		id, err := creator.CreateItem(context.Background(), d)
		if err != nil {
			return SubmitFailedMsg{Err: err}
		}
		return SubmittedMsg{ID: id}
	}
}

// stepViolationMessage names what the step still needs.
func stepViolationMessage(step int) string {
	switch step {
	case 1:
		return "Choose whether the item was lost or found."
	case 2:
		return "Title and description are required."
	case 3:
		return "Pick a category."
	case 4:
		return "Please attach at least one photo."
	case 5:
		return "Add a date and either a place name or a map pin."
	}
	return "This step is incomplete."
}

// activateButton handles button activation.
func (m *Model) activateButton(btnID ButtonID) (tea.Model, tea.Cmd) {
	switch btnID {
	case ButtonCancel:
		return m.cancel()
	case ButtonBack:
		return m.goBack()
	case ButtonNext:
		return m, m.goNext()
	}
	return m, nil
}

// initCurrentStep creates the component for the current step and returns its
// init command. Components are rebuilt from the draft on every entry.
func (m *Model) initCurrentStep() tea.Cmd {
	var cmd tea.Cmd
	switch m.st.Step {
	case 1:
		m.typeStep = NewTypeStep(m.st)
		cmd = m.typeStep.Init()
	case 2:
		m.detailsStep = NewDetailsStep(m.st)
		cmd = m.detailsStep.Init()
	case 3:
		m.categoryStep = NewCategoryStep(m.st)
		cmd = m.categoryStep.Init()
	case 4:
		m.imagesStep = NewImagesStep(m.st)
		cmd = m.imagesStep.Init()
	case 5:
		m.locationStep = NewLocationStep(m.st, m.engine, m.center)
		cmd = m.locationStep.Init()
	}
	m.updateCurrentStepSize()
	return cmd
}

// updateCurrentStep forwards a message to the current step component.
func (m *Model) updateCurrentStep(msg tea.Msg) tea.Cmd {
	switch m.st.Step {
	case 1:
		if m.typeStep != nil {
			return m.typeStep.Update(msg)
		}
	case 2:
		if m.detailsStep != nil {
			return m.detailsStep.Update(msg)
		}
	case 3:
		if m.categoryStep != nil {
			return m.categoryStep.Update(msg)
		}
	case 4:
		if m.imagesStep != nil {
			return m.imagesStep.Update(msg)
		}
	case 5:
		if m.locationStep != nil {
			return m.locationStep.Update(msg)
		}
	}
	return nil
}

func (m *Model) updateCurrentStepSize() {
	contentWidth := m.width - 10
	contentHeight := m.height - 10
	if contentWidth < 40 {
		contentWidth = 40
	}
	if contentHeight < 10 {
		contentHeight = 10
	}

	switch m.st.Step {
	case 1:
		if m.typeStep != nil {
			m.typeStep.SetSize(contentWidth, contentHeight)
		}
	case 2:
		if m.detailsStep != nil {
			m.detailsStep.SetSize(contentWidth, contentHeight)
		}
	case 3:
		if m.categoryStep != nil {
			m.categoryStep.SetSize(contentWidth, contentHeight)
		}
	case 4:
		if m.imagesStep != nil {
			m.imagesStep.SetSize(contentWidth, contentHeight)
		}
	case 5:
		if m.locationStep != nil {
			m.locationStep.SetSize(contentWidth, contentHeight)
		}
	}
}

func (m *Model) focusStepContent() {
	switch m.st.Step {
	case 1:
		if m.typeStep != nil {
			m.typeStep.Focus()
		}
	case 2:
		if m.detailsStep != nil {
			m.detailsStep.Focus()
		}
	case 3:
		if m.categoryStep != nil {
			m.categoryStep.Focus()
		}
	case 4:
		if m.imagesStep != nil {
			m.imagesStep.Focus()
		}
	case 5:
		if m.locationStep != nil {
			m.locationStep.Focus()
		}
	}
}

func (m *Model) blurStepContent() {
	switch m.st.Step {
	case 1:
		if m.typeStep != nil {
			m.typeStep.Blur()
		}
	case 2:
		if m.detailsStep != nil {
			m.detailsStep.Blur()
		}
	case 3:
		if m.categoryStep != nil {
			m.categoryStep.Blur()
		}
	case 4:
		if m.imagesStep != nil {
			m.imagesStep.Blur()
		}
	case 5:
		if m.locationStep != nil {
			m.locationStep.Blur()
		}
	}
}

// ensureButtonBar builds the bar for the current step, refreshing button
// states from the gate predicates.
func (m *Model) ensureButtonBar() {
	if m.buttonBar == nil || m.barStep != m.st.Step {
		var buttons []Button
		if m.st.Step == 1 {
			buttons = append(buttons, Button{ID: ButtonCancel, Label: "Cancel"})
		} else {
			buttons = append(buttons, Button{ID: ButtonBack, Label: "← Back"})
		}
		label := "Next →"
		if m.st.Step == draft.StepCount {
			label = "Submit"
		}
		buttons = append(buttons, Button{ID: ButtonNext, Label: label})

		m.buttonBar = NewButtonBar(buttons)
		m.barStep = m.st.Step
	}

	state := ButtonNormal
	if m.st.Step == draft.StepCount {
		if !m.st.ReadyToSubmit() || m.st.Submitting {
			state = ButtonDisabled
		}
	} else if !m.st.CanAdvance() {
		state = ButtonDisabled
	}
	m.buttonBar.SetState(ButtonNext, state)
}

// View renders the wizard as a standalone full-screen program.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.ViewContent(),
	)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// ViewContent renders the wizard modal for embedding.
func (m *Model) ViewContent() string {
	t := theme.Current()

	stepDef := draft.Steps[m.st.Step-1]
	title := styleStepTitle().Render(fmt.Sprintf(
		"Report an Item - Step %d of %d: %s", m.st.Step, draft.StepCount, stepDef.Title))

	progress := m.renderProgress()

	var stepContent string
	switch m.st.Step {
	case 1:
		if m.typeStep != nil {
			stepContent = m.typeStep.View()
		}
	case 2:
		if m.detailsStep != nil {
			stepContent = m.detailsStep.View()
		}
	case 3:
		if m.categoryStep != nil {
			stepContent = m.categoryStep.View()
		}
	case 4:
		if m.imagesStep != nil {
			stepContent = m.imagesStep.View()
		}
	case 5:
		if m.locationStep != nil {
			stepContent = m.locationStep.View()
		}
	}

	m.ensureButtonBar()
	buttonBarContent := m.buttonBar.Render()

	sections := []string{title, progress, "", stepContent, ""}
	if m.errText != "" {
		sections = append(sections, styleErrorText().Render("✗ "+m.errText), "")
	}
	if m.st.Submitting {
		sections = append(sections, styleNoteText().Render("Submitting report..."), "")
	}
	sections = append(sections, buttonBarContent, "",
		renderHintBar("tab", "navigate", "ctrl+n", "next", "esc", "back"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	modalWidth := 70
	if m.width > 0 && modalWidth > m.width-4 {
		modalWidth = m.width - 4
	}

	return styleModalContainer().
		Width(modalWidth).
		BorderForeground(lipgloss.Color(t.BorderDefault)).
		Render(content)
}

// renderProgress draws the five-dot step indicator.
func (m *Model) renderProgress() string {
	t := theme.Current()
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))
	todoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgSurface2))

	var dots []string
	for _, stepDef := range draft.Steps {
		if stepDef.ID <= m.st.Step {
			dots = append(dots, doneStyle.Render("●"))
		} else {
			dots = append(dots, todoStyle.Render("○"))
		}
	}
	return strings.Join(dots, " ")
}
