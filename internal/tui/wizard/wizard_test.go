package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reunite-ai/reunite/internal/auth"
	"github.com/reunite-ai/reunite/internal/draft"
	"github.com/reunite-ai/reunite/internal/mapview"
)

// recordingCreator counts submissions and returns a fixed result.
type recordingCreator struct {
	mu    sync.Mutex
	calls int
	id    string
	err   error
}

func (c *recordingCreator) CreateItem(ctx context.Context, d draft.Draft) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.id, c.err
}

func (c *recordingCreator) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// stubEngine satisfies mapview.Engine without any backing service.
type stubEngine struct{}

func (stubEngine) Acquire(cfg mapview.Config) (mapview.Handle, error) {
	return stubHandle{marker: cfg.Center}, nil
}

type stubHandle struct{ marker mapview.Coordinate }

func (h stubHandle) Marker() mapview.Coordinate     { return h.marker }
func (h stubHandle) MoveMarker(mapview.Coordinate)  {}
func (h stubHandle) Render(width, height int) string { return "map" }
func (h stubHandle) Release()                        {}

func newTestWizard(creator *recordingCreator, token string) *Model {
	return New(creator, auth.StaticToken(token), stubEngine{}, mapview.Coordinate{
		Latitude:  17.375685,
		Longitude: 78.474661,
	})
}

func fillValid(st *draft.State) {
	st.SetType(draft.TypeLost)
	st.SetTitle("Black wallet")
	st.SetDescription("Leather, monogrammed")
	st.SetCategory("Personal Items")
	st.AddImages("/tmp/wallet.jpg")
	st.SetLocationName("Central Station")
	st.SetDateOccurred("2026-08-20T10:00")
}

func TestGoNextBlockedShowsViolation(t *testing.T) {
	creator := &recordingCreator{id: "item-1"}
	m := newTestWizard(creator, "tok")
	_ = m.Init()

	// Step 1 with no type chosen: Next must not move
	cmd := m.goNext()
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.st.Step)
	assert.Equal(t, stepViolationMessage(1), m.errText)

	// Satisfy the gate, advance clears the message
	m.st.SetType(draft.TypeLost)
	m.goNext()
	assert.Equal(t, 2, m.st.Step)
	assert.Empty(t, m.errText)
}

func TestBackNeverValidates(t *testing.T) {
	creator := &recordingCreator{id: "item-1"}
	m := newTestWizard(creator, "tok")
	_ = m.Init()

	m.st.SetType(draft.TypeFound)
	m.goNext()
	require.Equal(t, 2, m.st.Step)

	// Step 2 is incomplete but Back still works
	_, _ = m.goBack()
	assert.Equal(t, 1, m.st.Step)
}

func TestSubmitRefusedWhenFinalGateFails(t *testing.T) {
	creator := &recordingCreator{id: "item-1"}
	m := newTestWizard(creator, "tok")
	_ = m.Init()

	fillValid(m.st)
	m.st.SetDateOccurred("") // break the final gate
	m.st.Step = draft.StepCount

	cmd := m.submit()
	assert.Nil(t, cmd)
	assert.False(t, m.st.Submitting)
	assert.Equal(t, 0, creator.callCount(), "no request may be issued while the gate fails")
	assert.Equal(t, stepViolationMessage(draft.StepCount), m.errText)
}

func TestSubmitHappyPath(t *testing.T) {
	creator := &recordingCreator{id: "abc123"}
	m := newTestWizard(creator, "tok")
	_ = m.Init()

	fillValid(m.st)
	m.st.Step = draft.StepCount

	cmd := m.submit()
	require.NotNil(t, cmd)
	assert.True(t, m.st.Submitting)

	msg := cmd()
	submitted, ok := msg.(SubmittedMsg)
	require.True(t, ok, "expected SubmittedMsg, got %T", msg)
	assert.Equal(t, "abc123", submitted.ID)
	assert.Equal(t, 1, creator.callCount())

	_, _ = m.Update(submitted)
	assert.False(t, m.st.Submitting)
	assert.Equal(t, "abc123", m.CreatedID())
}

func TestSubmitWhileInFlightIsNoOp(t *testing.T) {
	creator := &recordingCreator{id: "abc123"}
	m := newTestWizard(creator, "tok")
	_ = m.Init()

	fillValid(m.st)
	m.st.Step = draft.StepCount

	first := m.submit()
	require.NotNil(t, first)

	// A second activation before completion must not issue another request
	second := m.submit()
	assert.Nil(t, second)

	first()
	assert.Equal(t, 1, creator.callCount())
}

func TestSubmitWithoutTokenAbortsBeforeRequest(t *testing.T) {
	creator := &recordingCreator{id: "abc123"}
	m := newTestWizard(creator, "")
	_ = m.Init()

	fillValid(m.st)
	m.st.Step = draft.StepCount

	cmd := m.submit()
	require.NotNil(t, cmd)

	msg := cmd()
	_, ok := msg.(AuthRequiredMsg)
	require.True(t, ok, "expected AuthRequiredMsg, got %T", msg)
	assert.Equal(t, 0, creator.callCount(), "credential absence must short-circuit before any request")
	assert.False(t, m.st.Submitting)
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	creator := &recordingCreator{err: errors.New("validation failed: missing category")}
	m := newTestWizard(creator, "tok")
	_ = m.Init()

	fillValid(m.st)
	m.st.Step = draft.StepCount
	before := m.st.Draft

	cmd := m.submit()
	require.NotNil(t, cmd)
	msg := cmd()
	failed, ok := msg.(SubmitFailedMsg)
	require.True(t, ok)

	_, _ = m.Update(failed)
	assert.False(t, m.st.Submitting, "submitting flag must clear on failure")
	assert.Contains(t, m.errText, "missing category")
	assert.Equal(t, before, m.st.Draft, "draft survives a failed submission")
}

func TestCancelOnFirstStepEmitsCancelled(t *testing.T) {
	creator := &recordingCreator{}
	m := newTestWizard(creator, "tok")
	_ = m.Init()

	_, cmd := m.cancel()
	require.NotNil(t, cmd)
	_, ok := cmd().(CancelledMsg)
	assert.True(t, ok)
	assert.True(t, m.cancelled)
}

func TestButtonBarSubmitDisabledUntilReady(t *testing.T) {
	creator := &recordingCreator{}
	m := newTestWizard(creator, "tok")
	_ = m.Init()

	fillValid(m.st)
	m.st.SetDateOccurred("")
	m.st.Step = draft.StepCount
	m.ensureButtonBar()

	m.buttonBar.FocusLast()
	assert.NotEqual(t, ButtonNext, m.buttonBar.FocusedButton(),
		"disabled Submit must not take focus")

	m.st.SetDateOccurred("2026-08-20T10:00")
	m.ensureButtonBar()
	m.buttonBar.FocusLast()
	assert.Equal(t, ButtonNext, m.buttonBar.FocusedButton())
}

func TestViolationMessagesPerStep(t *testing.T) {
	for step := 1; step <= draft.StepCount; step++ {
		if stepViolationMessage(step) == "" {
			t.Errorf("step %d has no violation message", step)
		}
	}
}
