package tui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func TestToast_ShowDisplaysMessage(t *testing.T) {
	toast := NewToast()

	cmd := toast.Show("test message", ToastInfo)

	if !toast.IsVisible() {
		t.Error("expected toast to be visible after Show()")
	}

	if toast.GetMessage() != "test message" {
		t.Errorf("expected message 'test message', got %q", toast.GetMessage())
	}

	// Verify command is returned (for dismissal)
	if cmd == nil {
		t.Error("expected Show() to return a command for dismissal")
	}
}

func TestToast_ViewReturnsEmptyWhenNotVisible(t *testing.T) {
	toast := NewToast()

	view := toast.View(80, 24)

	if view != "" {
		t.Errorf("expected empty view when not visible, got %q", view)
	}
}

func TestToast_ViewRendersMessageWhenVisible(t *testing.T) {
	toast := NewToast()
	toast.Show("142 chars truncated", ToastSuccess)

	view := toast.View(80, 24)

	if view == "" {
		t.Error("expected non-empty view when visible")
	}

	// The view should contain the message
	if !strings.Contains(view, "142 chars truncated") {
		t.Errorf("expected view to contain message, got %q", view)
	}
}

func TestToast_DismissMsgHidesToast(t *testing.T) {
	toast := NewToast()
	toast.Show("test message", ToastInfo)

	// Send dismiss message
	cmd := toast.Update(ToastDismissMsg{})

	if toast.IsVisible() {
		t.Error("expected toast to be hidden after ToastDismissMsg")
	}

	if toast.GetMessage() != "" {
		t.Error("expected message to be cleared after dismiss")
	}

	if cmd != nil {
		t.Error("expected no command after dismiss")
	}
}

func TestToast_ShowClearsPreviousMessage(t *testing.T) {
	toast := NewToast()
	toast.Show("first message", ToastInfo)
	toast.Show("second message", ToastError)

	if toast.GetMessage() != "second message" {
		t.Errorf("expected 'second message', got %q", toast.GetMessage())
	}
}

func TestToast_ShowUpdatesDismissTime(t *testing.T) {
	toast := NewToast()

	// Show first message
	toast.Show("first", ToastInfo)
	firstDismissAt := toast.dismissAt

	// Wait a tiny bit
	time.Sleep(10 * time.Millisecond)

	// Show second message - should reset dismiss time
	toast.Show("second", ToastInfo)
	secondDismissAt := toast.dismissAt

	if !secondDismissAt.After(firstDismissAt) {
		t.Error("expected second dismiss time to be after first")
	}
}

func TestToast_ViewPositionsBottomRight(t *testing.T) {
	toast := NewToast()
	toast.Show("test", ToastInfo)

	view := toast.View(80, 24)
	lines := strings.Split(view, "\n")

	// Should have vertical positioning (newlines at start)
	if len(lines) < 2 {
		t.Errorf("expected multiple lines for positioning, got %d", len(lines))
	}

	// The last line should contain the toast content
	lastLine := lines[len(lines)-1]
	if !strings.Contains(lastLine, "test") {
		t.Errorf("expected toast content in last line, got %q", lastLine)
	}
}

func TestToast_ViewHandlesNarrowWidth(t *testing.T) {
	toast := NewToast()
	toast.Show("very long message that might exceed narrow width", ToastError)

	// Test with very narrow width
	view := toast.View(10, 24)

	// Should still render something
	if view == "" {
		t.Error("expected view even with narrow width")
	}
}

func TestToast_DismissCmdCalculatesRemainingTime(t *testing.T) {
	toast := NewToast()
	toast.Show("test", ToastInfo)

	// Get the dismiss command
	cmd := toast.dismissCmd()

	if cmd == nil {
		t.Error("expected non-nil dismiss command")
	}

	// Execute the command to verify it returns a message
	msg := cmd()

	// Should return a ToastDismissMsg
	if _, ok := msg.(ToastDismissMsg); !ok {
		t.Errorf("expected ToastDismissMsg, got %T", msg)
	}
}

func TestToast_UpdateIgnoresOtherMessages(t *testing.T) {
	toast := NewToast()
	toast.Show("test", ToastInfo)

	// Send unrelated message
	cmd := toast.Update(tea.KeyPressMsg{})

	// Toast should still be visible
	if !toast.IsVisible() {
		t.Error("expected toast to remain visible after unrelated message")
	}

	if cmd != nil {
		t.Error("expected no command for unrelated message")
	}
}

func TestToast_ShowToastMsgType(t *testing.T) {
	// Verify the message type exists and has the expected structure
	msg := ShowToastMsg{Text: "test notification", Variant: ToastSuccess}

	if msg.Text != "test notification" {
		t.Errorf("expected text 'test notification', got %q", msg.Text)
	}
	if msg.Variant != ToastSuccess {
		t.Errorf("expected ToastSuccess variant, got %v", msg.Variant)
	}
}

func TestToast_DismissSequence(t *testing.T) {
	toast := NewToast()

	// Show toast
	cmd := toast.Show("test", ToastInfo)
	if cmd == nil {
		t.Fatal("expected Show() to return dismiss command")
	}

	// Execute the command to get the dismiss message
	msg := cmd()
	dismissMsg, ok := msg.(ToastDismissMsg)
	if !ok {
		t.Fatalf("expected ToastDismissMsg from command, got %T", msg)
	}

	// Send the dismiss message to the toast
	toast.Update(dismissMsg)

	// Toast should now be hidden
	if toast.IsVisible() {
		t.Error("expected toast to be hidden after complete dismiss sequence")
	}

	// View should be empty
	view := toast.View(80, 24)
	if view != "" {
		t.Errorf("expected empty view after dismiss, got %q", view)
	}
}
