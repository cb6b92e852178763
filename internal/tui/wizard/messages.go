package wizard

// TabExitForwardMsg signals that focus left the step content moving forward
// (Tab from the last input) and should land on the button bar.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg signals that focus left the step content moving backward
// (Shift+Tab from the first input) and should land on the last button.
type TabExitBackwardMsg struct{}

// SubmittedMsg is sent when the report was accepted by the backend.
type SubmittedMsg struct {
	ID string
}

// SubmitFailedMsg is sent when submission failed. The draft is preserved.
type SubmitFailedMsg struct {
	Err error
}

// AuthRequiredMsg is sent when submission was attempted without a stored
// credential. No request was made.
type AuthRequiredMsg struct{}

// CancelledMsg is sent when the user abandons the wizard.
type CancelledMsg struct{}

// CoordinateSelectedMsg is sent when the user sets a point on the map.
type CoordinateSelectedMsg struct {
	Latitude  float64
	Longitude float64
}

// MapUnavailableMsg is sent when the map engine could not be brought up and
// the location step fell back to static content.
type MapUnavailableMsg struct {
	Err error
}

// DescriptionEditedMsg carries content back from the external $EDITOR.
type DescriptionEditedMsg struct {
	Content string
}
