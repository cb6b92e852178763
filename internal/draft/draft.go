// Package draft holds the in-progress item report assembled by the submission
// wizard. It is pure state: no I/O, no rendering. The TUI layer owns one State
// per wizard instance and folds user input into it; the API client serializes
// the finished Draft.
package draft

// ItemType is the report kind.
type ItemType string

const (
	TypeUnset ItemType = ""
	TypeLost  ItemType = "lost"
	TypeFound ItemType = "found"
)

// Categories is the fixed category set offered at step 3.
var Categories = []string{
	"Electronics", "Personal Items", "Jewelry", "Keys", "Clothing",
	"Documents", "Bags", "Accessories", "Sports Equipment", "Other",
}

// MaxImages caps the photos attached to a report. Uploads beyond the cap are
// dropped, not evicted: the first five picked stay.
const MaxImages = 5

// Step definitions for the five-step flow.
type Step struct {
	ID          int
	Title       string
	Description string
}

// Steps lists the wizard steps in order.
var Steps = []Step{
	{ID: 1, Title: "Item Type", Description: "Lost or Found?"},
	{ID: 2, Title: "Details", Description: "Title & Description"},
	{ID: 3, Title: "Category", Description: "Category & Tags"},
	{ID: 4, Title: "Images", Description: "Upload Photos"},
	{ID: 5, Title: "Location", Description: "Where & When"},
}

// StepCount is the index of the final step.
const StepCount = 5

// Coordinates is a precise point picked on the map.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Draft is the accumulated report. Images are file paths in pick order.
type Draft struct {
	Type         ItemType
	Title        string
	Description  string
	Category     string
	Tags         []string
	Images       []string
	LocationName string
	Coordinates  *Coordinates
	DateOccurred string
}

// State is the wizard's mutable state: the draft plus step position and the
// re-entrancy guard for submission.
type State struct {
	Draft      Draft
	Step       int
	Submitting bool
}

// NewState creates a wizard state positioned at step 1 with an empty draft.
func NewState() *State {
	return &State{Step: 1}
}

// StepValid reports whether the given step's gate condition holds.
func (s *State) StepValid(step int) bool {
	d := &s.Draft
	switch step {
	case 1:
		return d.Type != TypeUnset
	case 2:
		return d.Title != "" && d.Description != ""
	case 3:
		return d.Category != ""
	case 4:
		return len(d.Images) >= 1
	case 5:
		return d.DateOccurred != "" && s.HasLocation()
	default:
		return false
	}
}

// HasLocation reports whether the draft carries a usable location: a named
// place, precise coordinates, or both.
func (s *State) HasLocation() bool {
	return s.Draft.LocationName != "" || s.Draft.Coordinates != nil
}

// CanAdvance reports whether Advance would move forward from the current step.
func (s *State) CanAdvance() bool {
	return s.Step < StepCount && s.StepValid(s.Step)
}

// Advance moves to the next step if the current step's gate passes.
// No-op at the last step or when the gate fails. Returns whether it moved.
func (s *State) Advance() bool {
	if !s.CanAdvance() {
		return false
	}
	s.Step++
	return true
}

// Retreat moves to the previous step. Never validated. No-op at step 1.
func (s *State) Retreat() bool {
	if s.Step <= 1 {
		return false
	}
	s.Step--
	return true
}

// ReadyToSubmit reports whether the final-step gate passes.
func (s *State) ReadyToSubmit() bool {
	return s.StepValid(StepCount)
}

// SetType records whether the item was lost or found.
func (s *State) SetType(t ItemType) {
	s.Draft.Type = t
}

// SetTitle replaces the title.
func (s *State) SetTitle(title string) {
	s.Draft.Title = title
}

// SetDescription replaces the description.
func (s *State) SetDescription(desc string) {
	s.Draft.Description = desc
}

// SetCategory replaces the category.
func (s *State) SetCategory(category string) {
	s.Draft.Category = category
}

// AddTag appends tag unless it is empty or already present. Returns whether
// the tag was added so the caller knows to clear its input buffer.
func (s *State) AddTag(tag string) bool {
	if tag == "" {
		return false
	}
	for _, existing := range s.Draft.Tags {
		if existing == tag {
			return false
		}
	}
	s.Draft.Tags = append(s.Draft.Tags, tag)
	return true
}

// RemoveTag removes the tag if present.
func (s *State) RemoveTag(tag string) {
	for i, existing := range s.Draft.Tags {
		if existing == tag {
			s.Draft.Tags = append(s.Draft.Tags[:i], s.Draft.Tags[i+1:]...)
			return
		}
	}
}

// AddImages appends the given image paths, then truncates to MaxImages.
// Earlier picks are retained; excess new files are dropped.
func (s *State) AddImages(paths ...string) {
	s.Draft.Images = append(s.Draft.Images, paths...)
	if len(s.Draft.Images) > MaxImages {
		s.Draft.Images = s.Draft.Images[:MaxImages]
	}
}

// RemoveImage removes the image at index. Out-of-range is a no-op.
func (s *State) RemoveImage(index int) {
	if index < 0 || index >= len(s.Draft.Images) {
		return
	}
	s.Draft.Images = append(s.Draft.Images[:index], s.Draft.Images[index+1:]...)
}

// SetLocationName replaces the human-readable location label.
func (s *State) SetLocationName(name string) {
	s.Draft.LocationName = name
}

// SetCoordinates replaces the precise coordinates.
func (s *State) SetCoordinates(lat, lng float64) {
	s.Draft.Coordinates = &Coordinates{Latitude: lat, Longitude: lng}
}

// SetDateOccurred replaces the occurrence timestamp (datetime-local string).
func (s *State) SetDateOccurred(date string) {
	s.Draft.DateOccurred = date
}
