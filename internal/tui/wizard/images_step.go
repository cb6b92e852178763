package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/reunite-ai/reunite/internal/draft"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type browseEntry struct {
	name  string
	path  string
	isDir bool
}

// ImagesStep browses the filesystem for photos to attach.
// Picks accumulate into the draft, which enforces the image cap.
type ImagesStep struct {
	st          *draft.State
	currentPath string
	entries     []browseEntry
	browseIdx   int
	pickedIdx   int
	focusIdx    int // 0 = browser, 1 = picked list, -1 = blurred
	note        string
	width       int
	height      int
}

// NewImagesStep creates the images step rooted at the working directory.
func NewImagesStep(st *draft.State) *ImagesStep {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	s := &ImagesStep{
		st:          st,
		currentPath: cwd,
	}
	_ = s.loadDirectory(cwd)
	return s
}

// loadDirectory loads directories and image files from the given path.
func (s *ImagesStep) loadDirectory(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	s.entries = s.entries[:0]

	absPath, err := filepath.Abs(path)
	if err == nil && absPath != filepath.Dir(absPath) {
		s.entries = append(s.entries, browseEntry{
			name:  "..",
			path:  filepath.Dir(absPath),
			isDir: true,
		})
	}

	var dirs []browseEntry
	var files []browseEntry
	for _, entry := range entries {
		fullPath := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			dirs = append(dirs, browseEntry{name: entry.Name(), path: fullPath, isDir: true})
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, browseEntry{name: entry.Name(), path: fullPath})
		}
	}

	sort.Slice(dirs, func(i, j int) bool {
		return strings.ToLower(dirs[i].name) < strings.ToLower(dirs[j].name)
	})
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i].name) < strings.ToLower(files[j].name)
	})

	s.entries = append(s.entries, dirs...)
	s.entries = append(s.entries, files...)
	s.currentPath = path
	s.browseIdx = 0
	return nil
}

func (s *ImagesStep) Init() tea.Cmd { return nil }

func (s *ImagesStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "tab":
		if s.focusIdx == 0 && len(s.st.Draft.Images) > 0 {
			s.focusIdx = 1
			s.pickedIdx = 0
			return nil
		}
		return func() tea.Msg { return TabExitForwardMsg{} }
	case "shift+tab":
		if s.focusIdx == 1 {
			s.focusIdx = 0
			return nil
		}
		return func() tea.Msg { return TabExitBackwardMsg{} }
	}

	if s.focusIdx == 1 {
		switch keyMsg.String() {
		case "up", "k":
			if s.pickedIdx > 0 {
				s.pickedIdx--
			}
		case "down", "j":
			if s.pickedIdx < len(s.st.Draft.Images)-1 {
				s.pickedIdx++
			}
		case "x", "delete":
			s.st.RemoveImage(s.pickedIdx)
			if s.pickedIdx >= len(s.st.Draft.Images) && s.pickedIdx > 0 {
				s.pickedIdx--
			}
			s.note = ""
			if len(s.st.Draft.Images) == 0 {
				s.focusIdx = 0
			}
		}
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if s.browseIdx > 0 {
			s.browseIdx--
		}
	case "down", "j":
		if s.browseIdx < len(s.entries)-1 {
			s.browseIdx++
		}
	case "enter", " ":
		if s.browseIdx < 0 || s.browseIdx >= len(s.entries) {
			return nil
		}
		entry := s.entries[s.browseIdx]
		if entry.isDir {
			_ = s.loadDirectory(entry.path)
			return nil
		}
		s.pick(entry.path)
	case "backspace":
		parentPath := filepath.Dir(s.currentPath)
		if parentPath != s.currentPath {
			_ = s.loadDirectory(parentPath)
		}
	}
	return nil
}

// pick attaches the file, reporting cap truncation and duplicates.
func (s *ImagesStep) pick(path string) {
	for _, existing := range s.st.Draft.Images {
		if existing == path {
			s.note = "already attached"
			return
		}
	}

	before := len(s.st.Draft.Images)
	s.st.AddImages(path)
	if len(s.st.Draft.Images) == before {
		s.note = fmt.Sprintf("image limit reached (%d), keeping the first %d picked", draft.MaxImages, draft.MaxImages)
		return
	}
	s.note = ""
}

func (s *ImagesStep) View() string {
	var b strings.Builder

	b.WriteString(styleNoteText().Render(s.currentPath))
	b.WriteString("\n\n")

	hasFiles := false
	for _, entry := range s.entries {
		if !entry.isDir {
			hasFiles = true
			break
		}
	}

	if !hasFiles {
		b.WriteString(styleNoteText().Render("No images in this directory"))
		b.WriteString("\n")
	}

	for i, entry := range s.entries {
		icon := "🖼"
		if entry.isDir {
			icon = "📁"
		}
		line := icon + " " + entry.name
		if i == s.browseIdx && s.focusIdx == 0 {
			line = styleSelectedRow().Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleFieldLabel().Render(
		fmt.Sprintf("Attached (%d/%d)", len(s.st.Draft.Images), draft.MaxImages)))
	b.WriteString("\n")
	if len(s.st.Draft.Images) == 0 {
		b.WriteString(styleNoteText().Render("none yet, at least one photo is required"))
		b.WriteString("\n")
	}
	for i, path := range s.st.Draft.Images {
		line := filepath.Base(path)
		if i == s.pickedIdx && s.focusIdx == 1 {
			line = styleSelectedRow().Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if s.note != "" {
		b.WriteString("\n")
		b.WriteString(styleErrorText().Render(s.note))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.focusIdx == 1 {
		b.WriteString(renderHintBar("↑↓", "navigate", "x", "remove", "tab", "buttons"))
	} else {
		b.WriteString(renderHintBar("↑↓", "navigate", "enter", "attach", "backspace", "up", "tab", "attached"))
	}

	return b.String()
}

func (s *ImagesStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *ImagesStep) Focus() { s.focusIdx = 0 }
func (s *ImagesStep) Blur()  { s.focusIdx = -1 }
