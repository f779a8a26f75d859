// Package prompt provides the one-line input shown at the bottom of the
// screen for commands and playlist names.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/ui/styles"
)

// Kind tells what the entered text is for.
type Kind int

const (
	Command Kind = iota
	NewPlaylist
)

// SubmitMsg carries the text entered in a prompt. Text is trimmed.
type SubmitMsg struct {
	Kind Kind
	Text string
}

// CancelMsg is sent when the prompt is dismissed.
type CancelMsg struct {
	Kind Kind
}

// Model wraps a text input with the kind of value it collects.
type Model struct {
	input  textinput.Model
	kind   Kind
	active bool
}

// New creates an inactive prompt.
func New() Model {
	in := textinput.New()
	in.CharLimit = 256
	in.Cursor.Style = styles.T().S().Playing
	return Model{input: in}
}

// Open shows the prompt and focuses it.
func (m *Model) Open(kind Kind) tea.Cmd {
	m.kind = kind
	m.active = true
	m.input.SetValue("")
	switch kind {
	case NewPlaylist:
		m.input.Prompt = "New playlist: "
		m.input.Placeholder = "name"
	default:
		m.input.Prompt = ":"
		m.input.Placeholder = ""
	}
	return m.input.Focus()
}

// Active reports whether the prompt is shown.
func (m Model) Active() bool {
	return m.active
}

// Kind returns what the prompt collects.
func (m Model) Kind() Kind {
	return m.kind
}

// SetWidth sets the visible input width.
func (m *Model) SetWidth(width int) {
	m.input.Width = max(width-len(m.input.Prompt)-1, 1)
}

// Update handles a message while the prompt is active. Enter submits
// and esc cancels; both close the prompt.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			submit := SubmitMsg{Kind: m.kind, Text: strings.TrimSpace(m.input.Value())}
			m.close()
			return func() tea.Msg { return submit }
		case tea.KeyEsc:
			cancel := CancelMsg{Kind: m.kind}
			m.close()
			return func() tea.Msg { return cancel }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) close() {
	m.active = false
	m.input.Blur()
	m.input.SetValue("")
}

// View renders the input, or nothing when inactive.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	return m.input.View()
}
