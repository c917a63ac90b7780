package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// AnswerInput wraps bubbles/textinput for typing whole-number answers.
// Single-character keys other than digits are dropped.
type AnswerInput struct {
	Model textinput.Model
}

// NewAnswerInput creates a focused answer input holding at most maxDigits.
func NewAnswerInput(placeholder string, maxDigits int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "= "
	if maxDigits > 0 {
		ti.CharLimit = maxDigits
		ti.SetWidth(maxDigits + 1)
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update handles messages.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the input.
func (a AnswerInput) View() string {
	return a.Model.View()
}

// Value returns the raw text typed so far.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Reset clears the typed text.
func (a *AnswerInput) Reset() {
	a.Model.Reset()
}
