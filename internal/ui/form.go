package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field is one labelled text input.
type field struct {
	name  string
	label string
	input textinput.Model
}

func newField(name, label, placeholder string, secret bool) field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 32
	// A static cursor keeps Focus from scheduling blink ticks.
	ti.Cursor.SetMode(cursor.CursorStatic)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return field{name: name, label: label, input: ti}
}

// form is an ordered set of fields with a single focus.
type form struct {
	fields []field
	focus  int
}

func newForm(fields ...field) form {
	f := form{fields: fields}
	f.focusOn(0)
	return f
}

func (f *form) focusOn(i int) {
	f.focus = i
	for j := range f.fields {
		if j == i {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

func (f *form) next() {
	f.focusOn((f.focus + 1) % len(f.fields))
}

func (f *form) prev() {
	f.focusOn((f.focus - 1 + len(f.fields)) % len(f.fields))
}

// blur leaves every field unfocused.
func (f *form) blur() {
	for j := range f.fields {
		f.fields[j].input.Blur()
	}
}

// focusKey moves focus on tab, shift+tab, up and down. It reports whether
// the key was consumed.
func (f *form) focusKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		f.next()
	case tea.KeyShiftTab, tea.KeyUp:
		f.prev()
	default:
		return false
	}
	return true
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) value(name string) string {
	for _, fl := range f.fields {
		if fl.name == name {
			return fl.input.Value()
		}
	}
	return ""
}

func (f *form) reset(names ...string) {
	for _, name := range names {
		for j := range f.fields {
			if f.fields[j].name == name {
				f.fields[j].input.SetValue("")
			}
		}
	}
}

func (f *form) view(fb feedback) string {
	var b strings.Builder
	for _, fl := range f.fields {
		b.WriteString(fl.label)
		b.WriteString("\n")
		b.WriteString("  ")
		b.WriteString(fl.input.View())
		b.WriteString("\n")
		if msg := fb.forField(fl.name); msg != "" {
			b.WriteString("  ")
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n")
		}
	}
	return b.String()
}
