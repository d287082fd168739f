package term

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tip/internal/surface"
)

// KeyMap lists the keys a mounted modal reacts to.
type KeyMap struct {
	Confirm   key.Binding
	Cancel    key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Press     key.Binding
}

// DefaultKeyMap returns the standard modal bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		FocusNext: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next")),
		FocusPrev: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev")),
		Press:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "press button")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel, k.FocusNext}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Cancel}, {k.FocusNext, k.FocusPrev, k.Press}}
}

// translate maps a key message onto the keys key handlers understand.
func (k KeyMap) translate(msg tea.KeyMsg) surface.Key {
	switch {
	case key.Matches(msg, k.Confirm):
		return surface.KeyEnter
	case key.Matches(msg, k.Cancel):
		return surface.KeyEscape
	default:
		return surface.KeyOther
	}
}

// isArrow reports whether msg is a left/right arrow, which prompts keep for
// cursor movement.
func isArrow(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyLeft || msg.Type == tea.KeyRight
}
