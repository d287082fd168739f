package term

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/cristianoliveira/tip/internal/surface"
)

const (
	toastWidth = 40
	modalWidth = 50
)

// ToastStyle is the look of one toast type.
type ToastStyle struct {
	Icon  string
	Color lipgloss.Color
}

// Styles holds every lipgloss style the surface renders with.
type Styles struct {
	Toasts        map[string]ToastStyle
	Toast         lipgloss.Style
	ModalBox      lipgloss.Style
	ModalTitle    lipgloss.Style
	Button        lipgloss.Style
	FocusedButton lipgloss.Style
	Loading       lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Toasts: map[string]ToastStyle{
			"success": {Icon: "✓", Color: lipgloss.Color("#10b981")},
			"warning": {Icon: "⚠", Color: lipgloss.Color("#f59e0b")},
			"info":    {Icon: "ℹ", Color: lipgloss.Color("#3b82f6")},
			"error":   {Icon: "✗", Color: lipgloss.Color("#ef4444")},
		},
		Toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(toastWidth),
		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6b7280")).
			Padding(1, 2).
			Width(modalWidth),
		ModalTitle: lipgloss.NewStyle().Bold(true),
		Button: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#d1d5db")),
		FocusedButton: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#3b82f6")),
		Loading: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3),
	}
}

// sanitize makes user text inert: escape sequences are stripped and the
// remaining control characters other than newline and tab are dropped.
func sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// View implements tea.Model.
func (m *Model) View() string {
	var base string
	if m.inner != nil {
		base = m.inner.View()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.modal != nil:
		block, buttons := m.renderModal()
		var x, y int
		base, x, y = m.placeCenter(block)
		m.modalBox = rect{x: x, y: y, w: lipgloss.Width(block), h: lipgloss.Height(block)}
		for i, b := range buttons {
			m.buttons[i] = rect{x: x + b.x, y: y + b.y, w: b.w, h: b.h}
		}
	case m.loading != nil:
		base, _, _ = m.placeCenter(m.renderLoading())
	}

	if len(m.toasts) == 0 {
		return base
	}
	return overlayTopRight(base, m.renderToasts(), m.width)
}

// placeCenter centers block on screen and returns where its top left corner
// landed.
func (m *Model) placeCenter(block string) (string, int, int) {
	if m.width == 0 || m.height == 0 {
		return block, 0, 0
	}
	w, h := lipgloss.Width(block), lipgloss.Height(block)
	x, y := max(0, (m.width-w)/2), max(0, (m.height-h)/2)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block), x, y
}

func (m *Model) renderToasts() string {
	blocks := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		st, ok := m.styles.Toasts[t.view.Type]
		if !ok {
			st = m.styles.Toasts["info"]
		}
		style := m.styles.Toast.BorderForeground(st.Color)
		icon := lipgloss.NewStyle().Foreground(st.Color).Bold(true).Render(st.Icon)
		if t.phase != phaseVisible {
			style = style.Faint(true)
		}
		blocks = append(blocks, style.Render(icon+" "+sanitize(t.view.Message)))
	}
	return lipgloss.JoinVertical(lipgloss.Right, blocks...)
}

// renderModal draws the modal box and returns the button rects relative to
// the box's top left corner, indexed by focus.
func (m *Model) renderModal() (string, [buttonCount]rect) {
	md := m.modal
	box := m.styles.ModalBox
	if md.phase != phaseVisible {
		box = box.Faint(true)
	}

	// Text is wrapped before joining so the button row lands on a known line.
	text := lipgloss.NewStyle().Width(modalWidth - box.GetHorizontalPadding())
	parts := []string{
		text.Render(m.styles.ModalTitle.Render(sanitize(md.view.Title))),
		"",
		text.Render(sanitize(md.view.Message)),
	}
	if md.view.Kind == surface.ModalPrompt {
		parts = append(parts, "", md.input.View())
	}
	parts = append(parts, "")
	row := 0
	for _, p := range parts {
		row += lipgloss.Height(p)
	}

	cancel, confirm := m.styles.Button, m.styles.Button
	switch md.focus {
	case focusConfirm:
		confirm = m.styles.FocusedButton
	case focusCancel:
		cancel = m.styles.FocusedButton
	}
	cancelBtn := cancel.Render(sanitize(md.view.CancelText))
	confirmBtn := confirm.Render(sanitize(md.view.ConfirmText))
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, cancelBtn, " ", confirmBtn)
	parts = append(parts, buttons, "", m.help.View(m.keys))

	left := box.GetBorderLeftSize() + box.GetPaddingLeft()
	top := box.GetBorderTopSize() + box.GetPaddingTop() + row
	var rects [buttonCount]rect
	rects[focusCancel] = rect{x: left, y: top, w: lipgloss.Width(cancelBtn), h: lipgloss.Height(cancelBtn)}
	rects[focusConfirm] = rect{
		x: left + lipgloss.Width(cancelBtn) + 1,
		y: top,
		w: lipgloss.Width(confirmBtn),
		h: lipgloss.Height(confirmBtn),
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)), rects
}

func (m *Model) renderLoading() string {
	box := m.styles.Loading
	if m.loading.phase != phaseVisible {
		box = box.Faint(true)
	}
	return box.Render(m.spinner.View() + " " + sanitize(m.loading.view.Message))
}

// overlayTopRight draws overlay over the right edge of base, line by line.
func overlayTopRight(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	if base == "" {
		baseLines = nil
	}
	overLines := strings.Split(overlay, "\n")

	overWidth := lipgloss.Width(overlay)
	if width < overWidth {
		width = overWidth
	}
	for len(baseLines) < len(overLines) {
		baseLines = append(baseLines, "")
	}

	left := width - overWidth
	for i, line := range overLines {
		under := ansi.Truncate(baseLines[i], left, "")
		if pad := left - ansi.StringWidth(under); pad > 0 {
			under += strings.Repeat(" ", pad)
		}
		baseLines[i] = under + line
	}
	return strings.Join(baseLines, "\n")
}
