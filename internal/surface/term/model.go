// Package term renders toasts, modals and the loading overlay in a terminal.
// Model is both a bubbletea model and a surface.Surface: the feedback core
// mutates it from any goroutine, and the bubbletea loop renders it.
package term

import (
	"sort"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tip/internal/surface"
)

type phase int

const (
	phaseEntering phase = iota
	phaseVisible
	phaseLeaving
)

type toastItem struct {
	view  surface.ToastView
	phase phase
}

// Focus targets inside a modal. The buttons come first so they index the
// button rects.
const (
	focusCancel = iota
	focusConfirm
	buttonCount
	focusInput = buttonCount
)

var (
	confirmFocusOrder = []int{focusCancel, focusConfirm}
	promptFocusOrder  = []int{focusInput, focusCancel, focusConfirm}
)

type modalItem struct {
	view     surface.ModalView
	phase    phase
	onAction func(surface.Action)
	input    textinput.Model
	focus    int
}

type loadingItem struct {
	view  surface.LoadingView
	phase phase
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// changedMsg tells the bubbletea loop that surface state moved.
type changedMsg struct{}

// stoppedMsg ends the change watcher after Teardown.
type stoppedMsg struct{}

// Model is the terminal surface.
type Model struct {
	mu sync.Mutex

	inner  tea.Model
	keys   KeyMap
	help   help.Model
	styles Styles

	ready    bool
	readyFns []func()

	containers map[surface.Container]bool
	toasts     []*toastItem
	modal      *modalItem
	loading    *loadingItem
	spinner    spinner.Model
	spinning   bool

	bindings map[surface.Binding]surface.KeyHandler
	nextBind surface.Binding

	width, height int
	modalBox      rect
	buttons       [buttonCount]rect

	changed chan struct{}
	done    chan struct{}
	waiting bool
	stopped bool
}

// New returns a terminal surface layered over inner. inner may be nil.
func New(inner tea.Model) *Model {
	return &Model{
		inner:      inner,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		styles:     DefaultStyles(),
		containers: make(map[surface.Container]bool),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		bindings:   make(map[surface.Binding]surface.KeyHandler),
		changed:    make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

// notify wakes the bubbletea loop. It never blocks, so it is safe to call
// from inside Update.
func (m *Model) notify() {
	select {
	case m.changed <- struct{}{}:
	default:
	}
}

func (m *Model) waitForChange() tea.Cmd {
	ch, done := m.changed, m.done
	return func() tea.Msg {
		select {
		case <-ch:
			return changedMsg{}
		case <-done:
			return stoppedMsg{}
		}
	}
}

// rearm returns a watcher once the program has started, unless one is
// already pending or the surface is torn down. At most one watcher runs at
// a time.
func (m *Model) rearm() tea.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready || m.waiting || m.stopped {
		return nil
	}
	m.waiting = true
	return m.waitForChange()
}

// OnReady implements surface.ReadyNotifier. The surface becomes ready when
// the bubbletea program calls Init.
func (m *Model) OnReady(fn func()) {
	m.mu.Lock()
	if !m.ready {
		m.readyFns = append(m.readyFns, fn)
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	fn()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.mu.Lock()
	m.ready = true
	fns := m.readyFns
	m.readyFns = nil
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}

	cmds := []tea.Cmd{m.rearm()}
	if m.inner != nil {
		cmds = append(cmds, m.inner.Init())
	}
	if cmd := m.startSpinner(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// startSpinner returns the first spinner tick when the overlay needs one.
func (m *Model) startSpinner() tea.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loading == nil || m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, m.rearm())
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		m.mu.Lock()
		m.waiting = false
		m.mu.Unlock()
		return m, m.startSpinner()
	case stoppedMsg:
		m.mu.Lock()
		m.waiting = false
		m.mu.Unlock()
		return m, nil
	case spinner.TickMsg:
		return m, m.updateSpinner(msg)
	case tea.WindowSizeMsg:
		m.mu.Lock()
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.mu.Unlock()
		return m, m.forward(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && m.inner == nil {
			return m, tea.Quit
		}
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}
		return m, m.forward(msg)
	case tea.MouseMsg:
		if m.handleMouse(msg) {
			return m, nil
		}
		return m, m.forward(msg)
	}
	return m, m.forward(msg)
}

func (m *Model) forward(msg tea.Msg) tea.Cmd {
	if m.inner == nil {
		return nil
	}
	next, cmd := m.inner.Update(msg)
	m.mu.Lock()
	m.inner = next
	m.mu.Unlock()
	return cmd
}

func (m *Model) updateSpinner(msg spinner.TickMsg) tea.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loading == nil {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// handleKey gives feedback layers first claim on key presses. While a modal
// or the loading overlay is up, keys other than ctrl+c never reach inner.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return false, nil
	}

	k := m.keys.translate(msg)
	if k != surface.KeyOther && m.dispatchKey(k) {
		return true, nil
	}

	m.mu.Lock()
	md := m.modal
	loadingUp := m.loading != nil
	if md == nil {
		m.mu.Unlock()
		return loadingUp, nil
	}

	onInput := md.focus == focusInput
	var (
		cmd    tea.Cmd
		action func(surface.Action)
		act    surface.Action
	)
	switch {
	case onInput && isArrow(msg):
		md.input, cmd = md.input.Update(msg)
	case key.Matches(msg, m.keys.FocusNext):
		cmd = md.moveFocus(1)
	case key.Matches(msg, m.keys.FocusPrev):
		cmd = md.moveFocus(-1)
	case !onInput && key.Matches(msg, m.keys.Press):
		action, act = md.onAction, focusedAction(md.focus)
	case onInput:
		md.input, cmd = md.input.Update(msg)
	}
	m.mu.Unlock()

	if action != nil {
		action(act)
	}
	return true, cmd
}

// moveFocus steps through the modal's focus order. The text input only
// takes keys while it holds focus.
func (md *modalItem) moveFocus(step int) tea.Cmd {
	order := confirmFocusOrder
	if md.view.Kind == surface.ModalPrompt {
		order = promptFocusOrder
	}
	i := 0
	for j, f := range order {
		if f == md.focus {
			i = j
			break
		}
	}
	md.focus = order[(i+step+len(order))%len(order)]
	if md.view.Kind != surface.ModalPrompt {
		return nil
	}
	if md.focus == focusInput {
		return md.input.Focus()
	}
	md.input.Blur()
	return nil
}

func focusedAction(focus int) surface.Action {
	if focus == focusConfirm {
		return surface.ActionConfirm
	}
	return surface.ActionCancel
}

// dispatchKey offers k to the bound handlers, newest first, without holding
// the lock: handlers call back into the surface.
func (m *Model) dispatchKey(k surface.Key) bool {
	m.mu.Lock()
	ids := make([]surface.Binding, 0, len(m.bindings))
	for id := range m.bindings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	handlers := make([]surface.KeyHandler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, m.bindings[id])
	}
	m.mu.Unlock()

	for _, h := range handlers {
		if h(k) {
			return true
		}
	}
	return false
}

// handleMouse maps a left click on a modal button to that button's action
// and a click outside the box to a backdrop click. Other clicks are
// swallowed while a modal is up.
func (m *Model) handleMouse(msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	m.mu.Lock()
	md := m.modal
	box := m.modalBox
	buttons := m.buttons
	m.mu.Unlock()
	if md == nil {
		return false
	}
	if box.w == 0 || md.onAction == nil {
		return true
	}

	switch {
	case buttons[focusConfirm].contains(msg.X, msg.Y):
		md.onAction(surface.ActionConfirm)
	case buttons[focusCancel].contains(msg.X, msg.Y):
		md.onAction(surface.ActionCancel)
	case !box.contains(msg.X, msg.Y):
		md.onAction(surface.ActionBackdrop)
	}
	return true
}

// Setup implements surface.Surface.
func (m *Model) Setup() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.containers[surface.ToastContainer] = true
	m.containers[surface.ModalContainer] = true
	m.containers[surface.LoadingContainer] = true
	if m.stopped {
		m.done = make(chan struct{})
		m.stopped = false
	}
	return nil
}

// Teardown implements surface.Surface.
func (m *Model) Teardown() {
	m.mu.Lock()
	m.containers = make(map[surface.Container]bool)
	m.toasts = nil
	m.modal = nil
	m.loading = nil
	m.bindings = make(map[surface.Binding]surface.KeyHandler)
	m.modalBox = rect{}
	m.buttons = [buttonCount]rect{}
	if !m.stopped {
		m.stopped = true
		close(m.done)
	}
	m.mu.Unlock()
}

// HasContainer implements surface.Surface.
func (m *Model) HasContainer(c surface.Container) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.containers[c]
}

// MountToast implements surface.Surface.
func (m *Model) MountToast(v surface.ToastView) error {
	m.mu.Lock()
	if !m.containers[surface.ToastContainer] {
		m.mu.Unlock()
		return surface.ErrNoContainer
	}
	m.toasts = append(m.toasts, &toastItem{view: v, phase: phaseEntering})
	m.mu.Unlock()
	m.notify()
	return nil
}

func (m *Model) setToastPhase(id string, p phase) {
	m.mu.Lock()
	for _, t := range m.toasts {
		if t.view.ID == id {
			t.phase = p
			break
		}
	}
	m.mu.Unlock()
	m.notify()
}

// ShowToast implements surface.Surface.
func (m *Model) ShowToast(id string) { m.setToastPhase(id, phaseVisible) }

// HideToast implements surface.Surface.
func (m *Model) HideToast(id string) { m.setToastPhase(id, phaseLeaving) }

// RemoveToast implements surface.Surface.
func (m *Model) RemoveToast(id string) {
	m.mu.Lock()
	for i, t := range m.toasts {
		if t.view.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	m.notify()
}

// ClearToasts implements surface.Surface.
func (m *Model) ClearToasts() {
	m.mu.Lock()
	m.toasts = nil
	m.mu.Unlock()
	m.notify()
}

// MountModal implements surface.Surface.
func (m *Model) MountModal(v surface.ModalView, onAction func(surface.Action)) error {
	m.mu.Lock()
	if !m.containers[surface.ModalContainer] {
		m.mu.Unlock()
		return surface.ErrNoContainer
	}
	item := &modalItem{view: v, phase: phaseEntering, onAction: onAction, focus: focusConfirm}
	if v.Kind == surface.ModalPrompt {
		item.focus = focusInput
		in := textinput.New()
		in.Prompt = "> "
		in.Width = modalWidth - 8
		in.Placeholder = sanitize(v.Placeholder)
		in.SetValue(v.DefaultValue)
		in.CursorEnd()
		in.Focus()
		item.input = in
	}
	m.modal = item
	m.modalBox = rect{}
	m.buttons = [buttonCount]rect{}
	m.mu.Unlock()
	m.notify()
	return nil
}

func (m *Model) setModalPhase(id string, p phase) {
	m.mu.Lock()
	if m.modal != nil && m.modal.view.ID == id {
		m.modal.phase = p
	}
	m.mu.Unlock()
	m.notify()
}

// ShowModal implements surface.Surface.
func (m *Model) ShowModal(id string) { m.setModalPhase(id, phaseVisible) }

// HideModal implements surface.Surface.
func (m *Model) HideModal(id string) { m.setModalPhase(id, phaseLeaving) }

// InputValue implements surface.Surface.
func (m *Model) InputValue(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modal == nil || m.modal.view.ID != id || m.modal.view.Kind != surface.ModalPrompt {
		return "", false
	}
	return m.modal.input.Value(), true
}

// UnmountModal implements surface.Surface.
func (m *Model) UnmountModal() {
	m.mu.Lock()
	m.modal = nil
	m.modalBox = rect{}
	m.buttons = [buttonCount]rect{}
	m.mu.Unlock()
	m.notify()
}

// BindKeys implements surface.Surface.
func (m *Model) BindKeys(h surface.KeyHandler) surface.Binding {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextBind++
	m.bindings[m.nextBind] = h
	return m.nextBind
}

// UnbindKeys implements surface.Surface.
func (m *Model) UnbindKeys(b surface.Binding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bindings, b)
}

// MountLoading implements surface.Surface.
func (m *Model) MountLoading(v surface.LoadingView) error {
	m.mu.Lock()
	if !m.containers[surface.LoadingContainer] {
		m.mu.Unlock()
		return surface.ErrNoContainer
	}
	m.loading = &loadingItem{view: v, phase: phaseEntering}
	m.mu.Unlock()
	m.notify()
	return nil
}

func (m *Model) setLoadingPhase(p phase) {
	m.mu.Lock()
	if m.loading != nil {
		m.loading.phase = p
	}
	m.mu.Unlock()
	m.notify()
}

// ShowLoading implements surface.Surface.
func (m *Model) ShowLoading() { m.setLoadingPhase(phaseVisible) }

// HideLoading implements surface.Surface.
func (m *Model) HideLoading() { m.setLoadingPhase(phaseLeaving) }

// SetLoadingMessage implements surface.Surface.
func (m *Model) SetLoadingMessage(msg string) {
	m.mu.Lock()
	if m.loading != nil {
		m.loading.view.Message = msg
	}
	m.mu.Unlock()
	m.notify()
}

// UnmountLoading implements surface.Surface.
func (m *Model) UnmountLoading() {
	m.mu.Lock()
	m.loading = nil
	m.mu.Unlock()
	m.notify()
}

var (
	_ surface.Surface       = (*Model)(nil)
	_ surface.ReadyNotifier = (*Model)(nil)
	_ tea.Model             = (*Model)(nil)
)
