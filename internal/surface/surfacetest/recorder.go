// Package surfacetest provides an in-memory surface.Surface for tests.
package surfacetest

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cristianoliveira/tip/internal/surface"
)

// Toast states recorded by Recorder.
const (
	StateMounted = "mounted"
	StateVisible = "visible"
	StateHidden  = "hidden"
)

// ToastEntry is a mounted toast.
type ToastEntry struct {
	View  surface.ToastView
	State string
}

// Recorder records every call and lets tests drive modal interactions.
type Recorder struct {
	mu         sync.Mutex
	ready      bool
	containers map[surface.Container]bool
	toasts     []*ToastEntry
	modal      *surface.ModalView
	modalState string
	onAction   func(surface.Action)
	input      string
	bindings   map[surface.Binding]surface.KeyHandler
	nextBind   surface.Binding
	loading    *surface.LoadingView
	loadState  string
	calls      []string
	readyFns   []func()
}

// NewRecorder returns a recorder with containers already set up.
func NewRecorder() *Recorder {
	r := NewUnready()
	_ = r.Setup()
	return r
}

// NewUnready returns a recorder whose containers do not exist yet.
func NewUnready() *Recorder {
	return &Recorder{
		containers: make(map[surface.Container]bool),
		bindings:   make(map[surface.Binding]surface.KeyHandler),
	}
}

func (r *Recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// Calls returns the recorded call log.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// ResetCalls clears the call log.
func (r *Recorder) ResetCalls() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// RemoveContainer deletes one container to simulate a broken surface.
func (r *Recorder) RemoveContainer(c surface.Container) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.containers, c)
}

// OnReady implements surface.ReadyNotifier.
func (r *Recorder) OnReady(fn func()) {
	r.mu.Lock()
	if !r.ready {
		r.readyFns = append(r.readyFns, fn)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	fn()
}

// SignalReady runs the registered ready callbacks.
func (r *Recorder) SignalReady() {
	r.mu.Lock()
	r.ready = true
	fns := r.readyFns
	r.readyFns = nil
	r.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Setup implements surface.Surface.
func (r *Recorder) Setup() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("setup")
	r.containers[surface.ToastContainer] = true
	r.containers[surface.ModalContainer] = true
	r.containers[surface.LoadingContainer] = true
	return nil
}

// Teardown implements surface.Surface.
func (r *Recorder) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("teardown")
	r.containers = make(map[surface.Container]bool)
	r.toasts = nil
	r.modal = nil
	r.loading = nil
	r.bindings = make(map[surface.Binding]surface.KeyHandler)
}

// HasContainer implements surface.Surface.
func (r *Recorder) HasContainer(c surface.Container) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.containers[c]
}

// MountToast implements surface.Surface.
func (r *Recorder) MountToast(v surface.ToastView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.containers[surface.ToastContainer] {
		return surface.ErrNoContainer
	}
	r.record("mount-toast %s", v.ID)
	r.toasts = append(r.toasts, &ToastEntry{View: v, State: StateMounted})
	return nil
}

func (r *Recorder) findToast(id string) *ToastEntry {
	for _, t := range r.toasts {
		if t.View.ID == id {
			return t
		}
	}
	return nil
}

// ShowToast implements surface.Surface.
func (r *Recorder) ShowToast(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("show-toast %s", id)
	if t := r.findToast(id); t != nil {
		t.State = StateVisible
	}
}

// HideToast implements surface.Surface.
func (r *Recorder) HideToast(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("hide-toast %s", id)
	if t := r.findToast(id); t != nil {
		t.State = StateHidden
	}
}

// RemoveToast implements surface.Surface.
func (r *Recorder) RemoveToast(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("remove-toast %s", id)
	for i, t := range r.toasts {
		if t.View.ID == id {
			r.toasts = append(r.toasts[:i], r.toasts[i+1:]...)
			return
		}
	}
}

// ClearToasts implements surface.Surface.
func (r *Recorder) ClearToasts() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("clear-toasts")
	r.toasts = nil
}

// Toasts returns the mounted toasts, oldest first.
func (r *Recorder) Toasts() []ToastEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ToastEntry, 0, len(r.toasts))
	for _, t := range r.toasts {
		out = append(out, *t)
	}
	return out
}

// Toast returns the mounted toast with id.
func (r *Recorder) Toast(id string) (ToastEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t := r.findToast(id); t != nil {
		return *t, true
	}
	return ToastEntry{}, false
}

// MountModal implements surface.Surface.
func (r *Recorder) MountModal(v surface.ModalView, onAction func(surface.Action)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.containers[surface.ModalContainer] {
		return surface.ErrNoContainer
	}
	r.record("mount-modal %s", v.ID)
	view := v
	r.modal = &view
	r.modalState = StateMounted
	r.onAction = onAction
	r.input = v.DefaultValue
	return nil
}

// ShowModal implements surface.Surface.
func (r *Recorder) ShowModal(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("show-modal %s", id)
	if r.modal != nil && r.modal.ID == id {
		r.modalState = StateVisible
	}
}

// HideModal implements surface.Surface.
func (r *Recorder) HideModal(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("hide-modal %s", id)
	if r.modal != nil && r.modal.ID == id {
		r.modalState = StateHidden
	}
}

// InputValue implements surface.Surface.
func (r *Recorder) InputValue(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.modal == nil || r.modal.ID != id || r.modal.Kind != surface.ModalPrompt {
		return "", false
	}
	return r.input, true
}

// UnmountModal implements surface.Surface.
func (r *Recorder) UnmountModal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("unmount-modal")
	r.modal = nil
	r.modalState = ""
	r.onAction = nil
	r.input = ""
}

// Modal returns the mounted modal and its state.
func (r *Recorder) Modal() (surface.ModalView, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.modal == nil {
		return surface.ModalView{}, "", false
	}
	return *r.modal, r.modalState, true
}

// SetInput simulates typing into the prompt input.
func (r *Recorder) SetInput(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.input = value
}

// Click simulates a pointer action on the mounted modal.
func (r *Recorder) Click(a surface.Action) {
	r.mu.Lock()
	fn := r.onAction
	r.mu.Unlock()
	if fn != nil {
		fn(a)
	}
}

// Press delivers a key to the bound handlers, newest first, until one
// consumes it.
func (r *Recorder) Press(k surface.Key) bool {
	r.mu.Lock()
	ids := make([]surface.Binding, 0, len(r.bindings))
	for id := range r.bindings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	handlers := make([]surface.KeyHandler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, r.bindings[id])
	}
	r.mu.Unlock()

	for _, h := range handlers {
		if h(k) {
			return true
		}
	}
	return false
}

// BindKeys implements surface.Surface.
func (r *Recorder) BindKeys(h surface.KeyHandler) surface.Binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextBind++
	r.bindings[r.nextBind] = h
	r.record("bind-keys %d", r.nextBind)
	return r.nextBind
}

// UnbindKeys implements surface.Surface.
func (r *Recorder) UnbindKeys(b surface.Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("unbind-keys %d", b)
	delete(r.bindings, b)
}

// Bindings returns the number of attached key handlers.
func (r *Recorder) Bindings() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bindings)
}

// MountLoading implements surface.Surface.
func (r *Recorder) MountLoading(v surface.LoadingView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.containers[surface.LoadingContainer] {
		return surface.ErrNoContainer
	}
	r.record("mount-loading %s", v.Message)
	view := v
	r.loading = &view
	r.loadState = StateMounted
	return nil
}

// ShowLoading implements surface.Surface.
func (r *Recorder) ShowLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("show-loading")
	if r.loading != nil {
		r.loadState = StateVisible
	}
}

// SetLoadingMessage implements surface.Surface.
func (r *Recorder) SetLoadingMessage(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("set-loading %s", msg)
	if r.loading != nil {
		r.loading.Message = msg
	}
}

// HideLoading implements surface.Surface.
func (r *Recorder) HideLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("hide-loading")
	if r.loading != nil {
		r.loadState = StateHidden
	}
}

// UnmountLoading implements surface.Surface.
func (r *Recorder) UnmountLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("unmount-loading")
	r.loading = nil
	r.loadState = ""
}

// Loading returns the mounted loading overlay and its state.
func (r *Recorder) Loading() (surface.LoadingView, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loading == nil {
		return surface.LoadingView{}, "", false
	}
	return *r.loading, r.loadState, true
}

var _ surface.Surface = (*Recorder)(nil)
var _ surface.ReadyNotifier = (*Recorder)(nil)
