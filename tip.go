// Package tip shows feedback to a terminal user: auto-dismissing toasts,
// confirm and prompt dialogs, and a reference counted loading overlay.
//
// A Toolkit drives a surface.Surface. The package level functions operate on
// a lazily created default Toolkit.
package tip

import (
	"context"
	"sync"
	"time"

	"github.com/cristianoliveira/tip/internal/clock"
	"github.com/cristianoliveira/tip/internal/history"
	"github.com/cristianoliveira/tip/internal/ids"
	"github.com/cristianoliveira/tip/internal/loading"
	"github.com/cristianoliveira/tip/internal/logging"
	"github.com/cristianoliveira/tip/internal/modal"
	"github.com/cristianoliveira/tip/internal/surface"
	"github.com/cristianoliveira/tip/internal/toast"
)

// Type is a toast category.
type Type = toast.Type

const (
	Success = toast.Success
	Warning = toast.Warning
	Info    = toast.Info
	Error   = toast.Error
)

// Errors returned when an argument is rejected or the surface is missing.
var (
	ErrInvalidToast = toast.ErrInvalidMessage
	ErrInvalidModal = modal.ErrInvalidMessage
	ErrNoContainer  = surface.ErrNoContainer
)

// Options is the per call option record. Time applies to toasts, the rest
// to modals.
type Options struct {
	Time         time.Duration
	Title        string
	ConfirmText  string
	CancelText   string
	Placeholder  string
	DefaultValue string
}

func (o Options) modal() modal.Options {
	return modal.Options{
		Title:        o.Title,
		ConfirmText:  o.ConfirmText,
		CancelText:   o.CancelText,
		Placeholder:  o.Placeholder,
		DefaultValue: o.DefaultValue,
	}
}

// Option configures New.
type Option func(*Toolkit)

// WithScheduler replaces the real timers, mostly for tests.
func WithScheduler(s clock.Scheduler) Option {
	return func(t *Toolkit) { t.sched = s }
}

// WithIDs replaces the identifier generator.
func WithIDs(g ids.Generator) Option {
	return func(t *Toolkit) { t.ids = g }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(t *Toolkit) { t.log = l }
}

// WithRecorder records shown toasts and modal outcomes.
func WithRecorder(r history.Recorder) Option {
	return func(t *Toolkit) { t.recorder = r }
}

// WithConfig sets the initial configuration.
func WithConfig(c Config) Option {
	return func(t *Toolkit) { t.cfg = c }
}

// Toolkit owns the toast registry, the modal controller and the loading
// counter for one surface.
type Toolkit struct {
	mu          sync.Mutex
	initialized bool
	cfg         Config

	surface  surface.Surface
	sched    clock.Scheduler
	ids      ids.Generator
	log      logging.Logger
	recorder history.Recorder

	toasts  *toast.Registry
	modals  *modal.Controller
	loading *loading.Counter
}

// New creates a Toolkit drawing on s. When s implements
// surface.ReadyNotifier, the Toolkit initializes itself once s is ready.
func New(s surface.Surface, opts ...Option) *Toolkit {
	t := &Toolkit{
		cfg:     DefaultConfig(),
		surface: s,
		sched:   clock.Real{},
		ids:     ids.NewRandom(),
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.toasts = toast.NewRegistry(s, t.sched, t.ids, t.log, t.toastConfig)
	t.modals = modal.NewController(s, t.sched, t.ids, t.log, t.transition)
	t.loading = loading.NewCounter(s, t.sched, t.log, t.transition)

	if rn, ok := s.(surface.ReadyNotifier); ok {
		rn.OnReady(func() {
			if err := t.Init(); err != nil {
				t.log.Error("tip: init on ready failed", "error", err)
			}
		})
	}
	return t
}

// Init sets up the surface containers. It is idempotent and runs on first
// use, so calling it is optional.
func (t *Toolkit) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.initialized {
		return nil
	}
	if err := t.surface.Setup(); err != nil {
		t.log.Error("tip: surface setup failed", "error", err)
		return err
	}
	t.initialized = true
	t.log.Debug("tip: initialized")
	return nil
}

// Initialized reports whether the surface has been set up.
func (t *Toolkit) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initialized
}

func (t *Toolkit) ensureInit() {
	// Setup failures are logged by Init; the mount that follows reports
	// ErrNoContainer to the caller.
	_ = t.Init()
}

func (t *Toolkit) record(e history.Event) {
	if t.recorder == nil {
		return
	}
	if err := t.recorder.Record(context.Background(), e); err != nil {
		t.log.Warn("tip: history record failed", "kind", string(e.Kind), "error", err)
	}
}

// Toast shows a notification and returns its id.
func (t *Toolkit) Toast(message string, typ Type, opts Options) (string, error) {
	t.ensureInit()
	id, err := t.toasts.Show(message, typ, opts.Time)
	if err != nil {
		return "", err
	}
	if !typ.Valid() {
		typ = Info
	}
	t.record(history.Event{Kind: history.KindToast, Ref: id, Type: string(typ), Message: message})
	return id, nil
}

// Success shows a success toast.
func (t *Toolkit) Success(message string, opts Options) (string, error) {
	return t.Toast(message, Success, opts)
}

// Error shows an error toast.
func (t *Toolkit) Error(message string, opts Options) (string, error) {
	return t.Toast(message, Error, opts)
}

// Info shows an info toast.
func (t *Toolkit) Info(message string, opts Options) (string, error) {
	return t.Toast(message, Info, opts)
}

// Warning shows a warning toast.
func (t *Toolkit) Warning(message string, opts Options) (string, error) {
	return t.Toast(message, Warning, opts)
}

// CloseToast removes a toast immediately. Unknown ids are ignored.
func (t *Toolkit) CloseToast(id string) {
	t.toasts.Close(id)
}

// ClearToasts removes every toast.
func (t *Toolkit) ClearToasts() {
	t.toasts.Clear()
}

// ToastCount returns the number of toasts on screen.
func (t *Toolkit) ToastCount() int {
	return t.toasts.Count()
}

// Confirm opens a confirm dialog. fn, when not nil, receives true when the
// user confirms and false otherwise. It is called exactly once.
func (t *Toolkit) Confirm(message string, fn func(confirmed bool), opts Options) (string, error) {
	return t.open(surface.ModalConfirm, message, opts, func(r modal.Result) {
		if fn != nil {
			fn(r.Confirmed())
		}
	})
}

// Prompt opens a text prompt. fn, when not nil, receives the entered text and
// true, or "" and false when cancelled. It is called exactly once.
func (t *Toolkit) Prompt(message string, fn func(value string, ok bool), opts Options) (string, error) {
	return t.open(surface.ModalPrompt, message, opts, func(r modal.Result) {
		if fn != nil {
			fn(r.Value, r.Confirmed())
		}
	})
}

func (t *Toolkit) open(kind surface.ModalKind, message string, opts Options, deliver func(modal.Result)) (string, error) {
	t.ensureInit()
	return t.modals.Open(kind, message, opts.modal(), func(r modal.Result) {
		t.record(history.Event{
			Kind:    modalKind(r.Kind),
			Ref:     r.ID,
			Message: message,
			Outcome: r.Outcome.String(),
		})
		deliver(r)
	})
}

func modalKind(k surface.ModalKind) history.Kind {
	if k == surface.ModalPrompt {
		return history.KindPrompt
	}
	return history.KindConfirm
}

// CloseModal closes the active modal with the given answer. It is a no-op
// when id is not the active modal.
func (t *Toolkit) CloseModal(id string, confirmed bool) {
	t.modals.Close(id, confirmed)
}

// CloseAllModals cancels the active modal without animation.
func (t *Toolkit) CloseAllModals() {
	t.modals.CloseAll()
}

// ActiveModal returns the id of the modal on screen.
func (t *Toolkit) ActiveModal() (string, bool) {
	return t.modals.Active()
}

// ShowLoading increments the loading counter, showing the overlay on the
// first call. An empty message shows "Loading...".
func (t *Toolkit) ShowLoading(message string) error {
	t.ensureInit()
	return t.loading.Show(message)
}

// CloseLoading decrements the loading counter.
func (t *Toolkit) CloseLoading() {
	t.loading.Hide()
}

// CloseAllLoading hides the overlay regardless of the counter.
func (t *Toolkit) CloseAllLoading() {
	t.loading.CloseAll()
}

// LoadingHandle groups the loading operations.
type LoadingHandle struct {
	t *Toolkit
}

// Loading returns the loading handle.
func (t *Toolkit) Loading() LoadingHandle {
	return LoadingHandle{t: t}
}

// Show is ShowLoading.
func (h LoadingHandle) Show(message string) error { return h.t.ShowLoading(message) }

// Hide is CloseLoading.
func (h LoadingHandle) Hide() { h.t.CloseLoading() }

// Count returns the loading counter.
func (h LoadingHandle) Count() int { return h.t.loading.Count() }

// Visible reports whether the overlay is up.
func (h LoadingHandle) Visible() bool { return h.t.loading.Visible() }

// ClearAll removes every toast, cancels the active modal and hides the
// loading overlay.
func (t *Toolkit) ClearAll() {
	t.toasts.Clear()
	t.modals.CloseAll()
	t.loading.CloseAll()
}

// Destroy clears everything, tears the surface down and restores the default
// configuration. The next call initializes again.
func (t *Toolkit) Destroy() {
	t.ClearAll()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.initialized {
		t.surface.Teardown()
	}
	t.toasts.Reset()
	t.initialized = false
	t.cfg = DefaultConfig()
	t.log.Debug("tip: destroyed")
}

// Surface returns the surface the Toolkit draws on.
func (t *Toolkit) Surface() surface.Surface {
	return t.surface
}
