// Package modal manages the single active confirm or prompt dialog and
// guarantees that its result is delivered exactly once.
package modal

import (
	"errors"
	"sync"
	"time"

	"github.com/cristianoliveira/tip/internal/clock"
	"github.com/cristianoliveira/tip/internal/ids"
	"github.com/cristianoliveira/tip/internal/logging"
	"github.com/cristianoliveira/tip/internal/surface"
)

// ShowDelay is the pause between mounting a modal and its enter transition.
const ShowDelay = 10 * time.Millisecond

// ErrInvalidMessage is returned when the message is empty.
var ErrInvalidMessage = errors.New("modal: message must be non-empty text")

// Default labels.
const (
	DefaultConfirmTitle = "Confirm"
	DefaultPromptTitle  = "Input"
	DefaultConfirmText  = "OK"
	DefaultCancelText   = "Cancel"
)

// Options customise a modal. Empty fields take the defaults.
type Options struct {
	Title        string
	ConfirmText  string
	CancelText   string
	Placeholder  string
	DefaultValue string
}

// Outcome says how a modal ended.
type Outcome int

const (
	Cancelled Outcome = iota
	Confirmed
)

func (o Outcome) String() string {
	if o == Confirmed {
		return "confirmed"
	}
	return "cancelled"
}

// Result is delivered once per modal. Value carries the prompt text and is
// empty for confirm dialogs and cancelled prompts.
type Result struct {
	ID      string
	Kind    surface.ModalKind
	Outcome Outcome
	Value   string
}

// Confirmed reports whether the user accepted the modal.
func (r Result) Confirmed() bool {
	return r.Outcome == Confirmed
}

type modal struct {
	id        string
	kind      surface.ModalKind
	deliver   func(Result)
	binding   surface.Binding
	closing   bool
	finalized bool
	result    Result
	timer     clock.Timer
}

// Controller owns the modal container.
type Controller struct {
	mu         sync.Mutex
	surface    surface.Surface
	sched      clock.Scheduler
	ids        ids.Generator
	log        logging.Logger
	transition func() surface.Transition

	active *modal
}

// NewController creates a controller drawing on s.
func NewController(s surface.Surface, sched clock.Scheduler, gen ids.Generator, log logging.Logger, transition func() surface.Transition) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		surface:    s,
		sched:      sched,
		ids:        gen,
		log:        log.With("component", "modal"),
		transition: transition,
	}
}

// Confirm opens a confirm dialog. fn receives true when confirmed.
func (c *Controller) Confirm(message string, fn func(confirmed bool), opts Options) (string, error) {
	return c.Open(surface.ModalConfirm, message, opts, func(r Result) {
		if fn != nil {
			fn(r.Confirmed())
		}
	})
}

// Prompt opens a text prompt. fn receives the text and true when confirmed,
// or "" and false when cancelled.
func (c *Controller) Prompt(message string, fn func(value string, ok bool), opts Options) (string, error) {
	return c.Open(surface.ModalPrompt, message, opts, func(r Result) {
		if fn != nil {
			fn(r.Value, r.Confirmed())
		}
	})
}

// Open mounts a modal of the given kind. A modal already on screen is
// replaced and cancelled; its callback still fires, once.
func (c *Controller) Open(kind surface.ModalKind, message string, opts Options, deliver func(Result)) (string, error) {
	if message == "" {
		c.log.Warn("modal: invalid message", "kind", kind.String())
		return "", ErrInvalidMessage
	}

	c.mu.Lock()
	if !c.surface.HasContainer(surface.ModalContainer) {
		c.mu.Unlock()
		c.log.Error("modal: container does not exist", "container", string(surface.ModalContainer))
		return "", surface.ErrNoContainer
	}

	replaced, replacedResult := c.detachActiveLocked()

	id := c.ids.Next(ids.PrefixModal)
	view := buildView(id, kind, message, opts)
	view.Transition = c.transition()
	if err := c.surface.MountModal(view, func(a surface.Action) { c.handleAction(id, a) }); err != nil {
		c.mu.Unlock()
		c.log.Error("modal: mount failed", "id", id, "error", err)
		c.deliver(replaced, replacedResult)
		return "", err
	}

	m := &modal{id: id, kind: kind, deliver: deliver}
	m.binding = c.surface.BindKeys(func(k surface.Key) bool { return c.handleKey(id, k) })
	c.active = m
	c.sched.AfterFunc(ShowDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.active == m && !m.closing {
			c.surface.ShowModal(id)
		}
	})
	c.mu.Unlock()

	if replaced != nil {
		c.log.Debug("modal: replaced active modal", "id", replaced.id, "by", id)
	}
	c.deliver(replaced, replacedResult)
	return id, nil
}

func buildView(id string, kind surface.ModalKind, message string, opts Options) surface.ModalView {
	title := opts.Title
	if title == "" {
		title = DefaultConfirmTitle
		if kind == surface.ModalPrompt {
			title = DefaultPromptTitle
		}
	}
	confirmText := opts.ConfirmText
	if confirmText == "" {
		confirmText = DefaultConfirmText
	}
	cancelText := opts.CancelText
	if cancelText == "" {
		cancelText = DefaultCancelText
	}
	v := surface.ModalView{
		ID:          id,
		Kind:        kind,
		Title:       title,
		Message:     message,
		ConfirmText: confirmText,
		CancelText:  cancelText,
	}
	if kind == surface.ModalPrompt {
		v.Placeholder = opts.Placeholder
		v.DefaultValue = opts.DefaultValue
	}
	return v
}

func (c *Controller) handleAction(id string, a surface.Action) {
	c.Close(id, a == surface.ActionConfirm)
}

func (c *Controller) handleKey(id string, k surface.Key) bool {
	switch k {
	case surface.KeyEnter:
		c.Close(id, true)
		return true
	case surface.KeyEscape:
		c.Close(id, false)
		return true
	}
	return false
}

// Close ends modal id. The prompt text is captured before the leave
// transition starts; the callback fires after it ends. Closing a modal that
// is not active, or is already closing, is a no-op. Close reports whether
// this call decided the result.
func (c *Controller) Close(id string, confirmed bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.active
	if m == nil || m.id != id || m.closing {
		return false
	}

	result := Result{ID: id, Kind: m.kind, Outcome: Cancelled}
	if confirmed {
		result.Outcome = Confirmed
		if m.kind == surface.ModalPrompt {
			value, _ := c.surface.InputValue(id)
			result.Value = value
		}
	}
	m.closing = true
	m.result = result

	c.surface.HideModal(id)
	m.timer = c.sched.AfterFunc(c.transition().Duration, func() { c.finalize(m) })
	return true
}

func (c *Controller) finalize(m *modal) {
	c.mu.Lock()
	if m.finalized {
		c.mu.Unlock()
		return
	}
	m.finalized = true
	if c.active == m {
		c.active = nil
		c.surface.UnmountModal()
	}
	c.surface.UnbindKeys(m.binding)
	result := m.result
	c.mu.Unlock()

	c.deliver(m, result)
}

// detachActiveLocked removes the active modal from the controller without
// touching the container and returns the result it must still receive.
func (c *Controller) detachActiveLocked() (*modal, Result) {
	m := c.active
	if m == nil {
		return nil, Result{}
	}
	c.active = nil
	m.finalized = true
	if m.timer != nil {
		m.timer.Stop()
	}
	c.surface.UnbindKeys(m.binding)
	if m.closing {
		return m, m.result
	}
	return m, Result{ID: m.id, Kind: m.kind, Outcome: Cancelled}
}

// CloseAll unmounts the modal container immediately. An active modal is
// cancelled unless it was already closing with a decided result.
func (c *Controller) CloseAll() {
	c.mu.Lock()
	m, result := c.detachActiveLocked()
	c.surface.UnmountModal()
	c.mu.Unlock()

	c.deliver(m, result)
}

// Active returns the id of the modal on screen.
func (c *Controller) Active() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil || c.active.closing {
		return "", false
	}
	return c.active.id, true
}

// deliver runs the modal callback, recovering and logging any panic.
func (c *Controller) deliver(m *modal, r Result) {
	if m == nil || m.deliver == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			c.log.Error("modal: callback failed", "id", m.id, "panic", rec)
		}
	}()
	m.deliver(r)
}
