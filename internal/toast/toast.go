// Package toast tracks transient notifications: a FIFO, capacity bounded
// registry whose entries walk through mount, show, hide and remove on timers.
package toast

import (
	"errors"
	"sync"
	"time"

	"github.com/cristianoliveira/tip/internal/clock"
	"github.com/cristianoliveira/tip/internal/ids"
	"github.com/cristianoliveira/tip/internal/logging"
	"github.com/cristianoliveira/tip/internal/surface"
)

// Type is the toast category.
type Type string

const (
	Success Type = "success"
	Warning Type = "warning"
	Info    Type = "info"
	Error   Type = "error"
)

// Types lists every valid toast type.
var Types = []Type{Success, Warning, Info, Error}

// Valid reports whether t is a known toast type.
func (t Type) Valid() bool {
	switch t {
	case Success, Warning, Info, Error:
		return true
	}
	return false
}

const (
	// ShowDelay is the pause between mounting a toast and its enter transition.
	ShowDelay = 10 * time.Millisecond
	// DefaultDuration applies when no positive display time is given.
	DefaultDuration = 3 * time.Second
)

// ErrInvalidMessage is returned when the message is empty.
var ErrInvalidMessage = errors.New("toast: message must be non-empty text")

// Config is read on every Show so that runtime changes apply to new toasts.
type Config struct {
	MaxCount        int
	DefaultDuration time.Duration
	Transition      surface.Transition
}

type entry struct {
	id     string
	gen    uint64
	timers []clock.Timer
}

// Registry tracks the toasts currently on the surface.
type Registry struct {
	mu      sync.Mutex
	surface surface.Surface
	sched   clock.Scheduler
	ids     ids.Generator
	log     logging.Logger
	config  func() Config

	entries map[string]*entry
	order   []string
	gen     uint64
}

// NewRegistry creates a registry drawing on s.
func NewRegistry(s surface.Surface, sched clock.Scheduler, gen ids.Generator, log logging.Logger, config func() Config) *Registry {
	if log == nil {
		log = logging.Nop()
	}
	return &Registry{
		surface: s,
		sched:   sched,
		ids:     gen,
		log:     log.With("component", "toast"),
		config:  config,
		entries: make(map[string]*entry),
	}
}

// Show mounts a toast and schedules its transitions. An unknown type falls
// back to Info; a negative duration falls back to the configured default.
func (r *Registry) Show(message string, typ Type, d time.Duration) (string, error) {
	if message == "" {
		r.log.Warn("toast: invalid message")
		return "", ErrInvalidMessage
	}
	if typ == "" {
		typ = Info
	} else if !typ.Valid() {
		r.log.Warn("toast: invalid type, using info", "type", string(typ))
		typ = Info
	}

	cfg := r.config()
	if d < 0 {
		r.log.Warn("toast: display time must be positive", "time", d)
		d = 0
	}
	if d == 0 {
		d = cfg.DefaultDuration
		if d <= 0 {
			d = DefaultDuration
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.surface.HasContainer(surface.ToastContainer) {
		r.log.Error("toast: container does not exist", "container", string(surface.ToastContainer))
		return "", surface.ErrNoContainer
	}

	max := cfg.MaxCount
	if max < 1 {
		max = 1
	}
	for len(r.order) >= max {
		oldest := r.order[0]
		r.log.Debug("toast: evicting oldest", "id", oldest)
		r.removeLocked(oldest)
	}

	id := r.ids.Next(ids.PrefixToast)
	view := surface.ToastView{ID: id, Type: string(typ), Message: message, Transition: cfg.Transition}
	if err := r.surface.MountToast(view); err != nil {
		r.log.Error("toast: mount failed", "id", id, "error", err)
		return "", err
	}

	r.gen++
	e := &entry{id: id, gen: r.gen}
	r.entries[id] = e
	r.order = append(r.order, id)

	anim := cfg.Transition.Duration
	e.timers = append(e.timers,
		r.sched.AfterFunc(ShowDelay, func() { r.show(id, e.gen) }),
		r.sched.AfterFunc(d, func() { r.hide(id, e.gen, anim) }),
	)
	return id, nil
}

// currentLocked reports whether the entry for id is still the one scheduled under gen.
func (r *Registry) currentLocked(id string, gen uint64) (*entry, bool) {
	e, ok := r.entries[id]
	if !ok || e.gen != gen {
		return nil, false
	}
	return e, true
}

func (r *Registry) show(id string, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.currentLocked(id, gen); !ok {
		return
	}
	r.surface.ShowToast(id)
}

func (r *Registry) hide(id string, gen uint64, anim time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.currentLocked(id, gen)
	if !ok {
		return
	}
	r.surface.HideToast(id)
	e.timers = append(e.timers, r.sched.AfterFunc(anim, func() { r.finish(id, gen) }))
}

func (r *Registry) finish(id string, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.currentLocked(id, gen); !ok {
		return
	}
	r.removeLocked(id)
}

// Close removes a toast immediately. Unknown or already removed ids are a no-op.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return
	}
	r.removeLocked(id)
}

// Clear removes every toast without animation.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		stopAll(e.timers)
	}
	r.entries = make(map[string]*entry)
	r.order = nil
	r.surface.ClearToasts()
}

// Reset forgets all toasts without touching the surface. Used when the
// surface itself is being torn down.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		stopAll(e.timers)
	}
	r.entries = make(map[string]*entry)
	r.order = nil
}

// Count returns the number of tracked toasts.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Has reports whether id is still tracked.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

// IDs returns the tracked toast ids, oldest first.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

func (r *Registry) removeLocked(id string) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	stopAll(e.timers)
	delete(r.entries, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.surface.RemoveToast(id)
}

func stopAll(timers []clock.Timer) {
	for _, t := range timers {
		t.Stop()
	}
}
