// Package loading reference-counts requests for the loading overlay.
package loading

import (
	"sync"
	"time"

	"github.com/cristianoliveira/tip/internal/clock"
	"github.com/cristianoliveira/tip/internal/logging"
	"github.com/cristianoliveira/tip/internal/surface"
)

// DefaultMessage is shown when Show is called without text.
const DefaultMessage = "Loading..."

// ShowDelay is the pause between mounting the overlay and its enter transition.
const ShowDelay = 10 * time.Millisecond

// Counter drives the loading overlay. The overlay is visible iff the count
// is positive.
type Counter struct {
	mu         sync.Mutex
	surface    surface.Surface
	sched      clock.Scheduler
	log        logging.Logger
	transition func() surface.Transition

	count   int
	gen     uint64
	mounted bool
	timer   clock.Timer
}

// NewCounter creates a counter drawing on s.
func NewCounter(s surface.Surface, sched clock.Scheduler, log logging.Logger, transition func() surface.Transition) *Counter {
	if log == nil {
		log = logging.Nop()
	}
	return &Counter{
		surface:    s,
		sched:      sched,
		log:        log.With("component", "loading"),
		transition: transition,
	}
}

// Show increments the count. Only the 0→1 transition mounts and animates the
// overlay; nested calls replace the text in place.
func (c *Counter) Show(message string) error {
	if message == "" {
		message = DefaultMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.surface.HasContainer(surface.LoadingContainer) {
		c.log.Error("loading: container does not exist", "container", string(surface.LoadingContainer))
		return surface.ErrNoContainer
	}

	c.count++
	if c.count > 1 && c.mounted {
		c.surface.SetLoadingMessage(message)
		return nil
	}

	// A pending unmount from a previous hide belongs to an older generation.
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	gen := c.gen
	if err := c.surface.MountLoading(surface.LoadingView{Message: message, Transition: c.transition()}); err != nil {
		c.count--
		c.log.Error("loading: mount failed", "error", err)
		return err
	}
	c.mounted = true
	c.timer = c.sched.AfterFunc(ShowDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen == gen && c.count > 0 {
			c.surface.ShowLoading()
		}
	})
	return nil
}

// Hide decrements the count. At zero it plays the leave transition and
// unmounts afterwards. Hiding at zero is a no-op.
func (c *Counter) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.count == 0 {
		return
	}
	c.count--
	if c.count > 0 {
		return
	}

	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.surface.HideLoading()
	c.timer = c.sched.AfterFunc(c.transition().Duration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen != gen || c.count > 0 {
			return
		}
		c.mounted = false
		c.timer = nil
		c.surface.UnmountLoading()
	})
}

// CloseAll resets the count and unmounts the overlay without animation.
func (c *Counter) CloseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = 0
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mounted = false
	c.surface.UnmountLoading()
}

// Count returns the number of outstanding Show calls.
func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Visible reports whether the overlay should be on screen.
func (c *Counter) Visible() bool {
	return c.Count() > 0
}
