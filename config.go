package tip

import (
	"time"

	"github.com/cristianoliveira/tip/internal/config"
	"github.com/cristianoliveira/tip/internal/surface"
	"github.com/cristianoliveira/tip/internal/toast"
)

// Defaults applied by DefaultConfig and restored by Destroy.
const (
	DefaultAnimationDuration = 300 * time.Millisecond
	DefaultEasing            = "cubic-bezier(0.68,-0.55,0.265,1.55)"
	DefaultToastMaxCount     = 5
)

// Config tunes a Toolkit.
type Config struct {
	// AnimationDuration is the length of every enter/leave transition.
	AnimationDuration time.Duration
	// Easing is handed to the surface with each transition.
	Easing string
	// ToastMaxCount bounds the number of toasts on screen.
	ToastMaxCount int
	// ToastDuration is used when a toast is shown without a time.
	ToastDuration time.Duration
}

// DefaultConfig returns the out of the box configuration.
func DefaultConfig() Config {
	return Config{
		AnimationDuration: DefaultAnimationDuration,
		Easing:            DefaultEasing,
		ToastMaxCount:     DefaultToastMaxCount,
		ToastDuration:     toast.DefaultDuration,
	}
}

// FromGlobalConfig maps the loaded configuration file and environment onto
// a Config.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.AnimationDuration = time.Duration(config.GetInt("animation_duration_ms", 300)) * time.Millisecond
	cfg.Easing = config.Get("easing", DefaultEasing)
	cfg.ToastMaxCount = config.GetInt("toast_max_count", DefaultToastMaxCount)
	cfg.ToastDuration = time.Duration(config.GetFloat("toast_default_seconds", 3) * float64(time.Second))
	return cfg
}

func (c Config) transition() surface.Transition {
	return surface.Transition{Duration: c.AnimationDuration, Easing: c.Easing}
}

// Configure merges c into the current configuration. Zero fields are left
// unchanged; negative ones are ignored with a warning.
func (t *Toolkit) Configure(c Config) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case c.AnimationDuration > 0:
		t.cfg.AnimationDuration = c.AnimationDuration
	case c.AnimationDuration < 0:
		t.log.Warn("config: animation duration must be positive", "value", c.AnimationDuration)
	}
	if c.Easing != "" {
		t.cfg.Easing = c.Easing
	}
	switch {
	case c.ToastMaxCount > 0:
		t.cfg.ToastMaxCount = c.ToastMaxCount
	case c.ToastMaxCount < 0:
		t.log.Warn("config: toast max count must be positive", "value", c.ToastMaxCount)
	}
	switch {
	case c.ToastDuration > 0:
		t.cfg.ToastDuration = c.ToastDuration
	case c.ToastDuration < 0:
		t.log.Warn("config: toast duration must be positive", "value", c.ToastDuration)
	}
}

// Config returns a copy of the current configuration.
func (t *Toolkit) Config() Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cfg
}

func (t *Toolkit) toastConfig() toast.Config {
	c := t.Config()
	return toast.Config{
		MaxCount:        c.ToastMaxCount,
		DefaultDuration: c.ToastDuration,
		Transition:      c.transition(),
	}
}

func (t *Toolkit) transition() surface.Transition {
	return t.Config().transition()
}
