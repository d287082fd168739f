package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cristianoliveira/tip"
	"github.com/cristianoliveira/tip/internal/history"
	"github.com/cristianoliveira/tip/internal/logging"
	"github.com/cristianoliveira/tip/internal/surface/term"
)

// ErrProgramExited is returned when the terminal program stops before the
// command finished, for example on ctrl+c.
var ErrProgramExited = errors.New("terminal program exited")

// pollInterval is how often Toast checks whether its toast is gone.
const pollInterval = 20 * time.Millisecond

// Client runs feedback commands against a terminal surface.
type Client struct {
	programs ProgramFactory
	config   tip.Config
	log      logging.Logger
	recorder history.Recorder
}

// NewClient creates a client. A nil programs uses NewDefaultProgramFactory;
// a nil log discards; a nil recorder records nothing.
func NewClient(programs ProgramFactory, cfg tip.Config, log logging.Logger, recorder history.Recorder) *Client {
	if programs == nil {
		programs = NewDefaultProgramFactory()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Client{programs: programs, config: cfg, log: log, recorder: recorder}
}

// Session runs fn with a fresh Toolkit while a program renders its surface.
// The context passed to fn is cancelled when the program exits.
func (c *Client) Session(ctx context.Context, fn func(ctx context.Context, tk *tip.Toolkit) error) error {
	surf := term.New(nil)
	opts := []tip.Option{tip.WithConfig(c.config), tip.WithLogger(c.log)}
	if c.recorder != nil {
		opts = append(opts, tip.WithRecorder(c.recorder))
	}
	tk := tip.New(surf, opts...)

	ready := make(chan struct{})
	surf.OnReady(func() { close(ready) })

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := c.programs.New(surf)
	exited := make(chan error, 1)
	go func() {
		_, err := p.Run()
		cancel()
		exited <- err
	}()

	select {
	case <-ready:
	case <-ctx.Done():
		p.Quit()
		return c.finish(<-exited, ctx.Err())
	}

	err := fn(ctx, tk)
	tk.Destroy()
	p.Quit()
	return c.finish(<-exited, err)
}

// finish merges the program and command errors. A command that stopped
// because the program exited under it reports ErrProgramExited.
func (c *Client) finish(runErr, err error) error {
	if runErr != nil {
		c.log.Error("app: program failed", "error", runErr)
		if err == nil || errors.Is(err, context.Canceled) {
			return fmt.Errorf("run terminal program: %w", runErr)
		}
	}
	if errors.Is(err, context.Canceled) {
		return ErrProgramExited
	}
	return err
}

// Toast shows a toast and blocks until it has been removed.
func (c *Client) Toast(ctx context.Context, message string, typ tip.Type, d time.Duration) error {
	return c.Session(ctx, func(ctx context.Context, tk *tip.Toolkit) error {
		if _, err := tk.Toast(message, typ, tip.Options{Time: d}); err != nil {
			return err
		}
		return waitUntil(ctx, func() bool { return tk.ToastCount() == 0 })
	})
}

// Confirm asks a yes/no question.
func (c *Client) Confirm(ctx context.Context, message string, opts tip.Options) (bool, error) {
	var confirmed bool
	err := c.Session(ctx, func(ctx context.Context, tk *tip.Toolkit) error {
		var err error
		confirmed, err = tk.ConfirmAwait(ctx, message, opts)
		return err
	})
	return confirmed, err
}

// Prompt asks for a line of text. ok is false when the user cancelled.
func (c *Client) Prompt(ctx context.Context, message string, opts tip.Options) (value string, ok bool, err error) {
	err = c.Session(ctx, func(ctx context.Context, tk *tip.Toolkit) error {
		var err error
		value, ok, err = tk.PromptAwait(ctx, message, opts)
		return err
	})
	return value, ok, err
}

// Loading shows the loading overlay while run executes.
func (c *Client) Loading(ctx context.Context, message string, run func(ctx context.Context) error) error {
	return c.Session(ctx, func(ctx context.Context, tk *tip.Toolkit) error {
		if err := tk.ShowLoading(message); err != nil {
			return err
		}
		runErr := run(ctx)
		tk.CloseLoading()
		return runErr
	})
}

func waitUntil(ctx context.Context, done func() bool) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for !done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
