package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianoliveira/tip"
)

// demoStep is how long the demo lets each part play.
const demoStep = 1500 * time.Millisecond

// Demo walks through every kind of feedback.
func (c *Client) Demo(ctx context.Context) error {
	return c.Session(ctx, func(ctx context.Context, tk *tip.Toolkit) error {
		if _, err := tk.Info("Welcome to tip", tip.Options{}); err != nil {
			return err
		}

		all, err := tk.ConfirmAwait(ctx, "Show every toast type?", tip.Options{
			Title:       "Toasts",
			ConfirmText: "Show",
			CancelText:  "Skip",
		})
		if err != nil {
			return err
		}
		if all {
			for _, typ := range []tip.Type{tip.Success, tip.Warning, tip.Info, tip.Error} {
				if _, err := tk.Toast(fmt.Sprintf("This is a %s toast", typ), typ, tip.Options{}); err != nil {
					return err
				}
			}
		}

		name, ok, err := tk.PromptAwait(ctx, "What is your name?", tip.Options{Placeholder: "Your name"})
		if err != nil {
			return err
		}
		if ok && name != "" {
			_, _ = tk.Success("Hello, "+name, tip.Options{})
		} else {
			_, _ = tk.Warning("Prompt cancelled", tip.Options{})
		}

		if err := tk.ShowLoading("Working..."); err != nil {
			return err
		}
		if err := sleep(ctx, demoStep); err != nil {
			return err
		}
		_ = tk.ShowLoading("Almost there...")
		if err := sleep(ctx, demoStep); err != nil {
			return err
		}
		tk.CloseLoading()
		tk.CloseLoading()

		_, _ = tk.Success("Demo complete", tip.Options{})
		return waitUntil(ctx, func() bool { return tk.ToastCount() == 0 })
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
