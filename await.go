package tip

import (
	"context"

	"github.com/cristianoliveira/tip/internal/modal"
	"github.com/cristianoliveira/tip/internal/surface"
)

// await opens a modal and blocks until it is answered or ctx is done. On
// cancellation the modal is closed as cancelled and ctx.Err() is returned,
// unless the user had already answered.
func (t *Toolkit) await(ctx context.Context, kind surface.ModalKind, message string, opts Options) (modal.Result, error) {
	done := make(chan modal.Result, 1)
	id, err := t.open(kind, message, opts, func(r modal.Result) {
		done <- r
	})
	if err != nil {
		return modal.Result{}, err
	}

	select {
	case r := <-done:
		return r, nil
	case <-ctx.Done():
	}

	if t.modals.Close(id, false) {
		return modal.Result{ID: id, Kind: kind, Outcome: modal.Cancelled}, ctx.Err()
	}
	// The answer was given before ctx ended; it is delivered once the
	// modal finishes closing.
	return <-done, nil
}

// ConfirmAwait is Confirm for callers that prefer to block.
func (t *Toolkit) ConfirmAwait(ctx context.Context, message string, opts Options) (bool, error) {
	r, err := t.await(ctx, surface.ModalConfirm, message, opts)
	if err != nil {
		return false, err
	}
	return r.Confirmed(), nil
}

// PromptAwait is Prompt for callers that prefer to block. ok is false when
// the prompt was cancelled.
func (t *Toolkit) PromptAwait(ctx context.Context, message string, opts Options) (value string, ok bool, err error) {
	r, err := t.await(ctx, surface.ModalPrompt, message, opts)
	if err != nil {
		return "", false, err
	}
	return r.Value, r.Confirmed(), nil
}
