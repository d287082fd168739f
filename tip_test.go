package tip

import (
	"context"
	"testing"
	"time"

	"github.com/cristianoliveira/tip/internal/clock"
	"github.com/cristianoliveira/tip/internal/history"
	"github.com/cristianoliveira/tip/internal/ids"
	"github.com/cristianoliveira/tip/internal/surface"
	"github.com/cristianoliveira/tip/internal/surface/surfacetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestToolkit(t *testing.T, opts ...Option) (*Toolkit, *surfacetest.Recorder, *clock.Fake) {
	t.Helper()
	rec := surfacetest.NewUnready()
	fake := clock.NewFake()
	opts = append([]Option{WithScheduler(fake), WithIDs(ids.NewSequence())}, opts...)
	return New(rec, opts...), rec, fake
}

func TestInitIsLazyAndIdempotent(t *testing.T) {
	tk, rec, _ := newTestToolkit(t)
	assert.False(t, tk.Initialized())

	_, err := tk.Info("hello", Options{})
	require.NoError(t, err)
	require.NoError(t, tk.Init())

	assert.True(t, tk.Initialized())
	setups := 0
	for _, c := range rec.Calls() {
		if c == "setup" {
			setups++
		}
	}
	assert.Equal(t, 1, setups)
}

func TestInitOnReadySignal(t *testing.T) {
	tk, rec, _ := newTestToolkit(t)
	assert.False(t, tk.Initialized())

	rec.SignalReady()

	assert.True(t, tk.Initialized())
	assert.True(t, rec.HasContainer(surface.ToastContainer))
}

func TestToastShortcuts(t *testing.T) {
	tk, rec, _ := newTestToolkit(t)
	tests := []struct {
		name string
		show func(string, Options) (string, error)
		want Type
	}{
		{name: "success", show: tk.Success, want: Success},
		{name: "error", show: tk.Error, want: Error},
		{name: "info", show: tk.Info, want: Info},
		{name: "warning", show: tk.Warning, want: Warning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.show("saved", Options{})
			require.NoError(t, err)
			entry, ok := rec.Toast(id)
			require.True(t, ok)
			assert.Equal(t, string(tt.want), entry.View.Type)
		})
	}
}

func TestToastLifecycle(t *testing.T) {
	tk, rec, fake := newTestToolkit(t)

	id, err := tk.Toast("hi", Success, Options{Time: time.Second})
	require.NoError(t, err)

	fake.Advance(10 * time.Millisecond)
	entry, _ := rec.Toast(id)
	assert.Equal(t, surfacetest.StateVisible, entry.State)

	fake.Advance(time.Second)
	entry, _ = rec.Toast(id)
	assert.Equal(t, surfacetest.StateHidden, entry.State)

	fake.Advance(300 * time.Millisecond)
	_, ok := rec.Toast(id)
	assert.False(t, ok)
	assert.Equal(t, 0, tk.ToastCount())
}

func TestToastValidation(t *testing.T) {
	tk, _, _ := newTestToolkit(t)

	id, err := tk.Toast("", Info, Options{})
	assert.ErrorIs(t, err, ErrInvalidToast)
	assert.Empty(t, id)

	_, err = tk.Confirm("", nil, Options{})
	assert.ErrorIs(t, err, ErrInvalidModal)
}

func TestUnknownTypeFallsBackToInfo(t *testing.T) {
	tk, rec, _ := newTestToolkit(t)

	id, err := tk.Toast("hi", Type("shout"), Options{})
	require.NoError(t, err)

	entry, _ := rec.Toast(id)
	assert.Equal(t, "info", entry.View.Type)
}

func TestConfigureMaxCount(t *testing.T) {
	tk, rec, _ := newTestToolkit(t)

	tk.Configure(Config{ToastMaxCount: 2})
	assert.Equal(t, 2, tk.Config().ToastMaxCount)
	assert.Equal(t, DefaultAnimationDuration, tk.Config().AnimationDuration)

	first, _ := tk.Info("one", Options{})
	_, _ = tk.Info("two", Options{})
	_, _ = tk.Info("three", Options{})

	assert.Equal(t, 2, tk.ToastCount())
	assert.Len(t, rec.Toasts(), 2)
	_, ok := rec.Toast(first)
	assert.False(t, ok)
}

func TestConfigureIgnoresNegative(t *testing.T) {
	tk, _, _ := newTestToolkit(t)

	tk.Configure(Config{AnimationDuration: -time.Second, ToastMaxCount: -1, Easing: "linear"})

	cfg := tk.Config()
	assert.Equal(t, DefaultAnimationDuration, cfg.AnimationDuration)
	assert.Equal(t, DefaultToastMaxCount, cfg.ToastMaxCount)
	assert.Equal(t, "linear", cfg.Easing)
}

func TestAnimationDurationAppliesToTransitions(t *testing.T) {
	tk, rec, fake := newTestToolkit(t)
	tk.Configure(Config{AnimationDuration: time.Second})

	id, err := tk.Toast("slow", Info, Options{Time: time.Second})
	require.NoError(t, err)
	entry, _ := rec.Toast(id)
	assert.Equal(t, time.Second, entry.View.Transition.Duration)

	fake.Advance(10*time.Millisecond + time.Second + 500*time.Millisecond)
	_, ok := rec.Toast(id)
	assert.True(t, ok, "still animating out")

	fake.Advance(500 * time.Millisecond)
	_, ok = rec.Toast(id)
	assert.False(t, ok)
}

func TestConfirmClick(t *testing.T) {
	tk, rec, fake := newTestToolkit(t)
	var got []bool

	_, err := tk.Confirm("Delete?", func(ok bool) { got = append(got, ok) }, Options{})
	require.NoError(t, err)

	rec.Click(surface.ActionConfirm)
	rec.Click(surface.ActionConfirm)
	fake.Advance(time.Second)

	assert.Equal(t, []bool{true}, got)
	_, _, mounted := rec.Modal()
	assert.False(t, mounted)
	assert.Equal(t, 0, rec.Bindings())
}

func TestConfirmEscape(t *testing.T) {
	tk, rec, fake := newTestToolkit(t)
	var got []bool

	_, err := tk.Confirm("Delete?", func(ok bool) { got = append(got, ok) }, Options{})
	require.NoError(t, err)

	assert.True(t, rec.Press(surface.KeyEscape))
	fake.Advance(time.Second)

	assert.Equal(t, []bool{false}, got)
}

func TestPromptDefaultValue(t *testing.T) {
	type answer struct {
		value string
		ok    bool
	}
	tests := []struct {
		name   string
		action surface.Action
		want   answer
	}{
		{name: "confirm keeps default", action: surface.ActionConfirm, want: answer{value: "Amy", ok: true}},
		{name: "cancel", action: surface.ActionCancel, want: answer{}},
		{name: "backdrop", action: surface.ActionBackdrop, want: answer{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, rec, fake := newTestToolkit(t)
			var got []answer

			_, err := tk.Prompt("Name?", func(v string, ok bool) {
				got = append(got, answer{v, ok})
			}, Options{DefaultValue: "Amy"})
			require.NoError(t, err)

			rec.Click(tt.action)
			fake.Advance(time.Second)

			assert.Equal(t, []answer{tt.want}, got)
		})
	}
}

func TestModalReplaceCancelsPrevious(t *testing.T) {
	tk, rec, fake := newTestToolkit(t)
	var first, second []bool

	_, err := tk.Confirm("first?", func(ok bool) { first = append(first, ok) }, Options{})
	require.NoError(t, err)
	secondID, err := tk.Confirm("second?", func(ok bool) { second = append(second, ok) }, Options{})
	require.NoError(t, err)

	assert.Equal(t, []bool{false}, first)
	active, ok := tk.ActiveModal()
	require.True(t, ok)
	assert.Equal(t, secondID, active)

	rec.Press(surface.KeyEnter)
	fake.Advance(time.Second)

	assert.Equal(t, []bool{false}, first)
	assert.Equal(t, []bool{true}, second)
}

func TestCallbackPanicIsContained(t *testing.T) {
	tk, rec, fake := newTestToolkit(t)

	_, err := tk.Confirm("boom?", func(bool) { panic("boom") }, Options{})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		rec.Click(surface.ActionConfirm)
		fake.Advance(time.Second)
	})
	_, _, mounted := rec.Modal()
	assert.False(t, mounted)
}

func TestLoadingNesting(t *testing.T) {
	tk, _, fake := newTestToolkit(t)
	l := tk.Loading()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Show(""))
	}
	l.Hide()
	l.Hide()
	fake.Advance(time.Second)
	assert.True(t, l.Visible())

	l.Hide()
	fake.Advance(time.Second)
	assert.False(t, l.Visible())

	l.Hide()
	assert.Equal(t, 0, l.Count())
}

func TestCloseToastTwiceIsNoop(t *testing.T) {
	tk, _, _ := newTestToolkit(t)

	id, err := tk.Info("bye", Options{})
	require.NoError(t, err)

	tk.CloseToast(id)
	assert.NotPanics(t, func() { tk.CloseToast(id) })
	assert.Equal(t, 0, tk.ToastCount())
}

func TestClearAll(t *testing.T) {
	tk, rec, _ := newTestToolkit(t)
	var got []bool

	_, _ = tk.Info("a", Options{})
	_, _ = tk.Confirm("sure?", func(ok bool) { got = append(got, ok) }, Options{})
	require.NoError(t, tk.ShowLoading("busy"))

	tk.ClearAll()

	assert.Empty(t, rec.Toasts())
	assert.Equal(t, []bool{false}, got)
	assert.False(t, tk.Loading().Visible())
	_, _, ok := rec.Loading()
	assert.False(t, ok)
}

func TestDestroyResets(t *testing.T) {
	tk, rec, _ := newTestToolkit(t)
	tk.Configure(Config{ToastMaxCount: 1})
	_, _ = tk.Info("a", Options{})

	tk.Destroy()

	assert.False(t, tk.Initialized())
	assert.Equal(t, DefaultConfig(), tk.Config())
	assert.False(t, rec.HasContainer(surface.ToastContainer))
	assert.Contains(t, rec.Calls(), "teardown")

	_, err := tk.Info("again", Options{})
	require.NoError(t, err)
	assert.True(t, tk.Initialized())
}

func TestMissingContainer(t *testing.T) {
	tk, rec, _ := newTestToolkit(t)
	require.NoError(t, tk.Init())
	rec.RemoveContainer(surface.ToastContainer)
	rec.RemoveContainer(surface.ModalContainer)
	rec.RemoveContainer(surface.LoadingContainer)

	_, err := tk.Info("x", Options{})
	assert.ErrorIs(t, err, ErrNoContainer)
	_, err = tk.Prompt("x", nil, Options{})
	assert.ErrorIs(t, err, ErrNoContainer)
	assert.ErrorIs(t, tk.ShowLoading(""), ErrNoContainer)
}

func TestConfirmAwait(t *testing.T) {
	tk, rec, fake := newTestToolkit(t)

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		ok, err := tk.ConfirmAwait(context.Background(), "Proceed?", Options{})
		done <- result{ok, err}
	}()

	require.Eventually(t, func() bool {
		_, ok := tk.ActiveModal()
		return ok
	}, time.Second, time.Millisecond)
	rec.Press(surface.KeyEnter)
	fake.Advance(time.Second)

	r := <-done
	require.NoError(t, r.err)
	assert.True(t, r.ok)
}

func TestPromptAwaitContextCancel(t *testing.T) {
	tk, _, fake := newTestToolkit(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	value, ok, err := tk.PromptAwait(ctx, "Name?", Options{DefaultValue: "Amy"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
	assert.Empty(t, value)
	fake.Advance(time.Second)
	_, active := tk.ActiveModal()
	assert.False(t, active)
}

func TestHistoryRecording(t *testing.T) {
	store, err := history.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tk, rec, fake := newTestToolkit(t, WithRecorder(store))
	_, err = tk.Warning("disk low", Options{})
	require.NoError(t, err)
	_, err = tk.Prompt("Name?", nil, Options{DefaultValue: "Amy"})
	require.NoError(t, err)
	rec.Click(surface.ActionConfirm)
	fake.Advance(time.Second)

	events, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, history.KindPrompt, events[0].Kind)
	assert.Equal(t, "confirmed", events[0].Outcome)
	assert.Equal(t, history.KindToast, events[1].Kind)
	assert.Equal(t, "warning", events[1].Type)
}

func TestConfirmAwaitKeepsAnswerGivenBeforeCancel(t *testing.T) {
	tk, rec, fake := newTestToolkit(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		ok, err := tk.ConfirmAwait(ctx, "Proceed?", Options{})
		done <- result{ok, err}
	}()

	require.Eventually(t, func() bool {
		_, ok := tk.ActiveModal()
		return ok
	}, time.Second, time.Millisecond)
	require.True(t, rec.Press(surface.KeyEnter))
	cancel()
	fake.Advance(time.Second)

	r := <-done
	require.NoError(t, r.err)
	assert.True(t, r.ok)
}
