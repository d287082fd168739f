package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/tip"
	"github.com/cristianoliveira/tip/internal/history"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	message string
	typ     tip.Type
	d       time.Duration
	opts    tip.Options

	confirmed bool
	value     string
	ok        bool
	err       error

	events  []history.Event
	limit   int
	cleared int64
}

func (f *fakeClient) Toast(ctx context.Context, message string, typ tip.Type, d time.Duration) error {
	f.message, f.typ, f.d = message, typ, d
	return f.err
}

func (f *fakeClient) Confirm(ctx context.Context, message string, opts tip.Options) (bool, error) {
	f.message, f.opts = message, opts
	return f.confirmed, f.err
}

func (f *fakeClient) Prompt(ctx context.Context, message string, opts tip.Options) (string, bool, error) {
	f.message, f.opts = message, opts
	return f.value, f.ok, f.err
}

func (f *fakeClient) Loading(ctx context.Context, message string, run func(ctx context.Context) error) error {
	f.message = message
	if err := run(ctx); err != nil {
		return err
	}
	return f.err
}

func (f *fakeClient) History(ctx context.Context, limit int) ([]history.Event, error) {
	f.limit = limit
	return f.events, f.err
}

func (f *fakeClient) ClearHistory(ctx context.Context) (int64, error) {
	return f.cleared, f.err
}

func (f *fakeClient) ConfigTOML() ([]byte, error) {
	return []byte("toast_max_count = 5\n"), f.err
}

func (f *fakeClient) ConfigPath() string { return "/tmp/tip/config.toml" }

func (f *fakeClient) Version() string { return "1.2.3" }

func run(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(io.Discard)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestToastCmd(t *testing.T) {
	client := &fakeClient{}

	_, err := run(t, NewToastCmd(client), "--type", "warning", "--time", "1.5", "disk", "almost", "full")

	require.NoError(t, err)
	assert.Equal(t, "disk almost full", client.message)
	assert.Equal(t, tip.Warning, client.typ)
	assert.Equal(t, 1500*time.Millisecond, client.d)
}

func TestToastCmdDefaults(t *testing.T) {
	client := &fakeClient{}

	_, err := run(t, NewToastCmd(client), "hello")

	require.NoError(t, err)
	assert.Equal(t, tip.Info, client.typ)
	assert.Zero(t, client.d)
}

func TestToastCmdRequiresMessage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no args", args: nil},
		{name: "empty", args: []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, NewToastCmd(&fakeClient{}), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "toast requires a message")
		})
	}
}

func TestTypedToastCmd(t *testing.T) {
	for _, typ := range []tip.Type{tip.Success, tip.Error, tip.Info, tip.Warning} {
		t.Run(string(typ), func(t *testing.T) {
			client := &fakeClient{}
			c := NewTypedToastCmd(client, typ)

			_, err := run(t, c, "done")

			require.NoError(t, err)
			assert.Equal(t, string(typ), c.Name())
			assert.Equal(t, typ, client.typ)
			assert.Equal(t, "done", client.message)
		})
	}
}

func TestConfirmCmd(t *testing.T) {
	tests := []struct {
		name      string
		confirmed bool
		wantErr   error
	}{
		{name: "confirmed exits zero", confirmed: true},
		{name: "cancelled is declined", confirmed: false, wantErr: errDeclined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{confirmed: tt.confirmed}

			_, err := run(t, NewConfirmCmd(client), "--title", "Danger", "--confirm-text", "Delete", "Remove?")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, "Remove?", client.message)
			assert.Equal(t, "Danger", client.opts.Title)
			assert.Equal(t, "Delete", client.opts.ConfirmText)
		})
	}
}

func TestConfirmCmdPropagatesErrors(t *testing.T) {
	boom := errors.New("no tty")
	_, err := run(t, NewConfirmCmd(&fakeClient{err: boom}), "Remove?")
	assert.ErrorIs(t, err, boom)
}

func TestPromptCmd(t *testing.T) {
	client := &fakeClient{value: "Amy", ok: true}

	out, err := run(t, NewPromptCmd(client), "--default", "Amy", "--placeholder", "name", "Name?")

	require.NoError(t, err)
	assert.Equal(t, "Amy\n", out)
	assert.Equal(t, "Amy", client.opts.DefaultValue)
	assert.Equal(t, "name", client.opts.Placeholder)
}

func TestPromptCmdCancelled(t *testing.T) {
	out, err := run(t, NewPromptCmd(&fakeClient{}), "Name?")

	assert.ErrorIs(t, err, errDeclined)
	assert.Empty(t, out)
}

func TestLoadingCmd(t *testing.T) {
	client := &fakeClient{}
	var gotName string
	var gotArgs []string
	runner := func(ctx context.Context, w io.Writer, name string, args ...string) error {
		gotName, gotArgs = name, args
		_, _ = io.WriteString(w, "built\n")
		return nil
	}

	out, err := run(t, NewLoadingCmd(client, runner), "-m", "Building", "--", "make", "-j4")

	require.NoError(t, err)
	assert.Equal(t, "Building", client.message)
	assert.Equal(t, "make", gotName)
	assert.Equal(t, []string{"-j4"}, gotArgs)
	assert.Equal(t, "built\n", out)
}

func TestLoadingCmdFailure(t *testing.T) {
	runner := func(ctx context.Context, w io.Writer, name string, args ...string) error {
		_, _ = io.WriteString(w, "oops\n")
		return errors.New("exit status 2")
	}

	out, err := run(t, NewLoadingCmd(&fakeClient{}, runner), "--", "false")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "false: exit status 2")
	assert.Equal(t, "oops\n", out)
}

func TestLoadingCmdRequiresCommand(t *testing.T) {
	_, err := run(t, NewLoadingCmd(&fakeClient{}, nil))
	require.Error(t, err)
}

func TestHistoryCmd(t *testing.T) {
	client := &fakeClient{events: []history.Event{
		{Kind: history.KindConfirm, Message: "Delete?", Outcome: "confirmed", CreatedAt: time.Now()},
		{Kind: history.KindToast, Type: "success", Message: "Saved", CreatedAt: time.Now()},
	}}

	out, err := run(t, NewHistoryCmd(client), "--limit", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, client.limit)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "confirmed")
	assert.Contains(t, lines[0], "Delete?")
	assert.Contains(t, lines[1], "success")
}

func TestHistoryClearCmd(t *testing.T) {
	client := &fakeClient{cleared: 3}

	_, err := run(t, NewHistoryCmd(client), "clear")

	require.NoError(t, err)
}

func TestConfigCmd(t *testing.T) {
	out, err := run(t, NewConfigCmd(&fakeClient{}))
	require.NoError(t, err)
	assert.Equal(t, "toast_max_count = 5\n", out)

	out, err = run(t, NewConfigCmd(&fakeClient{}), "--path")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tip/config.toml\n", out)
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, NewVersionCmd(&fakeClient{}))

	require.NoError(t, err)
	assert.Equal(t, "tip version 1.2.3\n", out)
}

func TestNewCmdPanicsWhenClientIsNil(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{name: "toast", fn: func() { NewToastCmd(nil) }},
		{name: "typed", fn: func() { NewTypedToastCmd(nil, tip.Info) }},
		{name: "confirm", fn: func() { NewConfirmCmd(nil) }},
		{name: "prompt", fn: func() { NewPromptCmd(nil) }},
		{name: "loading", fn: func() { NewLoadingCmd(nil, nil) }},
		{name: "demo", fn: func() { NewDemoCmd(nil) }},
		{name: "history", fn: func() { NewHistoryCmd(nil) }},
		{name: "config", fn: func() { NewConfigCmd(nil) }},
		{name: "version", fn: func() { NewVersionCmd(nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PanicsWithValue(t, "New"+panicName(tt.name)+"Cmd: client dependency cannot be nil", tt.fn)
		})
	}
}

func panicName(name string) string {
	switch name {
	case "typed":
		return "TypedToast"
	default:
		return strings.ToUpper(name[:1]) + name[1:]
	}
}
