package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/tip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProgram stands in for *tea.Program: it initializes the model, runs an
// optional script against it and blocks until Quit.
type fakeProgram struct {
	model  tea.Model
	script func(p *fakeProgram)
	runErr error
	quit   chan struct{}
	once   sync.Once
}

func (p *fakeProgram) Run() (tea.Model, error) {
	if p.runErr != nil {
		return nil, p.runErr
	}
	p.model.Init()
	if p.script != nil {
		go p.script(p)
	}
	<-p.quit
	return p.model, nil
}

func (p *fakeProgram) Quit() {
	p.once.Do(func() { close(p.quit) })
}

func (p *fakeProgram) send(msg tea.Msg) {
	p.model.Update(msg)
}

// waitForView polls the rendered view until it contains s.
func (p *fakeProgram) waitForView(s string) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(p.model.View(), s) {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

type fakeFactory struct {
	mu     sync.Mutex
	script func(p *fakeProgram)
	runErr error
	last   *fakeProgram
}

func (f *fakeFactory) New(model tea.Model) Program {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = &fakeProgram{model: model, script: f.script, runErr: f.runErr, quit: make(chan struct{})}
	return f.last
}

func (f *fakeFactory) program() *fakeProgram {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func fastConfig() tip.Config {
	cfg := tip.DefaultConfig()
	cfg.AnimationDuration = time.Millisecond
	cfg.ToastDuration = 5 * time.Millisecond
	return cfg
}

func newTestClient(f *fakeFactory) *Client {
	return NewClient(f, fastConfig(), nil, nil)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want bool
	}{
		{name: "enter confirms", key: tea.KeyMsg{Type: tea.KeyEnter}, want: true},
		{name: "escape cancels", key: tea.KeyMsg{Type: tea.KeyEsc}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFactory{script: func(p *fakeProgram) {
				if p.waitForView("Proceed?") {
					p.send(tt.key)
				}
			}}

			got, err := newTestClient(f).Confirm(context.Background(), "Proceed?", tip.Options{})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptTyping(t *testing.T) {
	f := &fakeFactory{script: func(p *fakeProgram) {
		if p.waitForView("Name?") {
			p.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Bo")})
			p.send(tea.KeyMsg{Type: tea.KeyEnter})
		}
	}}

	value, ok, err := newTestClient(f).Prompt(context.Background(), "Name?", tip.Options{})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Bo", value)
}

func TestPromptCancelled(t *testing.T) {
	f := &fakeFactory{script: func(p *fakeProgram) {
		if p.waitForView("Name?") {
			p.send(tea.KeyMsg{Type: tea.KeyEsc})
		}
	}}

	value, ok, err := newTestClient(f).Prompt(context.Background(), "Name?", tip.Options{DefaultValue: "Amy"})

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestToastReturnsAfterRemoval(t *testing.T) {
	f := &fakeFactory{}

	err := newTestClient(f).Toast(context.Background(), "saved", tip.Success, 0)

	require.NoError(t, err)
	assert.NotContains(t, f.program().model.View(), "saved")
}

func TestToastRejectsEmptyMessage(t *testing.T) {
	f := &fakeFactory{}

	err := newTestClient(f).Toast(context.Background(), "", tip.Info, 0)

	assert.ErrorIs(t, err, tip.ErrInvalidToast)
}

func TestLoadingWrapsRun(t *testing.T) {
	f := &fakeFactory{}
	runErr := errors.New("exit status 2")
	var visible bool

	err := newTestClient(f).Loading(context.Background(), "Building", func(ctx context.Context) error {
		visible = strings.Contains(f.program().model.View(), "Building")
		return runErr
	})

	assert.ErrorIs(t, err, runErr)
	assert.True(t, visible)
}

func TestProgramExitCancelsCommand(t *testing.T) {
	f := &fakeFactory{script: func(p *fakeProgram) {
		if p.waitForView("Proceed?") {
			p.Quit()
		}
	}}

	_, err := newTestClient(f).Confirm(context.Background(), "Proceed?", tip.Options{})

	assert.ErrorIs(t, err, ErrProgramExited)
}

func TestProgramFailsToStart(t *testing.T) {
	runErr := errors.New("no tty")
	f := &fakeFactory{runErr: runErr}

	_, err := newTestClient(f).Confirm(context.Background(), "Proceed?", tip.Options{})

	assert.ErrorIs(t, err, runErr)
}
