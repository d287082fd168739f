package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cristianoliveira/tip"
	"github.com/cristianoliveira/tip/internal/app"
	"github.com/cristianoliveira/tip/internal/config"
	"github.com/cristianoliveira/tip/internal/history"
	"github.com/cristianoliveira/tip/internal/logging"
	"github.com/cristianoliveira/tip/internal/version"
	"github.com/pelletier/go-toml/v2"
)

// cliClient resolves its dependencies on first use, after the root command
// has loaded the configuration.
type cliClient struct {
	once     sync.Once
	feedback *app.Client
	store    *history.Store
	storeErr error
}

var coreClient = &cliClient{}

func (c *cliClient) historyStore() (*history.Store, error) {
	if c.store == nil && c.storeErr == nil {
		c.store, c.storeErr = history.Open(config.Get("history_path", ""))
	}
	return c.store, c.storeErr
}

func (c *cliClient) app() *app.Client {
	c.once.Do(func() {
		log := logging.GetGlobal()
		var rec history.Recorder
		if config.GetBool("history_enabled", false) {
			store, err := c.historyStore()
			if err != nil {
				log.Warn("history disabled", "error", err)
			} else {
				rec = store
			}
		}
		c.feedback = app.NewClient(nil, tip.FromGlobalConfig(), log, rec)
	})
	return c.feedback
}

func (c *cliClient) Toast(ctx context.Context, message string, typ tip.Type, d time.Duration) error {
	return c.app().Toast(ctx, message, typ, d)
}

func (c *cliClient) Confirm(ctx context.Context, message string, opts tip.Options) (bool, error) {
	return c.app().Confirm(ctx, message, opts)
}

func (c *cliClient) Prompt(ctx context.Context, message string, opts tip.Options) (string, bool, error) {
	return c.app().Prompt(ctx, message, opts)
}

func (c *cliClient) Loading(ctx context.Context, message string, run func(ctx context.Context) error) error {
	return c.app().Loading(ctx, message, run)
}

func (c *cliClient) Demo(ctx context.Context) error {
	return c.app().Demo(ctx)
}

func (c *cliClient) History(ctx context.Context, limit int) ([]history.Event, error) {
	store, err := c.historyStore()
	if err != nil {
		return nil, err
	}
	return store.Recent(ctx, limit)
}

func (c *cliClient) ClearHistory(ctx context.Context) (int64, error) {
	store, err := c.historyStore()
	if err != nil {
		return 0, err
	}
	return store.Clear(ctx)
}

func (c *cliClient) ConfigTOML() ([]byte, error) {
	data, err := toml.Marshal(config.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	return data, nil
}

func (c *cliClient) ConfigPath() string {
	return config.Path()
}

func (c *cliClient) Version() string {
	return version.String()
}

// Close releases the history database if it was opened.
func (c *cliClient) Close() {
	if c.store != nil {
		_ = c.store.Close()
	}
}
