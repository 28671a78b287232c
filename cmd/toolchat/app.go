package main

import (
	"net/http"

	"toolchat/internal/chat"
	"toolchat/internal/config"
	"toolchat/internal/logger"
	"toolchat/internal/store"
	"toolchat/internal/tools"
	"toolchat/internal/tools/handlers"
)

// app bundles the resolved config with the pipeline and, when opened, the store.
type app struct {
	cfg     config.Config
	runtime *tools.Runtime
	store   *store.Store
	chats   *chat.Service
}

func loadConfig(root rootArgs, overrides []string) config.Config {
	cfg, err := config.Load(root.cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg = config.ApplyKVOverrides(cfg, prependOverrides(root.overrides, overrides))
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Warnf("ignoring log_level %q: %v", cfg.LogLevel, err)
	}
	return cfg
}

func newRuntime(cfg config.Config) *tools.Runtime {
	return tools.NewRuntime(handlers.Default(handlers.Options{
		Client:       &http.Client{Timeout: cfg.FetchTimeout()},
		ProxyURL:     cfg.ProxyURL,
		PreviewLimit: cfg.PreviewLimit,
	})...)
}

// newApp builds the pipeline; withStore also opens the chat database.
func newApp(cfg config.Config, withStore bool) (*app, error) {
	a := &app{cfg: cfg, runtime: newRuntime(cfg)}
	opts := chat.Options{
		Processor:    a.runtime,
		StoreRaw:     cfg.StoresRaw(),
		SystemPrompt: cfg.SystemPrompt,
	}
	if withStore {
		st, err := store.Open(store.Config{DSN: cfg.DBPath})
		if err != nil {
			return nil, err
		}
		a.store = st
		opts.Store = st
	}
	a.chats = chat.New(opts)
	return a, nil
}

func (a *app) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		log.Warnf("close store: %v", err)
	}
}
