package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultProxyURL     = "https://api.allorigins.win/get"
	DefaultFetchTimeout = 30
	DefaultPreviewLimit = 500
	DefaultSystemPrompt = "You are a helpful assistant. Use [calculator: ...], [search: ...] and [fetch: ...] to call tools."

	StorePolicyFormatted = "formatted"
	StorePolicyRaw       = "raw"
)

// Config is the only persisted config file schema.
type Config struct {
	ProxyURL         string `toml:"proxy_url"`
	FetchTimeoutSecs int    `toml:"fetch_timeout_secs"`
	PreviewLimit     int    `toml:"preview_limit"`
	DBPath           string `toml:"db_path"`
	StorePolicy      string `toml:"store_policy"`
	SystemPrompt     string `toml:"system_prompt"`
	LogLevel         string `toml:"log_level"`
	Source           string `toml:"-"`
}

func Default() Config {
	return Config{
		ProxyURL:         DefaultProxyURL,
		FetchTimeoutSecs: DefaultFetchTimeout,
		PreviewLimit:     DefaultPreviewLimit,
		DBPath:           defaultDBPath(),
		StorePolicy:      StorePolicyFormatted,
		SystemPrompt:     DefaultSystemPrompt,
		LogLevel:         "info",
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".toolchat", "config.toml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "toolchat.db"
	}
	return filepath.Join(home, ".toolchat", "toolchat.db")
}

// FetchTimeout returns the relay request timeout; non-positive values fall back to the default.
func (c Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSecs <= 0 {
		return DefaultFetchTimeout * time.Second
	}
	return time.Duration(c.FetchTimeoutSecs) * time.Second
}

// StoresRaw reports whether chats persist the raw text instead of the formatted display text.
func (c Config) StoresRaw() bool {
	return strings.EqualFold(strings.TrimSpace(c.StorePolicy), StorePolicyRaw)
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	return normalize(applyEnv(cfg)), nil
}

func applyEnv(cfg Config) Config {
	if env := strings.TrimSpace(os.Getenv("TOOLCHAT_PROXY_URL")); env != "" {
		cfg.ProxyURL = env
	}
	if env := strings.TrimSpace(os.Getenv("TOOLCHAT_DB_PATH")); env != "" {
		cfg.DBPath = env
	}
	return cfg
}

// normalize restores defaults for keys the file left blank.
func normalize(cfg Config) Config {
	def := Default()
	if strings.TrimSpace(cfg.ProxyURL) == "" {
		cfg.ProxyURL = def.ProxyURL
	}
	if cfg.PreviewLimit <= 0 {
		cfg.PreviewLimit = def.PreviewLimit
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = def.DBPath
	}
	if strings.TrimSpace(cfg.StorePolicy) == "" {
		cfg.StorePolicy = def.StorePolicy
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		cfg.SystemPrompt = def.SystemPrompt
	}
	return cfg
}
