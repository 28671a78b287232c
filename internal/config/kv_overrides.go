package config

import (
	"strconv"
	"strings"
)

// ApplyKVOverrides applies free-form -c key=value overrides.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "proxy_url":
			cfg.ProxyURL = val
		case "fetch_timeout_secs":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.FetchTimeoutSecs = n
			}
		case "preview_limit":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				cfg.PreviewLimit = n
			}
		case "db_path":
			cfg.DBPath = val
		case "store_policy":
			cfg.StorePolicy = val
		case "system_prompt":
			cfg.SystemPrompt = val
		case "log_level":
			cfg.LogLevel = val
		}
	}
	return cfg
}
