package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// configFileName is the config file looked up under the config directory.
const configFileName = "config.toml"

// Config holds user preferences loaded from ~/.config/metpath/config.toml.
// All fields are optional; the zero value selects built-in defaults.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	KEGG   KEGGConfig   `toml:"kegg"`
	Server ServerConfig `toml:"server"`
	Fetch  FetchConfig  `toml:"fetch"`
}

// CacheConfig selects where cached KEGG responses are stored.
type CacheConfig struct {
	// Dir overrides the XDG cache directory.
	Dir string `toml:"dir"`
}

// RedisConfig switches the cache backend to Redis when Addr is set.
// Useful when several metpath processes should share one cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// KEGGConfig overrides the upstream KEGG REST endpoint, e.g. for a mirror.
type KEGGConfig struct {
	BaseURL string `toml:"base_url"`
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// FetchConfig holds defaults for the fetch command.
type FetchConfig struct {
	HideCofactors bool `toml:"hide_cofactors"`
}

// loadConfig reads the config file if present. A missing file yields the
// zero Config; a malformed file is logged and otherwise ignored so a typo
// in the config never blocks the CLI.
func loadConfig(logger *log.Logger) Config {
	var cfg Config

	dir, err := configDir()
	if err != nil {
		return cfg
	}
	path := filepath.Join(dir, configFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		logger.Warnf("Ignoring malformed config %s: %v", path, err)
		return Config{}
	}
	return cfg
}
