package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultAPIURL is the analysis backend the client talks to unless overridden.
const DefaultAPIURL = "https://backend-of-thinktube.onrender.com"

type Config struct {
	APIURL         string `toml:"api_url"`
	RequestTimeout string `toml:"request_timeout"` // "" = no timeout
	SendVideoID    bool   `toml:"send_video_id"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	Archive        bool   `toml:"archive"`
	ArchivePath    string `toml:"archive_path"`

	// Path is the config file that was read, empty if none existed.
	Path string `toml:"-"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return loadFrom(home)
}

func loadFrom(home string) (*Config, error) {
	dir := filepath.Join(home, ".config", "thinktube")
	cfg := &Config{
		APIURL:      DefaultAPIURL,
		LogFile:     filepath.Join(dir, "thinktube.log"),
		LogLevel:    "info",
		ArchivePath: filepath.Join(dir, "archive.db"),
	}

	cfgPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
		cfg.Path = cfgPath
	}

	// env wins over the file
	if v := os.Getenv("THINKTUBE_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	if _, err := cfg.Timeout(); err != nil {
		return nil, err
	}

	// expand ~ in paths
	cfg.LogFile = expandHome(cfg.LogFile, home)
	cfg.ArchivePath = expandHome(cfg.ArchivePath, home)

	return cfg, nil
}

// Timeout parses RequestTimeout. Zero means requests never time out.
func (c *Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("request_timeout %q: %w", c.RequestTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("request_timeout %q: must not be negative", c.RequestTimeout)
	}
	return d, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
