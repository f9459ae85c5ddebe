package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// StorageDriverMemory keeps credentials in process memory only; they
	// will not survive a restart.
	StorageDriverMemory = "memory"
	// StorageDriverFile persists credentials to a JSON state file.
	StorageDriverFile = "file"
	// StorageDriverSQLite persists credentials to a local sqlite database.
	StorageDriverSQLite = "sqlite"
)

type StorageConfig struct {
	// Driver selects the credential store backend. Empty picks file when
	// Path is set, memory otherwise.
	Driver string `koanf:"driver" mapstructure:"driver"`
	// Path of the on-disk state file or sqlite database.
	Path string `koanf:"path" mapstructure:"path"`
}

// ResolveDriver applies the driver defaulting rule.
func (s StorageConfig) ResolveDriver() string {
	driver := strings.TrimSpace(s.Driver)
	if driver != "" {
		return driver
	}
	if strings.TrimSpace(s.Path) != "" {
		return StorageDriverFile
	}
	return StorageDriverMemory
}

type Config struct {
	ClientName     string        `koanf:"client_name" mapstructure:"client_name"`
	BaseURL        string        `koanf:"base_url" mapstructure:"base_url"`
	LoginPath      string        `koanf:"login_path" mapstructure:"login_path"`
	RequestTimeout time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
	Storage        StorageConfig `koanf:"storage" mapstructure:"storage"`
}

func DefaultConfig() Config {
	return Config{
		ClientName:     "shelf",
		LoginPath:      "/login",
		RequestTimeout: 30 * time.Second,
		Storage:        StorageConfig{},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ClientName) == "" {
		return fmt.Errorf("core: client_name is required")
	}
	trimmed := strings.TrimSpace(c.BaseURL)
	if trimmed == "" {
		return fmt.Errorf("core: base_url is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("core: base_url is not a valid url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("core: base_url must be absolute, got %q", trimmed)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("core: request_timeout must not be negative")
	}
	switch driver := c.Storage.ResolveDriver(); driver {
	case StorageDriverMemory:
	case StorageDriverFile, StorageDriverSQLite:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("core: storage driver %q requires a path", driver)
		}
	default:
		return fmt.Errorf("core: unknown storage driver %q", driver)
	}
	return nil
}
