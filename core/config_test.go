package core

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ClientName != "shelf" {
		t.Fatalf("expected default client_name shelf, got %q", cfg.ClientName)
	}
	if cfg.LoginPath != "/login" {
		t.Fatalf("expected default login_path /login, got %q", cfg.LoginPath)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("expected default request_timeout 30s, got %s", cfg.RequestTimeout)
	}
}

func TestConfigValidate(t *testing.T) {
	base := DefaultConfig()
	base.BaseURL = "https://api.example.com/api"
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	missing := base
	missing.BaseURL = ""
	if err := missing.Validate(); err == nil {
		t.Fatalf("expected error for missing base_url")
	}

	relative := base
	relative.BaseURL = "/api"
	if err := relative.Validate(); err == nil || !strings.Contains(err.Error(), "absolute") {
		t.Fatalf("expected absolute-url error, got %v", err)
	}

	negative := base
	negative.RequestTimeout = -time.Second
	if err := negative.Validate(); err == nil {
		t.Fatalf("expected error for negative timeout")
	}
}

func TestConfigValidate_StorageDrivers(t *testing.T) {
	base := DefaultConfig()
	base.BaseURL = "https://api.example.com"

	withPath := base
	withPath.Storage = StorageConfig{Path: "/tmp/shelf.json"}
	if err := withPath.Validate(); err != nil {
		t.Fatalf("path without driver should default to file: %v", err)
	}

	sqlite := base
	sqlite.Storage = StorageConfig{Driver: StorageDriverSQLite}
	if err := sqlite.Validate(); err == nil {
		t.Fatalf("sqlite driver without path must be rejected")
	}

	unknown := base
	unknown.Storage = StorageConfig{Driver: "redis"}
	if err := unknown.Validate(); err == nil {
		t.Fatalf("unknown storage driver must be rejected")
	}
}

func TestStorageConfigResolveDriver(t *testing.T) {
	if got := (StorageConfig{}).ResolveDriver(); got != StorageDriverMemory {
		t.Fatalf("empty storage should resolve to memory, got %q", got)
	}
	if got := (StorageConfig{Path: "state.json"}).ResolveDriver(); got != StorageDriverFile {
		t.Fatalf("path-only storage should resolve to file, got %q", got)
	}
	if got := (StorageConfig{Driver: StorageDriverSQLite, Path: "state.db"}).ResolveDriver(); got != StorageDriverSQLite {
		t.Fatalf("explicit driver must win, got %q", got)
	}
}
