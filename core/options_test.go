package core

import (
	"context"
	"testing"
	"time"
)

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := ResolveConfig(context.Background(), nil, nil, Config{
		BaseURL: "https://api.example.com/api",
	})
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.ClientName != "shelf" {
		t.Fatalf("expected default client_name, got %q", cfg.ClientName)
	}
	if cfg.BaseURL != "https://api.example.com/api" {
		t.Fatalf("runtime base_url must win, got %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.RequestTimeout)
	}
}

func TestResolveConfig_LayerPrecedence(t *testing.T) {
	provider := NewCfgxConfigProvider(NewStaticRawConfigLoader(map[string]any{
		"base_url":   "https://config.example.com",
		"login_path": "/signin",
	}))

	cfg, err := ResolveConfig(context.Background(), provider, nil, Config{
		BaseURL: "https://runtime.example.com",
	})
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.BaseURL != "https://runtime.example.com" {
		t.Fatalf("runtime layer must override config layer, got %q", cfg.BaseURL)
	}
	if cfg.LoginPath != "/signin" {
		t.Fatalf("config layer must override defaults, got %q", cfg.LoginPath)
	}
}

func TestResolveConfig_InvalidResultRejected(t *testing.T) {
	if _, err := ResolveConfig(context.Background(), nil, nil, Config{}); err == nil {
		t.Fatalf("expected validation failure without base_url")
	}
}
