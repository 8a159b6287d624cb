package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/knadh/koanf/v2"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Env != "prod" {
		t.Errorf("expected Env=prod, got %q", cfg.Env)
	}
	if cfg.MaxUDPSize != 1232 {
		t.Errorf("expected MaxUDPSize=1232, got %d", cfg.MaxUDPSize)
	}
	if cfg.KeyringPath != "/etc/wiredns/keyring.db" {
		t.Errorf("expected default KeyringPath, got %q", cfg.KeyringPath)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("WIREDNS_ENV", "dev")
	t.Setenv("WIREDNS_MAX_UDP_SIZE", "4096")
	t.Setenv("WIREDNS_KEYRING_PATH", "/tmp/keyring.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Env != "dev" {
		t.Errorf("expected Env=dev, got %q", cfg.Env)
	}
	if cfg.MaxUDPSize != 4096 {
		t.Errorf("expected MaxUDPSize=4096, got %d", cfg.MaxUDPSize)
	}
	if cfg.KeyringPath != "/tmp/keyring.db" {
		t.Errorf("expected overridden KeyringPath, got %q", cfg.KeyringPath)
	}
}

func TestLoad_InvalidEnvValueFailsValidation(t *testing.T) {
	t.Setenv("WIREDNS_ENV", "staging")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for unsupported env, got nil")
	}
}

func TestLoad_WhenDefaultLoaderFails(t *testing.T) {
	orig := defaultLoader
	defaultLoader = func(k *koanf.Koanf) error { return errors.New("mocked default error") }
	defer func() { defaultLoader = orig }()

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "mocked default error") {
		t.Fatalf("expected mocked default error, got %v", err)
	}
}

func TestLoad_WhenEnvLoaderFails(t *testing.T) {
	orig := envLoader
	envLoader = func(k *koanf.Koanf) error { return errors.New("mocked env error") }
	defer func() { envLoader = orig }()

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "mocked env error") {
		t.Fatalf("expected mocked env error, got %v", err)
	}
}
