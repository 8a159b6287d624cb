// Package config loads runtime knobs for the wiredns-tool command line
// entry point: EDNS/TCP size limits, the TSIG keyring location, and the
// replay-guard sizing. The packet codec itself takes no configuration —
// only the CLI composition root does.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// MaxUDPSize is the UDP message size limit: the query subcommand logs
	// a warning when an encoded query exceeds it. It is not advertised in
	// an OPT record and no subcommand passes it to Truncate.
	MaxUDPSize uint `koanf:"max_udp_size" validate:"required,gte=512,lte=65535"`

	// MaxTCPSize is the TCP message size limit. It is loaded and
	// validated, but no subcommand reads it.
	MaxTCPSize uint `koanf:"max_tcp_size" validate:"required,gte=512,lte=65535"`

	// KeyringPath is the bbolt file backing the TSIG/SIG0 key store.
	KeyringPath string `koanf:"keyring_path" validate:"required"`

	// ReplayFilterCapacity is the expected number of distinct (id, mac)
	// pairs the Bloom-backed replay guard should size itself for.
	ReplayFilterCapacity uint `koanf:"replay_filter_capacity" validate:"required,gte=1"`

	// ReplayFilterFPRate is the target false-positive rate for the replay
	// guard's Bloom filter.
	ReplayFilterFPRate float64 `koanf:"replay_filter_fp_rate" validate:"required,gt=0,lt=1"`
}

// DefaultAppConfig defines the default configuration for wiredns-tool.
var DefaultAppConfig = AppConfig{
	Env:                  "prod",
	LogLevel:             "info",
	MaxUDPSize:           1232,
	MaxTCPSize:           65535,
	KeyringPath:          "/etc/wiredns/keyring.db",
	ReplayFilterCapacity: 10000,
	ReplayFilterFPRate:   0.01,
}

// envLoader loads environment variables with the prefix "WIREDNS_",
// transforming keys to lowercase and stripping the prefix. Mockable in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "WIREDNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "WIREDNS_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads DefaultAppConfig via the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DefaultAppConfig, "koanf"), nil)
}

// Load parses environment variables into an AppConfig, applying defaults
// and running validation.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
