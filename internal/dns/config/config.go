// Package config loads dnsq settings from the environment.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from DNSQ_* environment
// variables. Record type and class for the lookup are revalidated by the
// domain layer against the full registries; validation here only catches
// obviously broken input before any query is built.
type AppConfig struct {
	// Servers is the list of resolvers to query, in ip:port form,
	// tried in order (or raced when Parallel is set).
	Servers []string `koanf:"servers" validate:"required,dive,ip_port"`

	// Timeout is the per-exchange timeout in seconds.
	Timeout int `koanf:"timeout" validate:"required,gte=1,lte=60"`

	// Parallel races all servers instead of trying them serially.
	Parallel bool `koanf:"parallel"`

	// QType is the record type mnemonic to query (e.g. "A", "AAAA", "MX").
	QType string `koanf:"qtype" validate:"required"`

	// QClass is the query class mnemonic, normally "IN".
	QClass string `koanf:"qclass" validate:"required"`

	// CacheSize bounds the in-memory answer cache.
	CacheSize uint `koanf:"cache_size" validate:"required,gte=1"`

	// DisableCache bypasses answer caching entirely.
	DisableCache bool `koanf:"disable_cache"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity.
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
}

// DEFAULT_APP_CONFIG defines the default settings for the lookup client.
var DEFAULT_APP_CONFIG = AppConfig{
	Servers:      []string{"1.1.1.1:53", "1.0.0.1:53"},
	Timeout:      5,
	Parallel:     false,
	QType:        "A",
	QClass:       "IN",
	CacheSize:    256,
	DisableCache: false,
	Env:          "prod",
	LogLevel:     "info",
}

// validIPPort reports whether the field holds a valid "IP:port" pair.
func validIPPort(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	ip, port, err := net.SplitHostPort(addr)
	if err != nil || ip == "" || port == "" {
		return false
	}
	if net.ParseIP(ip) == nil {
		return false
	}
	portNum, err := strconv.ParseUint(port, 10, 16)
	return err == nil && portNum > 0 && portNum < 65536
}

// envLoader loads DNSQ_-prefixed environment variables, splitting
// space- or comma-separated values into lists. Overridable in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNSQ_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNSQ_"))
			value = strings.TrimSpace(value)

			if value == "" {
				return key, value
			}

			if strings.Contains(value, " ") || strings.Contains(value, ",") {
				parts := strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
				return key, parts
			}

			return key, value
		},
	}), nil)
}

// defaultLoader seeds the koanf instance from DEFAULT_APP_CONFIG.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation installs the custom ip_port rule.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("ip_port", validIPPort)
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
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
