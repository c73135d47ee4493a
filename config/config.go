// file: rtrie/config/config.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rskv-p/rtrie/constant"
)

// Config holds the trie shape and the runtime settings of the CLI and service.
type Config struct {
	Branching int    `json:"branching" mapstructure:"branching"`
	Prune     bool   `json:"prune" mapstructure:"prune"`
	LogLevel  string `json:"log_level" mapstructure:"log_level"`
	LogStyle  string `json:"log_style" mapstructure:"log_style"`
	LogFile   string `json:"log_file" mapstructure:"log_file"`
	Addr      string `json:"addr" mapstructure:"addr"`
	DevMode   bool   `json:"dev_mode" mapstructure:"dev_mode"`

	// REST auth; an empty APISecret leaves the API open.
	APISecret       string `json:"-" mapstructure:"api_secret"`
	APIUser         string `json:"api_user,omitempty" mapstructure:"api_user"`
	APIPasswordHash string `json:"api_password_hash,omitempty" mapstructure:"api_password_hash"` // bcrypt

	// NATS endpoint; NatsURL connects to an existing server, NatsPort > 0 embeds one.
	NatsURL     string `json:"nats_url,omitempty" mapstructure:"nats_url"`
	NatsHost    string `json:"nats_host" mapstructure:"nats_host"`
	NatsPort    int    `json:"nats_port" mapstructure:"nats_port"`
	NatsSubject string `json:"nats_subject" mapstructure:"nats_subject"`

	values map[string]any
}

// Default returns a default config.
func Default() *Config {
	return &Config{
		Branching: 32,
		Prune:     false,
		LogLevel:  "info",
		LogStyle:  "dark",
		Addr:      "127.0.0.1:8080",

		NatsHost:    "127.0.0.1",
		NatsSubject: "rtrie",

		values: map[string]any{},
	}
}

// New starts from Default, applies opts in order and decodes the collected values.
func New(opts ...Option) (*Config, error) {
	cfg := Default()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.decode(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode copies the raw values onto the typed fields; "32" and "true" are accepted.
func (cfg *Config) decode() error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("build config decoder: %w", err)
	}
	if err := dec.Decode(cfg.values); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Sources returns the options for a JSON file and the RTRIE_* environment, in that order.
// An empty path falls back to $RTRIE_CONFIG, then to ./rtrie.json if it exists.
func Sources(path string) []Option {
	if path == "" {
		path = GetEnvStr(constant.EnvConfigPath, "")
	}
	if path == "" {
		if _, err := os.Stat(constant.DefaultConfigFile); err == nil {
			path = constant.DefaultConfigFile
		}
	}
	var opts []Option
	if path != "" {
		opts = append(opts, FromJSON(path))
	}
	return append(opts, FromEnv(constant.EnvPrefix))
}

// Validate checks config for usable values.
func (cfg *Config) Validate() error {
	var bad []string
	if cfg.Branching < 2 {
		bad = append(bad, fmt.Sprintf("branching(%d)", cfg.Branching))
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		bad = append(bad, fmt.Sprintf("log_level(%q)", cfg.LogLevel))
	}
	if cfg.Addr == "" {
		bad = append(bad, "addr")
	}
	if cfg.APISecret != "" && (cfg.APIUser == "" || cfg.APIPasswordHash == "") {
		bad = append(bad, "api_user/api_password_hash")
	}
	if cfg.NatsSubject == "" {
		bad = append(bad, "nats_subject")
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", constant.ErrInvalidConfig, strings.Join(bad, ", "))
	}
	return nil
}

func (cfg *Config) String() string {
	data, _ := json.MarshalIndent(cfg, "", "  ")
	return string(data)
}

func (cfg *Config) Dump(w io.Writer) {
	data, _ := json.MarshalIndent(cfg, "", "  ")
	_, _ = w.Write(data)
}

type ctxKey struct{}

// WithContext stores cfg in ctx.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config stored in ctx or Default().
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return Default()
}
