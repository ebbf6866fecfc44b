package sdk

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted for blank Config fields.
const (
	EnvBaseURL   = "LEDGERDESK_BASE_URL"
	EnvAppID     = "LEDGERDESK_APP_ID"
	EnvAppSecret = "LEDGERDESK_APP_SECRET" //nolint:gosec // variable name, not a credential
	EnvTimeout   = "LEDGERDESK_TIMEOUT"
)

// Config wires credentials, base URL, transport and telemetry for the API
// client. The client copies it at construction; later changes have no effect.
type Config struct {
	BaseURL   string `yaml:"base_url"`
	AppID     string `yaml:"app_id"`
	AppSecret string `yaml:"app_secret"`
	UserAgent string `yaml:"user_agent"`
	// Timeout bounds every request unless overridden with WithTimeout. Zero
	// leaves deadlines to the caller's context and the transport.
	Timeout time.Duration `yaml:"timeout"`
	// StrictDecoding rejects response keys the models do not declare.
	StrictDecoding bool `yaml:"strict_decoding"`
	// DisableEnv skips the environment fallback for blank fields.
	DisableEnv bool `yaml:"-"`

	HTTPClient HTTPDoer       `yaml:"-"`
	Telemetry  TelemetryHooks `yaml:"-"`
	Logger     *slog.Logger   `yaml:"-"`
}

type envConfig struct {
	BaseURL   string        `env:"LEDGERDESK_BASE_URL"`
	AppID     string        `env:"LEDGERDESK_APP_ID"`
	AppSecret string        `env:"LEDGERDESK_APP_SECRET"`
	Timeout   time.Duration `env:"LEDGERDESK_TIMEOUT"`
}

// ConfigFromEnv reads the LEDGERDESK_* environment variables. A value that
// does not parse, such as a malformed timeout, is an error.
func ConfigFromEnv() (Config, error) {
	var env envConfig
	if err := envdecode.StrictDecode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("sdk: read environment: %w", err)
	}
	return Config{
		BaseURL:   env.BaseURL,
		AppID:     env.AppID,
		AppSecret: env.AppSecret,
		Timeout:   env.Timeout,
	}, nil
}

// LoadConfigFile reads a YAML config file. Unknown keys are rejected.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("sdk: read config: %w", err)
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("sdk: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// withEnvDefaults fills blank fields from the environment.
func (cfg Config) withEnvDefaults() (Config, error) {
	if cfg.DisableEnv {
		return cfg, nil
	}
	env, err := ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = env.BaseURL
	}
	if cfg.AppID == "" {
		cfg.AppID = env.AppID
	}
	if cfg.AppSecret == "" {
		cfg.AppSecret = env.AppSecret
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = env.Timeout
	}
	return cfg, nil
}

// Option configures a client built with NewClientWithOptions.
type Option func(*Config)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option { return func(c *Config) { c.BaseURL = u } }

// WithAppCredentials sets the X-APP-ID and X-APP-SECRET values.
func WithAppCredentials(appID, appSecret string) Option {
	return func(c *Config) {
		c.AppID = appID
		c.AppSecret = appSecret
	}
}

// WithHTTPClient injects the transport.
func WithHTTPClient(h HTTPDoer) Option { return func(c *Config) { c.HTTPClient = h } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(c *Config) { c.Logger = l } }

// WithTelemetry sets the telemetry hooks.
func WithTelemetry(t TelemetryHooks) Option { return func(c *Config) { c.Telemetry = t } }

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option { return func(c *Config) { c.UserAgent = ua } }

// WithDefaultTimeout bounds every request made by the client.
func WithDefaultTimeout(d time.Duration) Option { return func(c *Config) { c.Timeout = d } }

// WithStrictDecoding rejects unknown response keys.
func WithStrictDecoding() Option { return func(c *Config) { c.StrictDecoding = true } }

// WithoutEnv disables the environment fallback.
func WithoutEnv() Option { return func(c *Config) { c.DisableEnv = true } }
