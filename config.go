package youtrack

import (
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const defaultTimeout = 30 * time.Second

// Config configures the YouTrack client.
type Config struct {
	// BaseURL is the YouTrack instance URL without the /api suffix,
	// e.g. "https://example.youtrack.cloud".
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,http_url"`

	// Token is the permanent bearer token attached to every request.
	Token string `yaml:"token" mapstructure:"token" validate:"required"`

	// Timeout is the per-request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Logger receives one debug event per request. Nil disables logging.
	Logger *zerolog.Logger `yaml:"-" mapstructure:"-"`

	// Transport overrides the HTTP transport. Nil uses a clone of
	// http.DefaultTransport.
	Transport http.RoundTripper `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return fmt.Errorf("youtrack: invalid config: %w", err)
	}
	return nil
}

// ConfigFromEnv builds a Config from the environment. It reads
// YOUTRACK_BASE_URL, YOUTRACK_TOKEN, and YOUTRACK_TIMEOUT, loading the given
// .env files first (or ./.env when none are given and it exists).
func ConfigFromEnv(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("youtrack: load env file %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("YOUTRACK")
	v.AutomaticEnv()

	cfg := Config{
		BaseURL: v.GetString("base_url"),
		Token:   v.GetString("token"),
		Timeout: v.GetDuration("timeout"),
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
