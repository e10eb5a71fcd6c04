package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "UAPI"

	DefaultBaseURL        = "https://utilityapi.com/api"
	DefaultPollDelay      = time.Second
	DefaultRequestTimeout = 30 * time.Second
)

// Secret backends for access tokens. Auto tries pass first and falls back to
// files under Dir()/secrets.
const (
	SecretsAuto = "auto"
	SecretsPass = "pass"
	SecretsFile = "file"
)

// Config holds the settings the uapi command resolves from the config file,
// UAPI_* environment variables and flags.
type Config struct {
	BaseURL        string        `mapstructure:"base_url"`
	Token          string        `mapstructure:"token"`
	Profile        string        `mapstructure:"profile"`
	PollDelay      time.Duration `mapstructure:"poll_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateBurst      int           `mapstructure:"rate_burst"`
	SecretsBackend string        `mapstructure:"secrets_backend"`
	Log            LogConfig     `mapstructure:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Dir is the directory holding config.toml, profiles.toml and the file
// secret store.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "uapi"), nil
}

// Load resolves Config from v. Without a config file set on v beforehand,
// $HOME/.config/uapi/config.toml is read when present.
func Load(v *viper.Viper) (Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() == "" {
		dir, err := Dir()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Token = strings.TrimSpace(cfg.Token)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.BaseURL) == "":
		return errors.New("base_url is required")
	case c.PollDelay < 0:
		return errors.New("poll_delay must not be negative")
	case c.RequestTimeout < 0:
		return errors.New("request_timeout must not be negative")
	case c.RateLimit < 0:
		return errors.New("rate_limit must not be negative")
	case c.RateBurst < 0:
		return errors.New("rate_burst must not be negative")
	}

	switch c.SecretsBackend {
	case SecretsAuto, SecretsPass, SecretsFile:
	default:
		return fmt.Errorf("secrets_backend must be auto, pass or file, got %q", c.SecretsBackend)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("token", "")
	v.SetDefault("profile", "")
	v.SetDefault("poll_delay", DefaultPollDelay)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("rate_burst", 0)
	v.SetDefault("secrets_backend", SecretsAuto)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}
