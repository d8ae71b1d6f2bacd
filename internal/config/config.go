// Package config loads settings from the config file, the environment and
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/awaistahir/skycast/internal/geo"
	"github.com/awaistahir/skycast/internal/weather"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SKYCAST_API_KEY
const EnvPrefix = "SKYCAST"

// ErrMissingAPIKey is returned by Validate when no API key is configured
var ErrMissingAPIKey = errors.New("api_key is not set (config file or SKYCAST_API_KEY)")

// Config holds all settings of the CLI and the server
type Config struct {
	APIKey    string
	BaseURL   string
	IconURL   string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int

	DBPath string
	Port   int

	// Location is the position used by "here" lookups; nil when unset
	Location *geo.Position
	TimeZone string
}

// Dir returns the settings directory, $HOME/.skycast
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".skycast"), nil
}

// LoadEnv loads path into the environment if the file exists
func LoadEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads the settings into v. cfgFile overrides the default
// $HOME/.skycast/config.yaml; a missing default file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		APIKey:    v.GetString("api_key"),
		BaseURL:   v.GetString("base_url"),
		IconURL:   v.GetString("icon_url"),
		Timeout:   v.GetDuration("timeout"),
		RateLimit: v.GetFloat64("rate_limit"),
		RateBurst: v.GetInt("rate_burst"),
		DBPath:    v.GetString("db"),
		Port:      v.GetInt("port"),
		TimeZone:  v.GetString("timezone"),
	}

	if cfg.DBPath == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = filepath.Join(dir, "skycast.db")
	}

	if v.IsSet("location.latitude") && v.IsSet("location.longitude") {
		cfg.Location = &geo.Position{
			Latitude:  v.GetFloat64("location.latitude"),
			Longitude: v.GetFloat64("location.longitude"),
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", weather.DefaultBaseURL)
	v.SetDefault("icon_url", weather.DefaultIconURL)
	v.SetDefault("timeout", 0)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("rate_burst", 1)
	v.SetDefault("port", 8080)
}

// Validate checks the settings needed to call the provider
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %v", c.RateLimit)
	}
	return nil
}

// Weather returns the provider client settings
func (c *Config) Weather() weather.Config {
	return weather.Config{
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		IconURL:   c.IconURL,
		Timeout:   c.Timeout,
		RateLimit: c.RateLimit,
		RateBurst: c.RateBurst,
	}
}

// Zone returns the configured time zone, time.Local when none is set
func (c *Config) Zone() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
