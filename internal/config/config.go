// Package config loads moodtune settings from defaults, a config file,
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/justestif/go-moodtune/internal/mood"
	"github.com/justestif/go-moodtune/internal/spotify"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. MOODTUNE_ADDR.
	EnvPrefix = "MOODTUNE"

	// FileName is the config file searched for in the home directory (without extension).
	FileName = ".moodtune"
)

// Keys.
const (
	KeyAddr              = "addr"
	KeyRecognizerURL     = "recognizer_url"
	KeyRecognizerTimeout = "recognizer_timeout"
	KeyAllowedOrigins    = "allowed_origins"
	KeySpotifyID         = "spotify_id"
	KeySpotifySecret     = "spotify_secret"
	KeySpotifyMarket     = "spotify_market"
	KeyFallbackPhrase    = "fallback_phrase"
)

// Defaults.
const (
	DefaultAddr              = ":8080"
	DefaultRecognizerTimeout = mood.DefaultRecognizerTimeout
	DefaultSpotifyMarket     = spotify.DefaultMarket
	DefaultFallbackPhrase    = mood.DefaultFallbackPhrase
)

// DefaultAllowedOrigins are the local development front-end origins.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

var (
	// ErrMissingAddr is returned when the listen address is empty.
	ErrMissingAddr = errors.New("listen address is required")

	// ErrInvalidTimeout is returned for a non-positive recognizer timeout.
	ErrInvalidTimeout = errors.New("recognizer timeout must be positive")
)

// Config holds the resolved settings.
type Config struct {
	Addr              string
	RecognizerURL     string // Empty disables audio analysis; audio requests fall back to text
	RecognizerTimeout time.Duration
	AllowedOrigins    []string
	SpotifyID         string // Spotify resolution is enabled only when both ID and secret are set
	SpotifySecret     string
	SpotifyMarket     string
	FallbackPhrase    string
}

// SpotifyEnabled reports whether Spotify credentials were supplied.
func (c *Config) SpotifyEnabled() bool {
	return c.SpotifyID != "" && c.SpotifySecret != ""
}

// Validate checks the settings that have no usable zero value.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return ErrMissingAddr
	}
	if c.RecognizerTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// SetDefaults registers default values and environment bindings on v.
// SPOTIFY_ID and SPOTIFY_SECRET are honored alongside the prefixed names.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, DefaultAddr)
	v.SetDefault(KeyRecognizerTimeout, DefaultRecognizerTimeout)
	v.SetDefault(KeyAllowedOrigins, DefaultAllowedOrigins)
	v.SetDefault(KeySpotifyMarket, DefaultSpotifyMarket)
	v.SetDefault(KeyFallbackPhrase, DefaultFallbackPhrase)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv(KeySpotifyID, EnvPrefix+"_SPOTIFY_ID", "SPOTIFY_ID")
	_ = v.BindEnv(KeySpotifySecret, EnvPrefix+"_SPOTIFY_SECRET", "SPOTIFY_SECRET")
}

// Load reads settings into a Config. An explicit cfgFile must exist; otherwise
// $HOME/.moodtune.yaml is read if present.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Addr:              v.GetString(KeyAddr),
		RecognizerURL:     v.GetString(KeyRecognizerURL),
		RecognizerTimeout: v.GetDuration(KeyRecognizerTimeout),
		AllowedOrigins:    splitList(v.GetStringSlice(KeyAllowedOrigins)),
		SpotifyID:         v.GetString(KeySpotifyID),
		SpotifySecret:     v.GetString(KeySpotifySecret),
		SpotifyMarket:     v.GetString(KeySpotifyMarket),
		FallbackPhrase:    v.GetString(KeyFallbackPhrase),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList accepts both YAML lists and comma-separated environment values.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
