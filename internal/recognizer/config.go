package recognizer

import (
	"errors"
	"time"
)

// DefaultTimeout bounds a single recognizer request.
const DefaultTimeout = 10 * time.Second

// ErrMissingURL is returned when no recognizer URL is configured.
var ErrMissingURL = errors.New("recognizer URL is not set")

// Config holds recognizer client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Validate reports whether the configuration can be used to build a client.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingURL
	}
	return nil
}
