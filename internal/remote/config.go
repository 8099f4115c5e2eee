// File path: internal/remote/config.go
package remote

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds connection settings for the remote activity service.
type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration

	HTTPMaxIdleConns    int
	HTTPMaxIdlePerHost  int
	HTTPIdleConnTimeout time.Duration
}

// Enabled reports whether a remote endpoint is configured at all. The engine
// runs in local-only mode otherwise.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

func DefaultConfig() Config {
	return Config{
		Timeout:             30 * time.Second,
		HTTPMaxIdleConns:    8,
		HTTPMaxIdlePerHost:  4,
		HTTPIdleConnTimeout: 90 * time.Second,
	}
}

// LoadConfig builds a Config from defaults and environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if value := strings.TrimSpace(os.Getenv("FITSIGHT_REMOTE_ENDPOINT")); value != "" {
		cfg.Endpoint = value
	}
	if value := strings.TrimSpace(os.Getenv("FITSIGHT_REMOTE_TOKEN")); value != "" {
		cfg.Token = value
	}
	if value := strings.TrimSpace(os.Getenv("FITSIGHT_REMOTE_TIMEOUT")); value != "" {
		dur, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("parse FITSIGHT_REMOTE_TIMEOUT: %w", err)
		}
		cfg.Timeout = dur
	}
	return cfg, nil
}
