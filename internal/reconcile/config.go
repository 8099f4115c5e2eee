// File path: internal/reconcile/config.go
package reconcile

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls the reconciliation engine.
type Config struct {
	// Enabled gates the whole feature. When false every entry point is an
	// inert no-op.
	Enabled bool
	// BatchDelay is the fixed pause between activities in batch modes.
	BatchDelay time.Duration
}

func DefaultConfig() Config {
	return Config{BatchDelay: 2 * time.Second}
}

// LoadConfig derives the engine configuration from the environment. The
// feature runs only when FITSIGHT_AI_ENABLED is true and a generation
// backend is available: either an OpenAI credential or an explicitly
// selected local provider.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if value := strings.TrimSpace(os.Getenv("FITSIGHT_AI_ENABLED")); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			cfg.Enabled = parsed
		}
	}
	if cfg.Enabled {
		hasKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) != ""
		localSelected := strings.EqualFold(strings.TrimSpace(os.Getenv("FITSIGHT_AI_PROVIDER")), "local")
		if !hasKey && !localSelected {
			cfg.Enabled = false
		}
	}
	if value := strings.TrimSpace(os.Getenv("FITSIGHT_BATCH_DELAY")); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed >= 0 {
			cfg.BatchDelay = parsed
		}
	}
	return cfg
}

func applyDefaults(cfg Config) Config {
	if cfg.BatchDelay < 0 {
		cfg.BatchDelay = DefaultConfig().BatchDelay
	}
	return cfg
}
