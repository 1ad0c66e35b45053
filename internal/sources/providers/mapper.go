package providers

import (
	"fmt"
	"time"

	"github.com/roberta039/flight-search-3/internal/config"
)

// Provider names accepted in providers.yaml.
const (
	NameAmadeus     = "amadeus"
	NameSkyScrapper = "skyscrapper"
	NameAirLabs     = "airlabs"
)

// Mapper applies providers.yaml overrides onto the environment-derived config
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// Apply merges file overrides into cfg. Unknown provider names are rejected
// so a typo in the file fails loudly instead of silently doing nothing.
func (m *Mapper) Apply(cfg *config.Config, file *FileConfig) error {
	for name, props := range file.Providers {
		var target *config.ProviderConfig
		switch name {
		case NameAmadeus:
			target = &cfg.Amadeus
		case NameSkyScrapper:
			target = &cfg.SkyScrapper
		case NameAirLabs:
			target = &cfg.AirLabs
		default:
			return fmt.Errorf("unknown provider %q in providers file", name)
		}

		if props.BaseURL != "" {
			target.BaseURL = props.BaseURL
		}
		if props.RateLimit > 0 {
			target.RateLimit = props.RateLimit
		}
		if props.Timeout != "" {
			if _, err := time.ParseDuration(props.Timeout); err != nil {
				return fmt.Errorf("invalid timeout for provider %q: %w", name, err)
			}
		}
		if props.Enabled != nil {
			// A provider without credentials stays disabled regardless
			target.Enabled = *props.Enabled && target.Key != ""
		}
	}
	return nil
}

// Timeout returns the parsed timeout override for a provider, or def when
// the file does not set one.
func (m *Mapper) Timeout(file *FileConfig, name string, def time.Duration) time.Duration {
	if file == nil {
		return def
	}
	props, ok := file.Providers[name]
	if !ok || props.Timeout == "" {
		return def
	}
	d, err := time.ParseDuration(props.Timeout)
	if err != nil {
		return def
	}
	return d
}
