package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/roberta039/flight-search-3/internal/config"
)

func writeProvidersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "providers.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeProvidersFile(t, `---
providers:
  amadeus:
    base_url: https://api.amadeus.com
    rate_limit: 20
    timeout: 10s
  skyscrapper:
    enabled: false
`)

	loader := NewLoader(path)
	file, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(file.Providers) != 2 {
		t.Fatalf("Load() parsed %d providers, want 2", len(file.Providers))
	}
	ama := file.Providers["amadeus"]
	if ama.BaseURL != "https://api.amadeus.com" || ama.RateLimit != 20 {
		t.Errorf("amadeus overrides = %+v, want base_url + rate_limit", ama)
	}
	sky := file.Providers["skyscrapper"]
	if sky.Enabled == nil || *sky.Enabled {
		t.Errorf("skyscrapper enabled = %v, want false", sky.Enabled)
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := loader.Load(); err == nil {
		t.Fatal("Load() error = nil for missing file")
	}
}

func TestMapperApply(t *testing.T) {
	cfg := &config.Config{
		Amadeus:     config.ProviderConfig{Key: "k", Secret: "s", RateLimit: 10, Enabled: true},
		SkyScrapper: config.ProviderConfig{Key: "k", RateLimit: 5, Enabled: true},
	}

	enabled := false
	file := &FileConfig{Providers: map[string]ProviderProps{
		NameAmadeus:     {BaseURL: "https://api.amadeus.com", RateLimit: 20},
		NameSkyScrapper: {Enabled: &enabled},
	}}

	if err := NewMapper().Apply(cfg, file); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if cfg.Amadeus.BaseURL != "https://api.amadeus.com" {
		t.Errorf("Amadeus.BaseURL = %q, want override", cfg.Amadeus.BaseURL)
	}
	if cfg.Amadeus.RateLimit != 20 {
		t.Errorf("Amadeus.RateLimit = %d, want 20", cfg.Amadeus.RateLimit)
	}
	if cfg.SkyScrapper.Enabled {
		t.Error("SkyScrapper still enabled after explicit disable")
	}
}

func TestMapperApplyCannotEnableWithoutCredentials(t *testing.T) {
	cfg := &config.Config{
		AirLabs: config.ProviderConfig{Enabled: false}, // no key
	}

	enabled := true
	file := &FileConfig{Providers: map[string]ProviderProps{
		NameAirLabs: {Enabled: &enabled},
	}}

	if err := NewMapper().Apply(cfg, file); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if cfg.AirLabs.Enabled {
		t.Error("AirLabs enabled without credentials")
	}
}

func TestMapperApplyRejectsUnknownProvider(t *testing.T) {
	cfg := &config.Config{}
	file := &FileConfig{Providers: map[string]ProviderProps{
		"ryanair": {BaseURL: "https://example.com"},
	}}

	if err := NewMapper().Apply(cfg, file); err == nil {
		t.Fatal("Apply() error = nil for unknown provider name")
	}
}

func TestMapperTimeout(t *testing.T) {
	m := NewMapper()
	def := 20 * time.Second

	file := &FileConfig{Providers: map[string]ProviderProps{
		NameAmadeus: {Timeout: "10s"},
		NameAirLabs: {Timeout: "bogus"},
	}}

	if got := m.Timeout(file, NameAmadeus, def); got != 10*time.Second {
		t.Errorf("Timeout(amadeus) = %v, want 10s", got)
	}
	if got := m.Timeout(file, NameAirLabs, def); got != def {
		t.Errorf("Timeout(airlabs) = %v, want default on bad value", got)
	}
	if got := m.Timeout(nil, NameAmadeus, def); got != def {
		t.Errorf("Timeout(nil file) = %v, want default", got)
	}
	if got := m.Timeout(file, NameSkyScrapper, def); got != def {
		t.Errorf("Timeout(unset) = %v, want default", got)
	}
}
