package providers

// FileConfig represents the top-level structure of providers.yaml
type FileConfig struct {
	Providers map[string]ProviderProps `yaml:"providers"`
}

// ProviderProps holds the per-provider override properties
type ProviderProps struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	RateLimit int    `yaml:"rate_limit,omitempty"` // calls per minute
	Timeout   string `yaml:"timeout,omitempty"`    // Go duration string, ex: "15s"
	Enabled   *bool  `yaml:"enabled,omitempty"`    // nil = keep env-derived state
}
