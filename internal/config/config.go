package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type ProviderConfig struct {
	BaseURL   string // override, empty = provider default
	Key       string // API key, empty = provider disabled
	Secret    string // only Amadeus uses a secret
	RateLimit int    // max calls per minute
	Enabled   bool   // derived from Key presence
}

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ProvidersFile          string        // optional providers.yaml with per-provider overrides
	SearchTimeout          time.Duration // total budget for one multi-provider search
	HTTPTimeout            time.Duration // per-request timeout toward upstream APIs
	MonitorRefreshInterval time.Duration // how often monitored routes are re-searched
	DefaultCurrency        string        // currency used when a search omits one
	MaxResults             int           // default cap on merged results (0 = unlimited)

	Amadeus     ProviderConfig
	SkyScrapper ProviderConfig
	AirLabs     ProviderConfig

	// Redis (optional; empty addr = run without persistence)
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between connect retries
	RedisPingTimeout    time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration

	// Inbound rate limiting
	RateLimitPerMin int  // per-IP requests per minute (0 = disabled)
	TrustProxy      bool // true => trust X-Forwarded-For headers
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("FLIGHT_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("FLIGHT_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("FLIGHT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("FLIGHT_PRETTY_LOG", true),

		// Search behavior
		ProvidersFile:          getenv("FLIGHT_PROVIDERS_FILE", ""), // optional
		SearchTimeout:          mustDuration("FLIGHT_SEARCH_TIMEOUT", 45*time.Second),
		HTTPTimeout:            mustDuration("FLIGHT_HTTP_TIMEOUT", 20*time.Second),
		MonitorRefreshInterval: mustDuration("FLIGHT_MONITOR_REFRESH_INTERVAL", 30*time.Minute),
		DefaultCurrency:        getenv("FLIGHT_DEFAULT_CURRENCY", "EUR"),
		MaxResults:             getenvInt("FLIGHT_MAX_RESULTS", 50),

		// Providers; a missing key disables the provider rather than failing
		Amadeus: ProviderConfig{
			BaseURL:   getenv("FLIGHT_AMADEUS_BASE_URL", ""),
			Key:       getenv("FLIGHT_AMADEUS_KEY", ""),
			Secret:    getenv("FLIGHT_AMADEUS_SECRET", ""),
			RateLimit: getenvInt("FLIGHT_AMADEUS_RATE_LIMIT", 10),
		},
		SkyScrapper: ProviderConfig{
			BaseURL:   getenv("FLIGHT_SKYSCRAPPER_BASE_URL", ""),
			Key:       getenv("FLIGHT_RAPIDAPI_KEY", ""),
			RateLimit: getenvInt("FLIGHT_SKYSCRAPPER_RATE_LIMIT", 5),
		},
		AirLabs: ProviderConfig{
			BaseURL:   getenv("FLIGHT_AIRLABS_BASE_URL", ""),
			Key:       getenv("FLIGHT_AIRLABS_KEY", ""),
			RateLimit: getenvInt("FLIGHT_AIRLABS_RATE_LIMIT", 10),
		},

		// Redis settings
		RedisAddr:           getenv("FLIGHT_REDIS_ADDR", ""), // optional
		RedisPassword:       getenv("FLIGHT_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("FLIGHT_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),

		// Access restrictions
		RateLimitPerMin: getenvInt("FLIGHT_RATE_LIMIT_PER_MIN", 60),
		TrustProxy:      mustBool("FLIGHT_TRUST_PROXY", false),
	}

	cfg.Amadeus.Enabled = cfg.Amadeus.Key != "" && cfg.Amadeus.Secret != ""
	cfg.SkyScrapper.Enabled = cfg.SkyScrapper.Key != ""
	cfg.AirLabs.Enabled = cfg.AirLabs.Key != ""

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = redact(cfg.RedisPassword)
		cfgCopy.Amadeus.Key = redact(cfg.Amadeus.Key)
		cfgCopy.Amadeus.Secret = redact(cfg.Amadeus.Secret)
		cfgCopy.SkyScrapper.Key = redact(cfg.SkyScrapper.Key)
		cfgCopy.AirLabs.Key = redact(cfg.AirLabs.Key)
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func redact(v string) string {
	if v == "" {
		return ""
	}
	return "***REDACTED***"
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
