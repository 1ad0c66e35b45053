package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/logger"
	"github.com/roberta039/flight-search-3/internal/service"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time // for testing, defaults to time.Now
	TrustProxy      bool             // true if running behind a trusted reverse proxy
	RedisClient     *redis.Client    // nil when persistence is disabled
	Caches          *cache.Manager
	Search          *service.FlightSearchService
	DefaultCurrency string        // applied when a search request omits one
	MaxResults      int           // default cap on merged results
	RefreshTrigger  chan struct{} // channel to trigger a manual monitor refresh
	Providers       []string      // names of the enabled flight providers
}
