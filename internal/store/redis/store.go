// Package redis persists price monitors and price history so they survive
// restarts. The in-memory cache manager stays authoritative; this store is a
// best-effort write-through mirror hydrated once at startup.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/logger"
)

const historyKeep = 100

type Store struct {
	client *redis.Client
	log    logger.Logger
}

func New(client *redis.Client, log logger.Logger) *Store {
	return &Store{client: client, log: log}
}

// SaveMonitor stores the monitor state under its route key.
func (s *Store) SaveMonitor(ctx context.Context, route string, mon cache.PriceMonitor) error {
	raw, err := json.Marshal(mon)
	if err != nil {
		return fmt.Errorf("marshal monitor %q: %w", route, err)
	}
	if err := s.client.Set(ctx, monitorKey(route), raw, 0).Err(); err != nil {
		return fmt.Errorf("save monitor %q: %w", route, err)
	}
	return nil
}

func (s *Store) DeleteMonitor(ctx context.Context, route string) error {
	if err := s.client.Del(ctx, monitorKey(route), historyKey(route)).Err(); err != nil {
		return fmt.Errorf("delete monitor %q: %w", route, err)
	}
	return nil
}

// AppendHistory pushes one price point and trims the list to the newest
// historyKeep entries.
func (s *Store) AppendHistory(ctx context.Context, route string, point cache.PricePoint) error {
	raw, err := json.Marshal(point)
	if err != nil {
		return fmt.Errorf("marshal price point %q: %w", route, err)
	}
	key := historyKey(route)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, raw)
	pipe.LTrim(ctx, key, -historyKeep, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append history %q: %w", route, err)
	}
	return nil
}

// LoadMonitors returns all persisted monitors keyed by route.
func (s *Store) LoadMonitors(ctx context.Context) (map[string]cache.PriceMonitor, error) {
	out := make(map[string]cache.PriceMonitor)
	iter := s.client.Scan(ctx, 0, monitorPattern, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		route := strings.TrimPrefix(key, keyPrefix+":monitor:")
		raw, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			s.log.Warn("skipping unreadable monitor", logger.String("key", key), logger.Error(err))
			continue
		}
		var mon cache.PriceMonitor
		if err := json.Unmarshal(raw, &mon); err != nil {
			s.log.Warn("skipping corrupt monitor", logger.String("key", key), logger.Error(err))
			continue
		}
		out[route] = mon
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan monitors: %w", err)
	}
	return out, nil
}

// LoadHistory returns the persisted price history for a route, oldest first.
func (s *Store) LoadHistory(ctx context.Context, route string) ([]cache.PricePoint, error) {
	raws, err := s.client.LRange(ctx, historyKey(route), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load history %q: %w", route, err)
	}
	points := make([]cache.PricePoint, 0, len(raws))
	for _, raw := range raws {
		var p cache.PricePoint
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			continue
		}
		points = append(points, p)
	}
	return points, nil
}

// Hydrate loads persisted monitors and their histories into the cache
// manager. Called once at startup before the service begins serving.
func (s *Store) Hydrate(ctx context.Context, mgr *cache.Manager) error {
	monitors, err := s.LoadMonitors(ctx)
	if err != nil {
		return err
	}
	for route, mon := range monitors {
		mgr.RestoreMonitor(route, mon)
		history, err := s.LoadHistory(ctx, route)
		if err != nil {
			s.log.Warn("history hydration failed", logger.String("route", route), logger.Error(err))
			continue
		}
		mgr.RestoreHistory(route, history)
	}
	if len(monitors) > 0 {
		s.log.Info("hydrated price monitors from redis", logger.Int("count", len(monitors)))
	}
	return nil
}
