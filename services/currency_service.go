package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisRatesKey = "currency:rates"

// defaultRates is the last-resort conversion table used when no live fetch
// has ever succeeded and no snapshot survives in redis. Stale or approximate
// rates are acceptable: conversion is display-only and pricing always
// succeeds in the base currency.
var defaultRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"THB": 36.5,
	"JPY": 155.0,
}

// CurrencyService holds the single shared currency-rate snapshot. It refreshes
// hourly from an external feed, keeps the last good snapshot in memory and
// mirrors it to redis (when available) so a restart can serve stale rates
// instead of none. Fetch failures never surface to callers.
type CurrencyService struct {
	mu        sync.RWMutex
	rates     map[string]float64
	fetchedAt time.Time

	url    string
	client *http.Client
	rdb    *redis.Client // may be nil; everything degrades to in-memory
	stop   chan struct{}
}

func NewCurrencyService(url string, rdb *redis.Client) *CurrencyService {
	s := &CurrencyService{
		rates:  copyRates(defaultRates),
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		rdb:    rdb,
		stop:   make(chan struct{}),
	}
	s.restoreSnapshot()
	return s
}

func copyRates(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// restoreSnapshot replaces the default table with the last persisted snapshot,
// if redis is up and holds one.
func (s *CurrencyService) restoreSnapshot() {
	if s.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := s.rdb.Get(ctx, redisRatesKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("warning: failed to read currency snapshot from redis: %v", err)
		}
		return
	}
	var snapshot map[string]float64
	if err := json.Unmarshal(raw, &snapshot); err != nil || len(snapshot) == 0 {
		log.Printf("warning: discarding unreadable currency snapshot: %v", err)
		return
	}
	s.mu.Lock()
	s.rates = snapshot
	s.mu.Unlock()
	log.Printf("restored %d currency rates from redis snapshot", len(snapshot))
}

func (s *CurrencyService) persistSnapshot(rates map[string]float64) {
	if s.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := json.Marshal(rates)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, redisRatesKey, raw, 0).Err(); err != nil {
		log.Printf("warning: failed to persist currency snapshot: %v", err)
	}
}

// Refresh fetches the live feed once. On any failure the previous snapshot
// stays in place and the error is returned for logging only.
func (s *CurrencyService) Refresh(ctx context.Context) error {
	if s.url == "" {
		return fmt.Errorf("no currency rates url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("currency fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("currency fetch failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("currency fetch failed: %w", err)
	}

	// Accept both {"rates": {...}} and a flat {code: rate} body.
	var envelope struct {
		Rates map[string]float64 `json:"rates"`
	}
	rates := map[string]float64{}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Rates) > 0 {
		rates = envelope.Rates
	} else if err := json.Unmarshal(body, &rates); err != nil {
		return fmt.Errorf("currency fetch failed: %w", err)
	}
	if len(rates) == 0 {
		return fmt.Errorf("currency fetch returned no rates")
	}

	normalized := make(map[string]float64, len(rates)+1)
	for code, rate := range rates {
		if rate > 0 {
			normalized[strings.ToUpper(code)] = rate
		}
	}
	normalized["USD"] = 1.0

	s.mu.Lock()
	s.rates = normalized
	s.fetchedAt = time.Now().UTC()
	s.mu.Unlock()

	s.persistSnapshot(normalized)
	return nil
}

// StartRefreshLoop refreshes immediately and then on the given cadence until
// Stop is called. Failed refreshes are logged and the cached snapshot keeps
// serving.
func (s *CurrencyService) StartRefreshLoop(interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		refresh := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.Refresh(ctx); err != nil {
				log.Printf("warning: currency refresh failed, serving cached rates: %v", err)
			}
		}
		refresh()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				refresh()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *CurrencyService) Stop() {
	close(s.stop)
}

// GetRates returns a copy of the current snapshot.
func (s *CurrencyService) GetRates() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRates(s.rates)
}

// Rate looks up one display-conversion rate. The bool is false for unknown
// codes; callers then skip conversion and present base currency.
func (s *CurrencyService) Rate(code string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rate, ok := s.rates[strings.ToUpper(strings.TrimSpace(code))]
	return rate, ok
}

// FetchedAt reports when the snapshot was last refreshed from the live feed.
// Zero means the snapshot is a restored or default table.
func (s *CurrencyService) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}
