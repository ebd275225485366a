package sleep

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore holds one token bucket per client_uuid. Each ingest surface
// (HTTP, gRPC, MQTT) owns its own store, so a client's budget is per surface.
// Buckets are created on first use with the default rate and burst and are
// replaced, not adjusted, by SetLimiter.
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(clientID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[clientID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[clientID] = limiter
	}
	return limiter
}

// SetLimiter replaces the limiter of clientID, resetting its bucket.
func (s *RateLimiterStore) SetLimiter(clientID string, clientRate rate.Limit, clientBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[clientID] = rate.NewLimiter(clientRate, clientBurst)
}

// Allow takes one token from the limiter of clientID.
func (s *RateLimiterStore) Allow(clientID string) bool {
	return s.GetLimiter(clientID).Allow()
}
