package twin

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore manages per-tenant rate limiters: tenant_id -> rate limiter
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

func (s *RateLimiterStore) GetLimiter(tenantID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[tenantID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[tenantID] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(tenantID string, tenantRate rate.Limit, tenantBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[tenantID] = rate.NewLimiter(tenantRate, tenantBurst)
}
