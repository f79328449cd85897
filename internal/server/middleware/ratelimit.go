package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitorLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// limiterPool hands out one token bucket per key (IP or tenant ID) and reaps
// stale entries every 10 minutes to prevent unbounded memory growth.
type limiterPool struct {
	mu       sync.Mutex
	limiters map[string]*visitorLimiter
	rps      float64
	burst    int
}

func newLimiterPool(ctx context.Context, requestsPerSecond float64, burst int) *limiterPool {
	p := &limiterPool{
		limiters: make(map[string]*visitorLimiter),
		rps:      requestsPerSecond,
		burst:    burst,
	}

	// Background cleanup of stale limiters.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.mu.Lock()
				cutoff := time.Now().Add(-30 * time.Minute)
				for key, vl := range p.limiters {
					if vl.lastAccess.Before(cutoff) {
						delete(p.limiters, key)
					}
				}
				p.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	return p
}

func (p *limiterPool) limiterFor(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	vl, ok := p.limiters[key]
	if !ok {
		vl = &visitorLimiter{
			limiter:    rate.NewLimiter(rate.Limit(p.rps), p.burst),
			lastAccess: time.Now(),
		}
		p.limiters[key] = vl
	} else {
		vl.lastAccess = time.Now()
	}
	return vl.limiter
}

// RateLimitByIP applies per-IP rate limiting for unauthenticated endpoints
// (registration and token issuance). Uses chi's RealIP middleware value via
// r.RemoteAddr.
func RateLimitByIP(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	pool := newLimiterPool(ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !pool.limiterFor(r.RemoteAddr).Allow() {
				tooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit applies per-tenant rate limiting on authenticated routes.
func RateLimit(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	pool := newLimiterPool(ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID, ok := TenantIDFromContext(r.Context())
			if !ok {
				// No tenant in context; skip rate limiting.
				next.ServeHTTP(w, r)
				return
			}

			if !pool.limiterFor(tenantID.String()).Allow() {
				tooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func tooManyRequests(w http.ResponseWriter) {
	http.Error(w, `{"title":"Too Many Requests","status":429,"detail":"rate limit exceeded"}`, http.StatusTooManyRequests)
}
