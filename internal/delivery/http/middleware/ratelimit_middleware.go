package middleware

import (
	"net/http"
	"sync"
	"time"

	"trailhead/config"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// visitorIdleTTL bounds how long an idle client keeps its limiter before
// the cleanup loop drops it.
const visitorIdleTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a token-bucket limit per client IP. It
// shields the credential endpoints from brute force attempts; the limit
// is generous enough that normal clients never notice it.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	enabled  bool
}

// NewRateLimitMiddleware is the constructor for RateLimitMiddleware.
func NewRateLimitMiddleware(cfg *config.Config) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(cfg.RateLimit.RPS),
		burst:    cfg.RateLimit.Burst,
		enabled:  cfg.RateLimit.Enabled,
	}
	if m.enabled {
		go m.cleanupLoop()
	}

	return m
}

func (m *RateLimitMiddleware) limiterFor(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.visitors[ip] = v
	}
	v.lastSeen = time.Now()

	return v.limiter
}

func (m *RateLimitMiddleware) cleanupLoop() {
	for range time.Tick(time.Minute) {
		m.mu.Lock()
		for ip, v := range m.visitors {
			if time.Since(v.lastSeen) > visitorIdleTTL {
				delete(m.visitors, ip)
			}
		}
		m.mu.Unlock()
	}
}

// Handle rejects requests over the per-IP allowance with 429.
func (m *RateLimitMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.enabled {
			return next(c)
		}

		if !m.limiterFor(c.RealIP()).Allow() {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later")
		}

		return next(c)
	}
}
