package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"carve/pkg/logger"
)

// ClientRateLimiter enforces a fixed-window request limit per client
// address. Availability searches fan out to the upstream provider, so an
// unthrottled client translates directly into upstream load.
type ClientRateLimiter struct {
	mu       sync.Mutex
	counts   map[string]*windowCount
	limit    int
	window   time.Duration
	log      *logger.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

type windowCount struct {
	count       int
	windowStart time.Time
}

func NewClientRateLimiter(limit int, window time.Duration, log *logger.Logger) *ClientRateLimiter {
	rl := &ClientRateLimiter{
		counts: make(map[string]*windowCount),
		limit:  limit,
		window: window,
		log:    log,
		stopCh: make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

func (rl *ClientRateLimiter) Allow(clientKey string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	wc, exists := rl.counts[clientKey]
	if !exists || now.Sub(wc.windowStart) >= rl.window {
		rl.counts[clientKey] = &windowCount{count: 1, windowStart: now}
		return true
	}

	if wc.count >= rl.limit {
		return false
	}

	wc.count++
	return true
}

func (rl *ClientRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, wc := range rl.counts {
				if now.Sub(wc.windowStart) >= rl.window {
					delete(rl.counts, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *ClientRateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCh)
	})
}

func ClientRateLimit(rl *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := clientAddress(r)

			if !rl.Allow(clientKey) {
				rl.log.Warn("Rate limit exceeded",
					"client", clientKey,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
