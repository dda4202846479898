package middleware

import (
	"net/http"
	"sync"
	"time"
)

type window struct {
	count     int
	startedAt time.Time
}

// RateLimiter is a fixed-window per-IP limiter, used on the dictionary route
// where every miss costs a Gemini call.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	period  time.Duration
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
	}

	// Cleanup goroutine
	go func() {
		for {
			time.Sleep(period)
			rl.mu.Lock()
			for ip, w := range rl.clients {
				if time.Since(w.startedAt) > rl.period {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()

	return rl
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr

		rl.mu.Lock()
		win, exists := rl.clients[ip]
		if !exists || time.Since(win.startedAt) > rl.period {
			rl.clients[ip] = &window{count: 1, startedAt: time.Now()}
			rl.mu.Unlock()
			next.ServeHTTP(w, r)
			return
		}

		win.count++
		count := win.count
		rl.mu.Unlock()

		if count > rl.limit {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
