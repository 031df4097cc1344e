package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hangarapp/hangar-booking/internal/api/handlers"
)

const msgRateLimited = "muitas requisições, tente novamente em instantes"

const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit throttles requests per client IP using a token bucket. Used on
// the public micro-site routes; staff routes sit behind the gateway and are
// not throttled here.
func RateLimit(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	var (
		mu      sync.Mutex
		clients = make(map[string]*limiterEntry)
	)

	// Drop limiters for clients that went quiet so the map stays bounded.
	go func() {
		for range time.Tick(limiterIdleTTL) {
			mu.Lock()
			for ip, entry := range clients {
				if time.Since(entry.lastSeen) > limiterIdleTTL {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			mu.Lock()
			entry, ok := clients[ip]
			if !ok {
				entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
				clients[ip] = entry
			}
			entry.lastSeen = time.Now()
			allowed := entry.limiter.Allow()
			mu.Unlock()

			if !allowed {
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers X-Forwarded-For since the service runs behind a gateway.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
