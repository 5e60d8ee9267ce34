package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Dosada05/playground-standings/metrics"
	"golang.org/x/time/rate"
)

// limiterIdleTTL - через сколько простоя лимитер клиента забывается.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter - token bucket на каждый IP.
type ipLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ipLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (l *ipLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}
	if v, exists := l.visitors[ip]; exists {
		v.lastSeen = now
		return v.limiter
	}
	limiter := rate.NewLimiter(l.rate, l.burst)
	l.visitors[ip] = &visitor{limiter: limiter, lastSeen: now}
	return limiter
}

// RateLimit ограничивает запросы по IP клиента. Адрес берётся из RemoteAddr,
// поэтому chi RealIP должен стоять раньше.
func RateLimit(rps float64, burst int, recorder *metrics.Recorder) func(http.Handler) http.Handler {
	limiter := newIPLimiter(rps, burst)
	retryAfter := "1"
	if rps > 0 && rps < 1 {
		retryAfter = strconv.Itoa(int(1/rps + 0.5))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil || ip == "" {
				ip = r.RemoteAddr
			}

			if !limiter.getLimiter(ip).Allow() {
				recorder.RateLimited()
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
