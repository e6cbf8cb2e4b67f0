package rest

import (
	"context"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/port"
)

const maxTrackedClients = 10000

// RateLimiter ограничивает частоту запросов для каждого клиента по IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		if len(rl.limiters) >= maxTrackedClients {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

type peerAddrKeyType struct{}

var peerAddrKey = peerAddrKeyType{}

// PeerAddr сохраняет в контексте адрес соединения, пока его не заменил
// middleware.RealIP значением из X-Forwarded-For или X-Real-IP.
func PeerAddr(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), peerAddrKey, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientKey — хост соединения. Заголовки клиента на ключ не влияют.
func clientKey(r *http.Request) string {
	addr, ok := r.Context().Value(peerAddrKey).(string)
	if !ok {
		addr = r.RemoteAddr
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// Handler возвращает 429, когда клиент превысил лимит.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		if !rl.getLimiter(key).Allow() {
			contextkeys.LoggerFromContext(r.Context()).Warn("Rate limit exceeded", port.Fields{"client": key})
			w.Header().Set("Retry-After", "1")
			WriteJSONError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
