// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/normalize"
	"github.com/redis/go-redis/v9"
)

// Counter counts hits per key within a fixed window.
type Counter interface {
	// Hit records one attempt and reports whether it is within the limit.
	Hit(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// Limiter is an in-process fixed-window counter. It is safe for
// concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
	now      func() time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates an in-memory limiter allowing limit hits per duration.
func New(limit int, duration time.Duration) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
	}
}

func (l *Limiter) Hit(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)
	w, ok := l.windows[key]
	if !ok {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true, nil
	}
	if w.count >= l.limit {
		return false, nil
	}
	w.count++
	return true, nil
}

func (l *Limiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
	return nil
}

// sweep drops expired windows. Caller holds mu.
func (l *Limiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if !now.Before(w.expiresAt) {
			delete(l.windows, k)
		}
	}
}

// RedisLimiter shares fixed-window counters across instances.
type RedisLimiter struct {
	rdb      redis.UniversalClient
	prefix   string
	limit    int64
	duration time.Duration
}

func NewRedis(rdb redis.UniversalClient, prefix string, limit int, duration time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, prefix: prefix, limit: int64(limit), duration: duration}
}

func (l *RedisLimiter) Hit(ctx context.Context, key string) (bool, error) {
	k := l.prefix + ":rl:" + key
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.duration)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= l.limit, nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, l.prefix+":rl:"+key).Err()
}

// ClientIP extracts the client IP from an HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// LoginLimiter throttles sign-in attempts per client IP and per email.
type LoginLimiter struct {
	ip    Counter
	email Counter
}

// NewLoginLimiter uses the given counters; see DefaultLogin for the usual
// in-memory limits.
func NewLoginLimiter(ip, email Counter) *LoginLimiter {
	return &LoginLimiter{ip: ip, email: email}
}

// DefaultLogin allows 10 attempts per IP per minute and 5 per email per
// 5 minutes.
func DefaultLogin() *LoginLimiter {
	return NewLoginLimiter(New(10, time.Minute), New(5, 5*time.Minute))
}

// Check returns a RATE_LIMITED error when the attempt is over either limit.
// Counter failures let the attempt through.
func (ll *LoginLimiter) Check(r *http.Request, email string) error {
	ctx := r.Context()
	if ok, err := ll.ip.Hit(ctx, "ip:"+ClientIP(r)); err == nil && !ok {
		return apperr.RateLimited("too many sign-in attempts, wait a minute and try again")
	}
	if email = normalize.Email(email); email != "" {
		if ok, err := ll.email.Hit(ctx, "email:"+email); err == nil && !ok {
			return apperr.RateLimited("too many sign-in attempts for this account, wait a few minutes")
		}
	}
	return nil
}

// ResetEmail clears the email counter after a successful sign-in.
func (ll *LoginLimiter) ResetEmail(ctx context.Context, email string) {
	if email = normalize.Email(email); email != "" {
		_ = ll.email.Reset(ctx, "email:"+email)
	}
}
