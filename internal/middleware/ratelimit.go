package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RemoteIP is the host part of the connection's RemoteAddr.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ClientIP picks the address used to key failed logins. Proxy headers are
// honoured only when trustProxy is set; otherwise any client could rotate
// them.
func ClientIP(trustProxy bool) func(*http.Request) string {
	if trustProxy {
		return RealIP
	}
	return RemoteIP
}

// RealIP extracts the client's address, preferring CF-Connecting-IP, then
// the first hop of X-Forwarded-For, and falling back to RemoteAddr. The
// headers are client-controlled unless a proxy rewrites them.
func RealIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	return RemoteIP(r)
}

type failures struct {
	count   int
	resetAt time.Time
}

// FailureLimiter counts failed attempts per key in a fixed window. A key
// that reaches the limit stays blocked until its window ends.
type FailureLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*failures
	now     func() time.Time
}

func NewFailureLimiter(limit int, window time.Duration) *FailureLimiter {
	return &FailureLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*failures),
		now:     time.Now,
	}
}

// Blocked reports whether key has used up its attempts.
func (l *FailureLimiter) Blocked(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return false
	}
	if l.now().After(e.resetAt) {
		delete(l.entries, key)
		return false
	}
	return e.count >= l.limit
}

// Fail records a failed attempt for key.
func (l *FailureLimiter) Fail(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		l.entries[key] = &failures{count: 1, resetAt: now.Add(l.window)}
		l.sweep(now)
		return
	}
	e.count++
}

// Reset forgets key, e.g. after a successful attempt.
func (l *FailureLimiter) Reset(key string) {
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
}

// sweep drops expired entries. Caller holds mu.
func (l *FailureLimiter) sweep(now time.Time) {
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}
