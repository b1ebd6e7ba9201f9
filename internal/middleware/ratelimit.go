package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"reportsvc/internal/httputil"

	"golang.org/x/time/rate"
)

// idle visitors are forgotten after this long
const visitorTTL = 10 * time.Minute

type limiterEntry struct {
	limiter *rate.Limiter
	last    time.Time
}

// clientLimiter keeps one token bucket per client address.
// Stale entries are swept during Allow, so no background goroutine is needed.
type clientLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*limiterEntry
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		visitors: make(map[string]*limiterEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (c *clientLimiter) allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) > visitorTTL {
		for k, v := range c.visitors {
			if now.Sub(v.last) > visitorTTL {
				delete(c.visitors, k)
			}
		}
		c.lastSweep = now
	}

	le, ok := c.visitors[key]
	if !ok {
		le = &limiterEntry{limiter: rate.NewLimiter(c.rps, c.burst)}
		c.visitors[key] = le
	}
	le.last = now
	return le.limiter.AllowN(now, 1)
}

// TrustedProxies lists the peers allowed to set X-Forwarded-For.
// Entries are single addresses or CIDR prefixes.
type TrustedProxies []netip.Prefix

// ParseTrustedProxies parses addresses and CIDR prefixes such as "10.0.0.1" or "10.0.0.0/8".
func ParseTrustedProxies(entries []string) (TrustedProxies, error) {
	var out TrustedProxies
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, err
			}
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(e)
		if err != nil {
			return nil, err
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

func (t TrustedProxies) contains(ip string) bool {
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range t {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// clientIP keys on the TCP peer. X-Forwarded-For is only read when the peer
// is a trusted proxy, and then the right-most hop that is not itself a
// trusted proxy wins.
func clientIP(r *http.Request, trusted TrustedProxies) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if len(trusted) == 0 || !trusted.contains(peer) {
		return peer
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		a, err := netip.ParseAddr(hop)
		if err != nil {
			return peer
		}
		if !trusted.contains(hop) {
			return a.Unmap().String()
		}
	}
	return peer
}

// RateLimit applies an IP-based token bucket limiter. rps <= 0 disables it.
// X-Forwarded-For is ignored unless the peer is one of trusted.
func RateLimit(rps float64, burst int, trusted TrustedProxies) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := newClientLimiter(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientIP(r, trusted)) {
				httputil.RespondError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
