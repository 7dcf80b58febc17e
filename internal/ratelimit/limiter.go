// Package ratelimit throttles login and registration attempts per client IP
// and per submitted identifier.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Config struct {
	// Sustained attempts per minute and burst, per client IP.
	IPPerMinute int
	IPBurst     int

	// Sustained attempts per minute and burst, per identifier.
	IdentifierPerMinute int
	IdentifierBurst     int

	// Buckets unused for this long are dropped.
	IdleTTL time.Duration

	// Clock for testing (nil uses real time)
	Clock Clock
}

func DefaultConfig() *Config {
	return &Config{
		IPPerMinute:         20,
		IPBurst:             10,
		IdentifierPerMinute: 5,
		IdentifierBurst:     5,
		IdleTTL:             15 * time.Minute,
	}
}

type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

type bucket struct {
	limiter *rate.Limiter
	lastAt  time.Time
}

// Limiter keeps one token bucket per hashed IP and per hashed identifier.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.Mutex
	byIP   map[string]*bucket
	byID   map[string]*bucket

	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        cfg,
		clock:         clock,
		byIP:          make(map[string]*bucket),
		byID:          make(map[string]*bucket),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// Allow consumes one attempt for ip and identifier. A blank identifier is
// only checked against the IP bucket. A denied attempt consumes nothing.
func (l *Limiter) Allow(identifier, ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	ipBucket := l.bucketFor(l.byIP, l.hashKey("ip:", ip), l.config.IPPerMinute, l.config.IPBurst, now)
	var idBucket *bucket
	if id := normalizeIdentifier(identifier); id != "" {
		idBucket = l.bucketFor(l.byID, l.hashKey("id:", id), l.config.IdentifierPerMinute, l.config.IdentifierBurst, now)
	}

	ipRes := ipBucket.limiter.ReserveN(now, 1)
	if delay := ipRes.DelayFrom(now); delay > 0 {
		ipRes.CancelAt(now)
		return LimitResult{RetryAfter: delay, Reason: "ip_limit"}
	}
	if idBucket != nil {
		idRes := idBucket.limiter.ReserveN(now, 1)
		if delay := idRes.DelayFrom(now); delay > 0 {
			idRes.CancelAt(now)
			ipRes.CancelAt(now)
			return LimitResult{RetryAfter: delay, Reason: "identifier_limit"}
		}
	}
	return LimitResult{Allowed: true}
}

// Reset forgets the identifier's bucket, typically after a successful login.
func (l *Limiter) Reset(identifier string) {
	key := l.hashKey("id:", normalizeIdentifier(identifier))
	l.mu.Lock()
	delete(l.byID, key)
	l.mu.Unlock()
}

func (l *Limiter) bucketFor(buckets map[string]*bucket, key string, perMinute, burst int, now time.Time) *bucket {
	b := buckets[key]
	if b == nil {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(max(perMinute, 1))), max(burst, 1))}
		buckets[key] = b
	}
	b.lastAt = now
	return b
}

func (l *Limiter) hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(value))
	return prefix + hex.EncodeToString(hash[:8])
}

// normalizeIdentifier lowercases the identifier to prevent case-based bypass.
func normalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, buckets := range []map[string]*bucket{l.byIP, l.byID} {
		for k, b := range buckets {
			if now.Sub(b.lastAt) > l.config.IdleTTL {
				delete(buckets, k)
			}
		}
	}
}

// GetClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost public IP from X-Forwarded-For.
// When trustProxy is false, ignores X-Forwarded-For entirely.
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				ip := strings.TrimSpace(parts[i])
				if ip != "" && !isPrivateIP(ip) {
					return ip
				}
			}
			return strings.TrimSpace(parts[len(parts)-1])
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
			return r.RemoteAddr
		}
		if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
			candidate := r.RemoteAddr[:idx]
			if net.ParseIP(candidate) != nil {
				return candidate
			}
		}
		return r.RemoteAddr
	}
	return ip
}

var privateNetworks []*net.IPNet

func init() {
	for _, cidr := range []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
		"fe80::/10",
	} {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("invalid private CIDR: " + cidr)
		}
		privateNetworks = append(privateNetworks, network)
	}
}

func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}
	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// SanitizeIdentifier masks a username or e-mail for logging.
func SanitizeIdentifier(identifier string) string {
	identifier = normalizeIdentifier(identifier)
	if at := strings.Index(identifier, "@"); at >= 0 {
		if at > 2 {
			return identifier[:2] + "***" + identifier[at:]
		}
		return "***" + identifier[at:]
	}
	if len(identifier) > 2 {
		return identifier[:2] + "***"
	}
	return "***"
}

func LogRateLimitExceeded(action, identifier, ip, reason string) {
	log.Warn().
		Str("event", "rate_limit_exceeded").
		Str("action", action).
		Str("identifier", SanitizeIdentifier(identifier)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Login rate limit exceeded")
}
