package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/starkproducts/platform/pkg/auth"
	"github.com/starkproducts/platform/pkg/models"
)

type contextKey string

const claimsKey contextKey = "claims"

// claimsFrom extracts the verified JWT claims injected by requireAuth.
func claimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// corsMiddleware allows the configured origins and answers preflights.
func (s *APIServer) corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(s.corsOrigins))
	allowAll := false

	for _, origin := range s.corsOrigins {
		if origin == "*" {
			allowAll = true
		}

		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware sets the standard hardening headers on every
// response.
func (s *APIServer) securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if s.hsts {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimiter tracks one token bucket per client key.
type rateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientBucket
	limit    rate.Limit
	burst    int
	lifetime time.Duration
	disabled bool
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newRateLimiter allows perMinute requests per client.
func newRateLimiter(perMinute int) *rateLimiter {
	// A non-positive budget disables limiting, used in development.
	if perMinute <= 0 {
		return &rateLimiter{disabled: true}
	}

	return &rateLimiter{
		clients:  make(map[string]*clientBucket),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		lifetime: 10 * time.Minute,
	}
}

// allow reserves one request for the client, evicting stale buckets as a
// side effect.
func (rl *rateLimiter) allow(key string) bool {
	if rl.disabled {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	for k, b := range rl.clients {
		if now.Sub(b.lastSeen) > rl.lifetime {
			delete(rl.clients, k)
		}
	}

	b, ok := rl.clients[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = b
	}

	b.lastSeen = now

	return b.limiter.Allow()
}

// clientKey derives a stable, non-reversible identifier for the caller.
// The first X-Forwarded-For hop wins when present.
func clientKey(r *http.Request) string {
	addr := r.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		addr = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}

	sum := sha256.Sum256([]byte(addr))

	return hex.EncodeToString(sum[:8])
}

// rateLimitMiddleware applies the global per-client request budget.
func (s *APIServer) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientKey(r)) {
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "Rate limit exceeded")

			return
		}

		next.ServeHTTP(w, r)
	})
}

// limitEndpoint applies a tighter per-client budget to a single handler,
// used on credential endpoints.
func limitEndpoint(perMinute int, next http.HandlerFunc) http.HandlerFunc {
	rl := newRateLimiter(perMinute)

	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientKey(r)) {
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "Too many attempts, try again later")

			return
		}

		next(w, r)
	}
}

// requireAuth verifies the bearer token and injects its claims into the
// request context.
func (s *APIServer) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		claims, err := s.auth.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// requirePermission gates a handler on the caller's role capability.
func (s *APIServer) requirePermission(perm auth.Permission, next http.HandlerFunc) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r.Context())
		if !ok || !auth.HasPermission(claims.Role, perm) {
			respondError(w, http.StatusForbidden, "Insufficient permissions")
			return
		}

		next(w, r)
	})
}

// requireStaff gates a handler on internal staff roles.
func (s *APIServer) requireStaff(next http.HandlerFunc) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r.Context())
		if !ok || !claims.Role.IsStaff() {
			respondError(w, http.StatusForbidden, "Staff access required")
			return
		}

		next(w, r)
	})
}

// requireRole gates a handler on a set of exact roles.
func (s *APIServer) requireRole(next http.HandlerFunc, roles ...models.UserRole) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r.Context())
		if !ok {
			respondError(w, http.StatusForbidden, "Insufficient permissions")
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				next(w, r)
				return
			}
		}

		respondError(w, http.StatusForbidden, "Insufficient permissions")
	})
}
