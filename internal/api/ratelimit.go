package api

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	userIDMetadataKey = "x-user-id"
	anonymousUser     = "anonymous"
)

// RateLimiter keeps one token bucket per user.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows rps requests per second per user with the given burst.
// A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// Allow reports whether user may make another request now.
func (r *RateLimiter) Allow(user string) bool {
	r.mu.Lock()
	limiter, ok := r.limiters[user]
	if !ok {
		limiter = rate.NewLimiter(r.limit, r.burst)
		r.limiters[user] = limiter
	}
	r.mu.Unlock()
	return limiter.Allow()
}

// UnaryServerInterceptor rejects calls over the caller's budget with
// ResourceExhausted. Callers are identified by x-user-id metadata.
func (r *RateLimiter) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		user := UserFromContext(ctx)
		if !r.Allow(user) {
			return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded for user %s", user)
		}
		return handler(ctx, req)
	}
}

// UserFromContext returns the x-user-id metadata value, or "anonymous".
func UserFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return anonymousUser
	}
	if values := md.Get(userIDMetadataKey); len(values) > 0 && values[0] != "" {
		return values[0]
	}
	return anonymousUser
}
