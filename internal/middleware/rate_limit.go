package middleware

import (
	"time"

	"github.com/deppfellow/boxgen/internal/errs"
	"github.com/deppfellow/boxgen/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles requests per client IP using Echo's
// in-memory limiter store (golang.org/x/time/rate buckets).
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// UnlimitedPaths are route paths the limiter never rejects.
var UnlimitedPaths = map[string]bool{
	"/health": true,
}

// Limit returns the limiter middleware, or a pass-through when
// server.rate_limit is 0. Requests to UnlimitedPaths neither consume nor
// need a token.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	perSecond := r.server.Config.Server.RateLimit
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return UnlimitedPaths[c.Path()]
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			r.server.Logger.Warn().
				Str("request_id", GetRequestID(c)).
				Str("identifier", identifier).
				Str("path", c.Path()).
				Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError("Rate limit exceeded", "1s")
		},
	})
}

// RecordRateLimitHit records a New Relic custom event for a rejected request.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	r.server.LoggerService.RecordEvent("RateLimitHit", map[string]interface{}{
		"endpoint": endpoint,
	})
}
