package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"rivalioo/internal/infrastructure/ratelimit"
	"rivalioo/pkg/errors"
	"rivalioo/pkg/logger"
	"rivalioo/pkg/response"
)

// CartSessionHeader keys anonymous carts.
const CartSessionHeader = "X-Cart-Session"

// RateLimit throttles action per caller: the signed-in user, else the cart
// session, else the client IP.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := callerKey(c)

			allowed, wait := limiter.Allow(key, action)
			if !allowed {
				logger.Warn("Rate limit hit for %s on %s, retry in %s", key, action, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded", wait))
			}

			return next(c)
		}
	}
}

func callerKey(c echo.Context) string {
	if uid, ok := c.Get("uid").(string); ok && uid != "" {
		return "user:" + uid
	}
	if session := c.Request().Header.Get(CartSessionHeader); session != "" {
		return "session:" + session
	}
	return "ip:" + c.RealIP()
}
