package middleware

import (
	"context"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// Limiter is the rate-limit decision the middleware depends on.
// *services.RateLimiter satisfies it.
type Limiter interface {
	Limit(ctx context.Context, action services.Action, key string) (services.Result, error)
}

// RateLimit gates a mutating route behind the per-(action, user) token
// bucket. Runs after AuthMiddleware; rejected calls get a 429 with the wait
// until one token is available.
func RateLimit(limiter Limiter, action services.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			utils.Unauthorized(c, "Missing user ID")
			c.Abort()
			return
		}

		result, err := limiter.Limit(c.Request.Context(), action, userID.(string))
		if err != nil {
			utils.InternalError(c, "Rate limit check failed")
			c.Abort()
			return
		}
		if !result.OK {
			utils.TrackRateLimitRejection(string(action))
			utils.TooManyRequests(c, "Rate limit exceeded", gin.H{
				"retry_after_ms": result.RetryAfter.Milliseconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
