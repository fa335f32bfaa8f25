package ratelimit

import (
	"os"
	"strconv"
	"time"

	"codeberg.org/docchat/server/internal/logger"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// query calls fan out into provider requests, so the limit sits well below
// anything the embedding provider would throttle
const defaultPerMinute = 30

// Middleware returns a per-client-IP rate limit for provider-backed routes
func Middleware() gin.HandlerFunc {
	perMinute := int64(defaultPerMinute)

	if raw := os.Getenv("QUERY_RATE_LIMIT"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			logger.Warn("invalid QUERY_RATE_LIMIT, using default",
				"value", raw,
				"default", defaultPerMinute,
			)
		} else {
			perMinute = parsed
		}
	}

	rate := limiter.Rate{
		Period: time.Minute,
		Limit:  perMinute,
	}

	return mgin.NewMiddleware(limiter.New(memorystore.NewStore(), rate))
}
