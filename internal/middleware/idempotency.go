package middleware

import (
	"net/http"
	"time"

	"github.com/psyoonchild719/online-library-dashboard/internal/shared/apperror"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/contextutil"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyHeader = "Idempotency-Key"

// Idempotency rejects a repeated mutation carrying the same Idempotency-Key
// within ttl. The key is scoped per member so independent clients cannot
// collide. Requests without the header pass through untouched.
func Idempotency(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(idempotencyHeader)
		if key == "" || rdb == nil {
			c.Next()
			return
		}

		memberID := contextutil.GetMemberID(c.Request.Context())
		redisKey := "idempotency:" + memberID + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key

		ok, err := rdb.SetNX(c.Request.Context(), redisKey, "1", ttl).Result()
		if err != nil {
			// Redis being down must not block writes.
			c.Next()
			return
		}
		if !ok {
			response.Error(c, http.StatusConflict, apperror.CodeConflict, "Duplicate request", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
