package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health is the process-wide liveness probe. It checks DB and Redis
// connectivity and never exposes credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		ok := "OK"
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
			ok = "DEGRADED"
		}

		c.JSON(status, gin.H{
			"status":    ok,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"db":        dbStatus,
			"redis":     redisStatus,
		})
	}
}
