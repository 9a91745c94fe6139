package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/aptmap/backend/internal/model"
	"github.com/gin-gonic/gin"
)

// 헬스체크 엔드포인트
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

// 루트 엔드포인트
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Status:  "ok",
		Message: "Apartment map API server is running",
	})
}

// Ready reports 503 until the database answers a ping.
func Ready(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if ping == nil || ping(ctx) != nil {
			c.JSON(http.StatusServiceUnavailable, model.ReadyResponse{Status: "unavailable"})
			return
		}
		c.JSON(http.StatusOK, model.ReadyResponse{Status: "ready"})
	}
}
