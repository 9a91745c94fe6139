package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aptmap/backend/docs"
	"github.com/aptmap/backend/internal/config"
	"github.com/aptmap/backend/internal/metrics"
	"github.com/aptmap/backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	App        config.AppConfig
	Auth       *service.AuthService
	Apartments *service.ApartmentService
	Metrics    *metrics.Metrics
	Log        *slog.Logger
	// Ping backs /readyz.
	Ping func(ctx context.Context) error
}

func NewRouter(d RouterDeps) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}

	r := gin.New()
	r.Use(RequestID(), RequestLogger(d.Log, d.Metrics), exposeErrorDetail(d.App.IsDevelopment()), Recovery())

	if len(d.App.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.App.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", requestIDHeader},
			ExposeHeaders:    []string{requestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/ping", Ping)
	r.GET("/", Root)
	r.GET("/readyz", Ready(d.Ping))
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	r.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(docs.SwaggerInfo.ReadDoc()))
	})

	authHandler := NewAuthHandler(d.Auth)
	userHandler := NewUserHandler(d.Auth)
	apartmentHandler := NewApartmentHandler(d.Apartments)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/register", authHandler.Register)
		v1.POST("/login", authHandler.Login)
		v1.POST("/refresh", authHandler.Refresh)
		// 만료된 access 토큰으로도 로그아웃할 수 있어야 합니다.
		v1.POST("/logout", authHandler.Logout)
	}

	authed := v1.Group("", RequireAuth(d.Auth))
	{
		authed.GET("/user", userHandler.GetUser)
		authed.POST("/change-password", userHandler.ChangePassword)
		authed.POST("/update-info", userHandler.UpdateInfo)
	}

	public := v1.Group("", OptionalAuth(d.Auth))
	{
		public.GET("/apartments", apartmentHandler.ListApartments)
		public.GET("/apartments/clusters", apartmentHandler.ClusterApartments)
		public.GET("/price-history", apartmentHandler.PriceHistory)
	}

	return r, nil
}
