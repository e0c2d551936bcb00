package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotboard/backend/config"
	"slotboard/backend/internal/api/handler"
	"slotboard/backend/internal/api/middleware"
	"slotboard/backend/pkg/jwt"
	"slotboard/backend/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1MB

// Setup builds the gin engine with all middleware and routes.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth endpoints open to anonymous callers, rate limited
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 20, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// everything else requires a valid access token
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.GET("/users/:id", h.User.Get)

			timetables := authorized.Group("/timetables")
			{
				timetables.POST("", h.Timetable.Create)
				timetables.GET("", h.Timetable.List)
				timetables.GET("/:id", h.Timetable.Get)
				timetables.PUT("/:id", h.Timetable.Update)
				timetables.DELETE("/:id", h.Timetable.Delete)
				timetables.GET("/:id/schedule", h.Timetable.GetSchedule)
				timetables.GET("/:id/schedule/day", h.Timetable.GetDaySchedule)
				timetables.GET("/:id/export/xlsx", h.Export.ExportXLSX)
				timetables.GET("/:id/export/ics", h.Export.ExportICS)
			}

			slots := authorized.Group("/slots")
			{
				slots.POST("", h.Slot.Create)
				slots.GET("/:id", h.Slot.Get)
				slots.PUT("/:id", h.Slot.Save)
				slots.DELETE("/:id", h.Slot.Delete)
				slots.GET("/:id/available-classes", h.Slot.AvailableClasses)
			}

			classes := authorized.Group("/classes")
			{
				classes.POST("", h.Class.Create)
				classes.GET("", h.Class.List)
				classes.GET("/:id", h.Class.Get)
				classes.PUT("/:id", h.Class.Update)
				classes.DELETE("/:id", h.Class.Delete)
			}

			slotClasses := authorized.Group("/slot-classes")
			{
				slotClasses.POST("", h.Assignment.Assign)
				slotClasses.PUT("/:id", h.Assignment.Update)
				slotClasses.DELETE("/:id", h.Assignment.Delete)
			}
		}
	}

	return r
}
