package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hit-timetable/config"
	"hit-timetable/internal/api/handler"
	"hit-timetable/internal/api/middleware"
	"hit-timetable/pkg/jwt"
)

// multipart 边界与表单字段的额外开销
const multipartOverhead = 64 << 10

// Setup 初始化并返回 Gin 路由引擎
// blacklist / limiter 为 nil 时对应功能降级放行
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	blacklist middleware.TokenChecker,
	limiter middleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		auth.Use(middleware.BodyLimit(1 << 20))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 课表模块
			timetables := authorized.Group("/timetables")
			{
				timetables.POST("/import",
					middleware.RateLimit(limiter, cfg.Import.RateLimit, cfg.Import.RateWindow),
					middleware.BodyLimit(cfg.Import.MaxFileSize+multipartOverhead),
					h.Timetable.Import,
				)
				timetables.GET("/me", h.Timetable.GetMyTimetable)
				timetables.DELETE("/me", h.Timetable.Clear)
				timetables.PUT("/first-week", h.Timetable.SetFirstWeek)
				timetables.GET("/week-info", h.Timetable.GetWeekInfo)
				timetables.GET("/courses", h.Timetable.GetCourses)
				timetables.GET("/today", h.Timetable.GetToday)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/excel", h.Export.ExportExcel)
				export.GET("/ics", h.Export.ExportICS)
			}
		}
	}

	return r
}
