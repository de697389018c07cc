package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nfl-fantasy/backend/config"
	"nfl-fantasy/backend/internal/api/handler"
	"nfl-fantasy/backend/internal/api/middleware"
	"nfl-fantasy/backend/pkg/jwt"
	"nfl-fantasy/backend/pkg/metrics"
	"nfl-fantasy/backend/pkg/redis"
)

const (
	roleAdmin    = "admin"
	maxBodyBytes = 1 << 20
)

// Setup 初始化并返回 Gin 路由引擎
// db 仅用于健康检查，可为 nil
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders(strings.HasPrefix(cfg.Server.BaseURL, "https://")))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	authLimit := middleware.RateLimit(rdb, cfg.RateLimit.AuthPerMinute, time.Minute)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authLimit, h.Auth.Login)
			auth.POST("/register", authLimit, h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 赛季模块
			seasons := authorized.Group("/seasons")
			{
				seasons.GET("", h.Season.ListSeasons)
				seasons.GET("/current", h.Season.GetCurrentSeason)
				seasons.GET("/check-name/:name", h.Season.CheckName)
				seasons.POST("/check-conflicts", h.Season.CheckConflicts)
				seasons.GET("/:id", h.Season.GetSeason)
				seasons.GET("/:id/weeks/at", h.Season.GetWeekAt)
				seasons.POST("", middleware.RoleAuth(roleAdmin), h.Season.CreateSeason)
			}

			// 联赛模块
			leagues := authorized.Group("/leagues")
			{
				leagues.GET("", h.League.SearchLeagues)
				leagues.POST("", h.League.CreateLeague)
				leagues.POST("/join", h.League.JoinLeague)
				leagues.GET("/:id", h.League.GetLeague)
			}

			// NFL 球队模块
			nflTeams := authorized.Group("/nfl-teams")
			{
				nflTeams.GET("", h.NflTeam.ListNflTeams)
				nflTeams.GET("/:id", h.NflTeam.GetNflTeam)
				nflTeams.POST("", middleware.RoleAuth(roleAdmin), h.NflTeam.CreateNflTeam)
			}

			// 球员模块
			players := authorized.Group("/players")
			{
				players.GET("", h.Player.ListPlayers)
				players.GET("/:id", h.Player.GetPlayer)
				players.POST("", middleware.RoleAuth(roleAdmin), h.Player.CreatePlayer)
				players.PUT("/:id", middleware.RoleAuth(roleAdmin), h.Player.UpdatePlayer)
				players.DELETE("/:id", middleware.RoleAuth(roleAdmin), h.Player.DeletePlayer)
			}

			// 用户管理（仅管理员）
			users := authorized.Group("/users", middleware.RoleAuth(roleAdmin))
			{
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.POST("/:id/unlock", h.User.UnlockUser)
				users.PUT("/:id/role", h.User.AssignRole)
				users.POST("/:id/reset-password", h.User.ResetPassword)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/seasons/:id", h.Export.ExportSeason)
			}
		}
	}

	return r
}
