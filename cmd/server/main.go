package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"nfl-fantasy/backend/config"
	"nfl-fantasy/backend/internal/api/handler"
	"nfl-fantasy/backend/internal/api/router"
	"nfl-fantasy/backend/internal/repository"
	"nfl-fantasy/backend/internal/service"
	"nfl-fantasy/backend/pkg/database"
	"nfl-fantasy/backend/pkg/jwt"
	applogger "nfl-fantasy/backend/pkg/logger"
	"nfl-fantasy/backend/pkg/redis"
)

const (
	shutdownTimeout  = 10 * time.Second
	bootstrapTimeout = 30 * time.Second
)

func main() {
	// 配置文件路径可通过 NFL_CONFIG_FILE 指定，默认查找 ./config/config.yaml
	cfg, err := config.Load(os.Getenv("NFL_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("服务异常退出", zap.Error(err))
	}
	logger.Info("服务器已关闭")
}

// run 装配依赖并阻塞到收到退出信号
func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("应用启动中",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("timezone", cfg.Server.Timezone),
	)

	// ── 数据库与迁移 ──
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	defer closeDB(db, logger)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	// ── Redis（可选，失败时降级） ──
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单不可用，限流退回进程内", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// ── 依赖注入: Repository → Service → Handler ──
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(cfg, svc)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), bootstrapTimeout)
	created, err := svc.User.EnsureBootstrapAdmin(bootCtx, cfg.Auth.BootstrapAdmin)
	cancelBoot()
	if err != nil {
		return fmt.Errorf("初始化管理员失败: %w", err)
	}
	if created {
		logger.Info("初始管理员已就绪", zap.String("email", cfg.Auth.BootstrapAdmin.Email))
	}

	// ── HTTP 服务 ──
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router.Setup(cfg, h, jwtMgr, rdb, db, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second, // 导出文件可能较大
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP 服务器异常: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("收到关闭信号，开始优雅关闭")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}
	return nil
}

func closeDB(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}
}
