// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/novahub/pkg/configs"
	"github.com/yeisme/novahub/pkg/internal/auth"
	"github.com/yeisme/novahub/pkg/internal/handle"
	"github.com/yeisme/novahub/pkg/internal/router"
	"github.com/yeisme/novahub/pkg/internal/storage"
	"github.com/yeisme/novahub/pkg/log"
	"github.com/yeisme/novahub/pkg/metrics"
	"github.com/yeisme/novahub/pkg/middleware"
)

// App 组装 gin 引擎与进程级依赖.
type App struct {
	Engine *gin.Engine
	config *configs.AppConfig
}

// NewApp 初始化配置、日志、指标与存储，完成路由装配.
// 配置校验失败（缺会话密钥/托管凭证）直接退出.
func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()

	log.Init()

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	sessions, err := auth.NewSessionManager(auth.SessionManagerConfig{
		SigningSecret: []byte(config.Auth.SessionSecret),
		Issuer:        config.Auth.Issuer,
		TTL:           config.Auth.SessionTTL(),
	})
	if err != nil {
		fmt.Printf("Error initializing session manager: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.MaxMultipartMemory = config.Server.MaxUploadBytes()

	engine.Use(
		gin.Recovery(),
		middleware.CORSMiddleware(config.Server),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.GinLoggerMiddleware(),
		middleware.PrometheusMiddleware(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.StorageMiddleware(manager),
		middleware.SessionMiddleware(sessions, config.Auth.CookieName, config.Auth.EmailDomain),
	)

	router.Register(engine, handle.New(sessions, config.Auth))

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine: engine,
		config: config,
	}
}

// Run 启动 HTTP 服务.
func (a *App) Run() error {
	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}
