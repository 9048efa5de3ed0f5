// Package app 提供应用程序的初始化和组装：配置、日志、追踪、监控、存储、
// 调度任务与 HTTP 引擎.
package app

import (
	contextPkg "context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/modelvault/modelvault/pkg/api"
	"github.com/modelvault/modelvault/pkg/configs"
	"github.com/modelvault/modelvault/pkg/internal/jobs"
	"github.com/modelvault/modelvault/pkg/internal/storage"
	"github.com/modelvault/modelvault/pkg/log"
	"github.com/modelvault/modelvault/pkg/metrics"
	"github.com/modelvault/modelvault/pkg/middleware"
	"github.com/modelvault/modelvault/pkg/queue"
	"github.com/modelvault/modelvault/pkg/scheduler"
	"github.com/modelvault/modelvault/pkg/tracing"
)

type App struct {
	Engine    *gin.Engine
	config    *configs.AppConfig
	manager   *storage.Manager
	scheduler *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()
	engine := gin.New()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	// 初始化追踪
	config := configs.GetConfig()
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

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

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.StorageMiddleware(manager),
	)

	// 定时任务：孤儿巡检
	sched := startScheduler(engine, manager)

	// 本地后端直接由服务进程交付活动区文件，查看器拿解析结果即可加载
	if configs.StorageBackend(config.Storage.Backend) == configs.StorageBackendLocal {
		engine.Static(config.Storage.ServePathPrefix, config.Storage.ActiveDir)
	}

	api.RegisterGroup(engine)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	if config.Events.Enabled && config.Events.LogConsumer {
		startEventLogger(ctx, manager)
	}

	return &App{
		Engine:    engine,
		config:    config,
		manager:   manager,
		scheduler: sched,
	}
}

// Run 启动 HTTP 服务并阻塞直至收到退出信号，退出时依次停掉调度器与存储资源.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(contextPkg.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Logger().Info().Str("addr", srv.Addr).Msg("http server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := contextPkg.WithTimeout(contextPkg.Background(), a.config.Server.GetTimeoutDuration())
		defer cancel()

		if a.scheduler != nil {
			_ = a.scheduler.Shutdown()
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		_ = tracing.ShutdownTracer(shutdownCtx)

		return a.manager.Close()
	})

	return g.Wait()
}

func startScheduler(engine *gin.Engine, manager *storage.Manager) *scheduler.Scheduler {
	sched, err := scheduler.NewScheduler()
	if err != nil {
		log.Logger().Error().Err(err).Msg("scheduler init failed, cron jobs disabled")

		return nil
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		log.Logger().Error().Err(err).Msg("register cron jobs failed")

		return nil
	}

	sched.Start()
	engine.Use(middleware.SchedulerMiddleware(sched))

	return sched
}

// startEventLogger 订阅全部领域主题并把事件落到结构化日志，作为轻量审计流.
func startEventLogger(ctx contextPkg.Context, manager *storage.Manager) {
	mq := manager.GetMQClient()
	if mq == nil {
		return
	}

	for _, topic := range queue.AllTopics {
		ch, err := mq.Subscribe(ctx, topic)
		if err != nil {
			log.Logger().Warn().Err(err).Str("topic", topic).Msg("event logger subscribe failed")
			continue
		}

		go func(topic string, ch <-chan *message.Message) {
			for msg := range ch {
				log.Logger().Info().
					Str("topic", topic).
					Str("message_id", msg.UUID).
					RawJSON("event", msg.Payload).
					Msg("event")
				msg.Ack()
			}
		}(topic, ch)
	}
}
