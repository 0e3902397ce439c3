package routes

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "atelier_lag/docs" // This will be auto-generated
	"atelier_lag/internal/adapter/http/handlers"
	"atelier_lag/internal/adapter/lock"
	"atelier_lag/internal/adapter/messaging"
	"atelier_lag/internal/adapter/persistence/repository"
	"atelier_lag/internal/infrastructure/cache"
	"atelier_lag/internal/infrastructure/config"
	"atelier_lag/internal/infrastructure/database"
	"atelier_lag/internal/infrastructure/logger"
	"atelier_lag/internal/infrastructure/metrics"
	infraMessaging "atelier_lag/internal/infrastructure/messaging"
	"atelier_lag/internal/infrastructure/tracing"
	"atelier_lag/internal/usecase"
	"atelier_lag/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	zlog "github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.New()

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.InitTracerProvider(cfg.ServiceName, cfg.JaegerEndpoint)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	setMiddlewares(cfg)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	addMetricsRoute(router)

	closeDeps := getRoutes(ctx, cfg)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		zlog.Info().Str("port", cfg.Port).Msg("[http] listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("Failed to startup the application")
		}
	}()

	<-ctx.Done()
	zlog.Info().Msg("[http] shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		zlog.Error().Err(err).Msg("[http] shutdown")
	}
	closeDeps()
	if err := shutdownTracing(sctx); err != nil {
		zlog.Error().Err(err).Msg("[tracing] shutdown")
	}
}

// getRoutes wires the order stack and returns a func closing the external
// clients it opened.
func getRoutes(ctx context.Context, cfg config.Config) func() {
	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to dynamodb")
	}
	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.OrdersTable)

	var closers []func() error

	var locker interfaces.IOrderLocker
	redisClient, err := cache.ConnectRedis(ctx, cfg)
	switch {
	case err != nil:
		zlog.Fatal().Err(err).Msg("failed to connect to redis")
	case redisClient == nil:
		zlog.Warn().Msg("REDIS_ADDR not set; using in-process order lock (single instance only)")
		locker = lock.NewLocalOrderLock(cfg.OrderLockTTL)
	default:
		locker = lock.NewRedisOrderLock(redisClient, cfg.OrderLockTTL)
		closers = append(closers, redisClient.Close)
	}

	var publisher interfaces.IStatusEventPublisher = messaging.NoopStatusPublisher{}
	if w := infraMessaging.NewStatusWriter(cfg); w != nil {
		publisher = messaging.NewKafkaStatusPublisher(w)
		closers = append(closers, w.Close)
	} else {
		zlog.Warn().Msg("KAFKA_BROKERS not set; status events are not published")
	}

	workflowMetrics := metrics.NewWorkflowMetrics(prometheus.DefaultRegisterer)

	orderUseCase := usecase.NewOrderUseCase(orderRepo, locker, publisher, workflowMetrics)
	orderHandler := handlers.NewOrderHandler(orderUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addOrderRoutes(v1, orderHandler)

	return func() {
		for _, c := range closers {
			if err := c(); err != nil {
				zlog.Error().Err(err).Msg("closing dependency")
			}
		}
	}
}

func setMiddlewares(cfg config.Config) {
	router.Use(tracing.Middleware(cfg.ServiceName))
	router.Use(logger.RequestLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		zlog.Ctx(c.Request.Context()).Error().Interface("panic", recovered).Msg("Recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
