package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-registry-api/config"
	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/application/services"
	domain "user-registry-api/internal/domain/user"
	memuser "user-registry-api/internal/infrastructure/db/memory/user"
	"user-registry-api/internal/infrastructure/db/postgres"
	pguser "user-registry-api/internal/infrastructure/db/postgres/user"
	"user-registry-api/internal/infrastructure/hasher"
	"user-registry-api/internal/infrastructure/metrics"
	"user-registry-api/internal/infrastructure/mq"
	"user-registry-api/internal/infrastructure/tracing"
	"user-registry-api/internal/interface/api/rest"
	"user-registry-api/internal/interface/api/rest/middleware"
	"user-registry-api/pkg/rmqconsumer"
)

type App struct {
	logger        *zap.Logger
	cfg           config.Config
	db            *pgxpool.Pool
	httpSrv       *http.Server
	router        *gin.Engine
	mCounter      *prometheus.CounterVec
	tracer        trace.TracerProvider
	traceShutdown tracing.ShutdownFunc
	events        ports.EventEmitter
	// nil unless RABBITMQ_ENABLED
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// config
	envErr := godotenv.Load(".env")
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// logger
	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	if envErr != nil {
		logger.Warn("no .env file loaded, using process environment", zap.Error(envErr))
	}

	// metrics
	mCounter := metrics.NewCounter(prometheus.DefaultRegisterer)

	// tracing
	tp, traceShutdown, err := tracing.New(ctx, logger, cfg.App.Name, cfg.App.Env, cfg.OTEL)
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.App.Name, otelgin.WithTracerProvider(tp)))
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	app := &App{
		logger:        logger,
		cfg:           cfg,
		httpSrv:       httpSrv,
		router:        r,
		mCounter:      mCounter,
		tracer:        tp,
		traceShutdown: traceShutdown,
		events:        mq.Discard{},
	}

	// db
	if cfg.App.Storage == config.StoragePostgres {
		dbDsn, err := cfg.DBDSN()
		if err != nil {
			logger.Fatal("DB config error", zap.Error(err))
		}
		app.db, err = postgres.New(ctx, logger, dbDsn)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
	}

	// rabbitMQ
	if cfg.MQ.Enabled {
		rabbitDsn, err := cfg.AMQPDSN()
		if err != nil {
			logger.Fatal("RabbitMQ config error", zap.Error(err))
		}
		rbMQ := mq.New(cfg.MQ, logger)
		if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
			logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
		}
		if err = rbMQ.Init(); err != nil {
			logger.Fatal("failed init rabbitMQ", zap.Error(err))
		}
		//rmqConsumer
		rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
		if err = rmqConsumer.Connect(rabbitDsn); err != nil {
			logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
		}
		if err = rmqConsumer.Init(); err != nil {
			logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
		}
		app.mq, app.mqConsumer, app.events = rbMQ, rmqConsumer, rbMQ
	}

	return app, nil
}

func newLogger(env string) (*zap.Logger, error) {
	switch env {
	case "dev", gin.DebugMode:
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.traceShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.traceShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name,
			zap.String("addr", a.httpSrv.Addr),
			zap.String("storage", a.cfg.App.Storage),
		)
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})

		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	timeout := time.Duration(a.cfg.App.ShutdownTimeoutSec) * time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	var userRepo domain.Repository
	if a.db != nil {
		userRepo = pguser.NewRepository(a.db)
	} else {
		userRepo = memuser.NewRepository()
	}

	// services
	userService := services.NewTracedUserService(
		services.NewUserService(userRepo, hasher.NewBcrypt(a.cfg.App.PasswordHashCost), a.events, a.mCounter),
		a.tracer.Tracer(services.TracerName),
	)

	// controllers
	rest.NewUserController(a.router, userService, a.logger)

	// ops
	a.router.GET(rest.RouteHealth, a.healthHandler)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) healthHandler(c *gin.Context) {
	if a.db != nil {
		if err := a.db.Ping(c.Request.Context()); err != nil {
			a.logger.Error("health: db ping failed", zap.Error(err))
			c.Status(http.StatusServiceUnavailable)
			return
		}
	}
	c.Status(http.StatusOK)
}

func (a *App) Logger() *zap.Logger { return a.logger }
