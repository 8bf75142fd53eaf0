package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/transportly/transportly-backend/api/routes"
	"github.com/transportly/transportly-backend/internal/auth"
	"github.com/transportly/transportly-backend/internal/files"
	"github.com/transportly/transportly-backend/internal/rents"
	"github.com/transportly/transportly-backend/internal/transports"
	"github.com/transportly/transportly-backend/internal/users"
	"github.com/transportly/transportly-backend/pkg/auth/session"
	"github.com/transportly/transportly-backend/pkg/config"
	"github.com/transportly/transportly-backend/pkg/db"
	"github.com/transportly/transportly-backend/pkg/logger"
	"github.com/transportly/transportly-backend/pkg/metrics"
	"github.com/transportly/transportly-backend/pkg/migrate"
	"github.com/transportly/transportly-backend/pkg/redis"
	"github.com/transportly/transportly-backend/pkg/storage/gcs"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap blob storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing blob storage", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	fileRepo := files.NewRepository(dbClient.DB())
	transportRepo := transports.NewRepository(dbClient.DB())
	rentRepo := rents.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		MediaConfig:    cfg.Media,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	fileService, err := files.NewService(files.ServiceParams{
		Repo:   fileRepo,
		Store:  gcsClient,
		Media:  cfg.Media,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create file service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{
		Repo:           userRepo,
		FileRepo:       fileRepo,
		FileRemover:    fileService,
		PasswordConfig: cfg.Password,
		Media:          cfg.Media,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	transportService, err := transports.NewService(transports.ServiceParams{
		Repo:        transportRepo,
		FileRepo:    fileRepo,
		FileRemover: fileService,
		Media:       cfg.Media,
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create transport service", err)
		os.Exit(1)
	}

	rentService, err := rents.NewService(rents.ServiceParams{
		Repo:          rentRepo,
		TransportRepo: transportRepo,
		Media:         cfg.Media,
		Logger:        logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create rent service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:           cfg,
		Logger:           logg,
		Metrics:          httpMetrics,
		DBPinger:         dbClient,
		RedisClient:      redisClient,
		BlobStore:        gcsClient,
		SessionManager:   sessionManager,
		AuthService:      authService,
		UserService:      userService,
		FileService:      fileService,
		TransportService: transportService,
		RentService:      rentService,
		MetricsHandler:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server stopped")
	}
}
