package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/capitania/consimar/internal/config"
	"github.com/capitania/consimar/internal/domain"
	"github.com/capitania/consimar/internal/infra/database"
	"github.com/capitania/consimar/internal/infra/repository"
	"github.com/capitania/consimar/internal/present/rest"
	"github.com/capitania/consimar/internal/present/rest/middleware"
	"github.com/capitania/consimar/internal/service"
	"github.com/capitania/consimar/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if conf.Server.EnableTrace {
		shutdown, err := setupTracer(ctx, conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	vesselRepo := repository.NewVesselRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	signalService := service.NewSignalService(rdb)
	authService := service.NewAuthService(
		userRepo,
		mc,
		[]byte(conf.Auth.JwtSecret),
		time.Duration(conf.Auth.TokenTTLMinutes)*time.Minute,
	)

	tracker := usecase.NewCountdownTracker()
	checker := usecase.NewProhibitionChecker(watchlistRepo)

	dispatchUsecase := usecase.NewDispatchUsecase(vesselRepo, checker, tracker, signalService)
	watchlistUsecase := usecase.NewWatchlistUsecase(watchlistRepo, watchlistRepo, watchlistRepo, signalService)
	userUsecase := usecase.NewUserUsecase(userRepo, signalService)
	messageUsecase := usecase.NewMessageUsecase(messageRepo, vesselRepo, signalService)

	// Seed the countdown board from stored records before serving.
	if err := dispatchUsecase.Invalidate(ctx); err != nil {
		slog.Error("failed to load despatched vessels", slog.String("error", err.Error()))
		os.Exit(1)
	}

	go tracker.Run(ctx)
	go watchVesselChanges(ctx, signalService, dispatchUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("consimar"))
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)
	handler := rest.NewHandler(
		dispatchUsecase,
		watchlistUsecase,
		userUsecase,
		messageUsecase,
		authService,
		signalService,
	)
	handler.RegisterRoutes(e, authMiddleware)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", slog.String("error", err.Error()))
		}
	}()

	if err := e.Start(conf.Server.ListenAddr); err != nil {
		slog.Info("server stopped", slog.String("reason", err.Error()))
	}
}

// watchVesselChanges recomputes the countdown board whenever another
// instance commits a change to the embarcaciones table.
func watchVesselChanges(ctx context.Context, signal *service.SignalService, dispatch *usecase.DispatchUsecase) {
	signal.Watch(ctx, domain.TableEmbarcaciones, func(ev domain.Event) {
		if err := dispatch.Invalidate(ctx); err != nil {
			slog.Error("countdown refresh failed",
				slog.String("key", ev.Key),
				slog.String("error", err.Error()),
			)
		}
	})
}

func setupTracer(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}
