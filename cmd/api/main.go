package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/recruitment-portal/internal/api/http"
	"github.com/spec-kit/recruitment-portal/internal/api/http/handlers"
	"github.com/spec-kit/recruitment-portal/internal/config"
	"github.com/spec-kit/recruitment-portal/internal/events"
	"github.com/spec-kit/recruitment-portal/internal/guard"
	"github.com/spec-kit/recruitment-portal/internal/observability"
	"github.com/spec-kit/recruitment-portal/internal/persistence"
	"github.com/spec-kit/recruitment-portal/internal/session"
	"github.com/spec-kit/recruitment-portal/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	var store session.Store
	var redis *persistence.Redis
	switch cfg.Session.Backend {
	case "redis":
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		store = session.NewRedisStore(redis.Client, cfg.Session.TTL())
	default:
		memStore := session.NewMemoryStore(cfg.Session.TTL())
		defer memStore.Close()
		store = memStore
	}

	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditLog(dispatcher, logger)

	client, err := upstream.NewClient(cfg.Upstream, logger, metrics)
	if err != nil {
		logger.Fatal("failed to build upstream client", zap.Error(err))
	}

	sessionGuard := guard.New(store, dispatcher, logger, cfg.Session.CookieName)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Auth:      handlers.NewAuthHandler(client, store, dispatcher, cfg.Session.CookieName),
		Catalog:   handlers.NewCatalogHandler(client, store, dispatcher),
		Applicant: handlers.NewApplicantHandler(client, store, dispatcher),
		Recruiter: handlers.NewRecruiterHandler(client, store, dispatcher),
		Guard:     sessionGuard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
