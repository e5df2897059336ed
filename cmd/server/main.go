package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-storefront/internal/apiclient"
	"github.com/iliyamo/cinema-storefront/internal/config"
	"github.com/iliyamo/cinema-storefront/internal/database"
	"github.com/iliyamo/cinema-storefront/internal/handler"
	"github.com/iliyamo/cinema-storefront/internal/logger"
	"github.com/iliyamo/cinema-storefront/internal/middleware"
	"github.com/iliyamo/cinema-storefront/internal/notify"
	"github.com/iliyamo/cinema-storefront/internal/queue"
	"github.com/iliyamo/cinema-storefront/internal/repository"
	"github.com/iliyamo/cinema-storefront/internal/router"
	"github.com/iliyamo/cinema-storefront/internal/service"
	"github.com/iliyamo/cinema-storefront/internal/session"
)

func main() {
	cfg := config.Load()
	lg, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, lg)

	// Redis is optional; without it sessions and toasts live in process
	// and caching and rate limiting are off.
	redisCfg, err := config.LoadRedisConfig()
	if err != nil {
		lg.Fatal("redis config", zap.Error(err))
	}
	cacheCfg, err := config.LoadCacheConfig()
	if err != nil {
		lg.Fatal("cache config", zap.Error(err))
	}
	limitCfg, err := config.LoadRateLimitConfig()
	if err != nil {
		lg.Fatal("rate limit config", zap.Error(err))
	}
	rdb := config.NewRedisClient(redisCfg)
	var (
		store    session.Store
		notifier notify.Notifier
	)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		store = session.NewRedisStore(rdb, "checkout", cfg.SessionTTL)
		notifier = notify.NewRedisNotifier(rdb, "toasts", 24*time.Hour)
	} else {
		lg.Warn("redis unavailable, using in-memory sessions")
		mem := session.NewMemoryStore(cfg.SessionTTL)
		go sweep(ctx, mem, cfg.SessionTTL)
		store = mem
		notifier = notify.NewMemoryNotifier()
	}

	receipts := &handler.ReceiptHandler{}
	if cfg.JournalEnabled() {
		db, err := database.Open(ctx, cfg.DSN())
		if err != nil {
			lg.Fatal("open receipt journal", zap.Error(err))
		}
		defer func() { _ = db.Close() }()
		repo := repository.NewReceiptRepo(db)
		receipts.Repo = repo
		if cfg.RabbitURL != "" {
			go func() {
				if err := queue.StartReceiptConsumer(ctx, cfg.RabbitURL, repo, lg); err != nil && !errors.Is(err, context.Canceled) {
					lg.Error("receipt consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	checkout := &handler.CheckoutHandler{
		API:       api,
		Store:     store,
		Notifier:  notifier,
		Location:  cfg.Location,
		SeatPrice: cfg.SeatPrice,
		DateStrip: cfg.DateStripDays,
		Log:       lg.Named("checkout"),
	}
	if cfg.RabbitURL != "" {
		checkout.Events = service.NewOrderPublisher(cfg.RabbitURL, lg)
	}

	admin := &handler.AdminHandler{API: api, Log: lg.Named("admin")}
	if rdb != nil {
		admin.InvalidateCatalog = func(ctx context.Context) error {
			return middleware.InvalidateCache(ctx, cacheCfg, rdb)
		}
	}

	e := newServer(lg)
	limit := middleware.NewTokenBucket(limitCfg, rdb, lg)
	router.RegisterRoutes(e)
	router.RegisterAuth(e, &handler.AuthHandler{
		API:       api,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.AccessTTL(),
		Log:       lg.Named("auth"),
	}, cfg.JWTSecret, limit)
	router.RegisterPublic(e, &handler.CatalogHandler{API: api}, cfg.JWTSecret, limit, middleware.NewRedisCache(cacheCfg, rdb, lg))
	router.RegisterCustomer(e, router.CustomerHandlers{
		Checkout:      checkout,
		Receipts:      receipts,
		Notifications: &handler.NotificationHandler{Notifier: notifier},
	}, cfg.JWTSecret, limit)
	router.RegisterAdmin(e, admin, cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		lg.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
}

func newServer(lg *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(lg))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	return e
}

func sweep(ctx context.Context, mem *session.MemoryStore, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			mem.Sweep()
		}
	}
}
