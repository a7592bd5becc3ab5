package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/restockly/restock-dashboard/internal/api/handlers"
	apimw "github.com/restockly/restock-dashboard/internal/api/middleware"
	"github.com/restockly/restock-dashboard/internal/cache"
	"github.com/restockly/restock-dashboard/internal/config"
	"github.com/restockly/restock-dashboard/internal/product"
	"github.com/restockly/restock-dashboard/internal/push"
	"github.com/restockly/restock-dashboard/internal/session"
	"github.com/restockly/restock-dashboard/internal/upstream"
	"github.com/restockly/restock-dashboard/pkg/logger"
	domain "github.com/restockly/restock-dashboard/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	sess := session.NewStaticProvider(cfg.Session.StoreURL, cfg.Session.Token)

	rl := upstream.NewRateLimiter(
		cfg.Upstream.RateLimit.PerSecond,
		cfg.Upstream.RateLimit.Burst,
		cfg.Upstream.RateLimit.DailyLimit,
	)
	client := upstream.NewRestClient(
		cfg.Upstream.BaseURL,
		sess,
		upstream.WithRateLimiter(rl),
		upstream.WithPageLimit(cfg.Upstream.PageLimit),
	)

	store := cache.New()
	orch := product.New(client, store, sess, product.WithLogger(log))

	defaults := product.FetchOptions{
		ShortRangeDays: cfg.Defaults.ShortRangeDays,
		LongRangeDays:  cfg.Defaults.LongRangeDays,
		FutureDays:     cfg.Defaults.FutureDays,
		Status:         domain.ProductStatus(cfg.Defaults.Status),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Refresh.Enabled {
		sched := product.NewScheduler(orch, cfg.Refresh.Interval, defaults, log)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("starting refresh scheduler: %w", err)
		}
		defer sched.Stop()
	}

	if cfg.Push.Enabled {
		listener := push.NewListener(
			cfg.Push.URL,
			cfg.Push.ShopDomain,
			push.WithListenerLogger(log),
			push.WithReconnectPolicy(cfg.Push.MaxReconnects, cfg.Push.ReconnectDelay),
		)
		hooks := push.NewHooks(listener, orch, push.HookConfig{
			RefreshOnOrderCreated:   cfg.Push.RefreshOnOrderCreated,
			RefreshOnProductUpdated: cfg.Push.RefreshOnProductUpdated,
		}, push.WithHookLogger(log), push.WithOnUninstall(sess.Revoke))

		go hooks.Run(ctx)
		go func() {
			if err := listener.Run(ctx); err != nil {
				log.Error("push channel stopped", "error", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(apimw.Recovery(log))
	e.Use(apimw.RequestLog(log))
	e.Use(apimw.Metrics())

	api := humaecho.New(e, huma.DefaultConfig("Restock Dashboard API", Version))
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(orch))
	handlers.RegisterTotalsRoutes(api, handlers.NewTotalsHandler(orch))
	handlers.RegisterDateRangeRoutes(api, handlers.NewDateRangeHandler(orch))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(rl))

	handlers.RegisterExportRoutes(e, handlers.NewExportHandler(orch))
	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(sess))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "store", cfg.Session.StoreURL)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
