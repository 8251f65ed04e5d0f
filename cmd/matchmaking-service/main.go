package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/go-matrimony/internal/config"
	"github.com/pribylovaa/go-matrimony/internal/fixtures"
	mmhttp "github.com/pribylovaa/go-matrimony/internal/http"
	"github.com/pribylovaa/go-matrimony/internal/metrics"
	"github.com/pribylovaa/go-matrimony/internal/notify"
	"github.com/pribylovaa/go-matrimony/internal/service"
	"github.com/pribylovaa/go-matrimony/internal/storage/memory"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	// .env необязателен: в контейнере переменные приходят из окружения.
	_ = godotenv.Load()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting matchmaking-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	store := memory.New()
	defer store.Close()

	seed, err := fixtures.Load(cfg.Fixtures.Path)
	if err != nil {
		log.Error("fixtures_load_failed", slog.String("path", cfg.Fixtures.Path), slog.String("err", err.Error()))
		os.Exit(1)
	}

	rates, err := cfg.Currency.DecimalRates()
	if err != nil {
		log.Error("config_rates_invalid", slog.String("err", err.Error()))
		os.Exit(1)
	}

	if err := seed.CheckCurrencies(rates); err != nil {
		log.Error("fixtures_check_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	if err := seed.Apply(rootCtx, store); err != nil {
		log.Error("fixtures_apply_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	log.Info("fixtures_applied")

	m := metrics.New(prometheus.DefaultRegisterer)

	svc, err := service.New(store, *cfg,
		service.WithNotifier(notify.NewStore(store)),
		service.WithMetrics(m),
	)
	if err != nil {
		log.Error("service_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	log.Info("service_initialized")

	apiHandler := mmhttp.NewRouter(svc, mmhttp.Options{
		Logger:         log,
		Timeout:        cfg.Timeouts.Service,
		Metrics:        m,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})
	mux.Handle("/metrics", promhttp.Handler())

	apiSrv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           apiHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsSrv := &http.Server{
		Addr:              cfg.Metrics.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(rootCtx)

	for name, srv := range map[string]*http.Server{"http": apiSrv, "metrics": metricsSrv} {
		name, srv := name, srv
		g.Go(func() error {
			log.Info(name+"_listen_start", slog.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(name+"_serve_failed", slog.String("err", err.Error()))
				return err
			}
			return nil
		})
	}

	atomic.StoreInt32(&ready, 1)
	log.Info("service_ready")

	// Остановка: сигнал или падение любого из серверов.
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown_requested")
		atomic.StoreInt32(&ready, 0)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
		} else {
			log.Info("http_stopped")
		}

		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("metrics_shutdown_incomplete", slog.String("err", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("service_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("service_stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
