package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gatehouse/internal/auth"
	"gatehouse/internal/config"
	"gatehouse/internal/gate"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// credentialStore is what Run needs from a store: verification for the gate
// plus the writes used to seed configured users.
type credentialStore interface {
	gate.Verifier
	Put(ctx context.Context, username string, secret string) error
}

func buildStore(cfg *config.Config) (credentialStore, func(), error) {
	if cfg.Store.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		return auth.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
	}

	store, err := auth.NewSQLiteStore(cfg.Store.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open user store: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

func Run(ctx context.Context) error {

	configPath := flag.String("config", "", "path to the YAML configuration file")

	flag.Parse()

	handler := log.NewWithOptions(os.Stdout, log.Options{
		Level:           log.DebugLevel,
		TimeFormat:      time.RFC3339,
		ReportTimestamp: true,
		TimeFunction:    log.NowUTC,
		ReportCaller:    true,
	})

	slog.SetDefault(slog.New(handler))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Read(*configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	store, closeStore, err := buildStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	for _, u := range cfg.Users {
		if err := store.Put(ctx, u.Username, u.Secret); err != nil {
			return fmt.Errorf("failed to seed user store: %w", err)
		}
	}

	upstream, err := url.Parse(cfg.Upstream)
	if err != nil {
		return fmt.Errorf("failed to parse upstream URL: %w", err)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(upstream)
			pr.SetXForwarded()

			// The upstream sees the verified identity, never a
			// client-supplied value.
			pr.Out.Header.Del("X-Gatehouse-User")
			if user, ok := gate.Identity(pr.In.Context()); ok {
				pr.Out.Header.Set("X-Gatehouse-User", user)
			}
		},
	}

	router := gate.LogRequest(gate.Recoverer(gate.New(store, proxy)))

	httpServer := &http.Server{
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", promhttp.Handler())
	metricsMux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok\n")
	})

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metricsMux,
		ReadHeaderTimeout: cfg.ReadTimeout,
	}

	eg, ctx := errgroup.WithContext(ctx)

	shutdown := func(server *http.Server) error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(sctx)
	}

	eg.Go(func() error { return shutdown(httpServer) })

	eg.Go(func() error {
		var err error
		if cfg.CertFile != "" {
			slog.Info("Starting Gatehouse HTTPS server", "addr", cfg.ListenAddr, "upstream", cfg.Upstream)
			err = httpServer.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			slog.Info("Starting Gatehouse HTTP server", "addr", cfg.ListenAddr, "upstream", cfg.Upstream)
			err = httpServer.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	if cfg.MetricsAddr != "" {
		eg.Go(func() error { return shutdown(metricsServer) })

		eg.Go(func() error {
			slog.Info("Starting Gatehouse metrics server", "addr", cfg.MetricsAddr)
			err := metricsServer.ListenAndServe()
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		})
	}

	slog.Info("Gatehouse Started")
	return eg.Wait()

}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		slog.Error("Gatehouse exited with error", "error", err)
		os.Exit(1)
	}
}
