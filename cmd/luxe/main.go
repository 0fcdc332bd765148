package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/boddenberg/luxe-client-go/internal/config"
	"github.com/boddenberg/luxe-client-go/internal/handler"
	"github.com/boddenberg/luxe-client-go/internal/infra/cache"
	"github.com/boddenberg/luxe-client-go/internal/infra/client"
	"github.com/boddenberg/luxe-client-go/internal/infra/observability"
	"github.com/boddenberg/luxe-client-go/internal/infra/resilience"
	"github.com/boddenberg/luxe-client-go/internal/infra/session"
	"github.com/boddenberg/luxe-client-go/internal/service"
	"github.com/boddenberg/luxe-client-go/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "luxe:", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()
	flag.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "banking API root URL")
	flag.StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "path of the session record file")
	flag.Parse()

	// --- Logger ---
	// The terminal belongs to the UI, so logs go to a file.
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFile)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("log_level", cfg.LogLevel),
		zap.String("session_file", cfg.SessionFile),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("flash_ttl", cfg.FlashTTL),
		zap.String("ops_addr", cfg.OpsAddr),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "luxe-client")
	if err != nil {
		logger.Error("failed to init tracer", zap.Error(err))
		return fmt.Errorf("init tracer: %w", err)
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
	}
	cb := resilience.NewCircuitBreaker(client.ServiceName, client.IsBenign)

	// --- Gateway ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	gateway := client.NewBankingClient(httpClient, cfg.APIBaseURL, cb, resilienceCfg, metrics)

	// --- Session & flash stores ---
	store := session.NewFileStore(cfg.SessionFile)
	flash := cache.New[string](cfg.FlashTTL)
	defer flash.Close()

	// --- Services ---
	deps := ui.Deps{
		Auth:         service.NewAuthService(gateway, store, metrics, logger),
		Accounts:     service.NewAccountsService(gateway, metrics, logger),
		Transactions: service.NewTransactionsService(gateway, gateway, metrics, logger),
		Flash:        flash,
		FlashTTL:     cfg.FlashTTL,
		Metrics:      metrics,
		Logger:       logger,
	}

	// --- Ops server (optional) ---
	var srv *http.Server
	if cfg.OpsAddr != "" {
		srv = &http.Server{
			Addr:         cfg.OpsAddr,
			Handler:      handler.NewRouter(cb, metrics, logger),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			logger.Info("ops server starting", zap.String("addr", cfg.OpsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("ops server failed", zap.Error(err))
			}
		}()
	}

	// --- UI ---
	logger.Info("client starting")
	_, runErr := tea.NewProgram(ui.NewShell(deps), tea.WithAltScreen()).Run()

	// --- Graceful shutdown ---
	if srv != nil {
		logger.Info("ops server shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("ops server forced shutdown", zap.Error(err))
		}
		cancel()
	}

	if runErr != nil {
		logger.Error("client exited with error", zap.Error(runErr))
		return runErr
	}
	logger.Info("client stopped")
	return nil
}
