package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/careshare/internal/auth"
	"github.com/mmynk/careshare/internal/config"
	"github.com/mmynk/careshare/internal/metrics"
	"github.com/mmynk/careshare/internal/middleware"
	"github.com/mmynk/careshare/internal/receipts"
	"github.com/mmynk/careshare/internal/service"
	"github.com/mmynk/careshare/internal/storage/sqlite"
	"github.com/mmynk/careshare/pkg/api/apiconnect"
)

// maxReceiptMessage leaves room for base64 overhead on a MaxSize receipt.
const maxReceiptMessage = 16 << 20

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New(prometheus.DefaultRegisterer)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	receiptStore, err := newReceiptStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize receipt storage", "backend", cfg.ReceiptBackend, "error", err)
		return err
	}
	slog.Info("Receipt storage initialized", "backend", receiptStore.Backend())

	mux := http.NewServeMux()

	// Register Connect services. Everything except AuthService needs a token.
	public := connect.WithInterceptors(middleware.LoggingInterceptor(m))
	protected := connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor(m))

	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, slog.Default()), public))
	mux.Handle(apiconnect.NewFamilyServiceHandler(
		service.NewFamilyService(store, cfg.DefaultMonthlyBudget), protected))
	mux.Handle(apiconnect.NewBillServiceHandler(
		service.NewBillService(store, m), protected))
	mux.Handle(apiconnect.NewReportServiceHandler(
		service.NewReportService(store), protected))
	mux.Handle(apiconnect.NewReceiptServiceHandler(
		service.NewReceiptService(store, receiptStore, m), protected, connect.WithReadMaxBytes(maxReceiptMessage)))

	if disk, ok := receiptStore.(*receipts.DiskStore); ok && strings.HasPrefix(cfg.ReceiptBaseURL, "/") {
		prefix := strings.TrimSuffix(cfg.ReceiptBaseURL, "/") + "/"
		mux.Handle(prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(disk.Dir()))))
		slog.Info("Serving receipts", "path", disk.Dir(), "prefix", prefix)
	}

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	if cfg.StaticPath != "" {
		staticDir, err := filepath.Abs(cfg.StaticPath)
		if err != nil {
			slog.Error("Failed to resolve static path", "error", err)
			return err
		}
		slog.Info("Serving static files", "path", staticDir)
		mux.HandleFunc("/", staticHandler(staticDir))
	}

	var handler http.Handler = mux
	if cfg.RateLimitRPS > 0 {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m).WithTrustedProxies(cfg.TrustedProxies)
		if err != nil {
			slog.Error("Invalid trusted proxies", "error", err)
			return err
		}
		go limiter.Cleanup(time.Minute, ctx.Done())
		handler = limiter.Middleware(handler)
	}
	handler = middleware.RequestLogger(middleware.CORS(handler))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			return err
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
		return err
	}
	slog.Info("Server stopped gracefully")
	return nil
}

func newReceiptStore(ctx context.Context, cfg *config.Config) (receipts.Store, error) {
	switch cfg.ReceiptBackend {
	case "s3":
		return receipts.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix)
	default:
		return receipts.NewDiskStore(cfg.ReceiptDir, cfg.ReceiptBaseURL)
	}
}

// staticHandler serves the frontend. Unknown paths fall back to index.html;
// Connect paths that reach it are unknown procedures.
func staticHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiconnect.PackagePrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	}
}
