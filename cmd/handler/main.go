package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/rocjay1/fam/internal/config"
	"github.com/rocjay1/fam/internal/fam"
	"github.com/rocjay1/fam/internal/handler"
	"github.com/rocjay1/fam/internal/services"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := config.SetupLogger(cfg.Log); err != nil {
		slog.Error("failed to set up logger", "error", err)
		os.Exit(1)
	}

	deps := &handler.Dependencies{
		Moderator:      fam.New(),
		StatementQueue: cfg.Storage.StatementQueue,
		NoticeQueue:    cfg.Storage.NoticeQueue,
	}

	// Each storage service is optional so the API also runs without Azure.
	if blobService, err := services.NewBlobService(cfg.Storage); err != nil {
		slog.Warn("blob service unavailable, statement uploads disabled", "error", err)
	} else {
		deps.Blob = blobService
	}

	if queueService, err := services.NewQueueService(cfg.Storage); err != nil {
		slog.Warn("queue service unavailable, notices and statement jobs disabled", "error", err)
	} else {
		deps.Queue = queueService
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	contactService, err := services.NewContactService(ctx, cfg.Storage)
	cancel()
	if err != nil {
		slog.Warn("contact service unavailable, guardian alerts disabled", "error", err)
	} else {
		deps.Contacts = contactService
	}

	if emailService, err := services.NewEmailService(cfg.Email, nil); err != nil {
		slog.Warn("email service unavailable (continuing anyway)", "error", err)
	} else {
		deps.Email = emailService
	}

	mux := handler.NewRouter(deps)

	slog.Info("starting server", "port", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, loggingMiddleware(mux)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func configPath() string {
	if path := os.Getenv("FAM_CONFIG"); path != "" {
		return path
	}
	return "fam.toml"
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("incoming request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_type", r.Header.Get("Content-Type"),
			"content_length", r.ContentLength,
		)

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		slog.Info("request completed", "method", r.Method, "path", r.URL.Path, "status", rw.status, "duration", time.Since(start))
	})
}
