package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dperera/payconfirm/internal/config"
	"github.com/dperera/payconfirm/internal/handler"
	"github.com/dperera/payconfirm/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize Services
	dbService, err := services.NewDatabaseService(cfg)
	if err != nil {
		slog.Error("Failed to init DatabaseService", "error", err)
		os.Exit(1)
	}

	blobService, err := services.NewBlobService(cfg)
	if err != nil {
		slog.Error("Failed to init BlobService", "error", err)
		os.Exit(1)
	}

	queueService, err := services.NewQueueService(cfg)
	if err != nil {
		slog.Error("Failed to init QueueService", "error", err)
		os.Exit(1)
	}

	alertService := services.NewAlertService(cfg)

	deps := &handler.Dependencies{
		Database: dbService,
		Blob:     blobService,
		Queue:    queueService,
		Alert:    alertService,
		Config:   cfg,
	}

	// Router
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("POST /api/sms", deps.HandleIngest)
	mux.HandleFunc("GET /api/transactions", deps.HandleListTransactions)
	mux.HandleFunc("POST /api/transactions/read", deps.HandleMarkRead)

	// Adapter for HTTP Trigger (since enableForwardingHttpRequest is false)
	mux.HandleFunc("/HttpTrigger", deps.HandleHTTPTrigger(mux))

	// Queue trigger: alert dispatch for accepted transactions
	mux.HandleFunc("/ProcessQueue", deps.ProcessQueue)

	// Timer trigger: retention sweep
	mux.HandleFunc("/NightlyTrigger", deps.HandleNightlyTrigger)

	// Catch-all handler for unmatched requests to debug what the Host is sending
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		headers := make(map[string]string)
		for k, v := range r.Header {
			headers[k] = strings.Join(v, ", ")
		}
		slog.Warn("UNMATCHED REQUEST",
			"method", r.Method,
			"path", r.URL.Path,
			"headers", headers,
			"content_length", r.ContentLength,
		)
		http.NotFound(w, r)
	})

	// Health check (optional, good for debugging)
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Wrap mux with logging middleware
	loggedMux := loggingMiddleware(mux)

	slog.Info("Starting server", "port", cfg.Port, "retention_window", cfg.RetentionWindow.String())
	if err := http.ListenAndServe(":"+cfg.Port, loggedMux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
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

		// Read body for logging (and restore it)
		var bodyBytes []byte
		if r.Body != nil {
			bodyBytes, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		slog.Info("incoming request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_type", r.Header.Get("Content-Type"),
			"content_length", r.ContentLength,
		)

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		slog.Info("request completed", "method", r.Method, "path", r.URL.Path, "status", rw.status, "duration", duration)
	})
}
