// Package http exposes the record store and analysis functions as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

type Server struct {
	http.Server
	ledger         *services.LedgerService
	store          store.RecordStore
	defaultNS      string
	analysisMonths int
	rateLimiter    *rateLimiter

	// Summary responses are cached per namespace and invalidated on every
	// transaction write.
	summaryCache *cache.LRUCache[summaryResponse]
	cacheMgr     *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, ledger *services.LedgerService, defaultNS string, analysisMonths int) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:         ledger,
		store:          ledger.Store(),
		defaultNS:      defaultNS,
		analysisMonths: analysisMonths,
		rateLimiter:    newRateLimiter(),
		summaryCache:   cache.NewLRUCache[summaryResponse](100, 5*time.Minute),
		cacheMgr:       cache.NewManager(),
	}

	s.cacheMgr.Register(s.summaryCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/transactions", s.withAPIMiddleware(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withAPIMiddleware(s.handleTransactionByID))
	mux.HandleFunc("/api/goals", s.withAPIMiddleware(s.handleGoals))
	mux.HandleFunc("/api/goals/", s.withAPIMiddleware(s.handleGoalByID))
	mux.HandleFunc("/api/budgets", s.withAPIMiddleware(s.handleBudgets))
	mux.HandleFunc("/api/budgets/", s.withAPIMiddleware(s.handleBudgetByCategory))
	mux.HandleFunc("/api/budgets/status", s.withAPIMiddleware(s.handleBudgetStatus))
	mux.HandleFunc("/api/summary", s.withAPIMiddleware(s.handleSummary))
	mux.HandleFunc("/api/analysis/monthly", s.withAPIMiddleware(s.handleMonthlyAnalysis))
	mux.HandleFunc("/api/analysis/categories", s.withAPIMiddleware(s.handleCategoryAnalysis))
	mux.HandleFunc("/api/categories", s.withAPIMiddleware(s.handleCategories))
	mux.HandleFunc("/api/export", s.withAPIMiddleware(s.handleExport))

	return s
}

// withAPIMiddleware adds security headers, rate limiting, and request
// logging to API responses.
func (s *Server) withAPIMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip := clientIP(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, ip,
			applog.FieldUserAgent, r.Header.Get("User-Agent"))

		// Rate limit mutating requests only; reads are cheap.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(ip) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, ip,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, duration.Milliseconds(),
			applog.FieldClientIP, ip)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheMgr != nil {
			s.cacheMgr.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
