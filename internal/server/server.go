package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stackgarden/stackgarden/internal/database"
	"github.com/stackgarden/stackgarden/internal/handler"
	"github.com/stackgarden/stackgarden/internal/logger"
	"github.com/stackgarden/stackgarden/internal/metrics"
	"github.com/stackgarden/stackgarden/internal/session"
	"github.com/stackgarden/stackgarden/internal/store"
)

type Server struct {
	httpServer     *http.Server
	dbPool         database.Pool
	sessionService session.Service
}

// NewServer creates a new Server instance. An empty apiKey disables
// authentication, which is the expected mode for a single-user local
// deployment.
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, sessionService session.Service, stateStore store.StateStore) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	if apiKey != "" {
		r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	}
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.Post("/start", handler.HandleStartSession(sessionService))
			r.Post("/pause", handler.HandlePauseSession(sessionService))
			r.Post("/resume", handler.HandleResumeSession(sessionService))
			r.Post("/complete", handler.HandleCompleteSession(sessionService))
			r.Post("/abandon", handler.HandleAbandonSession(sessionService))
			r.Get("/timer", handler.HandleGetTimer(sessionService))
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/", handler.HandleGetShop(sessionService))
			r.Post("/purchase", handler.HandlePurchase(sessionService))
		})

		r.Route("/canvas", func(r chi.Router) {
			r.Get("/", handler.HandleGetArchitecture(sessionService))
			r.Post("/place", handler.HandlePlaceComponent(sessionService))
			r.Post("/quick-place", handler.HandleQuickPlaceComponent(sessionService))
			r.Post("/move", handler.HandleMoveComponent(sessionService))
			r.Post("/remove", handler.HandleRemoveComponent(sessionService))
			r.Post("/upgrade", handler.HandleUpgradeComponent(sessionService))
			r.Post("/connect", handler.HandleConnect(sessionService))
			r.Post("/disconnect", handler.HandleDisconnect(sessionService))
			r.Get("/connection-hint", handler.HandleConnectionHint(sessionService))
		})

		r.Get("/progress", handler.HandleGetProgress(sessionService))
		r.Get("/history", handler.HandleGetHistory(sessionService))

		r.Route("/state", func(r chi.Router) {
			r.Get("/", handler.HandleGetState(stateStore))
			r.Put("/", handler.HandlePutState(stateStore))
			r.Get("/export", handler.HandleExport(sessionService))
			r.Post("/import", handler.HandleImport(sessionService))
			r.Post("/sync", handler.HandleSyncNow(sessionService))
		})

		r.Route("/coach", func(r chi.Router) {
			r.Post("/message", handler.HandleCoachMessage(sessionService))
			r.Post("/welcome-back", handler.HandleWelcomeBack(sessionService))
			r.Route("/advice", func(r chi.Router) {
				r.Get("/", handler.HandleGetGoalAdvice(sessionService))
				r.Post("/", handler.HandleSetGoalAdvice(sessionService))
				r.Post("/clear", handler.HandleClearGoalAdvice(sessionService))
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:         dbPool,
		sessionService: sessionService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
