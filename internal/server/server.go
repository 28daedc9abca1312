package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nymstead/wayfarer/internal/activity"
	"github.com/nymstead/wayfarer/internal/database"
	"github.com/nymstead/wayfarer/internal/handler"
	"github.com/nymstead/wayfarer/internal/inventory"
	"github.com/nymstead/wayfarer/internal/logger"
	"github.com/nymstead/wayfarer/internal/metrics"
	"github.com/nymstead/wayfarer/internal/user"
)

type Server struct {
	httpServer   *http.Server
	dbPool       database.Pool
	activitySvc  activity.Service
	inventorySvc inventory.Service
	userSvc      user.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, activitySvc activity.Service, inventorySvc inventory.Service, userSvc user.Service) *Server {
	r := chi.NewRouter()

	// Middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint for deployment verification
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint for Prometheus scraping
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		activityHandler := handler.NewActivityHandler(activitySvc)
		r.Route("/activity", func(r chi.Router) {
			r.Post("/vocation/start", activityHandler.HandleStartVocation)
			r.Post("/travel/start", activityHandler.HandleStartTravel)
			r.Get("/status", activityHandler.HandleStatus)
			r.Post("/stop", activityHandler.HandleStop)
			r.Get("/vocations", activityHandler.HandleGetVocations)
			r.Get("/destinations", activityHandler.HandleGetDestinations)
		})

		inventoryHandler := handler.NewInventoryHandler(inventorySvc)
		r.Get("/inventory", inventoryHandler.HandleGetInventory)
		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", inventoryHandler.HandleGetEquipment)
			r.Post("/", inventoryHandler.HandleApplyEquipment)
		})

		userHandler := handler.NewUserHandler(userSvc)
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", userHandler.HandleRegister)
			r.Get("/", userHandler.HandleGetUser)
			r.Get("/tracks", userHandler.HandleGetTracks)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:       dbPool,
		activitySvc:  activitySvc,
		inventorySvc: inventorySvc,
		userSvc:      userSvc,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	logger.FromContext(context.Background()).Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
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
		statusCode:     http.StatusOK,
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

		// Health and metrics probes would drown out everything else
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

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
