// Package server provides the InternEase web front end and JSON API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/intern-ease/internal/export"
	"github.com/jonathan/intern-ease/internal/handoff"
	"github.com/jonathan/intern-ease/internal/logging"
	"github.com/jonathan/intern-ease/internal/pipeline"
	"github.com/jonathan/intern-ease/internal/rendering"
	"github.com/jonathan/intern-ease/internal/server/ratelimit"
	"github.com/jonathan/intern-ease/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	pipeline    *pipeline.Orchestrator
	store       handoff.Store
	renderer    *rendering.Renderer
	pdf         export.PDFPrinter
	sessions    *SessionService
	rateLimiter *ratelimit.Limiter
	log         *logging.Logger
}

// Config holds server configuration
type Config struct {
	Port      int
	RateLimit *ratelimit.Config
}

// Deps are the collaborators the handlers use. PDF may be nil, in which
// case PDF downloads answer 503.
type Deps struct {
	Pipeline *pipeline.Orchestrator
	Store    handoff.Store
	Renderer *rendering.Renderer
	PDF      export.PDFPrinter
	Sessions *SessionService
	Logger   *logging.Logger
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Pipeline == nil || deps.Store == nil || deps.Sessions == nil {
		return nil, fmt.Errorf("server requires a pipeline, a hand-off store and a session service")
	}
	if deps.Renderer == nil {
		renderer, err := rendering.NewRenderer()
		if err != nil {
			return nil, err
		}
		deps.Renderer = renderer
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}

	s := &Server{
		pipeline: deps.Pipeline,
		store:    deps.Store,
		renderer: deps.Renderer,
		pdf:      deps.PDF,
		sessions: deps.Sessions,
		log:      deps.Logger,
	}

	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = &ratelimit.Config{Enabled: false}
	}
	s.rateLimiter = ratelimit.NewLimiter(rlConfig)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleForm)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /generate/stream", s.handleGenerateStream)
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("GET /results/{file}", s.handleDownload)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.handler = s.withRecover(s.withRateLimit(s.withLogging(s.withCORS(mux))))

	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // three sequential model calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the full middleware-wrapped handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.log.Info("server stopped")
	return nil
}

// Close releases the rate limiter. The store and PDF exporter belong to the caller.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps SSE working through the recorder
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// withRecover turns handler panics into a 500 with the uniform error body
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.log.Error("handler panic", "method", r.Method, "path", r.URL.Path, "panic", rec)
				s.jsonResponse(w, http.StatusInternalServerError, types.Failure(pipeline.MsgUnexpected))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("error encoding JSON response", "error", err)
	}
}

// errorResponse writes the uniform {data:null,error} body
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, types.Failure(message))
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	retryAfter := int(info.RetryAfter.Seconds())
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}

	s.log.Warn("rate limit exceeded",
		"client", clientID,
		"limit", info.Limit,
		"reset", info.ResetTime.Format(time.RFC3339),
	)

	s.errorResponse(w, http.StatusTooManyRequests, "Too many submissions. Please try again later.")
}
