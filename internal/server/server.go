// Package server provides the HTTP REST API of the recruitment module.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/recruitment"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/server/middleware"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	handler       http.Handler
	svc           *recruitment.Service
	authHandler   *AuthHandler
	rateLimiter   *ratelimit.Limiter
	logger        *slog.Logger
	allowedOrigin string
}

// Config holds server configuration
type Config struct {
	Port          int
	AllowedOrigin string
	ApplyPerHour  int
	Logger        *slog.Logger
}

// New wires the routes of the recruitment API.
func New(cfg Config, svc *recruitment.Service, users *UserService, tokens *JWTService) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origin := cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	s := &Server{
		svc:           svc,
		rateLimiter:   ratelimit.NewLimiter(ratelimit.NewConfig(cfg.ApplyPerHour)),
		logger:        logger,
		allowedOrigin: origin,
	}
	s.authHandler = NewAuthHandler(s, users, tokens)

	mux := http.NewServeMux()
	staff := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.AuthMiddleware(tokens.AsTokenValidator())(h))
	}

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	staff("GET /auth/me", s.authHandler.Me)

	staff("GET /departments", s.handleListDepartments)
	staff("GET /skills", s.handleListSkills)

	// Job postings
	staff("GET /jobs", s.handleListJobs)
	staff("POST /jobs", s.handleCreateJob)
	staff("GET /jobs/{id}", s.handleGetJob)
	staff("PUT /jobs/{id}", s.handleUpdateJob)
	staff("DELETE /jobs/{id}", s.handleDeleteJob)
	staff("POST /jobs/{id}/archive", s.handleArchiveJob)
	staff("POST /jobs/{id}/public-token", s.handleRotatePublicToken)
	staff("GET /jobs/{id}/pipeline", s.handleJobPipeline)
	staff("GET /jobs/{id}/candidates", s.handleListCandidates)
	staff("POST /jobs/{id}/candidates", s.handleCreateCandidate)

	// Candidates
	staff("GET /candidates/{id}", s.handleGetCandidate)
	staff("PUT /candidates/{id}", s.handleUpdateCandidate)
	staff("DELETE /candidates/{id}", s.handleDeleteCandidate)
	staff("PUT /candidates/{id}/stage", s.handleChangeStage)
	staff("POST /candidates/{id}/status", s.handleUpdateStatus)
	staff("POST /candidates/{id}/hire", s.handleHireCandidate)
	staff("GET /candidates/{id}/offer-letter", s.handleOfferLetter)

	// Interviews and documents
	staff("GET /candidates/{id}/interviews", s.handleListInterviews)
	staff("POST /candidates/{id}/interviews", s.handleScheduleInterview)
	staff("PUT /interviews/{id}", s.handleUpdateInterview)
	staff("DELETE /interviews/{id}", s.handleDeleteInterview)
	staff("GET /candidates/{id}/documents", s.handleListDocuments)
	staff("POST /candidates/{id}/documents", s.handleAddDocument)
	staff("DELETE /documents/{id}", s.handleDeleteDocument)

	// Contracts and onboarding
	staff("POST /contracts", s.handleCreateContract)
	staff("GET /contracts/{id}", s.handleGetContract)
	staff("GET /contracts/{id}/document", s.handleContractDocument)
	staff("GET /employees/{id}/contracts", s.handleListContracts)
	staff("GET /employees/{id}/onboarding", s.handleOnboarding)

	// Public careers page
	mux.HandleFunc("GET /public/jobs/{token}", s.handlePublicJob)
	mux.HandleFunc("POST /public/jobs/{token}/apply", s.handlePublicApply)
	mux.HandleFunc("GET /public/schemas/application.json", s.handleApplicationSchema)

	s.handler = s.withLogging(s.withCORS(s.withRateLimit(mux)))
	s.httpServer = &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer s.rateLimiter.Stop()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	retry := int(info.RetryAfter.Seconds())
	if retry > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retry))
	}
	s.logger.Warn("rate limit exceeded",
		"client", clientID(r), "path", r.URL.Path, "limit", info.Limit, "retry_after_s", retry)
	s.jsonResponse(w, http.StatusTooManyRequests, errorBody{
		Message: "Too many requests. Please try again later.",
		Code:    "RATE_LIMITED",
	})
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"client", clientID(r))
	})
}

// clientID identifies the caller by IP address from RemoteAddr.
// X-Forwarded-For is ignored since no trusted proxy list is configured.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
