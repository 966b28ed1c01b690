// Package api is the stateless HTTP surface over the reply interpretation
// engine. Every request is classified independently; the handlers own the
// JSON envelopes so the engine types stay wire-format-free.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/introflow/replybrain/internal/common"
	"github.com/introflow/replybrain/internal/config"
	"github.com/introflow/replybrain/internal/engine"
)

// Server hosts the engine behind chi routes.
type Server struct {
	engine *engine.Engine
	router *chi.Mux
	addr   string
}

// NewServer wires routes and middleware around an engine.
func NewServer(eng *engine.Engine, cfg config.ServerConfig) *Server {
	s := &Server{
		engine: eng,
		router: chi.NewRouter(),
		addr:   cfg.Addr,
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestID)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/classify", s.handleClassify)
		r.Post("/compose", s.handleCompose)
		r.Post("/interpret", s.handleInterpret)
		r.Get("/patterns", s.handlePatterns)
	})

	return s
}

// Router returns the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	common.LogInfo("reply brain listening", common.Fields{"addr": s.addr})

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// requestID tags every request with a v4 UUID, echoed in the response header
// and available to handlers for their envelopes.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func reqID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
