// Package api serves fits, names and saved fit summaries over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/meur/fitforge/internal/config"
	"github.com/meur/fitforge/internal/storage"
)

// searchLimit caps the results of one name search.
const searchLimit = 50

// Server holds the HTTP server dependencies
type Server struct {
	store  *storage.Store
	cfg    *config.Config
	log    zerolog.Logger
	router chi.Router
}

// New creates a new API server
func New(store *storage.Store, cfg *config.Config, log zerolog.Logger) *Server {
	s := &Server{
		store:  store,
		cfg:    cfg,
		log:    log,
		router: chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the chi router so callers can mount extra handlers.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         3600,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Fits
		r.With(s.cacheControl).Get("/Fit", s.handleGetFit)
		r.With(s.cacheControl).Get("/Fit/text", s.handleGetFitText)
		r.Get("/Fits", s.handleGetFits)
		r.Get("/Search", s.handleSearch)

		// Saved fits
		r.Get("/saved", s.handleListSaved)
		r.Get("/saved/{id}", s.handleGetSaved)
		r.Put("/saved/{id}", s.handlePutSaved)
		r.Delete("/saved/{id}", s.handleDeleteSaved)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.Ping(r.Context()); err != nil {
			respondError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// requestLogger logs one line per request through zerolog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// cacheControl marks fit documents cacheable; they never change once
// ingested.
func (s *Server) cacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.CacheMaxAge > 0 {
			w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", s.cfg.CacheMaxAge))
		}
		next.ServeHTTP(w, r)
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
