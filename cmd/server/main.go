package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/meur/fitforge/internal/api"
	"github.com/meur/fitforge/internal/config"
	"github.com/meur/fitforge/internal/logger"
	"github.com/meur/fitforge/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("fitforge", "info")
		boot.Fatal().Err(err).Msg("load config")
	}

	// Flags override the environment
	flag.StringVar(&cfg.Port, "port", cfg.Port, "Server port or host:port")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "Frontend directory to serve at /")
	flag.Parse()

	log := logger.New("fitforge", cfg.LogLevel)

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer store.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHandler(store, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", httpServer.Addr).Str("db", cfg.DBPath).Msg("fitforge API starting")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// newHandler builds the API and, when a static directory is configured,
// serves it at / for routes the API does not claim.
func newHandler(store *storage.Store, cfg *config.Config, log zerolog.Logger) http.Handler {
	srv := api.New(store, cfg, log)
	if cfg.StaticDir != "" {
		FileServer(srv.Router(), "/", http.Dir(cfg.StaticDir))
	}
	return srv
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
