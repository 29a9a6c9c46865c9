package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/runnerr0/caseline/internal/config"
)

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)

	dir := cfg.Output.Dir
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("output directory %s not found (run analyze first)", dir)
	}

	level := slog.LevelInfo
	if c.globals != nil && c.globals.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newViewerHandler(dir, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("serving timeline data", "dir", dir, "addr", addr)
	fmt.Printf("Serving %s/ at http://%s/\n", dir, addr)
	return srv.ListenAndServe()
}

// applyOverrides folds command-line overrides into the loaded config.
func (c *ServeCommand) applyOverrides(cfg *config.Config) {
	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port > 0 {
		cfg.Server.Port = c.Port
	}
	if c.Dir != "" {
		cfg.Output.Dir = c.Dir
	}
}

// newViewerHandler serves the data directory for the timeline viewer. The
// viewer page fetches JSON from anywhere it happens to be opened from, so
// responses allow any origin and are never cached.
func newViewerHandler(dir string, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(viewerHeaders)

	r.Handle("/*", http.FileServer(http.Dir(dir)))
	return r
}

// viewerHeaders sets the CORS and cache-control headers on every response.
func viewerHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs incoming requests.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: 200}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
