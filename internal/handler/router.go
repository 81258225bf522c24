package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/forgo/eventboard/internal/middleware"
	"github.com/forgo/eventboard/internal/model"
)

// RouterConfig holds what NewRouter mounts
type RouterConfig struct {
	Events *EventHandler
	Health *HealthHandler

	// Auth guards event creation, and updates and deletes when
	// ProtectMutations is set
	Auth             middleware.Middleware
	ProtectMutations bool

	// StaticDir is served at / when it exists. Empty disables static files.
	StaticDir string
}

// NewRouter builds the HTTP routes
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.NotFound(notFound(cfg.StaticDir))
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, model.NewMethodNotAllowedError(r.Method))
	})

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Health)
	}

	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", cfg.Events.List)
		r.With(cfg.Auth).Post("/", cfg.Events.Create)
		r.Get("/{id}", cfg.Events.Get)
		r.Get("/{id}/share", cfg.Events.Share)

		mutations := r
		if cfg.ProtectMutations {
			mutations = r.With(cfg.Auth)
		}
		mutations.Put("/{id}", cfg.Events.Update)
		mutations.Delete("/{id}", cfg.Events.Delete)
	})

	return r
}

// notFound serves files from staticDir for GET and HEAD requests outside
// /api, and the unknown endpoint problem for everything else.
func notFound(staticDir string) http.HandlerFunc {
	var files http.Handler
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			files = http.FileServer(http.Dir(staticDir))
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if files != nil && servesStatic(r) && fileExists(staticDir, r.URL.Path) {
			files.ServeHTTP(w, r)
			return
		}
		WriteError(w, model.NewUnknownEndpointError(r.URL.Path))
	}
}

func servesStatic(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	return r.URL.Path != "/api" && !strings.HasPrefix(r.URL.Path, "/api/")
}

func fileExists(dir, urlPath string) bool {
	name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+urlPath)))
	_, err := os.Stat(name)
	return err == nil
}
