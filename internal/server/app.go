package server

import (
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/auth"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/desertthunder/mixtape/internal/tasks"
)

// devOrigins are always allowed for CORS alongside the configured frontend
// URL, covering local dev servers.
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// NewRouter assembles the full application router: middleware, OAuth
// endpoints, playlist generation, the scrape proxy, health, and static
// assets. The state store is shared across requests; everything else is
// per-handler.
func NewRouter(config *shared.Config, engine tasks.GenerateEngine, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()

	origins := append([]string{}, devOrigins...)
	if config.Frontend.URL != "" {
		origins = append(origins, config.Frontend.URL)
	}
	router.Use(RequestLogger(logger), CORS(origins))

	states := auth.NewStateStore()
	router.Handler(NewAuthHandler(config, states, logger))
	router.Handler(NewGenerateHandler(engine, logger))
	router.Handler(NewScrapeHandler(config.Scrape.AllowedHosts, config.Scrape.RateLimit, logger))

	router.Handle(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))

	if dir := config.Server.StaticDir; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			fs := http.FileServer(http.Dir(dir))
			router.Handle(http.MethodGet, "/static/", http.StripPrefix("/static/", fs))
			router.Handle(http.MethodGet, "/{$}", fs)
		} else {
			logger.Warn("static directory not found, skipping asset routes", "dir", dir)
		}
	}

	return router
}
