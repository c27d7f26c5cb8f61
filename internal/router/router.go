package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"ironline-site/internal/content"
	"ironline-site/internal/handler"
	"ironline-site/internal/middleware"
	"ironline-site/pkg/apierror"
	"ironline-site/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler        *handler.Handler
	DataHandler    *handler.DataHandler
	ContentHandler *handler.ContentHandler
	AdminHandler   *handler.AdminHandler
	LaunchHandler  *handler.LaunchHandler
	Realtime       http.Handler

	// AdminAuth guards every mutation route.
	AdminAuth func(http.Handler) http.Handler
	// LoginLimit throttles password attempts.
	LoginLimit func(http.Handler) http.Handler
	// Redirect is applied to page requests served from StaticDir.
	Redirect func(http.Handler) http.Handler

	StaticDir string
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Admin-Token", "X-Session-ID", "X-Write-Seq"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	adminAuth := cfg.AdminAuth
	if adminAuth == nil {
		adminAuth = denyAll
	}

	r.Route("/api", func(r chi.Router) {
		// PUBLIC routes (no auth required)
		if cfg.Handler != nil {
			r.Get("/status", cfg.Handler.Status)
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.DataHandler != nil {
			r.Route("/data", func(r chi.Router) {
				r.Get("/", cfg.DataHandler.Read)
				r.Post("/", cfg.DataHandler.Write)
				r.With(adminAuth).Get("/types", cfg.DataHandler.List)
			})
		}

		if cfg.ContentHandler != nil {
			r.Route("/content", func(r chi.Router) {
				r.Get("/", cfg.ContentHandler.All)
				r.Get("/rewards", cfg.ContentHandler.Rewards)
				r.Get("/schema/{collection}", cfg.ContentHandler.Schema)
				for _, name := range content.Names() {
					if name != content.CollectionRewards {
						r.Get("/"+name, cfg.ContentHandler.Collection(name))
					}
				}

				// AUTHENTICATED routes
				r.Group(func(r chi.Router) {
					r.Use(adminAuth)
					cfg.ContentHandler.Mount(r)
				})
			})
		}

		if cfg.LaunchHandler != nil {
			r.Route("/launch", func(r chi.Router) {
				r.Get("/countdown", cfg.LaunchHandler.Countdown)
				r.Get("/countdown/stream", cfg.LaunchHandler.Stream)
				r.Get("/settings", cfg.LaunchHandler.Settings)
				r.With(adminAuth).Put("/settings", cfg.LaunchHandler.SaveSettings)
			})
		}

		if cfg.AdminHandler != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Get("/state", cfg.AdminHandler.State)
				r.Post("/prompt", cfg.AdminHandler.Prompt)
				r.Post("/keys", cfg.AdminHandler.Keys)
				r.Post("/cancel", cfg.AdminHandler.Cancel)
				if cfg.LoginLimit != nil {
					r.With(cfg.LoginLimit).Post("/login", cfg.AdminHandler.Login)
				} else {
					r.Post("/login", cfg.AdminHandler.Login)
				}

				r.Group(func(r chi.Router) {
					r.Use(adminAuth)
					r.Post("/logout", cfg.AdminHandler.Logout)
					r.Post("/refresh", cfg.AdminHandler.Refresh)
					r.Get("/stats", cfg.AdminHandler.GetStats)
					r.Get("/toasts", cfg.AdminHandler.Toasts)
					r.Delete("/toasts/{id}", cfg.AdminHandler.HideToast)
				})
			})
		}

		if cfg.Realtime != nil {
			r.Get("/realtime", cfg.Realtime.ServeHTTP)
		}
	})

	// Static site, behind the launch redirect
	if cfg.StaticDir != "" {
		pages := http.Handler(spaFileServer(cfg.StaticDir))
		if cfg.Redirect != nil {
			pages = cfg.Redirect(pages)
		}
		r.Handle("/*", pages)
	}

	return r
}

// spaFileServer serves files from dir and falls back to <path>.html, then
// index.html, for client-side routes such as /launch and /admin.
func spaFileServer(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := filepath.Clean("/" + r.URL.Path)
		if fileExists(filepath.Join(dir, clean)) {
			fs.ServeHTTP(w, r)
			return
		}
		if !strings.Contains(filepath.Base(clean), ".") {
			if page := filepath.Join(dir, clean+".html"); fileExists(page) {
				http.ServeFile(w, r, page)
				return
			}
			if index := filepath.Join(dir, "index.html"); fileExists(index) {
				http.ServeFile(w, r, index)
				return
			}
		}
		http.NotFound(w, r)
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && (!info.IsDir() || fileExists(filepath.Join(path, "index.html")))
}

func denyAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, apierror.Forbidden("admin routes disabled"))
	})
}
