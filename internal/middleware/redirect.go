package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"ironline-site/internal/model"
)

// LaunchSettingsSource provides the current launch settings.
type LaunchSettingsSource interface {
	Settings(ctx context.Context) (model.LaunchSettings, error)
}

// RedirectConfig configures LaunchRedirect.
type RedirectConfig struct {
	Settings    LaunchSettingsSource
	LaunchRoute string
	AdminRoute  string
	// SkipPrefixes are additional path prefixes never redirected.
	SkipPrefixes []string
}

var assetPrefixes = []string{"/api/", "/_next/", "/static/", "/assets/", "/favicon.ico"}

// LaunchRedirect sends page requests to the launch route while launch mode
// and auto-redirect are both on. Any error reading the settings lets the
// request through.
func LaunchRedirect(cfg RedirectConfig) func(http.Handler) http.Handler {
	launch := cfg.LaunchRoute
	if launch == "" {
		launch = "/launch"
	}
	admin := cfg.AdminRoute
	if admin == "" {
		admin = "/admin"
	}
	skip := append(append([]string{}, assetPrefixes...), cfg.SkipPrefixes...)

	exempt := func(path string) bool {
		if path == "/api" || underRoute(path, launch) || underRoute(path, admin) {
			return true
		}
		for _, p := range skip {
			if strings.HasPrefix(path, p) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Settings == nil || (r.Method != http.MethodGet && r.Method != http.MethodHead) || exempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			settings, err := cfg.Settings.Settings(r.Context())
			if err != nil {
				log.Printf("[Redirect] Launch settings unavailable, not redirecting: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			if settings.Active() {
				http.Redirect(w, r, launch, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func underRoute(path, route string) bool {
	return path == route || strings.HasPrefix(path, strings.TrimSuffix(route, "/")+"/")
}
