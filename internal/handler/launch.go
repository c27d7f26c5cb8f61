package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"ironline-site/internal/countdown"
	"ironline-site/internal/model"
	"ironline-site/internal/service"
	"ironline-site/internal/toast"
	"ironline-site/pkg/apierror"
	"ironline-site/pkg/response"
)

// ReleaseDateSource returns the current ISO-8601 release date.
type ReleaseDateSource func() string

// LaunchHandler serves the launch countdown and launch settings.
type LaunchHandler struct {
	releaseDate ReleaseDateSource
	fallback    string
	settings    *service.LaunchService
	toasts      *toast.Queue
	interval    time.Duration
	now         func() time.Time
}

// NewLaunchHandler creates a new launch handler. fallback is used when the
// content's release date is empty or unparsable.
func NewLaunchHandler(releaseDate ReleaseDateSource, fallback string, settings *service.LaunchService, toasts *toast.Queue, interval time.Duration) *LaunchHandler {
	if interval <= 0 {
		interval = time.Second
	}
	return &LaunchHandler{
		releaseDate: releaseDate,
		fallback:    fallback,
		settings:    settings,
		toasts:      toasts,
		interval:    interval,
		now:         time.Now,
	}
}

func (h *LaunchHandler) target() (time.Time, error) {
	if h.releaseDate != nil {
		if s := h.releaseDate(); s != "" {
			t, err := countdown.ParseReleaseDate(s, time.UTC)
			if err == nil {
				return t, nil
			}
			log.Printf("[LaunchHandler] %v, trying fallback", err)
		}
	}
	if h.fallback == "" {
		return time.Time{}, fmt.Errorf("no release date configured")
	}
	return countdown.ParseReleaseDate(h.fallback, time.UTC)
}

// Countdown handles GET /api/launch/countdown
func (h *LaunchHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	target, err := h.target()
	if err != nil {
		response.Error(w, apierror.NotFound("release date not set"))
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	response.OK(w, countdown.Compute(target, h.now()))
}

// Stream handles GET /api/launch/countdown/stream as Server-Sent Events.
// One "countdown" event is sent per tick; the stream ends with a
// "launched" event.
func (h *LaunchHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.Error(w, apierror.InternalError("streaming unsupported"))
		return
	}

	target, err := h.target()
	if err != nil {
		response.Error(w, apierror.NotFound("release date not set"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	ticker := countdown.NewTicker(r.Context(), target, h.interval, h.now)
	defer ticker.Stop()

	for rem := range ticker.C {
		data, err := json.Marshal(rem)
		if err != nil {
			return
		}
		event := "countdown"
		if rem.Launched {
			event = "launched"
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
			return
		}
		flusher.Flush()
	}
}

// Settings handles GET /api/launch/settings
func (h *LaunchHandler) Settings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Settings(r.Context())
	if err != nil {
		log.Printf("[LaunchHandler] Failed to read settings: %v", err)
		response.Error(w, apierror.InternalError("failed to read launch settings"))
		return
	}
	response.OK(w, s)
}

// SaveSettings handles PUT /api/launch/settings
func (h *LaunchHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var s model.LaunchSettings
	if !decodeJSON(w, r, &s, nil) {
		return
	}
	if err := h.settings.SaveSettings(r.Context(), s); err != nil {
		log.Printf("[LaunchHandler] Failed to save settings: %v", err)
		if h.toasts != nil {
			h.toasts.Error("Failed to save launch settings")
		}
		response.Error(w, apierror.InternalError("failed to save launch settings"))
		return
	}
	if h.toasts != nil {
		h.toasts.Success("Launch settings saved")
	}
	response.OK(w, s)
}
