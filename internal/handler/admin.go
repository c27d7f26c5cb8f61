package handler

import (
	"errors"
	"log"
	"net/http"
	"runtime"
	"time"

	"ironline-site/internal/gate"
	"ironline-site/internal/middleware"
	"ironline-site/internal/service"
	"ironline-site/internal/toast"
	"ironline-site/pkg/apierror"
	"ironline-site/pkg/response"
	"ironline-site/pkg/uid"

	"github.com/go-chi/chi/v5"
)

const (
	// SessionHeader identifies the browser session driving a gate.
	SessionHeader = "X-Session-ID"
	sessionCookie = "ironline_session"
)

// Counter reports a live count, such as connected realtime clients.
type Counter interface {
	Count() int
}

// AdminHandler handles the admin gate and admin-only utilities.
type AdminHandler struct {
	gates    *gate.Manager
	verifier gate.Verifier
	sessions *service.SessionService
	bridge   *service.BridgeService
	toasts   *toast.Queue
	clients  Counter
	backend  string
	started  time.Time
}

// AdminConfig holds the dependencies of an AdminHandler.
type AdminConfig struct {
	Gates    *gate.Manager
	Verifier gate.Verifier
	Sessions *service.SessionService
	Bridge   *service.BridgeService
	Toasts   *toast.Queue
	Clients  Counter
	Backend  string
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(cfg AdminConfig) *AdminHandler {
	return &AdminHandler{
		gates:    cfg.Gates,
		verifier: cfg.Verifier,
		sessions: cfg.Sessions,
		bridge:   cfg.Bridge,
		toasts:   cfg.Toasts,
		clients:  cfg.Clients,
		backend:  cfg.Backend,
		started:  time.Now(),
	}
}

// StateResponse describes a session's gate.
type StateResponse struct {
	SessionID string     `json:"sessionId"`
	State     gate.State `json:"state"`
	IsAdmin   bool       `json:"isAdmin"`
	Fired     bool       `json:"fired,omitempty"`
}

// KeysRequest is a batch of keyboard events from the browser.
type KeysRequest struct {
	Events []gate.KeyEvent `json:"events"`
}

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued admin token.
type LoginResponse struct {
	StateResponse
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	ExpiresIn int       `json:"expiresIn"`
}

// sessionID returns the caller's browser session id, assigning one in a
// cookie when the request carries none.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" && len(id) <= 128 {
		return id
	}
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(SessionHeader, id)
	return id
}

func (h *AdminHandler) state(sid string, g *gate.Gate, fired bool) StateResponse {
	st := g.State()
	return StateResponse{SessionID: sid, State: st, IsAdmin: st == gate.LoggedIn, Fired: fired}
}

// State handles GET /api/admin/state
func (h *AdminHandler) State(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	response.OK(w, h.state(sid, h.gates.Gate(r.Context(), sid), false))
}

// Prompt handles POST /api/admin/prompt
func (h *AdminHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	g := h.gates.Gate(r.Context(), sid)
	g.RequestAccess()
	response.OK(w, h.state(sid, g, false))
}

// Keys handles POST /api/admin/keys
func (h *AdminHandler) Keys(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)

	var req KeysRequest
	if !decodeJSON(w, r, &req, nil) {
		return
	}
	if len(req.Events) > 64 {
		response.Error(w, apierror.BadRequest("at most 64 events per request"))
		return
	}

	_, fired := h.gates.FeedKeys(r.Context(), sid, req.Events)
	response.OK(w, h.state(sid, h.gates.Gate(r.Context(), sid), fired))
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)

	var req LoginRequest
	if !decodeJSON(w, r, &req, nil) {
		return
	}

	ctx := r.Context()
	g := h.gates.Gate(ctx, sid)

	// A restored session still has to prove the password before a token is issued.
	if g.State() == gate.LoggedIn {
		if !h.verifier.Verify(req.Password) {
			response.Error(w, apierror.Unauthorized("Incorrect password"))
			return
		}
	} else if err := g.VerifyPassword(ctx, req.Password); err != nil {
		switch {
		case errors.Is(err, gate.ErrNoPrompt):
			response.Error(w, apierror.Conflict("Open the login prompt first"))
		case errors.Is(err, gate.ErrWrongPassword):
			response.Error(w, apierror.Unauthorized("Incorrect password"))
		default:
			response.Error(w, apierror.InternalError("login failed"))
		}
		return
	}

	token, data, err := h.sessions.Generate(ctx, sid, middleware.ClientIP(r))
	if err != nil {
		log.Printf("[AdminHandler] Failed to issue token: %v", err)
		response.Error(w, apierror.InternalError("failed to generate token"))
		return
	}

	h.toasts.Success("Logged in")
	response.OK(w, LoginResponse{
		StateResponse: h.state(sid, g, false),
		Token:         token,
		ExpiresAt:     data.ExpiresAt,
		ExpiresIn:     int(h.sessions.TTL().Seconds()),
	})
}

// Cancel handles POST /api/admin/cancel
func (h *AdminHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	g := h.gates.Gate(r.Context(), sid)
	g.Cancel()
	response.OK(w, h.state(sid, g, false))
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.sessions.Revoke(ctx, middleware.AdminToken(r)); err != nil {
		log.Printf("[AdminHandler] Failed to revoke token: %v", err)
	}

	sid := sessionID(w, r)
	if data := middleware.GetSessionDataFromContext(ctx); data != nil {
		sid = data.SessionID
	}
	g := h.gates.Gate(ctx, sid)
	g.Logout(ctx)

	response.OK(w, h.state(sid, g, false))
}

// Refresh handles POST /api/admin/refresh
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	data, err := h.sessions.Refresh(r.Context(), middleware.AdminToken(r))
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			response.Error(w, apierror.Unauthorized("Invalid or expired token"))
			return
		}
		response.Error(w, apierror.InternalError("failed to refresh token"))
		return
	}

	response.OK(w, map[string]interface{}{
		"expiresAt": data.ExpiresAt,
		"expiresIn": int(h.sessions.TTL().Seconds()),
	})
}

// Toasts handles GET /api/admin/toasts
func (h *AdminHandler) Toasts(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.toasts.List())
}

// HideToast handles DELETE /api/admin/toasts/{id}
func (h *AdminHandler) HideToast(w http.ResponseWriter, r *http.Request) {
	if !h.toasts.Hide(chi.URLParam(r, "id")) {
		response.Error(w, apierror.NotFound("toast not found"))
		return
	}
	response.NoContent(w)
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := make(map[string]interface{})

	// System info
	stats["uptime_seconds"] = int64(time.Since(h.started).Seconds())
	stats["uptime_human"] = time.Since(h.started).Round(time.Second).String()
	stats["server_time"] = time.Now().Format(time.RFC3339)
	stats["bridge_backend"] = h.backend

	// Memory stats
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":      float64(memStats.Alloc) / 1024 / 1024,
		"sys_mb":        float64(memStats.Sys) / 1024 / 1024,
		"heap_inuse_mb": float64(memStats.HeapInuse) / 1024 / 1024,
		"num_gc":        memStats.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}

	if h.bridge != nil {
		bridgeStats, err := h.bridge.Stats(ctx)
		if err == nil {
			bridgeStats["status"] = "connected"
			bridgeStats["write_behind"] = h.bridge.Buffered()
			stats["bridge"] = bridgeStats
		} else {
			stats["bridge"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		}
	} else {
		stats["bridge"] = map[string]interface{}{
			"status": "not_configured",
		}
	}

	stats["gate_sessions"] = h.gates.Count()
	stats["toasts"] = h.toasts.Len()
	if h.clients != nil {
		stats["realtime_clients"] = h.clients.Count()
	}

	// Runtime info
	stats["runtime"] = map[string]interface{}{
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"cpus":       runtime.NumCPU(),
	}

	response.OK(w, stats)
}
