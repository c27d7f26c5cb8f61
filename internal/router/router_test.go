package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ironline-site/internal/cache"
	"ironline-site/internal/content"
	"ironline-site/internal/gate"
	"ironline-site/internal/handler"
	"ironline-site/internal/middleware"
	"ironline-site/internal/model"
	"ironline-site/internal/repository"
	"ironline-site/internal/service"
	"ironline-site/internal/toast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "hunter2"

type testEnv struct {
	router http.Handler
	store  *content.Store
	toasts *toast.Queue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	kv := cache.NewMemoryStore()
	t.Cleanup(func() { kv.Close() })

	repo := repository.NewFileBlobRepository(filepath.Join(t.TempDir(), "data"))
	bridge := service.NewBridgeService(repo, cache.NewMemorySequenceGuard())

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("home"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "launch.html"), []byte("launch"), 0o644))

	store := content.NewStore(kv, content.Options{})
	toasts := toast.NewQueue(time.Hour)
	t.Cleanup(toasts.Close)

	verifier := gate.PlainVerifier{Password: testPassword}
	sessions := service.NewSessionService(kv, time.Hour)
	launchSettings := service.NewLaunchService(bridge, kv, "launch-settings", time.Minute)

	data := handler.NewDataHandler(bridge)
	data.Reserve(sessions, append(content.Names(), launchSettings.Type())...)
	data.OnWrite(launchSettings.BlobWritten)

	r := New(Config{
		Handler:        handler.New("ironline-site", "test"),
		DataHandler:    data,
		ContentHandler: handler.NewContentHandler(store, bridge, toasts, nil),
		AdminHandler: handler.NewAdminHandler(handler.AdminConfig{
			Gates:    gate.NewManager(verifier, kv, nil),
			Verifier: verifier,
			Sessions: sessions,
			Bridge:   bridge,
			Toasts:   toasts,
			Backend:  "file",
		}),
		LaunchHandler: handler.NewLaunchHandler(
			func() string { return store.Launch().ReleaseDate }, "", launchSettings, toasts, time.Second),
		AdminAuth: middleware.RequireAdmin(sessions),
		Redirect: middleware.LaunchRedirect(middleware.RedirectConfig{
			Settings:    launchSettings,
			LaunchRoute: "/launch",
			AdminRoute:  "/admin",
		}),
		StaticDir: staticDir,
	})

	return &testEnv{router: r, store: store, toasts: toasts}
}

type request struct {
	method string
	path   string
	body   interface{}
	token  string
	header map[string]string
}

func (e *testEnv) do(t *testing.T, req request) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	switch b := req.body.(type) {
	case nil:
	case string:
		body.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&body).Encode(b))
	}

	r := httptest.NewRequest(req.method, req.path, &body)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set(handler.SessionHeader, "tab-1")
	if req.token != "" {
		r.Header.Set(middleware.AdminTokenHeader, req.token)
	}
	for k, v := range req.header {
		r.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()

	rec := e.do(t, request{method: http.MethodPost, path: "/api/admin/prompt"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, request{method: http.MethodPost, path: "/api/admin/login", body: map[string]string{"password": testPassword}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, string(gate.LoggedIn), data["state"])
	return data["token"].(string)
}

func TestDataReadMissingTypeIs404(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, request{method: http.MethodGet, path: "/api/data?type=nonexistent"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])
}

func TestDataWriteMissingContentIs400(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, request{method: http.MethodPost, path: "/api/data", body: `{"type":"x"}`})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, request{method: http.MethodPost, path: "/api/data", body: `{"content":{"a":1}}`})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, request{method: http.MethodGet, path: "/api/data"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDataRoundTrip(t *testing.T) {
	e := newTestEnv(t)

	payload := map[string]interface{}{"title": "Ironline", "tags": []interface{}{"tactical", "5v5"}, "season": 1.0}
	rec := e.do(t, request{method: http.MethodPost, path: "/api/data", body: map[string]interface{}{
		"type":    "heroContent",
		"content": payload,
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["message"])

	rec = e.do(t, request{method: http.MethodGet, path: "/api/data?type=heroContent"})
	require.Equal(t, http.StatusOK, rec.Code)

	body = decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "heroContent", body["type"])
	assert.Equal(t, payload, body["content"])
}

func TestDataStaleSequenceIs409(t *testing.T) {
	e := newTestEnv(t)

	write := func(seq, value string) int {
		return e.do(t, request{
			method: http.MethodPost,
			path:   "/api/data",
			body:   map[string]interface{}{"type": "scoreboard", "content": value},
			header: map[string]string{handler.WriteSeqHeader: seq},
		}).Code
	}

	assert.Equal(t, http.StatusOK, write("5", "newer"))
	assert.Equal(t, http.StatusConflict, write("4", "older"))
	assert.Equal(t, http.StatusBadRequest, write("abc", "bad"))
}

func TestReservedBridgeTypesRequireAdminToken(t *testing.T) {
	e := newTestEnv(t)

	enable := map[string]interface{}{
		"type":    "launch-settings",
		"content": model.LaunchSettings{IsLaunchMode: true, AutoRedirect: true},
	}

	rec := e.do(t, request{method: http.MethodPost, path: "/api/data", body: enable})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, request{method: http.MethodPost, path: "/api/data", body: enable, token: "ils_forged"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, request{method: http.MethodPost, path: "/api/data", body: map[string]interface{}{
		"type":    "operators",
		"content": []interface{}{},
	}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, request{method: http.MethodGet, path: "/"})
	assert.Equal(t, http.StatusOK, rec.Code, "launch mode must stay off")

	token := e.login(t)
	rec = e.do(t, request{method: http.MethodPost, path: "/api/data", body: enable, token: token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, request{method: http.MethodGet, path: "/"})
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code, "cached settings are dropped on bridge write")
}

func TestMutationsRequireAdminToken(t *testing.T) {
	e := newTestEnv(t)

	for _, req := range []request{
		{method: http.MethodPost, path: "/api/content/operators", body: map[string]string{"id": "x"}},
		{method: http.MethodPatch, path: "/api/content/hero", body: map[string]string{"title": "x"}},
		{method: http.MethodPost, path: "/api/content/reset"},
		{method: http.MethodPut, path: "/api/launch/settings", body: model.LaunchSettings{}},
		{method: http.MethodGet, path: "/api/admin/stats"},
		{method: http.MethodPost, path: "/api/content/operators", token: "ils_forged"},
	} {
		rec := e.do(t, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", req.method, req.path)
	}

	rec := e.do(t, request{method: http.MethodGet, path: "/api/content/operators"})
	assert.Equal(t, http.StatusOK, rec.Code, "reads stay public")
}

func TestLoginFlow(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, request{method: http.MethodPost, path: "/api/admin/login", body: map[string]string{"password": testPassword}})
	assert.Equal(t, http.StatusConflict, rec.Code, "no prompt open yet")

	e.do(t, request{method: http.MethodPost, path: "/api/admin/prompt"})

	rec = e.do(t, request{method: http.MethodPost, path: "/api/admin/login", body: map[string]string{"password": "wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, request{method: http.MethodGet, path: "/api/admin/state"})
	assert.Equal(t, string(gate.PromptOpen), decode(t, rec)["data"].(map[string]interface{})["state"])

	token := e.login(t)

	rec = e.do(t, request{method: http.MethodGet, path: "/api/admin/stats", token: token})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, request{method: http.MethodPost, path: "/api/admin/logout", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(gate.LoggedOut), decode(t, rec)["data"].(map[string]interface{})["state"])

	rec = e.do(t, request{method: http.MethodGet, path: "/api/admin/stats", token: token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "logout revokes the token")
}

func TestHotkeyOpensPrompt(t *testing.T) {
	e := newTestEnv(t)

	events := make([]gate.KeyEvent, 0, len(gate.DefaultSequence))
	for _, k := range gate.DefaultSequence {
		events = append(events, gate.KeyEvent{Key: k, Type: "keydown", Ctrl: true, Alt: true})
	}

	rec := e.do(t, request{method: http.MethodPost, path: "/api/admin/keys", body: map[string]interface{}{"events": events}})
	require.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, true, data["fired"])
	assert.Equal(t, string(gate.PromptOpen), data["state"])
}

func TestContentCRUD(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	op := model.Operator{
		ID:             "nomad",
		Name:           "Nomad",
		Difficulty:     model.DifficultyMedium,
		Faction:        model.FactionAttacker,
		SpecialAbility: model.SpecialAbility{Name: "Airjab"},
		Stats:          model.OperatorStats{Speed: 70, Armor: 40},
	}
	rec := e.do(t, request{method: http.MethodPost, path: "/api/content/operators", body: op, token: token})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	ops := e.store.Operators()
	assert.Equal(t, "nomad", ops[len(ops)-1].ID)

	rec = e.do(t, request{method: http.MethodPatch, path: "/api/content/operators/nomad", body: map[string]string{"role": "Scout"}, token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	ops = e.store.Operators()
	assert.Equal(t, "Scout", ops[len(ops)-1].Role)
	assert.Equal(t, "Nomad", ops[len(ops)-1].Name)

	rec = e.do(t, request{method: http.MethodPatch, path: "/api/content/operators/ghost", body: map[string]string{"role": "x"}, token: token})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, request{method: http.MethodDelete, path: "/api/content/operators/nomad", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	for _, o := range e.store.Operators() {
		assert.NotEqual(t, "nomad", o.ID)
	}

	rec = e.do(t, request{method: http.MethodGet, path: "/api/admin/toasts", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["data"])
}

func TestContentValidation(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	rec := e.do(t, request{method: http.MethodPost, path: "/api/content/operators", body: map[string]string{"id": "x"}, token: token})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")

	rec = e.do(t, request{method: http.MethodPatch, path: "/api/content/maps/harbor", body: map[string]string{"size": "huge"}, token: token})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, request{method: http.MethodPost, path: "/api/content/operators", body: "{broken", token: token})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRewardTierMove(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	reward := model.BattlePassReward{ID: "r1", Level: 5, Name: "Charm", Type: model.RewardCharm, Rarity: model.RarityRare}
	rec := e.do(t, request{method: http.MethodPost, path: "/api/content/rewards", body: reward, token: token})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(t, request{method: http.MethodPatch, path: "/api/content/rewards/r1", body: map[string]interface{}{"level": 10, "isPremium": true}, token: token})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, request{method: http.MethodGet, path: "/api/content/rewards?tier=free"})
	require.Equal(t, http.StatusOK, rec.Code)
	for _, r := range decode(t, rec)["data"].([]interface{}) {
		assert.NotEqual(t, "r1", r.(map[string]interface{})["id"])
	}

	rec = e.do(t, request{method: http.MethodGet, path: "/api/content/rewards?tier=premium"})
	premium := decode(t, rec)["data"].([]interface{})
	last := premium[len(premium)-1].(map[string]interface{})
	assert.Equal(t, "r1", last["id"])
	assert.Equal(t, 10.0, last["level"])
	assert.Equal(t, true, last["isPremium"])

	rec = e.do(t, request{method: http.MethodGet, path: "/api/content/rewards?tier=gold"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublishAndSchema(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	rec := e.do(t, request{method: http.MethodPost, path: "/api/content/publish", token: token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, request{method: http.MethodGet, path: "/api/data?type=operators"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, request{method: http.MethodGet, path: "/api/content/schema/operators"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "array", decode(t, rec)["type"])

	rec = e.do(t, request{method: http.MethodGet, path: "/api/content/schema/unknown"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetAlsoResetsPublishedCopies(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	rec := e.do(t, request{method: http.MethodDelete, path: "/api/content/maps/harbor", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, request{method: http.MethodPost, path: "/api/content/publish", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, e.do(t, request{method: http.MethodGet, path: "/api/data?type=maps"}).Body.String(), `"harbor"`)

	rec = e.do(t, request{method: http.MethodPost, path: "/api/content/reset", token: token})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, request{method: http.MethodGet, path: "/api/data?type=maps"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"harbor"`)

	rec = e.do(t, request{method: http.MethodPost, path: "/api/content/pull", token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content.Defaults().Maps, e.store.Maps())
}

func TestLaunchRedirectAndCountdown(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	rec := e.do(t, request{method: http.MethodGet, path: "/"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "home", rec.Body.String())

	rec = e.do(t, request{method: http.MethodPut, path: "/api/launch/settings", token: token,
		body: model.LaunchSettings{IsLaunchMode: true, AutoRedirect: true}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, request{method: http.MethodGet, path: "/"})
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/launch", rec.Header().Get("Location"))

	rec = e.do(t, request{method: http.MethodGet, path: "/launch"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "launch", rec.Body.String())

	rec = e.do(t, request{method: http.MethodGet, path: "/api/launch/countdown"})
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Contains(t, data, "days")
	assert.Contains(t, data, "launched")
}

func TestHealthEndpoints(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{"/api/health", "/api/ready", "/api/status"} {
		rec := e.do(t, request{method: http.MethodGet, path: path})
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
