package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segview/numguess/model"
)

func testServer(t *testing.T) *gameServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gs := newGameServer(fastConfig(), logger, prometheus.NewRegistry())
	t.Cleanup(func() {
		for id := range gs.registry.sessions {
			gs.registry.remove(id)
		}
	})
	return gs
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, gs *gameServer) model.SessionState {
	t.Helper()
	rec := doJSON(t, gs.router(), http.MethodPost, "/api/session/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.NewSessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Session.ID)
	return resp.Session
}

func TestHandleNewSession(t *testing.T) {
	gs := testServer(t)
	session := createSession(t, gs)
	assert.Equal(t, "idle", session.State)
	assert.Equal(t, uint8(1), session.Guess)
	assert.Zero(t, session.Attempts)
	assert.Zero(t, session.Target, "target must not leak at creation")
	assert.Equal(t, 1, gs.registry.count())
}

func TestHandleGetSession(t *testing.T) {
	gs := testServer(t)
	router := gs.router()
	session := createSession(t, gs)

	rec := doJSON(t, router, http.MethodGet, "/api/session/"+session.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.SessionState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, session.ID, got.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/session/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleButton(t *testing.T) {
	gs := testServer(t)
	router := gs.router()
	session := createSession(t, gs)

	rec := doJSON(t, router, http.MethodPost, "/api/session/"+session.ID+"/button",
		model.ButtonEvent{Button: model.ButtonStart, Action: model.ActionTap})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.ButtonResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Session)

	// The session loop runs on wall time; the tap lands within a few sim
	// intervals.
	s, ok := gs.registry.get(session.ID)
	require.True(t, ok)
	s.advance(settle)
	assert.Equal(t, "playing", s.snapshot().State)
}

func TestHandleButtonRejectsUnknown(t *testing.T) {
	gs := testServer(t)
	router := gs.router()
	session := createSession(t, gs)

	rec := doJSON(t, router, http.MethodPost, "/api/session/"+session.ID+"/button",
		model.ButtonEvent{Button: "detonate", Action: model.ActionTap})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/session/nope/button",
		model.ButtonEvent{Button: model.ButtonStart, Action: model.ActionTap})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleReset(t *testing.T) {
	gs := testServer(t)
	router := gs.router()
	session := createSession(t, gs)

	s, ok := gs.registry.get(session.ID)
	require.True(t, ok)
	s.apply(model.ButtonEvent{Button: model.ButtonStart, Action: model.ActionTap})
	s.advance(settle)
	require.Equal(t, "playing", s.snapshot().State)

	rec := doJSON(t, router, http.MethodPost, "/api/session/"+session.ID+"/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	s.advance(1)
	assert.Equal(t, "idle", s.snapshot().State)
}

func TestHandleDeleteSession(t *testing.T) {
	gs := testServer(t)
	router := gs.router()
	session := createSession(t, gs)

	rec := doJSON(t, router, http.MethodDelete, "/api/session/"+session.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, gs.registry.count())

	rec = doJSON(t, router, http.MethodDelete, "/api/session/"+session.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	gs := testServer(t)
	rec := doJSON(t, gs.router(), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("NUMGUESS_ADDR", ":9999")
	t.Setenv("NUMGUESS_TICK_HZ", "2000")
	t.Setenv("NUMGUESS_DEBOUNCE", "5ms")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 2000, cfg.TickHz)
	assert.Equal(t, uint32(10), cfg.simConfig().Timing().DebounceTicks)

	t.Setenv("NUMGUESS_TICK_HZ", "0")
	_, err = loadConfig()
	assert.Error(t, err)
}
