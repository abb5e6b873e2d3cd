package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkeye/roomrelay/internal/app"
	"github.com/dkeye/roomrelay/internal/app/orch"
	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
	"github.com/dkeye/roomrelay/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSender struct{}

func (nopSender) SendTo(domain.PeerID, core.Frame) error { return nil }

func setup(t *testing.T) (http.Handler, *orch.Orchestrator) {
	t.Helper()
	promReg := prometheus.NewRegistry()
	m := metrics.New(promReg)
	reg := app.NewRegistry(core.NewCodeGenerator(5))
	m.TrackState(reg.RoomCount, reg.SessionCount)
	o := orch.New(reg, app.NewDispatcher(reg, nopSender{}), app.SimplePolicy{}, m)
	return SetupRouter("test", o, metrics.Handler(promReg)), o
}

func do(t *testing.T, h http.Handler, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	var body map[string]any
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestRouter_Health(t *testing.T) {
	h, o := setup(t)
	_, err := o.CreateRoom("a")
	require.NoError(t, err)

	w, body := do(t, h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.InDelta(t, 1, body["rooms"], 0)
	assert.InDelta(t, 1, body["sessions"], 0)
}

func TestRouter_Rooms(t *testing.T) {
	h, o := setup(t)
	code, err := o.CreateRoom("10.0.0.1:4000")
	require.NoError(t, err)
	require.NoError(t, o.JoinRoom("10.0.0.2:4000", code))

	w, body := do(t, h, http.MethodGet, "/api/rooms")
	require.Equal(t, http.StatusOK, w.Code)
	rooms := body["rooms"].([]any)
	require.Len(t, rooms, 1)
	assert.Equal(t, string(code), rooms[0].(map[string]any)["code"])
	assert.InDelta(t, 2, rooms[0].(map[string]any)["member_count"], 0)

	w, body = do(t, h, http.MethodGet, "/api/rooms/"+string(code))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["members"].([]any), 2)

	w, _ = do(t, h, http.MethodGet, "/api/rooms/NOPE1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_EvictRoom(t *testing.T) {
	h, o := setup(t)
	code, err := o.CreateRoom("a")
	require.NoError(t, err)

	w, body := do(t, h, http.MethodDelete, "/api/rooms/"+string(code))
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 1, body["evicted"], 0)
	assert.Empty(t, o.Rooms())

	w, _ = do(t, h, http.MethodDelete, "/api/rooms/"+string(code))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	h, o := setup(t)
	_, err := o.CreateRoom("a")
	require.NoError(t, err)

	w, _ := do(t, h, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "roomrelay_rooms_active 1")
}
