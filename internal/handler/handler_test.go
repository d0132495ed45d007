package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/stackgarden/stackgarden/internal/agent"
	"github.com/stackgarden/stackgarden/internal/catalog"
	"github.com/stackgarden/stackgarden/internal/domain"
	"github.com/stackgarden/stackgarden/internal/event"
	"github.com/stackgarden/stackgarden/internal/session"
	"github.com/stackgarden/stackgarden/internal/store"
)

// testEnv wires a real service over the in-memory store so handler tests
// exercise the full decode/validate/respond path.
type testEnv struct {
	svc   session.Service
	clock *clockwork.FakeClock
	store *store.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.March, 12, 15, 0, 0, 0, time.Local))
	st := store.NewMemoryStore(clock)
	cat := catalog.New([]domain.CatalogItem{
		{ID: "static_site", Name: "Static Site", Category: domain.CategoryEdge, Cost: 50},
		{ID: "web_server", Name: "Web Server", Category: domain.CategoryCompute, Cost: 100},
	})
	dispatcher := agent.NewDispatcher(agent.NewScriptedClient(), agent.NewRateLimiter(100, clock), agent.DefaultCallTimeout)
	svc := session.NewService(cat, st, event.NewMemoryBus(), dispatcher, clock)
	return &testEnv{svc: svc, clock: clock, store: st}
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func getWithQuery(t *testing.T, h http.HandlerFunc, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
