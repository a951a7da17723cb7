package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"walletd/internal/events"
	"walletd/internal/networks"
	"walletd/internal/wallet"
	"walletd/pkg/types"
)

type testEnv struct {
	bus     *events.Dispatcher
	session *wallet.Session
	h       http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	bus := events.New(false)
	reg := networks.Builtin()
	sess, err := wallet.NewSession(reg, bus, zerolog.Nop())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	return &testEnv{
		bus:     bus,
		session: sess,
		h:       NewMux(Service{Networks: reg, Bus: bus, Session: sess}),
	}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

func TestNetworksHandler(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/networks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	var body types.NetworksResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body.Networks) != 3 || body.Default != networks.DefaultNetworkID {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestNetworkByID(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/networks/octra-testnet", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var n types.Network
	if err := json.Unmarshal(w.Body.Bytes(), &n); err != nil {
		t.Fatalf("json: %v", err)
	}
	if n.RPCURL != "https://0xio.network" || !n.IsTestnet {
		t.Fatalf("unexpected network: %+v", n)
	}
}

func TestNetworkByID_Unknown(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/networks/no-such-network", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var e types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("json: %v", err)
	}
	if e.Code != http.StatusNotFound || !strings.Contains(e.Error, "no-such-network") {
		t.Fatalf("unexpected error body: %+v", e)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
}

func TestSessionFlow_EmitsEvents(t *testing.T) {
	env := newTestEnv(t)
	var got []events.Category
	l := events.NewListener(func(e events.Event) { got = append(got, e.Category) })
	for _, c := range []events.Category{events.Connect, events.NetworkChanged, events.Disconnect} {
		env.bus.Subscribe(c, l)
	}

	w := env.do(http.MethodPost, "/session/connect", `{"address":"oct1abc"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("connect status=%d body=%s", w.Code, w.Body.String())
	}
	w = env.do(http.MethodPost, "/session/network", `{"network":"custom"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("network status=%d body=%s", w.Code, w.Body.String())
	}
	w = env.do(http.MethodPost, "/session/disconnect", "")
	if w.Code != http.StatusOK {
		t.Fatalf("disconnect status=%d", w.Code)
	}

	want := []events.Category{events.Connect, events.NetworkChanged, events.Disconnect}
	if len(got) != len(want) {
		t.Fatalf("events=%v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events=%v want %v", got, want)
		}
	}

	w = env.do(http.MethodGet, "/session", "")
	var s types.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("json: %v", err)
	}
	if s.Connected || s.Network.ID != "custom" {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestSession_ErrorMapping(t *testing.T) {
	env := newTestEnv(t)
	cases := []struct {
		path, body string
		want       int
	}{
		{"/session/network", `{"network":"nope"}`, http.StatusNotFound},
		{"/session/network", `{"network":""}`, http.StatusBadRequest},
		{"/session/connect", `{"network":"nope","address":"a"}`, http.StatusNotFound},
		{"/session/connect", `{"address":""}`, http.StatusBadRequest},
		{"/session/connect", `{`, http.StatusBadRequest},
	}
	for _, c := range cases {
		if w := env.do(http.MethodPost, c.path, c.body); w.Code != c.want {
			t.Fatalf("%s %s: status=%d want %d", c.path, c.body, w.Code, c.want)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/session/network", bytes.NewBufferString(`{"network":"custom"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	env.h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestEmitAndCategories(t *testing.T) {
	env := newTestEnv(t)
	var payload json.RawMessage
	env.bus.On(events.BalanceChanged, func(e events.Event) {
		payload, _ = events.PayloadAs[json.RawMessage](e)
	})

	w := env.do(http.MethodPost, "/events/balanceChanged", `{"balance":"12.5"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var er types.EmitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Category != "balanceChanged" || er.Listeners != 1 {
		t.Fatalf("unexpected emit response: %+v", er)
	}
	if string(payload) != `{"balance":"12.5"}` {
		t.Fatalf("payload=%s", payload)
	}

	w = env.do(http.MethodGet, "/events/categories", "")
	var cr types.CategoriesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &cr); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(cr.Categories) != 1 || cr.Categories[0].Category != "balanceChanged" || cr.Categories[0].Listeners != 1 {
		t.Fatalf("unexpected categories: %+v", cr)
	}
}

func TestEmit_NoListenersIsOK(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/events/never-used", `null`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestEmit_ArbitraryCategoriesKeepMetricsBounded(t *testing.T) {
	SetEmitRate(1e6, 1000)
	defer SetEmitRate(0, 0)
	reg := prometheus.NewRegistry()
	bus := events.New(false, events.WithMetrics(events.NewMetrics(reg)))
	nets := networks.Builtin()
	sess, err := wallet.NewSession(nets, bus, zerolog.Nop())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	env := &testEnv{bus: bus, session: sess, h: NewMux(Service{Networks: nets, Bus: bus, Session: sess})}

	for i := 0; i < 300; i++ {
		if w := env.do(http.MethodPost, fmt.Sprintf("/events/junk-%d", i), `{}`); w.Code != http.StatusOK {
			t.Fatalf("emit %d status=%d", i, w.Code)
		}
	}
	n, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 1 {
		t.Fatalf("series=%d after 300 distinct categories, want 1", n)
	}
}

func TestEmit_RateLimited(t *testing.T) {
	SetEmitRate(0.001, 1)
	defer SetEmitRate(0, 0)
	env := newTestEnv(t)

	if w := env.do(http.MethodPost, "/events/x", `1`); w.Code != http.StatusOK {
		t.Fatalf("first status=%d", w.Code)
	}
	if w := env.do(http.MethodPost, "/events/x", `2`); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second status=%d", w.Code)
	}
}

func TestEmit_BodyLimit(t *testing.T) {
	SetMaxBodyBytes(8)
	defer SetMaxBodyBytes(0)
	env := newTestEnv(t)
	if w := env.do(http.MethodPost, "/events/x", `{"a":"0123456789"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	SetCORSOptions(true, []string{"*"}, []string{"GET", "POST", "OPTIONS"}, []string{"Content-Type"})
	defer SetCORSOptions(false, nil, nil, nil)
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/networks", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	env.h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("expected CORS header, got none")
	}
}

func TestSwaggerDoc(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/swagger/doc.json", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "walletd API") {
		t.Fatalf("unexpected doc: %.200s", w.Body.String())
	}
}

func TestSwaggerDoc_CoversRoutes(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/swagger/doc.json", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("json: %v", err)
	}

	routes, ok := env.h.(chi.Routes)
	if !ok {
		t.Fatalf("mux is %T, not chi.Routes", env.h)
	}
	undocumented := map[string]bool{"/metrics": true, "/swagger/*": true}
	seen := 0
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		if undocumented[route] {
			return nil
		}
		seen++
		ops, ok := doc.Paths[route]
		if !ok {
			t.Errorf("route %s %s missing from doc", method, route)
			return nil
		}
		if _, ok := ops[strings.ToLower(method)]; !ok {
			t.Errorf("method %s missing for %s in doc", method, route)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if seen != 11 {
		t.Fatalf("walked %d documented routes, want 11", seen)
	}
}
