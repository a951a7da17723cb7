package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"walletd/internal/config"
	"walletd/internal/events"
	"walletd/internal/httpapi"
	"walletd/internal/logging"
	"walletd/internal/networks"
	"walletd/internal/wallet"
)

type stack struct {
	srv  *httptest.Server
	bus  *events.Dispatcher
	reg  *networks.Registry
	sess *wallet.Session
}

// writeConfig writes a walletd config file and returns its path.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write config %s: %v", p, err)
	}
	return p
}

// newStack wires the same components as `walletd serve` behind an httptest server.
func newStack(t *testing.T, cfg config.Config) *stack {
	t.Helper()
	cfg.ApplyDefaults()
	log := logging.NewWithWriter(logging.Options{Level: "off"}, io.Discard)
	reg, err := networks.NewRegistry(cfg.DefaultNetwork, cfg.Networks...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	bus := events.New(cfg.Debug, events.WithLogger(log), events.WithMetrics(events.NewMetrics(prometheus.NewRegistry())))
	sess, err := wallet.NewSession(reg, bus, log)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetEmitRate(cfg.EmitRatePerSec, cfg.EmitBurst)
	httpapi.SetStreamBuffer(cfg.StreamBuffer)
	t.Cleanup(func() {
		httpapi.SetMaxBodyBytes(0)
		httpapi.SetEmitRate(0, 0)
		httpapi.SetStreamBuffer(0)
	})
	srv := httptest.NewServer(httpapi.NewMux(httpapi.Service{Networks: reg, Bus: bus, Session: sess}))
	t.Cleanup(srv.Close)
	return &stack{srv: srv, bus: bus, reg: reg, sess: sess}
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func postJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}
