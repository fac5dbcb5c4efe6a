package status

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hls-fetcher/internal/platform/metrics"
	"hls-fetcher/internal/progress"
)

func newTestServer(t *testing.T, counter *progress.Counter) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New("127.0.0.1:0", log, metrics.New(), counter)
	srv := httptest.NewServer(s.srv.Handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestProgressEndpoint(t *testing.T) {
	var counter progress.Counter
	counter.SetTotal(5)
	counter.Add(2)

	srv := newTestServer(t, &counter)

	resp, err := http.Get(srv.URL + "/progress")
	if err != nil {
		t.Fatalf("GET /progress: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var snap snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if snap.Done != 2 || snap.Total != 5 {
		t.Errorf("snapshot = %+v, want done=2 total=5", snap)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	var counter progress.Counter
	srv := newTestServer(t, &counter)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "hls_segments_fetched_total") {
		t.Error("expected hls_segments_fetched_total in metrics exposition")
	}
}
