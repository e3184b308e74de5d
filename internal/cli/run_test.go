package cli

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Paintersrp/devrun/internal/metrics"
)

func TestServeMetricsExposesRegistry(t *testing.T) {
	metrics.EmitBuildInfo()

	addr, stop, err := serveMetrics("127.0.0.1:0")
	if err != nil {
		t.Fatalf("serve metrics: %v", err)
	}
	defer stop()

	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "devrun_build_info{") {
		t.Fatalf("expected build info in metrics output:\n%s", body)
	}
}

func TestServeMetricsRejectsBadAddress(t *testing.T) {
	if _, _, err := serveMetrics("not-an-address"); err == nil {
		t.Fatalf("expected listen error")
	}
}
