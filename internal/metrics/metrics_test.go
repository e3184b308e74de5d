package metrics_test

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Paintersrp/devrun/internal/metrics"
)

func scrape(t *testing.T) string {
	t.Helper()
	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("unexpected status code from metrics handler: %d", rec.Code)
	}
	return rec.Body.String()
}

func TestRegistryExposesMetrics(t *testing.T) {
	task := "metrics_test_task"
	t.Cleanup(func() { metrics.ResetTask(task) })

	metrics.EmitBuildInfo()
	metrics.SetTaskRunning(task, true)
	metrics.ObserveTaskExit(task, 3)
	metrics.ObserveTaskExit(task, 3)
	metrics.IncrementSpawnFailure(task)
	metrics.ObserveShutdown("child_exit")

	body := scrape(t)

	for _, line := range []string{
		fmt.Sprintf("devrun_task_running{task=\"%s\"} 1", task),
		fmt.Sprintf("devrun_task_exits_total{code=\"3\",task=\"%s\"} 2", task),
		fmt.Sprintf("devrun_spawn_failures_total{task=\"%s\"} 1", task),
	} {
		if !strings.Contains(body, line) {
			t.Fatalf("expected metric line %q in body:\n%s", line, body)
		}
	}
	if !strings.Contains(body, "devrun_shutdowns_total{reason=\"child_exit\"}") {
		t.Fatalf("expected shutdown counter in body:\n%s", body)
	}
	if !strings.Contains(body, "devrun_build_info{") {
		t.Fatalf("expected build info metric in body:\n%s", body)
	}
	if !strings.Contains(body, "go_version=") {
		t.Fatalf("expected go_version label on build info metric:\n%s", body)
	}
}

func TestResetTaskClearsSeries(t *testing.T) {
	task := "metrics_reset_task"
	metrics.SetTaskRunning(task, false)
	metrics.ObserveTaskExit(task, 0)

	metrics.ResetTask(task)

	if body := scrape(t); strings.Contains(body, task) {
		t.Fatalf("expected %s series to be removed:\n%s", task, body)
	}
}
