package metrics

import (
	"net/http"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	taskRunning = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "devrun",
		Name:      "task_running",
		Help:      "Whether the task's child process is alive (1=running, 0=exited).",
	}, []string{"task"})

	taskExits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devrun",
		Name:      "task_exits_total",
		Help:      "Child process exits per task, labelled by consolidated exit code.",
	}, []string{"task", "code"})

	spawnFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devrun",
		Name:      "spawn_failures_total",
		Help:      "Tasks whose child process could not be started or waited on.",
	}, []string{"task"})

	shutdowns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devrun",
		Name:      "shutdowns_total",
		Help:      "Shutdown sequences started, labelled by trigger.",
	}, []string{"reason"})

	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "devrun",
		Name:      "build_info",
		Help:      "Build metadata for the running devrun binary.",
	}, []string{"go_version", "vcs", "vcs_revision", "vcs_time", "vcs_modified"})

	buildInfoOnce sync.Once
)

func init() {
	registry.MustRegister(taskRunning, taskExits, spawnFailures, shutdowns, buildInfo)
}

// Registry returns the Prometheus registry containing all devrun metrics.
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// SetTaskRunning records whether the task's child process is alive.
func SetTaskRunning(task string, running bool) {
	if task == "" {
		return
	}
	value := 0.0
	if running {
		value = 1.0
	}
	taskRunning.WithLabelValues(task).Set(value)
}

// ObserveTaskExit counts a child exit with its consolidated exit code.
func ObserveTaskExit(task string, code int) {
	if task == "" {
		return
	}
	taskExits.WithLabelValues(task, strconv.Itoa(code)).Inc()
}

// IncrementSpawnFailure counts a task that failed to start.
func IncrementSpawnFailure(task string) {
	label := task
	if label == "" {
		label = "unknown"
	}
	spawnFailures.WithLabelValues(label).Inc()
}

// ObserveShutdown counts a shutdown sequence and what triggered it.
func ObserveShutdown(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	shutdowns.WithLabelValues(reason).Inc()
}

// EmitBuildInfo publishes build metadata about the running binary.
func EmitBuildInfo() {
	buildInfoOnce.Do(func() {
		labels := prometheus.Labels{
			"go_version":   runtime.Version(),
			"vcs":          "",
			"vcs_revision": "",
			"vcs_time":     "",
			"vcs_modified": "",
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.GoVersion != "" {
				labels["go_version"] = info.GoVersion
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs":
					labels["vcs"] = setting.Value
				case "vcs.revision":
					labels["vcs_revision"] = setting.Value
				case "vcs.time":
					labels["vcs_time"] = setting.Value
				case "vcs.modified":
					labels["vcs_modified"] = setting.Value
				}
			}
		}
		buildInfo.With(labels).Set(1)
	})
}

// ResetTask clears every series recorded for a task.
func ResetTask(task string) {
	if task == "" {
		return
	}
	taskRunning.DeleteLabelValues(task)
	taskExits.DeletePartialMatch(prometheus.Labels{"task": task})
	spawnFailures.DeleteLabelValues(task)
}
