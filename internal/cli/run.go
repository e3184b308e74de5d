package cli

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/devrun/internal/cliutil"
	"github.com/Paintersrp/devrun/internal/engine"
	"github.com/Paintersrp/devrun/internal/metrics"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func runSupervisor(cmd *cobra.Command, ctx *context) error {
	cfg, err := ctx.loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	reporter := cliutil.NewReporter(cmd.ErrOrStderr(), cfg.Verbose, cliutil.ColorEnabled(os.Stderr, cfg.NoColor))

	if cfg.MetricsAddr != "" {
		addr, stop, err := serveMetrics(cfg.MetricsAddr)
		if err != nil {
			return err
		}
		defer stop()
		reporter.Debugf("serving metrics on http://%s/metrics", addr)
	}

	signals := make(chan os.Signal, len(shutdownSignals))
	signal.Notify(signals, shutdownSignals...)
	defer signal.Stop(signals)

	sup := engine.New(ctx.newRuntime(), cfg.Tasks,
		engine.WithGracePeriod(cfg.GracePeriod),
		engine.WithReporter(reporter),
		engine.WithLaunchEnv(engine.LaunchEnvFromOS(cfg.PackageManager)),
	)

	if code := sup.Run(cmd.Context(), signals); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// serveMetrics exposes the metrics registry on addr and returns the bound
// address.
func serveMetrics(addr string) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listen for metrics on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "error: metrics server: %v\n", err)
		}
	}()

	return ln.Addr().String(), func() { _ = srv.Close() }, nil
}
