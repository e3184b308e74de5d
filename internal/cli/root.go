package cli

import (
	stdcontext "context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Paintersrp/devrun/internal/config"
	"github.com/Paintersrp/devrun/internal/engine"
	"github.com/Paintersrp/devrun/internal/runtime"
	"github.com/Paintersrp/devrun/internal/runtime/process"
)

func NewRootCmd() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *context) {
	ctx := &context{newRuntime: process.New}

	root := &cobra.Command{
		Use:   "devrun",
		Short: "Run the dev watch and serve tasks together",
		Long: "devrun launches each configured package-manager task as a child process, " +
			"shares the terminal with them and stops all of them as soon as one exits " +
			"or devrun is interrupted.",
		Version: buildVersion(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSupervisor(cmd, ctx)
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVarP(&ctx.tasks, "task", "t", config.DefaultTasks, "Package script to run (repeatable, in launch order)")
	flags.DurationVar(&ctx.gracePeriod, "grace-period", engine.DefaultGracePeriod, "Delay between stopping tasks and exiting")
	flags.StringVar(&ctx.packageManager, "package-manager", engine.DefaultPackageManager, "Package manager binary used when npm_execpath is unset")
	flags.BoolVarP(&ctx.verbose, "verbose", "v", false, "Print task lifecycle lines")
	flags.BoolVar(&ctx.noColor, "no-color", false, "Disable coloured diagnostics")
	flags.StringVar(&ctx.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	flags.BoolVar(&ctx.skipEnv, "ignore-env", false, "Ignore DEVRUN_* environment variables")

	root.AddCommand(newPlanCmd(ctx))

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, ctx
}

// Execute runs the CLI entrypoint and exits with the supervisor's
// consolidated exit code.
func Execute() {
	root := NewRootCmd()

	if err := root.ExecuteContext(stdcontext.Background()); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

// ExitError carries a non-zero supervisor exit code out of cobra.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

type context struct {
	tasks          []string
	gracePeriod    time.Duration
	packageManager string
	verbose        bool
	noColor        bool
	metricsAddr    string
	skipEnv        bool

	newRuntime func() runtime.Runtime
}

// loadConfig layers explicitly set flags over defaults and DEVRUN_*
// variables.
func (c *context) loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	res, err := config.Load(config.LoadOptions{SkipEnv: c.skipEnv})
	if err != nil {
		return nil, err
	}
	cfg := res.Config

	if flags.Changed("task") {
		cfg.Tasks = append([]string(nil), c.tasks...)
	}
	if flags.Changed("grace-period") {
		cfg.GracePeriod = c.gracePeriod
	}
	if flags.Changed("package-manager") {
		cfg.PackageManager = c.packageManager
	}
	if flags.Changed("verbose") {
		cfg.Verbose = c.verbose
	}
	if flags.Changed("no-color") {
		cfg.NoColor = c.noColor
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = c.metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "devel"
	}
	return info.Main.Version
}
