package engine

import (
	"os"
	"os/exec"
	"path/filepath"
	stdruntime "runtime"

	"github.com/Paintersrp/devrun/internal/runtime"
)

const (
	// EnvPackageManagerPath is set by npm (and compatible managers) to the
	// script implementing the running package manager.
	EnvPackageManagerPath = "npm_execpath"
	// EnvRuntimePath is set alongside EnvPackageManagerPath to the node
	// binary executing it.
	EnvRuntimePath = "npm_node_execpath"

	DefaultPackageManager = "npm"
	defaultRuntimeBinary  = "node"
)

// LaunchEnv is the slice of host state that decides how a task is invoked.
type LaunchEnv struct {
	PackageManagerPath string
	RuntimePath        string
	PackageManager     string
	GOOS               string
}

// LaunchEnvFromOS snapshots the launch environment of the current process.
// The runtime path falls back to the first node binary on PATH.
func LaunchEnvFromOS(packageManager string) LaunchEnv {
	env := LaunchEnv{
		PackageManagerPath: os.Getenv(EnvPackageManagerPath),
		RuntimePath:        os.Getenv(EnvRuntimePath),
		PackageManager:     packageManager,
		GOOS:               stdruntime.GOOS,
	}
	if env.RuntimePath == "" {
		if path, err := exec.LookPath(defaultRuntimeBinary); err == nil {
			env.RuntimePath = path
		}
	}
	return env
}

// ResolveCommand returns the command that runs task through the package
// manager's "run" subcommand. When the package manager's own script path is
// known it is executed by the runtime directly; otherwise the platform's
// package-manager binary is invoked by name.
func ResolveCommand(task string, env LaunchEnv) runtime.StartSpec {
	if env.PackageManagerPath != "" {
		runtimePath := env.RuntimePath
		if runtimePath == "" {
			runtimePath = defaultRuntimeBinary
		}
		return runtime.StartSpec{
			Name:    task,
			Command: runtimePath,
			Args:    []string{env.PackageManagerPath, "run", task},
		}
	}

	return runtime.StartSpec{
		Name:    task,
		Command: packageManagerBinary(env.PackageManager, env.GOOS),
		Args:    []string{"run", task},
	}
}

func packageManagerBinary(name, goos string) string {
	if name == "" {
		name = DefaultPackageManager
	}
	if goos == "windows" && filepath.Ext(name) == "" {
		return name + ".cmd"
	}
	return name
}
