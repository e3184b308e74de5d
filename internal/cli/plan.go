package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/devrun/internal/cliutil"
	"github.com/Paintersrp/devrun/internal/engine"
)

type plannedTask struct {
	Task    string   `json:"task" yaml:"task"`
	Command string   `json:"command" yaml:"command"`
	Args    []string `json:"args" yaml:"args"`
	Line    string   `json:"line" yaml:"line"`
}

func newPlanCmd(ctx *context) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the commands devrun would launch without running them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			env := engine.LaunchEnvFromOS(cfg.PackageManager)
			plan := make([]plannedTask, 0, len(cfg.Tasks))
			for _, task := range cfg.Tasks {
				spec := engine.ResolveCommand(task, env)
				plan = append(plan, plannedTask{
					Task:    task,
					Command: spec.Command,
					Args:    spec.Args,
					Line:    cliutil.FormatCommand(spec.Argv()),
				})
			}
			return writePlan(cmd.OutOrStdout(), output, plan)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, yaml or json")
	return cmd
}

func writePlan(w io.Writer, format string, plan []plannedTask) error {
	switch format {
	case "text", "":
		for i, task := range plan {
			fmt.Fprintf(w, "%d. %s: %s\n", i+1, task.Task, task.Line)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want text, yaml or json)", format)
	}
}
