package runtime

import "testing"

func TestExitStatusExitCode(t *testing.T) {
	tests := []struct {
		name   string
		status ExitStatus
		want   int
	}{
		{name: "clean exit", status: ExitStatus{Exited: true, Code: 0}, want: 0},
		{name: "numeric failure", status: ExitStatus{Exited: true, Code: 3}, want: 3},
		{name: "signalled", status: ExitStatus{Signal: "terminated"}, want: 1},
		{name: "neither code nor signal", status: ExitStatus{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.want {
				t.Fatalf("expected exit code %d, got %d", tt.want, got)
			}
		})
	}
}

func TestStartSpecArgv(t *testing.T) {
	spec := StartSpec{Command: "npm", Args: []string{"run", "dev:watch"}}
	argv := spec.Argv()
	if len(argv) != 3 || argv[0] != "npm" || argv[1] != "run" || argv[2] != "dev:watch" {
		t.Fatalf("unexpected argv %v", argv)
	}
	if len(spec.Args) != 2 {
		t.Fatalf("argv mutated spec args: %v", spec.Args)
	}
}
