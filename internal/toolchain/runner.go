package toolchain

import (
	"context"
	"os/exec"
)

// Runner abstracts toolchain process execution. The production runner shells
// out to the binary; tests substitute canned output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewRunner returns the exec-backed production runner.
func NewRunner() Runner {
	return execRunner{}
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}
