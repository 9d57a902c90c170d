package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Result of one command execution.
type Result struct {
	Stdout     []byte
	Stderr     []byte
	ExitCode   int
	DurationMS int64
}

// Runner executes external commands without a shell.
type Runner struct {
	// Env is appended to the current process environment when non-empty.
	Env []string
}

func NewRunner() *Runner {
	return &Runner{}
}

// Run executes name with args. A non-zero exit is reported via Result.ExitCode,
// not as an error; errors are reserved for commands that could not run at all.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout:     stdout.Bytes(),
		Stderr:     stderr.Bytes(),
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		// ambil exit code
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			res.ExitCode = ee.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("run %s: %w", name, err)
	}
	return res, nil
}
