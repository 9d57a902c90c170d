package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/bryanwahyu/openai-status/internal/infra/executor/process"
)

const (
	DefaultBinary        = "az"
	DefaultResourceGroup = "rg-ai-openai"
)

// Executor runs one external command.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (process.Result, error)
}

// ExitError is a command that ran but exited non-zero.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return fmt.Sprintf("exit status %d: %s", e.Code, e.Stderr)
}

// CLI talks to the Azure management plane through the az command line.
// It implements accounts.Directory and deployments.Catalog.
type CLI struct {
	Exec          Executor
	Binary        string
	ResourceGroup string
	Subscription  string
	Log           zerolog.Logger
}

func NewCLI(exec Executor, binary, resourceGroup, subscription string, log zerolog.Logger) *CLI {
	if binary == "" {
		binary = DefaultBinary
	}
	if resourceGroup == "" {
		resourceGroup = DefaultResourceGroup
	}
	return &CLI{Exec: exec, Binary: binary, ResourceGroup: resourceGroup, Subscription: subscription, Log: log}
}

// Check implements a health check: the az binary must be resolvable.
func (c *CLI) Check(context.Context) error {
	_, err := exec.LookPath(c.Binary)
	return err
}

// run executes az and returns stdout, or an error for a failed start or non-zero exit.
func (c *CLI) run(ctx context.Context, args ...string) ([]byte, error) {
	res, err := c.Exec.Run(ctx, c.Binary, args...)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, &ExitError{Code: res.ExitCode, Stderr: string(bytes.TrimSpace(res.Stderr))}
	}
	return res.Stdout, nil
}

// query runs a read command with JSON output and decodes it into out.
func (c *CLI) query(ctx context.Context, out any, args ...string) error {
	args = append(args, "--output", "json")
	if c.Subscription != "" {
		args = append(args, "--subscription", c.Subscription)
	}
	data, err := c.run(ctx, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("malformed json: %w", err)
	}
	return nil
}
