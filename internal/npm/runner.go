// Package npm drives the external package manager (npm, pnpm, or yarn)
// through blocking subprocess invocations.
package npm

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// CmdSpec describes a single package-manager invocation.
type CmdSpec struct {
	// Dir is the working directory for the subprocess. It is always set
	// explicitly; the generator never changes its own working directory.
	Dir string

	// Name is the binary to invoke ("npm", "npx", ...).
	Name string

	// Args are the command arguments.
	Args []string

	// Inherit attaches the operator's terminal streams to the subprocess.
	// When false, combined output is captured and returned.
	Inherit bool
}

// RunFunc executes a command and returns its captured output (empty when
// Inherit is set). Tests replace it with a fake to avoid requiring a real
// package manager.
type RunFunc func(ctx context.Context, spec CmdSpec) (string, error)

// defaultRun is the production RunFunc backed by os/exec.
func defaultRun(ctx context.Context, spec CmdSpec) (string, error) {
	bin, err := exec.LookPath(spec.Name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", spec.Name, err)
	}

	cmd := exec.CommandContext(ctx, bin, spec.Args...)
	cmd.Dir = spec.Dir

	if spec.Inherit {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return "", cmd.Run()
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return buf.String(), fmt.Errorf("%s %v: %w", spec.Name, spec.Args, err)
	}
	return buf.String(), nil
}
