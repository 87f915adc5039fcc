// (C) Copyright 2017 Hewlett Packard Enterprise Development LP
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package execcmd abstracts running the external lctl/lnetctl commands a
// scrape needs, generalizing the teacher's lctl.go real-command-vs-fixture
// toggle (LctlCommandMode) into one Runner interface with a real and a
// mock implementation.
package execcmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Runner runs an external command and either returns its complete stdout
// (Run) or a live handle onto it (Stream), honoring ctx cancellation with
// kill_on_drop semantics (§4.8): a cancelled ctx kills the child process
// rather than leaving it to exit on its own. Only the direct child is
// signalled; processes it started itself are not.
type Runner interface {
	// Run executes name with args to completion and returns its stdout. A
	// non-zero exit is reported as an error carrying stderr (§4.11).
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// Stream starts name with args and returns a handle onto its stdout.
	// The caller must Close the returned ReadCloser; doing so while the
	// process is still running kills it.
	Stream(ctx context.Context, name string, args ...string) (io.ReadCloser, error)
}

// RealRunner runs commands via os/exec.CommandContext, so ctx cancellation
// (HTTP client disconnect, admission timeout) terminates the child (§4.8,
// §5: "Cancellation").
type RealRunner struct{}

var _ Runner = RealRunner{}

// ExitError wraps a non-zero exit status with the stderr the child wrote,
// for the diagnostic scrape-failure body (§4.11, §7).
type ExitError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s %v: %v: %s", e.Name, e.Args, e.Err, e.Stderr)
}

func (e *ExitError) Unwrap() error { return e.Err }

func (RealRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, &ExitError{Name: name, Args: args, Stderr: stderr.String(), Err: err}
	}
	return out, nil
}

func (RealRunner) Stream(ctx context.Context, name string, args ...string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &cmdStream{cmd: cmd, stdout: stdout}, nil
}

// cmdStream closes the process's stdout pipe, kills the child if it is still
// running, and waits for it to exit when the caller is done reading (or
// gives up early).
type cmdStream struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

func (c *cmdStream) Read(p []byte) (int, error) { return c.stdout.Read(p) }

func (c *cmdStream) Close() error {
	closeErr := c.stdout.Close()
	if c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}
	waitErr := c.cmd.Wait()
	if closeErr != nil {
		return closeErr
	}
	return waitErr
}
