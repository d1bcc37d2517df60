// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/terraflow/terraflow/internal/log"
)

// execFunc launches a blocking subprocess with the given directory and
// flattened environment, inheriting this process's stdio.
type execFunc func(ctx context.Context, dir string, env []string, name string, args ...string) error

// ExecError carries the failed argv so subprocess failures surface with
// their command context.
type ExecError struct {
	Argv []string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("command failed: %s: %v", strings.Join(e.Argv, " "), e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

func runSubprocess(ctx context.Context, dir string, env []string, name string, args ...string) error {
	log.Debugf("exec: %s %s (dir=%s)", name, strings.Join(args, " "), dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return &ExecError{Argv: append([]string{name}, args...), Err: err}
	}
	return nil
}
