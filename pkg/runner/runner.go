// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package runner invokes the external tools exman orchestrates: the exercism
// CLI, make, cargo, pytest, the editor and the browser.
package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes external commands
type Runner interface {
	// Run executes name with args in dir, streaming output to the terminal.
	// An empty dir means the current directory.
	Run(ctx context.Context, dir string, name string, args ...string) error

	// Output executes name with args and returns its trimmed stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

var _ Runner = (*Exec)(nil)

// Exec implements Runner with os/exec
type Exec struct {
	stdout io.Writer
	stderr io.Writer
}

// 🏗️ NewExec creates a runner attached to the process stdout and stderr
func NewExec() *Exec {
	return &Exec{stdout: os.Stdout, stderr: os.Stderr}
}

// NewExecWithOutput creates a runner writing command output to the given writers
func NewExecWithOutput(stdout, stderr io.Writer) *Exec {
	return &Exec{stdout: stdout, stderr: stderr}
}

func (e *Exec) Run(ctx context.Context, dir string, name string, args ...string) error {
	zerolog.Ctx(ctx).Debug().
		Str("dir", dir).
		Str("cmd", name).
		Strs("args", args).
		Msg("running command")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	if err := cmd.Run(); err != nil {
		return errors.Errorf("running %s: %w", strings.Join(append([]string{name}, args...), " "), err)
	}
	return nil
}

func (e *Exec) Output(ctx context.Context, name string, args ...string) (string, error) {
	zerolog.Ctx(ctx).Debug().
		Str("cmd", name).
		Strs("args", args).
		Msg("capturing command output")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", errors.Errorf("running %s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
		}
		return "", errors.Errorf("running %s: %w", name, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
