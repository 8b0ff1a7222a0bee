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

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/walteh/exman/cmd/exman/opts"
	"github.com/walteh/exman/pkg/runner"

	_ "github.com/walteh/exman/pkg/track/c"
	_ "github.com/walteh/exman/pkg/track/python"
	_ "github.com/walteh/exman/pkg/track/rust"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, runner.NewExec()); err != nil {
		os.Exit(1)
	}
}

// run executes exman with args, writing console output to stdout and logs
// and errors to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, r runner.Runner) error {
	o := &opts.RootOpts{
		Runner: r,
		Stdout: stdout,
		Stderr: stderr,
	}

	root, err := newRootCmd(o, parseTrack(args))
	if err != nil {
		fmt.Fprintf(stderr, "❌ %v\n", err)
		return err
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if o.Console != nil {
			o.Console.Error(err.Error())
		} else {
			fmt.Fprintf(stderr, "❌ %v\n", err)
		}
		return err
	}
	return nil
}
