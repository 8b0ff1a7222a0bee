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

// Package c manages solutions of the Exercism C track.
//
// 🔧 Commands:
//   - init: enable every test and stub functions the header declares
//   - build, test, clean, memcheck: make targets of the exercise makefile
package c

import (
	"context"

	"github.com/walteh/exman/pkg/track"
)

func init() {
	track.Register(&Track{})
}

var _ track.Track = (*Track)(nil)

// 📚 Track is the C track
type Track struct {
	track.BaseTrack
}

func (t *Track) Name() string { return "c" }

func (t *Track) Commands() []track.Command {
	return []track.Command{
		NewInitCommand(),
		&MakeCommand{name: "build", target: "tests.out"},
		&MakeCommand{name: "test", target: "test"},
		&MakeCommand{name: "clean", target: "clean"},
		&MakeCommand{name: "memcheck", target: "memcheck"},
	}
}

// PostDownload enables the tests and stubs the solution right away.
func (t *Track) PostDownload(ctx context.Context, ex *track.Exercise) error {
	return NewInitCommand().Run(ctx, ex)
}

var _ track.Command = (*MakeCommand)(nil)

// 🛠️ MakeCommand runs a single make target in the exercise directory
type MakeCommand struct {
	track.BaseCommand
	name   string
	target string
}

func (c *MakeCommand) Name() string { return c.name }
func (c *MakeCommand) Help() string { return "run make " + c.target }

func (c *MakeCommand) Run(ctx context.Context, ex *track.Exercise) error {
	return ex.Runner().Run(ctx, ex.Path(), ex.Config().Make, c.target)
}
