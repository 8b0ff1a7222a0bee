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

// Package rust manages solutions of the Exercism Rust track. All solutions
// share one cargo workspace rooted next to the track directory:
//
//	<workspace>/
//	├── Cargo.toml              workspace members: rust/<exercise>
//	├── .vscode/launch.json     generated from launch.json.template
//	└── rust/
//	    └── <exercise>/
//	        ├── Cargo.toml      package.name = <exercise>
//	        └── src/lib.rs      crate doc and lints prepended
package rust

import (
	"context"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exman/pkg/track"
)

func init() {
	track.Register(&Track{})
}

var _ track.Track = (*Track)(nil)

// 🦀 Track is the Rust track
type Track struct {
	track.BaseTrack
}

func (t *Track) Name() string { return "rust" }

func (t *Track) Commands() []track.Command {
	return []track.Command{
		NewInitCommand(),
		NewCargoCommand("build", true),
		NewCargoCommand("check", true),
		NewCargoCommand("test", true, "--", "--include-ignored"),
		NewCargoCommand("clean", false),
		NewCargoCommand("doc", true, "--open"),
	}
}

// PostDownload adds the solution to the cargo workspace.
func (t *Track) PostDownload(ctx context.Context, ex *track.Exercise) error {
	return NewInitCommand().Run(ctx, ex)
}

var (
	_ track.Command   = (*CargoCommand)(nil)
	_ track.FlagAdder = (*CargoCommand)(nil)
)

// 📦 CargoCommand runs a cargo subcommand for the exercise package
type CargoCommand struct {
	track.BaseCommand

	name            string
	args            []string
	supportFeatures bool

	features    string
	allFeatures bool
}

// 🏭 NewCargoCommand creates a cargo command passing args after the package
// and feature flags.
func NewCargoCommand(name string, supportFeatures bool, args ...string) *CargoCommand {
	return &CargoCommand{name: name, args: args, supportFeatures: supportFeatures}
}

func (c *CargoCommand) Name() string { return c.name }
func (c *CargoCommand) Help() string { return "run cargo " + c.name }

func (c *CargoCommand) AddFlags(cmd *cobra.Command) {
	if !c.supportFeatures {
		return
	}
	cmd.Flags().StringVar(&c.features, "features", "", "space or comma separated list of features to enable")
	cmd.Flags().BoolVar(&c.allFeatures, "all-features", false, "enable all features")
}

func (c *CargoCommand) Run(ctx context.Context, ex *track.Exercise) error {
	if err := NewInitCommand().Run(ctx, ex); err != nil {
		return err
	}

	args := []string{c.name, "--package", ex.Name()}
	if c.features != "" {
		args = append(args, "--features", c.features)
	}
	if c.allFeatures {
		args = append(args, "--all-features")
	}
	args = append(args, c.args...)

	if err := ex.Runner().Run(ctx, ex.Path(), ex.Config().Cargo, args...); err != nil {
		return errors.Errorf("running cargo %s: %w", c.name, err)
	}
	return nil
}
