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

// Package track defines exercises, the language tracks that manage them and
// the commands a track offers.
package track

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrUserSolution is returned when an operation is not allowed on a mentee solution.
	ErrUserSolution = errors.Base("not allowed for user solutions")
	// ErrUnknownTrack is returned when no track is registered under a name.
	ErrUnknownTrack = errors.Base("unknown track")
	// ErrUnknownCommand is returned when a track offers no command with a name.
	ErrUnknownCommand = errors.Base("unknown command")
)

// 🎯 Command is a single operation on an exercise
type Command interface {
	// Name is the subcommand name
	Name() string
	// Help is a one line description
	Help() string
	// NeedsDownload reports whether the exercise must exist locally first
	NeedsDownload() bool
	// Run executes the command
	Run(ctx context.Context, ex *Exercise) error
}

// FlagAdder is implemented by commands with their own flags
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// 📚 Track manages all solutions of one Exercism language track
type Track interface {
	// Name returns the track slug (e.g. "c")
	Name() string
	// Commands returns the commands specific to this track
	Commands() []Command
	// AdditionalSolutionFiles returns solution files beyond the exercise config
	AdditionalSolutionFiles(ex *Exercise) []string
	// PostDownload prepares a freshly downloaded exercise
	PostDownload(ctx context.Context, ex *Exercise) error
}

// BaseTrack provides the optional parts of Track.
type BaseTrack struct{}

func (BaseTrack) AdditionalSolutionFiles(ex *Exercise) []string { return nil }

func (BaseTrack) PostDownload(ctx context.Context, ex *Exercise) error { return nil }

// BaseCommand provides the optional parts of Command. Commands need a
// downloaded exercise unless they say otherwise.
type BaseCommand struct{}

func (BaseCommand) NeedsDownload() bool { return true }

var registry = map[string]Track{}

// 📝 Register makes a track available by name
func Register(t Track) {
	registry[t.Name()] = t
}

// 🎯 Get returns the track registered under name
func Get(name string) (Track, error) {
	t, ok := registry[name]
	if !ok {
		return nil, errors.WithDetails(
			errors.Errorf("%w %q, options: %s", ErrUnknownTrack, name, strings.Join(Names(), ", ")),
			"track", name,
		)
	}
	return t, nil
}

// Names returns the registered track names, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCommands returns the commands every track offers
func DefaultCommands() []Command {
	return []Command{
		&VisitCommand{},
		&DownloadCommand{},
		&OpenCommand{},
		&SubmitCommand{},
	}
}

// CommandsFor returns the default commands followed by the track's own
func CommandsFor(t Track) []Command {
	return append(DefaultCommands(), t.Commands()...)
}

// FindCommand returns the command of t named name
func FindCommand(t Track, name string) (Command, error) {
	for _, c := range CommandsFor(t) {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, errors.Errorf("%w %q for track %q", ErrUnknownCommand, name, t.Name())
}
