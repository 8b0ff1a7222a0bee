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

package c

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/exman/pkg/cstub"
	"github.com/walteh/exman/pkg/log"
	"github.com/walteh/exman/pkg/text"
	"github.com/walteh/exman/pkg/track"
)

// EnableTestsRule comments out every Unity TEST_IGNORE that is not already
// commented out.
var EnableTestsRule = text.ReplacementRule{
	Pattern:        `(?<!// )TEST_IGNORE`,
	Replacement:    `// TEST_IGNORE`,
	FileFilterGlob: "**/test_*.c",
}

var (
	_ track.Command   = (*InitCommand)(nil)
	_ track.FlagAdder = (*InitCommand)(nil)
)

// 🎬 InitCommand re-initializes an exercise: every test is enabled and each
// header declaration without a definition gets a stub in its source file.
// Mentee solutions only get their tests enabled.
type InitCommand struct {
	DryRun bool

	replacer text.TextReplacer
	stubber  *cstub.Stubber
}

// 🏭 NewInitCommand creates an init command
func NewInitCommand() *InitCommand {
	return &InitCommand{
		replacer: text.NewRegexReplacer(),
		stubber:  cstub.NewStubber(),
	}
}

func (c *InitCommand) Name() string { return "init" }
func (c *InitCommand) Help() string { return "re-initialize exercise" }
func (c *InitCommand) NeedsDownload() bool { return true }

func (c *InitCommand) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&c.DryRun, "dry-run", false, "show the changes without writing them")
}

func (c *InitCommand) Run(ctx context.Context, ex *track.Exercise) error {
	console := log.FromContext(ctx)
	console.StartExerciseOperation(ctx, log.ExerciseOperation{
		Track:    ex.Track().Name(),
		Exercise: ex.Name(),
		User:     ex.User(),
		Path:     ex.Path(),
	})
	defer console.EndExerciseOperation(ctx)

	if err := c.enableTests(ctx, ex); err != nil {
		return errors.Errorf("enabling tests: %w", err)
	}

	if ex.IsUserSolution() {
		zerolog.Ctx(ctx).Debug().Str("user", ex.User()).Msg("skipping stubs for user solution")
		return nil
	}

	if err := c.fillStubs(ctx, ex); err != nil {
		return errors.Errorf("stubbing functions: %w", err)
	}
	return nil
}

// testFiles returns the exercise test files, falling back to the track
// naming convention when the exercise config lists none.
func testFiles(ex *track.Exercise) ([]string, error) {
	files, err := ex.TestFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		files = []string{ex.Path("test_{exercise_}.c")}
	}
	return files, nil
}

func (c *InitCommand) enableTests(ctx context.Context, ex *track.Exercise) error {
	files, err := testFiles(ex)
	if err != nil {
		return err
	}

	rules := []text.ReplacementRule{EnableTestsRule}
	for _, path := range files {
		rel := ex.Rel(path)

		content, err := ex.Files().ReadFile(ctx, path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				zerolog.Ctx(ctx).Debug().Str("path", rel).Msg("test file missing")
				continue
			}
			return err
		}

		result, err := c.replacer.ReplaceText(ctx, rel, bytes.NewReader(content), rules)
		if err != nil {
			return errors.Errorf("processing %s: %w", rel, err)
		}
		if !result.WasModified {
			continue
		}

		if err := c.apply(ctx, ex, path, result.OriginalContent, result.ModifiedContent, log.FileOperation{
			Path:    rel,
			Action:  "enabled",
			Details: plural(result.ReplacementCount, "test"),
			Count:   result.ReplacementCount,
		}); err != nil {
			return err
		}
	}
	return nil
}

// pair is a header and the source file implementing it
type pair struct {
	header string
	source string
}

// pairs returns every solution header with a sibling source file of the same
// stem, falling back to {exercise_}.h and {exercise_}.c.
func pairs(ctx context.Context, ex *track.Exercise) ([]pair, error) {
	solutions, err := ex.SolutionFiles()
	if err != nil {
		return nil, err
	}
	if len(solutions) == 0 {
		solutions = []string{ex.Path("{exercise_}.c"), ex.Path("{exercise_}.h")}
	}

	var out []pair
	for _, f := range solutions {
		if filepath.Ext(f) != ".h" {
			continue
		}
		source := strings.TrimSuffix(f, ".h") + ".c"
		ok, err := bothExist(ctx, ex, f, source)
		if err != nil {
			return nil, err
		}
		if !ok {
			zerolog.Ctx(ctx).Debug().Str("header", ex.Rel(f)).Msg("no source beside header")
			continue
		}
		out = append(out, pair{header: f, source: source})
	}
	return out, nil
}

func bothExist(ctx context.Context, ex *track.Exercise, paths ...string) (bool, error) {
	for _, p := range paths {
		ok, err := ex.Files().FileExists(ctx, p)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (c *InitCommand) fillStubs(ctx context.Context, ex *track.Exercise) error {
	ps, err := pairs(ctx, ex)
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		log.FromContext(ctx).Warningf("no header and source pair to stub in %s", ex.Name())
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range ps {
		p := p
		g.Go(func() error {
			return c.fillPair(ctx, ex, p)
		})
	}
	return g.Wait()
}

func (c *InitCommand) fillPair(ctx context.Context, ex *track.Exercise, p pair) error {
	header, err := ex.Files().ReadFile(ctx, p.header)
	if err != nil {
		return errors.Errorf("opening header: %w", err)
	}
	source, err := ex.Files().ReadFile(ctx, p.source)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}

	result, err := c.stubber.FillStubs(ctx, bytes.NewReader(header), bytes.NewReader(source))
	if err != nil {
		return errors.Errorf("processing %s: %w", ex.Rel(p.source), err)
	}

	rel := ex.Rel(p.source)
	if !result.WasModified {
		log.FromContext(ctx).LogFileOperation(ctx, log.FileOperation{
			Path:    rel,
			Action:  "up to date",
			Details: "no missing functions",
		})
		return nil
	}

	return c.apply(ctx, ex, p.source, result.Original, result.Modified, log.FileOperation{
		Path:    rel,
		Action:  "stubbed",
		Details: plural(len(result.Added), "function"),
		Count:   len(result.Added),
	})
}

// apply writes modified content to path, or shows the diff on a dry run.
func (c *InitCommand) apply(ctx context.Context, ex *track.Exercise, path string, before, after []byte, op log.FileOperation) error {
	console := log.FromContext(ctx)

	if c.DryRun {
		op.IsDryRun = true
		console.LogFileOperation(ctx, op)
		console.Raw(udiff.Unified("a/"+op.Path, "b/"+op.Path, string(before), string(after)))
		return nil
	}

	if err := ex.Files().WriteFileAtomic(ctx, path, after); err != nil {
		return errors.Errorf("writing %s: %w", op.Path, err)
	}
	op.IsModified = true
	console.LogFileOperation(ctx, op)
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
