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

package rust

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exman/pkg/files"
	"github.com/walteh/exman/pkg/log"
	"github.com/walteh/exman/pkg/track"
)

const crateDoc = "//! Solve {exercise} on Exercism.\n"

// lints are prepended to src/lib.rs when missing.
var lints = []string{
	"#![warn(clippy::all)]\n",
	"#![warn(missing_docs)]\n",
}

var _ track.Command = (*InitCommand)(nil)

// 🎬 InitCommand adds the solution to the rust workspace and sets it as the
// active debug target.
type InitCommand struct {
	track.BaseCommand
}

// 🏭 NewInitCommand creates an init command
func NewInitCommand() *InitCommand {
	return &InitCommand{}
}

func (c *InitCommand) Name() string { return "init" }
func (c *InitCommand) Help() string { return "re-initialize exercise" }

func (c *InitCommand) Run(ctx context.Context, ex *track.Exercise) error {
	console := log.FromContext(ctx)
	console.StartExerciseOperation(ctx, log.ExerciseOperation{
		Track:    ex.Track().Name(),
		Exercise: ex.Name(),
		User:     ex.User(),
		Path:     ex.Path(),
	})
	defer console.EndExerciseOperation(ctx)

	steps := []struct {
		name string
		fn   func(context.Context, *track.Exercise) error
	}{
		{"package", initPackage},
		{"workspace", initWorkspace},
		{"launch", initLaunch},
		{"lints", initLints},
	}
	for _, step := range steps {
		if err := step.fn(ctx, ex); err != nil {
			return errors.Errorf("initializing %s: %w", step.name, err)
		}
	}
	return nil
}

// workspaceDir is the cargo workspace root, the parent of the track directory.
func workspaceDir(ex *track.Exercise) string {
	return filepath.Dir(ex.TrackDir())
}

// write atomically replaces path and reports the change relative to the
// workspace root.
func write(ctx context.Context, ex *track.Exercise, path string, content []byte, action, details string) error {
	m := files.New(workspaceDir(ex))
	if err := m.WriteFileAtomic(ctx, path, content); err != nil {
		return err
	}

	rel, err := filepath.Rel(m.BaseDir(), path)
	if err != nil {
		rel = path
	}
	log.FromContext(ctx).LogFileOperation(ctx, log.FileOperation{
		Path:       filepath.ToSlash(rel),
		Action:     action,
		Details:    details,
		IsModified: true,
	})
	return nil
}

// initPackage names the exercise package after the exercise slug.
func initPackage(ctx context.Context, ex *track.Exercise) error {
	path := ex.Path("Cargo.toml")
	data, err := ex.Files().ReadFile(ctx, path)
	if err != nil {
		return err
	}

	var manifest map[string]any
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return errors.Errorf("parsing Cargo.toml: %w", err)
	}

	pkg, ok := manifest["package"].(map[string]any)
	if !ok {
		return errors.New("Cargo.toml has no [package] table")
	}
	if name, _ := pkg["name"].(string); name == ex.Name() {
		return nil
	}
	pkg["name"] = ex.Name()

	out, err := toml.Marshal(manifest)
	if err != nil {
		return errors.Errorf("encoding Cargo.toml: %w", err)
	}
	return write(ctx, ex, path, out, "renamed", ex.Name())
}

// initWorkspace makes every exercise directory of the track a member of the
// workspace manifest.
func initWorkspace(ctx context.Context, ex *track.Exercise) error {
	dirs, err := files.New(ex.TrackDir()).ListDirs(ctx, ".")
	if err != nil {
		return err
	}
	members := make([]string, 0, len(dirs))
	for _, d := range dirs {
		members = append(members, ex.Track().Name()+"/"+d)
	}

	path := filepath.Join(workspaceDir(ex), "Cargo.toml")
	manifest := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &manifest); err != nil {
			return errors.Errorf("parsing workspace Cargo.toml: %w", err)
		}
	case os.IsNotExist(err):
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("creating workspace manifest")
	default:
		return errors.Errorf("reading workspace Cargo.toml: %w", err)
	}

	workspace, ok := manifest["workspace"].(map[string]any)
	if !ok {
		workspace = map[string]any{}
		manifest["workspace"] = workspace
	}
	if sameSet(stringSlice(workspace["members"]), members) {
		return nil
	}
	workspace["members"] = members

	out, err := toml.Marshal(manifest)
	if err != nil {
		return errors.Errorf("encoding workspace Cargo.toml: %w", err)
	}
	return write(ctx, ex, path, out, "members", fmt.Sprintf("%d crates", len(members)))
}

// initLaunch generates .vscode/launch.json from its template, pointing every
// cargo configuration at the exercise package.
func initLaunch(ctx context.Context, ex *track.Exercise) error {
	path := filepath.Join(workspaceDir(ex), ".vscode", "launch.json")
	template, err := os.ReadFile(path + ".template")
	if err != nil {
		if os.IsNotExist(err) {
			zerolog.Ctx(ctx).Debug().Str("path", path+".template").Msg("no launch template")
			return nil
		}
		return errors.Errorf("reading launch template: %w", err)
	}
	if !gjson.ValidBytes(template) {
		return errors.New("launch template is not valid JSON")
	}

	launch := string(template)
	var setErr error
	i := 0
	gjson.Get(launch, "configurations").ForEach(func(_, cfg gjson.Result) bool {
		if cfg.Get("cargo.args").IsArray() {
			launch, setErr = sjson.Set(launch, fmt.Sprintf("configurations.%d.cargo.args.-1", i), ex.Fmt("--package={exercise}"))
		}
		i++
		return setErr == nil
	})
	if setErr != nil {
		return errors.Errorf("updating launch configuration: %w", setErr)
	}

	if current, err := os.ReadFile(path); err == nil && string(current) == launch {
		return nil
	}
	return write(ctx, ex, path, []byte(launch), "generated", "--package="+ex.Name())
}

// libFile returns the crate root listed in the exercise config, or src/lib.rs.
func libFile(ex *track.Exercise) (string, error) {
	path, err := ex.FindSolutionFile("lib.rs")
	if errors.Is(err, track.ErrNoMatchingFile) {
		return ex.Path("src", "lib.rs"), nil
	}
	return path, err
}

// initLints prepends the crate doc and the lint attributes to the crate root.
func initLints(ctx context.Context, ex *track.Exercise) error {
	path, err := libFile(ex)
	if err != nil {
		return err
	}
	data, err := ex.Files().ReadFile(ctx, path)
	if err != nil {
		return err
	}

	lines := splitLines(string(data))

	var out []string
	if !hasCrateDoc(lines) {
		out = append(out, ex.Fmt(crateDoc), "\n")
	}
	var missing []string
	for _, lint := range lints {
		if !slices.Contains(lines, lint) {
			missing = append(missing, lint)
		}
	}
	if len(missing) > 0 {
		out = append(out, missing...)
		out = append(out, "\n")
	}
	if len(out) == 0 {
		return nil
	}
	out = append(out, lines...)

	return write(ctx, ex, path, []byte(strings.Join(out, "")), "linted", fmt.Sprintf("%d lints", len(missing)))
}

// hasCrateDoc reports whether some `//! ` line is followed by a blank line.
func hasCrateDoc(lines []string) bool {
	for i, line := range lines {
		if strings.HasPrefix(line, "//! ") && i+1 < len(lines) && lines[i+1] == "\n" {
			return true
		}
	}
	return false
}

// splitLines splits s keeping line endings.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func stringSlice(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func sameSet(a, b []string) bool {
	a = slices.Compact(sortedCopy(a))
	b = slices.Compact(sortedCopy(b))
	return slices.Equal(a, b)
}

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}
