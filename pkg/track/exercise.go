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

package track

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exman/pkg/config"
	"github.com/walteh/exman/pkg/files"
	"github.com/walteh/exman/pkg/runner"
)

var (
	// ErrNoMatchingFile is returned when no solution file matches a pattern.
	ErrNoMatchingFile = errors.Base("no matching file")
	// ErrAmbiguousFile is returned when several solution files match a pattern.
	ErrAmbiguousFile = errors.Base("multiple matching files")
)

const exerciseURL = "https://exercism.org/tracks/{track}/exercises/{exercise}"

// ExerciseOptions configures NewExercise.
type ExerciseOptions struct {
	Track  Track
	Slug   string
	User   string // mentee handle, empty for own solutions
	Config *config.Config
	Runner runner.Runner
}

// 🏋️ Exercise is one solution directory inside the Exercism workspace
type Exercise struct {
	track  Track
	slug   string
	user   string
	root   string
	path   string
	cfg    *config.Config
	runner runner.Runner
	files  *files.Manager
}

// solutionConfig mirrors .exercism/config.json
type solutionConfig struct {
	Files struct {
		Solution []string `json:"solution"`
		Test     []string `json:"test"`
		Example  []string `json:"example"`
	} `json:"files"`
}

// metadata mirrors .exercism/metadata.json
type metadata struct {
	Track    string `json:"track"`
	Exercise string `json:"exercise"`
	ID       string `json:"id"`
	URL      string `json:"url"`
	Handle   string `json:"handle"`
}

// 🏭 NewExercise resolves the workspace root and the exercise directory. The
// root comes from the config, or from `exercism workspace` when unset.
func NewExercise(ctx context.Context, opts ExerciseOptions) (*Exercise, error) {
	if opts.Track == nil {
		return nil, errors.New("track is required")
	}
	if opts.Slug == "" {
		return nil, errors.New("exercise is required")
	}
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Runner == nil {
		return nil, errors.New("runner is required")
	}

	root := opts.Config.Workspace
	if root == "" {
		out, err := opts.Runner.Output(ctx, opts.Config.Exercism, "workspace")
		if err != nil {
			return nil, errors.Errorf("resolving exercism workspace: %w", err)
		}
		root = filepath.Clean(out)
	}

	path := filepath.Join(root, opts.Track.Name(), opts.Slug)
	if opts.User != "" {
		path = filepath.Join(root, "users", opts.User, opts.Track.Name(), opts.Slug)
	}

	zerolog.Ctx(ctx).Debug().
		Str("track", opts.Track.Name()).
		Str("exercise", opts.Slug).
		Str("path", path).
		Msg("resolved exercise")

	return &Exercise{
		track:  opts.Track,
		slug:   opts.Slug,
		user:   opts.User,
		root:   root,
		path:   path,
		cfg:    opts.Config,
		runner: opts.Runner,
		files:  files.New(path),
	}, nil
}

func (e *Exercise) Track() Track { return e.track }
func (e *Exercise) Name() string { return e.slug }
func (e *Exercise) User() string { return e.user }
func (e *Exercise) Root() string { return e.root }
func (e *Exercise) Config() *config.Config { return e.cfg }
func (e *Exercise) Runner() runner.Runner { return e.runner }
func (e *Exercise) Files() *files.Manager { return e.files }
func (e *Exercise) IsUserSolution() bool { return e.user != "" }
func (e *Exercise) Underscored() string { return strings.ReplaceAll(e.slug, "-", "_") }
func (e *Exercise) TrackDir() string { return filepath.Dir(e.path) }

// Fmt fills the {track}, {exercise}, {exercise_} and {user} placeholders.
func (e *Exercise) Fmt(s string) string {
	return strings.NewReplacer(
		"{track}", e.track.Name(),
		"{exercise}", e.slug,
		"{exercise_}", e.Underscored(),
		"{user}", e.user,
	).Replace(s)
}

// Path returns the absolute path of a file in the exercise directory. The
// parts are formatted with Fmt.
func (e *Exercise) Path(parts ...string) string {
	p := e.path
	for _, part := range parts {
		p = filepath.Join(p, e.Fmt(part))
	}
	return p
}

// Rel returns path relative to the exercise directory, using forward slashes.
func (e *Exercise) Rel(path string) string {
	rel, err := filepath.Rel(e.path, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// 📂 SolutionFiles returns the absolute solution files of the exercise
func (e *Exercise) SolutionFiles() ([]string, error) {
	cfg, err := e.solutionConfig()
	if err != nil {
		return nil, err
	}
	var out []string
	if cfg != nil {
		for _, f := range cfg.Files.Solution {
			out = append(out, e.Path(f))
		}
	}
	return append(out, e.track.AdditionalSolutionFiles(e)...), nil
}

// 🧪 TestFiles returns the absolute test files of the exercise
func (e *Exercise) TestFiles() ([]string, error) {
	cfg, err := e.solutionConfig()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil
	}
	out := make([]string, 0, len(cfg.Files.Test))
	for _, f := range cfg.Files.Test {
		out = append(out, e.Path(f))
	}
	return out, nil
}

// 🔍 FindSolutionFile returns the single solution file matching a doublestar
// pattern, evaluated against paths relative to the exercise directory.
// Relative patterns match from the right, so "lib.rs" finds "src/lib.rs".
// A leading "/" anchors the pattern at the exercise directory.
func (e *Exercise) FindSolutionFile(pattern string) (string, error) {
	solutions, err := e.SolutionFiles()
	if err != nil {
		return "", err
	}

	glob := strings.TrimPrefix(pattern, "/")
	if glob == pattern && !strings.HasPrefix(glob, "**/") {
		glob = "**/" + glob
	}

	var found []string
	for _, f := range solutions {
		ok, err := doublestar.Match(glob, e.Rel(f))
		if err != nil {
			return "", errors.Errorf("matching %q: %w", pattern, err)
		}
		if ok {
			found = append(found, f)
		}
	}

	switch len(found) {
	case 0:
		return "", errors.Errorf("%w %q for exercise %s", ErrNoMatchingFile, pattern, e.slug)
	case 1:
		return found[0], nil
	default:
		return "", errors.Errorf("%w %q: %s", ErrAmbiguousFile, pattern, strings.Join(found, ", "))
	}
}

// IsDownloaded reports whether the exercise metadata names an exercise.
func (e *Exercise) IsDownloaded() bool {
	md, err := e.metadata()
	return err == nil && md != nil && md.Exercise != ""
}

// URL returns the exercise page, preferring the one recorded at download.
func (e *Exercise) URL() string {
	if md, err := e.metadata(); err == nil && md != nil && md.URL != "" {
		return md.URL
	}
	return e.Fmt(exerciseURL)
}

// ⬇️ Download fetches the exercise with the exercism CLI unless every
// solution file is already present, then prepares it for the track.
func (e *Exercise) Download(ctx context.Context) error {
	if e.IsUserSolution() {
		return errors.Errorf("%w: download user solutions through the exercism CLI instead", ErrUserSolution)
	}

	present, err := e.solutionPresent()
	if err != nil {
		return err
	}

	if !present {
		if err := e.runner.Run(ctx, "", e.cfg.Exercism, "download",
			e.Fmt("--exercise={exercise}"),
			e.Fmt("--track={track}"),
		); err != nil {
			return errors.Errorf("downloading exercise: %w", err)
		}
	} else {
		zerolog.Ctx(ctx).Debug().Str("path", e.path).Msg("exercise already present, skipping download")
	}

	if err := e.track.PostDownload(ctx, e); err != nil {
		return errors.Errorf("preparing exercise: %w", err)
	}
	return nil
}

func (e *Exercise) solutionPresent() (bool, error) {
	if _, err := os.Stat(e.path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Errorf("checking exercise directory: %w", err)
	}

	solutions, err := e.SolutionFiles()
	if err != nil {
		return false, err
	}
	for _, f := range solutions {
		if _, err := os.Stat(f); err != nil {
			return false, nil
		}
	}
	return true, nil
}

func (e *Exercise) solutionConfig() (*solutionConfig, error) {
	var cfg solutionConfig
	ok, err := e.readExercismFile("config.json", &cfg)
	if err != nil || !ok {
		return nil, err
	}
	return &cfg, nil
}

func (e *Exercise) metadata() (*metadata, error) {
	var md metadata
	ok, err := e.readExercismFile("metadata.json", &md)
	if err != nil || !ok {
		return nil, err
	}
	return &md, nil
}

// readExercismFile decodes .exercism/<name> into v. A missing file is not an
// error and reports false.
func (e *Exercise) readExercismFile(name string, v any) (bool, error) {
	data, err := os.ReadFile(e.Path(".exercism", name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Errorf("parsing %s: %w", name, err)
	}
	return true, nil
}
