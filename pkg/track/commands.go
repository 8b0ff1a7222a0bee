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

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exman/pkg/log"
)

var (
	_ Command = (*VisitCommand)(nil)
	_ Command = (*DownloadCommand)(nil)
	_ Command = (*OpenCommand)(nil)
	_ Command = (*SubmitCommand)(nil)
)

// 🌐 VisitCommand opens the exercise page in the browser
type VisitCommand struct{}

func (c *VisitCommand) Name() string { return "visit" }
func (c *VisitCommand) Help() string { return "open the exercise page on browser" }
func (c *VisitCommand) NeedsDownload() bool { return false }

func (c *VisitCommand) Run(ctx context.Context, ex *Exercise) error {
	if ex.IsUserSolution() && !ex.IsDownloaded() {
		return errors.Errorf("%w: download a user solution before visiting", ErrUserSolution)
	}

	url := ex.URL()
	browser := ex.Config().Browser
	if len(browser) == 0 {
		return errors.New("no browser configured")
	}
	log.FromContext(ctx).Infof("visiting %s", url)

	args := append(append([]string{}, browser[1:]...), url)
	return ex.Runner().Run(ctx, "", browser[0], args...)
}

// ⬇️ DownloadCommand downloads the exercise and prepares it
type DownloadCommand struct{}

func (c *DownloadCommand) Name() string { return "download" }
func (c *DownloadCommand) Help() string { return "download exercise and initialize" }
func (c *DownloadCommand) NeedsDownload() bool { return false }

func (c *DownloadCommand) Run(ctx context.Context, ex *Exercise) error {
	if ex.IsUserSolution() {
		return errors.Errorf("%w: download user solutions through the exercism CLI instead", ErrUserSolution)
	}
	return ex.Download(ctx)
}

// 📝 OpenCommand opens the solution and test files in the editor
type OpenCommand struct {
	BaseCommand
}

func (c *OpenCommand) Name() string { return "open" }
func (c *OpenCommand) Help() string { return "open exercise files in the editor" }

func (c *OpenCommand) Run(ctx context.Context, ex *Exercise) error {
	solutions, err := ex.SolutionFiles()
	if err != nil {
		return err
	}
	tests, err := ex.TestFiles()
	if err != nil {
		return err
	}

	files := append(solutions, tests...)
	if len(files) == 0 {
		return errors.Errorf("no files to open for exercise %s", ex.Name())
	}
	return ex.Runner().Run(ctx, ex.Path(), ex.Config().Editor, files...)
}

// 🚀 SubmitCommand submits the solution files
type SubmitCommand struct {
	BaseCommand
}

func (c *SubmitCommand) Name() string { return "submit" }
func (c *SubmitCommand) Help() string { return "submit solution to exercism" }

func (c *SubmitCommand) Run(ctx context.Context, ex *Exercise) error {
	if ex.IsUserSolution() {
		return errors.Errorf("%w: submitting user solutions is not allowed", ErrUserSolution)
	}

	files, err := ex.SolutionFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Errorf("no solution files to submit for exercise %s", ex.Name())
	}

	if err := ex.Runner().Run(ctx, ex.Path(), ex.Config().Exercism, append([]string{"submit"}, files...)...); err != nil {
		return errors.Errorf("submitting: %w", err)
	}
	log.FromContext(ctx).Successf("submitted %d files", len(files))
	return nil
}
