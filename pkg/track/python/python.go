// Package python manages solutions of the Exercism Python track.
package python

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exman/pkg/track"
)

func init() {
	track.Register(&Track{})
}

var _ track.Track = (*Track)(nil)

// 🐍 Track is the Python track
type Track struct {
	track.BaseTrack
}

func (t *Track) Name() string { return "python" }

func (t *Track) Commands() []track.Command {
	return []track.Command{&TestCommand{}}
}

var _ track.Command = (*TestCommand)(nil)

// 🧪 TestCommand runs the exercise tests with pytest
type TestCommand struct {
	track.BaseCommand
}

func (c *TestCommand) Name() string { return "test" }
func (c *TestCommand) Help() string { return "run tests" }

func (c *TestCommand) Run(ctx context.Context, ex *track.Exercise) error {
	tests, err := ex.TestFiles()
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		tests = []string{ex.Path("{exercise_}_test.py")}
	}

	args := append([]string{"-m", "pytest"}, tests...)
	if err := ex.Runner().Run(ctx, ex.Path(), ex.Config().Python, args...); err != nil {
		return errors.Errorf("running tests: %w", err)
	}
	return nil
}
