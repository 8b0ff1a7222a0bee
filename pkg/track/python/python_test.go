package python

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/walteh/exman/pkg/config"
	"github.com/walteh/exman/pkg/testutils"
	"github.com/walteh/exman/pkg/track"
)

func newExercise(t *testing.T, r *testutils.MockRunner) *track.Exercise {
	t.Helper()
	cfg := &config.Config{Workspace: t.TempDir(), Python: "python3.12"}
	require.NoError(t, cfg.Validate())

	ex, err := track.NewExercise(context.Background(), track.ExerciseOptions{
		Track:  &Track{},
		Slug:   "two-fer",
		Config: cfg,
		Runner: r,
	})
	require.NoError(t, err)
	return ex
}

func TestTestCommand(t *testing.T) {
	t.Run("uses_exercise_config", func(t *testing.T) {
		ctx := testutils.Context(t, &bytes.Buffer{})
		r := testutils.NewMockRunner(t)
		ex := newExercise(t, r)

		configPath := filepath.Join(ex.Path(), ".exercism", "config.json")
		require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0755))
		require.NoError(t, os.WriteFile(configPath, []byte(`{"files": {"solution": ["two_fer.py"], "test": ["two_fer_test.py"]}}`), 0644))

		r.On("Run", mock.Anything, ex.Path(), "python3.12", []string{"-m", "pytest", ex.Path("two_fer_test.py")}).Return(nil)
		require.NoError(t, (&TestCommand{}).Run(ctx, ex))
	})

	t.Run("falls_back_to_convention", func(t *testing.T) {
		ctx := testutils.Context(t, &bytes.Buffer{})
		r := testutils.NewMockRunner(t)
		ex := newExercise(t, r)

		r.On("Run", mock.Anything, ex.Path(), "python3.12", []string{"-m", "pytest", ex.Path("two_fer_test.py")}).Return(nil)
		require.NoError(t, (&TestCommand{}).Run(ctx, ex))
	})

	t.Run("test_failure", func(t *testing.T) {
		ctx := testutils.Context(t, &bytes.Buffer{})
		r := testutils.NewMockRunner(t)
		ex := newExercise(t, r)

		r.On("Run", mock.Anything, ex.Path(), "python3.12", mock.Anything).Return(assert.AnError)
		err := (&TestCommand{}).Run(ctx, ex)
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestTrack(t *testing.T) {
	registered, err := track.Get("python")
	require.NoError(t, err)
	assert.Equal(t, "python", registered.Name())

	cmd, err := track.FindCommand(registered, "test")
	require.NoError(t, err)
	assert.True(t, cmd.NeedsDownload())
}
