package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exman/cmd/exman/opts"
	"github.com/walteh/exman/pkg/track"
)

// NewExerciseCmd wraps a track command into a cobra command. t is nil when no
// track was given on the command line.
func NewExerciseCmd(o *opts.RootOpts, t track.Track, c track.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   c.Name(),
		Short: c.Help(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if t == nil {
				return errors.Errorf("--track is required, options: %s", strings.Join(track.Names(), ", "))
			}
			if o.Exercise == "" {
				return errors.New("--exercise is required")
			}

			ex, err := track.NewExercise(ctx, track.ExerciseOptions{
				Track:  t,
				Slug:   o.Exercise,
				User:   o.User,
				Config: o.Config,
				Runner: o.Runner,
			})
			if err != nil {
				return errors.Errorf("loading exercise: %w", err)
			}

			if c.NeedsDownload() && !ex.IsDownloaded() {
				// downloading runs the track's post-download setup, which writes
				if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
					return errors.Errorf("exercise %s is not downloaded, run download first", ex.Name())
				}
				if err := (&track.DownloadCommand{}).Run(ctx, ex); err != nil {
					return err
				}
			}

			return c.Run(ctx, ex)
		},
	}

	if fa, ok := c.(track.FlagAdder); ok {
		fa.AddFlags(cmd)
	}

	return cmd
}
