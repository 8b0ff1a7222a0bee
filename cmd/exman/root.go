package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exman/cmd/exman/commands"
	"github.com/walteh/exman/cmd/exman/opts"
	"github.com/walteh/exman/pkg/config"
	"github.com/walteh/exman/pkg/log"
	"github.com/walteh/exman/pkg/track"
)

// newRootCmd builds the command tree. The exercise commands depend on the
// track, which is parsed ahead of cobra by parseTrack.
func newRootCmd(o *opts.RootOpts, trackName string) (*cobra.Command, error) {
	var t track.Track
	if trackName != "" {
		var err error
		if t, err = track.Get(trackName); err != nil {
			return nil, err
		}
	}

	cmd := &cobra.Command{
		Use:   "exman",
		Short: "Manage local Exercism solutions",
		Long: heredoc.Doc(`
			exman downloads Exercism exercises, opens them in an editor, runs the
			track build and test tools and submits solutions. Pass a track to see
			its commands.
		`),
		Example: heredoc.Doc(`
			# download a C exercise, enable every test and stub the header functions
			exman -t c -e hello-world download

			# preview what init would change
			exman -t c -e hello-world init --dry-run

			# run the rust tests with a feature enabled
			exman -t rust -e bob test --features unicode

			# review a mentee solution
			exman -t python -e two-fer -u alice open
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, o)
		},
	}

	addRootFlags(cmd, o)

	cmds := track.DefaultCommands()
	if t != nil {
		cmds = track.CommandsFor(t)
	}
	for _, c := range cmds {
		cmd.AddCommand(commands.NewExerciseCmd(o, t, c))
	}
	cmd.AddCommand(
		commands.NewTracksCmd(o),
		newVersionCmd(o),
	)

	return cmd, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.Track, "track", "t", "", "language track")
	cmd.PersistentFlags().StringVarP(&o.Exercise, "exercise", "e", "", "exercise slug")
	cmd.PersistentFlags().StringVarP(&o.User, "user", "u", "", "operate on a mentee solution")
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: .exman.* in the current or home directory)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// parseTrack extracts --track from args, ignoring every other flag.
func parseTrack(args []string) string {
	fs := pflag.NewFlagSet("exman", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	name := fs.StringP("track", "t", "", "")
	fs.BoolP("help", "h", false, "")

	_ = fs.Parse(args)
	return *name
}

// setup configures logging and loads the config before any command runs
func setup(cmd *cobra.Command, o *opts.RootOpts) error {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: o.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	o.Console = log.NewWithZerolog(o.Stdout, zlog)
	ctx := log.NewContext(zlog.WithContext(cmd.Context()), o.Console)

	cfg, err := loadConfig(ctx, o)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg

	zlog.Debug().Str("config", cfg.String()).Msg("loaded config")
	cmd.SetContext(ctx)
	return nil
}

func loadConfig(ctx context.Context, o *opts.RootOpts) (*config.Config, error) {
	if o.ConfigFile != "" {
		return config.Load(ctx, o.ConfigFile)
	}

	cwd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	return config.Discover(ctx, cwd, home)
}
