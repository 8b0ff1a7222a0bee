package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/exman/cmd/exman/opts"
	"github.com/walteh/exman/pkg/track"
)

// NewTracksCmd creates a command listing the tracks and their commands
func NewTracksCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List supported tracks and their commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"Track", "Commands"}}
			for _, name := range track.Names() {
				t, err := track.Get(name)
				if err != nil {
					return err
				}
				var names []string
				for _, c := range track.CommandsFor(t) {
					names = append(names, c.Name())
				}
				data = append(data, []string{name, strings.Join(names, ", ")})
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Errorf("rendering table: %w", err)
			}
			o.Console.Header(fmt.Sprintf("%d tracks", len(data)-1))
			fmt.Fprintln(o.Stdout, table)
			return nil
		},
	}

	return cmd
}
