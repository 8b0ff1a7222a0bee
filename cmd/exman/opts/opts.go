package opts

import (
	"io"

	"github.com/walteh/exman/pkg/config"
	"github.com/walteh/exman/pkg/log"
	"github.com/walteh/exman/pkg/runner"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Flags
	Track      string
	Exercise   string
	User       string
	ConfigFile string
	Debug      bool

	// Set up before any command runs
	Config  *config.Config
	Console *log.Logger

	Runner runner.Runner
	Stdout io.Writer
	Stderr io.Writer
}
