// Package cli implements the sirup command-line interface
//
// Commands:
//   - run: interactive terminal view, tilt vessels and watch them mix
//   - sim: headless run with a styled summary and an optional zstd trace
//   - scene: print a scene description as TOML or YAML
//
// All commands accept --verbose (-v) for debug logging, loggers travel in context.Context
package cli

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/sirup/engine"
	"github.com/lixenwraith/sirup/event"
)

// Log levels exported for main
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var version = "dev"

// CLI holds state shared by all commands
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at level
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "sirup",
		Short:        "sirup mixes colored fluid poured between tilted vessels",
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(c.runCommand())
	root.AddCommand(c.simCommand())
	root.AddCommand(c.sceneCommand())

	return root
}

// queueTilts parses name=radians pairs into tilt requests applied on the first tick
func queueTilts(world *engine.World, tilts map[string]string) error {
	for name, raw := range tilts {
		angle, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errors.Wrapf(err, "tilt %s", name)
		}
		if _, ok := world.Vessel(name); !ok {
			return errors.Errorf("tilt: unknown vessel %q", name)
		}
		world.Events.Emit(event.EventTiltRequest, &event.TiltRequestPayload{Vessel: name, Angle: angle}, 0)
	}
	return nil
}
