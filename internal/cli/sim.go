package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/sirup/config"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/render"
	"github.com/lixenwraith/sirup/scene"
	"github.com/lixenwraith/sirup/trace"
)

type simOptions struct {
	scenePath string
	ticks     int
	tracePath string
	tilts     map[string]string
}

func (c *CLI) simCommand() *cobra.Command {
	var opts simOptions

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a headless simulation and print each container",
		Example: `  sirup sim --tilt grenadine=3.14 --ticks 500
  sirup sim --scene bar.toml --trace out/run.jsonl.zst`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return runSim(ctx, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenePath, "scene", "s", "", "scene file (.toml, .yaml), default bar scene when empty")
	cmd.Flags().IntVarP(&opts.ticks, "ticks", "n", 10*parameter.TicksPerSecond, "number of simulation ticks")
	cmd.Flags().StringVar(&opts.tracePath, "trace", "", "write a zstd JSONL tick trace to this path")
	cmd.Flags().StringToStringVar(&opts.tilts, "tilt", nil, "initial tilt in radians per vessel (name=angle)")

	return cmd
}

func runSim(ctx context.Context, out io.Writer, opts simOptions) (err error) {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.scenePath)
	if err != nil {
		return err
	}
	sim, err := scene.Build(cfg, logger, parameter.GameUpdateInterval)
	if err != nil {
		return err
	}
	defer sim.Close()

	if err := queueTilts(sim.World, opts.tilts); err != nil {
		return err
	}

	runID := uuid.New()
	if opts.tracePath != "" {
		tw, err := trace.Create(opts.tracePath, runID, parameter.GameUpdateInterval)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := tw.Close(); err == nil {
				err = cerr
			}
		}()
		sim.Scheduler.Observe(tw.Observer())
		logger.Debug("tracing", "path", opts.tracePath, "run", runID)
	}

	prog := newProgress(logger)
	if err := sim.Scheduler.RunTicks(ctx, opts.ticks); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Simulated %d ticks", opts.ticks))

	var summaryErr error
	sim.World.RunSafe(func() {
		summaryErr = render.Summary(out, sim.World, fmt.Sprintf("run %s", runID))
	})
	return summaryErr
}
