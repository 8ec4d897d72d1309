package cli

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/sirup/audio"
	"github.com/lixenwraith/sirup/config"
	"github.com/lixenwraith/sirup/core"
	"github.com/lixenwraith/sirup/event"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/render"
	"github.com/lixenwraith/sirup/scene"
)

const (
	tiltStep = 0.1 // Radians per key press
	moveStep = 0.1 // World units per key press
)

type runOptions struct {
	scenePath string
	sound     bool
	tilts     map[string]string
}

func (c *CLI) runCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive terminal view",
		Long: `Open the interactive terminal view.

Keys: left/right tilt the selected vessel, up/down raise or lower it,
tab selects the next vessel, r starts a new round, q or esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return runInteractive(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenePath, "scene", "s", "", "scene file (.toml, .yaml), default bar scene when empty")
	cmd.Flags().BoolVar(&opts.sound, "sound", false, "play pouring noise through the speaker")
	cmd.Flags().StringToStringVar(&opts.tilts, "tilt", nil, "initial tilt in radians per vessel (name=angle)")

	return cmd
}

type keyAction int

const (
	actionNone keyAction = iota
	actionQuit
	actionNext
	actionRound
	actionTilt
)

// keyToAction maps a key press to an action, tilt deltas are returned for actionTilt
func keyToAction(key tcell.Key, r rune) (keyAction, event.TiltRequestPayload) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, event.TiltRequestPayload{}
	case tcell.KeyTab:
		return actionNext, event.TiltRequestPayload{}
	case tcell.KeyLeft:
		return actionTilt, event.TiltRequestPayload{Angle: tiltStep}
	case tcell.KeyRight:
		return actionTilt, event.TiltRequestPayload{Angle: -tiltStep}
	case tcell.KeyUp:
		return actionTilt, event.TiltRequestPayload{DY: moveStep}
	case tcell.KeyDown:
		return actionTilt, event.TiltRequestPayload{DY: -moveStep}
	case tcell.KeyRune:
		switch r {
		case 'q':
			return actionQuit, event.TiltRequestPayload{}
		case 'r':
			return actionRound, event.TiltRequestPayload{}
		case 'h':
			return actionTilt, event.TiltRequestPayload{Angle: tiltStep}
		case 'l':
			return actionTilt, event.TiltRequestPayload{Angle: -tiltStep}
		}
	}
	return actionNone, event.TiltRequestPayload{}
}

func runInteractive(ctx context.Context, opts runOptions) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.scenePath)
	if err != nil {
		return err
	}
	// The terminal owns the output while running, the world logs nowhere
	sim, err := scene.Build(cfg, nil, parameter.GameUpdateInterval)
	if err != nil {
		return err
	}
	defer sim.Close()

	if err := queueTilts(sim.World, opts.tilts); err != nil {
		return err
	}

	names := make([]string, 0, len(sim.World.Vessels()))
	for _, v := range sim.World.Vessels() {
		names = append(names, v.Name)
	}

	if opts.sound {
		player := audio.NewPlayer()
		if err := player.Initialize(); err != nil {
			logger.Warn("audio unavailable", "err", err)
		} else {
			defer player.Cleanup()
			sim.Scheduler.Observe(player.Observe)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	core.SetCrashReset(screen.Fini)
	defer func() {
		screen.Fini()
		core.SetCrashReset(nil)
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	schedErr := make(chan error, 1)
	core.Go(func() {
		schedErr <- sim.Scheduler.Run(runCtx)
	})

	events := make(chan tcell.Event, 16)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-runCtx.Done():
				return
			}
		}
	})

	view := render.NewTerminalView(screen, sim.Sandbox)
	frame := time.NewTicker(parameter.FrameUpdateInterval)
	defer frame.Stop()
	selected := 0

	for {
		select {
		case <-ctx.Done():
			cancel()
			<-schedErr
			return ctx.Err()

		case err := <-schedErr:
			return err

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				action, tilt := keyToAction(ev.Key(), ev.Rune())
				switch action {
				case actionQuit:
					cancel()
					<-schedErr
					logger.Info("session ended", "ticks", sim.World.CurrentTick())
					return nil
				case actionNext:
					if len(names) > 0 {
						selected = (selected + 1) % len(names)
					}
				case actionRound:
					sim.World.Events.Emit(event.EventRoundReset, nil, 0)
				case actionTilt:
					if len(names) > 0 {
						tilt.Vessel = names[selected]
						sim.World.Events.Emit(event.EventTiltRequest, &tilt, 0)
					}
				}
			}

		case <-frame.C:
			current := ""
			if len(names) > 0 {
				current = names[selected]
			}
			sim.World.RunSafe(func() {
				view.Draw(sim.World, current)
			})
		}
	}
}
