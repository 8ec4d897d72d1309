// Package scene assembles a runnable simulation from a scene description
package scene

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/lixenwraith/sirup/config"
	"github.com/lixenwraith/sirup/core"
	"github.com/lixenwraith/sirup/engine"
	"github.com/lixenwraith/sirup/fluid"
	"github.com/lixenwraith/sirup/parameter"
	"github.com/lixenwraith/sirup/physics"
	"github.com/lixenwraith/sirup/pour"
	"github.com/lixenwraith/sirup/systems"
	"github.com/lixenwraith/sirup/vmath"
)

// Sim is a wired world running on the sandbox solver
type Sim struct {
	World     *engine.World
	Scheduler *engine.Scheduler
	Sandbox   *physics.Sandbox
	Routing   *systems.RoutingSystem
	Reset     *systems.ResetSystem
}

// Build creates the world, registers every vessel with the sandbox and attaches routing
// Configuration problems are returned before anything is attached
func Build(cfg config.Scene, logger *log.Logger, interval time.Duration) (*Sim, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = parameter.GameUpdateInterval
	}

	registry := physics.NewRegistry()
	sandbox := physics.NewSandbox(registry, cfg.Tuning.Seed)
	world := engine.NewWorld(sandbox, registry, logger)

	b := &builder{world: world, sandbox: sandbox}
	cupTuning := pour.Tuning{Bias: cfg.Tuning.CupBias, MaxSpeed: cfg.Tuning.CupMaxSpeed, Decay: cfg.Tuning.Decay}
	for _, c := range cfg.Cups {
		if err := b.addCup(c, cupTuning, cfg.Tuning.KillerTag); err != nil {
			return nil, errors.Wrap(err, "build scene")
		}
	}
	bottleTuning := pour.Tuning{Bias: cfg.Tuning.BottleBias, MaxSpeed: cfg.Tuning.BottleMaxSpeed}
	for _, bs := range cfg.Bottles {
		if err := b.addBottle(bs, bottleTuning); err != nil {
			return nil, errors.Wrap(err, "build scene")
		}
	}

	sched := engine.NewScheduler(world, interval)

	reset := systems.NewResetSystem(world)
	reset.SetDeathZone(cfg.Floor.DeathZoneY, cfg.Floor.ResetDelayTicks)
	world.AddSystem(reset)
	world.AddSystem(systems.NewPourSystem(world))
	world.AddSystem(systems.NewRefreshSystem(world))

	sched.RegisterEventHandler(reset)
	sched.RegisterEventHandler(systems.NewControlSystem(world))

	routing := systems.NewRoutingSystem(world, cfg.Tuning.KillerTag)
	routing.Attach()

	world.Log.Info("scene built", "cups", len(cfg.Cups), "bottles", len(cfg.Bottles), "seed", cfg.Tuning.Seed)

	return &Sim{
		World:     world,
		Scheduler: sched,
		Sandbox:   sandbox,
		Routing:   routing,
		Reset:     reset,
	}, nil
}

// Close detaches routing from the solver
func (s *Sim) Close() {
	s.Routing.Detach()
}

type builder struct {
	world   *engine.World
	sandbox *physics.Sandbox

	nextSource   physics.SourceID
	nextCollider physics.ColliderID
}

func (b *builder) addCup(c config.CupSpec, tuning pour.Tuning, killerTag string) error {
	body := physics.NewBody(vmath.Vec3F{X: c.X, Y: c.Y}, c.Angle, c.Height, c.Width)

	b.nextSource++
	emitter := fluid.NewEmitter(b.nextSource, c.Name)
	ctrl, err := pour.NewController(c.Name, body.Top(), body.Floor(), tuning)
	if err != nil {
		return err
	}

	b.nextCollider++
	v := &engine.Vessel{
		Name:      c.Name,
		Kind:      engine.VesselCup,
		Body:      body,
		Emitter:   emitter,
		Container: fluid.NewContainer(c.Capacity, emitter),
		Pour:      ctrl,
		Sink:      b.nextCollider,
	}
	if err := b.world.AddVessel(v); err != nil {
		return err
	}

	b.world.Registry.AddCollider(v.Sink, physics.Collider{Owner: c.Name, Tag: killerTag})
	if _, ok := b.world.Child(c.Name, parameter.ContainerNodeName); !ok {
		return core.NewConfigError(c.Name, "sink owner has no container")
	}

	b.sandbox.AddCollider(v.Sink, physics.Box{
		Center: body.Top(),
		Offset: vmath.Vec3F{Y: -parameter.SinkHalfHeight},
		HalfW:  c.Width / 2,
		HalfH:  parameter.SinkHalfHeight,
	})
	b.sandbox.AddEmitter(emitter.Source, body.Mouth(parameter.MouthOffset), body.Up)
	return nil
}

func (b *builder) addBottle(s config.BottleSpec, tuning pour.Tuning) error {
	color, err := core.ParseHex(s.Color)
	if err != nil {
		return core.NewConfigError(s.Name, "bad color %q", s.Color)
	}
	body := physics.NewBody(vmath.Vec3F{X: s.X, Y: s.Y}, s.Angle, s.Height, s.Width)

	b.nextSource++
	emitter := fluid.NewColoredEmitter(b.nextSource, s.Name, color)
	bottle, err := pour.NewBottle(s.Name, emitter, body.Top(), body.Floor(), tuning)
	if err != nil {
		return err
	}

	v := &engine.Vessel{
		Name:    s.Name,
		Kind:    engine.VesselBottle,
		Body:    body,
		Emitter: emitter,
		Bottle:  bottle,
	}
	if err := b.world.AddVessel(v); err != nil {
		return err
	}

	b.sandbox.AddEmitter(emitter.Source, body.Mouth(parameter.MouthOffset), body.Up)
	return nil
}
