package stride

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/stride-sim/stride/config"
	"github.com/stride-sim/stride/event"
	"github.com/stride-sim/stride/motor"
	"github.com/stride-sim/stride/traversal"
)

// NopLogger returns a logger that discards everything, for hosts that do not
// care about the engine's diagnostics.
func NopLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Engine is the host-facing facade over the traversal coordinator. The input
// layer queues intents at its own rate; the host calls Tick on a fixed
// timestep and consumes the drained events.
type Engine struct {
	log   *logrus.Logger
	cfg   *config.Config
	m     motor.Motor
	coord *traversal.Coordinator

	pending traversal.Intent
}

// New validates the configuration and builds an engine over the given motor.
func New(log *logrus.Logger, cfg config.Config, m motor.Motor) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = NopLogger()
	}
	e := &Engine{log: log, cfg: &cfg, m: m}
	e.coord = traversal.NewCoordinator(log, e.cfg, m)
	return e, nil
}

// Coordinator exposes the underlying coordinator for state queries.
func (e *Engine) Coordinator() *traversal.Coordinator {
	return e.coord
}

// QueueIntent records the latest frame of input. Held flags overwrite; press
// flags accumulate until the next tick consumes them, so a press between two
// ticks is never dropped.
func (e *Engine) QueueIntent(in traversal.Intent) {
	in.JumpRequested = in.JumpRequested || e.pending.JumpRequested
	in.DashRequested = in.DashRequested || e.pending.DashRequested
	in.SlideRequested = in.SlideRequested || e.pending.SlideRequested
	in.MantleConfirm = in.MantleConfirm || e.pending.MantleConfirm
	in.DropRequested = in.DropRequested || e.pending.DropRequested
	e.pending = in
}

// SetMode switches the movement mode.
func (e *Engine) SetMode(mode traversal.Mode) {
	e.coord.SetMode(mode)
}

// Tick advances the simulation one fixed timestep and returns the events the
// tick produced.
func (e *Engine) Tick(dt float32) []event.Event {
	e.coord.SetIntent(e.pending)
	e.pending.ClearOneShot()

	vel := e.coord.UpdateVelocity(dt)
	e.coord.UpdateRotation(dt)
	e.m.Step(dt, vel)
	e.coord.PostTick(dt)

	return e.coord.Events().Drain()
}
