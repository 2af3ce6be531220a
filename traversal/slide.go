package traversal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stride-sim/stride/config"
	"github.com/stride-sim/stride/event"
	"github.com/stride-sim/stride/motor"
	"github.com/stride-sim/stride/smath"
)

// slideCallbacks are injected by the coordinator at construction so the
// handler can claim and release the crouched capsule without knowing about
// the coordinator's capsule management.
type slideCallbacks struct {
	crouch     func()
	uncrouch   func()
	crouching  func() bool
	sprintHeld func() bool
	crouchHeld func() bool
}

// SlideHandler owns slide entry/exit state and the momentum-decay physics.
// The slide direction is locked at entry and only re-derived by explicit
// steering.
type SlideHandler struct {
	cfg    *config.Config
	m      motor.Motor
	events *event.Queue
	clock  *clock
	cb     slideCallbacks

	isSliding      bool
	slideTimer     float32
	slideDirection mgl32.Vec3
	pendingEntry   bool
	sinceExit      float32
}

func newSlideHandler(cfg *config.Config, m motor.Motor, events *event.Queue, clk *clock, cb slideCallbacks) *SlideHandler {
	return &SlideHandler{cfg: cfg, m: m, events: events, clock: clk, cb: cb, sinceExit: cfg.SlideCooldown}
}

// RequestSlide buffers a slide entry (or, in toggle mode, exit) intent.
func (h *SlideHandler) RequestSlide() {
	h.pendingEntry = true
}

// Sliding reports whether a slide is active.
func (h *SlideHandler) Sliding() bool {
	return h.isSliding
}

// ApplySlidePhysics computes the slide velocity for the current tick. Runs
// instead of the ordinary ground integration while sliding.
func (h *SlideHandler) ApplySlidePhysics(vel mgl32.Vec3, moveInput mgl32.Vec3, dt float32) mgl32.Vec3 {
	ground := h.m.Ground()
	up := h.m.Up()

	// Slope influence: sliding downhill raises the target speed, uphill
	// lowers it.
	slope := float32(0)
	if downhill := smath.DownhillTangent(ground.Normal, up); downhill.LenSqr() > 0 {
		slope = h.slideDirection.Dot(downhill)
	}
	targetSpeed := h.cfg.SlideBaseSpeed + slope*h.cfg.SlideSlopeInfluence

	speed := vel.Len()
	speed = smath.Lerp(speed, targetSpeed, smath.ExpDecayFactor(h.cfg.SlideFrictionRate, dt))
	if speed < 0 {
		speed = 0
	}

	// Steering: the lateral component of the player's input bends the locked
	// slide direction.
	steer := smath.ProjectOnPlane(moveInput, up)
	lateral := steer.Sub(smath.Project(steer, h.slideDirection))
	if lateral.LenSqr() > 1e-6 {
		bent := h.slideDirection.Add(lateral.Mul(h.cfg.SlideSteerStrength * dt))
		if n := smath.SafeNormalize(bent); n.LenSqr() > 0 {
			h.slideDirection = n
		}
	}

	dir := smath.SafeNormalize(smath.TangentToSurface(h.slideDirection, ground.Normal, up))
	if dir.LenSqr() == 0 {
		dir = h.slideDirection
	}
	return dir.Mul(speed)
}

// HandleSlide runs the after-tick entry/exit bookkeeping.
func (h *SlideHandler) HandleSlide(dt float32) {
	h.sinceExit += dt

	if !h.isSliding {
		if h.pendingEntry && h.canEnter() {
			h.enter()
		}
		h.pendingEntry = false
		return
	}

	h.slideTimer += dt
	speed := h.m.Velocity().Len()

	exit := speed < h.cfg.MinSlideExitSpeed ||
		h.slideTimer > h.cfg.MaxSlideDuration ||
		!h.m.Ground().Found
	if h.cfg.SlideToggleMode {
		exit = exit || h.pendingEntry
	} else {
		exit = exit || !h.cb.crouchHeld()
	}

	if exit {
		h.exit()
	}
	h.pendingEntry = false
}

func (h *SlideHandler) canEnter() bool {
	return h.cb.sprintHeld() &&
		h.m.Velocity().Len() >= h.cfg.SlideMinEntrySpeed &&
		h.m.Ground().Stable &&
		!h.cb.crouching() &&
		h.sinceExit >= h.cfg.SlideCooldown
}

func (h *SlideHandler) enter() {
	h.isSliding = true
	h.slideTimer = 0
	h.slideDirection = smath.SafeNormalize(smath.HzVec(h.m.Velocity()))
	if h.slideDirection.LenSqr() == 0 {
		h.slideDirection = h.m.Forward()
	}
	h.cb.crouch()

	ev := event.NewSlideEvent(h.clock.tick, true)
	ev.Detail.Set("entry_speed", h.m.Velocity().Len())
	h.events.Push(ev)
}

func (h *SlideHandler) exit() {
	duration := h.slideTimer
	h.isSliding = false
	h.slideTimer = 0
	h.sinceExit = 0
	// Keep the crouched capsule when the player is still holding crouch.
	if !h.cb.crouchHeld() {
		h.cb.uncrouch()
	}

	ev := event.NewSlideEvent(h.clock.tick, false)
	ev.Detail.Set("exit_speed", h.m.Velocity().Len())
	ev.Detail.Set("duration", duration)
	h.events.Push(ev)
}
