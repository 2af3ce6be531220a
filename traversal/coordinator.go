package traversal

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/stride-sim/stride/assert"
	"github.com/stride-sim/stride/config"
	"github.com/stride-sim/stride/event"
	"github.com/stride-sim/stride/motor"
	"github.com/stride-sim/stride/smath"
)

// clock is the shared tick counter stamped onto emitted events. The
// coordinator advances it once per fixed tick.
type clock struct {
	tick uint64
}

// Coordinator composes the ability handlers over a kinematic motor and runs
// the per-tick velocity pipeline. All methods must be called from the
// simulation goroutine.
type Coordinator struct {
	cfg    *config.Config
	m      motor.Motor
	log    *logrus.Logger
	events *event.Queue
	clock  *clock

	jump   *JumpHandler
	slide  *SlideHandler
	dash   *DashHandler
	mantle *MantleHandler

	mode      Mode
	intent    Intent
	velocity  mgl32.Vec3
	impulse   mgl32.Vec3
	crouching bool
	wantStand bool
}

// NewCoordinator wires the handlers to the motor and the shared event queue.
func NewCoordinator(log *logrus.Logger, cfg *config.Config, m motor.Motor) *Coordinator {
	assert.IsTrue(cfg != nil, "coordinator requires a config")
	assert.IsTrue(m != nil, "coordinator requires a motor")
	assert.IsTrue(log != nil, "coordinator requires a logger")

	clk := &clock{}
	events := event.NewQueue()

	c := &Coordinator{
		cfg:    cfg,
		m:      m,
		log:    log,
		events: events,
		clock:  clk,
	}
	c.jump = newJumpHandler(cfg, m, events, clk)
	c.dash = newDashHandler(cfg, events, clk)
	c.mantle = newMantleHandler(cfg, m, events, clk)
	c.slide = newSlideHandler(cfg, m, events, clk, slideCallbacks{
		crouch:     c.crouch,
		uncrouch:   c.uncrouch,
		crouching:  func() bool { return c.crouching },
		sprintHeld: func() bool { return c.intent.SprintHeld },
		crouchHeld: func() bool { return c.intent.CrouchHeld },
	})
	m.OnWallHit(c.jump.OnWallHit)
	m.SetCapsule(c.standCapsule())
	return c
}

// Events returns the queue abilities publish to.
func (c *Coordinator) Events() *event.Queue {
	return c.events
}

// Mode returns the active movement mode.
func (c *Coordinator) Mode() Mode {
	return c.mode
}

// SetMode switches the top-level integration. Mantles in progress are dropped
// when leaving the default mode.
func (c *Coordinator) SetMode(mode Mode) {
	if mode == c.mode {
		return
	}
	if c.mantle.Active() {
		c.mantle.detach(event.MantlePhaseDropped)
	}
	c.mode = mode
	c.log.WithField("mode", mode.String()).Debug("movement mode changed")
}

// SetIntent latches the frame's input and routes one-shot presses to the
// ability handlers. Jump, slide and mantle presses are inert outside the
// default mode; dash works in every mode.
func (c *Coordinator) SetIntent(in Intent) {
	c.intent = in
	if c.mode == ModeDefault {
		if in.JumpRequested {
			c.jump.RequestJump()
		}
		if in.SlideRequested {
			c.slide.RequestSlide()
		}
	}
	if in.DashRequested {
		c.dash.RequestDash()
	}
}

// AddImpulse accumulates an external velocity change applied at the end of
// the current tick's velocity update.
func (c *Coordinator) AddImpulse(impulse mgl32.Vec3) {
	c.impulse = c.impulse.Add(impulse)
}

// Velocity returns the velocity the coordinator will hand to the motor.
func (c *Coordinator) Velocity() mgl32.Vec3 {
	return c.velocity
}

// Sliding reports whether a slide is active.
func (c *Coordinator) Sliding() bool { return c.slide.Sliding() }

// DashCharges returns the available dash charges.
func (c *Coordinator) DashCharges() int { return c.dash.Charges() }

// MantleState returns the mantle state machine position.
func (c *Coordinator) MantleState() MantleState { return c.mantle.State() }

// Crouching reports whether the crouched capsule is active.
func (c *Coordinator) Crouching() bool { return c.crouching }

// UpdateVelocity runs the tick's velocity pipeline and returns the velocity
// to hand to the motor's Step.
func (c *Coordinator) UpdateVelocity(dt float32) mgl32.Vec3 {
	if c.mantle.Active() {
		c.velocity = c.mantle.OverrideVelocity()
		c.impulse = mgl32.Vec3{}
		return c.velocity
	}

	moveInput := c.intent.MoveVector()
	vel := c.m.Velocity()

	switch {
	case c.mode == ModeNoClip:
		vel = c.noClipVelocity(vel, moveInput, dt)
	case c.m.Ground().Stable:
		if c.slide.Sliding() {
			vel = c.slide.ApplySlidePhysics(vel, moveInput, dt)
		} else {
			vel = c.groundVelocity(vel, moveInput, dt)
		}
	default:
		vel = c.airVelocity(vel, moveInput, dt)
	}

	if c.mode == ModeDefault {
		vel = c.jump.ProcessJump(vel, dt, moveInput)

		// A fresh jump or a falling airborne frame may carry the character
		// into ledge range.
		if c.jump.JumpedThisFrame() || (!c.m.Ground().Found && vel.Y() < 0) {
			if c.mantle.CanGrab() {
				c.mantle.TryGrab()
				vel = c.mantle.OverrideVelocity()
			}
		}
	}

	dashDir := moveInput
	if dashDir.LenSqr() == 0 {
		dashDir = smath.ProjectOnPlane(c.m.Forward(), c.m.Up())
	}
	c.dash.TryApplyDash(&c.impulse, vel, dashDir)

	vel = vel.Add(c.impulse)
	c.impulse = mgl32.Vec3{}
	c.velocity = vel
	return vel
}

// groundVelocity is the stable-ground integration: reproject the current
// velocity onto the surface, then exponentially approach the input-driven
// target speed along it.
func (c *Coordinator) groundVelocity(vel, moveInput mgl32.Vec3, dt float32) mgl32.Vec3 {
	up := c.m.Up()
	ground := c.m.Ground()

	speed := vel.Len()
	vel = smath.TangentToSurface(vel, ground.Normal, up)
	if speed > 0 && vel.LenSqr() == 0 {
		vel = mgl32.Vec3{}
	}

	// Reorient the planar input onto the slope so full input speed is kept
	// while walking up or down.
	var target mgl32.Vec3
	if moveInput.LenSqr() > 0 {
		inputRight := moveInput.Cross(up)
		reoriented := smath.SafeNormalize(ground.Normal.Cross(inputRight)).Mul(moveInput.Len())
		target = reoriented.Mul(c.moveSpeed())
	}

	return smath.LerpVec(vel, target, smath.ExpDecayFactor(c.cfg.GroundSharpness, dt))
}

// airVelocity is the airborne integration: capped directional acceleration,
// exponential decay of speed beyond the cap, gravity and drag.
func (c *Coordinator) airVelocity(vel, moveInput mgl32.Vec3, dt float32) mgl32.Vec3 {
	up := c.m.Up()
	planar := smath.ProjectOnPlane(vel, up)
	vertical := vel.Sub(planar)

	if moveInput.LenSqr() > 0 {
		accel := moveInput.Mul(c.cfg.AirAcceleration * dt)
		next := planar.Add(accel)
		// Input may not push planar speed past the cap, but speed already
		// above it (from a dash or slide launch) is preserved.
		maxLen := math32.Max(planar.Len(), c.cfg.MaxAirSpeed)
		if next.Len() > maxLen {
			next = smath.SafeNormalize(next).Mul(maxLen)
		}
		planar = next
	}

	// Speed beyond the air cap bleeds off exponentially.
	if excess := planar.Len() - c.cfg.MaxAirSpeed; excess > 0 {
		decayed := c.cfg.MaxAirSpeed + excess*(1-smath.ExpDecayFactor(c.cfg.AirDecaySharpness, dt))
		planar = smath.SafeNormalize(planar).Mul(decayed)
	}

	vertical = vertical.Sub(up.Mul(c.cfg.Gravity * dt))
	vel = planar.Add(vertical)
	return vel.Mul(1 / (1 + c.cfg.AirDrag*dt))
}

// noClipVelocity flies the capsule through geometry at a fixed speed. The
// vertical axis is driven by the jump/crouch holds.
func (c *Coordinator) noClipVelocity(vel, moveInput mgl32.Vec3, dt float32) mgl32.Vec3 {
	dir := moveInput
	if c.intent.CrouchHeld {
		dir = dir.Sub(c.m.Up())
	}
	if c.intent.SprintHeld {
		dir = dir.Add(c.m.Up())
	}
	target := smath.SafeNormalize(dir).Mul(c.cfg.NoClipSpeed)
	return smath.LerpVec(vel, target, smath.ExpDecayFactor(c.cfg.NoClipSharpness, dt))
}

// UpdateRotation turns the character toward its movement input, or toward the
// wall while attached to a ledge.
func (c *Coordinator) UpdateRotation(dt float32) {
	var target mgl32.Vec3
	if c.mantle.Active() {
		target = c.mantle.FacingDirection()
	} else {
		target = c.intent.MoveVector()
	}
	target = smath.SafeNormalize(smath.ProjectOnPlane(target, c.m.Up()))
	if target.LenSqr() == 0 {
		return
	}
	next := smath.LerpVec(c.m.Forward(), target, smath.ExpDecayFactor(c.cfg.RotationSharpness, dt))
	c.m.SetForward(smath.SafeNormalize(next))
}

// PostTick runs the after-sweep bookkeeping: jump timers, mantle state,
// slide entry/exit, crouch transitions, dash reload, then the tick counter.
func (c *Coordinator) PostTick(dt float32) {
	c.jump.PostUpdate(dt)

	if c.mode == ModeDefault {
		c.mantle.Update(dt, c.intent.MoveVector(), c.intent.MantleConfirm, c.intent.DropRequested)
		c.slide.HandleSlide(dt)
		c.updateCrouch()
	}

	c.dash.UpdateCharges(dt)
	c.clock.tick++
	c.intent.ClearOneShot()
}

// Tick returns the number of completed fixed ticks.
func (c *Coordinator) Tick() uint64 {
	return c.clock.tick
}

// updateCrouch applies held-crouch transitions. The slide and mantle handlers
// own the capsule while they are active.
func (c *Coordinator) updateCrouch() {
	if c.slide.Sliding() || c.mantle.Active() {
		return
	}
	if c.intent.CrouchHeld && !c.crouching {
		c.crouch()
		return
	}
	if !c.intent.CrouchHeld && (c.crouching || c.wantStand) {
		c.uncrouch()
	}
}

func (c *Coordinator) crouch() {
	if c.crouching {
		return
	}
	c.crouching = true
	c.wantStand = false
	c.m.SetCapsule(c.crouchCapsule())
}

// uncrouch stands the capsule back up when there is headroom, otherwise keeps
// it crouched and retries every tick.
func (c *Coordinator) uncrouch() {
	if !c.crouching {
		c.wantStand = false
		return
	}
	if c.m.Overlaps(c.m.Position(), c.standCapsule(), motor.Mask(c.cfg.GroundMask)) {
		c.wantStand = true
		return
	}
	c.crouching = false
	c.wantStand = false
	c.m.SetCapsule(c.standCapsule())
}

func (c *Coordinator) moveSpeed() float32 {
	switch {
	case c.crouching:
		return c.cfg.CrouchSpeed
	case c.intent.SprintHeld:
		return c.cfg.SprintSpeed
	}
	return c.cfg.WalkSpeed
}

func (c *Coordinator) standCapsule() motor.Capsule {
	return motor.Capsule{Radius: c.cfg.CapsuleRadius, Height: c.cfg.CapsuleStandHeight}
}

func (c *Coordinator) crouchCapsule() motor.Capsule {
	return motor.Capsule{Radius: c.cfg.CapsuleRadius, Height: c.cfg.CapsuleCrouchHeight}
}
