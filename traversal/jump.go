package traversal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stride-sim/stride/config"
	"github.com/stride-sim/stride/event"
	"github.com/stride-sim/stride/motor"
	"github.com/stride-sim/stride/smath"
)

// JumpHandler owns jump-intent buffering, the multi-jump counter, the coyote
// window and the wall-jump opportunity. It applies at most one jump per tick
// with priority Wall > Ground-or-Coyote > Air.
type JumpHandler struct {
	cfg    *config.Config
	m      motor.Motor
	events *event.Queue
	clock  *clock

	airJumpsUsed            int
	jumpRequested           bool
	jumpedThisFrame         bool
	canWallJump             bool
	wallJumpNormal          mgl32.Vec3
	timeSinceJumpRequested  float32
	timeSinceLastAbleToJump float32
	// jumpConsumed invalidates the coyote window once any jump has been
	// honored since leaving ground.
	jumpConsumed bool
}

func newJumpHandler(cfg *config.Config, m motor.Motor, events *event.Queue, clk *clock) *JumpHandler {
	return &JumpHandler{cfg: cfg, m: m, events: events, clock: clk}
}

// RequestJump buffers a jump intent with a fresh timestamp. The request is
// held for the pre-grounding grace time before being discarded.
func (h *JumpHandler) RequestJump() {
	h.jumpRequested = true
	h.timeSinceJumpRequested = 0
}

// OnWallHit flags a one-tick wall-jump opportunity from a contact normal
// reported by the motor. The opportunity outranks ground contact in
// ProcessJump, so it is recorded even while grounded.
func (h *JumpHandler) OnWallHit(normal mgl32.Vec3) {
	if !h.cfg.AllowWallJump {
		return
	}
	h.canWallJump = true
	h.wallJumpNormal = normal
}

// JumpedThisFrame reports whether a jump was honored during the current tick.
func (h *JumpHandler) JumpedThisFrame() bool {
	return h.jumpedThisFrame
}

// AirJumpsUsed returns the number of air jumps consumed since last grounded.
func (h *JumpHandler) AirJumpsUsed() int {
	return h.airJumpsUsed
}

// ProcessJump applies at most one jump against the given velocity, using the
// move input for the scalable forward impulse. The wall-jump opportunity is
// consumed here whether or not a jump happens.
func (h *JumpHandler) ProcessJump(vel mgl32.Vec3, dt float32, moveInput mgl32.Vec3) mgl32.Vec3 {
	h.jumpedThisFrame = false
	wallJump := h.canWallJump
	h.canWallJump = false

	if !h.jumpRequested {
		return vel
	}

	up := h.m.Up()
	ground := h.m.Ground()
	coyote := h.timeSinceLastAbleToJump <= h.cfg.JumpPostGroundingGraceTime && !h.jumpConsumed

	var (
		jumpType     event.JumpType
		jumpDir      mgl32.Vec3
		upSpeed      = h.cfg.JumpUpSpeed
		forwardSpeed = h.cfg.JumpScalableForwardSpeed
	)

	switch {
	case wallJump && h.cfg.AllowWallJump:
		jumpType = event.JumpTypeWall
		jumpDir = h.wallJumpNormal
	case ground.Found || coyote:
		jumpType = event.JumpTypeGround
		if !ground.Found {
			jumpType = event.JumpTypeCoyote
		}
		jumpDir = up
		if ground.Found && !ground.Stable {
			// On an unstable slope the jump pushes off the surface instead
			// of straight up, so the character does not immediately re-collide.
			jumpDir = ground.Normal
		}
	case h.airJumpsUsed < h.cfg.MaxAirJumps:
		jumpType = event.JumpTypeAir
		jumpDir = up
		upSpeed = h.cfg.AirJumpUpSpeed
		forwardSpeed = h.cfg.AirJumpScalableForwardSpeed
		h.airJumpsUsed++
	default:
		// No valid jump type this tick; the buffered request stays latched
		// until its grace window expires.
		return vel
	}

	// Briefly unground the motor so the ground snap cannot cancel the
	// impulse on the same tick.
	h.m.ForceUnground(h.cfg.JumpUngroundDuration)

	vel = vel.Sub(smath.Project(vel, up)).Add(jumpDir.Mul(upSpeed))
	vel = vel.Add(moveInput.Mul(forwardSpeed))

	h.jumpRequested = false
	h.jumpedThisFrame = true
	h.jumpConsumed = true

	ev := event.NewJumpEvent(h.clock.tick, jumpType)
	ev.Detail.Set("up_speed", upSpeed)
	ev.Detail.Set("air_jumps_used", h.airJumpsUsed)
	h.events.Push(ev)
	return vel
}

// PostUpdate decays the request buffer and the coyote timer after the motor
// has resolved the tick's sweep.
func (h *JumpHandler) PostUpdate(dt float32) {
	h.timeSinceJumpRequested += dt
	if h.timeSinceJumpRequested > h.cfg.JumpPreGroundingGraceTime {
		h.jumpRequested = false
	}

	if h.m.Ground().Found {
		if !h.jumpedThisFrame {
			h.airJumpsUsed = 0
			h.jumpConsumed = false
		}
		h.timeSinceLastAbleToJump = 0
	} else {
		h.timeSinceLastAbleToJump += dt
	}
	// ProcessJump may be skipped entirely on some ticks, so the frame flag
	// cannot be left for it to clear.
	h.jumpedThisFrame = false
}
