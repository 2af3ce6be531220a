package traversal

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stride-sim/stride/config"
	"github.com/stride-sim/stride/event"
	"github.com/stride-sim/stride/motor"
	"github.com/stride-sim/stride/smath"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MantleState is the ledge-mantle state machine position.
type MantleState uint8

const (
	MantleNone MantleState = iota
	MantleGrabbing
	MantleHanging
	MantleMantling
)

func (s MantleState) String() string {
	switch s {
	case MantleNone:
		return "none"
	case MantleGrabbing:
		return "grabbing"
	case MantleHanging:
		return "hanging"
	case MantleMantling:
		return "mantling"
	}
	return "unknown"
}

// MantleHandler owns ledge detection, the hang/shimmy loop and the climb arc.
// While any state other than MantleNone is active the handler commands the
// motor's position directly and the coordinator zeroes its own velocity.
type MantleHandler struct {
	cfg    *config.Config
	m      motor.Motor
	events *event.Queue
	clock  *clock

	state      MantleState
	stateTimer float32
	cooldown   float32

	wallNormal mgl32.Vec3
	ledgePoint mgl32.Vec3
	ledgeRight mgl32.Vec3
	grabPos    mgl32.Vec3
	targetPos  mgl32.Vec3
	climbFrom  mgl32.Vec3

	vertTween  *gween.Tween
	horizTween *gween.Tween
}

func newMantleHandler(cfg *config.Config, m motor.Motor, events *event.Queue, clk *clock) *MantleHandler {
	return &MantleHandler{cfg: cfg, m: m, events: events, clock: clk}
}

// State returns the current mantle state.
func (h *MantleHandler) State() MantleState {
	return h.state
}

// Active reports whether the handler currently owns the motor's position.
func (h *MantleHandler) Active() bool {
	return h.state != MantleNone
}

// FacingDirection returns the direction the character should face while
// attached to the ledge.
func (h *MantleHandler) FacingDirection() mgl32.Vec3 {
	return h.wallNormal.Mul(-1)
}

// CanGrab reports whether a grabbable ledge is in reach right now. Only
// airborne characters off cooldown may grab.
func (h *MantleHandler) CanGrab() bool {
	if h.state != MantleNone || h.cooldown > 0 || h.m.Ground().Found {
		return false
	}
	_, _, ok := h.findLedge()
	return ok
}

// TryGrab attaches to the ledge in front of the character, entering the
// grabbing state. Returns false when no valid ledge is found.
func (h *MantleHandler) TryGrab() bool {
	if h.state != MantleNone || h.cooldown > 0 {
		return false
	}
	wall, ledge, ok := h.findLedge()
	if !ok {
		return false
	}

	h.wallNormal = wall.Normal
	h.ledgePoint = ledge.Position
	h.ledgeRight = smath.SafeNormalize(h.m.Up().Cross(h.wallNormal))

	h.grabPos = h.hangPosition(h.ledgePoint)
	h.targetPos = h.climbTarget(h.ledgePoint)

	h.state = MantleGrabbing
	h.stateTimer = 0

	ev := event.NewMantleEvent(h.clock.tick, event.MantlePhaseGrabbed)
	ev.Detail.Set("ledge_height", h.ledgePoint.Y()-h.m.Position().Y())
	h.events.Push(ev)
	return true
}

// Update advances the mantle state machine one tick. moveInput is the planar
// world-space move vector, used for shimmying along the ledge.
func (h *MantleHandler) Update(dt float32, moveInput mgl32.Vec3, confirm, drop bool) {
	if h.cooldown > 0 {
		h.cooldown -= dt
	}
	if h.state == MantleNone {
		return
	}
	h.stateTimer += dt

	switch h.state {
	case MantleGrabbing:
		h.m.MoveTo(h.grabPos)
		h.state = MantleHanging
		h.stateTimer = 0

	case MantleHanging:
		if drop {
			h.detach(event.MantlePhaseDropped)
			return
		}
		if confirm {
			h.beginClimb()
			return
		}
		h.shimmy(dt, moveInput)
		h.m.MoveTo(h.grabPos)

	case MantleMantling:
		vert, _ := h.vertTween.Update(dt)
		horiz := float32(0)
		// The horizontal glide starts only once the vertical pull is past its
		// halfway mark, so the capsule clears the lip before moving forward.
		if h.stateTimer >= 0.5*h.cfg.MantleDuration {
			horiz, _ = h.horizTween.Update(dt)
		}

		pos := h.climbFrom
		pos[1] = smath.Lerp(h.climbFrom.Y(), h.targetPos.Y(), vert)
		pos[0] = smath.Lerp(h.climbFrom.X(), h.targetPos.X(), horiz)
		pos[2] = smath.Lerp(h.climbFrom.Z(), h.targetPos.Z(), horiz)
		h.m.MoveTo(pos)

		if h.stateTimer >= h.cfg.MantleDuration {
			h.m.MoveTo(h.targetPos)
			h.detach(event.MantlePhaseCompleted)
		}
	}
}

// OverrideVelocity returns the velocity the coordinator must hold while the
// mantle owns the motor.
func (h *MantleHandler) OverrideVelocity() mgl32.Vec3 {
	return mgl32.Vec3{}
}

func (h *MantleHandler) beginClimb() {
	h.state = MantleMantling
	h.stateTimer = 0
	h.climbFrom = h.m.Position()
	h.vertTween = gween.New(0, 1, 0.7*h.cfg.MantleDuration, ease.OutQuad)
	h.horizTween = gween.New(0, 1, 0.5*h.cfg.MantleDuration, ease.InOutQuad)
	h.events.Push(event.NewMantleEvent(h.clock.tick, event.MantlePhaseClimbStarted))
}

func (h *MantleHandler) detach(phase event.MantlePhase) {
	h.state = MantleNone
	h.stateTimer = 0
	if phase == event.MantlePhaseDropped {
		h.cooldown = h.cfg.MantleDropCooldown
	}
	h.events.Push(event.NewMantleEvent(h.clock.tick, phase))
}

// shimmy slides the hang anchor along the ledge when the lateral input
// component is strong enough and the destination is clear.
func (h *MantleHandler) shimmy(dt float32, moveInput mgl32.Vec3) {
	lateral := moveInput.Dot(h.ledgeRight)
	if math32.Abs(lateral) < h.cfg.ShimmyInputThreshold {
		return
	}
	shift := h.ledgeRight.Mul(sign32(lateral) * h.cfg.ShimmySpeed * dt)

	next := h.grabPos.Add(shift)
	if h.m.Overlaps(next, h.m.Capsule(), motor.Mask(h.cfg.MantleMask)) {
		return
	}
	h.grabPos = next
	h.ledgePoint = h.ledgePoint.Add(shift)
	h.targetPos = h.targetPos.Add(shift)
}

// findLedge probes for a mantleable ledge: a forward ray against a facing
// wall, then a downward ray from above the wall contact to locate the top
// surface within the configured height band. The wall ray is cast at chest
// height first, then just under the minimum ledge height, so a short
// standalone ledge whose face ends below the chest is still found.
func (h *MantleHandler) findLedge() (wall, ledge motor.RayHit, ok bool) {
	up := h.m.Up()
	forward := smath.SafeNormalize(smath.ProjectOnPlane(h.m.Forward(), up))
	if forward.LenSqr() == 0 {
		return wall, ledge, false
	}

	probes := [2]float32{h.m.Capsule().Height * 0.75, h.cfg.MinLedgeHeight - 0.1}
	for _, height := range probes {
		origin := h.m.Position().Add(up.Mul(height))
		if wall, ledge, ok = h.probeLedge(origin, forward, up); ok {
			return wall, ledge, true
		}
	}
	return wall, ledge, false
}

func (h *MantleHandler) probeLedge(origin, forward, up mgl32.Vec3) (wall, ledge motor.RayHit, ok bool) {
	mask := motor.Mask(h.cfg.MantleMask)
	wall = h.m.CastRay(origin, forward, h.cfg.MaxGrabDistance, mask)
	if !wall.Hit {
		return wall, ledge, false
	}
	// The wall must roughly face the character; glancing contacts are not
	// grabbable.
	if smath.AngleBetween(wall.Normal.Mul(-1), forward) > h.cfg.MaxWallAngleDeviation {
		return wall, ledge, false
	}

	feetY := h.m.Position().Y()
	top := mgl32.Vec3{wall.Position.X(), feetY + h.cfg.MaxLedgeHeight + 0.1, wall.Position.Z()}
	top = top.Add(forward.Mul(0.05))
	ledge = h.m.CastRay(top, up.Mul(-1), h.cfg.MaxLedgeHeight+0.2, mask)
	if !ledge.Hit {
		return wall, ledge, false
	}

	height := ledge.Position.Y() - feetY
	if height < h.cfg.MinLedgeHeight || height > h.cfg.MaxLedgeHeight {
		return wall, ledge, false
	}
	if smath.SlopeAngle(ledge.Normal, up) > h.cfg.MaxLedgeSlopeAngle {
		return wall, ledge, false
	}
	return wall, ledge, true
}

// hangPosition is the capsule bottom-center while hanging: below the ledge
// lip, pulled back off the wall.
func (h *MantleHandler) hangPosition(ledge mgl32.Vec3) mgl32.Vec3 {
	pos := ledge.Add(h.wallNormal.Mul(h.cfg.CapsuleRadius + h.cfg.HangPullback))
	pos[1] = ledge.Y() - h.cfg.HangDropBelowLedge
	return pos
}

// climbTarget is where the capsule lands after the climb: on top of the
// ledge, nudged forward past the lip.
func (h *MantleHandler) climbTarget(ledge mgl32.Vec3) mgl32.Vec3 {
	pos := ledge.Sub(h.wallNormal.Mul(h.cfg.MantleForwardOffset))
	pos[1] = ledge.Y() + 0.02
	return pos
}

func sign32(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
