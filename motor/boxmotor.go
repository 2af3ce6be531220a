package motor

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stride-sim/stride/assert"
	"github.com/stride-sim/stride/smath"
)

// Options tune the reference motor's sweep resolution.
type Options struct {
	StepHeight          float32
	GroundSnapDistance  float32
	MaxStableSlopeAngle float32
	CollisionMask       Mask
}

// DefaultOptions returns the options used by the demo host.
func DefaultOptions() Options {
	return Options{
		StepHeight:          0.3,
		GroundSnapDistance:  0.25,
		MaxStableSlopeAngle: 50,
		CollisionMask:       MaskAll,
	}
}

// BoxMotor is the reference Motor implementation: a capsule swept against a
// static world of axis-aligned boxes. The capsule's collision volume is its
// bounding box, resolved with axis-separated clipping.
type BoxMotor struct {
	world *World
	opts  Options

	pos     mgl32.Vec3
	vel     mgl32.Vec3
	forward mgl32.Vec3
	capsule Capsule
	ground  GroundState

	ungroundTimer float32
	wallHit       func(normal mgl32.Vec3)
}

type sweepResult struct {
	delta    mgl32.Vec3
	collideX bool
	collideY bool
	collideZ bool
}

// NewBoxMotor returns a motor sweeping the given capsule against w.
func NewBoxMotor(w *World, capsule Capsule, opts Options) *BoxMotor {
	assert.IsTrue(w != nil, "box motor requires a world")
	assert.IsTrue(capsule.Radius > 0 && capsule.Height > 0, "invalid capsule %v", capsule)
	return &BoxMotor{
		world:   w,
		opts:    opts,
		capsule: capsule,
		forward: mgl32.Vec3{0, 0, 1},
	}
}

func (m *BoxMotor) Position() mgl32.Vec3 { return m.pos }
func (m *BoxMotor) Velocity() mgl32.Vec3 { return m.vel }
func (m *BoxMotor) Up() mgl32.Vec3       { return mgl32.Vec3{0, 1, 0} }
func (m *BoxMotor) Forward() mgl32.Vec3  { return m.forward }
func (m *BoxMotor) Right() mgl32.Vec3    { return m.Up().Cross(m.forward) }
func (m *BoxMotor) Ground() GroundState  { return m.ground }
func (m *BoxMotor) Capsule() Capsule     { return m.capsule }

func (m *BoxMotor) SetCapsule(c Capsule) { m.capsule = c }

func (m *BoxMotor) SetForward(dir mgl32.Vec3) {
	if n := smath.SafeNormalize(smath.HzVec(dir)); n.LenSqr() > 0 {
		m.forward = n
	}
}

// SetPosition teleports the motor without sweeping. Intended for host setup,
// not for per-tick use.
func (m *BoxMotor) SetPosition(pos mgl32.Vec3) { m.pos = pos }

func (m *BoxMotor) ForceUnground(seconds float32) {
	if seconds > m.ungroundTimer {
		m.ungroundTimer = seconds
	}
	m.ground = GroundState{}
}

func (m *BoxMotor) OnWallHit(fn func(normal mgl32.Vec3)) { m.wallHit = fn }

func (m *BoxMotor) CastRay(origin, dir mgl32.Vec3, maxDist float32, mask Mask) RayHit {
	return m.world.CastRay(origin, dir, maxDist, mask)
}

func (m *BoxMotor) Overlaps(center mgl32.Vec3, c Capsule, mask Mask) bool {
	return len(m.world.NearbyBoxes(c.BoundingBox(center), mask)) > 0
}

// MoveTo sweeps the capsule to the given position and leaves velocity alone.
// Grounding refreshes on the next Step.
func (m *BoxMotor) MoveTo(pos mgl32.Vec3) {
	res := m.sweep(pos.Sub(m.pos))
	m.pos = m.pos.Add(res.delta)
}

// Step integrates one fixed tick of movement.
func (m *BoxMotor) Step(dt float32, vel mgl32.Vec3) mgl32.Vec3 {
	if m.ungroundTimer > 0 {
		m.ungroundTimer -= dt
	}

	wasGrounded := m.ground.Found
	delta := vel.Mul(dt)
	res := m.sweep(delta)
	m.pos = m.pos.Add(res.delta)

	if (res.collideX || res.collideZ) && m.wallHit != nil {
		normal := mgl32.Vec3{}
		if res.collideX {
			normal[0] = -sign(delta.X())
		}
		if res.collideZ {
			normal[2] = -sign(delta.Z())
		}
		if normal.LenSqr() > 0 {
			m.wallHit(normal.Normalize())
		}
	}

	newVel := vel
	if res.collideX {
		newVel[0] = 0
	}
	if res.collideY {
		newVel[1] = 0
	}
	if res.collideZ {
		newVel[2] = 0
	}

	grounded := res.collideY && delta.Y() < 0
	if !grounded && wasGrounded && m.ungroundTimer <= 0 && delta.Y() <= 0 {
		// Snap over small dips so walking down steps does not flip the
		// character airborne every other tick.
		snap := m.sweep(mgl32.Vec3{0, -m.opts.GroundSnapDistance, 0})
		if snap.collideY {
			m.pos = m.pos.Add(snap.delta)
			grounded = true
		}
	}

	m.updateGrounding(grounded)
	m.vel = newVel
	return newVel
}

func (m *BoxMotor) updateGrounding(grounded bool) {
	if !grounded || m.ungroundTimer > 0 {
		m.ground = GroundState{}
		return
	}

	normal := m.Up()
	probe := m.CastRay(m.pos.Add(mgl32.Vec3{0, 0.1, 0}), mgl32.Vec3{0, -1, 0}, 0.5, m.opts.CollisionMask)
	if probe.Hit {
		normal = probe.Normal
	}
	m.ground = GroundState{
		Found:  true,
		Stable: smath.SlopeAngle(normal, m.Up()) <= m.opts.MaxStableSlopeAngle,
		Normal: normal,
	}
}

// sweep resolves a positional delta against the world one axis at a time,
// with a step-up retry when a grounded horizontal move is blocked.
func (m *BoxMotor) sweep(delta mgl32.Vec3) sweepResult {
	bb := m.capsule.BoundingBox(m.pos)
	boxes := m.world.NearbyBoxes(bb.Extend(delta).Grow(0.1), m.opts.CollisionMask)

	yVel := mgl32.Vec3{0, delta.Y()}
	xVel := mgl32.Vec3{delta.X()}
	zVel := mgl32.Vec3{0, 0, delta.Z()}

	for i := len(boxes) - 1; i >= 0; i-- {
		yVel = clipCollide(boxes[i], bb, yVel)
	}
	bb = bb.Translate(yVel)

	for i := len(boxes) - 1; i >= 0; i-- {
		xVel = clipCollide(boxes[i], bb, xVel)
	}
	bb = bb.Translate(xVel)

	for i := len(boxes) - 1; i >= 0; i-- {
		zVel = clipCollide(boxes[i], bb, zVel)
	}

	resolved := mgl32.Vec3{xVel.X(), yVel.Y(), zVel.Z()}
	collideX := math32.Abs(delta.X()-resolved.X()) >= 1e-5
	collideY := math32.Abs(delta.Y()-resolved.Y()) >= 1e-5
	collideZ := math32.Abs(delta.Z()-resolved.Z()) >= 1e-5

	if m.ground.Found && m.opts.StepHeight > 0 && (collideX || collideZ) {
		if stepped, ok := m.stepUp(delta, boxes); ok && smath.HzDistSqr(resolved) < smath.HzDistSqr(stepped) {
			return sweepResult{
				delta:    stepped,
				collideX: math32.Abs(delta.X()-stepped.X()) >= 1e-5,
				collideY: collideY,
				collideZ: math32.Abs(delta.Z()-stepped.Z()) >= 1e-5,
			}
		}
	}

	return sweepResult{delta: resolved, collideX: collideX, collideY: collideY, collideZ: collideZ}
}

// stepUp retries a blocked horizontal move lifted by the step height, then
// settles back down onto the obstacle.
func (m *BoxMotor) stepUp(delta mgl32.Vec3, boxes []cube.BBox) (mgl32.Vec3, bool) {
	upVel := mgl32.Vec3{0, m.opts.StepHeight}
	xVel := mgl32.Vec3{delta.X()}
	zVel := mgl32.Vec3{0, 0, delta.Z()}

	bb := m.capsule.BoundingBox(m.pos)
	for _, box := range boxes {
		upVel = clipCollide(box, bb, upVel)
	}
	bb = bb.Translate(upVel)

	for _, box := range boxes {
		xVel = clipCollide(box, bb, xVel)
	}
	bb = bb.Translate(xVel)

	for _, box := range boxes {
		zVel = clipCollide(box, bb, zVel)
	}
	bb = bb.Translate(zVel)

	downVel := upVel.Mul(-1)
	for _, box := range boxes {
		downVel = clipCollide(box, bb, downVel)
	}
	upVel = upVel.Add(downVel)

	stepped := mgl32.Vec3{xVel.X(), upVel.Y(), zVel.Z()}
	if len(m.world.NearbyBoxes(bb.Translate(downVel), m.opts.CollisionMask)) > 0 {
		return mgl32.Vec3{}, false
	}
	return stepped, true
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}
