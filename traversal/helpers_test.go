package traversal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stride-sim/stride/config"
	"github.com/stride-sim/stride/motor"
)

// fakeMotor is a scripted motor with no collision world. Ground state, ray
// hits and overlap results are set directly by each test.
type fakeMotor struct {
	pos     mgl32.Vec3
	vel     mgl32.Vec3
	forward mgl32.Vec3
	capsule motor.Capsule
	ground  motor.GroundState

	ungroundTimer float32
	wallFn        func(normal mgl32.Vec3)

	rayFn     func(origin, dir mgl32.Vec3, maxDist float32) motor.RayHit
	overlapFn func(center mgl32.Vec3, c motor.Capsule) bool

	movedTo []mgl32.Vec3
}

func newFakeMotor() *fakeMotor {
	return &fakeMotor{
		forward: mgl32.Vec3{0, 0, 1},
		capsule: motor.Capsule{Radius: 0.35, Height: 1.8},
		ground:  motor.GroundState{Stable: true, Found: true, Normal: mgl32.Vec3{0, 1, 0}},
	}
}

func (m *fakeMotor) Position() mgl32.Vec3       { return m.pos }
func (m *fakeMotor) Velocity() mgl32.Vec3       { return m.vel }
func (m *fakeMotor) Up() mgl32.Vec3             { return mgl32.Vec3{0, 1, 0} }
func (m *fakeMotor) Forward() mgl32.Vec3        { return m.forward }
func (m *fakeMotor) Right() mgl32.Vec3          { return m.Up().Cross(m.forward) }
func (m *fakeMotor) Ground() motor.GroundState  { return m.ground }
func (m *fakeMotor) Capsule() motor.Capsule     { return m.capsule }
func (m *fakeMotor) SetCapsule(c motor.Capsule) { m.capsule = c }

func (m *fakeMotor) SetForward(dir mgl32.Vec3) { m.forward = dir }

func (m *fakeMotor) CastRay(origin, dir mgl32.Vec3, maxDist float32, _ motor.Mask) motor.RayHit {
	if m.rayFn == nil {
		return motor.RayHit{}
	}
	return m.rayFn(origin, dir, maxDist)
}

func (m *fakeMotor) Overlaps(center mgl32.Vec3, c motor.Capsule, _ motor.Mask) bool {
	if m.overlapFn == nil {
		return false
	}
	return m.overlapFn(center, c)
}

func (m *fakeMotor) ForceUnground(seconds float32) {
	m.ungroundTimer = seconds
	m.ground = motor.GroundState{}
}

func (m *fakeMotor) MoveTo(pos mgl32.Vec3) {
	m.pos = pos
	m.movedTo = append(m.movedTo, pos)
}

func (m *fakeMotor) OnWallHit(fn func(normal mgl32.Vec3)) { m.wallFn = fn }

func (m *fakeMotor) Step(dt float32, vel mgl32.Vec3) mgl32.Vec3 {
	if m.ungroundTimer > 0 {
		m.ungroundTimer -= dt
	}
	m.pos = m.pos.Add(vel.Mul(dt))
	m.vel = vel
	return vel
}

func motorGroundStable() motor.GroundState {
	return motor.GroundState{Stable: true, Found: true, Normal: mgl32.Vec3{0, 1, 0}}
}

func motorGroundAir() motor.GroundState {
	return motor.GroundState{}
}

func motorGroundState(found, stable bool, normal mgl32.Vec3) motor.GroundState {
	return motor.GroundState{Stable: stable, Found: found, Normal: normal}
}

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-3 && d > -1e-3
}
