package traversal

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stride-sim/stride/event"
)

func newJumpFixture(m *fakeMotor) (*JumpHandler, *event.Queue) {
	events := event.NewQueue()
	return newJumpHandler(testConfig(), m, events, &clock{}), events
}

func TestGroundJump(t *testing.T) {
	m := newFakeMotor()
	h, events := newJumpFixture(m)

	h.RequestJump()
	vel := h.ProcessJump(mgl32.Vec3{}, 1.0/60, mgl32.Vec3{})

	if !approx(vel.Y(), 10) {
		t.Fatalf("expected jump up speed 10, got %v", vel.Y())
	}
	if !h.JumpedThisFrame() {
		t.Fatal("expected JumpedThisFrame after honored jump")
	}
	evs := events.Drain()
	if len(evs) != 1 {
		t.Fatalf("expected 1 jump event, got %d", len(evs))
	}
	if ev := evs[0].(*event.JumpEvent); ev.JumpType != event.JumpTypeGround {
		t.Fatalf("expected ground jump, got %v", ev.JumpType)
	}
}

func TestWallJumpTakesPriority(t *testing.T) {
	m := newFakeMotor()
	m.ground = motorGroundAir()
	h, events := newJumpFixture(m)

	// An air jump is also available; the wall contact must win.
	h.OnWallHit(mgl32.Vec3{-1, 0, 0})
	h.RequestJump()
	vel := h.ProcessJump(mgl32.Vec3{5, 0, 0}, 1.0/60, mgl32.Vec3{})

	if vel.X() >= 0 {
		t.Fatalf("expected velocity pushed along wall normal, got %v", vel)
	}
	ev := events.Drain()[0].(*event.JumpEvent)
	if ev.JumpType != event.JumpTypeWall {
		t.Fatalf("expected wall jump, got %v", ev.JumpType)
	}
	if h.AirJumpsUsed() != 0 {
		t.Fatalf("wall jump must not consume an air jump, used %d", h.AirJumpsUsed())
	}
}

func TestWallJumpOutranksGroundContact(t *testing.T) {
	m := newFakeMotor()
	h, events := newJumpFixture(m)

	// Stably grounded and touching a wall on the same tick.
	h.OnWallHit(mgl32.Vec3{-1, 0, 0})
	h.RequestJump()
	h.ProcessJump(mgl32.Vec3{}, 1.0/60, mgl32.Vec3{})

	ev := events.Drain()[0].(*event.JumpEvent)
	if ev.JumpType != event.JumpTypeWall {
		t.Fatalf("expected wall jump over ground jump, got %v", ev.JumpType)
	}
}

func TestWallJumpWindowIsOneTick(t *testing.T) {
	m := newFakeMotor()
	m.ground = motorGroundAir()
	h, events := newJumpFixture(m)

	h.OnWallHit(mgl32.Vec3{-1, 0, 0})
	// A tick passes without a jump request; the opportunity is consumed.
	h.ProcessJump(mgl32.Vec3{}, 1.0/60, mgl32.Vec3{})
	h.PostUpdate(1.0 / 60)

	h.RequestJump()
	h.ProcessJump(mgl32.Vec3{}, 1.0/60, mgl32.Vec3{})
	ev := events.Drain()[0].(*event.JumpEvent)
	if ev.JumpType == event.JumpTypeWall {
		t.Fatal("wall jump honored after its one-tick window expired")
	}
}

func TestCoyoteJumpWithinGrace(t *testing.T) {
	m := newFakeMotor()
	h, events := newJumpFixture(m)

	// Walk off a ledge: grounded for one tick, then airborne within grace.
	h.PostUpdate(1.0 / 60)
	m.ground = motorGroundAir()
	h.PostUpdate(1.0 / 60)

	h.RequestJump()
	h.ProcessJump(mgl32.Vec3{}, 1.0/60, mgl32.Vec3{})
	ev := events.Drain()[0].(*event.JumpEvent)
	if ev.JumpType != event.JumpTypeCoyote {
		t.Fatalf("expected coyote jump, got %v", ev.JumpType)
	}
	if h.AirJumpsUsed() != 0 {
		t.Fatal("coyote jump must not consume an air jump")
	}
}

func TestCoyoteExpiresAfterGrace(t *testing.T) {
	m := newFakeMotor()
	h, events := newJumpFixture(m)

	h.PostUpdate(1.0 / 60)
	m.ground = motorGroundAir()
	for i := 0; i < 12; i++ { // 0.2s > 0.1s grace
		h.PostUpdate(1.0 / 60)
	}

	h.RequestJump()
	h.ProcessJump(mgl32.Vec3{}, 1.0/60, mgl32.Vec3{})
	ev := events.Drain()[0].(*event.JumpEvent)
	if ev.JumpType != event.JumpTypeAir {
		t.Fatalf("expected air jump after coyote expiry, got %v", ev.JumpType)
	}
}

func TestAirJumpCap(t *testing.T) {
	m := newFakeMotor()
	m.ground = motorGroundAir()
	cfg := testConfig()
	cfg.MaxAirJumps = 1
	events := event.NewQueue()
	h := newJumpHandler(cfg, m, events, &clock{})
	// Ensure the coyote window is long expired.
	for i := 0; i < 12; i++ {
		h.PostUpdate(1.0 / 60)
	}

	h.RequestJump()
	vel := h.ProcessJump(mgl32.Vec3{}, 1.0/60, mgl32.Vec3{})
	if !approx(vel.Y(), cfg.AirJumpUpSpeed) {
		t.Fatalf("expected air jump speed %v, got %v", cfg.AirJumpUpSpeed, vel.Y())
	}
	if h.AirJumpsUsed() != 1 {
		t.Fatalf("expected 1 air jump used, got %d", h.AirJumpsUsed())
	}

	h.RequestJump()
	vel = h.ProcessJump(mgl32.Vec3{0, -2, 0}, 1.0/60, mgl32.Vec3{})
	if vel != (mgl32.Vec3{0, -2, 0}) {
		t.Fatalf("second air jump must be ignored, got %v", vel)
	}
	if events.Len() != 1 {
		t.Fatalf("expected a single jump event, got %d", events.Len())
	}
}

func TestAirJumpCounterResetsOnLanding(t *testing.T) {
	m := newFakeMotor()
	m.ground = motorGroundAir()
	h, _ := newJumpFixture(m)
	for i := 0; i < 12; i++ {
		h.PostUpdate(1.0 / 60)
	}

	h.RequestJump()
	h.ProcessJump(mgl32.Vec3{}, 1.0/60, mgl32.Vec3{})
	h.PostUpdate(1.0 / 60)
	if h.AirJumpsUsed() != 1 {
		t.Fatalf("expected 1 air jump used, got %d", h.AirJumpsUsed())
	}

	// Touch down on a later tick that never reaches ProcessJump, the way a
	// tick owned by an active mantle plays out.
	m.ground = motorGroundStable()
	h.PostUpdate(1.0 / 60)
	if h.AirJumpsUsed() != 0 {
		t.Fatalf("landing must reset the air jump counter, got %d", h.AirJumpsUsed())
	}
}

func TestJumpBufferHonoredOnLanding(t *testing.T) {
	m := newFakeMotor()
	m.ground = motorGroundAir()
	cfg := testConfig()
	cfg.MaxAirJumps = 0
	events := event.NewQueue()
	h := newJumpHandler(cfg, m, events, &clock{})
	for i := 0; i < 12; i++ {
		h.PostUpdate(1.0 / 60)
	}

	// Pressed just before touching down: no jump type is valid yet.
	h.RequestJump()
	h.ProcessJump(mgl32.Vec3{}, 1.0/60, mgl32.Vec3{})
	if events.Len() != 0 {
		t.Fatal("jump honored while airborne with no air jumps")
	}

	m.ground = motorGroundStable()
	h.PostUpdate(1.0 / 60)
	h.ProcessJump(mgl32.Vec3{}, 1.0/60, mgl32.Vec3{})
	if events.Len() != 1 {
		t.Fatal("buffered jump not honored on landing")
	}
}

func TestUnstableSlopeJumpPushesOffSurface(t *testing.T) {
	m := newFakeMotor()
	normal := mgl32.Vec3{0.8, 0.6, 0}.Normalize()
	m.ground = motorGroundState(true, false, normal)
	h, _ := newJumpFixture(m)

	h.RequestJump()
	vel := h.ProcessJump(mgl32.Vec3{}, 1.0/60, mgl32.Vec3{})
	if vel.X() <= 0 {
		t.Fatalf("expected jump directed along slope normal, got %v", vel)
	}
}
