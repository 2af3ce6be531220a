package traversal

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stride-sim/stride/event"
	"github.com/stride-sim/stride/smath"
)

func TestDashFromRest(t *testing.T) {
	events := event.NewQueue()
	h := newDashHandler(testConfig(), events, &clock{})

	h.RequestDash()
	var impulse mgl32.Vec3
	if !h.TryApplyDash(&impulse, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}) {
		t.Fatal("dash with full charges did not apply")
	}

	if !approx(impulse.X(), 15) {
		t.Fatalf("expected impulse x=15, got %v", impulse)
	}
	if h.Charges() != 2 {
		t.Fatalf("expected 2 charges left, got %d", h.Charges())
	}
	ev := events.Drain()[0].(*event.DashEvent)
	if ev.ChargesLeft != 2 {
		t.Fatalf("expected event charges_left=2, got %d", ev.ChargesLeft)
	}
}

func TestDashDistanceInvariance(t *testing.T) {
	// Regardless of entry velocity, post-dash speed along the dash direction
	// must be exactly the dash force.
	dir := mgl32.Vec3{1, 0, 0}
	for _, vel := range []mgl32.Vec3{
		{},
		{6, 0, 0},
		{-4, 0, 0},
		{3, -2, 5},
	} {
		h := newDashHandler(testConfig(), event.NewQueue(), &clock{})
		h.RequestDash()
		var impulse mgl32.Vec3
		if !h.TryApplyDash(&impulse, vel, dir) {
			t.Fatalf("dash did not apply for entry velocity %v", vel)
		}
		along := vel.Add(impulse).Dot(dir)
		if !approx(along, 15) {
			t.Fatalf("entry velocity %v: speed along dash dir = %v, want 15", vel, along)
		}
	}
}

func TestDashIntermissionBlocksRetrigger(t *testing.T) {
	h := newDashHandler(testConfig(), event.NewQueue(), &clock{})

	var impulse mgl32.Vec3
	h.RequestDash()
	h.TryApplyDash(&impulse, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})

	h.RequestDash()
	if h.TryApplyDash(&impulse, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}) {
		t.Fatal("dash applied during intermission")
	}

	// 0.3s intermission at 60 Hz.
	for i := 0; i < 20; i++ {
		h.UpdateCharges(1.0 / 60)
	}
	h.RequestDash()
	if !h.TryApplyDash(&impulse, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}) {
		t.Fatal("dash blocked after intermission elapsed")
	}
}

func TestDashChargeConservation(t *testing.T) {
	cfg := testConfig()
	h := newDashHandler(cfg, event.NewQueue(), &clock{})

	var impulse mgl32.Vec3
	spent := 0
	for i := 0; i < cfg.MaxDashCharges+2; i++ {
		h.RequestDash()
		if h.TryApplyDash(&impulse, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}) {
			spent++
		}
		// Wait out the intermission but not the reload.
		for j := 0; j < 20; j++ {
			h.UpdateCharges(1.0 / 60)
		}
	}

	if spent != cfg.MaxDashCharges {
		t.Fatalf("spent %d dashes with %d charges", spent, cfg.MaxDashCharges)
	}
	if h.Charges() != 0 {
		t.Fatalf("expected empty pool, got %d", h.Charges())
	}
}

func TestDashReloadOneChargeAtATime(t *testing.T) {
	cfg := testConfig()
	h := newDashHandler(cfg, event.NewQueue(), &clock{})

	var impulse mgl32.Vec3
	for i := 0; i < cfg.MaxDashCharges; i++ {
		h.RequestDash()
		h.TryApplyDash(&impulse, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
		for j := 0; j < 20; j++ {
			h.UpdateCharges(1.0 / 60)
		}
	}
	// Pool empty; the reload loop above already banked ~1s of the 2s reload.

	start := h.Charges()
	ticks := 0
	for h.Charges() == start {
		h.UpdateCharges(1.0 / 60)
		ticks++
		if ticks > 60*3 {
			t.Fatal("no charge reloaded within 3s")
		}
	}
	if h.Charges() != start+1 {
		t.Fatalf("expected exactly one charge restored, got %d", h.Charges()-start)
	}
}

func TestDashZeroDirectionRejected(t *testing.T) {
	h := newDashHandler(testConfig(), event.NewQueue(), &clock{})
	h.RequestDash()
	var impulse mgl32.Vec3
	if h.TryApplyDash(&impulse, mgl32.Vec3{}, mgl32.Vec3{}) {
		t.Fatal("dash applied with zero direction")
	}
	if h.Charges() != testConfig().MaxDashCharges {
		t.Fatal("rejected dash consumed a charge")
	}
}

func TestDashProjectionCancelsOnlyAlongDirection(t *testing.T) {
	h := newDashHandler(testConfig(), event.NewQueue(), &clock{})
	h.RequestDash()

	vel := mgl32.Vec3{2, -3, 4}
	dir := mgl32.Vec3{0, 0, 1}
	var impulse mgl32.Vec3
	h.TryApplyDash(&impulse, vel, dir)

	after := vel.Add(impulse)
	lateral := after.Sub(smath.Project(after, dir))
	want := vel.Sub(smath.Project(vel, dir))
	if !approx(lateral.X(), want.X()) || !approx(lateral.Y(), want.Y()) {
		t.Fatalf("dash disturbed lateral velocity: got %v, want %v", lateral, want)
	}
}
