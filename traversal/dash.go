package traversal

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stride-sim/stride/config"
	"github.com/stride-sim/stride/event"
	"github.com/stride-sim/stride/smath"
)

// DashHandler owns the charge pool and impulse application. Charges reload
// one at a time; the intermission timer blocks re-triggering regardless of
// how many charges remain.
type DashHandler struct {
	cfg    *config.Config
	events *event.Queue
	clock  *clock

	currentCharges    int
	reloadTimer       float32
	intermissionTimer float32
	pendingDash       bool
}

func newDashHandler(cfg *config.Config, events *event.Queue, clk *clock) *DashHandler {
	return &DashHandler{cfg: cfg, events: events, clock: clk, currentCharges: cfg.MaxDashCharges}
}

// RequestDash latches a dash intent for the current tick.
func (h *DashHandler) RequestDash() {
	h.pendingDash = true
}

// Charges returns the number of dash charges currently available.
func (h *DashHandler) Charges() int {
	return h.currentCharges
}

// TryApplyDash adds a dash impulse to the accumulator and reports whether it
// applied. The existing velocity component along the dash direction is
// cancelled first so the resulting speed along it is exactly the dash force,
// keeping the travel distance consistent regardless of entry speed.
func (h *DashHandler) TryApplyDash(impulse *mgl32.Vec3, vel, direction mgl32.Vec3) bool {
	if !h.pendingDash || h.intermissionTimer > 0 || h.currentCharges <= 0 {
		return false
	}
	dir := smath.SafeNormalize(direction)
	if dir.LenSqr() == 0 {
		return false
	}

	*impulse = impulse.Add(dir.Mul(h.cfg.DashForce).Sub(smath.Project(vel, dir)))

	h.currentCharges--
	h.intermissionTimer = h.cfg.DashIntermission
	h.pendingDash = false

	ev := event.NewDashEvent(h.clock.tick, h.currentCharges)
	ev.Detail.Set("force", h.cfg.DashForce)
	h.events.Push(ev)
	return true
}

// UpdateCharges runs the after-tick reload and cooldown bookkeeping. One
// charge is restored per full reload interval while below the cap; the
// reload timer resets whenever a charge is gained or the pool is full.
func (h *DashHandler) UpdateCharges(dt float32) {
	if h.intermissionTimer > 0 {
		h.intermissionTimer -= dt
	}

	if h.currentCharges >= h.cfg.MaxDashCharges {
		h.reloadTimer = 0
	} else {
		h.reloadTimer += dt
		if h.reloadTimer >= h.cfg.DashReloadTime {
			h.currentCharges++
			h.reloadTimer = 0
		}
	}

	h.pendingDash = false
}
