package traversal

import "github.com/go-gl/mathgl/mgl32"

// Intent is a single frame of player input, written once per frame by the
// input layer and consumed exactly once by the next fixed tick. The move
// vector is planar and already camera-relative: X maps to world X, Y to
// world Z.
type Intent struct {
	Move mgl32.Vec2

	JumpRequested  bool
	DashRequested  bool
	SlideRequested bool
	MantleConfirm  bool
	DropRequested  bool

	SprintHeld bool
	CrouchHeld bool
}

// ClearOneShot resets the press-type flags while keeping held flags, so a
// stale latched intent does not re-trigger abilities on later ticks.
func (i *Intent) ClearOneShot() {
	i.JumpRequested = false
	i.DashRequested = false
	i.SlideRequested = false
	i.MantleConfirm = false
	i.DropRequested = false
}

// MoveVector returns the planar move input as a world-space vector.
func (i Intent) MoveVector() mgl32.Vec3 {
	return mgl32.Vec3{i.Move.X(), 0, i.Move.Y()}
}
