package motor

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Mask restricts geometric queries to colliders on matching layers.
type Mask uint32

// MaskAll matches every collision layer.
const MaskAll Mask = 0xffffffff

// GroundState is the motor's grounding classification for the current tick.
// Stable means the character is supported by a walkable surface; Found means
// any ground was detected, walkable or not.
type GroundState struct {
	Stable bool
	Found  bool
	Normal mgl32.Vec3
}

// Capsule describes the character's collision capsule. The motor position is
// the capsule's bottom center; YOffset shifts the collision volume upward
// from it.
type Capsule struct {
	Radius  float32
	Height  float32
	YOffset float32
}

// BoundingBox returns the capsule's bounding box translated to the given
// bottom-center position.
func (c Capsule) BoundingBox(pos mgl32.Vec3) cube.BBox {
	return cube.Box(
		pos[0]-c.Radius,
		pos[1]+c.YOffset,
		pos[2]-c.Radius,
		pos[0]+c.Radius,
		pos[1]+c.YOffset+c.Height,
		pos[2]+c.Radius,
	)
}

// RayHit is the result of a ray query against the collision world.
type RayHit struct {
	Hit      bool
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Motor is the kinematic motor contract consumed by the traversal core. The
// core never mutates kinematic state directly; everything goes through this
// interface.
type Motor interface {
	// Queries.
	Position() mgl32.Vec3
	Velocity() mgl32.Vec3
	Up() mgl32.Vec3
	Forward() mgl32.Vec3
	Right() mgl32.Vec3
	Ground() GroundState
	Capsule() Capsule
	CastRay(origin, dir mgl32.Vec3, maxDist float32, mask Mask) RayHit
	Overlaps(center mgl32.Vec3, c Capsule, mask Mask) bool

	// Mutations.
	SetCapsule(c Capsule)
	SetForward(dir mgl32.Vec3)
	// ForceUnground suppresses ground snapping for the given duration so an
	// upward impulse is not cancelled by the snap on the same tick.
	ForceUnground(seconds float32)
	// MoveTo sweeps the capsule directly to the given position, resolving
	// collisions on the way. Used by abilities that command position instead
	// of velocity.
	MoveTo(pos mgl32.Vec3)
	// OnWallHit registers a callback invoked during Step for every non-stable
	// horizontal contact, with the contact's surface normal.
	OnWallHit(fn func(normal mgl32.Vec3))

	// Step integrates one fixed tick: it sweeps the capsule along vel*dt,
	// resolves collisions, refreshes the grounding classification and returns
	// the post-collision velocity.
	Step(dt float32, vel mgl32.Vec3) mgl32.Vec3
}
