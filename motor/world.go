package motor

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Collider is a static, layer-tagged box in the collision world.
type Collider struct {
	Box    cube.BBox
	Layers Mask
}

// World is the static collision world the reference motor sweeps against.
type World struct {
	colliders []Collider
}

// NewWorld returns an empty collision world.
func NewWorld() *World {
	return &World{}
}

// Add inserts a collider into the world.
func (w *World) Add(box cube.BBox, layers Mask) {
	w.colliders = append(w.colliders, Collider{Box: box, Layers: layers})
}

// NearbyBoxes returns the boxes on matching layers that intersect the given
// bounding box.
func (w *World) NearbyBoxes(bb cube.BBox, mask Mask) []cube.BBox {
	var boxes []cube.BBox
	for _, c := range w.colliders {
		if c.Layers&mask == 0 {
			continue
		}
		if c.Box.IntersectsWith(bb) {
			boxes = append(boxes, c.Box)
		}
	}
	return boxes
}

// CastRay returns the nearest ray intersection against the world, restricted
// to the given layer mask.
func (w *World) CastRay(origin, dir mgl32.Vec3, maxDist float32, mask Mask) RayHit {
	var best RayHit
	best.Distance = maxDist
	for _, c := range w.colliders {
		if c.Layers&mask == 0 {
			continue
		}
		dist, normal, ok := rayBoxIntersect(origin, dir, c.Box, best.Distance)
		if !ok {
			continue
		}
		best = RayHit{
			Hit:      true,
			Position: origin.Add(dir.Mul(dist)),
			Normal:   normal,
			Distance: dist,
		}
	}
	if !best.Hit {
		return RayHit{}
	}
	return best
}

// rayBoxIntersect performs a slab intersection of a normalized ray against a
// box and reports the entry distance and face normal.
func rayBoxIntersect(origin, dir mgl32.Vec3, box cube.BBox, maxDist float32) (float32, mgl32.Vec3, bool) {
	tMin, tMax := float32(0), maxDist
	entryAxis, entrySign := -1, float32(0)

	min, max := box.Min(), box.Max()
	for i := 0; i < 3; i++ {
		if math32.Abs(dir[i]) < 1e-8 {
			if origin[i] < min[i] || origin[i] > max[i] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}

		inv := 1 / dir[i]
		tNear := (min[i] - origin[i]) * inv
		tFar := (max[i] - origin[i]) * inv
		sign := float32(-1)
		if tNear > tFar {
			tNear, tFar = tFar, tNear
			sign = 1
		}
		if tNear > tMin {
			tMin = tNear
			entryAxis = i
			entrySign = sign
		}
		tMax = math32.Min(tMax, tFar)
		if tMin > tMax {
			return 0, mgl32.Vec3{}, false
		}
	}

	// A ray starting inside the box has no entry face.
	if entryAxis == -1 {
		return 0, mgl32.Vec3{}, false
	}
	normal := mgl32.Vec3{}
	normal[entryAxis] = entrySign
	return tMin, normal, true
}
