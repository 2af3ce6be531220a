package traversal

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSnapshotHashStableForEqualState(t *testing.T) {
	c, m := newCoordFixture()
	coordTick(c, m, 1.0/60, Intent{Move: mgl32.Vec2{0, 1}})

	a := c.Snapshot().Sum64()
	b := c.Snapshot().Sum64()
	if a != b {
		t.Fatalf("same state hashed differently: %x vs %x", a, b)
	}
}

func TestSnapshotHashChangesWithState(t *testing.T) {
	c, m := newCoordFixture()
	before := c.Snapshot().Sum64()

	coordTick(c, m, 1.0/60, Intent{Move: mgl32.Vec2{0, 1}})
	after := c.Snapshot().Sum64()
	if before == after {
		t.Fatal("state advanced but the snapshot hash did not change")
	}
}
