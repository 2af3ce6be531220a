package traversal

import (
	"bytes"
	"encoding/binary"

	"github.com/stride-sim/stride/internal"
	"github.com/zeebo/xxh3"
)

// Snapshot is a fixed-layout capture of the observable traversal state after
// a tick. Two runs fed identical intents and timesteps must produce identical
// snapshot hashes on every tick.
type Snapshot struct {
	Tick        uint64
	Position    [3]float32
	Velocity    [3]float32
	Forward     [3]float32
	Mode        uint8
	Sliding     bool
	Crouching   bool
	Grounded    bool
	MantleState uint8
	DashCharges int32
	AirJumps    int32
}

// Snapshot records the coordinator's current observable state.
func (c *Coordinator) Snapshot() Snapshot {
	pos := c.m.Position()
	vel := c.m.Velocity()
	fwd := c.m.Forward()
	return Snapshot{
		Tick:        c.clock.tick,
		Position:    [3]float32{pos.X(), pos.Y(), pos.Z()},
		Velocity:    [3]float32{vel.X(), vel.Y(), vel.Z()},
		Forward:     [3]float32{fwd.X(), fwd.Y(), fwd.Z()},
		Mode:        uint8(c.mode),
		Sliding:     c.slide.Sliding(),
		Crouching:   c.crouching,
		Grounded:    c.m.Ground().Found,
		MantleState: uint8(c.mantle.State()),
		DashCharges: int32(c.dash.Charges()),
		AirJumps:    int32(c.jump.AirJumpsUsed()),
	}
}

// Sum64 hashes the snapshot's fixed binary layout.
func (s Snapshot) Sum64() uint64 {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer internal.BufferPool.Put(buf)
	buf.Reset()

	_ = binary.Write(buf, binary.LittleEndian, s)
	return xxh3.Hash(buf.Bytes())
}
