package event

import (
	"github.com/elliotchance/orderedmap/v2"
)

// JumpType tags a performed jump for animation/audio consumers.
type JumpType uint8

const (
	JumpTypeGround JumpType = iota
	JumpTypeCoyote
	JumpTypeAir
	JumpTypeWall
)

func (t JumpType) String() string {
	switch t {
	case JumpTypeGround:
		return "ground"
	case JumpTypeCoyote:
		return "coyote"
	case JumpTypeAir:
		return "air"
	case JumpTypeWall:
		return "wall"
	}
	return "unknown"
}

// JumpEvent is emitted once for every honored jump.
type JumpEvent struct {
	OnTick   uint64
	JumpType JumpType
	Detail   *orderedmap.OrderedMap[string, any]
}

func (e *JumpEvent) Type() string { return "stride:jump" }
func (e *JumpEvent) Tick() uint64 { return e.OnTick }

func NewJumpEvent(tick uint64, jumpType JumpType) *JumpEvent {
	return &JumpEvent{OnTick: tick, JumpType: jumpType, Detail: orderedmap.NewOrderedMap[string, any]()}
}

// DashEvent is emitted when a dash is successfully applied.
type DashEvent struct {
	OnTick      uint64
	ChargesLeft int
	Detail      *orderedmap.OrderedMap[string, any]
}

func (e *DashEvent) Type() string { return "stride:dash" }
func (e *DashEvent) Tick() uint64 { return e.OnTick }

func NewDashEvent(tick uint64, chargesLeft int) *DashEvent {
	return &DashEvent{OnTick: tick, ChargesLeft: chargesLeft, Detail: orderedmap.NewOrderedMap[string, any]()}
}

// SlideEvent is emitted on slide entry and exit.
type SlideEvent struct {
	OnTick  uint64
	Started bool
	Detail  *orderedmap.OrderedMap[string, any]
}

func (e *SlideEvent) Type() string { return "stride:slide" }
func (e *SlideEvent) Tick() uint64 { return e.OnTick }

func NewSlideEvent(tick uint64, started bool) *SlideEvent {
	return &SlideEvent{OnTick: tick, Started: started, Detail: orderedmap.NewOrderedMap[string, any]()}
}

// MantlePhase describes a mantle state machine transition carried by a
// MantleEvent.
type MantlePhase uint8

const (
	MantlePhaseGrabbed MantlePhase = iota
	MantlePhaseClimbStarted
	MantlePhaseCompleted
	MantlePhaseDropped
)

func (p MantlePhase) String() string {
	switch p {
	case MantlePhaseGrabbed:
		return "grabbed"
	case MantlePhaseClimbStarted:
		return "climb_started"
	case MantlePhaseCompleted:
		return "completed"
	case MantlePhaseDropped:
		return "dropped"
	}
	return "unknown"
}

// MantleEvent is emitted on every mantle state machine transition.
type MantleEvent struct {
	OnTick uint64
	Phase  MantlePhase
	Detail *orderedmap.OrderedMap[string, any]
}

func (e *MantleEvent) Type() string { return "stride:mantle" }
func (e *MantleEvent) Tick() uint64 { return e.OnTick }

func NewMantleEvent(tick uint64, phase MantlePhase) *MantleEvent {
	return &MantleEvent{OnTick: tick, Phase: phase, Detail: orderedmap.NewOrderedMap[string, any]()}
}
