package event

// Event is an ability notification emitted by the traversal core during a
// tick. Events are buffered on a Queue and drained by the host after the tick
// resolves, keeping the core free of direct side effects.
type Event interface {
	Type() string
	Tick() uint64
}

// Queue is the per-tick event buffer. It is not safe for concurrent use; the
// simulation runs a single authoritative tick at a time.
type Queue struct {
	events []Event
}

// NewQueue returns an empty event queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event to the queue.
func (q *Queue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Drain returns all buffered events and empties the queue.
func (q *Queue) Drain() []Event {
	evs := q.events
	q.events = nil
	return evs
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	return len(q.events)
}
