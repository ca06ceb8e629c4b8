package schedule

import (
	"sync"
	"time"
)

// Kind identifies what produced an event.
type Kind int

const (
	KindTick Kind = iota // One display refresh
	KindSpawnObstacle
	KindSpawnDecoration
	KindSpawnCollectible
	KindJump // External jump/restart trigger
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTick:
		return "tick"
	case KindSpawnObstacle:
		return "spawn-obstacle"
	case KindSpawnDecoration:
		return "spawn-decoration"
	case KindSpawnCollectible:
		return "spawn-collectible"
	case KindJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Event is one queued unit of work for the consumer.
type Event struct {
	Kind Kind
	At   time.Duration // Offset from the scheduler's start
}

// periodic is a fixed-period producer that behaves like setInterval.
type periodic struct {
	kind   Kind
	period time.Duration
	next   time.Duration
}

// Scheduler collects events from the tick producer, periodic producers and
// external triggers into one FIFO queue. Periodic events are materialized
// lazily whenever any producer enqueues, so the queue stays chronological.
type Scheduler struct {
	clock Clock

	mu        sync.Mutex
	start     time.Time
	producers []*periodic
	queue     []Event
	ticks     uint64
}

// New creates a scheduler whose time origin is clock.Now().
func New(clock Clock) *Scheduler {
	return &Scheduler{
		clock: clock,
		start: clock.Now(),
	}
}

// Every registers a periodic producer. The first event fires one period
// after the scheduler's origin. Periods must be positive.
func (s *Scheduler) Every(kind Kind, period time.Duration) {
	if period <= 0 {
		panic("schedule: non-positive period")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.producers = append(s.producers, &periodic{
		kind:   kind,
		period: period,
		next:   s.elapsed() + period,
	})
}

// Frame enqueues all periodic events due by now followed by one tick.
func (s *Scheduler) Frame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.collectDue()
	s.queue = append(s.queue, Event{Kind: KindTick, At: now})
	s.ticks++
}

// Trigger enqueues an external event at the current time.
func (s *Scheduler) Trigger(kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.collectDue()
	s.queue = append(s.queue, Event{Kind: kind, At: now})
}

// Drain hands every queued event to fn in order. Events enqueued by fn
// itself are delivered in the same call.
func (s *Scheduler) Drain(fn func(Event)) int {
	n := 0
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return n
		}
		batch := s.queue
		s.queue = nil
		s.mu.Unlock()

		for _, ev := range batch {
			fn(ev)
			n++
		}
	}
}

// Pending returns the number of queued events.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Ticks returns how many frames have been enqueued since the last Reset.
func (s *Scheduler) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Elapsed returns the time since the scheduler's origin.
func (s *Scheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed()
}

// Reset moves the origin to now, drops queued events and rearms every
// producer one period out.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.start = s.clock.Now()
	s.queue = nil
	s.ticks = 0
	for _, p := range s.producers {
		p.next = p.period
	}
}

func (s *Scheduler) elapsed() time.Duration {
	return s.clock.Now().Sub(s.start)
}

// collectDue appends every periodic event due by now in chronological
// order; ties go to the producer registered first. Caller holds mu.
func (s *Scheduler) collectDue() time.Duration {
	now := s.elapsed()
	for {
		var due *periodic
		for _, p := range s.producers {
			if p.next > now {
				continue
			}
			if due == nil || p.next < due.next {
				due = p
			}
		}
		if due == nil {
			return now
		}
		s.queue = append(s.queue, Event{Kind: due.kind, At: due.next})
		due.next += due.period
	}
}
