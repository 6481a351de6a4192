package catalog

import (
	"sync"
	"time"
)

// State is a step of a sync run
type State string

const (
	StateIdle               State = "idle"
	StateCheckingRemote     State = "checking_remote"
	StateUsingCache         State = "using_cache"
	StateFetchingInitial    State = "fetching_initial_batch"
	StateReady              State = "ready"
	StateBackgroundFetching State = "background_fetching"
	StateFailed             State = "failed"
)

// Path is the branch a sync run took after checking the remote count
type Path string

const (
	PathNone  Path = ""
	PathCache Path = "cache"
	PathFetch Path = "fetch"
)

// Status is a snapshot of the controller
type Status struct {
	RunID       string
	State       State
	Path        Path
	RemoteCount int
	Loaded      int // size of the live record set
	Pending     int // ids still to fetch
	Cancelled   bool
	Err         error
	UpdatedAt   time.Time
}

// Background reports whether records are still being fetched
func (s Status) Background() bool {
	return s.State == StateBackgroundFetching
}

// Finished reports whether the run has ended, successfully or not
func (s Status) Finished() bool {
	return s.RunID != "" && (s.State == StateIdle || s.State == StateFailed)
}

// statusHub owns the current status and fans updates out to subscribers.
// Slow subscribers only ever see the latest status.
type statusHub struct {
	mu      sync.Mutex
	current Status
	subs    map[int]chan Status
	nextID  int
}

func newStatusHub() *statusHub {
	return &statusHub{
		current: Status{State: StateIdle},
		subs:    make(map[int]chan Status),
	}
}

func (h *statusHub) get() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// update applies fn to the current status and publishes the result
func (h *statusHub) update(fn func(s *Status)) Status {
	h.mu.Lock()
	defer h.mu.Unlock()

	fn(&h.current)
	h.current.UpdatedAt = time.Now()
	for _, ch := range h.subs {
		select {
		case <-ch:
		default:
		}
		ch <- h.current
	}
	return h.current
}

func (h *statusHub) subscribe() (<-chan Status, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Status, 1)
	ch <- h.current
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
}
