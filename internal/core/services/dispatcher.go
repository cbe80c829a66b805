package services

import (
	"sync"

	"github.com/legalease-labs/legalease/internal/logger"
)

// Dispatcher serialises background work per document. At most one run
// executes for a given document ID at any time; a trigger that arrives
// while a run is active is coalesced into a single follow-up run.
type Dispatcher struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	active map[string]*dispatchState
}

type dispatchState struct {
	pending bool
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		active: make(map[string]*dispatchState),
	}
}

// Dispatch runs fn for the given ID on a background goroutine. If a run
// for the same ID is already in flight, one follow-up run is recorded
// and executed after the current run finishes. Multiple triggers during
// a run collapse into that single follow-up.
func (d *Dispatcher) Dispatch(id string, fn func()) {
	d.mu.Lock()
	if state, ok := d.active[id]; ok {
		state.pending = true
		d.mu.Unlock()
		logger.Debug("Run for %s already in flight, coalescing trigger", id)
		return
	}
	d.active[id] = &dispatchState{}
	d.mu.Unlock()

	d.wg.Add(1)
	go d.loop(id, fn)
}

// loop executes fn, then repeats while follow-up triggers arrived
// during execution.
func (d *Dispatcher) loop(id string, fn func()) {
	defer d.wg.Done()

	for {
		fn()

		d.mu.Lock()
		state := d.active[id]
		if state == nil || !state.pending {
			delete(d.active, id)
			d.mu.Unlock()
			return
		}
		state.pending = false
		d.mu.Unlock()
	}
}

// Active reports whether a run is in flight for the given ID.
func (d *Dispatcher) Active(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.active[id]
	return ok
}

// Wait blocks until all in-flight runs have finished. Used on shutdown
// and in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
