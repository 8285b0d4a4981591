// Package worker provides the cooperative scheduler that ticks actor
// contexts: a goroutine per Worker, woken immediately on new mailbox
// traffic and backstopped by a periodic sweep so that futures without a
// Waker still make progress.
package worker

import (
	"sync"
	"time"

	"github.com/roasbeef/actorcore/actor"
)

const (
	defaultEventBuffer = 256
	sweepInterval       = time.Millisecond
)

// Worker runs a single goroutine that ticks a set of actor.Tickable
// contexts. A single Worker can host many differently-instantiated
// Context[A, I, E] values since Tickable and actor.WorkerHandle are both
// non-generic.
type Worker struct {
	id     string
	events chan actor.Tickable
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewWorker starts a Worker's goroutine and returns immediately.
func NewWorker(id string) *Worker {
	w := &Worker{
		id:     id,
		events: make(chan actor.Tickable, defaultEventBuffer),
		done:   make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w
}

// ID returns this worker's identifier.
func (w *Worker) ID() string { return w.id }

// Spawn registers t with the worker and ticks it for the first time. Unlike
// Wake, Spawn blocks until the registration is accepted: a dropped first
// registration would leak the actor forever, since nothing else holds a
// reference to t.
func (w *Worker) Spawn(t actor.Tickable) {
	select {
	case w.events <- t:
	case <-w.done:
	}
}

// Wake implements actor.WorkerHandle. It schedules t for its next Tick,
// bypassing the sweep interval. A full event queue is not treated as an
// error: t is already registered, so the sweep ticker guarantees it is
// ticked eventually regardless of whether this particular wake is dropped.
func (w *Worker) Wake(t actor.Tickable) {
	select {
	case w.events <- t:
	default:
	}
}

func (w *Worker) run() {
	defer w.wg.Done()

	tickables := make(map[actor.Tickable]struct{})

	sweep := time.NewTicker(sweepInterval)
	defer sweep.Stop()

	for {
		select {
		case t := <-w.events:
			tickables[t] = struct{}{}
			if !t.Tick() {
				delete(tickables, t)
			}

		case <-sweep.C:
			for t := range tickables {
				if !t.Tick() {
					delete(tickables, t)
				}
			}

		case <-w.done:
			// Drain whatever is already queued before exiting, so a Wake
			// sent just before Shutdown (e.g. a shutdown broadcast) is
			// not silently lost to the select's random tie-breaking.
			for {
				select {
				case t := <-w.events:
					t.Tick()
				default:
					return
				}
			}
		}
	}
}

// Shutdown stops the worker's loop and waits for its goroutine to exit.
// Tickables that have not yet reached Stopped are abandoned; Shutdown does
// not drive them to completion.
func (w *Worker) Shutdown() {
	select {
	case <-w.done:
		return
	default:
		close(w.done)
	}

	w.wg.Wait()
}
