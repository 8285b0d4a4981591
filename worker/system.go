package worker

import (
	"fmt"
	"sync/atomic"

	"github.com/roasbeef/actorcore/actor"
)

// SystemExit is broadcast to every Sendable passed to System.Shutdown, so actors have a chance to observe the reason before their context
// is abandoned.
type SystemExit struct {
	actor.BaseMessage

	// Code is an application-defined shutdown reason; 0 means a normal,
	// voluntary shutdown.
	Code int
}

// MessageType implements actor.Message.
func (SystemExit) MessageType() string { return "worker.system_exit" }

// Sendable is the minimal capability System.Shutdown needs to notify an
// actor of shutdown. *actor.Address[A, I, E] and *actor.SharedAddress[A, I,
// E] both satisfy it for any A, I, E.
type Sendable interface {
	Send(msg actor.Message)
}

// System is a fixed-size, round-robin pool of Workers, the same
// distribution strategy this pack's actor pool uses to spread load across
// pooled actor instances.
type System struct {
	id      string
	workers []*Worker
	next    atomic.Uint64
}

// SystemConfig configures a new System.
type SystemConfig struct {
	// ID names the system; individual workers are named "<ID>-<n>".
	ID string

	// Size is the number of Worker goroutines to run. Values <= 0 are
	// treated as 1.
	Size int
}

// NewSystem starts Size Worker goroutines and returns a System that
// round-robins across them.
func NewSystem(cfg SystemConfig) *System {
	if cfg.Size <= 0 {
		cfg.Size = 1
	}

	s := &System{id: cfg.ID, workers: make([]*Worker, cfg.Size)}
	for i := range s.workers {
		s.workers[i] = NewWorker(fmt.Sprintf("%s-%d", cfg.ID, i))
	}

	return s
}

// ID returns this system's identifier.
func (s *System) ID() string { return s.id }

// Size returns the number of workers in the system.
func (s *System) Size() int { return len(s.workers) }

// Next returns the next worker in round-robin order. The result satisfies
// actor.WorkerHandle and is the value every Start* call should be given.
func (s *System) Next() *Worker {
	idx := s.next.Add(1) % uint64(len(s.workers))
	return s.workers[idx]
}

// Workers returns a copy of the system's worker slice.
func (s *System) Workers() []*Worker {
	out := make([]*Worker, len(s.workers))
	copy(out, s.workers)

	return out
}

// Shutdown broadcasts a SystemExit with the given code to every receiver,
// then stops and waits for every worker's goroutine to exit. Receivers that
// have already closed their address are unaffected: Send on a closed
// mailbox is a no-op.
func (s *System) Shutdown(code int, receivers ...Sendable) {
	exit := SystemExit{Code: code}
	for _, r := range receivers {
		r.Send(exit)
	}

	for _, w := range s.workers {
		w.Shutdown()
	}
}
