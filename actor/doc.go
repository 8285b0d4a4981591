// Package actor implements a cooperative, single-threaded-per-context actor
// runtime: lifecycle management, mailbox queues, and an actor-aware future
// type that is polled from inside the owning actor's own tick instead of
// from an arbitrary goroutine.
package actor
