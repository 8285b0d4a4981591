package actor

import "sync/atomic"

// closedFlag is a shared, clone-propagating "mailbox observed closed" cell.
// spec.md §9 leaves open whether cloning a closed SharedAddress must
// propagate the closed flag; this implementation resolves that in favor of
// sharing the cell (all clones observe closure together), the only choice
// that keeps is_closed() monotonic across clones as Testable Property 6
// requires.
type closedFlag struct {
	v atomic.Bool
}

func newClosedFlag() *closedFlag {
	return &closedFlag{}
}

func (f *closedFlag) set()          { f.v.Store(true) }
func (f *closedFlag) get() bool     { return f.v.Load() }

// SharedAddress is a clonable, Send-safe producer handle into a Context's
// cross-thread mailbox. Unlike Address, a SharedAddress tracks whether it
// has ever observed the mailbox closed, exposed via IsClosed.
type SharedAddress[A any, I any, E any] struct {
	ctx    *Context[A, I, E]
	queue  *mailboxQueue[A, I, E]
	closed *closedFlag
	ours   bool
}

// Clone returns a new SharedAddress handle sharing the same underlying
// mailbox and the same closed-flag cell.
func (a *SharedAddress[A, I, E]) Clone() *SharedAddress[A, I, E] {
	a.queue.addProducer()

	return &SharedAddress[A, I, E]{ctx: a.ctx, queue: a.queue, closed: a.closed}
}

// Close releases this handle, decrementing the mailbox's producer refcount.
func (a *SharedAddress[A, I, E]) Close() error {
	if a.ours {
		return nil
	}
	a.ours = true

	if a.queue.releaseProducer() {
		a.ctx.notifyReady()
	}

	return nil
}

// IsClosed reports whether a Send/Call through this address (or any of its
// clones) has ever observed the mailbox closed. It is monotonic: once true,
// it never reverts to false.
func (a *SharedAddress[A, I, E]) IsClosed() bool {
	return a.closed.get()
}

// Send enqueues msg with no reply sink. If the mailbox is observed closed,
// the closed flag is set and the message is dropped.
func (a *SharedAddress[A, I, E]) Send(msg Message) {
	a.TrySend(msg)
}

// TrySend behaves like Send but reports whether the mailbox accepted msg.
// It only returns false once the mailbox has closed, since the unbounded
// mailbox backing this SharedAddress otherwise always accepts.
func (a *SharedAddress[A, I, E]) TrySend(msg Message) bool {
	env := tellEnvelope[A, I, E](msg)

	if a.queue.push(env) {
		a.ctx.notifyReady()
		return true
	}

	a.closed.set()
	return false
}

// Call enqueues msg with a cross-thread reply sink and returns a Send-safe
// future for the outcome. If the mailbox is observed closed, the closed
// flag is set and the future resolves as Cancelled.
func (a *SharedAddress[A, I, E]) Call(msg Message) *SharedMessageFuture[I, E] {
	future, _ := a.TryCall(msg)
	return future
}

// TryCall behaves like Call but also reports whether the mailbox accepted
// msg, so UnbufferedCall can hand the rejected message back to its caller
// instead of silently discarding it into a cancelled future.
func (a *SharedAddress[A, I, E]) TryCall(msg Message) (future *SharedMessageFuture[I, E], accepted bool) {
	sink, future := newSharedReply[I, E]()
	env := askEnvelope[A, I, E](msg, sink)

	if a.queue.push(env) {
		a.ctx.notifyReady()
		return future, true
	}

	a.closed.set()
	sink.deliver(cancelledResult[I, E]())
	return future, false
}
