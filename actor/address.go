package actor

// Address is a cheap, clonable producer handle into a Context's same-thread
// mailbox. It is intended for use from the worker goroutine the owning
// actor runs on; Go cannot enforce a non-Send marker at compile time the
// way the source's Address<A> does, so this is documentation rather than a
// compiler guarantee (see SPEC_FULL.md §4.4).
//
// Address has no exported constructor: obtain one via Context.Addresses()
// (the address-cell) or by Cloning an existing Address.
type Address[A any, I any, E any] struct {
	ctx    *Context[A, I, E]
	queue  *mailboxQueue[A, I, E]
	closed bool
}

// Clone returns a new Address handle sharing the same underlying mailbox.
// Cloning never touches the mailbox itself, only the producer refcount.
func (a *Address[A, I, E]) Clone() *Address[A, I, E] {
	a.queue.addProducer()

	return &Address[A, I, E]{ctx: a.ctx, queue: a.queue}
}

// Close releases this handle. The last live handle of either mailbox
// variant being closed is what allows the owning Context to leave Running.
// Close is the Go stand-in for Rust's Drop; it must be called exactly once
// per handle (including ones returned by Clone) and is idempotent.
func (a *Address[A, I, E]) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	if a.queue.releaseProducer() {
		a.ctx.notifyReady()
	}

	return nil
}

// Send enqueues msg with no reply sink (fire-and-forget). Delivery is
// best-effort: if the mailbox has closed, the message is silently dropped.
func (a *Address[A, I, E]) Send(msg Message) {
	a.TrySend(msg)
}

// TrySend behaves like Send but reports whether the mailbox accepted msg.
// It only returns false once the mailbox has closed, since the unbounded
// mailbox backing this Address otherwise always accepts.
func (a *Address[A, I, E]) TrySend(msg Message) bool {
	env := tellEnvelope[A, I, E](msg)
	if !a.queue.push(env) {
		return false
	}

	a.ctx.notifyReady()
	return true
}

// Call enqueues msg with a same-thread reply sink and returns the future
// that will resolve with the handler's outcome (or Cancelled if the
// envelope is dropped undispatched).
func (a *Address[A, I, E]) Call(msg Message) *MessageFuture[I, E] {
	future, _ := a.TryCall(msg)
	return future
}

// TryCall behaves like Call but also reports whether the mailbox accepted
// msg. The returned future resolves Cancelled when accepted is false,
// exactly as Call's does; TryCall only exists so UnbufferedCall can hand
// the rejected message back to its caller instead of silently discarding
// it into a cancelled future.
func (a *Address[A, I, E]) TryCall(msg Message) (future *MessageFuture[I, E], accepted bool) {
	sink, future := newLocalReply[I, E]()
	env := askEnvelope[A, I, E](msg, sink)

	if a.queue.push(env) {
		a.ctx.notifyReady()
		return future, true
	}

	sink.deliver(cancelledResult[I, E]())
	return future, false
}

// Upgrade asks the context to mint a SharedAddress and returns it. Unlike
// the source's channel round-trip (the context must "run once to service
// this"), Go's address-cell can mint the handle synchronously because it
// only touches in-process shared state, not a cross-worker channel.
func (a *Address[A, I, E]) Upgrade() *SharedAddress[A, I, E] {
	return a.ctx.cell.Shared()
}
