package actor

import "sync"

// addressCell is the per-context slot that mints local and shared addresses
// against the Context's two mailbox queues. Because the underlying queues
// are created once in newContext and every minted Address/SharedAddress is
// just a refcounted handle onto the same queue pointer, "memoizing" the
// address reduces to memoizing the queue (done by the Context itself) —
// every call here still produces a fresh, independently Close()-able handle
// that shares the same mailbox, matching spec.md §4.3's address-cell
// paragraph and the invariant that cloning never touches the mailbox.
type addressCell[A any, I any, E any] struct {
	mu  sync.Mutex
	ctx *Context[A, I, E]

	// sharedClosed is the one closed-flag cell shared by every
	// SharedAddress this cell ever mints (not just clones of one
	// another), lazily created on the first Shared() call. Without this,
	// two sibling shared addresses minted independently from the same
	// cell would carry independent flags and could disagree about
	// closure, defeating §4.3's "memoizes one shared address" guarantee.
	sharedClosed *closedFlag
}

func newAddressCell[A any, I any, E any](ctx *Context[A, I, E]) *addressCell[A, I, E] {
	return &addressCell[A, I, E]{ctx: ctx}
}

// Local mints a new local Address handle onto the context's same-thread
// mailbox.
func (c *addressCell[A, I, E]) Local() *Address[A, I, E] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ctx.localQ.addProducer()

	return &Address[A, I, E]{ctx: c.ctx, queue: c.ctx.localQ}
}

// Shared mints a new SharedAddress handle onto the context's cross-thread
// mailbox.
func (c *addressCell[A, I, E]) Shared() *SharedAddress[A, I, E] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ctx.sharedQ.addProducer()

	if c.sharedClosed == nil {
		c.sharedClosed = newClosedFlag()
	}

	return &SharedAddress[A, I, E]{ctx: c.ctx, queue: c.ctx.sharedQ, closed: c.sharedClosed}
}
