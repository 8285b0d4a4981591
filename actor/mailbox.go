package actor

import (
	"sync"

	"github.com/gammazero/deque"
)

// mailboxQueue is the unbounded, producer-refcounted queue backing both the
// local (same-thread) and shared (cross-thread) mailbox variants described
// in spec.md §4.3/§9. A mutex-protected deque.Deque (from the pack's
// markInTheAbyss-go-actor dependency) serves both variants identically;
// Address and SharedAddress differ only in how they expose Send/Call and in
// whether a closed flag is shared across clones, not in the queue itself.
type mailboxQueue[A any, I any, E any] struct {
	mu sync.Mutex

	items deque.Deque[*envelope[A, I, E]]

	// opened is set on the first addProducer call. Before that, a queue
	// with zero producers is only vacuously closed (nothing has ever had
	// a chance to use it); opened distinguishes that from closed, which
	// is permanent.
	opened bool

	// closed is a one-way ratchet: once every producer of a queue that
	// was actually opened has released, the queue is closed for good.
	// addProducer never clears it — per the revival rule (spec.md §4.3),
	// a new producer handle minted after closure does not reopen the
	// mailbox; further inbound envelopes stay refused. The only way a
	// Stopping context defers its transition to Stopped is in-flight
	// actor-aware futures, handled in Context.Tick, not mailbox reopening.
	closed bool

	producers int64
}

// newMailboxQueue returns an empty queue. With zero producers ever
// registered it reports closed (vacuously: there is nothing left to wait
// for), which is what lets StartDetached actors fall straight through to
// Stopping on their first Tick.
func newMailboxQueue[A any, I any, E any]() *mailboxQueue[A, I, E] {
	return &mailboxQueue[A, I, E]{}
}

// addProducer registers a new live producer handle (an Address clone, a
// Subscriber, etc). It never reopens a queue that has already closed.
func (q *mailboxQueue[A, I, E]) addProducer() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.producers++
	q.opened = true
}

// releaseProducer releases a producer handle. When the count reaches zero
// the queue closes permanently (no further sends are ever accepted again)
// and true is returned so the caller can wake the owning Context to
// observe the transition.
func (q *mailboxQueue[A, I, E]) releaseProducer() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.producers > 0 {
		q.producers--
	}

	if q.producers == 0 && !q.closed {
		q.closed = true
		return true
	}

	return false
}

// forceClose closes the queue immediately regardless of the producer
// refcount, for Context.RequestStop's early-stop path. It returns true if
// this call is what closed the queue.
func (q *mailboxQueue[A, I, E]) forceClose() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.isClosedLocked() {
		return false
	}

	q.closed = true

	return true
}

// push enqueues env. It returns false without enqueuing if the queue is
// already closed.
func (q *mailboxQueue[A, I, E]) push(env *envelope[A, I, E]) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.isClosedLocked() {
		return false
	}

	q.items.PushBack(env)

	return true
}

// popAll removes and returns up to max queued envelopes in FIFO order. A
// non-positive max means "no bound".
func (q *mailboxQueue[A, I, E]) popAll(max int) []*envelope[A, I, E] {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.items.Len()
	if max > 0 && n > max {
		n = max
	}

	out := make([]*envelope[A, I, E], 0, n)
	for i := 0; i < n; i++ {
		out = append(out, q.items.PopFront())
	}

	return out
}

// drainRemaining removes and returns every envelope still queued, regardless
// of the max-per-tick bound. Used once the queue has closed and the Context
// needs to cancel anything left behind.
func (q *mailboxQueue[A, I, E]) drainRemaining() []*envelope[A, I, E] {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]*envelope[A, I, E], 0, q.items.Len())
	for q.items.Len() > 0 {
		out = append(out, q.items.PopFront())
	}

	return out
}

// isClosedLocked reports whether the queue currently refuses pushes: either
// it has never been opened (no producer has ever registered) or it has
// permanently closed. Callers must hold q.mu.
func (q *mailboxQueue[A, I, E]) isClosedLocked() bool {
	if q.closed {
		return true
	}

	return !q.opened && q.producers == 0
}

// isClosed reports whether the queue currently refuses pushes.
func (q *mailboxQueue[A, I, E]) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.isClosedLocked()
}

// isEmpty reports whether the queue currently has no queued envelopes.
func (q *mailboxQueue[A, I, E]) isEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.items.Len() == 0
}

// depth returns the current queue length, used for the mailbox_depth gauge.
func (q *mailboxQueue[A, I, E]) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.items.Len()
}
