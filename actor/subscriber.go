package actor

import "context"

// Subscriber is a type-narrowed, fire-and-forget producer handle for a
// single message type M, wrapping a local or shared Address. It exists so
// library consumers can hand out a narrow capability ("can send
// RequestXYZ") instead of the full untyped Address. Subscriber implements
// io.Closer.
type Subscriber[M Message] struct {
	trySend func(Message) bool
	close   func() error
}

// NewSubscriber wraps addr's Send in a Subscriber narrowed to M. Go methods
// cannot introduce type parameters beyond the receiver's, so this is a free
// function rather than an Address method.
func NewSubscriber[M Message, A any, I any, E any](addr *Address[A, I, E]) *Subscriber[M] {
	return &Subscriber[M]{trySend: addr.TrySend, close: addr.Close}
}

// NewSharedSubscriber wraps a SharedAddress's Send in a Subscriber narrowed
// to M.
func NewSharedSubscriber[M Message, A any, I any, E any](addr *SharedAddress[A, I, E]) *Subscriber[M] {
	return &Subscriber[M]{trySend: addr.TrySend, close: addr.Close}
}

// Send delivers msg with no reply sink, dropping it silently if the
// mailbox has closed.
func (s *Subscriber[M]) Send(msg M) { s.trySend(msg) }

// UnbufferedSend attempts to deliver msg and reports whether the mailbox
// accepted it. Rejected carries msg back unchanged when accepted is
// false; for the unbounded mailboxes backing every Subscriber here,
// rejection only happens once the mailbox has closed, since otherwise it
// always accepts (spec.md §4.6). The distinction from Send is reserved for
// a future bounded mailbox variant.
func (s *Subscriber[M]) UnbufferedSend(msg M) (rejected M, accepted bool) {
	if s.trySend(msg) {
		return rejected, true
	}

	return msg, false
}

// Close releases the underlying address handle.
func (s *Subscriber[M]) Close() error { return s.close() }

// AsyncSubscriber is a type-narrowed Ask/Call capability for a single
// message type M whose handler produces an I/E outcome. It wraps either a
// local Address or a SharedAddress behind the common ReplyFuture interface.
type AsyncSubscriber[M Message, I any, E any] struct {
	tryCall func(Message) (ReplyFuture[I, E], bool)
	close   func() error
}

// NewAsyncSubscriber wraps a local Address.Call in an AsyncSubscriber
// narrowed to M.
func NewAsyncSubscriber[M Message, A any, I any, E any](addr *Address[A, I, E]) *AsyncSubscriber[M, I, E] {
	return &AsyncSubscriber[M, I, E]{
		tryCall: func(msg Message) (ReplyFuture[I, E], bool) {
			return addr.TryCall(msg)
		},
		close: addr.Close,
	}
}

// NewSharedAsyncSubscriber wraps a SharedAddress.Call in an AsyncSubscriber
// narrowed to M.
func NewSharedAsyncSubscriber[M Message, A any, I any, E any](addr *SharedAddress[A, I, E]) *AsyncSubscriber[M, I, E] {
	return &AsyncSubscriber[M, I, E]{
		tryCall: func(msg Message) (ReplyFuture[I, E], bool) {
			return addr.TryCall(msg)
		},
		close: addr.Close,
	}
}

// Call delivers msg and returns a future for the handler's reply. If the
// mailbox has closed, the returned future resolves Cancelled.
func (s *AsyncSubscriber[M, I, E]) Call(msg M) ReplyFuture[I, E] {
	future, _ := s.tryCall(msg)
	return future
}

// UnbufferedCall attempts to deliver msg and reports whether the mailbox
// accepted it. Rejected carries msg back unchanged, and future is nil,
// when accepted is false; for the unbounded mailboxes backing every
// AsyncSubscriber here, rejection only happens once the mailbox has
// closed (spec.md §4.6). The distinction from Call is reserved for a
// future bounded mailbox variant.
func (s *AsyncSubscriber[M, I, E]) UnbufferedCall(msg M) (future ReplyFuture[I, E], rejected M, accepted bool) {
	future, accepted = s.tryCall(msg)
	if accepted {
		return future, rejected, true
	}

	return nil, msg, false
}

// Ask is a convenience wrapper that both calls and awaits, returning the
// three-way CallResult directly.
func (s *AsyncSubscriber[M, I, E]) Ask(ctx context.Context, msg M) CallResult[I, E] {
	return s.Call(msg).Await(ctx)
}

// Close releases the underlying address handle.
func (s *AsyncSubscriber[M, I, E]) Close() error { return s.close() }
