package actor

import (
	"context"
	"sync"
)

// callKind identifies which of the three call outcomes a CallResult holds.
type callKind uint8

const (
	callOK callKind = iota
	callHandlerErr
	callCancelled
)

// CallResult is the three-way outcome of an Ask/Call: the handler's success
// value, the handler's own error, or a transport-level cancellation (the
// envelope was dropped before it could be dispatched). Handler errors and
// cancellation are always kept distinct; the runtime never folds one into
// the other.
type CallResult[I any, E any] struct {
	kind callKind
	item I
	err  E
}

// okResult builds a CallResult carrying a successful handler outcome.
func okResult[I any, E any](item I) CallResult[I, E] {
	return CallResult[I, E]{kind: callOK, item: item}
}

// handlerErrResult builds a CallResult carrying a handler-level failure.
func handlerErrResult[I any, E any](err E) CallResult[I, E] {
	return CallResult[I, E]{kind: callHandlerErr, err: err}
}

// cancelledResult builds a CallResult representing a dropped/undispatched
// envelope or a closed mailbox.
func cancelledResult[I any, E any]() CallResult[I, E] {
	return CallResult[I, E]{kind: callCancelled}
}

// IsOK reports whether the handler completed successfully.
func (c CallResult[I, E]) IsOK() bool { return c.kind == callOK }

// IsHandlerErr reports whether the handler completed with an error.
func (c CallResult[I, E]) IsHandlerErr() bool { return c.kind == callHandlerErr }

// IsCancelled reports whether the call was cancelled before a reply was
// produced (actor terminated, envelope dropped undispatched).
func (c CallResult[I, E]) IsCancelled() bool { return c.kind == callCancelled }

// Item returns the success value. Only meaningful when IsOK is true.
func (c CallResult[I, E]) Item() I { return c.item }

// HandlerErr returns the handler's error value. Only meaningful when
// IsHandlerErr is true.
func (c CallResult[I, E]) HandlerErr() E { return c.err }

// replySink is the write side of a one-shot reply channel. deliver must be
// called at most once; subsequent calls are silently ignored, matching
// "reply sink signalled exactly once" from the envelope contract.
type replySink[I any, E any] interface {
	deliver(result CallResult[I, E])
}

// oneShotSink is a buffered, single-producer/single-consumer channel backing
// both the local and shared reply flavors. A Go channel is inherently safe
// for cross-goroutine use, so the same implementation serves both; the two
// public future types (MessageFuture, SharedMessageFuture) exist to keep the
// same-thread/cross-thread distinction visible in the API the way the
// source's two reply-channel flavors are visible in its API.
type oneShotSink[I any, E any] struct {
	ch   chan CallResult[I, E]
	once sync.Once
}

func newOneShotSink[I any, E any]() *oneShotSink[I, E] {
	return &oneShotSink[I, E]{ch: make(chan CallResult[I, E], 1)}
}

func (s *oneShotSink[I, E]) deliver(result CallResult[I, E]) {
	s.once.Do(func() {
		s.ch <- result
		close(s.ch)
	})
}

// await blocks until a result is delivered or ctx is cancelled, in which
// case a Cancelled outcome is reported without waiting for the actor side.
func (s *oneShotSink[I, E]) await(ctx context.Context) CallResult[I, E] {
	select {
	case result, ok := <-s.ch:
		if !ok {
			return cancelledResult[I, E]()
		}

		return result

	case <-ctx.Done():
		return cancelledResult[I, E]()
	}
}

// ReplyFuture is the common shape of MessageFuture and SharedMessageFuture,
// letting AsyncSubscriber be generic over either flavor of reply channel.
type ReplyFuture[I any, E any] interface {
	Await(ctx context.Context) CallResult[I, E]
}

// MessageFuture is the same-thread reply future returned by Address.Call.
// The caller is expected to poll/await it from the worker the originating
// actor lives on, but nothing in Go prevents awaiting it elsewhere; the
// "same-thread" label documents the intended usage rather than an enforced
// constraint (see SPEC_FULL.md §3 on Drop -> Close()).
type MessageFuture[I any, E any] struct {
	sink *oneShotSink[I, E]
}

// Await blocks until the handler's reply is delivered, the envelope is
// cancelled, or ctx is cancelled.
func (f *MessageFuture[I, E]) Await(ctx context.Context) CallResult[I, E] {
	return f.sink.await(ctx)
}

// SharedMessageFuture is the cross-thread reply future returned by
// SharedAddress.Call. It is safe to Await from any goroutine.
type SharedMessageFuture[I any, E any] struct {
	sink *oneShotSink[I, E]
}

// Await blocks until the handler's reply is delivered, the envelope is
// cancelled, or ctx is cancelled.
func (f *SharedMessageFuture[I, E]) Await(ctx context.Context) CallResult[I, E] {
	return f.sink.await(ctx)
}

// newLocalReply builds a matched reply sink / MessageFuture pair for the
// local Address.Call path.
func newLocalReply[I any, E any]() (replySink[I, E], *MessageFuture[I, E]) {
	sink := newOneShotSink[I, E]()
	return sink, &MessageFuture[I, E]{sink: sink}
}

// newSharedReply builds a matched reply sink / SharedMessageFuture pair for
// the SharedAddress.Call path.
func newSharedReply[I any, E any]() (replySink[I, E], *SharedMessageFuture[I, E]) {
	sink := newOneShotSink[I, E]()
	return sink, &SharedMessageFuture[I, E]{sink: sink}
}
