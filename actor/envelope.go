package actor

import "sync/atomic"

// envelope wraps a message with its (optional) reply sink. It is the type
// that flows through a Context's mailbox queues. The message is taken out
// on first dispatch; dispatching a second time is a programming error and
// panics, matching spec.md §4.2's "second dispatch is a programming error".
type envelope[A any, I any, E any] struct {
	msg        Message
	sink       replySink[I, E]
	dispatched atomic.Bool
}

// tellEnvelope builds a fire-and-forget envelope with no reply sink.
func tellEnvelope[A any, I any, E any](msg Message) *envelope[A, I, E] {
	return &envelope[A, I, E]{msg: msg}
}

// askEnvelope builds an envelope carrying a reply sink that will be
// signalled exactly once when the handler's future resolves.
func askEnvelope[A any, I any, E any](
	msg Message, sink replySink[I, E],
) *envelope[A, I, E] {

	return &envelope[A, I, E]{msg: msg, sink: sink}
}

// cancel signals the envelope's reply sink (if any) as cancelled without
// invoking the actor's handler. Used when an envelope is dropped from a
// mailbox without ever being dispatched (e.g. drained from a closed
// mailbox during shutdown) — the Go stand-in for "dropping an undispatched
// envelope drops its reply sink."
func (e *envelope[A, I, E]) cancel() {
	if e.sink != nil {
		e.sink.deliver(cancelledResult[I, E]())
	}
}

// dispatch invokes the actor's handler against msg, obtaining an
// ActorFuture, wraps it together with the reply sink in a replyDriver, and
// registers that driver with ctx's in-flight set so it is polled to
// completion. Dispatching twice, or dispatching after the message has
// already been taken, panics.
func (e *envelope[A, I, E]) dispatch(actor *A, ctx *Context[A, I, E], behavior Actor[A, I, E]) {
	if !e.dispatched.CompareAndSwap(false, true) {
		panic("actor: envelope dispatched more than once")
	}

	if e.msg == nil {
		// Null dispatch: idempotent no-op per spec.md §4.2 step 1.
		return
	}

	future := behavior.Handle(e.msg, ctx)

	driver := &replyDriver[A, I, E]{
		inner: &doneFuture[A, I, E]{inner: future},
		sink:  e.sink,
	}

	ctx.spawnInFlight(driver)
}

// replyDriver is the small ActorFuture that drives a handler's future to
// completion and forwards its outcome to the caller's reply sink, ignoring
// a closed sink (no one is listening any more). It is itself registered as
// an in-flight ActorFuture on the Context, per spec.md §4.2 step 4.
type replyDriver[A any, I any, E any] struct {
	inner *doneFuture[A, I, E]
	sink  replySink[I, E]
}

func (d *replyDriver[A, I, E]) Poll(actor *A, ctx *Context[A, I, E]) PollResult[I, E] {
	result := d.inner.poll(actor, ctx)

	switch {
	case result.IsNotReady():
		return result

	case result.IsFailed():
		if d.sink != nil {
			d.sink.deliver(handlerErrResult[I, E](result.Err()))
		}

		return result

	default:
		if d.sink != nil {
			d.sink.deliver(okResult[I, E](result.Item()))
		}

		return result
	}
}
