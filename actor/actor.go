package actor

import "github.com/google/uuid"

// Actor is implemented by the concrete actor state type A. Handle replaces
// the source's per-message-type Handler<M> trait: Go cannot dispatch on
// multiple same-named methods differing only by argument type, so instead
// there is a single sealed Message interface and Handle does its own type
// switch internally, the same simplification this pack's task service
// already uses for its own request dispatch.
type Actor[A any, I any, E any] interface {
	// Started is called exactly once, when the context leaves Starting.
	Started(ctx *Context[A, I, E])

	// Stopping is called exactly once, when the mailboxes have closed,
	// drained, and every in-flight future has completed.
	Stopping(ctx *Context[A, I, E])

	// Stopped is called exactly once, immediately before Tick begins
	// reporting this context as finished.
	Stopped(ctx *Context[A, I, E])

	// Handle processes one message and returns the future whose completion
	// determines the reply (if any) delivered to the envelope's sink.
	Handle(msg Message, ctx *Context[A, I, E]) ActorFuture[A, I, E]
}

// startConfig collects the functional options every Start* variant accepts.
type startConfig struct {
	id         string
	maxPerTick int
	metrics    *Metrics
}

// StartOption configures a Start* call.
type StartOption func(*startConfig)

// WithID overrides the generated identifier for a started actor.
func WithID(id string) StartOption {
	return func(c *startConfig) { c.id = id }
}

// WithMaxPerTick overrides how many envelopes a single Tick drains from one
// mailbox before yielding.
func WithMaxPerTick(n int) StartOption {
	return func(c *startConfig) {
		if n > 0 {
			c.maxPerTick = n
		}
	}
}

// WithMetrics attaches a Metrics collector to a started actor's context.
func WithMetrics(m *Metrics) StartOption {
	return func(c *startConfig) { c.metrics = m }
}

func applyOptions(opts []StartOption) startConfig {
	cfg := startConfig{id: uuid.NewString(), maxPerTick: defaultMaxPerTick}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Handles is the set of producer handles returned by a Start* call. Which
// fields are populated depends on which Start variant was used.
type Handles[A any, I any, E any] struct {
	Local  *Address[A, I, E]
	Shared *SharedAddress[A, I, E]
}

// StartLocal starts actor on worker and returns only a local Address,
// matching the source's Context::new/Address-only entry point. The context
// is registered with worker immediately; Started fires on the first Tick.
func StartLocal[A any, I any, E any](worker WorkerHandle, actor *A, behavior Actor[A, I, E], opts ...StartOption) *Address[A, I, E] {
	cfg := applyOptions(opts)

	ctx := newContext[A, I, E](cfg.id, actor, behavior, worker)
	ctx.maxPerTick = cfg.maxPerTick
	ctx.metrics = cfg.metrics

	addr := ctx.cell.Local()
	worker.Spawn(ctx)

	return addr
}

// StartShared starts actor on worker and returns only a SharedAddress.
func StartShared[A any, I any, E any](worker WorkerHandle, actor *A, behavior Actor[A, I, E], opts ...StartOption) *SharedAddress[A, I, E] {
	cfg := applyOptions(opts)

	ctx := newContext[A, I, E](cfg.id, actor, behavior, worker)
	ctx.maxPerTick = cfg.maxPerTick
	ctx.metrics = cfg.metrics

	addr := ctx.cell.Shared()
	worker.Spawn(ctx)

	return addr
}

// StartBoth starts actor on worker and returns both a local and a shared
// address, for callers that need to hand out same-thread and cross-thread
// capabilities from the same spawn call.
func StartBoth[A any, I any, E any](worker WorkerHandle, actor *A, behavior Actor[A, I, E], opts ...StartOption) Handles[A, I, E] {
	cfg := applyOptions(opts)

	ctx := newContext[A, I, E](cfg.id, actor, behavior, worker)
	ctx.maxPerTick = cfg.maxPerTick
	ctx.metrics = cfg.metrics

	h := Handles[A, I, E]{Local: ctx.cell.Local(), Shared: ctx.cell.Shared()}
	worker.Spawn(ctx)

	return h
}

// StartDetached starts actor on worker without minting any address at all.
// The context still runs its full lifecycle, but since no producer handle
// is ever registered both mailboxes report zero producers immediately, so
// the actor enters Running on its first Tick and Stopping on its second.
// This mirrors the source's rarely-used "fire a one-off task and never talk
// to it again" spawn path.
func StartDetached[A any, I any, E any](worker WorkerHandle, actor *A, behavior Actor[A, I, E], opts ...StartOption) {
	cfg := applyOptions(opts)

	ctx := newContext[A, I, E](cfg.id, actor, behavior, worker)
	ctx.maxPerTick = cfg.maxPerTick
	ctx.metrics = cfg.metrics

	worker.Spawn(ctx)
}
