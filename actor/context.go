package actor

import (
	"context"
	"sync"
)

type lifecycleState uint8

const (
	stateStarting lifecycleState = iota
	stateRunning
	stateStopping
	stateStopped
)

// Tickable is implemented by Context so that a single Worker goroutine can
// host many differently-instantiated contexts (Context[A, I, E] for
// different A/I/E) without the worker depending on those type parameters.
type Tickable interface {
	// Tick drains one bounded batch of mailbox work, polls in-flight
	// futures, and advances the lifecycle state machine. It returns false
	// once the context has reached Stopped and can be dropped from the
	// worker's registry.
	Tick() bool
}

// WorkerHandle is the narrow slice of worker.Worker that Context depends on.
// It is declared here, rather than imported from the worker package, so that
// actor does not import worker (which itself imports actor for Tickable).
type WorkerHandle interface {
	// Spawn registers t with the worker, blocking until the registration is
	// accepted. Used exactly once per context, at start time.
	Spawn(t Tickable)

	// Wake schedules an already-registered t for an immediate Tick,
	// bypassing the periodic sweep that otherwise guarantees eventual
	// progress for futures without a Waker.
	Wake(t Tickable)
}

// defaultMaxPerTick bounds how many envelopes a single Tick drains from one
// mailbox, so one busy actor cannot starve the worker's other tenants.
const defaultMaxPerTick = 64

// Context is the per-actor handle threaded through every Handle call and
// every ActorFuture.Poll. It owns the actor's two mailboxes, its address
// cell, its in-flight future set, and its lifecycle state.
type Context[A any, I any, E any] struct {
	mu sync.Mutex

	id       string
	actor    *A
	behavior Actor[A, I, E]
	worker   WorkerHandle

	state lifecycleState

	localQ  *mailboxQueue[A, I, E]
	sharedQ *mailboxQueue[A, I, E]
	cell    *addressCell[A, I, E]

	inFlight   []ActorFuture[A, I, E]
	maxPerTick int
	metrics    *Metrics

	// pendingMu guards pending independently of mu. Spawn must be
	// callable from inside a future's own Poll, which drainAndPoll
	// invokes while holding mu; appending to inFlight directly there
	// would self-deadlock on the non-reentrant mutex, so Spawn only ever
	// touches pendingMu and drainAndPoll folds pending into inFlight
	// once it is safe to reacquire mu.
	pendingMu sync.Mutex
	pending   []ActorFuture[A, I, E]
}

func newContext[A any, I any, E any](id string, actor *A, behavior Actor[A, I, E], worker WorkerHandle) *Context[A, I, E] {
	ctx := &Context[A, I, E]{
		id:         id,
		actor:      actor,
		behavior:   behavior,
		worker:     worker,
		state:      stateStarting,
		localQ:     newMailboxQueue[A, I, E](),
		sharedQ:    newMailboxQueue[A, I, E](),
		maxPerTick: defaultMaxPerTick,
	}
	ctx.cell = newAddressCell(ctx)

	return ctx
}

// ID returns the opaque identifier this context was started with.
func (ctx *Context[A, I, E]) ID() string { return ctx.id }

// Addresses returns the address cell used to mint Local/Shared handles for
// this context.
func (ctx *Context[A, I, E]) Addresses() *addressCell[A, I, E] { return ctx.cell }

// Spawn registers f as an actor-aware future to be polled on every
// subsequent Tick until it completes. This is the public entrypoint named
// by spec.md §6 ("methods to spawn an actor-aware future onto this
// actor") — usable from a Handle call, from a Stopping callback (the
// revival rule in spec.md §4.3 depends on exactly this), or from within
// another future's own Poll.
func (ctx *Context[A, I, E]) Spawn(f ActorFuture[A, I, E]) {
	ctx.pendingMu.Lock()
	ctx.pending = append(ctx.pending, f)
	ctx.pendingMu.Unlock()
}

// spawnInFlight is the envelope-dispatch path's hook onto Spawn.
func (ctx *Context[A, I, E]) spawnInFlight(f ActorFuture[A, I, E]) {
	ctx.Spawn(f)
}

// foldPending merges anything queued via Spawn into inFlight. Called only
// at points where ctx.mu is not already held, so it is safe even when the
// pending entries were added by a future's own Poll.
func (ctx *Context[A, I, E]) foldPending() {
	ctx.pendingMu.Lock()
	pending := ctx.pending
	ctx.pending = nil
	ctx.pendingMu.Unlock()

	if len(pending) == 0 {
		return
	}

	ctx.mu.Lock()
	ctx.inFlight = append(ctx.inFlight, pending...)
	ctx.mu.Unlock()
}

// RequestStop closes both mailboxes immediately, regardless of how many
// producer handles (Address/SharedAddress/Subscriber) are still live,
// moving the context toward Stopping on its next Tick instead of waiting
// for every handle to be dropped. This is the "request early stop" method
// spec.md §6 names on Context. Per the revival rule, a producer minted
// afterward does not reopen the mailbox; only an in-flight future spawned
// from the Stopping callback can defer the final transition to Stopped.
func (ctx *Context[A, I, E]) RequestStop() {
	local := ctx.localQ.forceClose()
	shared := ctx.sharedQ.forceClose()

	if local || shared {
		ctx.notifyReady()
	}
}

// notifyReady wakes the owning worker so this context gets ticked promptly
// instead of waiting for the next periodic sweep. It is safe to call from
// any goroutine, including ones not owned by the worker (SharedAddress.Send,
// a cross-thread Waker).
func (ctx *Context[A, I, E]) notifyReady() {
	if ctx.worker != nil {
		ctx.worker.Wake(ctx)
	}
}

// Tick implements Tickable. It drains a bounded batch of envelopes,
// dispatches them, polls in-flight futures, and advances the lifecycle
// state machine. It returns false once the context has reached Stopped.
func (ctx *Context[A, I, E]) Tick() bool {
	ctx.mu.Lock()
	state := ctx.state
	ctx.mu.Unlock()

	switch state {
	case stateStarting:
		log.TraceS(nil, "actor started", "id", ctx.id)
		ctx.behavior.Started(ctx)
		ctx.setState(stateRunning)

		return true

	case stateRunning:
		ctx.drainAndPoll()

		if ctx.mailboxesClosed() && ctx.mailboxesEmpty() && ctx.noInFlight() {
			log.DebugS(nil, "actor entering stopping", "id", ctx.id)
			ctx.behavior.Stopping(ctx)
			ctx.setState(stateStopping)
		}

		return true

	case stateStopping:
		ctx.drainAndPoll()

		// Revival rule: behavior.Stopping may have spawned new actor-aware
		// futures onto ctx. As long as any remain in-flight the transition
		// to Stopped is deferred and Tick keeps draining/polling here, even
		// though the mailboxes themselves stay closed for good — no new
		// inbound envelope can ever revive a context out of Stopping.
		if ctx.mailboxesEmpty() && ctx.noInFlight() {
			ctx.cancelRemaining()
			ctx.behavior.Stopped(ctx)
			log.TraceS(nil, "actor stopped", "id", ctx.id)
			ctx.setState(stateStopped)
		}

		return true

	default: // stateStopped
		return false
	}
}

func (ctx *Context[A, I, E]) setState(s lifecycleState) {
	ctx.mu.Lock()
	ctx.state = s
	ctx.mu.Unlock()
}

// Started reports whether the actor has left the Starting state at least
// once.
func (ctx *Context[A, I, E]) Started() bool {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	return ctx.state != stateStarting
}

// IsStopping reports whether the actor is currently in the Stopping state.
func (ctx *Context[A, I, E]) IsStopping() bool {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	return ctx.state == stateStopping
}

// IsStopped reports whether the actor has fully stopped.
func (ctx *Context[A, I, E]) IsStopped() bool {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	return ctx.state == stateStopped
}

func (ctx *Context[A, I, E]) mailboxesClosed() bool {
	return ctx.localQ.isClosed() && ctx.sharedQ.isClosed()
}

func (ctx *Context[A, I, E]) mailboxesEmpty() bool {
	return ctx.localQ.isEmpty() && ctx.sharedQ.isEmpty()
}

func (ctx *Context[A, I, E]) noInFlight() bool {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	return len(ctx.inFlight) == 0
}

// drainAndPoll pops a bounded batch from each mailbox (local first, then
// shared, so neither variant can starve the other across ticks), dispatches
// every envelope, then polls the in-flight future set, dropping whichever
// futures have completed.
func (ctx *Context[A, I, E]) drainAndPoll() {
	for _, env := range ctx.localQ.popAll(ctx.maxPerTick) {
		ctx.dispatchTraced(env)
	}
	for _, env := range ctx.sharedQ.popAll(ctx.maxPerTick) {
		ctx.dispatchTraced(env)
	}

	ctx.foldPending()

	ctx.mu.Lock()
	live := ctx.inFlight[:0]
	for _, f := range ctx.inFlight {
		if f.Poll(ctx.actor, ctx).IsNotReady() {
			live = append(live, f)
		}
	}
	ctx.inFlight = live
	n := len(live)
	ctx.mu.Unlock()

	// A future's own Poll may have called Spawn; fold that in now that
	// mu has been released, before any caller inspects noInFlight.
	ctx.foldPending()

	ctx.metrics.setInFlight(n)
	ctx.metrics.setMailboxDepth("local", ctx.localQ.depth())
	ctx.metrics.setMailboxDepth("shared", ctx.sharedQ.depth())
}

// dispatchTraced records metrics and a tracing span around one envelope's
// dispatch. The span is local to this call; the actor dispatch model has no
// context.Context of its own to propagate one through.
func (ctx *Context[A, I, E]) dispatchTraced(env *envelope[A, I, E]) {
	if env.msg == nil {
		env.dispatch(ctx.actor, ctx, ctx.behavior)
		return
	}

	ctx.metrics.dispatched(env.msg.MessageType())

	_, end := startDispatchSpan(context.Background(), ctx.id, env.msg.MessageType())
	defer end()

	env.dispatch(ctx.actor, ctx, ctx.behavior)
}

// cancelRemaining drains and cancels any envelopes still queued once the
// context has decided to finish stopping; under normal operation this is a
// no-op since the mailboxes are already both closed and empty by then.
func (ctx *Context[A, I, E]) cancelRemaining() {
	for _, env := range ctx.localQ.drainRemaining() {
		env.cancel()
	}
	for _, env := range ctx.sharedQ.drainRemaining() {
		env.cancel()
	}
}
