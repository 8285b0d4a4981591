package actor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// The following six scenarios are the named seed scenarios this package's
// lifecycle state machine is built against: each asserts the exact
// started/stopping/stopped flag combination the scenario implies.

func TestLifecycle_ActiveLocalAddress(t *testing.T) {
	t.Parallel()

	a := &fakeActor{}
	w := &fakeWorker{}
	ctx := newContext[fakeActor, int, error]("active-local", a, a, w)

	addr := ctx.cell.Local()
	defer addr.Close()

	ctx.Tick()

	require.True(t, ctx.Started())
	require.False(t, ctx.IsStopping())
	require.False(t, ctx.IsStopped())

	// A second tick with the address still held changes nothing: the
	// mailbox stays open so the actor stays Running.
	ctx.Tick()
	require.False(t, ctx.IsStopping())
	require.False(t, ctx.IsStopped())
}

func TestLifecycle_ActiveSharedAddress(t *testing.T) {
	t.Parallel()

	a := &fakeActor{}
	w := &fakeWorker{}
	ctx := newContext[fakeActor, int, error]("active-shared", a, a, w)

	shared := ctx.cell.Shared()
	defer shared.Close()

	ctx.Tick()

	require.True(t, ctx.Started())
	require.False(t, ctx.IsStopping())
	require.False(t, ctx.IsStopped())

	ctx.Tick()
	require.False(t, ctx.IsStopping())
	require.False(t, ctx.IsStopped())
}

func TestLifecycle_StopAfterDropLocal(t *testing.T) {
	t.Parallel()

	a := &fakeActor{}
	w := &fakeWorker{}
	ctx := newContext[fakeActor, int, error]("stop-local", a, a, w)

	addr := ctx.cell.Local()

	ctx.Tick() // Starting -> Running
	require.False(t, ctx.IsStopping())

	require.NoError(t, addr.Close())

	ctx.Tick() // Running -> Stopping
	require.True(t, ctx.IsStopping())
	require.False(t, ctx.IsStopped())

	ctx.Tick() // Stopping -> Stopped
	require.False(t, ctx.IsStopping())
	require.True(t, ctx.IsStopped())
}

func TestLifecycle_StopAfterDropShared(t *testing.T) {
	t.Parallel()

	a := &fakeActor{}
	w := &fakeWorker{}
	ctx := newContext[fakeActor, int, error]("stop-shared", a, a, w)

	shared := ctx.cell.Shared()

	ctx.Tick() // Starting -> Running
	require.False(t, ctx.IsStopping())

	require.NoError(t, shared.Close())

	ctx.Tick() // Running -> Stopping
	require.True(t, ctx.IsStopping())
	require.False(t, ctx.IsStopped())

	ctx.Tick() // Stopping -> Stopped
	require.False(t, ctx.IsStopping())
	require.True(t, ctx.IsStopped())
}

func TestLifecycle_FireAndForget(t *testing.T) {
	t.Parallel()

	a := &fakeActor{}
	w := &fakeWorker{}
	ctx := newContext[fakeActor, int, error]("fire-and-forget", a, a, w)

	// No address is ever retained, so both mailboxes are vacuously closed
	// and the actor runs its whole lifecycle without any outside trigger.
	ctx.Tick() // Starting -> Running
	ctx.Tick() // Running -> Stopping
	ctx.Tick() // Stopping -> Stopped

	require.True(t, ctx.IsStopped())
	require.Equal(t, 1, a.startedCalls)
	require.Equal(t, 1, a.stoppingCalls)
	require.Equal(t, 1, a.stoppedCalls)
}

// revivingActor's Stopping callback spawns a gate future onto its own
// context, so started/stopping/stopped can be observed true/true/false for
// as long as the external signal is withheld.
type revivingActor struct {
	fakeActor
	gate *gateFuture[revivingActor, int, error]
}

func (a *revivingActor) Started(ctx *Context[revivingActor, int, error]) {
	a.startedCalls++
}

func (a *revivingActor) Stopping(ctx *Context[revivingActor, int, error]) {
	a.stoppingCalls++
	ctx.Spawn(a.gate)
}

func (a *revivingActor) Stopped(ctx *Context[revivingActor, int, error]) {
	a.stoppedCalls++
}

func (a *revivingActor) Handle(msg Message, ctx *Context[revivingActor, int, error]) ActorFuture[revivingActor, int, error] {
	return ResultFuture[revivingActor, int, error](Failed[int, error](fmt.Errorf("revivingActor: unhandled %T", msg)))
}

// TestLifecycle_ReviveInStopping implements spec.md §8's revive_in_stopping
// scenario: no address is ever retained, so the context reaches Stopping on
// the tick right after Started; the Stopping callback spawns a future that only
// resolves once an external one-shot is signalled, deferring Stopped for as
// long as that future stays in-flight.
func TestLifecycle_ReviveInStopping(t *testing.T) {
	t.Parallel()

	a := &revivingActor{gate: newGateFuture[revivingActor, int, error]()}
	w := &fakeWorker{}
	ctx := newContext[revivingActor, int, error]("revive", a, a, w)

	ctx.Tick() // Starting -> Running
	require.True(t, ctx.Started())

	ctx.Tick() // Running: mailboxes never had a producer -> Stopping, spawns gate
	require.True(t, ctx.IsStopping())
	require.False(t, ctx.IsStopped())
	require.Equal(t, 1, a.stoppingCalls)

	// The gate is still unsignalled: Stopped must keep being deferred
	// across as many ticks as it takes, with started/stopping/stopped
	// observed true/true/false the whole time.
	for i := 0; i < 3; i++ {
		ctx.Tick()
		require.True(t, ctx.Started())
		require.True(t, ctx.IsStopping())
		require.False(t, ctx.IsStopped())
	}

	a.gate.signal()

	ctx.Tick() // gate now ready, drops out of in-flight -> Stopped
	require.True(t, ctx.IsStopped())
	require.Equal(t, 1, a.stoppedCalls)
}
