package actor

import (
	"context"
	"testing"

	"pgregory.net/rapid"
)

// TestProperty_IncrementsAlwaysSumCorrectly checks that regardless of how
// many Increment messages land in a single Tick's batch, the actor's total
// equals the sum of every amount sent with Send.
func TestProperty_IncrementsAlwaysSumCorrectly(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		a := &fakeActor{}
		w := &fakeWorker{}
		ctx := newContext[fakeActor, int, error]("prop-sum", a, a, w)

		addr := ctx.cell.Local()
		defer addr.Close()

		ctx.Tick()

		amounts := rapid.SliceOfN(rapid.IntRange(-10, 10), 0, 20).Draw(rt, "amounts")
		expected := 0
		for _, n := range amounts {
			expected += n
			addr.Send(fakeIncrement{by: n})
		}

		ctx.Tick()

		if a.total != expected {
			rt.Fatalf("total = %d, want %d", a.total, expected)
		}
	})
}

// TestProperty_CallAlwaysResolves checks that a Call against a live address
// resolves after a single Tick, to IsOK for an Increment and to
// IsHandlerErr for a failing message.
func TestProperty_CallAlwaysResolves(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		a := &fakeActor{}
		w := &fakeWorker{}
		ctx := newContext[fakeActor, int, error]("prop-resolve", a, a, w)

		addr := ctx.cell.Local()
		defer addr.Close()

		ctx.Tick()

		shouldFail := rapid.Bool().Draw(rt, "shouldFail")

		var future *MessageFuture[int, error]
		if shouldFail {
			future = addr.Call(fakeFail{})
		} else {
			future = addr.Call(fakeIncrement{by: rapid.IntRange(0, 5).Draw(rt, "by")})
		}

		ctx.Tick()

		result := future.Await(context.Background())

		switch {
		case shouldFail && !result.IsHandlerErr():
			rt.Fatalf("expected handler error, got ok=%v cancelled=%v",
				result.IsOK(), result.IsCancelled())
		case !shouldFail && !result.IsOK():
			rt.Fatalf("expected ok, got handlerErr=%v cancelled=%v",
				result.IsHandlerErr(), result.IsCancelled())
		}
	})
}

// TestProperty_AddressCloseRefcountIsMonotonic checks that however many
// clones of a local Address are made and closed, the mailbox only closes
// once every clone (and the original) has been closed exactly once.
func TestProperty_AddressCloseRefcountIsMonotonic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		a := &fakeActor{}
		w := &fakeWorker{}
		ctx := newContext[fakeActor, int, error]("prop-refcount", a, a, w)

		root := ctx.cell.Local()

		n := rapid.IntRange(0, 8).Draw(rt, "clones")
		clones := make([]*Address[fakeActor, int, error], n)
		for i := range clones {
			clones[i] = root.Clone()
		}

		if ctx.localQ.isClosed() {
			rt.Fatalf("mailbox closed while the root address is still live")
		}

		for i, c := range clones {
			if err := c.Close(); err != nil {
				rt.Fatalf("clone %d close: %v", i, err)
			}
			if ctx.localQ.isClosed() {
				rt.Fatalf("mailbox closed early at clone %d, root still live", i)
			}
		}

		if err := root.Close(); err != nil {
			rt.Fatalf("root close: %v", err)
		}

		if !ctx.localQ.isClosed() {
			rt.Fatalf("mailbox should be closed once every handle is closed")
		}
	})
}

// TestProperty_SharedAddressClosedFlagMonotonic checks that once a Send
// through one SharedAddress observes the mailbox closed, that handle and
// every clone made from it report IsClosed.
func TestProperty_SharedAddressClosedFlagMonotonic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		a := &fakeActor{}
		w := &fakeWorker{}
		ctx := newContext[fakeActor, int, error]("prop-shared-closed", a, a, w)

		shared := ctx.cell.Shared()

		n := rapid.IntRange(0, 5).Draw(rt, "clones")
		clones := make([]*SharedAddress[fakeActor, int, error], n)
		for i := range clones {
			clones[i] = shared.Clone()
		}

		for _, c := range clones {
			_ = c.Close()
		}
		_ = shared.Close()

		// Mailbox is now closed (zero producers). Observing it via any
		// remaining handle sets the shared flag for all of them.
		shared.Send(fakeIncrement{by: 1})

		if !shared.IsClosed() {
			rt.Fatalf("shared handle should observe closure")
		}
		for i, c := range clones {
			if !c.IsClosed() {
				rt.Fatalf("clone %d should observe closure", i)
			}
		}
	})
}
