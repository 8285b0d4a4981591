package actor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type mboxTestActor struct{}

func TestMailboxQueueStartsClosedWithNoProducers(t *testing.T) {
	t.Parallel()

	q := newMailboxQueue[mboxTestActor, int, error]()
	require.True(t, q.isClosed())
}

func TestMailboxQueueOpensOnFirstProducer(t *testing.T) {
	t.Parallel()

	q := newMailboxQueue[mboxTestActor, int, error]()
	q.addProducer()

	require.False(t, q.isClosed())
}

func TestMailboxQueueClosesWhenLastProducerReleases(t *testing.T) {
	t.Parallel()

	q := newMailboxQueue[mboxTestActor, int, error]()
	q.addProducer()
	q.addProducer()

	require.False(t, q.releaseProducer())
	require.False(t, q.isClosed())

	require.True(t, q.releaseProducer())
	require.True(t, q.isClosed())
}

func TestMailboxQueuePushRejectedWhenClosed(t *testing.T) {
	t.Parallel()

	q := newMailboxQueue[mboxTestActor, int, error]()
	env := tellEnvelope[mboxTestActor, int, error](nil)

	require.False(t, q.push(env))
}

func TestMailboxQueuePushFIFOOrder(t *testing.T) {
	t.Parallel()

	q := newMailboxQueue[mboxTestActor, int, error]()
	q.addProducer()

	msgs := []Message{
		testMsg{n: 1}, testMsg{n: 2}, testMsg{n: 3},
	}
	for _, m := range msgs {
		require.True(t, q.push(tellEnvelope[mboxTestActor, int, error](m)))
	}

	popped := q.popAll(2)
	require.Len(t, popped, 2)
	require.Equal(t, testMsg{n: 1}, popped[0].msg)
	require.Equal(t, testMsg{n: 2}, popped[1].msg)

	rest := q.drainRemaining()
	require.Len(t, rest, 1)
	require.Equal(t, testMsg{n: 3}, rest[0].msg)
}

func TestMailboxQueueStaysClosedAfterNewProducerOnceClosed(t *testing.T) {
	t.Parallel()

	q := newMailboxQueue[mboxTestActor, int, error]()
	q.addProducer()
	require.True(t, q.releaseProducer())
	require.True(t, q.isClosed())

	// Per the revival rule, closing is permanent: a fresh producer minted
	// afterward does not reopen the mailbox, and pushes through it keep
	// being rejected.
	q.addProducer()
	require.True(t, q.isClosed())

	env := tellEnvelope[mboxTestActor, int, error](nil)
	require.False(t, q.push(env))
}

func TestMailboxQueueForceCloseIsImmediateAndPermanent(t *testing.T) {
	t.Parallel()

	q := newMailboxQueue[mboxTestActor, int, error]()
	q.addProducer()
	q.addProducer()

	require.True(t, q.forceClose())
	require.True(t, q.isClosed())
	require.False(t, q.forceClose(), "forceClose is idempotent")

	// The still-live producer handles don't reopen it either.
	require.False(t, q.releaseProducer())
	require.True(t, q.isClosed())
}

type testMsg struct {
	BaseMessage
	n int
}

func (testMsg) MessageType() string { return "test.msg" }
