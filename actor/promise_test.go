package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOneShotSinkDeliversOnce(t *testing.T) {
	t.Parallel()

	sink := newOneShotSink[int, error]()
	sink.deliver(okResult[int, error](7))

	// A second deliver must be silently ignored rather than panicking on a
	// send to a closed channel.
	require.NotPanics(t, func() {
		sink.deliver(okResult[int, error](99))
	})

	result := sink.await(context.Background())
	require.True(t, result.IsOK())
	require.Equal(t, 7, result.Item())
}

func TestOneShotSinkAwaitCancelledOnContextDone(t *testing.T) {
	t.Parallel()

	sink := newOneShotSink[int, error]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	result := sink.await(ctx)
	require.True(t, result.IsCancelled())
}

func TestLocalReplyRoundTrip(t *testing.T) {
	t.Parallel()

	sink, future := newLocalReply[string, error]()
	sink.deliver(okResult[string, error]("hello"))

	result := future.Await(context.Background())
	require.True(t, result.IsOK())
	require.Equal(t, "hello", result.Item())
}

func TestSharedReplyRoundTrip(t *testing.T) {
	t.Parallel()

	sink, future := newSharedReply[string, error]()

	go sink.deliver(okResult[string, error]("from another goroutine"))

	result := future.Await(context.Background())
	require.True(t, result.IsOK())
	require.Equal(t, "from another goroutine", result.Item())
}

func TestCallResultKinds(t *testing.T) {
	t.Parallel()

	ok := okResult[int, error](1)
	require.True(t, ok.IsOK())
	require.False(t, ok.IsHandlerErr())
	require.False(t, ok.IsCancelled())

	errResult := handlerErrResult[int, error](assertErr)
	require.True(t, errResult.IsHandlerErr())
	require.Equal(t, assertErr, errResult.HandlerErr())

	cancelled := cancelledResult[int, error]()
	require.True(t, cancelled.IsCancelled())
}
