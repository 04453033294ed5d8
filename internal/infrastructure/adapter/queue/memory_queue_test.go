package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/messaging"
)

func work(id string) messaging.WorkNotification {
	return messaging.WorkNotification{TransactionID: id}
}

func TestMemoryQueue_FIFOAndBatching(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, q.Publish(ctx, work(id)))
	}

	first, err := q.Receive(ctx, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "a", first[0].Notification.TransactionID)
	assert.Equal(t, "b", first[1].Notification.TransactionID)
	assert.Equal(t, 1, first[0].Attempt)
	assert.NotEqual(t, first[0].Receipt, first[1].Receipt)

	second, err := q.Receive(ctx, 10)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "c", second[0].Notification.TransactionID)

	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 3, q.InFlight())
}

func TestMemoryQueue_AckAndNack(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue()
	require.NoError(t, q.Publish(ctx, work("tx-1")))

	deliveries, err := q.Receive(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, q.Nack(ctx, deliveries[0]))
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 0, q.InFlight())

	again, err := q.Receive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, again[0].Attempt)

	require.NoError(t, q.Ack(ctx, again[0]))
	assert.Equal(t, 0, q.InFlight())

	// Settling twice is harmless
	require.NoError(t, q.Ack(ctx, again[0]))
	require.NoError(t, q.Nack(ctx, again[0]))
	assert.Equal(t, 0, q.Len())
}

func TestMemoryQueue_ReceiveWaits(t *testing.T) {
	q := NewMemoryQueue()

	t.Run("Wakes on publish", func(t *testing.T) {
		got := make(chan []messaging.Delivery, 1)
		go func() {
			deliveries, _ := q.Receive(context.Background(), 1)
			got <- deliveries
		}()

		time.Sleep(10 * time.Millisecond)
		require.NoError(t, q.Publish(context.Background(), work("late")))

		select {
		case deliveries := <-got:
			require.Len(t, deliveries, 1)
			assert.Equal(t, "late", deliveries[0].Notification.TransactionID)
		case <-time.After(2 * time.Second):
			t.Fatal("receiver was not woken")
		}
	})

	t.Run("Returns on cancel", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := q.Receive(ctx, 1)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestMemoryQueue_Close(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue()
	require.NoError(t, q.Publish(ctx, work("left-over")))

	waiting := make(chan error, 1)
	empty := NewMemoryQueue()
	go func() {
		_, err := empty.Receive(ctx, 1)
		waiting <- err
	}()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, empty.Close())
	select {
	case err := <-waiting:
		assert.ErrorIs(t, err, errs.ErrQueueClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("receiver was not released by Close")
	}

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())
	assert.ErrorIs(t, q.Publish(ctx, work("rejected")), errs.ErrQueueClosed)

	// Messages published before Close are still delivered
	deliveries, err := q.Receive(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, deliveries, 1)

	_, err = q.Receive(ctx, 5)
	assert.ErrorIs(t, err, errs.ErrQueueClosed)
}

func TestMemoryQueue_Outstanding(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue()

	queued, err := q.Outstanding(ctx, "tx-1")
	require.NoError(t, err)
	assert.False(t, queued)

	require.NoError(t, q.Publish(ctx, work("tx-1")))
	queued, err = q.Outstanding(ctx, "tx-1")
	require.NoError(t, err)
	assert.True(t, queued, "ready")

	deliveries, err := q.Receive(ctx, 1)
	require.NoError(t, err)
	queued, err = q.Outstanding(ctx, "tx-1")
	require.NoError(t, err)
	assert.True(t, queued, "in flight")

	queued, err = q.Outstanding(ctx, "tx-2")
	require.NoError(t, err)
	assert.False(t, queued)

	require.NoError(t, q.Ack(ctx, deliveries[0]))
	queued, err = q.Outstanding(ctx, "tx-1")
	require.NoError(t, err)
	assert.False(t, queued, "acked")
}
