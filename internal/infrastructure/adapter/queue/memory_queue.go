package queue

import (
	"context"
	"sync"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/messaging"
)

type memoryMessage struct {
	notification messaging.WorkNotification
	attempts     int
}

// MemoryQueue is an unbounded in-process FIFO work queue with ack/nack
// semantics. Messages received and neither acked nor nacked stay in flight
// until the process exits.
type MemoryQueue struct {
	mu       sync.Mutex
	ready    []memoryMessage
	inFlight map[string]memoryMessage
	closed   bool
	signal   chan struct{} // buffered, size 1; coalesces wakeups
	done     chan struct{} // closed by Close
}

var _ messaging.Queue = (*MemoryQueue)(nil)

// NewMemoryQueue creates an empty queue
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		ready:    make([]memoryMessage, 0, 64),
		inFlight: make(map[string]memoryMessage),
		signal:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Publish implements messaging.Notifier
func (q *MemoryQueue) Publish(ctx context.Context, notification messaging.WorkNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return errs.ErrQueueClosed
	}

	q.ready = append(q.ready, memoryMessage{notification: notification})
	q.notify()
	return nil
}

// Receive implements messaging.Consumer. It blocks until at least one
// message is ready, ctx is done, or the queue is closed and drained.
func (q *MemoryQueue) Receive(ctx context.Context, max int) ([]messaging.Delivery, error) {
	if max <= 0 {
		max = 1
	}

	for {
		q.mu.Lock()
		if len(q.ready) > 0 {
			deliveries := q.take(max)
			q.mu.Unlock()
			return deliveries, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return nil, errs.ErrQueueClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.signal:
		case <-q.done:
		}
	}
}

// take moves up to max ready messages in flight. Caller holds q.mu.
func (q *MemoryQueue) take(max int) []messaging.Delivery {
	n := min(max, len(q.ready))
	deliveries := make([]messaging.Delivery, 0, n)

	for i := 0; i < n; i++ {
		msg := q.ready[i]
		msg.attempts++
		receipt := uuid.NewString()
		q.inFlight[receipt] = msg
		deliveries = append(deliveries, messaging.Delivery{
			Notification: msg.notification,
			Receipt:      receipt,
			Attempt:      msg.attempts,
		})
		q.ready[i] = memoryMessage{}
	}

	if n == len(q.ready) {
		q.ready = q.ready[:0]
	} else {
		q.ready = q.ready[n:]
		// Wake another receiver for the rest
		q.notify()
	}

	return deliveries
}

// Ack implements messaging.Consumer. Unknown receipts are ignored.
func (q *MemoryQueue) Ack(_ context.Context, delivery messaging.Delivery) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.inFlight, delivery.Receipt)
	return nil
}

// Nack implements messaging.Consumer: the message goes to the back of the queue
func (q *MemoryQueue) Nack(_ context.Context, delivery messaging.Delivery) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	msg, ok := q.inFlight[delivery.Receipt]
	if !ok {
		return nil
	}
	delete(q.inFlight, delivery.Receipt)

	if q.closed {
		return nil
	}
	q.ready = append(q.ready, msg)
	q.notify()
	return nil
}

// Close stops accepting messages and wakes every waiting receiver.
// Messages already ready can still be received.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.done)
	return nil
}

// Outstanding implements messaging.Tracker
func (q *MemoryQueue) Outstanding(_ context.Context, transactionID string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, msg := range q.ready {
		if msg.notification.TransactionID == transactionID {
			return true, nil
		}
	}
	for _, msg := range q.inFlight {
		if msg.notification.TransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}

// Len returns the number of messages waiting to be received
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ready)
}

// InFlight returns the number of received but unsettled messages
func (q *MemoryQueue) InFlight() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.inFlight)
}

// notify signals availability without blocking. Caller holds q.mu.
func (q *MemoryQueue) notify() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}
