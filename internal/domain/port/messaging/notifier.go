package messaging

import "context"

// WorkNotification asks a worker to process one transaction
type WorkNotification struct {
	TransactionID string `json:"transactionId"`
}

// Delivery is one received copy of a notification.
// The same notification may be delivered more than once.
type Delivery struct {
	Notification WorkNotification
	// Receipt identifies this particular receive; Ack and Nack need it
	Receipt string
	// Attempt counts receives of the underlying message, starting at 1
	Attempt int
}

// Notifier publishes work notifications
type Notifier interface {
	// Publish enqueues a notification for at-least-once delivery
	//
	// Possible errors:
	// - ErrQueueClosed: If the queue no longer accepts messages
	// - ErrDatabaseConnection: If a database backed queue cannot be reached
	Publish(ctx context.Context, notification WorkNotification) error
}

// Consumer receives work notifications
type Consumer interface {
	// Receive returns up to max deliveries. It may wait for messages to arrive
	// and may return an empty slice; it returns ctx.Err() once ctx is done.
	Receive(ctx context.Context, max int) ([]Delivery, error)

	// Ack removes a delivered message permanently
	Ack(ctx context.Context, delivery Delivery) error

	// Nack makes a delivered message available for redelivery
	Nack(ctx context.Context, delivery Delivery) error
}

// Tracker reports whether a transaction still has a notification waiting or in flight
type Tracker interface {
	Outstanding(ctx context.Context, transactionID string) (bool, error)
}

// Queue is a notifier and consumer backed by the same transport
type Queue interface {
	Notifier
	Consumer
	Tracker
	Close() error
}
