package queue

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/model"
)

// DBQueueConfig configures DBQueue
type DBQueueConfig struct {
	// VisibilityTimeout is how long a received message stays hidden before it
	// is delivered again if nobody acks it
	VisibilityTimeout time.Duration
	// PollInterval is the pause between empty polls
	PollInterval time.Duration
}

// DBQueue is a work queue stored in the work_messages table. It survives
// restarts and can be shared by several worker processes.
//
// Receiving claims a row by swapping its receipt in a conditional UPDATE, the
// same lease-by-expiry pattern used for row locks: a claim expires at
// visible_at and the row can then be claimed again.
type DBQueue struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       DBQueueConfig
	retry        database.RetryConfig
	closed       atomic.Bool
}

var _ messaging.Queue = (*DBQueue)(nil)

// NewDBQueue creates a new DBQueue
func NewDBQueue(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger, config DBQueueConfig) *DBQueue {
	if config.VisibilityTimeout <= 0 {
		config.VisibilityTimeout = 30 * time.Second
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 500 * time.Millisecond
	}

	return &DBQueue{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		config:       config,
		retry:        database.DefaultRetryConfig(),
	}
}

// Publish implements messaging.Notifier
func (q *DBQueue) Publish(ctx context.Context, notification messaging.WorkNotification) error {
	if q.closed.Load() {
		return errs.ErrQueueClosed
	}

	now := q.timeProvider.Now()
	msg := model.WorkMessage{
		TransactionID: notification.TransactionID,
		VisibleAt:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := database.RetryOnTransientError(ctx, q.retry, q.timeProvider, q.logger, func(ctx context.Context) error {
		msg.ID = 0
		return q.db.WithContext(ctx).Create(&msg).Error
	})
	if err != nil {
		q.logger.Error("Failed to enqueue work notification", map[string]any{
			"transaction_id": notification.TransactionID,
			"error":          err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	return nil
}

// Receive implements messaging.Consumer. It polls until at least one message
// can be claimed or ctx is done.
func (q *DBQueue) Receive(ctx context.Context, max int) ([]messaging.Delivery, error) {
	if max <= 0 {
		max = 1
	}

	for {
		if q.closed.Load() {
			return nil, errs.ErrQueueClosed
		}

		deliveries, err := q.claim(ctx, max)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}
		if len(deliveries) > 0 {
			return deliveries, nil
		}

		if err := q.timeProvider.Sleep(ctx, q.config.PollInterval); err != nil {
			return nil, err
		}
	}
}

// claim takes up to max visible messages. Each row is claimed by a
// conditional update on its current receipt, so two receivers never get the
// same row for the same visibility window.
func (q *DBQueue) claim(ctx context.Context, max int) ([]messaging.Delivery, error) {
	now := q.timeProvider.Now()

	var candidates []model.WorkMessage
	err := q.db.WithContext(ctx).
		Where("visible_at <= ?", now).
		Order("visible_at ASC, id ASC").
		Limit(max).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]messaging.Delivery, 0, len(candidates))
	for _, candidate := range candidates {
		receipt := uuid.NewString()
		result := q.db.WithContext(ctx).Model(&model.WorkMessage{}).
			Where("id = ? AND receipt = ? AND visible_at <= ?", candidate.ID, candidate.Receipt, now).
			Updates(map[string]any{
				"receipt":    receipt,
				"attempts":   gorm.Expr("attempts + 1"),
				"visible_at": now.Add(q.config.VisibilityTimeout),
				"updated_at": now,
			})
		if result.Error != nil {
			return deliveries, result.Error
		}
		if result.RowsAffected == 0 {
			// Another receiver claimed it first
			continue
		}

		deliveries = append(deliveries, messaging.Delivery{
			Notification: messaging.WorkNotification{TransactionID: candidate.TransactionID},
			Receipt:      receipt,
			Attempt:      candidate.Attempts + 1,
		})
	}

	return deliveries, nil
}

// Ack implements messaging.Consumer. An expired receipt deletes nothing; the
// message will be delivered again and the worker drops it as a duplicate.
func (q *DBQueue) Ack(ctx context.Context, delivery messaging.Delivery) error {
	result := q.db.WithContext(ctx).
		Where("receipt = ?", delivery.Receipt).
		Delete(&model.WorkMessage{})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		q.logger.Debug("Acknowledged delivery no longer held", map[string]any{
			"transaction_id": delivery.Notification.TransactionID,
		})
	}
	return nil
}

// Nack implements messaging.Consumer: the message becomes visible immediately
func (q *DBQueue) Nack(ctx context.Context, delivery messaging.Delivery) error {
	now := q.timeProvider.Now()
	err := q.db.WithContext(ctx).Model(&model.WorkMessage{}).
		Where("receipt = ?", delivery.Receipt).
		Updates(map[string]any{
			"visible_at": now,
			"updated_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return nil
}

// Close stops publishing and receiving; the table keeps its rows
func (q *DBQueue) Close() error {
	q.closed.Store(true)
	return nil
}

// Outstanding implements messaging.Tracker: any stored row counts, visible or claimed
func (q *DBQueue) Outstanding(ctx context.Context, transactionID string) (bool, error) {
	var count int64
	err := q.db.WithContext(ctx).Model(&model.WorkMessage{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return count > 0, nil
}

// Depth returns the number of stored messages, visible or not
func (q *DBQueue) Depth(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.WithContext(ctx).Model(&model.WorkMessage{}).Count(&count).Error
	return count, err
}
