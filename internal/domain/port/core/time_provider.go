package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain
type TimeProvider interface {
	// Now returns the current time in UTC
	Now() time.Time
	Since(t time.Time) time.Duration
	// Sleep waits for d or until ctx is done, whichever comes first.
	// It returns ctx.Err() when the wait was cut short.
	Sleep(ctx context.Context, d time.Duration) error
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
