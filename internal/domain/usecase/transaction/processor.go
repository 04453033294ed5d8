package transaction

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
)

// SimulatedFailureReason is recorded for failures produced by SimulatedProcessor
const SimulatedFailureReason = "Simulated processing failure"

// Outcome is the result of processing one transaction
type Outcome struct {
	Status entity.TransactionStatus // COMPLETED or FAILED
	Reason string                   // Failure reason, ignored for COMPLETED
}

// Completed returns a successful outcome
func Completed() Outcome {
	return Outcome{Status: entity.StatusCompleted}
}

// Failed returns a failed outcome with reason
func Failed(reason string) Outcome {
	return Outcome{Status: entity.StatusFailed, Reason: reason}
}

// Processor performs the domain work for a transaction that a worker has claimed.
// Implementations must return promptly once ctx is done.
type Processor interface {
	Process(ctx context.Context, txn *entity.Transaction) (Outcome, error)
}

// ProcessorFunc adapts an ordinary function to the Processor interface
type ProcessorFunc func(ctx context.Context, txn *entity.Transaction) (Outcome, error)

// Process calls f(ctx, txn)
func (f ProcessorFunc) Process(ctx context.Context, txn *entity.Transaction) (Outcome, error) {
	return f(ctx, txn)
}

// SimulatorConfig configures SimulatedProcessor
type SimulatorConfig struct {
	MinDelay    time.Duration
	MaxDelay    time.Duration
	SuccessRate float64 // probability in [0,1] of a COMPLETED outcome
}

// DefaultSimulatorConfig mirrors the reference behaviour: about ten seconds of
// work and an 80% success rate
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		MinDelay:    5 * time.Second,
		MaxDelay:    10 * time.Second,
		SuccessRate: 0.8,
	}
}

// SimulatedProcessor stands in for real payment processing: it waits a random
// bounded time and then succeeds with a configured probability
type SimulatedProcessor struct {
	config       SimulatorConfig
	timeProvider coreport.TimeProvider

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedProcessor creates a new SimulatedProcessor. A nil rng uses a
// randomly seeded source.
func NewSimulatedProcessor(config SimulatorConfig, timeProvider coreport.TimeProvider, rng *rand.Rand) *SimulatedProcessor {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if config.MaxDelay < config.MinDelay {
		config.MaxDelay = config.MinDelay
	}
	return &SimulatedProcessor{
		config:       config,
		timeProvider: timeProvider,
		rng:          rng,
	}
}

// Process implements Processor
func (p *SimulatedProcessor) Process(ctx context.Context, txn *entity.Transaction) (Outcome, error) {
	delay, roll := p.draw()

	if err := p.timeProvider.Sleep(ctx, delay); err != nil {
		return Outcome{}, err
	}

	if roll < p.config.SuccessRate {
		return Completed(), nil
	}
	return Failed(SimulatedFailureReason), nil
}

// draw picks the delay and the success roll under the lock; rand.Rand is not safe for concurrent use
func (p *SimulatedProcessor) draw() (time.Duration, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delay := p.config.MinDelay
	if spread := p.config.MaxDelay - p.config.MinDelay; spread > 0 {
		delay += time.Duration(p.rng.Int64N(int64(spread) + 1))
	}
	return delay, p.rng.Float64()
}
