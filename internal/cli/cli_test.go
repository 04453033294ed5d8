package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/queue"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/bootstrap"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/config"
)

// fixture is a config directory pointing at a SQLite file shared by every command of a test
type fixture struct {
	dir string
	cfg *config.Config
}

func newFixture(t *testing.T, queueDriver string) *fixture {
	t.Helper()
	dir := t.TempDir()
	body := fmt.Sprintf(`
database:
  driver: sqlite
  path: %q
  logLevel: silent
  retryAttempts: 1
  monitorInterval: 0
logger:
  level: error
  format: console
queue:
  driver: %s
  pollInterval: 10
worker:
  minDelay: 0
  maxDelay: 10
  successRate: 1
`, filepath.Join(dir, "transactions.db"), queueDriver)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(body), 0o600))

	cfg, err := config.Load(config.Test, dir)
	require.NoError(t, err)
	return &fixture{dir: dir, cfg: cfg}
}

// with opens a container on the fixture's database for direct setup and checks
func (f *fixture) with(t *testing.T, fn func(c *bootstrap.Container)) {
	t.Helper()
	c, err := bootstrap.New(context.Background(), f.cfg, logger.NewNopLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, c.Close()) }()
	fn(c)
}

func (f *fixture) create(t *testing.T, reference string) *entity.Transaction {
	t.Helper()
	var txn *entity.Transaction
	f.with(t, func(c *bootstrap.Container) {
		var err error
		txn, err = c.Service.CreateTransaction(context.Background(), usecase.CreateTransactionRequest{
			Amount:    decimal.RequireFromString("42.10"),
			Currency:  "USD",
			Reference: reference,
		})
		require.NoError(t, err)
	})
	return txn
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--env", config.Test, "--config-dir", f.dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (f *fixture) depth(t *testing.T) int64 {
	t.Helper()
	var depth int64
	f.with(t, func(c *bootstrap.Container) {
		var err error
		depth, err = c.Queue.(*queue.DBQueue).Depth(context.Background())
		require.NoError(t, err)
	})
	return depth
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "txctl", cmd.Use)

	for _, name := range []string{"serve", "worker", "sweep", "get", "requeue", "migrate"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	f := newFixture(t, config.QueueDatabase)

	_, err := f.run(t, "--format", "yaml", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestMigrate(t *testing.T) {
	f := newFixture(t, config.QueueDatabase)

	out, err := f.run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema at version "+migration.CurrentSchemaVersion)
}

func TestGet(t *testing.T) {
	f := newFixture(t, config.QueueDatabase)
	txn := f.create(t, "CLI-GET")

	out, err := f.run(t, "get", txn.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Status:     PENDING")
	assert.Contains(t, out, "Amount:     42.1 USD")

	out, err = f.run(t, "--format", "json", "get", txn.ID)
	require.NoError(t, err)
	var resp dto.TransactionResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, txn.ID, resp.ID)
	assert.Equal(t, "CLI-GET", resp.Reference)

	_, err = f.run(t, "get", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRequeue(t *testing.T) {
	f := newFixture(t, config.QueueDatabase)

	t.Run("Pending", func(t *testing.T) {
		txn := f.create(t, "CLI-REQ-1")
		before := f.depth(t)

		out, err := f.run(t, "requeue", txn.ID)
		require.NoError(t, err)
		assert.Contains(t, out, "Requeued transaction "+txn.ID)
		assert.Equal(t, before+1, f.depth(t))
	})

	t.Run("ProcessingNeedsReclaim", func(t *testing.T) {
		txn := f.create(t, "CLI-REQ-2")
		f.with(t, func(c *bootstrap.Container) {
			begin, err := c.Ledger.BeginProcessing(context.Background(), txn.ID, txn.Version)
			require.NoError(t, err)
			require.True(t, begin.Applied())
		})

		_, err := f.run(t, "requeue", txn.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--reclaim")

		_, err = f.run(t, "requeue", "--reclaim", txn.ID)
		require.NoError(t, err)

		f.with(t, func(c *bootstrap.Container) {
			current, err := c.Ledger.Read(context.Background(), txn.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.StatusPending, current.Status)
			assert.Equal(t, txn.Version+2, current.Version)
		})
	})

	t.Run("Terminal", func(t *testing.T) {
		txn := f.create(t, "CLI-REQ-3")
		f.with(t, func(c *bootstrap.Container) {
			ctx := context.Background()
			begin, err := c.Ledger.BeginProcessing(ctx, txn.ID, txn.Version)
			require.NoError(t, err)
			_, err = c.Ledger.Finish(ctx, txn.ID, begin.Version, transaction.Completed())
			require.NoError(t, err)
		})

		_, err := f.run(t, "requeue", txn.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already COMPLETED")
	})
}

func TestSweep(t *testing.T) {
	f := newFixture(t, config.QueueDatabase)
	f.create(t, "CLI-SWEEP")

	_, err := f.run(t, "sweep")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recovery is disabled")

	out, err := f.run(t, "--format", "json", "sweep", "--pending-grace", "1ns")
	require.NoError(t, err)

	var report map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report["republished"])
	assert.Equal(t, 0, report["reclaimed"])
}

func TestWorkerNeedsDatabaseQueue(t *testing.T) {
	f := newFixture(t, config.QueueMemory)

	_, err := f.run(t, "worker")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}
