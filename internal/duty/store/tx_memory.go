package store

import (
	"context"
	"sync"
	"time"

	"stargate/internal/storage"
	id "stargate/pkg/domain"
	dErrors "stargate/pkg/domain-errors"
)

// numShards spreads per-person locks so unrelated people rarely contend.
const numShards = 128

// DefaultTxTimeout bounds a reconciliation transaction when ctx has no deadline.
const DefaultTxTimeout = 5 * time.Second

// ShardedTx serializes reconciliations per person over the in-memory tables.
// If fn fails, the person's detail and duties are restored to their state
// before the transaction began.
type ShardedTx struct {
	shards  [numShards]sync.Mutex
	db      *storage.Memory
	timeout time.Duration
}

func NewShardedTx(db *storage.Memory, timeout time.Duration) *ShardedTx {
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	return &ShardedTx{db: db, timeout: timeout}
}

func (t *ShardedTx) RunInTx(ctx context.Context, personID id.PersonID, fn func(ctx context.Context) error) (err error) {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	shard := &t.shards[uint64(personID)%numShards]
	shard.Lock()
	defer shard.Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	snap := t.db.SnapshotPerson(personID)
	defer func() {
		if r := recover(); r != nil {
			t.db.RestorePerson(snap)
			panic(r)
		}
		if err != nil {
			t.db.RestorePerson(snap)
		}
	}()
	return fn(ctx)
}
