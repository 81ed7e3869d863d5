package dbx

import (
	"context"
	"hash/fnv"
)

// LockKey derives a stable PostgreSQL advisory lock key from a name.
func LockKey(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64())
}

// AdvisoryXactLock blocks until the transaction-scoped advisory lock for key
// is held. The lock is released on commit or rollback, so tx must be a
// transaction; on a bare *sql.DB it would be released immediately.
func AdvisoryXactLock(ctx context.Context, tx DBTX, key int64) error {
	_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, key)
	return err
}
