package repomanager

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryManager_InTxSerializes(t *testing.T) {
	m := NewMemoryRepositoryManager()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.InTx(context.Background(), func(ctx context.Context, repos Repositories) error {
				n := inside.Add(1)
				for {
					cur := maxInside.Load()
					if n <= cur || maxInside.CompareAndSwap(cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, maxInside.Load())
}

func TestMemoryRepositoryManager_InTxSharesStores(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRepositoryManager()

	err := m.InTx(ctx, func(ctx context.Context, repos Repositories) error {
		_, err := repos.Items().InsertOne(ctx, "milk")
		return err
	})
	require.NoError(t, err)

	all, err := m.Items().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryRepositoryManager_InTxCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemoryRepositoryManager()
	called := false
	err := m.InTx(ctx, func(ctx context.Context, repos Repositories) error {
		called = true
		return nil
	})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, called)
	assert.NoError(t, m.RunMigrations(ctx))
	assert.NoError(t, m.Close())
}
