package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/todolist/internal/server/repositories/items"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/lists"
)

// MemoryRepositoryManager keeps everything in process memory. Transactions
// are serialized by a mutex and are not rolled back on error.
type MemoryRepositoryManager struct {
	txMu sync.Mutex
	repoSet
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		repoSet: repoSet{
			items: items.NewMemoryRepository(),
			lists: lists.NewMemoryRepository(),
		},
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, m.repoSet)
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}
