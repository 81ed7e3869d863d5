package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todolist/internal/server/repositories/items"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/lists"
)

// Repositories is the set of stores a unit of work operates on.
type Repositories interface {
	Items() items.Repository
	Lists() lists.Repository
}

// RepositoryManager owns the storage backend. Items and Lists work outside
// any transaction; InTx hands fn repositories bound to a single transaction
// that commits when fn returns nil.
type RepositoryManager interface {
	Repositories
	RunMigrations(ctx context.Context) error
	InTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Close() error
}

type repoSet struct {
	items items.Repository
	lists lists.Repository
}

func (s repoSet) Items() items.Repository { return s.items }
func (s repoSet) Lists() lists.Repository { return s.lists }

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Open builds the manager for the named backend. dsn is ignored by the
// memory backend.
func Open(ctx context.Context, backend, dsn string) (RepositoryManager, error) {
	switch backend {
	case BackendPostgres, "":
		return OpenPostgres(ctx, dsn)
	case BackendMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
