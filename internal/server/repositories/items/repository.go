// Package items stores the rows of the Today list: a flat, insertion-ordered
// collection of items.
package items

import (
	"context"

	"github.com/dmitrijs2005/todolist/internal/server/models"
)

type Repository interface {
	ListAll(ctx context.Context) ([]models.Item, error)
	InsertMany(ctx context.Context, items []models.Item) ([]models.Item, error)
	InsertOne(ctx context.Context, name string) (*models.Item, error)
	DeleteByID(ctx context.Context, id string) error

	// IsEmpty and LockSeed back the one-time seeding of the collection. Both
	// must run inside the same transaction, LockSeed first.
	IsEmpty(ctx context.Context) (bool, error)
	LockSeed(ctx context.Context) error
}
