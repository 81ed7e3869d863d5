// Package lists stores custom lists. Each list is one document holding its
// items as an embedded, ordered array.
package lists

import (
	"context"

	"github.com/dmitrijs2005/todolist/internal/server/models"
)

type Repository interface {
	FindByName(ctx context.Context, name string) (*models.List, error)
	Create(ctx context.Context, name string, items []models.Item) (*models.List, error)
	AppendItem(ctx context.Context, name string, item models.Item) (*models.List, error)
	RemoveItem(ctx context.Context, name string, itemID string) (*models.List, error)
	ListAll(ctx context.Context) ([]models.List, error)
}
