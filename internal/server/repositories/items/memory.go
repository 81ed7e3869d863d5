package items

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/models"
)

// MemoryRepository keeps items in process memory. It is safe for concurrent
// use; seeding exclusivity comes from the owning manager's transaction lock.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Item
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return models.CloneItems(r.items), nil
}

func (r *MemoryRepository) InsertMany(ctx context.Context, items []models.Item) ([]models.Item, error) {
	inserted := make([]models.Item, len(items))
	for i, it := range items {
		inserted[i] = models.Item{ID: newID(), Name: it.Name}
	}

	r.mu.Lock()
	r.items = append(r.items, inserted...)
	r.mu.Unlock()

	return models.CloneItems(inserted), nil
}

func (r *MemoryRepository) InsertOne(ctx context.Context, name string) (*models.Item, error) {
	item := models.Item{ID: newID(), Name: name}

	r.mu.Lock()
	r.items = append(r.items, item)
	r.mu.Unlock()

	return &item, nil
}

func (r *MemoryRepository) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *MemoryRepository) IsEmpty(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items) == 0, nil
}

func (r *MemoryRepository) LockSeed(ctx context.Context) error {
	return nil
}
