package lists

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/models"
)

// MemoryRepository keeps lists in a map keyed by name. Name uniqueness is
// enforced under the same lock that inserts, matching the unique index of
// the PostgreSQL table.
type MemoryRepository struct {
	mu     sync.RWMutex
	byName map[string]*models.List
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byName: make(map[string]*models.List)}
}

func clone(l *models.List) *models.List {
	return &models.List{ID: l.ID, Name: l.Name, Items: models.CloneItems(l.Items)}
}

func (r *MemoryRepository) FindByName(ctx context.Context, name string) (*models.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(l), nil
}

func (r *MemoryRepository) Create(ctx context.Context, name string, items []models.Item) (*models.List, error) {
	list := &models.List{ID: newID(), Name: name, Items: make([]models.Item, len(items))}
	for i, it := range items {
		list.Items[i] = models.Item{ID: newID(), Name: it.Name}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; ok {
		return nil, common.ErrorConflict
	}
	r.byName[name] = list
	return clone(list), nil
}

func (r *MemoryRepository) AppendItem(ctx context.Context, name string, item models.Item) (*models.List, error) {
	if item.ID == "" {
		item.ID = newID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	l.Items = append(l.Items, item)
	return clone(l), nil
}

func (r *MemoryRepository) RemoveItem(ctx context.Context, name string, itemID string) (*models.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	kept := l.Items[:0]
	for _, it := range l.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	l.Items = kept
	return clone(l), nil
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]models.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.List, 0, len(r.byName))
	for _, l := range r.byName {
		result = append(result, *clone(l))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
