// Package services contains server-side business logic: resolving lists,
// seeding them with starter items, mutating their items, and backups.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/defaults"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/repomanager"
)

// TodoService resolves lists by name and routes item changes to the store
// that backs the target list.
type TodoService struct {
	repomanager repomanager.RepositoryManager
}

func NewTodoService(m repomanager.RepositoryManager) *TodoService {
	return &TodoService{repomanager: m}
}

func (s *TodoService) backend(ref models.ListRef) listBackend {
	if ref.IsToday() {
		return todayList{items: s.repomanager.Items()}
	}
	return customList{lists: s.repomanager.Lists(), name: ref.Name}
}

// ResolveName resolves a user-typed list name. The name is normalized, so
// "groceries" and "Groceries" reach the same list, and "today" is Today.
func (s *TodoService) ResolveName(ctx context.Context, raw string) (*models.ResolvedList, error) {
	return s.Resolve(ctx, models.RefFromRequest(raw))
}

// Resolve returns the title and items of ref. A missing custom list is
// created with the starter items; an empty Today list is seeded once.
func (s *TodoService) Resolve(ctx context.Context, ref models.ListRef) (*models.ResolvedList, error) {
	if ref.IsToday() {
		return s.resolveToday(ctx)
	}
	return s.resolveCustom(ctx, ref.Name)
}

func (s *TodoService) resolveToday(ctx context.Context) (*models.ResolvedList, error) {
	today := todayList{items: s.repomanager.Items()}

	found, err := today.listItems(ctx)
	if err != nil {
		return nil, err
	}

	if len(found) == 0 {
		if err := s.seedToday(ctx); err != nil {
			return nil, fmt.Errorf("seed %s: %w", common.TodayListName, err)
		}
		if found, err = today.listItems(ctx); err != nil {
			return nil, err
		}
	}

	return &models.ResolvedList{Title: common.TodayListName, Items: found}, nil
}

// seedToday inserts the starter items if the collection is still empty once
// the seed lock is held. Concurrent callers queue on the lock and find the
// rows written by the first one.
func (s *TodoService) seedToday(ctx context.Context) error {
	return s.repomanager.InTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if err := repos.Items().LockSeed(ctx); err != nil {
			return err
		}

		empty, err := repos.Items().IsEmpty(ctx)
		if err != nil || !empty {
			return err
		}

		_, err = repos.Items().InsertMany(ctx, defaults.Items())
		return err
	})
}

func (s *TodoService) resolveCustom(ctx context.Context, name string) (*models.ResolvedList, error) {
	repo := s.repomanager.Lists()

	list, err := repo.FindByName(ctx, name)
	if errors.Is(err, common.ErrorNotFound) {
		list, err = repo.Create(ctx, name, defaults.Items())
		if errors.Is(err, common.ErrorConflict) {
			// lost a creation race; the winner's list is there now
			list, err = repo.FindByName(ctx, name)
		}
	}
	if err != nil {
		return nil, err
	}

	return &models.ResolvedList{Title: list.Name, Items: list.Items}, nil
}

// AddItem appends an item to the list titled listName. The title is taken
// as displayed, without normalization. Adding to a custom list that was
// never resolved fails with common.ErrorNotFound.
func (s *TodoService) AddItem(ctx context.Context, itemName, listName string) (*models.Item, error) {
	return s.backend(models.RefFromTitle(listName)).addItem(ctx, itemName)
}

// DeleteItem removes itemID from the list titled listName. On Today an
// unknown id is common.ErrorNotFound; on a custom list it is a no-op and
// only a missing list is an error.
func (s *TodoService) DeleteItem(ctx context.Context, itemID, listName string) error {
	return s.backend(models.RefFromTitle(listName)).deleteItem(ctx, itemID)
}

// ListNames returns the titles of all custom lists in name order.
func (s *TodoService) ListNames(ctx context.Context) ([]string, error) {
	all, err := s.repomanager.Lists().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(all))
	for i, l := range all {
		names[i] = l.Name
	}
	return names, nil
}
