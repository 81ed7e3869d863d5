package services

import (
	"context"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/items"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/lists"
)

// listBackend is what a list can do regardless of how it is stored.
type listBackend interface {
	listItems(ctx context.Context) ([]models.Item, error)
	addItem(ctx context.Context, name string) (*models.Item, error)
	deleteItem(ctx context.Context, id string) error
}

// todayList is the default list, stored as rows of the item collection.
type todayList struct {
	items items.Repository
}

func (l todayList) listItems(ctx context.Context) ([]models.Item, error) {
	return l.items.ListAll(ctx)
}

func (l todayList) addItem(ctx context.Context, name string) (*models.Item, error) {
	return l.items.InsertOne(ctx, name)
}

func (l todayList) deleteItem(ctx context.Context, id string) error {
	return l.items.DeleteByID(ctx, id)
}

// customList is a named list with embedded items.
type customList struct {
	lists lists.Repository
	name  string
}

func (l customList) listItems(ctx context.Context) ([]models.Item, error) {
	list, err := l.lists.FindByName(ctx, l.name)
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

// addItem appends and returns the stored item. The update returns the list
// as written by this statement, so the new item is its last element.
func (l customList) addItem(ctx context.Context, name string) (*models.Item, error) {
	list, err := l.lists.AppendItem(ctx, l.name, models.Item{Name: name})
	if err != nil {
		return nil, err
	}
	if len(list.Items) == 0 {
		return nil, common.ErrorInternal
	}
	item := list.Items[len(list.Items)-1]
	return &item, nil
}

func (l customList) deleteItem(ctx context.Context, id string) error {
	_, err := l.lists.RemoveItem(ctx, l.name, id)
	return err
}
