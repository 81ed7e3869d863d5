// Package defaults supplies the starter items placed in the Today list on
// first use and copied into every newly created custom list.
package defaults

import "github.com/dmitrijs2005/todolist/internal/server/models"

var names = [...]string{
	"Welcome to your todolist!",
	"Hit the + button to add a new item.",
	"<-- Hit this to delete an item.",
}

// Items returns a fresh slice of the starter items on every call. IDs are
// left empty; stores assign them on insert.
func Items() []models.Item {
	items := make([]models.Item, len(names))
	for i, n := range names {
		items[i] = models.Item{Name: n}
	}
	return items
}
