// Package models defines server-side data models persisted in the database.
package models

// Item is a single to-do entry. Items of the Today list are rows of the item
// collection; items of custom lists are values embedded in their List.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List is a user-named list owning an ordered sequence of embedded items.
type List struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// ResolvedList is what a caller renders: a title and the items under it.
type ResolvedList struct {
	Title string
	Items []Item
}
