package models

import (
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/todolist/internal/common"
)

// ListKind tells which storage shape backs a list.
type ListKind int

const (
	// DefaultList is the Today list, backed by the flat item collection.
	DefaultList ListKind = iota
	// CustomList is a named list with embedded items.
	CustomList
)

// ListRef identifies a list once, at the boundary, so the rest of the code
// dispatches on Kind instead of comparing names.
type ListRef struct {
	Kind ListKind
	Name string
}

// TodayRef refers to the default list.
func TodayRef() ListRef {
	return ListRef{Kind: DefaultList, Name: common.TodayListName}
}

// RefFromTitle builds a reference from a stored list title, as sent back by
// a client that already displays the list. The title is used verbatim.
func RefFromTitle(title string) ListRef {
	if title == common.TodayListName {
		return TodayRef()
	}
	return ListRef{Kind: CustomList, Name: title}
}

// RefFromRequest builds a reference from a user-typed list name. The name is
// normalized first, so "today" and "Today" both mean the default list.
func RefFromRequest(raw string) ListRef {
	return RefFromTitle(NormalizeListName(raw))
}

// IsToday reports whether r refers to the default list.
func (r ListRef) IsToday() bool {
	return r.Kind == DefaultList
}

func (r ListRef) String() string {
	return r.Name
}

// NormalizeListName upper-cases the first character of name and leaves the
// rest untouched. No trimming is done: "  x" stays "  x".
func NormalizeListName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// CloneItems returns a copy of items that shares no backing array.
func CloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
