package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/todolist/internal/api"
	"github.com/dmitrijs2005/todolist/internal/client/client"
	"github.com/dmitrijs2005/todolist/internal/client/config"
)

// TodoClient is the server API used by the commands.
type TodoClient interface {
	Ping(ctx context.Context) error
	GetList(ctx context.Context, name string) (*api.ListResponse, error)
	AddItem(ctx context.Context, list, item string) (*api.Item, error)
	DeleteItem(ctx context.Context, list, id string) error
	ListLists(ctx context.Context) ([]string, error)
	Backup(ctx context.Context) (string, error)
	Close() error
}

// newClient is a seam for tests.
var newClient = func(cfg *config.Config) (TodoClient, error) {
	return client.NewTodoClient(cfg.ServerEndpointAddr, cfg.RequestTimeout)
}

type App struct {
	config  *config.Config
	client  TodoClient
	out     io.Writer
	current string
}

func NewApp(c *config.Config) *App {
	return &App{config: c, out: os.Stdout}
}

func (a *App) connect() error {
	if a.client != nil {
		return nil
	}
	c, err := newClient(a.config)
	if err != nil {
		return fmt.Errorf("connect %s: %w", a.config.ServerEndpointAddr, err)
	}
	a.client = c
	return nil
}

func (a *App) close() error {
	if a.client == nil {
		return nil
	}
	err := a.client.Close()
	a.client = nil
	return err
}

// Show prints the list named name; an empty name shows Today.
func (a *App) Show(ctx context.Context, name string) error {
	list, err := a.client.GetList(ctx, name)
	if err != nil {
		return err
	}
	a.current = list.Title
	printList(a.out, list)
	return nil
}

// Add resolves list by name, which creates it if needed, and appends item
// under the resolved title.
func (a *App) Add(ctx context.Context, list, item string) error {
	resolved, err := a.client.GetList(ctx, list)
	if err != nil {
		return err
	}

	added, err := a.client.AddItem(ctx, resolved.Title, item)
	if err != nil {
		return err
	}
	a.current = resolved.Title
	fmt.Fprintf(a.out, "Added %q to %s (id %s)\n", added.Name, resolved.Title, added.ID)
	return nil
}

// Delete removes item id from list. An item that is already gone is not
// an error.
func (a *App) Delete(ctx context.Context, list, id string) error {
	resolved, err := a.client.GetList(ctx, list)
	if err != nil {
		return err
	}

	err = a.client.DeleteItem(ctx, resolved.Title, id)
	switch {
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintf(a.out, "No item %s in %s\n", id, resolved.Title)
		return nil
	case err != nil:
		return err
	}
	a.current = resolved.Title
	fmt.Fprintf(a.out, "Deleted %s from %s\n", id, resolved.Title)
	return nil
}

func (a *App) Lists(ctx context.Context) error {
	names, err := a.client.ListLists(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(a.out, "No custom lists yet")
		return nil
	}
	for _, n := range names {
		fmt.Fprintln(a.out, n)
	}
	return nil
}

func (a *App) Backup(ctx context.Context) error {
	key, err := a.client.Backup(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Backup stored at %s\n", key)
	return nil
}

func (a *App) prompt() string {
	if a.current == "" {
		return "todo> "
	}
	return fmt.Sprintf("todo (%s)> ", a.current)
}

func printList(w io.Writer, list *api.ListResponse) {
	fmt.Fprintln(w, list.Title)
	fmt.Fprintln(w, strings.Repeat("-", max(len(list.Title), 1)))
	if len(list.Items) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, it := range list.Items {
		fmt.Fprintf(tw, "%d.\t%s\t%s\n", i+1, it.Name, it.ID)
	}
	_ = tw.Flush()
}
