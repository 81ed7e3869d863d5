package lists

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/dbx"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/google/uuid"
)

// newID is a seam for deterministic IDs in tests.
var newID = uuid.NewString

// PostgresRepository keeps lists in a table with a unique name column and a
// JSONB items array.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanList(row scanner) (*models.List, error) {
	var (
		list  models.List
		items []byte
	)
	if err := row.Scan(&list.ID, &list.Name, &items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &list.Items); err != nil {
		return nil, fmt.Errorf("decode items of list %q: %w", list.Name, err)
	}
	if list.Items == nil {
		list.Items = []models.Item{}
	}
	return &list, nil
}

// one runs a single-row statement and maps no rows to notFound.
func (r *PostgresRepository) one(ctx context.Context, notFound error, query string, args ...any) (*models.List, error) {
	list, err := scanList(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return list, nil
}

// FindByName returns the list whose name matches exactly, or
// common.ErrorNotFound.
func (r *PostgresRepository) FindByName(ctx context.Context, name string) (*models.List, error) {
	query := `SELECT id, name, items FROM lists WHERE name = $1`
	return r.one(ctx, common.ErrorNotFound, query, name)
}

// Create stores a new list with fresh IDs for the list and every item. If a
// list with that name already exists nothing is written and
// common.ErrorConflict is returned.
func (r *PostgresRepository) Create(ctx context.Context, name string, items []models.Item) (*models.List, error) {
	list := &models.List{ID: newID(), Name: name, Items: make([]models.Item, len(items))}
	for i, it := range items {
		list.Items[i] = models.Item{ID: newID(), Name: it.Name}
	}

	payload, err := json.Marshal(list.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}

	query := `
		INSERT INTO lists (id, name, items)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, list.ID, list.Name, string(payload)).Scan(&list.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return list, nil
}

// AppendItem adds item at the end of the named list in one UPDATE and
// returns the list as stored afterwards. An empty item ID is replaced with a
// fresh one.
func (r *PostgresRepository) AppendItem(ctx context.Context, name string, item models.Item) (*models.List, error) {
	if item.ID == "" {
		item.ID = newID()
	}

	query := `
		UPDATE lists
		SET items = items || jsonb_build_array(jsonb_build_object('id', $2::text, 'name', $3::text))
		WHERE name = $1
		RETURNING id, name, items
	`
	return r.one(ctx, common.ErrorNotFound, query, name, item.ID, item.Name)
}

// RemoveItem pulls every embedded item with itemID out of the named list.
// Removing an absent item is not an error; a missing list is.
func (r *PostgresRepository) RemoveItem(ctx context.Context, name string, itemID string) (*models.List, error) {
	query := `
		UPDATE lists
		SET items = COALESCE(
			(SELECT jsonb_agg(e ORDER BY o)
			 FROM jsonb_array_elements(lists.items) WITH ORDINALITY AS t(e, o)
			 WHERE e->>'id' <> $2),
			'[]'::jsonb)
		WHERE name = $1
		RETURNING id, name, items
	`
	return r.one(ctx, common.ErrorNotFound, query, name, itemID)
}

// ListAll returns every custom list ordered by name.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.List, error) {
	query := `SELECT id, name, items FROM lists ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	defer rows.Close()

	result := make([]models.List, 0)
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
		}
		result = append(result, *list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return result, nil
}
