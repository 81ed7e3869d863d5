package items

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/dbx"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/google/uuid"
)

// newID is a seam for deterministic IDs in tests.
var newID = uuid.NewString

var seedLockKey = dbx.LockKey("items.seed")

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListAll returns every item in insertion order.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.Item, error) {
	query := `SELECT id, name FROM items ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	defer rows.Close()

	result := make([]models.Item, 0)
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return result, nil
}

// InsertMany inserts all items with one statement, so either every row is
// stored or none is. The returned items carry their new IDs.
func (r *PostgresRepository) InsertMany(ctx context.Context, items []models.Item) ([]models.Item, error) {
	if len(items) == 0 {
		return []models.Item{}, nil
	}

	inserted := make([]models.Item, len(items))
	values := make([]string, len(items))
	args := make([]any, 0, 2*len(items))
	for i, it := range items {
		inserted[i] = models.Item{ID: newID(), Name: it.Name}
		values[i] = fmt.Sprintf("($%d, $%d)", 2*i+1, 2*i+2)
		args = append(args, inserted[i].ID, inserted[i].Name)
	}

	query := `INSERT INTO items (id, name) VALUES ` + strings.Join(values, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return inserted, nil
}

// InsertOne appends a single item.
func (r *PostgresRepository) InsertOne(ctx context.Context, name string) (*models.Item, error) {
	query := `INSERT INTO items (id, name) VALUES ($1, $2)`

	item := &models.Item{ID: newID(), Name: name}
	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Name); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return item, nil
}

// DeleteByID removes an item. It returns common.ErrorNotFound when no row
// has that id.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM items WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %w", common.ErrPersistence, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// IsEmpty reports whether the collection has no rows.
func (r *PostgresRepository) IsEmpty(ctx context.Context) (bool, error) {
	query := `SELECT NOT EXISTS (SELECT 1 FROM items)`

	var empty bool
	if err := r.db.QueryRowContext(ctx, query).Scan(&empty); err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return empty, nil
}

// LockSeed takes the seeding advisory lock for the rest of the transaction.
// Under READ COMMITTED each later statement sees rows committed by the
// previous lock holder.
func (r *PostgresRepository) LockSeed(ctx context.Context) error {
	if err := dbx.AdvisoryXactLock(ctx, r.db, seedLockKey); err != nil {
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
	return nil
}
