package items

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/dbx"
	"github.com/dmitrijs2005/todolist/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func stubIDs(t *testing.T) {
	t.Helper()
	n := 0
	orig := newID
	newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() { newID = orig })
}

func TestListAll_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow("a", "milk").
		AddRow("b", "eggs")
	mock.ExpectQuery(`^SELECT id, name FROM items ORDER BY seq$`).WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "milk" || got[1].ID != "b" {
		t.Fatalf("unexpected items: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAll_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM items`).WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestListAll_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM items`).WillReturnError(errors.New("db down"))

	_, err := repo.ListAll(context.Background())
	if !errors.Is(err, common.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
	if !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestListAll_RowsErr(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow("a", "milk").
		AddRow("b", "eggs").
		RowError(1, errors.New("row-err"))
	mock.ExpectQuery(`SELECT id, name FROM items`).WillReturnRows(rows)

	_, err := repo.ListAll(context.Background())
	if !errors.Is(err, common.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
}

func TestInsertMany_SingleStatement(t *testing.T) {
	stubIDs(t)
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.QuoteMeta(`INSERT INTO items (id, name) VALUES ($1, $2), ($3, $4), ($5, $6)`)
	mock.ExpectExec(q).
		WithArgs("id-1", "one", "id-2", "two", "id-3", "three").
		WillReturnResult(sqlmock.NewResult(0, 3))

	got, err := repo.InsertMany(context.Background(), []models.Item{{Name: "one"}, {Name: "two"}, {Name: "three"}})
	if err != nil {
		t.Fatalf("InsertMany error: %v", err)
	}
	want := []models.Item{{ID: "id-1", Name: "one"}, {ID: "id-2", Name: "two"}, {ID: "id-3", Name: "three"}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: got %+v want %+v", i, got[i], want[i])
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertMany_EmptyIsNoop(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	got, err := repo.InsertMany(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("want empty result, got %v %v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no statements expected: %v", err)
	}
}

func TestInsertMany_DBError(t *testing.T) {
	stubIDs(t)
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO items`).WillReturnError(errors.New("disk full"))

	_, err := repo.InsertMany(context.Background(), []models.Item{{Name: "one"}})
	if !errors.Is(err, common.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
}

func TestInsertOne_Success(t *testing.T) {
	stubIDs(t)
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO items (id, name) VALUES ($1, $2)`)).
		WithArgs("id-1", "Eggs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.InsertOne(context.Background(), "Eggs")
	if err != nil {
		t.Fatalf("InsertOne error: %v", err)
	}
	if got.ID != "id-1" || got.Name != "Eggs" {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestDeleteByID(t *testing.T) {
	tests := []struct {
		name    string
		result  driver.Result
		execErr error
		wantErr error
	}{
		{name: "deleted", result: sqlmock.NewResult(0, 1)},
		{name: "absent", result: sqlmock.NewResult(0, 0), wantErr: common.ErrorNotFound},
		{name: "exec error", execErr: errors.New("db down"), wantErr: common.ErrPersistence},
		{name: "rows affected error", result: sqlmock.NewErrorResult(errors.New("rows-err")), wantErr: common.ErrPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			exp := mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM items WHERE id = $1`)).WithArgs("x")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.DeleteByID(context.Background(), "x")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.QuoteMeta(`SELECT NOT EXISTS (SELECT 1 FROM items)`)
	mock.ExpectQuery(q).WillReturnRows(sqlmock.NewRows([]string{"empty"}).AddRow(true))
	mock.ExpectQuery(q).WillReturnError(errors.New("db down"))

	empty, err := repo.IsEmpty(context.Background())
	if err != nil || !empty {
		t.Fatalf("want empty=true, got %v %v", empty, err)
	}

	_, err = repo.IsEmpty(context.Background())
	if !errors.Is(err, common.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
}

func TestLockSeed_UsesAdvisoryLock(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).
		WithArgs(dbx.LockKey("items.seed")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.LockSeed(context.Background()); err != nil {
		t.Fatalf("LockSeed error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
