package calchistory

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/msavelyev/notedesk/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestAdd_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+calc_history\s*\(expression,\s*result,\s*ts\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id\s*$`

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id"}).AddRow("c-1")
	mock.ExpectQuery(q).
		WithArgs("sqrt(16)", 4.0, ts).
		WillReturnRows(rows)

	e := &models.CalcEntry{Expression: "sqrt(16)", Result: 4.0, Timestamp: ts}
	got, err := repo.Add(context.Background(), e)
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if got.ID != "c-1" {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestAdd_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+calc_history`
	mock.ExpectQuery(q).WillReturnError(errors.New("db down"))

	_, err := repo.Add(context.Background(), &models.CalcEntry{Expression: "1+1", Result: 2})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*expression,\s*result,\s*ts\s+FROM\s+calc_history\s*$`

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "expression", "result", "ts"}).
		AddRow("c-1", "sqrt(16)", 4.0, ts).
		AddRow("c-2", "1/4", 0.25, ts)
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Expression != "sqrt(16)" || got[0].Result != 4.0 {
		t.Fatalf("unexpected entry: %+v", got[0])
	}
}
