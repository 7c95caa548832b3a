package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var userRowColumns = []string{"id", "username", "email", "password_hash", "first_name", "last_name", "bio", "skills",
	"profile_photo", "linkedin_url", "github_url", "personal_website", "role", "is_active", "date_joined", "last_login"}

func userRow(rows *sqlmock.Rows, id int64, username string, lastLogin any) *sqlmock.Rows {
	return rows.AddRow(id, username, username+"@example.com", []byte("hash"), "First", "Last", "bio", "Go, SQL",
		"", "", "", "", "member", true, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), lastLogin)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(.*\)\s*VALUES\s*\(\$1,.*\$13\)\s*RETURNING\s+id,\s*date_joined$`
	joined := time.Now()
	mock.ExpectQuery(q).
		WithArgs("alice", "alice@example.com", []byte("hash"), "Alice", "", "", "", "", "", "", "", "member", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date_joined"}).AddRow(int64(42), joined))

	u := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: []byte("hash"), FirstName: "Alice", Role: "member", IsActive: true}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || !got.DateJoined.Equal(joined) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{Username: "a", Email: "a@example.com"})
	if !errors.Is(err, ErrEmailTaken) || !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), &models.User{Username: "a", Email: "a@example.com"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	login := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	q := `(?s)^SELECT\s+id,\s*username.*FROM\s+users\s+WHERE\s+lower\(email\)\s*=\s*lower\(\$1\)$`
	mock.ExpectQuery(q).
		WithArgs("Alice@Example.com").
		WillReturnRows(userRow(sqlmock.NewRows(userRowColumns), 7, "alice", login))

	got, err := repo.GetByEmail(context.Background(), "Alice@Example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != 7 || got.Username != "alice" || got.LastLogin == nil || !got.LastLogin.Equal(login) {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestList_Filters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)FROM\s+users\s+WHERE\s+is_active\s+AND\s+\(first_name\s+ILIKE\s+\$1\s+OR\s+last_name\s+ILIKE\s+\$1\s+OR\s+bio\s+ILIKE\s+\$1\)\s+AND\s+skills\s+ILIKE\s+\$2\s+ORDER\s+BY\s+date_joined\s+DESC`
	rows := sqlmock.NewRows(userRowColumns)
	userRow(rows, 2, "bob", nil)
	userRow(rows, 1, "ann", nil)
	mock.ExpectQuery(q).
		WithArgs(`%50\%%`, "%go%").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), ListFilter{ActiveOnly: true, Search: "50%", Skill: "go"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Username != "bob" || got[1].LastLogin != nil {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestList_NoFilters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+users\s+ORDER\s+BY`).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	got, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil list, got %#v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+username`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), &models.User{ID: 5})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+username`).
		WithArgs(int64(5), "ann", "ann@example.com", "Ann", "", "", "", "", "", "", "", "viewer", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{ID: 5, Username: "ann", Email: "ann@example.com", FirstName: "Ann", Role: "viewer"}
	if _, err := repo.Update(context.Background(), u); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetPasswordAndDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+password_hash`).
		WithArgs(int64(3), []byte("new")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+users`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SetPassword(context.Background(), 3, []byte("new")); err != nil {
		t.Fatalf("SetPassword error: %v", err)
	}
	if err := repo.Delete(context.Background(), 3); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want not found on delete, got %v", err)
	}
}

func TestStats(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+count\(\*\).*FROM\s+users$`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "active", "admins", "members", "viewers"}).AddRow(5, 4, 1, 3, 1))

	got, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	want := models.UserStats{Total: 5, Active: 4, Admins: 1, Members: 3, Viewers: 1}
	if *got != want {
		t.Fatalf("got %+v, want %+v", *got, want)
	}
}
