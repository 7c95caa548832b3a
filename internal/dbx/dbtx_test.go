package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var dbName = strings.NewReplacer("/", "_", " ", "_")

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+dbName.Replace(t.Name())+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE refresh_tokens (token TEXT PRIMARY KEY, user_id INTEGER NOT NULL)`)
	require.NoError(t, err)
	return db
}

func tokenCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM refresh_tokens`).Scan(&n))
	return n
}

// rotate replaces old with next the way the auth service does.
func rotate(ctx context.Context, tx DBTX, old, next string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = ?`, old); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO refresh_tokens(token, user_id) VALUES (?, 1)`, next)
	return err
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		db := openDB(t)
		_, err := db.Exec(`INSERT INTO refresh_tokens VALUES ('a', 1)`)
		require.NoError(t, err)

		err = WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
			return rotate(ctx, tx, "a", "b")
		})
		require.NoError(t, err)

		var token string
		require.NoError(t, db.QueryRow(`SELECT token FROM refresh_tokens`).Scan(&token))
		assert.Equal(t, "b", token)
	})

	t.Run("error rolls back", func(t *testing.T) {
		db := openDB(t)
		_, err := db.Exec(`INSERT INTO refresh_tokens VALUES ('a', 1), ('b', 1)`)
		require.NoError(t, err)

		// inserting "b" again violates the primary key after "a" is gone
		err = WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
			return rotate(ctx, tx, "a", "b")
		})
		require.Error(t, err)
		assert.Equal(t, 2, tokenCount(t, db))
	})

	t.Run("panic rolls back", func(t *testing.T) {
		db := openDB(t)

		assert.Panics(t, func() {
			_ = WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
				_, err := tx.ExecContext(ctx, `INSERT INTO refresh_tokens VALUES ('x', 1)`)
				require.NoError(t, err)
				panic("boom")
			})
		})
		assert.Equal(t, 0, tokenCount(t, db))
	})

	t.Run("begin fails on closed db", func(t *testing.T) {
		db := openDB(t)
		require.NoError(t, db.Close())

		called := false
		err := WithTx(ctx, db, nil, func(context.Context, DBTX) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.False(t, called)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	assert.True(t, IsUniqueViolation(dup, ""))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert user: %w", dup), "users_email_key"))
	assert.False(t, IsUniqueViolation(dup, "users_username_key"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
}
