package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AllanOcung/Group-BSE25-1/internal/dbx"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/migrations"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/posts"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/projects"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/refreshtokens"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/users"
)

// postgresRepos binds the PostgreSQL repositories to a *sql.DB or *sql.Tx.
type postgresRepos struct {
	db dbx.DBTX
}

func (r postgresRepos) Users() users.Repository { return users.NewPostgresRepository(r.db) }

func (r postgresRepos) Projects() projects.Repository { return projects.NewPostgresRepository(r.db) }

func (r postgresRepos) Posts() posts.Repository { return posts.NewPostgresRepository(r.db) }

func (r postgresRepos) RefreshTokens() refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(r.db)
}

// PostgresRepositoryManager vends PostgreSQL-backed repositories and owns
// the connection pool.
type PostgresRepositoryManager struct {
	postgresRepos
	db *sql.DB
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// OpenPostgres opens a pgx-backed pool for dsn and wraps it in a manager.
func OpenPostgres(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return NewPostgresRepositoryManager(db), nil
}

func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{postgresRepos: postgresRepos{db: db}, db: db}
}

func (m *PostgresRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, postgresRepos{db: tx})
	})
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
