package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/dbx"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

const selectProjects = `SELECT p.id, p.owner_id, u.username, p.title, p.description, p.tech_stack,
       p.demo_link, p.source_code, p.image, p.created_at, p.updated_at
FROM projects p JOIN users u ON u.id = p.owner_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(&p.ID, &p.OwnerID, &p.OwnerUsername, &p.Title, &p.Description, &p.TechStack,
		&p.DemoLink, &p.SourceCode, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	query :=
		`INSERT INTO projects (owner_id, title, description, tech_stack, demo_link, source_code, image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.OwnerID, p.Title, p.Description, p.TechStack, p.DemoLink, p.SourceCode, p.Image).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, selectProjects+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}

func (r *PostgresRepository) List(ctx context.Context, f ListFilter) ([]models.Project, error) {
	var (
		conds []string
		args  []any
	)
	if f.OwnerID != 0 {
		args = append(args, f.OwnerID)
		conds = append(conds, fmt.Sprintf("p.owner_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", n, n))
	}
	if f.Tech != "" {
		args = append(args, likePattern(f.Tech))
		conds = append(conds, fmt.Sprintf("p.tech_stack ILIKE $%d", len(args)))
	}

	query := selectProjects
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Project) (*models.Project, error) {
	query :=
		`UPDATE projects
		 SET title = $2, description = $3, tech_stack = $4, demo_link = $5, source_code = $6,
		     image = $7, updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Description, p.TechStack, p.DemoLink, p.SourceCode, p.Image)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	} else if n == 0 {
		return nil, common.ErrorNotFound
	}
	return r.Get(ctx, p.ID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("db error: %w", err)
	} else if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Stats(ctx context.Context) (*models.ProjectStats, error) {
	query :=
		`SELECT u.username, count(*)
		 FROM projects p JOIN users u ON u.id = p.owner_id
		 GROUP BY u.username
		 ORDER BY count(*) DESC, u.username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	s := &models.ProjectStats{ByOwner: []models.OwnerCount{}}
	for rows.Next() {
		var oc models.OwnerCount
		if err := rows.Scan(&oc.OwnerUsername, &oc.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.Total += oc.Count
		s.ByOwner = append(s.ByOwner, oc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
