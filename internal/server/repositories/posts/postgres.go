package posts

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

const selectPosts = `SELECT p.id, p.author_id, u.username, p.title, p.content, p.cover_image, p.tags,
       p.is_published, p.created_at, p.updated_at
FROM posts p JOIN users u ON u.id = p.author_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorUsername, &p.Title, &p.Content, &p.CoverImage, &p.Tags,
		&p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	query :=
		`INSERT INTO posts (author_id, title, content, cover_image, tags, is_published)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.AuthorID, p.Title, p.Content, p.CoverImage, p.Tags, p.IsPublished).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, selectPosts+` WHERE p.id = $1`, id))
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

func (r *PostgresRepository) List(ctx context.Context, f ListFilter) ([]models.Post, error) {
	var (
		conds []string
		args  []any
	)
	if f.AuthorID != 0 {
		args = append(args, f.AuthorID)
		conds = append(conds, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if f.Published != nil {
		args = append(args, *f.Published)
		conds = append(conds, fmt.Sprintf("p.is_published = $%d", len(args)))
	}
	if f.PublicOnly {
		args = append(args, f.ViewerID)
		conds = append(conds, fmt.Sprintf("(p.is_published OR p.author_id = $%d)", len(args)))
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", n, n))
	}
	if f.Tag != "" {
		args = append(args, likePattern(f.Tag))
		conds = append(conds, fmt.Sprintf("p.tags ILIKE $%d", len(args)))
	}

	query := selectPosts
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
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

func (r *PostgresRepository) Update(ctx context.Context, p *models.Post) (*models.Post, error) {
	query :=
		`UPDATE posts
		 SET title = $2, content = $3, cover_image = $4, tags = $5, is_published = $6, updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Content, p.CoverImage, p.Tags, p.IsPublished)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
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

func (r *PostgresRepository) DeleteByAuthor(ctx context.Context, authorID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE author_id = $1`, authorID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Stats(ctx context.Context) (*models.PostStats, error) {
	s := &models.PostStats{ByAuthor: []models.AuthorCount{}}

	err := r.db.QueryRowContext(ctx,
		`SELECT count(*), count(*) FILTER (WHERE is_published) FROM posts`).Scan(&s.Total, &s.Published)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.Draft = s.Total - s.Published

	query :=
		`SELECT u.username, count(*)
		 FROM posts p JOIN users u ON u.id = p.author_id
		 GROUP BY u.username
		 ORDER BY count(*) DESC, u.username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ac models.AuthorCount
		if err := rows.Scan(&ac.AuthorUsername, &ac.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.ByAuthor = append(s.ByAuthor, ac)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
