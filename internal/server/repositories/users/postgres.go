package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/dbx"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, bio, skills,
       profile_photo, linkedin_url, github_url, personal_website, role, is_active,
       date_joined, last_login`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Bio, &u.Skills, &u.ProfilePhoto, &u.LinkedinURL, &u.GithubURL, &u.PersonalWebsite,
		&u.Role, &u.IsActive, &u.DateJoined, &lastLogin)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

func uniqueErr(err error) error {
	switch {
	case dbx.IsUniqueViolation(err, "users_email_key"):
		return ErrEmailTaken
	case dbx.IsUniqueViolation(err, "users_username_key"):
		return ErrUsernameTaken
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, email, password_hash, first_name, last_name, bio, skills,
		                    profile_photo, linkedin_url, github_url, personal_website, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, date_joined`

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Bio, user.Skills,
		user.ProfilePhoto, user.LinkedinURL, user.GithubURL, user.PersonalWebsite, user.Role, user.IsActive,
	).Scan(&user.ID, &user.DateJoined)
	if err != nil {
		return nil, uniqueErr(err)
	}
	return user, nil
}

func (r *PostgresRepository) get(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.get(ctx, "lower(email) = lower($1)", email)
}

// likePattern escapes LIKE metacharacters in s and wraps it in %.
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}

func (r *PostgresRepository) List(ctx context.Context, f ListFilter) ([]models.User, error) {
	var (
		conds []string
		args  []any
	)
	if f.ActiveOnly {
		conds = append(conds, "is_active")
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR bio ILIKE $%d)", n, n, n))
	}
	if f.Skill != "" {
		args = append(args, likePattern(f.Skill))
		conds = append(conds, fmt.Sprintf("skills ILIKE $%d", len(args)))
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY date_joined DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users
		 SET username = $2, email = $3, first_name = $4, last_name = $5, bio = $6, skills = $7,
		     profile_photo = $8, linkedin_url = $9, github_url = $10, personal_website = $11,
		     role = $12, is_active = $13
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, user.ID,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Skills,
		user.ProfilePhoto, user.LinkedinURL, user.GithubURL, user.PersonalWebsite,
		user.Role, user.IsActive)
	if err != nil {
		return nil, uniqueErr(err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) SetPassword(ctx context.Context, id int64, hash []byte) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) TouchLogin(ctx context.Context, id int64, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Stats(ctx context.Context) (*models.UserStats, error) {
	query :=
		`SELECT count(*),
		        count(*) FILTER (WHERE is_active),
		        count(*) FILTER (WHERE role = 'admin'),
		        count(*) FILTER (WHERE role = 'member'),
		        count(*) FILTER (WHERE role = 'viewer')
		 FROM users`

	s := &models.UserStats{}
	if err := r.db.QueryRowContext(ctx, query).Scan(&s.Total, &s.Active, &s.Admins, &s.Members, &s.Viewers); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
