// Package users declares the account repository and its PostgreSQL and
// in-memory implementations.
package users

import (
	"context"
	"fmt"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

// Uniqueness errors. Both match common.ErrorAlreadyExists.
var (
	ErrEmailTaken    = fmt.Errorf("email %w", common.ErrorAlreadyExists)
	ErrUsernameTaken = fmt.Errorf("username %w", common.ErrorAlreadyExists)
)

// ListFilter narrows List. Search matches first name, last name and bio
// case-insensitively; Skill matches the skills field.
type ListFilter struct {
	ActiveOnly bool
	Search     string
	Skill      string
}

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns users newest first.
	List(ctx context.Context, f ListFilter) ([]models.User, error)
	// Update writes every mutable profile column, role and is_active.
	Update(ctx context.Context, user *models.User) (*models.User, error)
	SetPassword(ctx context.Context, id int64, hash []byte) error
	TouchLogin(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.UserStats, error)
}
