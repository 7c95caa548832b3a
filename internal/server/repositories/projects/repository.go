// Package projects declares the portfolio project repository and its
// PostgreSQL and in-memory implementations.
package projects

import (
	"context"

	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

// ListFilter narrows List. Search matches title and description, Tech the
// tech stack, both case-insensitively. OwnerID zero means any owner.
type ListFilter struct {
	Search  string
	Tech    string
	OwnerID int64
}

type Repository interface {
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	// List returns projects newest first.
	List(ctx context.Context, f ListFilter) ([]models.Project, error)
	Update(ctx context.Context, p *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
	DeleteByOwner(ctx context.Context, ownerID int64) error
	Stats(ctx context.Context) (*models.ProjectStats, error)
}
