// Package posts declares the blog post repository and its PostgreSQL and
// in-memory implementations.
package posts

import (
	"context"

	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

// ListFilter narrows List. Search matches title and content, Tag the tags
// field. Published nil means both drafts and published posts.
//
// PublicOnly hides drafts except those written by ViewerID.
type ListFilter struct {
	Search     string
	Tag        string
	AuthorID   int64
	Published  *bool
	PublicOnly bool
	ViewerID   int64
}

type Repository interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	// List returns posts newest first.
	List(ctx context.Context, f ListFilter) ([]models.Post, error)
	Update(ctx context.Context, p *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
	DeleteByAuthor(ctx context.Context, authorID int64) error
	Stats(ctx context.Context) (*models.PostStats, error)
}
