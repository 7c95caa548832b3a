// Package repomanager groups the entity repositories behind one handle so
// services can run several of them in a single transaction.
package repomanager

import (
	"context"

	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/posts"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/projects"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/refreshtokens"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/users"
)

// Repositories vends one repository per entity.
type Repositories interface {
	Users() users.Repository
	Projects() projects.Repository
	Posts() posts.Repository
	RefreshTokens() refreshtokens.Repository
}

// RepositoryManager is the storage backend used by the services.
type RepositoryManager interface {
	Repositories

	// WithTx runs fn with repositories bound to one transaction. An error
	// from fn rolls the transaction back.
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
