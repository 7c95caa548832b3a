package repomanager

import (
	"context"
	"sync"

	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/posts"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/projects"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/refreshtokens"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. WithTx only
// serialises callers; there is no rollback.
type MemoryRepositoryManager struct {
	txMu     sync.Mutex
	users    *users.MemoryRepository
	projects *projects.MemoryRepository
	posts    *posts.MemoryRepository
	tokens   *refreshtokens.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	u := users.NewMemoryRepository()
	username := func(ctx context.Context, id int64) string {
		user, err := u.GetByID(ctx, id)
		if err != nil {
			return ""
		}
		return user.Username
	}
	return &MemoryRepositoryManager{
		users:    u,
		projects: projects.NewMemoryRepository(username),
		posts:    posts.NewMemoryRepository(username),
		tokens:   refreshtokens.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository                 { return m.users }
func (m *MemoryRepositoryManager) Projects() projects.Repository           { return m.projects }
func (m *MemoryRepositoryManager) Posts() posts.Repository                 { return m.posts }
func (m *MemoryRepositoryManager) RefreshTokens() refreshtokens.Repository { return m.tokens }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m)
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
