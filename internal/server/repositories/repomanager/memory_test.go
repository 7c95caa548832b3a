package repomanager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/projects"
)

func TestMemoryManager_JoinsUsernames(t *testing.T) {
	m := NewMemoryRepositoryManager()
	ctx := context.Background()

	u, err := m.Users().Create(ctx, &models.User{Username: "ann", Email: "ann@example.com", Role: "member", IsActive: true})
	require.NoError(t, err)

	p, err := m.Projects().Create(ctx, &models.Project{OwnerID: u.ID, Title: "A", Description: "B"})
	require.NoError(t, err)
	assert.Equal(t, "ann", p.OwnerUsername)

	post, err := m.Posts().Create(ctx, &models.Post{AuthorID: u.ID, Title: "T", IsPublished: true})
	require.NoError(t, err)
	assert.Equal(t, "ann", post.AuthorUsername)

	s, err := m.Projects().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ann", s.ByOwner[0].OwnerUsername)
}

func TestMemoryManager_WithTxPassesError(t *testing.T) {
	m := NewMemoryRepositoryManager()
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.WithTx(ctx, func(ctx context.Context, r Repositories) error {
		list, err := r.Projects().List(ctx, projects.ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, m.RunMigrations(ctx))
	assert.NoError(t, m.Ping(ctx))
	assert.NoError(t, m.Close())
}
