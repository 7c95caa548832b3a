package services

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

func seedContent(t *testing.T, e *testEnv) (admin, bob *models.User) {
	t.Helper()
	ctx := context.Background()
	admin = e.admin(t)
	bob = e.addUser(t, "bob", common.RoleMember)
	val := e.addUser(t, "val", common.RoleViewer)
	val.IsActive = false
	_, err := e.repos.Users().Update(ctx, val)
	require.NoError(t, err)

	_, err = e.projects.Create(ctx, bob, ProjectInput{Title: strp("Go API"), Description: strp("REST in Go")})
	require.NoError(t, err)
	_, err = e.projects.Create(ctx, bob, ProjectInput{Title: strp("Site"), Description: strp("static")})
	require.NoError(t, err)
	_, err = e.projects.Create(ctx, admin, ProjectInput{Title: strp("Admin tool"), Description: strp("internal")})
	require.NoError(t, err)

	_, err = e.posts.Create(ctx, bob, PostInput{Title: strp("Learning Go"), Content: strp("notes")})
	require.NoError(t, err)
	_, err = e.posts.Create(ctx, bob, PostInput{Title: strp("Go draft"), Content: strp("wip"), IsPublished: boolp(false)})
	require.NoError(t, err)
	return admin, bob
}

func TestStatistics(t *testing.T) {
	e := newTestEnv(t)
	seedContent(t, e)

	got, err := e.stats.Statistics(context.Background())
	require.NoError(t, err)

	want := &models.Statistics{
		Users: models.UserStats{Total: 3, Active: 2, Admins: 1, Members: 1, Viewers: 1},
		Projects: models.ProjectStats{Total: 3, ByOwner: []models.OwnerCount{
			{OwnerUsername: "bob", Count: 2},
			{OwnerUsername: "root", Count: 1},
		}},
		Posts: models.PostStats{Total: 2, Published: 1, Draft: 1, ByAuthor: []models.AuthorCount{
			{AuthorUsername: "bob", Count: 2},
		}},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("statistics mismatch (-want +got):\n%s", diff)
	}

	site, err := e.stats.Site(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &SiteStats{TotalUsers: 2, TotalProjects: 3, TotalPosts: 1}, site)
}

func TestSearch(t *testing.T) {
	e := newTestEnv(t)
	_, bob := seedContent(t, e)
	ctx := context.Background()

	res, err := Search(ctx, e.projects, e.posts, nil, " go ")
	require.NoError(t, err)
	assert.Equal(t, "go", res.Query)
	assert.Len(t, res.Projects, 1)
	require.Len(t, res.Posts, 1)
	assert.Equal(t, "Learning Go", res.Posts[0].Title)

	res, err = Search(ctx, e.projects, e.posts, bob, "go")
	require.NoError(t, err)
	assert.Len(t, res.Posts, 2)

	res, err = Search(ctx, e.projects, e.posts, nil, "")
	require.NoError(t, err)
	assert.Empty(t, res.Projects)
	assert.NotNil(t, res.Posts)
}
