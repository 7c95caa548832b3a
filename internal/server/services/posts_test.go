package services

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

func titles(ps []models.Post) []string {
	out := []string{}
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func TestPostCreate_DefaultsToPublished(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	bob := e.addUser(t, "bob", common.RoleMember)

	p, err := e.posts.Create(ctx, bob, PostInput{Title: strp("Hello"), Content: strp("World"), Tags: strp("go, web")})
	require.NoError(t, err)
	assert.True(t, p.IsPublished)
	assert.Equal(t, "bob", p.AuthorUsername)

	draft, err := e.posts.Create(ctx, bob, PostInput{Title: strp("Draft"), Content: strp("WIP"), IsPublished: boolp(false)})
	require.NoError(t, err)
	assert.False(t, draft.IsPublished)

	_, err = e.posts.Create(ctx, bob, PostInput{Title: strp("No body"), Content: strp("   ")})
	var fe common.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "content")

	viewer := e.addUser(t, "val", common.RoleViewer)
	_, err = e.posts.Create(ctx, viewer, PostInput{Title: strp("x"), Content: strp("y")})
	assert.ErrorIs(t, err, common.ErrorForbidden)
}

func TestPostVisibility(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	bob := e.addUser(t, "bob", common.RoleMember)
	eve := e.addUser(t, "eve", common.RoleMember)
	admin := e.admin(t)

	pub, err := e.posts.Create(ctx, bob, PostInput{Title: strp("Public"), Content: strp("a")})
	require.NoError(t, err)
	draft, err := e.posts.Create(ctx, bob, PostInput{Title: strp("Bob draft"), Content: strp("b"), IsPublished: boolp(false)})
	require.NoError(t, err)
	_, err = e.posts.Create(ctx, eve, PostInput{Title: strp("Eve draft"), Content: strp("c"), IsPublished: boolp(false)})
	require.NoError(t, err)

	tests := []struct {
		name   string
		viewer *models.User
		want   []string
	}{
		{"anonymous", nil, []string{"Public"}},
		{"author", bob, []string{"Bob draft", "Public"}},
		{"other member", eve, []string{"Eve draft", "Public"}},
		{"admin", admin, []string{"Eve draft", "Bob draft", "Public"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.posts.List(ctx, tt.viewer, PostQuery{})
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, titles(got)); diff != "" {
				t.Fatalf("visible posts mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, err = e.posts.Get(ctx, nil, draft.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = e.posts.Get(ctx, eve, draft.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = e.posts.Get(ctx, admin, draft.ID)
	assert.NoError(t, err)
	_, err = e.posts.Get(ctx, nil, pub.ID)
	assert.NoError(t, err)

	mine, err := e.posts.Mine(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestPostUpdateAndToggle(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	bob := e.addUser(t, "bob", common.RoleMember)
	eve := e.addUser(t, "eve", common.RoleMember)

	p, err := e.posts.Create(ctx, bob, PostInput{Title: strp("Hello"), Content: strp("World"), Tags: strp("go")})
	require.NoError(t, err)

	got, err := e.posts.Update(ctx, bob, p.ID, PostInput{
		Content:    strp("Updated"),
		CoverImage: &Upload{Filename: "c.png", Data: pngData},
		Partial:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "Updated", got.Content)
	assert.Equal(t, "go", got.Tags)
	assert.NotEmpty(t, got.CoverImage)

	_, err = e.posts.Update(ctx, eve, p.ID, PostInput{Title: strp("Mine"), Partial: true})
	assert.ErrorIs(t, err, common.ErrorForbidden)

	got, err = e.posts.TogglePublish(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	// now a draft, so other members cannot see it at all
	_, err = e.posts.TogglePublish(ctx, eve, p.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	got, err = e.posts.TogglePublish(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)

	require.NoError(t, e.posts.Delete(ctx, bob, p.ID))
	_, err = e.store.Get(ctx, got.CoverImage)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostFeaturedAndTags(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	bob := e.addUser(t, "bob", common.RoleMember)

	for _, tags := range []string{"go, web", "Web", "go", "", "sql", "ops", "go"} {
		_, err := e.posts.Create(ctx, bob, PostInput{Title: strp("t"), Content: strp("c"), Tags: strp(tags)})
		require.NoError(t, err)
	}
	_, err := e.posts.Create(ctx, bob, PostInput{Title: strp("d"), Content: strp("c"), Tags: strp("secret"), IsPublished: boolp(false)})
	require.NoError(t, err)

	featured, err := e.posts.Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, FeaturedLimit)
	for _, p := range featured {
		assert.True(t, p.IsPublished)
	}

	tags, err := e.posts.Tags(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"Web", "go", "ops", "sql", "web"}, tags); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestPostUpdate_NoChangesKeepsRecord(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	bob := e.addUser(t, "bob", common.RoleMember)

	p, err := e.posts.Create(ctx, bob, PostInput{Title: strp("Hello"), Content: strp("World")})
	require.NoError(t, err)
	before, err := e.posts.Get(ctx, bob, p.ID)
	require.NoError(t, err)

	_, err = e.posts.Update(ctx, bob, p.ID, PostInput{Partial: true})
	require.NoError(t, err)

	after, err := e.posts.Get(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
