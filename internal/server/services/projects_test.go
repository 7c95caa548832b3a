package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
)

func TestProjectCreate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	member := e.addUser(t, "bob", common.RoleMember)
	viewer := e.addUser(t, "val", common.RoleViewer)

	p, err := e.projects.Create(ctx, member, ProjectInput{
		Title:       strp(" Portfolio "),
		Description: strp("My site"),
		TechStack:   strp("Go, React"),
		DemoLink:    strp("https://bob.dev"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", p.Title)
	assert.Equal(t, member.ID, p.OwnerID)
	assert.Equal(t, "bob", p.OwnerUsername)

	_, err = e.projects.Create(ctx, viewer, ProjectInput{Title: strp("x"), Description: strp("y")})
	assert.ErrorIs(t, err, common.ErrorForbidden)

	_, err = e.projects.Create(ctx, member, ProjectInput{DemoLink: strp("not a url")})
	var fe common.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.ElementsMatch(t, []string{"title", "description", "demo_link"}, keys(fe))
}

func keys(fe common.FieldErrors) []string {
	out := []string{}
	for k := range fe {
		out = append(out, k)
	}
	return out
}

func TestProjectUpdate_PartialAndFull(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "bob", common.RoleMember)
	other := e.addUser(t, "eve", common.RoleMember)
	admin := e.admin(t)

	p, err := e.projects.Create(ctx, owner, ProjectInput{
		Title:       strp("Portfolio"),
		Description: strp("My site"),
		TechStack:   strp("Go"),
	})
	require.NoError(t, err)

	got, err := e.projects.Update(ctx, owner, p.ID, ProjectInput{Title: strp("Renamed"), Partial: true})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "Go", got.TechStack)

	// a full update clears omitted optional fields
	got, err = e.projects.Update(ctx, admin, p.ID, ProjectInput{Title: strp("Full"), Description: strp("Again")})
	require.NoError(t, err)
	assert.Equal(t, "", got.TechStack)
	assert.Equal(t, owner.ID, got.OwnerID)

	_, err = e.projects.Update(ctx, other, p.ID, ProjectInput{Title: strp("Mine"), Partial: true})
	assert.ErrorIs(t, err, common.ErrorForbidden)

	_, err = e.projects.Update(ctx, owner, 999, ProjectInput{Partial: true})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestProjectDelete(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "bob", common.RoleMember)
	other := e.addUser(t, "eve", common.RoleMember)

	p, err := e.projects.Create(ctx, owner, ProjectInput{
		Title:       strp("Portfolio"),
		Description: strp("My site"),
		Image:       &Upload{Filename: "shot.png", Data: pngData},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, e.projects.Delete(ctx, other, p.ID), common.ErrorForbidden)
	require.NoError(t, e.projects.Delete(ctx, owner, p.ID))

	_, err = e.projects.Get(ctx, p.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = e.store.Get(ctx, p.Image)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestProjectListings(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	bob := e.addUser(t, "bob", common.RoleMember)
	eve := e.addUser(t, "eve", common.RoleMember)

	for i := 0; i < 8; i++ {
		owner := bob
		if i%2 == 1 {
			owner = eve
		}
		_, err := e.projects.Create(ctx, owner, ProjectInput{
			Title:       strp(fmt.Sprintf("Project %d", i)),
			Description: strp("desc"),
			TechStack:   strp([]string{"Go, React", "python", "Go"}[i%3]),
		})
		require.NoError(t, err)
	}

	featured, err := e.projects.Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, FeaturedLimit)

	mine, err := e.projects.Mine(ctx, eve)
	require.NoError(t, err)
	assert.Len(t, mine, 4)

	tech, err := e.projects.Technologies(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"Go", "React", "python"}, tech); diff != "" {
		t.Fatalf("technologies mismatch (-want +got):\n%s", diff)
	}

	goProjects, err := e.projects.List(ctx, "", "go")
	require.NoError(t, err)
	assert.Len(t, goProjects, 5)
}

func TestProjectUpdate_NoChangesKeepsRecord(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := e.addUser(t, "bob", common.RoleMember)

	p, err := e.projects.Create(ctx, owner, ProjectInput{
		Title:       strp("Portfolio"),
		Description: strp("My site"),
		DemoLink:    strp("https://bob.dev"),
	})
	require.NoError(t, err)
	before, err := e.projects.Get(ctx, p.ID)
	require.NoError(t, err)

	for _, in := range []ProjectInput{
		{Partial: true},
		{Title: strp(" Portfolio "), Partial: true},
	} {
		_, err := e.projects.Update(ctx, owner, p.ID, in)
		require.NoError(t, err)

		after, err := e.projects.Get(ctx, p.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(before, after); diff != "" {
			t.Fatalf("record changed (-before +after):\n%s", diff)
		}
	}
}
