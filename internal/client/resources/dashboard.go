package resources

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
)

type AdminDashboard struct {
	Users []models.User
	Stats *models.AdminStats
}

// Dashboard loads the user list and the statistics in parallel. The first
// failure cancels the other request.
func Dashboard(ctx context.Context, users *Users) (*AdminDashboard, error) {
	var d AdminDashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := users.List(ctx, nil)
		d.Users = list
		return err
	})
	g.Go(func() error {
		stats, err := users.Statistics(ctx)
		d.Stats = stats
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

type Overview struct {
	Projects []models.Project
	Posts    []models.Post
}

// MyOverview loads the caller's projects and posts in parallel.
func MyOverview(ctx context.Context, projects *Projects, posts *Posts) (*Overview, error) {
	var o Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := projects.ListMine(ctx)
		o.Projects = list
		return err
	})
	g.Go(func() error {
		list, err := posts.ListMine(ctx)
		o.Posts = list
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &o, nil
}
