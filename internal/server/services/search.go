package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

// SearchResult is the combined project and post search.
type SearchResult struct {
	Query    string
	Projects []models.Project
	Posts    []models.Post
}

// Search looks q up in projects and in the posts visible to viewer. An
// empty query returns empty lists.
func Search(ctx context.Context, ps *ProjectService, po *PostService, viewer *models.User, q string) (*SearchResult, error) {
	res := &SearchResult{Query: strings.TrimSpace(q), Projects: []models.Project{}, Posts: []models.Post{}}
	if res.Query == "" {
		return res, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.Projects, err = ps.List(gctx, res.Query, "")
		return err
	})
	g.Go(func() (err error) {
		res.Posts, err = po.List(gctx, viewer, PostQuery{Search: res.Query})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
