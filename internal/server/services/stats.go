package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/repomanager"
)

// SiteStats are the public counters shown on the landing page.
type SiteStats struct {
	TotalUsers    int `json:"total_users"`
	TotalProjects int `json:"total_projects"`
	TotalPosts    int `json:"total_posts"`
}

type StatsService struct {
	repos repomanager.RepositoryManager
}

func NewStatsService(m repomanager.RepositoryManager) *StatsService {
	return &StatsService{repos: m}
}

// Statistics collects the admin dashboard aggregates concurrently.
func (s *StatsService) Statistics(ctx context.Context) (*models.Statistics, error) {
	var (
		out models.Statistics
		u   *models.UserStats
		pr  *models.ProjectStats
		po  *models.PostStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		u, err = s.repos.Users().Stats(gctx)
		return err
	})
	g.Go(func() (err error) {
		pr, err = s.repos.Projects().Stats(gctx)
		return err
	})
	g.Go(func() (err error) {
		po, err = s.repos.Posts().Stats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Users, out.Projects, out.Posts = *u, *pr, *po
	return &out, nil
}

// Site returns the public counters. Only active users and published posts
// are counted.
func (s *StatsService) Site(ctx context.Context) (*SiteStats, error) {
	st, err := s.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	return &SiteStats{
		TotalUsers:    st.Users.Active,
		TotalProjects: st.Projects.Total,
		TotalPosts:    st.Posts.Published,
	}, nil
}
