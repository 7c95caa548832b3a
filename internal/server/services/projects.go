package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/media"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/projects"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/repomanager"
)

const (
	projectImagePrefix = "projects"
	// FeaturedLimit caps the featured project and post listings.
	FeaturedLimit = 6
)

// ProjectInput is a project create or update. With Partial set, nil fields
// keep their stored value; otherwise title and description are required.
type ProjectInput struct {
	Title       *string
	Description *string
	TechStack   *string
	DemoLink    *string
	SourceCode  *string
	Image       *Upload
	Partial     bool
}

func (in *ProjectInput) apply(p *models.Project, fe common.FieldErrors) {
	if in.Title != nil || !in.Partial {
		p.Title = trimmed(in.Title)
		if p.Title == "" {
			fe.Add("title", msgRequired)
		}
		checkLen(fe, "title", p.Title, maxTitle)
	}
	if in.Description != nil || !in.Partial {
		p.Description = trimmed(in.Description)
		if p.Description == "" {
			fe.Add("description", msgRequired)
		}
	}
	if in.TechStack != nil || !in.Partial {
		p.TechStack = trimmed(in.TechStack)
		checkLen(fe, "tech_stack", p.TechStack, maxTitle)
	}
	if in.DemoLink != nil || !in.Partial {
		p.DemoLink = trimmed(in.DemoLink)
		checkURL(fe, "demo_link", p.DemoLink)
	}
	if in.SourceCode != nil || !in.Partial {
		p.SourceCode = trimmed(in.SourceCode)
		checkURL(fe, "source_code", p.SourceCode)
	}
}

type ProjectService struct {
	repos  repomanager.RepositoryManager
	media  media.Store
	logger logging.Logger
}

func NewProjectService(m repomanager.RepositoryManager, store media.Store, l logging.Logger) *ProjectService {
	return &ProjectService{repos: m, media: store, logger: l.With("service", "projects")}
}

func (s *ProjectService) List(ctx context.Context, search, tech string) ([]models.Project, error) {
	return s.repos.Projects().List(ctx, projects.ListFilter{
		Search: strings.TrimSpace(search),
		Tech:   strings.TrimSpace(tech),
	})
}

func (s *ProjectService) Mine(ctx context.Context, actor *models.User) ([]models.Project, error) {
	return s.repos.Projects().List(ctx, projects.ListFilter{OwnerID: actor.ID})
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	return s.repos.Projects().Get(ctx, id)
}

// Featured returns the newest projects, at most FeaturedLimit.
func (s *ProjectService) Featured(ctx context.Context) ([]models.Project, error) {
	ps, err := s.repos.Projects().List(ctx, projects.ListFilter{})
	if err != nil {
		return nil, err
	}
	if len(ps) > FeaturedLimit {
		ps = ps[:FeaturedLimit]
	}
	return ps, nil
}

// Technologies returns every distinct tech stack entry, sorted.
func (s *ProjectService) Technologies(ctx context.Context) ([]string, error) {
	ps, err := s.repos.Projects().List(ctx, projects.ListFilter{})
	if err != nil {
		return nil, err
	}
	var lists []string
	for _, p := range ps {
		lists = append(lists, p.TechStack)
	}
	return distinct(lists), nil
}

// distinct splits comma lists and returns their unique items, sorted.
func distinct(lists []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, l := range lists {
		for _, item := range models.SplitList(l) {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}

func (s *ProjectService) Create(ctx context.Context, actor *models.User, in ProjectInput) (*models.Project, error) {
	if !actor.CanCreateContent() {
		return nil, fmt.Errorf("viewers cannot create projects: %w", common.ErrorForbidden)
	}

	in.Partial = false
	p := &models.Project{OwnerID: actor.ID}
	fe := common.FieldErrors{}
	in.apply(p, fe)
	var contentType string
	if in.Image != nil {
		contentType = checkImage(fe, "image", in.Image)
	}
	if !fe.Empty() {
		return nil, fe
	}

	if in.Image != nil {
		key, err := storeImage(ctx, s.media, projectImagePrefix, in.Image, contentType)
		if err != nil {
			return nil, err
		}
		p.Image = key
	}

	created, err := s.repos.Projects().Create(ctx, p)
	if err != nil {
		s.discard(ctx, p.Image)
		return nil, err
	}
	s.logger.Info(ctx, "project created", "project_id", created.ID, "owner_id", actor.ID)
	return created, nil
}

func (s *ProjectService) Update(ctx context.Context, actor *models.User, id int64, in ProjectInput) (*models.Project, error) {
	current, err := s.repos.Projects().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanEdit(current.OwnerID) {
		return nil, fmt.Errorf("not the project owner: %w", common.ErrorForbidden)
	}

	p := *current
	fe := common.FieldErrors{}
	in.apply(&p, fe)
	var contentType string
	if in.Image != nil {
		contentType = checkImage(fe, "image", in.Image)
	}
	if !fe.Empty() {
		return nil, fe
	}
	// nothing changed: keep updated_at
	if in.Image == nil && p == *current {
		return current, nil
	}

	if in.Image != nil {
		key, err := storeImage(ctx, s.media, projectImagePrefix, in.Image, contentType)
		if err != nil {
			return nil, err
		}
		p.Image = key
	}

	updated, err := s.repos.Projects().Update(ctx, &p)
	if err != nil {
		if in.Image != nil {
			s.discard(ctx, p.Image)
		}
		return nil, err
	}
	if in.Image != nil {
		s.discard(ctx, current.Image)
	}
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, actor *models.User, id int64) error {
	current, err := s.repos.Projects().Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanEdit(current.OwnerID) {
		return fmt.Errorf("not the project owner: %w", common.ErrorForbidden)
	}
	if err := s.repos.Projects().Delete(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, current.Image)
	s.logger.Info(ctx, "project deleted", "project_id", id, "by", actor.ID)
	return nil
}

func (s *ProjectService) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.media.Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "media delete failed", "key", key, "error", err)
	}
}
