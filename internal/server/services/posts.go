package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/media"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/posts"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/repomanager"
)

const postCoverPrefix = "posts"

// PostInput is a post create or update. With Partial set, nil fields keep
// their stored value. New posts are published unless IsPublished says no.
type PostInput struct {
	Title       *string
	Content     *string
	Tags        *string
	IsPublished *bool
	CoverImage  *Upload
	Partial     bool
}

func (in *PostInput) apply(p *models.Post, fe common.FieldErrors) {
	if in.Title != nil || !in.Partial {
		p.Title = trimmed(in.Title)
		if p.Title == "" {
			fe.Add("title", msgRequired)
		}
		checkLen(fe, "title", p.Title, maxTitle)
	}
	if in.Content != nil || !in.Partial {
		if in.Content != nil {
			p.Content = *in.Content
		} else {
			p.Content = ""
		}
		if strings.TrimSpace(p.Content) == "" {
			fe.Add("content", msgRequired)
		}
	}
	if in.Tags != nil || !in.Partial {
		p.Tags = trimmed(in.Tags)
		checkLen(fe, "tags", p.Tags, maxTitle)
	}
	if in.IsPublished != nil {
		p.IsPublished = *in.IsPublished
	}
}

// PostQuery holds the list filters of the public post listing.
type PostQuery struct {
	Search    string
	Tag       string
	Published *bool
}

type PostService struct {
	repos  repomanager.RepositoryManager
	media  media.Store
	logger logging.Logger
}

func NewPostService(m repomanager.RepositoryManager, store media.Store, l logging.Logger) *PostService {
	return &PostService{repos: m, media: store, logger: l.With("service", "posts")}
}

// List returns posts visible to viewer, which may be nil. Admins see every
// post, other users see published posts and their own drafts, anonymous
// callers see published posts only.
func (s *PostService) List(ctx context.Context, viewer *models.User, q PostQuery) ([]models.Post, error) {
	f := posts.ListFilter{
		Search:    strings.TrimSpace(q.Search),
		Tag:       strings.TrimSpace(q.Tag),
		Published: q.Published,
	}
	switch {
	case viewer == nil:
		published := true
		f.Published = &published
	case !viewer.IsAdmin():
		f.PublicOnly = true
		f.ViewerID = viewer.ID
	}
	return s.repos.Posts().List(ctx, f)
}

// Mine returns the caller's posts, drafts included.
func (s *PostService) Mine(ctx context.Context, actor *models.User) ([]models.Post, error) {
	return s.repos.Posts().List(ctx, posts.ListFilter{AuthorID: actor.ID})
}

// Get returns a post. Drafts are only visible to their author and admins;
// anyone else gets ErrorNotFound.
func (s *PostService) Get(ctx context.Context, viewer *models.User, id int64) (*models.Post, error) {
	p, err := s.repos.Posts().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsPublished && (viewer == nil || !viewer.CanEdit(p.AuthorID)) {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

// Featured returns the newest published posts, at most FeaturedLimit.
func (s *PostService) Featured(ctx context.Context) ([]models.Post, error) {
	published := true
	ps, err := s.repos.Posts().List(ctx, posts.ListFilter{Published: &published})
	if err != nil {
		return nil, err
	}
	if len(ps) > FeaturedLimit {
		ps = ps[:FeaturedLimit]
	}
	return ps, nil
}

// Tags returns the distinct tags of published posts, sorted.
func (s *PostService) Tags(ctx context.Context) ([]string, error) {
	published := true
	ps, err := s.repos.Posts().List(ctx, posts.ListFilter{Published: &published})
	if err != nil {
		return nil, err
	}
	var lists []string
	for _, p := range ps {
		lists = append(lists, p.Tags)
	}
	return distinct(lists), nil
}

func (s *PostService) Create(ctx context.Context, actor *models.User, in PostInput) (*models.Post, error) {
	if !actor.CanCreateContent() {
		return nil, fmt.Errorf("viewers cannot create posts: %w", common.ErrorForbidden)
	}

	in.Partial = false
	p := &models.Post{AuthorID: actor.ID, IsPublished: true}
	fe := common.FieldErrors{}
	in.apply(p, fe)
	var contentType string
	if in.CoverImage != nil {
		contentType = checkImage(fe, "cover_image", in.CoverImage)
	}
	if !fe.Empty() {
		return nil, fe
	}

	if in.CoverImage != nil {
		key, err := storeImage(ctx, s.media, postCoverPrefix, in.CoverImage, contentType)
		if err != nil {
			return nil, err
		}
		p.CoverImage = key
	}

	created, err := s.repos.Posts().Create(ctx, p)
	if err != nil {
		s.discard(ctx, p.CoverImage)
		return nil, err
	}
	s.logger.Info(ctx, "post created", "post_id", created.ID, "author_id", actor.ID)
	return created, nil
}

// editable loads a post the actor may change. Drafts of other authors
// report ErrorNotFound, published posts ErrorForbidden.
func (s *PostService) editable(ctx context.Context, actor *models.User, id int64) (*models.Post, error) {
	p, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanEdit(p.AuthorID) {
		return nil, fmt.Errorf("not the post author: %w", common.ErrorForbidden)
	}
	return p, nil
}

func (s *PostService) Update(ctx context.Context, actor *models.User, id int64, in PostInput) (*models.Post, error) {
	current, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	p := *current
	fe := common.FieldErrors{}
	in.apply(&p, fe)
	var contentType string
	if in.CoverImage != nil {
		contentType = checkImage(fe, "cover_image", in.CoverImage)
	}
	if !fe.Empty() {
		return nil, fe
	}
	// nothing changed: keep updated_at
	if in.CoverImage == nil && p == *current {
		return current, nil
	}

	if in.CoverImage != nil {
		key, err := storeImage(ctx, s.media, postCoverPrefix, in.CoverImage, contentType)
		if err != nil {
			return nil, err
		}
		p.CoverImage = key
	}

	updated, err := s.repos.Posts().Update(ctx, &p)
	if err != nil {
		if in.CoverImage != nil {
			s.discard(ctx, p.CoverImage)
		}
		return nil, err
	}
	if in.CoverImage != nil {
		s.discard(ctx, current.CoverImage)
	}
	return updated, nil
}

// TogglePublish flips a post between draft and published.
func (s *PostService) TogglePublish(ctx context.Context, actor *models.User, id int64) (*models.Post, error) {
	current, err := s.editable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	published := !current.IsPublished
	return s.Update(ctx, actor, id, PostInput{IsPublished: &published, Partial: true})
}

func (s *PostService) Delete(ctx context.Context, actor *models.User, id int64) error {
	current, err := s.editable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repos.Posts().Delete(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, current.CoverImage)
	s.logger.Info(ctx, "post deleted", "post_id", id, "by", actor.ID)
	return nil
}

func (s *PostService) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.media.Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "media delete failed", "key", key, "error", err)
	}
}
