package posts

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

// UsernameFunc resolves an author id to a username for listings.
type UsernameFunc func(ctx context.Context, id int64) string

type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	items    map[int64]models.Post
	username UsernameFunc
	now      func() time.Time
}

func NewMemoryRepository(username UsernameFunc) *MemoryRepository {
	return &MemoryRepository{items: map[int64]models.Post{}, username: username, now: time.Now}
}

func (r *MemoryRepository) withAuthor(ctx context.Context, p models.Post) *models.Post {
	if r.username != nil {
		p.AuthorUsername = r.username(ctx, p.AuthorID)
	}
	return &p
}

func (r *MemoryRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	r.mu.Lock()
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = r.now()
	p.UpdatedAt = p.CreatedAt
	r.items[p.ID] = *p
	stored := *p
	r.mu.Unlock()

	return r.withAuthor(ctx, stored), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*models.Post, error) {
	r.mu.RLock()
	p, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.withAuthor(ctx, p), nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (f ListFilter) match(p *models.Post) bool {
	if f.AuthorID != 0 && p.AuthorID != f.AuthorID {
		return false
	}
	if f.Published != nil && p.IsPublished != *f.Published {
		return false
	}
	if f.PublicOnly && !p.IsPublished && (f.ViewerID == 0 || p.AuthorID != f.ViewerID) {
		return false
	}
	if f.Search != "" && !containsFold(p.Title, f.Search) && !containsFold(p.Content, f.Search) {
		return false
	}
	return f.Tag == "" || containsFold(p.Tags, f.Tag)
}

func (r *MemoryRepository) List(ctx context.Context, f ListFilter) ([]models.Post, error) {
	r.mu.RLock()
	list := []models.Post{}
	for _, p := range r.items {
		if f.match(&p) {
			list = append(list, p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	for i := range list {
		list[i] = *r.withAuthor(ctx, list[i])
	}
	return list, nil
}

func (r *MemoryRepository) Update(ctx context.Context, p *models.Post) (*models.Post, error) {
	r.mu.Lock()
	cur, ok := r.items[p.ID]
	if !ok {
		r.mu.Unlock()
		return nil, common.ErrorNotFound
	}
	p.AuthorID = cur.AuthorID
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.now()
	r.items[p.ID] = *p
	stored := *p
	r.mu.Unlock()

	return r.withAuthor(ctx, stored), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepository) DeleteByAuthor(_ context.Context, authorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.items {
		if p.AuthorID == authorID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *MemoryRepository) Stats(ctx context.Context) (*models.PostStats, error) {
	s := &models.PostStats{ByAuthor: []models.AuthorCount{}}
	counts := map[int64]int{}

	r.mu.RLock()
	for _, p := range r.items {
		s.Total++
		if p.IsPublished {
			s.Published++
		}
		counts[p.AuthorID]++
	}
	r.mu.RUnlock()
	s.Draft = s.Total - s.Published

	for author, n := range counts {
		name := ""
		if r.username != nil {
			name = r.username(ctx, author)
		}
		s.ByAuthor = append(s.ByAuthor, models.AuthorCount{AuthorUsername: name, Count: n})
	}
	sort.Slice(s.ByAuthor, func(i, j int) bool {
		if s.ByAuthor[i].Count != s.ByAuthor[j].Count {
			return s.ByAuthor[i].Count > s.ByAuthor[j].Count
		}
		return s.ByAuthor[i].AuthorUsername < s.ByAuthor[j].AuthorUsername
	})
	return s, nil
}
