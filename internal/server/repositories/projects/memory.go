package projects

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

// UsernameFunc resolves an owner id to a username for listings.
type UsernameFunc func(ctx context.Context, id int64) string

type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	items    map[int64]models.Project
	username UsernameFunc
	now      func() time.Time
}

func NewMemoryRepository(username UsernameFunc) *MemoryRepository {
	return &MemoryRepository{items: map[int64]models.Project{}, username: username, now: time.Now}
}

func (r *MemoryRepository) withOwner(ctx context.Context, p models.Project) *models.Project {
	if r.username != nil {
		p.OwnerUsername = r.username(ctx, p.OwnerID)
	}
	return &p
}

func (r *MemoryRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	r.mu.Lock()
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = r.now()
	p.UpdatedAt = p.CreatedAt
	r.items[p.ID] = *p
	stored := *p
	r.mu.Unlock()

	return r.withOwner(ctx, stored), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*models.Project, error) {
	r.mu.RLock()
	p, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.withOwner(ctx, p), nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (f ListFilter) match(p *models.Project) bool {
	if f.OwnerID != 0 && p.OwnerID != f.OwnerID {
		return false
	}
	if f.Search != "" && !containsFold(p.Title, f.Search) && !containsFold(p.Description, f.Search) {
		return false
	}
	return f.Tech == "" || containsFold(p.TechStack, f.Tech)
}

func (r *MemoryRepository) List(ctx context.Context, f ListFilter) ([]models.Project, error) {
	r.mu.RLock()
	list := []models.Project{}
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
		list[i] = *r.withOwner(ctx, list[i])
	}
	return list, nil
}

func (r *MemoryRepository) Update(ctx context.Context, p *models.Project) (*models.Project, error) {
	r.mu.Lock()
	cur, ok := r.items[p.ID]
	if !ok {
		r.mu.Unlock()
		return nil, common.ErrorNotFound
	}
	p.OwnerID = cur.OwnerID
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.now()
	r.items[p.ID] = *p
	stored := *p
	r.mu.Unlock()

	return r.withOwner(ctx, stored), nil
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

func (r *MemoryRepository) DeleteByOwner(_ context.Context, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.items {
		if p.OwnerID == ownerID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *MemoryRepository) Stats(ctx context.Context) (*models.ProjectStats, error) {
	r.mu.RLock()
	counts := map[int64]int{}
	for _, p := range r.items {
		counts[p.OwnerID]++
	}
	total := len(r.items)
	r.mu.RUnlock()

	s := &models.ProjectStats{Total: total, ByOwner: []models.OwnerCount{}}
	for owner, n := range counts {
		name := ""
		if r.username != nil {
			name = r.username(ctx, owner)
		}
		s.ByOwner = append(s.ByOwner, models.OwnerCount{OwnerUsername: name, Count: n})
	}
	sort.Slice(s.ByOwner, func(i, j int) bool {
		if s.ByOwner[i].Count != s.ByOwner[j].Count {
			return s.ByOwner[i].Count > s.ByOwner[j].Count
		}
		return s.ByOwner[i].OwnerUsername < s.ByOwner[j].OwnerUsername
	})
	return s, nil
}
