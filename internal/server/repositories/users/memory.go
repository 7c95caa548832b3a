package users

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

// MemoryRepository keeps users in a map. It is used when no database is
// configured and in tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]models.User
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: map[int64]models.User{}, now: time.Now}
}

// conflict reports the uniqueness error u would cause, ignoring itself.
func (r *MemoryRepository) conflict(u *models.User) error {
	for id, other := range r.users {
		if id == u.ID {
			continue
		}
		if strings.EqualFold(other.Email, u.Email) {
			return ErrEmailTaken
		}
		if other.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	return nil
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = 0
	if err := r.conflict(user); err != nil {
		return nil, err
	}
	r.nextID++
	user.ID = r.nextID
	user.DateJoined = r.now()
	r.users[user.ID] = *user
	return user, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (f ListFilter) match(u *models.User) bool {
	if f.ActiveOnly && !u.IsActive {
		return false
	}
	if f.Search != "" &&
		!containsFold(u.FirstName, f.Search) && !containsFold(u.LastName, f.Search) &&
		!containsFold(u.Bio, f.Search) {
		return false
	}
	if f.Skill != "" && !containsFold(u.Skills, f.Skill) {
		return false
	}
	return true
}

func (r *MemoryRepository) List(_ context.Context, f ListFilter) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := []models.User{}
	for _, u := range r.users {
		if f.match(&u) {
			list = append(list, u)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].DateJoined.Equal(list[j].DateJoined) {
			return list[i].DateJoined.After(list[j].DateJoined)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *MemoryRepository) Update(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.users[user.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if err := r.conflict(user); err != nil {
		return nil, err
	}
	user.PasswordHash = cur.PasswordHash
	user.DateJoined = cur.DateJoined
	user.LastLogin = cur.LastLogin
	r.users[user.ID] = *user
	return user, nil
}

func (r *MemoryRepository) SetPassword(_ context.Context, id int64, hash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	r.users[id] = u
	return nil
}

func (r *MemoryRepository) TouchLogin(_ context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		u.LastLogin = &at
		r.users[id] = u
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryRepository) Stats(context.Context) (*models.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := &models.UserStats{Total: len(r.users)}
	for _, u := range r.users {
		if u.IsActive {
			s.Active++
		}
		switch u.Role {
		case common.RoleAdmin:
			s.Admins++
		case common.RoleMember:
			s.Members++
		case common.RoleViewer:
			s.Viewers++
		}
	}
	return s, nil
}
