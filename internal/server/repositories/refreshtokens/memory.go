package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]models.RefreshToken
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: map[string]models.RefreshToken{}, now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, userID int64, tokenHash string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[tokenHash]; ok {
		return common.ErrorAlreadyExists
	}
	r.nextID++
	now := r.now()
	r.tokens[tokenHash] = models.RefreshToken{
		ID: r.nextID, UserID: userID, Token: tokenHash, Expires: now.Add(validity), CreatedAt: now,
	}
	return nil
}

func (r *MemoryRepository) Consume(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[tokenHash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(r.tokens, tokenHash)
	return &t, nil
}

func (r *MemoryRepository) Delete(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	delete(r.tokens, tokenHash)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) DeleteByUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}
