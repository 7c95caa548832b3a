package services

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/cryptox"
	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/config"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/media"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/repomanager"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/revocation"
)

var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

type testEnv struct {
	repos    *repomanager.MemoryRepositoryManager
	store    *media.MemoryStore
	revoker  *revocation.MemoryRevoker
	auth     *AuthService
	users    *UserService
	projects *ProjectService
	posts    *PostService
	stats    *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	orig := hashPassword
	hashPassword = func(p []byte) ([]byte, error) {
		return bcrypt.GenerateFromPassword(p, bcrypt.MinCost)
	}
	t.Cleanup(func() { hashPassword = orig })

	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: time.Hour,
	}
	repos := repomanager.NewMemoryRepositoryManager()
	store := media.NewMemoryStore()
	rv := revocation.NewMemoryRevoker()
	l := logging.Nop{}

	return &testEnv{
		repos:    repos,
		store:    store,
		revoker:  rv,
		auth:     NewAuthService(repos, rv, cfg, l),
		users:    NewUserService(repos, store, l),
		projects: NewProjectService(repos, store, l),
		posts:    NewPostService(repos, store, l),
		stats:    NewStatsService(repos),
	}
}

// addUser stores an active user with the password "password1".
func (e *testEnv) addUser(t *testing.T, username, role string) *models.User {
	t.Helper()
	hash, err := hashPassword([]byte("password1"))
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, err := e.repos.Users().Create(context.Background(), &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		FirstName:    username,
		LastName:     "Test",
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (e *testEnv) admin(t *testing.T) *models.User {
	return e.addUser(t, "root", common.RoleAdmin)
}

func strp(s string) *string { return &s }

func boolp(b bool) *bool { return &b }

func hashOf(token string) string { return cryptox.HashToken(token) }
