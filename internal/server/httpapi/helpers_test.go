package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/cryptox"
	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/config"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/media"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/repomanager"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/revocation"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/services"
)

var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

// testPassword is hashed once and shared by every seeded user.
const testPassword = "password1"

var testPasswordHash, _ = cryptox.HashPassword([]byte(testPassword))

type testAPI struct {
	t     *testing.T
	srv   *httptest.Server
	repos *repomanager.MemoryRepositoryManager
	store *media.MemoryStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: time.Hour,
	}
	repos := repomanager.NewMemoryRepositoryManager()
	store := media.NewMemoryStore()
	l := logging.Nop{}

	router := NewRouter(Services{
		Auth:     services.NewAuthService(repos, revocation.NewMemoryRevoker(), cfg, l),
		Users:    services.NewUserService(repos, store, l),
		Projects: services.NewProjectService(repos, store, l),
		Posts:    services.NewPostService(repos, store, l),
		Stats:    services.NewStatsService(repos),
		Media:    store,
	}, []string{"http://localhost:3000"}, l)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testAPI{t: t, srv: srv, repos: repos, store: store}
}

func (a *testAPI) addUser(username, role string) *models.User {
	a.t.Helper()
	u, err := a.repos.Users().Create(context.Background(), &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: testPasswordHash,
		FirstName:    username,
		LastName:     "Test",
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		a.t.Fatalf("create user: %v", err)
	}
	return u
}

// login returns access and refresh tokens for a seeded user.
func (a *testAPI) login(u *models.User) (string, string) {
	a.t.Helper()
	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	a.expect(a.do(http.MethodPost, "/api/auth/login/", "", map[string]any{
		"email": u.Email, "password": testPassword,
	}), http.StatusOK, &out)
	return out.Access, out.Refresh
}

func (a *testAPI) adminToken() string {
	a.t.Helper()
	tok, _ := a.login(a.addUser("root", common.RoleAdmin))
	return tok
}

func (a *testAPI) send(method, path, token string, body io.Reader, contentType string) *http.Response {
	a.t.Helper()
	req, err := http.NewRequest(method, a.srv.URL+path, body)
	if err != nil {
		a.t.Fatalf("new request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.srv.Client().Do(req)
	if err != nil {
		a.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// do sends body as JSON; a nil body sends nothing.
func (a *testAPI) do(method, path, token string, body any) *http.Response {
	a.t.Helper()
	if body == nil {
		return a.send(method, path, token, nil, "")
	}
	data, err := json.Marshal(body)
	if err != nil {
		a.t.Fatalf("marshal: %v", err)
	}
	return a.send(method, path, token, bytes.NewReader(data), "application/json")
}

// multipart sends fields plus one file part.
func (a *testAPI) multipart(method, path, token string, fields map[string]string, fileField, fileName string, data []byte) *http.Response {
	a.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			a.t.Fatalf("write field: %v", err)
		}
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			a.t.Fatalf("create form file: %v", err)
		}
		part.Write(data)
	}
	w.Close()
	return a.send(method, path, token, &buf, w.FormDataContentType())
}

// expect checks the status and decodes the body into out when non-nil.
func (a *testAPI) expect(resp *http.Response, status int, out any) {
	a.t.Helper()
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != status {
		a.t.Fatalf("%s %s: status %d, want %d; body %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, status, body)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			a.t.Fatalf("decode %s: %v", body, err)
		}
	}
}

func stringsReader(s string) io.Reader { return bytes.NewReader([]byte(s)) }
