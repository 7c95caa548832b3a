package resources

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/apiclient"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsers(t *testing.T, h http.HandlerFunc) *Users {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	api, err := apiclient.New(srv.URL+"/api", tokens.NewMemoryStore())
	require.NoError(t, err)
	return NewUsers(api)
}

func TestUsers_ListMineUnsupported(t *testing.T) {
	var calls atomic.Int32
	users := newUsers(t, func(w http.ResponseWriter, r *http.Request) { calls.Add(1) })

	_, err := users.ListMine(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Zero(t, calls.Load())
}

func TestUsers_MembersSendsFilters(t *testing.T) {
	var gotPath, gotQuery string
	users := newUsers(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id": 1, "username": "chen", "bio": "Go"}]`))
	})

	list, err := users.Members(context.Background(), "chen", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/api/users/members/", gotPath)
	assert.Equal(t, "search=chen", gotQuery)
}

func TestUsers_Actions(t *testing.T) {
	var gotPath, gotBody string
	users := newUsers(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"message": "ok", "user": {"id": 4, "role": "admin", "is_active": false}}`))
	})
	ctx := context.Background()

	resp, err := users.ToggleActive(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "/api/users/4/toggle_active/", gotPath)
	assert.Empty(t, gotBody)
	assert.False(t, resp.User.IsActive)

	resp, err = users.ChangeRole(ctx, 4, "admin")
	require.NoError(t, err)
	assert.Equal(t, "/api/users/4/change_role/", gotPath)
	assert.JSONEq(t, `{"role": "admin"}`, gotBody)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestUsers_UpdateProfileNormalisesLinks(t *testing.T) {
	var got map[string]any
	users := newUsers(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/profile/", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"id": 1}`))
	})

	_, err := users.UpdateProfile(context.Background(), UserInput{LinkedinURL: ptr("linkedin.com/in/x"), Bio: ptr("hi")})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"linkedin_url": "https://linkedin.com/in/x", "bio": "hi"}, got)
}

func TestDashboard_LoadsBothInParallel(t *testing.T) {
	var inFlight, peak atomic.Int32
	users := newUsers(t, func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		// Hold the request until the other one arrives (or give up).
		deadline := time.Now().Add(2 * time.Second)
		for inFlight.Load() < 2 && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		defer inFlight.Add(-1)

		if strings.HasSuffix(r.URL.Path, "/admin/statistics/") {
			_, _ = w.Write([]byte(`{"users": {"total": 2}}`))
			return
		}
		_, _ = w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	})

	d, err := Dashboard(context.Background(), users)
	require.NoError(t, err)
	assert.Len(t, d.Users, 2)
	assert.Equal(t, 2, d.Stats.Users.Total)
	assert.Equal(t, int32(2), peak.Load())
}

func TestDashboard_FailureIsReturned(t *testing.T) {
	users := newUsers(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/admin/statistics/") {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"detail": "You do not have permission to perform this action."}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := Dashboard(context.Background(), users)
	assert.ErrorIs(t, err, apiclient.ErrForbidden)
}

func TestMyOverview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/blog/projects/my_projects/":
			_ = json.NewEncoder(w).Encode([]models.Project{{ID: 1}})
		case "/api/blog/posts/my_posts/":
			_ = json.NewEncoder(w).Encode([]models.Post{{ID: 1}, {ID: 2}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	api, err := apiclient.New(srv.URL+"/api", nil)
	require.NoError(t, err)

	o, err := MyOverview(context.Background(), NewProjects(api), NewPosts(api))
	require.NoError(t, err)
	assert.Len(t, o.Projects, 1)
	assert.Len(t, o.Posts, 2)
}
