// Package httpapi is the REST surface of the portfolio server: routing,
// authentication middleware, request decoding and JSON rendering on top
// of the services package.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/media"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/services"
)

const mediaPrefix = "/media/"

// Services bundles what the handlers call into.
type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Projects *services.ProjectService
	Posts    *services.PostService
	Stats    *services.StatsService
	Media    media.Store
}

type handlers struct {
	auth     *services.AuthService
	users    *services.UserService
	projects *services.ProjectService
	posts    *services.PostService
	stats    *services.StatsService
	media    media.Store
	logger   logging.Logger
}

// NewRouter builds the HTTP handler. allowedOrigins feeds CORS.
func NewRouter(s Services, allowedOrigins []string, l logging.Logger) http.Handler {
	h := &handlers{
		auth:     s.Auth,
		users:    s.Users,
		projects: s.Projects,
		posts:    s.Posts,
		stats:    s.Stats,
		media:    s.Media,
		logger:   l.With("module", "http"),
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimw.RealIP)
	r.Use(h.logRequests)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, "message", "API is running")
	})
	r.Get("/health/", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, "status", "ok")
	})
	r.Get(mediaPrefix+"*", h.serveMedia)

	r.Route("/api", func(r chi.Router) {
		r.Use(h.authenticate)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register/", h.register)
			r.Post("/login/", h.login)
			r.With(requireAuth).Post("/logout/", h.logout)
			r.Post("/token/refresh/", h.refresh)
			r.Post("/password-reset/", h.passwordReset)
			r.Post("/password-reset-confirm/", h.passwordResetConfirm)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/profile/", h.getProfile)
			r.Put("/profile/", h.updateProfile)
			r.Patch("/profile/", h.updateProfile)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(requireAdmin).Get("/", h.listUsers)
			r.Get("/members/", h.members)
			r.Get("/{id:[0-9]+}/", h.getUser)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Patch("/{id:[0-9]+}/", h.adminUpdateUser)
				r.Put("/{id:[0-9]+}/", h.adminUpdateUser)
				r.Delete("/{id:[0-9]+}/", h.deleteUser)
				r.Post("/{id:[0-9]+}/toggle_active/", h.toggleActive)
				r.Post("/{id:[0-9]+}/change_role/", h.changeRole)
			})
		})

		r.With(requireAdmin).Get("/admin/statistics/", h.statistics)

		r.Route("/blog", func(r chi.Router) {
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.listProjects)
				r.Get("/featured/", h.featuredProjects)
				r.Get("/technologies/", h.technologies)
				r.Get("/{id:[0-9]+}/", h.getProject)
				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					r.Post("/", h.createProject)
					r.Get("/my_projects/", h.myProjects)
					r.Put("/{id:[0-9]+}/", h.updateProject)
					r.Patch("/{id:[0-9]+}/", h.updateProject)
					r.Delete("/{id:[0-9]+}/", h.deleteProject)
				})
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.listPosts)
				r.Get("/featured/", h.featuredPosts)
				r.Get("/tags/", h.tags)
				r.Get("/{id:[0-9]+}/", h.getPost)
				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					r.Post("/", h.createPost)
					r.Get("/my_posts/", h.myPosts)
					r.Put("/{id:[0-9]+}/", h.updatePost)
					r.Patch("/{id:[0-9]+}/", h.updatePost)
					r.Delete("/{id:[0-9]+}/", h.deletePost)
					r.Post("/{id:[0-9]+}/toggle_publish/", h.togglePublish)
				})
			})

			r.Get("/search/", h.search)
			r.Get("/stats/", h.siteStats)
		})
	})

	return r
}

// pathID reads the numeric {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrorNotFound
	}
	return id, nil
}
