package httpapi

import (
	"net/http"
	"strconv"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/services"
)

func (h *handlers) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.projects.List(r.Context(), q.Get("search"), q.Get("tech"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).projects(list))
}

func (h *handlers) myProjects(w http.ResponseWriter, r *http.Request) {
	list, err := h.projects.Mine(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).projects(list))
}

func (h *handlers) featuredProjects(w http.ResponseWriter, r *http.Request) {
	list, err := h.projects.Featured(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).projects(list))
}

func (h *handlers) technologies(w http.ResponseWriter, r *http.Request) {
	list, err := h.projects.Technologies(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.projects.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).project(p))
}

func projectInput(f *form, partial bool) services.ProjectInput {
	return services.ProjectInput{
		Title:       f.str("title"),
		Description: f.str("description"),
		TechStack:   f.str("tech_stack"),
		DemoLink:    f.str("demo_link"),
		SourceCode:  f.str("source_code"),
		Image:       f.file("image"),
		Partial:     partial,
	}
}

func (h *handlers) createProject(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.projects.Create(r.Context(), currentUser(r), projectInput(f, false))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newPresenter(r).project(p))
}

func (h *handlers) updateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	f, err := parseForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.projects.Update(r.Context(), currentUser(r), id, projectInput(f, r.Method == http.MethodPatch))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).project(p))
}

func (h *handlers) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.projects.Delete(r.Context(), currentUser(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := services.PostQuery{Search: q.Get("search"), Tag: q.Get("tag")}
	if v := q.Get("published"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			h.writeError(w, r, common.FieldErrors{"published": {"Must be a valid boolean."}})
			return
		}
		query.Published = &b
	}

	list, err := h.posts.List(r.Context(), currentUser(r), query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).posts(list))
}

func (h *handlers) myPosts(w http.ResponseWriter, r *http.Request) {
	list, err := h.posts.Mine(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).posts(list))
}

func (h *handlers) featuredPosts(w http.ResponseWriter, r *http.Request) {
	list, err := h.posts.Featured(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).posts(list))
}

func (h *handlers) tags(w http.ResponseWriter, r *http.Request) {
	list, err := h.posts.Tags(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) getPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.posts.Get(r.Context(), currentUser(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).post(p))
}

func postInput(f *form, partial bool, fe common.FieldErrors) services.PostInput {
	return services.PostInput{
		Title:       f.str("title"),
		Content:     f.str("content"),
		Tags:        f.str("tags"),
		IsPublished: f.boolean("is_published", fe),
		CoverImage:  f.file("cover_image"),
		Partial:     partial,
	}
}

func (h *handlers) createPost(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	fe := common.FieldErrors{}
	in := postInput(f, false, fe)
	if !fe.Empty() {
		h.writeError(w, r, fe)
		return
	}
	p, err := h.posts.Create(r.Context(), currentUser(r), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newPresenter(r).post(p))
}

func (h *handlers) updatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	f, err := parseForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	fe := common.FieldErrors{}
	in := postInput(f, r.Method == http.MethodPatch, fe)
	if !fe.Empty() {
		h.writeError(w, r, fe)
		return
	}
	p, err := h.posts.Update(r.Context(), currentUser(r), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).post(p))
}

func (h *handlers) togglePublish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.posts.TogglePublish(r.Context(), currentUser(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).post(p))
}

func (h *handlers) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.posts.Delete(r.Context(), currentUser(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	res, err := services.Search(r.Context(), h.projects, h.posts, currentUser(r), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	p := newPresenter(r)
	if res.Query == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":  "Please provide a search query",
			"projects": p.projects(nil),
			"posts":    p.posts(nil),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":    res.Query,
		"projects": p.projects(res.Projects),
		"posts":    p.posts(res.Posts),
	})
}

func (h *handlers) siteStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.Site(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
