package httpapi

import (
	"net/http"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/services"
)

func profileInput(f *form) services.ProfileInput {
	return services.ProfileInput{
		Username:        f.str("username"),
		Email:           f.str("email"),
		FirstName:       f.str("first_name"),
		LastName:        f.str("last_name"),
		Bio:             f.str("bio"),
		Skills:          f.str("skills"),
		LinkedinURL:     f.str("linkedin_url"),
		GithubURL:       f.str("github_url"),
		PersonalWebsite: f.str("personal_website"),
	}
}

func (h *handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newPresenter(r).user(currentUser(r)))
}

// updateProfile applies a partial update for PUT and PATCH alike. Sending a
// role is refused; is_active is ignored.
func (h *handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if f.has("role") {
		h.writeError(w, r, services.ErrOwnRoleChange)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), currentUser(r), profileInput(f), f.file("profile_photo"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).user(user))
}

func (h *handlers) members(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.users.Members(r.Context(), q.Get("search"), q.Get("skill"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).users(list))
}

func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).users(list))
}

func (h *handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).user(user))
}

func (h *handlers) adminUpdateUser(w http.ResponseWriter, r *http.Request) {
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
	in := services.AdminUserInput{
		ProfileInput: profileInput(f),
		Role:         f.str("role"),
		IsActive:     f.boolean("is_active", fe),
	}
	if !fe.Empty() {
		h.writeError(w, r, fe)
		return
	}

	user, err := h.users.AdminUpdate(r.Context(), currentUser(r), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPresenter(r).user(user))
}

func (h *handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.users.Delete(r.Context(), currentUser(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) toggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, msg, err := h.users.ToggleActive(r.Context(), currentUser(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg, "user": newPresenter(r).user(user)})
}

func (h *handlers) changeRole(w http.ResponseWriter, r *http.Request) {
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
	user, msg, err := h.users.ChangeRole(r.Context(), currentUser(r), id, f.value("role"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg, "user": newPresenter(r).user(user)})
}

func (h *handlers) statistics(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.Statistics(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
