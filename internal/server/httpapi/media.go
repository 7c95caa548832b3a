package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/media"
)

// serveMedia streams a stored upload by key.
func (h *handlers) serveMedia(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if !media.ValidKey(key) {
		h.writeError(w, r, common.ErrorNotFound)
		return
	}

	obj, err := h.media.Get(r.Context(), key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	ct := obj.ContentType
	if ct == "" {
		ct = http.DetectContentType(obj.Data)
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Data)
}
