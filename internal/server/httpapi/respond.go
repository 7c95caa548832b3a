package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/services"
)

const (
	detailNotAuthenticated = "Authentication credentials were not provided."
	detailInvalidToken     = "Given token not valid for any token type"
	detailForbidden        = "You do not have permission to perform this action."
	detailNotFound         = "Not found."
	detailInternal         = "Internal server error."
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeMessage(w http.ResponseWriter, status int, key, msg string) {
	writeJSON(w, status, map[string]string{key: msg})
}

// writeError maps a service error onto a status code and body.
func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fe common.FieldErrors
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, fe)
	case errors.Is(err, errMalformedBody):
		writeDetail(w, http.StatusBadRequest, "Malformed request body.")
	case errors.Is(err, services.ErrRefreshRequired):
		writeMessage(w, http.StatusBadRequest, "error", "Refresh token required")
	case errors.Is(err, services.ErrInvalidResetLink):
		writeMessage(w, http.StatusBadRequest, "error", "Invalid reset link")
	case errors.Is(err, services.ErrInvalidResetToken):
		writeMessage(w, http.StatusBadRequest, "error", "Invalid or expired token")
	case errors.Is(err, services.ErrSelfDeactivate):
		writeMessage(w, http.StatusBadRequest, "error", "You cannot deactivate your own account")
	case errors.Is(err, services.ErrOwnRoleChange):
		writeDetail(w, http.StatusForbidden, "You cannot change your own role")
	case errors.Is(err, common.ErrorUserDisabled):
		writeDetail(w, http.StatusUnauthorized, "User is inactive")
	case errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenRevoked),
		errors.Is(err, common.ErrInvalidToken):
		writeDetail(w, http.StatusUnauthorized, "Token is invalid or expired")
	case errors.Is(err, common.ErrorUnauthorized):
		writeDetail(w, http.StatusUnauthorized, detailNotAuthenticated)
	case errors.Is(err, common.ErrorForbidden):
		writeDetail(w, http.StatusForbidden, detailForbidden)
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, detailNotFound)
	default:
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeDetail(w, http.StatusInternalServerError, detailInternal)
	}
}
