package httpapi

import (
	"errors"
	"net/http"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/services"
)

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, pair, err := h.auth.Register(r.Context(), services.RegisterInput{
		Username:        f.value("username"),
		Email:           f.value("email"),
		Password:        f.value("password"),
		PasswordConfirm: f.value("password_confirm"),
		FirstName:       f.value("first_name"),
		LastName:        f.value("last_name"),
		Bio:             f.value("bio"),
		Skills:          f.value("skills"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":    newPresenter(r).user(user),
		"tokens":  tokensResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken},
		"message": "Registration successful",
	})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, pair, err := h.auth.Login(r.Context(), f.value("email"), f.value("password"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tokens := tokensResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":    newPresenter(r).user(user),
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
		"tokens":  tokens,
		"message": "Login successful",
	})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.auth.Logout(r.Context(), currentClaims(r), f.value("refresh"))
	switch {
	case err == nil:
		writeMessage(w, http.StatusOK, "message", "Logout successful")
	case errors.Is(err, common.ErrInvalidToken):
		writeMessage(w, http.StatusBadRequest, "error", "Invalid token")
	default:
		h.writeError(w, r, err)
	}
}

func (h *handlers) refresh(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	pair, err := h.auth.Refresh(r.Context(), f.value("refresh"))
	if errors.Is(err, services.ErrRefreshRequired) {
		writeJSON(w, http.StatusBadRequest, common.FieldErrors{"refresh": {"This field is required."}})
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokensResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken})
}

func (h *handlers) passwordReset(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	ticket, err := h.auth.RequestPasswordReset(r.Context(), f.value("email"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body := map[string]string{"message": "Password reset email sent"}
	if ticket != nil {
		body["uid"] = ticket.UID
		body["token"] = ticket.Token
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *handlers) passwordResetConfirm(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.auth.ConfirmPasswordReset(r.Context(), services.ResetConfirmInput{
		UID:                f.value("uid"),
		Token:              f.value("token"),
		NewPassword:        f.value("new_password"),
		NewPasswordConfirm: f.value("new_password_confirm"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "message", "Password reset successful")
}
