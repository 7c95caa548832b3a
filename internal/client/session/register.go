package session

import (
	"strings"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/apiclient"
	"github.com/AllanOcung/Group-BSE25-1/internal/common"
)

const (
	msgPasswordMismatch = "Passwords do not match"
	msgPasswordTooShort = "Password must be at least 8 characters long"
	msgEmailRequired    = "Email is required"
)

type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	Bio             string
	Skills          string
}

// Validate runs the checks that need no server round trip.
func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Email) == "" {
		return &apiclient.ValidationError{Field: "email", Message: msgEmailRequired}
	}
	if in.Password != in.PasswordConfirm {
		return &apiclient.ValidationError{Field: "password_confirm", Message: msgPasswordMismatch}
	}
	if len(in.Password) < common.MinPasswordLength {
		return &apiclient.ValidationError{Field: "password", Message: msgPasswordTooShort}
	}
	return nil
}

// username falls back to the local part of the email address.
func (in RegisterInput) username() string {
	if u := strings.TrimSpace(in.Username); u != "" {
		return u
	}
	local, _, _ := strings.Cut(strings.TrimSpace(in.Email), "@")
	return local
}

func (in RegisterInput) payload() map[string]string {
	p := map[string]string{
		"email":            strings.TrimSpace(in.Email),
		"username":         in.username(),
		"password":         in.Password,
		"password_confirm": in.PasswordConfirm,
		"first_name":       strings.TrimSpace(in.FirstName),
		"last_name":        strings.TrimSpace(in.LastName),
	}
	if v := strings.TrimSpace(in.Bio); v != "" {
		p["bio"] = v
	}
	if v := strings.TrimSpace(in.Skills); v != "" {
		p["skills"] = v
	}
	return p
}
