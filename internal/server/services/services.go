// Package services holds the server's business rules: account lifecycle,
// profile and user administration, projects, posts and statistics.
// Handlers translate HTTP to these calls; repositories only persist.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/cryptox"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/media"
)

// MaxUploadSize bounds a single uploaded image.
const MaxUploadSize = 5 << 20

// Field limits.
const (
	maxUsername = 150
	maxName     = 30
	maxLongText = 500
	maxTitle    = 255
	maxURL      = 200
)

// Messages shared with the API.
const (
	msgRequired     = "This field is required."
	msgInvalidEmail = "Enter a valid email address."
	msgInvalidURL   = "Enter a valid URL."
	msgInvalidImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

var (
	ErrRefreshRequired   = errors.New("refresh token required")
	ErrInvalidResetLink  = fmt.Errorf("invalid reset link: %w", common.ErrInvalidToken)
	ErrInvalidResetToken = fmt.Errorf("invalid or expired reset token: %w", common.ErrInvalidToken)
	ErrSelfDeactivate    = errors.New("you cannot deactivate your own account")
	ErrOwnRoleChange     = fmt.Errorf("you cannot change your own role: %w", common.ErrorForbidden)
)

// hashPassword is a seam so tests can use a cheap bcrypt cost.
var hashPassword = cryptox.HashPassword

// newRefreshToken returns the opaque refresh token handed to clients.
var newRefreshToken = func() (string, error) { return common.MakeRandHexString(32) }

// Upload is an image received with a multipart request.
type Upload struct {
	Filename string
	Data     []byte
}

func maxLenMsg(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}

func checkLen(fe common.FieldErrors, field, v string, n int) {
	if utf8.RuneCountInString(v) > n {
		fe.Add(field, maxLenMsg(n))
	}
}

func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}

// validURL accepts absolute http(s) URLs with a host.
func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func checkURL(fe common.FieldErrors, field, v string) {
	if v == "" {
		return
	}
	if !validURL(v) {
		fe.Add(field, msgInvalidURL)
		return
	}
	checkLen(fe, field, v, maxURL)
}

func checkPassword(fe common.FieldErrors, field, password string) {
	if password == "" {
		fe.Add(field, msgRequired)
		return
	}
	if utf8.RuneCountInString(password) < common.MinPasswordLength {
		fe.Add(field, fmt.Sprintf("This password is too short. It must contain at least %d characters.", common.MinPasswordLength))
	}
}

// trimmed returns the trimmed value of an optional field.
func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// checkImage validates an upload and returns its detected content type.
func checkImage(fe common.FieldErrors, field string, up *Upload) string {
	if len(up.Data) > MaxUploadSize {
		fe.Add(field, fmt.Sprintf("Image files must be at most %d MB.", MaxUploadSize>>20))
		return ""
	}
	ct := http.DetectContentType(up.Data)
	if !strings.HasPrefix(ct, "image/") {
		fe.Add(field, msgInvalidImage)
		return ""
	}
	return ct
}

// storeImage writes up to the media store under prefix and returns the key.
func storeImage(ctx context.Context, store media.Store, prefix string, up *Upload, contentType string) (string, error) {
	key := media.NewKey(prefix, up.Filename)
	if err := store.Put(ctx, key, media.Object{Data: up.Data, ContentType: contentType}); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return key, nil
}
