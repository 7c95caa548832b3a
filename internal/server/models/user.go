// Package models defines server-side data models persisted in the database.
package models

import (
	"strings"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
)

// User is an account. Email is the login; Role is one of the common.Role*
// constants. ProfilePhoto holds a media key, not a URL.
type User struct {
	ID              int64
	Username        string
	Email           string
	PasswordHash    []byte
	FirstName       string
	LastName        string
	Bio             string
	Skills          string
	ProfilePhoto    string
	LinkedinURL     string
	GithubURL       string
	PersonalWebsite string
	Role            string
	IsActive        bool
	DateJoined      time.Time
	LastLogin       *time.Time
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsAdmin() bool {
	return u.Role == common.RoleAdmin
}

// CanCreateContent reports whether u may create projects and posts.
func (u *User) CanCreateContent() bool {
	return u.Role == common.RoleAdmin || u.Role == common.RoleMember
}

// CanEdit reports whether u may modify content owned by ownerID.
func (u *User) CanEdit(ownerID int64) bool {
	return u.ID == ownerID || u.IsAdmin()
}

// SplitList turns a comma separated field into trimmed, non-empty items.
func SplitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
