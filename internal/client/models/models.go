// Package models holds the data transfer objects exchanged between the CLI
// and the portfolio API.
package models

import (
	"strings"
	"time"
)

// User is the public representation of an account as returned by the API.
// Role is assigned by the server; the client never changes it locally.
type User struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	FullName        string    `json:"full_name"`
	Bio             string    `json:"bio"`
	Skills          string    `json:"skills"`
	ProfilePhoto    *string   `json:"profile_photo"`
	LinkedinURL     string    `json:"linkedin_url"`
	GithubURL       string    `json:"github_url"`
	PersonalWebsite string    `json:"personal_website"`
	Role            string    `json:"role"`
	IsActive        bool      `json:"is_active"`
	DateJoined      time.Time `json:"date_joined"`
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	if n := strings.TrimSpace(u.FullName); n != "" {
		return n
	}
	if n := strings.TrimSpace(u.FirstName + " " + u.LastName); n != "" {
		return n
	}
	return u.Username
}

func (u *User) SkillList() []string {
	return SplitList(u.Skills)
}

type Project struct {
	ID            int64     `json:"id"`
	Owner         int64     `json:"owner"`
	OwnerUsername string    `json:"owner_username"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TechStack     string    `json:"tech_stack"`
	DemoLink      *string   `json:"demo_link"`
	SourceCode    *string   `json:"source_code"`
	Image         *string   `json:"image"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *Project) TechList() []string {
	return SplitList(p.TechStack)
}

type Post struct {
	ID             int64     `json:"id"`
	Author         int64     `json:"author"`
	AuthorUsername string    `json:"author_username"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Excerpt        string    `json:"excerpt,omitempty"`
	CoverImage     *string   `json:"cover_image"`
	Tags           string    `json:"tags"`
	IsPublished    bool      `json:"is_published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Post) TagList() []string {
	return SplitList(p.Tags)
}

// Status renders the publication state the way listings show it.
func (p *Post) Status() string {
	if p.IsPublished {
		return "published"
	}
	return "draft"
}

// SplitList splits a comma-delimited field into trimmed, non-empty items.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
