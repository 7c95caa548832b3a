package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
)

type userResponse struct {
	ID              int64      `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	FullName        string     `json:"full_name"`
	Bio             string     `json:"bio"`
	Skills          string     `json:"skills"`
	SkillsList      []string   `json:"skills_list"`
	ProfilePhoto    *string    `json:"profile_photo"`
	LinkedinURL     string     `json:"linkedin_url"`
	GithubURL       string     `json:"github_url"`
	PersonalWebsite string     `json:"personal_website"`
	Role            string     `json:"role"`
	IsActive        bool       `json:"is_active"`
	DateJoined      time.Time  `json:"date_joined"`
	LastLogin       *time.Time `json:"last_login"`
}

type projectResponse struct {
	ID            int64     `json:"id"`
	Owner         int64     `json:"owner"`
	OwnerUsername string    `json:"owner_username"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TechStack     string    `json:"tech_stack"`
	TechStackList []string  `json:"tech_stack_list"`
	DemoLink      *string   `json:"demo_link"`
	SourceCode    *string   `json:"source_code"`
	Image         *string   `json:"image"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type postResponse struct {
	ID             int64     `json:"id"`
	Author         int64     `json:"author"`
	AuthorUsername string    `json:"author_username"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Excerpt        string    `json:"excerpt"`
	CoverImage     *string   `json:"cover_image"`
	Tags           string    `json:"tags"`
	TagsList       []string  `json:"tags_list"`
	IsPublished    bool      `json:"is_published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type tokensResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// presenter renders models for one request; media keys become absolute
// URLs on the request's host.
type presenter struct {
	base string
}

func newPresenter(r *http.Request) presenter {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = strings.ToLower(p)
	}
	return presenter{base: scheme + "://" + r.Host + mediaPrefix}
}

func (p presenter) media(key string) *string {
	if key == "" {
		return nil
	}
	u := p.base + key
	return &u
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (p presenter) user(u *models.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		FullName:        u.FullName(),
		Bio:             u.Bio,
		Skills:          u.Skills,
		SkillsList:      models.SplitList(u.Skills),
		ProfilePhoto:    p.media(u.ProfilePhoto),
		LinkedinURL:     u.LinkedinURL,
		GithubURL:       u.GithubURL,
		PersonalWebsite: u.PersonalWebsite,
		Role:            u.Role,
		IsActive:        u.IsActive,
		DateJoined:      u.DateJoined,
		LastLogin:       u.LastLogin,
	}
}

func (p presenter) users(list []models.User) []userResponse {
	out := make([]userResponse, 0, len(list))
	for i := range list {
		out = append(out, p.user(&list[i]))
	}
	return out
}

func (p presenter) project(pr *models.Project) projectResponse {
	return projectResponse{
		ID:            pr.ID,
		Owner:         pr.OwnerID,
		OwnerUsername: pr.OwnerUsername,
		Title:         pr.Title,
		Description:   pr.Description,
		TechStack:     pr.TechStack,
		TechStackList: models.SplitList(pr.TechStack),
		DemoLink:      optional(pr.DemoLink),
		SourceCode:    optional(pr.SourceCode),
		Image:         p.media(pr.Image),
		CreatedAt:     pr.CreatedAt,
		UpdatedAt:     pr.UpdatedAt,
	}
}

func (p presenter) projects(list []models.Project) []projectResponse {
	out := make([]projectResponse, 0, len(list))
	for i := range list {
		out = append(out, p.project(&list[i]))
	}
	return out
}

func (p presenter) post(po *models.Post) postResponse {
	return postResponse{
		ID:             po.ID,
		Author:         po.AuthorID,
		AuthorUsername: po.AuthorUsername,
		Title:          po.Title,
		Content:        po.Content,
		Excerpt:        po.Excerpt(),
		CoverImage:     p.media(po.CoverImage),
		Tags:           po.Tags,
		TagsList:       models.SplitList(po.Tags),
		IsPublished:    po.IsPublished,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	}
}

func (p presenter) posts(list []models.Post) []postResponse {
	out := make([]postResponse, 0, len(list))
	for i := range list {
		out = append(out, p.post(&list[i]))
	}
	return out
}
