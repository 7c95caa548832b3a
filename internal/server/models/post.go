package models

import "time"

// ExcerptLength is the number of runes of content shown in listings.
const ExcerptLength = 200

type Post struct {
	ID             int64
	AuthorID       int64
	AuthorUsername string
	Title          string
	Content        string
	CoverImage     string
	Tags           string
	IsPublished    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Excerpt returns the first ExcerptLength runes of the content, with "..."
// appended when something was cut.
func (p *Post) Excerpt() string {
	r := []rune(p.Content)
	if len(r) <= ExcerptLength {
		return p.Content
	}
	return string(r[:ExcerptLength]) + "..."
}
