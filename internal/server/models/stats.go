package models

type UserStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Admins  int `json:"admins"`
	Members int `json:"members"`
	Viewers int `json:"viewers"`
}

type OwnerCount struct {
	OwnerUsername string `json:"owner__username"`
	Count         int    `json:"count"`
}

type AuthorCount struct {
	AuthorUsername string `json:"author__username"`
	Count          int    `json:"count"`
}

type ProjectStats struct {
	Total   int          `json:"total"`
	ByOwner []OwnerCount `json:"by_owner"`
}

type PostStats struct {
	Total     int           `json:"total"`
	Published int           `json:"published"`
	Draft     int           `json:"draft"`
	ByAuthor  []AuthorCount `json:"by_author"`
}

// Statistics is the admin dashboard aggregate.
type Statistics struct {
	Users    UserStats    `json:"users"`
	Projects ProjectStats `json:"projects"`
	Posts    PostStats    `json:"posts"`
}
