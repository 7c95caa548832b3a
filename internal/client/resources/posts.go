package resources

import (
	"net/url"
	"strconv"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/apiclient"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
)

var PostSchema = Schema{
	Name:     "posts",
	Path:     "/blog/posts/",
	MinePath: "/blog/posts/my_posts/",
}

type PostInput struct {
	Title       *string
	Content     *string
	Tags        *string
	IsPublished *bool
	CoverImage  *apiclient.File
}

func (in PostInput) Form() *apiclient.Form {
	return apiclient.NewForm().
		String("title", in.Title).
		String("content", in.Content).
		String("tags", in.Tags).
		Bool("is_published", in.IsPublished).
		File("cover_image", in.CoverImage)
}

type PostFilter struct {
	Search    string
	Tag       string
	Published *bool
}

func (f PostFilter) Values() url.Values {
	q := url.Values{}
	setIf(q, "search", f.Search)
	setIf(q, "tag", f.Tag)
	if f.Published != nil {
		q.Set("published", strconv.FormatBool(*f.Published))
	}
	return q
}

type Posts = Resource[models.Post, PostInput]

func NewPosts(api API) *Posts {
	return NewResource[models.Post, PostInput](api, PostSchema)
}
