package resources

import (
	"net/url"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/apiclient"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
)

var ProjectSchema = Schema{
	Name:      "projects",
	Path:      "/blog/projects/",
	MinePath:  "/blog/projects/my_projects/",
	URLFields: []string{"demo_link", "source_code"},
}

type ProjectInput struct {
	Title       *string
	Description *string
	TechStack   *string
	DemoLink    *string
	SourceCode  *string
	Image       *apiclient.File
}

func (in ProjectInput) Form() *apiclient.Form {
	return apiclient.NewForm().
		String("title", in.Title).
		String("description", in.Description).
		String("tech_stack", in.TechStack).
		String("demo_link", in.DemoLink).
		String("source_code", in.SourceCode).
		File("image", in.Image)
}

type ProjectFilter struct {
	Search string
	Tech   string
}

func (f ProjectFilter) Values() url.Values {
	q := url.Values{}
	setIf(q, "search", f.Search)
	setIf(q, "tech", f.Tech)
	return q
}

type Projects = Resource[models.Project, ProjectInput]

func NewProjects(api API) *Projects {
	return NewResource[models.Project, ProjectInput](api, ProjectSchema)
}
