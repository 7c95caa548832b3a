package cli

import (
	"context"
	"fmt"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/resources"
)

func (a *App) ListProjects(ctx context.Context, args []string) error {
	var list []models.Project
	err := a.call(ctx, func(ctx context.Context) (err error) {
		list, err = a.projects.List(ctx, resources.ProjectFilter{Search: search(args)})
		return err
	})
	if err != nil {
		return err
	}
	printProjects(a.out, list)
	return nil
}

func (a *App) ShowProject(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "project")
	if err != nil {
		return err
	}
	var p *models.Project
	err = a.call(ctx, func(ctx context.Context) (err error) {
		p, err = a.projects.Get(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	printProject(a.out, p)
	return nil
}

func (a *App) MyProjects(ctx context.Context, _ []string) error {
	var list []models.Project
	err := a.call(ctx, func(ctx context.Context) (err error) {
		list, err = a.projects.ListMine(ctx)
		return err
	})
	if err != nil {
		return err
	}
	printProjects(a.out, list)
	return nil
}

// projectForm prompts for every project field. With cur == nil all text
// fields are asked plainly (create); otherwise blank keeps the value.
func (a *App) projectForm(cur *models.Project) (resources.ProjectInput, func(), error) {
	var in resources.ProjectInput
	noop := func() {}

	var c models.Project
	if cur != nil {
		c = *cur
	}
	fields := []struct {
		prompt  string
		current string
		dst     **string
	}{
		{"Title", c.Title, &in.Title},
		{"Tech stack (comma separated)", c.TechStack, &in.TechStack},
		{"Demo link", models.Deref(c.DemoLink), &in.DemoLink},
		{"Source code link", models.Deref(c.SourceCode), &in.SourceCode},
	}
	for _, f := range fields {
		v, err := getOptionalText(a.reader, f.prompt, f.current, a.out)
		if err != nil {
			return in, noop, err
		}
		*f.dst = v
	}

	desc, err := getMultiline(a.reader, "Description", a.out)
	if err != nil {
		return in, noop, err
	}
	if desc != "" {
		in.Description = &desc
	}

	img, closeImg, err := a.askImage("Image")
	if err != nil {
		return in, noop, err
	}
	in.Image = img
	return in, closeImg, nil
}

func (a *App) AddProject(ctx context.Context, _ []string) error {
	in, done, err := a.projectForm(nil)
	defer done()
	if err != nil {
		return err
	}

	var p *models.Project
	err = a.call(ctx, func(ctx context.Context) (err error) {
		p, err = a.projects.Create(ctx, in)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Project %d created.\n", p.ID)
	return nil
}

func (a *App) EditProject(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "project")
	if err != nil {
		return err
	}

	var cur *models.Project
	err = a.call(ctx, func(ctx context.Context) (err error) {
		cur, err = a.projects.Get(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	in, done, err := a.projectForm(cur)
	defer done()
	if err != nil {
		return err
	}

	var p *models.Project
	err = a.call(ctx, func(ctx context.Context) (err error) {
		p, err = a.projects.Update(ctx, id, in)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Project %d updated.\n", p.ID)
	return nil
}

func (a *App) DeleteProject(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "project")
	if err != nil {
		return err
	}
	ok, err := a.confirmed(fmt.Sprintf("Delete project %d? This cannot be undone.", id))
	if err != nil || !ok {
		return err
	}

	if err := a.call(ctx, func(ctx context.Context) error { return a.projects.Delete(ctx, id) }); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Project %d deleted.\n", id)
	return nil
}
