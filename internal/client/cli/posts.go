package cli

import (
	"context"
	"fmt"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/resources"
)

func (a *App) ListPosts(ctx context.Context, args []string) error {
	var list []models.Post
	err := a.call(ctx, func(ctx context.Context) (err error) {
		list, err = a.posts.List(ctx, resources.PostFilter{Search: search(args)})
		return err
	})
	if err != nil {
		return err
	}
	printPosts(a.out, list)
	return nil
}

func (a *App) ShowPost(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "post")
	if err != nil {
		return err
	}
	var p *models.Post
	err = a.call(ctx, func(ctx context.Context) (err error) {
		p, err = a.posts.Get(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	printPost(a.out, p)
	return nil
}

func (a *App) MyPosts(ctx context.Context, _ []string) error {
	var list []models.Post
	err := a.call(ctx, func(ctx context.Context) (err error) {
		list, err = a.posts.ListMine(ctx)
		return err
	})
	if err != nil {
		return err
	}
	printPosts(a.out, list)
	return nil
}

func (a *App) postForm(cur *models.Post) (resources.PostInput, func(), error) {
	var in resources.PostInput
	noop := func() {}

	var c models.Post
	if cur != nil {
		c = *cur
	} else {
		c.IsPublished = true
	}

	title, err := getOptionalText(a.reader, "Title", c.Title, a.out)
	if err != nil {
		return in, noop, err
	}
	in.Title = title

	tags, err := getOptionalText(a.reader, "Tags (comma separated)", c.Tags, a.out)
	if err != nil {
		return in, noop, err
	}
	in.Tags = tags

	published, err := getYesNo(a.reader, "Published", c.IsPublished, a.out)
	if err != nil {
		return in, noop, err
	}
	in.IsPublished = published

	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return in, noop, err
	}
	if content != "" {
		in.Content = &content
	}

	img, closeImg, err := a.askImage("Cover image")
	if err != nil {
		return in, noop, err
	}
	in.CoverImage = img
	return in, closeImg, nil
}

func (a *App) AddPost(ctx context.Context, _ []string) error {
	in, done, err := a.postForm(nil)
	defer done()
	if err != nil {
		return err
	}

	var p *models.Post
	err = a.call(ctx, func(ctx context.Context) (err error) {
		p, err = a.posts.Create(ctx, in)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %d created (%s).\n", p.ID, p.Status())
	return nil
}

func (a *App) EditPost(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "post")
	if err != nil {
		return err
	}

	var cur *models.Post
	err = a.call(ctx, func(ctx context.Context) (err error) {
		cur, err = a.posts.Get(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	in, done, err := a.postForm(cur)
	defer done()
	if err != nil {
		return err
	}

	var p *models.Post
	err = a.call(ctx, func(ctx context.Context) (err error) {
		p, err = a.posts.Update(ctx, id, in)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %d updated (%s).\n", p.ID, p.Status())
	return nil
}

func (a *App) DeletePost(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "post")
	if err != nil {
		return err
	}
	ok, err := a.confirmed(fmt.Sprintf("Delete post %d? This cannot be undone.", id))
	if err != nil || !ok {
		return err
	}

	if err := a.call(ctx, func(ctx context.Context) error { return a.posts.Delete(ctx, id) }); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Post %d deleted.\n", id)
	return nil
}
