package cli

import (
	"context"
	"fmt"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/resources"
)

// Overview shows the caller's projects and posts, fetched in parallel.
func (a *App) Overview(ctx context.Context, _ []string) error {
	var o *resources.Overview
	err := a.call(ctx, func(ctx context.Context) (err error) {
		o, err = resources.MyOverview(ctx, a.projects, a.posts)
		return err
	})
	if err != nil {
		return err
	}

	published := 0
	for _, p := range o.Posts {
		if p.IsPublished {
			published++
		}
	}
	fmt.Fprintf(a.out, "You have %d projects and %d posts (%d published, %d drafts).\n",
		len(o.Projects), len(o.Posts), published, len(o.Posts)-published)
	fmt.Fprintln(a.out)
	printProjects(a.out, o.Projects)
	fmt.Fprintln(a.out)
	printPosts(a.out, o.Posts)
	return nil
}

// AdminPanel loads users and statistics together, like the web dashboard.
func (a *App) AdminPanel(ctx context.Context, _ []string) error {
	var d *resources.AdminDashboard
	err := a.call(ctx, func(ctx context.Context) (err error) {
		d, err = resources.Dashboard(ctx, a.users)
		return err
	})
	if err != nil {
		return err
	}
	printStats(a.out, d.Stats)
	fmt.Fprintln(a.out)
	printUsers(a.out, d.Users)
	return nil
}

func (a *App) ListUsers(ctx context.Context, _ []string) error {
	var list []models.User
	err := a.call(ctx, func(ctx context.Context) (err error) {
		list, err = a.users.List(ctx, nil)
		return err
	})
	if err != nil {
		return err
	}
	printUsers(a.out, list)
	return nil
}

func (a *App) Stats(ctx context.Context, _ []string) error {
	var s *models.AdminStats
	err := a.call(ctx, func(ctx context.Context) (err error) {
		s, err = a.users.Statistics(ctx)
		return err
	})
	if err != nil {
		return err
	}
	printStats(a.out, s)
	return nil
}

func (a *App) ToggleUser(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "user")
	if err != nil {
		return err
	}
	ok, err := a.confirmed(fmt.Sprintf("Toggle the active status of user %d?", id))
	if err != nil || !ok {
		return err
	}

	var resp *models.UserActionResponse
	err = a.call(ctx, func(ctx context.Context) (err error) {
		resp, err = a.users.ToggleActive(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	a.session.ApplyUser(&resp.User)
	fmt.Fprintln(a.out, resp.Message)
	return nil
}

// SetRole changes a user's role. Changing your own role takes effect in
// this session immediately.
func (a *App) SetRole(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "user")
	if err != nil {
		return err
	}
	var role string
	if len(args) > 1 {
		role = args[1]
	} else if role, err = getSimpleText(a.reader, "New role (admin, member, viewer)", a.out); err != nil {
		return err
	}

	ok, err := a.confirmed(fmt.Sprintf("Change the role of user %d to %q?", id, role))
	if err != nil || !ok {
		return err
	}

	var resp *models.UserActionResponse
	err = a.call(ctx, func(ctx context.Context) (err error) {
		resp, err = a.users.ChangeRole(ctx, id, role)
		return err
	})
	if err != nil {
		return err
	}
	if a.session.ApplyUser(&resp.User) && !a.session.IsAdmin() {
		fmt.Fprintln(a.out, "Note: you no longer have admin privileges.")
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}

func (a *App) DeleteUser(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "user")
	if err != nil {
		return err
	}
	ok, err := a.confirmed(fmt.Sprintf("Delete user %d and all their content? This cannot be undone.", id))
	if err != nil || !ok {
		return err
	}

	if err := a.call(ctx, func(ctx context.Context) error { return a.users.Delete(ctx, id) }); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %d deleted.\n", id)
	return nil
}
