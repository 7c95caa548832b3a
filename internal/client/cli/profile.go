package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/resources"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/session"
)

func (a *App) Profile(ctx context.Context, _ []string) error {
	var u *models.User
	err := a.call(ctx, func(ctx context.Context) (err error) {
		u, err = a.users.Profile(ctx)
		return err
	})
	if err != nil {
		return err
	}
	a.session.ApplyUser(u)
	printUser(a.out, u)
	return nil
}

// EditProfile walks through the editable profile fields. Blank answers
// keep the current value.
func (a *App) EditProfile(ctx context.Context, _ []string) error {
	cur := a.session.CurrentUser()
	if cur == nil {
		return session.ErrNotAuthenticated
	}

	var in resources.UserInput
	fields := []struct {
		prompt  string
		current string
		dst     **string
	}{
		{"First name", cur.FirstName, &in.FirstName},
		{"Last name", cur.LastName, &in.LastName},
		{"Bio", cur.Bio, &in.Bio},
		{"Skills (comma separated)", cur.Skills, &in.Skills},
		{"LinkedIn URL", cur.LinkedinURL, &in.LinkedinURL},
		{"GitHub URL", cur.GithubURL, &in.GithubURL},
		{"Personal website", cur.PersonalWebsite, &in.PersonalWebsite},
	}
	for _, f := range fields {
		v, err := getOptionalText(a.reader, f.prompt, f.current, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	photo, closePhoto, err := a.askImage("Profile photo")
	if err != nil {
		return err
	}
	defer closePhoto()
	in.ProfilePhoto = photo

	var u *models.User
	err = a.call(ctx, func(ctx context.Context) (err error) {
		u, err = a.session.UpdateProfile(ctx, in)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	printUser(a.out, u)
	return nil
}

// Members lists the team directory. An argument starting with "skill:"
// filters by skill instead of searching.
func (a *App) Members(ctx context.Context, args []string) error {
	term, skill := search(args), ""
	if len(args) == 1 {
		if s, ok := strings.CutPrefix(args[0], "skill:"); ok {
			term, skill = "", s
		}
	}

	var list []models.User
	err := a.call(ctx, func(ctx context.Context) (err error) {
		list, err = a.users.Members(ctx, term, skill)
		return err
	})
	if err != nil {
		return err
	}
	printUsers(a.out, list)
	return nil
}
