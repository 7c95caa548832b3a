package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/apiclient"
	"github.com/AllanOcung/Group-BSE25-1/internal/filex"
)

// getSimpleText, getPassword and confirm are indirections over the input
// helpers so tests can script answers.
var (
	getSimpleText   = GetSimpleText
	getOptionalText = GetOptionalText
	getPassword     = GetPassword
	getMultiline    = GetMultiline
	confirm         = Confirm
	getYesNo        = GetYesNo
)

func (a *App) commands() *registry {
	reg := newRegistry(a.session.IsAuthenticated, a.session.IsAdmin, a.reportError)

	reg.add(command{name: "register", usage: "register", help: "create an account and log in", access: guestOnly, run: a.Register})
	reg.add(command{name: "login", usage: "login", help: "log in with email and password", access: guestOnly, run: a.Login})
	reg.add(command{name: "reset", usage: "reset", help: "reset a forgotten password", access: guestOnly, run: a.ResetPassword})
	reg.add(command{name: "logout", usage: "logout", help: "log out and forget stored tokens", access: loggedIn, run: a.Logout})
	reg.add(command{name: "whoami", usage: "whoami", help: "show the logged-in user", access: loggedIn, run: a.WhoAmI})
	reg.add(command{name: "refresh", usage: "refresh", help: "renew the access token", access: loggedIn, run: a.Refresh})

	reg.add(command{name: "profile", usage: "profile", help: "show your profile", access: loggedIn, run: a.Profile})
	reg.add(command{name: "editprofile", usage: "editprofile", help: "edit your profile", access: loggedIn, run: a.EditProfile})
	reg.add(command{name: "members", alias: []string{"team"}, usage: "members [search]", help: "browse the team directory", run: a.Members})

	reg.add(command{name: "projects", usage: "projects [search]", help: "list projects", run: a.ListProjects})
	reg.add(command{name: "project", usage: "project <id>", help: "show a project", run: a.ShowProject})
	reg.add(command{name: "myprojects", usage: "myprojects", help: "list your projects", access: loggedIn, run: a.MyProjects})
	reg.add(command{name: "addproject", usage: "addproject", help: "create a project", access: loggedIn, run: a.AddProject})
	reg.add(command{name: "editproject", usage: "editproject <id>", help: "edit a project", access: loggedIn, run: a.EditProject})
	reg.add(command{name: "delproject", usage: "delproject <id>", help: "delete a project", access: loggedIn, run: a.DeleteProject})

	reg.add(command{name: "posts", alias: []string{"blog"}, usage: "posts [search]", help: "list blog posts", run: a.ListPosts})
	reg.add(command{name: "post", usage: "post <id>", help: "show a blog post", run: a.ShowPost})
	reg.add(command{name: "myposts", usage: "myposts", help: "list your posts, drafts included", access: loggedIn, run: a.MyPosts})
	reg.add(command{name: "addpost", usage: "addpost", help: "write a blog post", access: loggedIn, run: a.AddPost})
	reg.add(command{name: "editpost", usage: "editpost <id>", help: "edit a blog post", access: loggedIn, run: a.EditPost})
	reg.add(command{name: "delpost", usage: "delpost <id>", help: "delete a blog post", access: loggedIn, run: a.DeletePost})

	reg.add(command{name: "overview", alias: []string{"dashboard"}, usage: "overview", help: "your projects and posts at a glance", access: loggedIn, run: a.Overview})

	reg.add(command{name: "admin", usage: "admin", help: "users and statistics", access: adminOnly, run: a.AdminPanel})
	reg.add(command{name: "users", usage: "users", help: "list all users", access: adminOnly, run: a.ListUsers})
	reg.add(command{name: "toggleuser", usage: "toggleuser <id>", help: "activate or deactivate a user", access: adminOnly, run: a.ToggleUser})
	reg.add(command{name: "setrole", usage: "setrole <id> <role>", help: "change a user's role", access: adminOnly, run: a.SetRole})
	reg.add(command{name: "deluser", usage: "deluser <id>", help: "delete a user", access: adminOnly, run: a.DeleteUser})
	reg.add(command{name: "stats", usage: "stats", help: "site statistics", access: adminOnly, run: a.Stats})

	return reg
}

// idArg takes the id from args or asks for it.
func (a *App) idArg(args []string, what string) (int64, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		s, err := getSimpleText(a.reader, fmt.Sprintf("Enter %s id", what), a.out)
		if err != nil {
			return 0, err
		}
		raw = s
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, &apiclient.ValidationError{Field: "id", Message: fmt.Sprintf("%q is not a valid %s id", raw, what)}
	}
	return id, nil
}

// askImage prompts for an optional image path and opens it. The returned
// close func is never nil.
func (a *App) askImage(prompt string) (*apiclient.File, func(), error) {
	noop := func() {}
	path, err := getSimpleText(a.reader, prompt+" (path, blank for none)", a.out)
	if err != nil || path == "" {
		return nil, noop, err
	}
	f, err := filex.OpenImage(path)
	if err != nil {
		return nil, noop, err
	}
	return &apiclient.File{Name: filepath.Base(path), Content: f}, func() { _ = f.Close() }, nil
}

// search joins free-form args into a single search term.
func search(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func (a *App) confirmed(question string) (bool, error) {
	ok, err := confirm(a.reader, question, a.out)
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
	}
	return ok, nil
}

func (a *App) call(ctx context.Context, fn func(ctx context.Context) error) error {
	reqCtx, cancel := a.requestCtx(ctx)
	defer cancel()
	return fn(reqCtx)
}
