package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/apiclient"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/resources"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/session"
)

const dateLayout = "2006-01-02"

// reportError prints err for the user. Raw details go to the log.
func (a *App) reportError(err error) {
	a.log.Debug(context.Background(), "command failed", "error", err)
	fmt.Fprintln(a.out, describeError(err))
}

func describeError(err error) string {
	var (
		ve     *apiclient.ValidationError
		apiErr *apiclient.APIError
	)
	switch {
	case errors.As(err, &ve):
		return fmt.Sprintf("Invalid %s: %s", strings.ReplaceAll(ve.Field, "_", " "), ve.Message)
	case errors.Is(err, apiclient.ErrUnauthorized):
		return "Your session has expired or the credentials were rejected. Please log in again."
	case errors.Is(err, apiclient.ErrForbidden):
		return "You do not have permission to do that."
	case errors.Is(err, apiclient.ErrNotFound):
		return "Not found."
	case errors.As(err, &apiErr):
		return describeAPIError(apiErr)
	case errors.Is(err, apiclient.ErrUnavailable):
		return "The server is unreachable. Check your connection and try again."
	case errors.Is(err, apiclient.ErrDecode):
		return "The server sent an unexpected response."
	case errors.Is(err, session.ErrNotAuthenticated):
		return "Please log in first."
	case errors.Is(err, resources.ErrUnsupported):
		return "That is not supported here."
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out."
	}
	return "Error: " + err.Error()
}

func describeAPIError(e *apiclient.APIError) string {
	var b strings.Builder
	if e.Detail != "" {
		b.WriteString(e.Detail)
	} else {
		fmt.Fprintf(&b, "Request failed (%d).", e.StatusCode)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		if k != "non_field_errors" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  %s: %s", k, strings.Join(e.Fields[k], " "))
	}
	return b.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func truncate(s string, n int) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func printUser(w io.Writer, u *models.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", u.DisplayName())
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	fmt.Fprintf(tw, "Active:\t%t\n", u.IsActive)
	fmt.Fprintf(tw, "Bio:\t%s\n", orDash(u.Bio))
	fmt.Fprintf(tw, "Skills:\t%s\n", orDash(strings.Join(u.SkillList(), ", ")))
	fmt.Fprintf(tw, "Photo:\t%s\n", orDash(models.Deref(u.ProfilePhoto)))
	fmt.Fprintf(tw, "LinkedIn:\t%s\n", orDash(u.LinkedinURL))
	fmt.Fprintf(tw, "GitHub:\t%s\n", orDash(u.GithubURL))
	fmt.Fprintf(tw, "Website:\t%s\n", orDash(u.PersonalWebsite))
	fmt.Fprintf(tw, "Joined:\t%s\n", formatDate(u.DateJoined))
	_ = tw.Flush()
}

func printUsers(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tUSERNAME\tROLE\tACTIVE\tSKILLS")
	for i := range users {
		u := &users[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%s\n", u.ID, u.DisplayName(), u.Username, u.Role, u.IsActive, truncate(u.Skills, 40))
	}
	_ = tw.Flush()
}

func printProject(w io.Writer, p *models.Project) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", p.Title)
	fmt.Fprintf(tw, "Owner:\t%s\n", orDash(p.OwnerUsername))
	fmt.Fprintf(tw, "Tech:\t%s\n", orDash(strings.Join(p.TechList(), ", ")))
	fmt.Fprintf(tw, "Demo:\t%s\n", orDash(models.Deref(p.DemoLink)))
	fmt.Fprintf(tw, "Source:\t%s\n", orDash(models.Deref(p.SourceCode)))
	fmt.Fprintf(tw, "Image:\t%s\n", orDash(models.Deref(p.Image)))
	fmt.Fprintf(tw, "Created:\t%s\n", formatDate(p.CreatedAt))
	fmt.Fprintf(tw, "Updated:\t%s\n", formatDate(p.UpdatedAt))
	_ = tw.Flush()
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Description)
}

func printProjects(w io.Writer, projects []models.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tOWNER\tTECH\tCREATED")
	for i := range projects {
		p := &projects[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, truncate(p.Title, 40), p.OwnerUsername, truncate(p.TechStack, 30), formatDate(p.CreatedAt))
	}
	_ = tw.Flush()
}

func printPost(w io.Writer, p *models.Post) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", p.Title)
	fmt.Fprintf(tw, "Author:\t%s\n", orDash(p.AuthorUsername))
	fmt.Fprintf(tw, "Status:\t%s\n", p.Status())
	fmt.Fprintf(tw, "Tags:\t%s\n", orDash(strings.Join(p.TagList(), ", ")))
	fmt.Fprintf(tw, "Cover:\t%s\n", orDash(models.Deref(p.CoverImage)))
	fmt.Fprintf(tw, "Created:\t%s\n", formatDate(p.CreatedAt))
	_ = tw.Flush()
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Content)
}

func printPosts(w io.Writer, posts []models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tSTATUS\tTAGS\tCREATED")
	for i := range posts {
		p := &posts[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", p.ID, truncate(p.Title, 40), p.AuthorUsername, p.Status(), truncate(p.Tags, 30), formatDate(p.CreatedAt))
	}
	_ = tw.Flush()
}

func printStats(w io.Writer, s *models.AdminStats) {
	fmt.Fprintf(w, "Users:    %d total, %d active (%d admins, %d members, %d viewers)\n",
		s.Users.Total, s.Users.Active, s.Users.Admins, s.Users.Members, s.Users.Viewers)
	fmt.Fprintf(w, "Projects: %d total\n", s.Projects.Total)
	for _, o := range s.Projects.ByOwner {
		fmt.Fprintf(w, "          %-20s %d\n", o.OwnerUsername, o.Count)
	}
	fmt.Fprintf(w, "Posts:    %d total, %d published, %d drafts\n", s.Posts.Total, s.Posts.Published, s.Posts.Draft)
	for _, a := range s.Posts.ByAuthor {
		fmt.Fprintf(w, "          %-20s %d\n", a.AuthorUsername, a.Count)
	}
}
