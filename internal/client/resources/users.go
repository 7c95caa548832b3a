package resources

import (
	"context"
	"net/url"
	"strconv"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/apiclient"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/models"
)

var UserSchema = Schema{
	Name:      "users",
	Path:      "/users/",
	URLFields: []string{"linkedin_url", "github_url", "personal_website"},
}

// UserInput covers both profile edits and admin edits. Role and active
// state have dedicated actions.
type UserInput struct {
	Username        *string
	Email           *string
	FirstName       *string
	LastName        *string
	Bio             *string
	Skills          *string
	LinkedinURL     *string
	GithubURL       *string
	PersonalWebsite *string
	ProfilePhoto    *apiclient.File
}

func (in UserInput) Form() *apiclient.Form {
	return apiclient.NewForm().
		String("username", in.Username).
		String("email", in.Email).
		String("first_name", in.FirstName).
		String("last_name", in.LastName).
		String("bio", in.Bio).
		String("skills", in.Skills).
		String("linkedin_url", in.LinkedinURL).
		String("github_url", in.GithubURL).
		String("personal_website", in.PersonalWebsite).
		File("profile_photo", in.ProfilePhoto)
}

// Users is the user manager. The embedded Resource serves the admin-only
// list/get/update/delete; ListMine reports ErrUnsupported.
type Users struct {
	*Resource[models.User, UserInput]
}

func NewUsers(api API) *Users {
	return &Users{Resource: NewResource[models.User, UserInput](api, UserSchema)}
}

// Members lists active team members. search matches first/last name and bio;
// skill matches the skills list.
func (u *Users) Members(ctx context.Context, search, skill string) ([]models.User, error) {
	q := url.Values{}
	setIf(q, "search", search)
	setIf(q, "skill", skill)
	return u.list(ctx, "/users/members/", q)
}

func (u *Users) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := u.api.Get(ctx, "/profile/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) UpdateProfile(ctx context.Context, in UserInput) (*models.User, error) {
	form, err := u.form(in)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := u.api.Patch(ctx, "/profile/", form, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) action(ctx context.Context, id int64, name string, body apiclient.Body) (*models.UserActionResponse, error) {
	var resp models.UserActionResponse
	path := u.schema.Path + strconv.FormatInt(id, 10) + "/" + name + "/"
	if err := u.api.Post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ToggleActive flips the account's active flag.
func (u *Users) ToggleActive(ctx context.Context, id int64) (*models.UserActionResponse, error) {
	return u.action(ctx, id, "toggle_active", nil)
}

// ChangeRole asks the server to assign role. The value is not checked
// locally.
func (u *Users) ChangeRole(ctx context.Context, id int64, role string) (*models.UserActionResponse, error) {
	return u.action(ctx, id, "change_role", apiclient.JSON(map[string]string{"role": role}))
}

func (u *Users) Statistics(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	if err := u.api.Get(ctx, "/admin/statistics/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
