package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AllanOcung/Group-BSE25-1/internal/common"
	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/media"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/models"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/posts"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/projects"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/repomanager"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/users"
)

const profilePhotoPrefix = "profile_photos"

// ProfileInput carries a partial profile update; nil fields are left alone.
type ProfileInput struct {
	Username        *string
	Email           *string
	FirstName       *string
	LastName        *string
	Bio             *string
	Skills          *string
	LinkedinURL     *string
	GithubURL       *string
	PersonalWebsite *string
}

// AdminUserInput is what an admin may change on any account.
type AdminUserInput struct {
	ProfileInput
	Role     *string
	IsActive *bool
}

type UserService struct {
	repos  repomanager.RepositoryManager
	media  media.Store
	logger logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, store media.Store, l logging.Logger) *UserService {
	return &UserService{repos: m, media: store, logger: l.With("service", "users")}
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repos.Users().GetByID(ctx, id)
}

// Members lists active users, newest first, optionally filtered by a
// name/bio search and a skill.
func (s *UserService) Members(ctx context.Context, search, skill string) ([]models.User, error) {
	return s.repos.Users().List(ctx, users.ListFilter{
		ActiveOnly: true,
		Search:     strings.TrimSpace(search),
		Skill:      strings.TrimSpace(skill),
	})
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repos.Users().List(ctx, users.ListFilter{})
}

// applyProfile copies the set fields of in onto u and validates the result.
func applyProfile(u *models.User, in *ProfileInput, fe common.FieldErrors) {
	if in.Username != nil {
		u.Username = trimmed(in.Username)
		if u.Username == "" {
			fe.Add("username", msgRequired)
		}
		checkLen(fe, "username", u.Username, maxUsername)
	}
	if in.Email != nil {
		u.Email = trimmed(in.Email)
		if !validEmail(u.Email) {
			fe.Add("email", msgInvalidEmail)
		}
	}
	if in.FirstName != nil {
		u.FirstName = trimmed(in.FirstName)
		checkLen(fe, "first_name", u.FirstName, maxName)
	}
	if in.LastName != nil {
		u.LastName = trimmed(in.LastName)
		checkLen(fe, "last_name", u.LastName, maxName)
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
		checkLen(fe, "bio", u.Bio, maxLongText)
	}
	if in.Skills != nil {
		u.Skills = trimmed(in.Skills)
		checkLen(fe, "skills", u.Skills, maxLongText)
	}
	if in.LinkedinURL != nil {
		u.LinkedinURL = trimmed(in.LinkedinURL)
		checkURL(fe, "linkedin_url", u.LinkedinURL)
	}
	if in.GithubURL != nil {
		u.GithubURL = trimmed(in.GithubURL)
		checkURL(fe, "github_url", u.GithubURL)
	}
	if in.PersonalWebsite != nil {
		u.PersonalWebsite = trimmed(in.PersonalWebsite)
		checkURL(fe, "personal_website", u.PersonalWebsite)
	}
}

// UpdateProfile applies a partial update to the caller's own account.
// Role and activity are not part of the input.
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, in ProfileInput, photo *Upload) (*models.User, error) {
	u := *actor
	fe := common.FieldErrors{}
	applyProfile(&u, &in, fe)

	var contentType string
	if photo != nil {
		contentType = checkImage(fe, "profile_photo", photo)
	}
	if !fe.Empty() {
		return nil, fe
	}

	return s.save(ctx, &u, actor.ProfilePhoto, photo, contentType)
}

// save stores an optional new photo, writes u, and removes the replaced
// photo once the write succeeded.
func (s *UserService) save(ctx context.Context, u *models.User, oldPhoto string, photo *Upload, contentType string) (*models.User, error) {
	if photo != nil {
		key, err := storeImage(ctx, s.media, profilePhotoPrefix, photo, contentType)
		if err != nil {
			return nil, err
		}
		u.ProfilePhoto = key
	}

	updated, err := s.repos.Users().Update(ctx, u)
	if err != nil {
		if photo != nil {
			s.discard(ctx, u.ProfilePhoto)
		}
		return nil, uniqueFieldError(err)
	}
	if photo != nil {
		s.discard(ctx, oldPhoto)
	}
	return updated, nil
}

func (s *UserService) discard(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.media.Delete(ctx, key); err != nil {
			s.logger.Warn(ctx, "media delete failed", "key", key, "error", err)
		}
	}
}

// AdminUpdate edits any account. An admin cannot deactivate themselves.
func (s *UserService) AdminUpdate(ctx context.Context, actor *models.User, id int64, in AdminUserInput) (*models.User, error) {
	target, err := s.repos.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u := *target
	fe := common.FieldErrors{}
	applyProfile(&u, &in.ProfileInput, fe)
	if in.Role != nil {
		if !common.ValidRole(*in.Role) {
			fe.Add("role", fmt.Sprintf("%q is not a valid choice.", *in.Role))
		}
		u.Role = *in.Role
	}
	if in.IsActive != nil {
		if !*in.IsActive && target.ID == actor.ID {
			return nil, ErrSelfDeactivate
		}
		u.IsActive = *in.IsActive
	}
	if !fe.Empty() {
		return nil, fe
	}

	updated, err := s.save(ctx, &u, target.ProfilePhoto, nil, "")
	if err != nil {
		return nil, err
	}
	if !updated.IsActive && target.IsActive {
		s.signOut(ctx, updated.ID)
	}
	return updated, nil
}

func (s *UserService) signOut(ctx context.Context, id int64) {
	if err := s.repos.RefreshTokens().DeleteByUser(ctx, id); err != nil {
		s.logger.Warn(ctx, "refresh token cleanup failed", "user_id", id, "error", err)
	}
}

// ToggleActive flips is_active and returns the user with a status message.
func (s *UserService) ToggleActive(ctx context.Context, actor *models.User, id int64) (*models.User, string, error) {
	target, err := s.repos.Users().GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if target.ID == actor.ID {
		return nil, "", ErrSelfDeactivate
	}

	active := !target.IsActive
	updated, err := s.AdminUpdate(ctx, actor, id, AdminUserInput{IsActive: &active})
	if err != nil {
		return nil, "", err
	}

	state := "deactivated"
	if updated.IsActive {
		state = "activated"
	}
	s.logger.Info(ctx, "user "+state, "user_id", id, "by", actor.ID)
	return updated, fmt.Sprintf("User %s %s successfully", updated.Username, state), nil
}

// ChangeRole sets a user's role.
func (s *UserService) ChangeRole(ctx context.Context, actor *models.User, id int64, role string) (*models.User, string, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, "", common.FieldErrors{"role": {msgRequired}}
	}

	updated, err := s.AdminUpdate(ctx, actor, id, AdminUserInput{Role: &role})
	if err != nil {
		return nil, "", err
	}
	s.logger.Info(ctx, "role changed", "user_id", id, "role", role, "by", actor.ID)
	return updated, fmt.Sprintf("User %s role changed to %s", updated.Username, role), nil
}

// Delete removes an account with its content and tokens, then its images.
func (s *UserService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if id == actor.ID {
		return fmt.Errorf("you cannot delete your own account: %w", common.ErrorForbidden)
	}

	var keys []string
	err := s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		target, err := r.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		keys = append(keys, target.ProfilePhoto)

		ps, err := r.Projects().List(ctx, projects.ListFilter{OwnerID: id})
		if err != nil {
			return err
		}
		for _, p := range ps {
			keys = append(keys, p.Image)
		}
		pp, err := r.Posts().List(ctx, posts.ListFilter{AuthorID: id})
		if err != nil {
			return err
		}
		for _, p := range pp {
			keys = append(keys, p.CoverImage)
		}

		if err := r.RefreshTokens().DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := r.Projects().DeleteByOwner(ctx, id); err != nil {
			return err
		}
		if err := r.Posts().DeleteByAuthor(ctx, id); err != nil {
			return err
		}
		return r.Users().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.discard(ctx, keys...)
	s.logger.Info(ctx, "user deleted", "user_id", id, "by", actor.ID)
	return nil
}
