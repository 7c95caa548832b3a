package cli

import (
	"context"
	"fmt"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/session"
	"github.com/AllanOcung/Group-BSE25-1/internal/common"
)

// Register asks for the account details and creates the account. Local
// validation errors are reported before anything is sent.
func (a *App) Register(ctx context.Context, _ []string) error {
	var in session.RegisterInput
	var err error

	if in.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if in.Username, err = getSimpleText(a.reader, "Username (blank uses the part before @)", a.out); err != nil {
		return err
	}
	if in.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if in.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirmation, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	in.Password, in.PasswordConfirm = string(password), string(confirmation)

	err = a.call(ctx, func(ctx context.Context) error {
		_, err := a.session.Register(ctx, in)
		return err
	})
	if err != nil {
		return err
	}

	u := a.session.CurrentUser()
	fmt.Fprintf(a.out, "Welcome, %s! You are logged in as %s.\n", u.DisplayName(), u.Role)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.call(ctx, func(ctx context.Context) error {
		_, err := a.session.Login(ctx, email, string(password))
		return err
	})
	if err != nil {
		return err
	}

	u := a.session.CurrentUser()
	fmt.Fprintf(a.out, "Logged in as %s (%s).\n", u.DisplayName(), u.Role)
	return nil
}

// Logout always ends the local session, whatever the server says.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.call(ctx, a.session.Logout); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(_ context.Context, _ []string) error {
	u := a.session.CurrentUser()
	if u == nil {
		return session.ErrNotAuthenticated
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", u.DisplayName(), u.Email, u.Role)
	return nil
}

func (a *App) Refresh(ctx context.Context, _ []string) error {
	if err := a.call(ctx, a.session.Refresh); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Access token renewed.")
	return nil
}

// ResetPassword runs the two-step reset: request a token for an email,
// then set the new password with it.
func (a *App) ResetPassword(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	var uid, token string
	err = a.call(ctx, func(ctx context.Context) error {
		resp, err := a.session.RequestPasswordReset(ctx, email)
		if err == nil {
			fmt.Fprintln(a.out, resp.Message)
			uid, token = resp.UID, resp.Token
		}
		return err
	})
	if err != nil {
		return err
	}

	if uid == "" {
		if uid, err = getSimpleText(a.reader, "Reset uid (from the email)", a.out); err != nil {
			return err
		}
		if token, err = getSimpleText(a.reader, "Reset token (from the email)", a.out); err != nil {
			return err
		}
	}

	password, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.call(ctx, func(ctx context.Context) error {
		return a.session.ConfirmPasswordReset(ctx, uid, token, string(password))
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed. You can log in now.")
	return nil
}
