package models

// TokenPair is a JWT access token plus the refresh token it was issued with.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginResponse is the body of a successful POST /auth/login/.
type LoginResponse struct {
	User    User   `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Message string `json:"message"`
}

func (r *LoginResponse) Tokens() TokenPair {
	return TokenPair{Access: r.Access, Refresh: r.Refresh}
}

// RegisterResponse is the body of a successful POST /auth/register/.
type RegisterResponse struct {
	User    User      `json:"user"`
	Tokens  TokenPair `json:"tokens"`
	Message string    `json:"message"`
}

// UserActionResponse is returned by the admin toggle_active and
// change_role actions.
type UserActionResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// PasswordResetResponse carries the reset credentials the server hands out
// in development deployments. Both fields are empty for unknown emails.
type PasswordResetResponse struct {
	Message string `json:"message"`
	UID     string `json:"uid,omitempty"`
	Token   string `json:"token,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
