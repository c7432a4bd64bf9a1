package http

import "github.com/radtech/authd/internal/auth/domain"

// userInfo is the public projection of an account. The password hash and
// both OTP pairs never appear here. The verified flag is a pointer so the
// register response, which has never included it, can leave it out.
type userInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified *bool  `json:"isAccountVerified,omitempty"`
}

func publicUser(u domain.User) userInfo {
	v := u.Verified
	return userInfo{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Verified: &v,
	}
}

func registeredUser(u domain.User) userInfo {
	return userInfo{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

type userResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	User    userInfo `json:"user"`
}

type healthChecks struct {
	Database string `json:"database"`
}

type healthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *healthChecks `json:"checks,omitempty"`
}
