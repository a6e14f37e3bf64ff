package auth

import "strings"

// LoginDTO carries the credentials presented at login.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenDTO carries the refresh token presented for rotation.
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate rejects blank credentials before any repository lookup.
// Passwords are not trimmed, leading or trailing spaces are part of
// the secret.
func (d LoginDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if strings.TrimSpace(d.RefreshToken) == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}
