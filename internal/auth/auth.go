package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Permission names granted to users. The admin permission implies
// every other one.
const (
	PermissionViewAssignments   = "view_assignments"
	PermissionManageAssignments = "manage_assignments"
	PermissionManageAssets      = "manage_assets"
	PermissionManageEmployees   = "manage_employees"
	PermissionExportData        = "export_data"
	PermissionImportData        = "import_data"
	PermissionViewAudit         = "view_audit"
	PermissionAdmin             = "admin"
)

// User is the authenticated principal carried through the request
// context.
type User struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions,omitempty"`
}

func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (u *User) HasAnyPermission(permissions []string) bool {
	for _, userPerm := range u.Permissions {
		for _, requiredPerm := range permissions {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasPermission(PermissionAdmin)
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

// AuthTokens is the pair returned by a successful login or refresh.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrForbidden          = errors.New("forbidden")
)
