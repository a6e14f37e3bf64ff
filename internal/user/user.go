package user

import (
	"errors"
	"time"

	userDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/user"
)

// User is the profile served by the current-user endpoint. The
// password hash never serializes. Authorization decisions are made in
// the auth package, here the permission names are plain display data.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Department   string    `json:"department"`
	IsActive     bool      `json:"is_active"`
	Permissions  []string  `json:"permissions"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var ErrNotFound = errors.New("user not found")

// FromDataModel maps a persistence row to the profile shape.
// Permissions start empty so the field always serializes as a list.
func FromDataModel(dm *userDatamodel.User) *User {
	return &User{
		ID:           dm.ID,
		Email:        dm.Email,
		Name:         dm.Name,
		PasswordHash: dm.PasswordHash,
		Department:   dm.Department,
		IsActive:     dm.IsActive,
		Permissions:  []string{},
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
	}
}
