package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	userDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/user"
	"github.com/minjae-dev/asset-management/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.First(&dm, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetPermissions(userID int64) ([]string, error) {
	var names []string
	err := r.db.
		Raw(`SELECT p.name FROM permissions p
			JOIN user_permissions up ON up.permission_id = p.id
			WHERE up.user_id = ?
			ORDER BY p.name`, userID).
		Scan(&names).Error
	if err != nil {
		return nil, fmt.Errorf("get user permissions: %w", err)
	}
	return names, nil
}
