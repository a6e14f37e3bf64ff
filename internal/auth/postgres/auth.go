package auth

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/minjae-dev/asset-management/internal/auth"
)

var errUserNotFound = errors.New("user not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// GetPasswordForEmail returns the stored hash and user ID for an
// active account. Inactive accounts are treated as unknown.
func (r *Repository) GetPasswordForEmail(email string) (string, string, error) {
	var passwordHash string
	var userID string
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", "", errUserNotFound
		}
		return "", "", err
	}
	return passwordHash, userID, nil
}

// GetUserWithPermissions loads the principal attached to validated
// tokens. Permission names come back sorted so authorization logs
// stay stable.
func (r *Repository) GetUserWithPermissions(userID int64) (*auth.User, error) {
	var user auth.User

	query := `SELECT id, email FROM users WHERE id = ? AND is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email); err != nil {
		if err == sql.ErrNoRows {
			return nil, errUserNotFound
		}
		return nil, err
	}

	permQuery := `SELECT p.name
	             FROM permissions p
	             JOIN user_permissions up ON p.id = up.permission_id
	             WHERE up.user_id = ?
	             ORDER BY p.name`

	rows, err := r.db.Raw(permQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var permName string
		if err := rows.Scan(&permName); err != nil {
			return nil, err
		}
		permissions = append(permissions, permName)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	user.Permissions = permissions
	return &user, nil
}
