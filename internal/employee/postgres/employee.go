package postgres

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	errors "github.com/minjae-dev/asset-management/internal"
	employeeDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/employee"
	"github.com/minjae-dev/asset-management/internal/employee"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(e *employee.Employee) (*employee.Employee, error) {
	var createdID string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&employeeDatamodel.Employee{}).
			Where("email = ?", e.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.NewConflictError("email already registered", errors.ErrCodeValidationFailed)
		}

		id, err := nextSequentialID(tx, "employees", "EMP")
		if err != nil {
			return err
		}

		dm := employee.ToDataModel(e)
		dm.ID = id
		if err := tx.Create(dm).Error; err != nil {
			return err
		}

		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(createdID)
}

func (r *EmployeeRepository) GetByID(id string) (*employee.Employee, error) {
	var dm employeeDatamodel.Employee
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.FromDataModel(&dm), nil
}

func (r *EmployeeRepository) GetAll() ([]*employee.Employee, error) {
	var dms []*employeeDatamodel.Employee
	err := r.db.Order("id ASC").Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return employee.FromDataModelSlice(dms), nil
}

func (r *EmployeeRepository) Update(e *employee.Employee) (*employee.Employee, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current employeeDatamodel.Employee
		if err := tx.Where("id = ?", e.ID).First(&current).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrEmployeeNotFound
			}
			return err
		}

		dm := employee.ToDataModel(e)
		dm.CreatedAt = current.CreatedAt
		dm.ActiveAssignments = current.ActiveAssignments
		dm.UpdatedAt = time.Now()
		return tx.Save(dm).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(e.ID)
}

// Delete refuses while assets are still checked out to the employee.
func (r *EmployeeRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current employeeDatamodel.Employee
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrEmployeeNotFound
			}
			return err
		}
		if current.ActiveAssignments > 0 {
			return errors.NewConflictError("employee still holds assigned assets", errors.ErrCodeValidationFailed)
		}
		return tx.Where("id = ?", id).Delete(&employeeDatamodel.Employee{}).Error
	})
}

func nextSequentialID(tx *gorm.DB, table, prefix string) (string, error) {
	var last string
	err := tx.Table(table).
		Select("id").
		Where("id LIKE ?", prefix+"%").
		Order("length(id) DESC, id DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	n := 0
	if last != "" {
		parsed, perr := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if perr != nil {
			return "", fmt.Errorf("malformed id %q for prefix %s", last, prefix)
		}
		n = parsed
	}
	return fmt.Sprintf("%s%03d", prefix, n+1), nil
}
