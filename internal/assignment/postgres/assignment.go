package postgres

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	errors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/asset"
	"github.com/minjae-dev/asset-management/internal/assignment"
	assetDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/asset"
	assignmentDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/assignment"
	employeeDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/employee"
)

// AssignmentRepository implements the assignment.Repository interface
// using GORM. Mutations run in a transaction together with the
// compensating writes to asset availability and the employee's active
// assignment counter, so the three never drift apart.
type AssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create checks the referenced employee and asset, reserves the asset,
// and stores the assignment under a freshly generated sequential ID.
func (r *AssignmentRepository) Create(a *assignment.Assignment) (*assignment.Assignment, error) {
	var createdID string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		id, err := createInTx(tx, a)
		if err != nil {
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

// CreateBatch inserts all rows in a single transaction so a bulk
// import is all or nothing. Rows already returned are stored as
// history without touching asset availability; open rows reserve
// their asset exactly like Create.
func (r *AssignmentRepository) CreateBatch(assignments []*assignment.Assignment) ([]*assignment.Assignment, error) {
	ids := make([]string, 0, len(assignments))

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, a := range assignments {
			id, err := createInTx(tx, a)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := make([]*assignment.Assignment, 0, len(ids))
	for _, id := range ids {
		a, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		created = append(created, a)
	}
	return created, nil
}

// createInTx validates the referenced entities, reserves the asset for
// open assignments, and inserts the row under the next sequential ID.
// Closed rows skip the reservation so historical data can be loaded
// for assets that are unavailable today.
func createInTx(tx *gorm.DB, a *assignment.Assignment) (string, error) {
	open := a.Status != assignment.StatusReturned

	var emp employeeDatamodel.Employee
	if err := tx.Where("id = ?", a.EmployeeID).First(&emp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrEmployeeNotFound
		}
		return "", err
	}
	if open && !emp.IsActive {
		return "", errors.ErrEmployeeInactive
	}

	var ast assetDatamodel.Asset
	if err := tx.Where("id = ?", a.AssetID).First(&ast).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrAssetNotFound
		}
		return "", err
	}
	if open && ast.Status != asset.StatusAvailable {
		return "", errors.ErrAssetUnavailable
	}

	id, err := nextSequentialID(tx, "assignments", "AS")
	if err != nil {
		return "", err
	}

	dm := assignment.ToDataModel(a)
	dm.ID = id
	dm.AssetType = ast.AssetType
	if err := tx.Create(dm).Error; err != nil {
		return "", err
	}

	if open {
		if err := setAssetStatus(tx, ast.ID, asset.StatusInUse); err != nil {
			return "", err
		}
		if err := adjustActiveAssignments(tx, emp.ID, 1); err != nil {
			return "", err
		}
	}

	return id, nil
}

// GetByID retrieves an assignment with its employee and asset
// snapshots hydrated.
func (r *AssignmentRepository) GetByID(id string) (*assignment.Assignment, error) {
	var dm assignmentDatamodel.Assignment
	err := r.db.Preload("Employee").Preload("Asset").Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment.FromDataModel(&dm), nil
}

// GetAll retrieves every assignment, hydrated, in ID order.
func (r *AssignmentRepository) GetAll() ([]*assignment.Assignment, error) {
	var dms []*assignmentDatamodel.Assignment
	err := r.db.Preload("Employee").Preload("Asset").Order("id ASC").Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return assignment.FromDataModelSlice(dms), nil
}

// Update saves an edited assignment. When the employee or asset
// reference changed, the counters and availability of both the old and
// the new referent are adjusted in the same transaction.
func (r *AssignmentRepository) Update(a *assignment.Assignment) (*assignment.Assignment, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current assignmentDatamodel.Assignment
		if err := tx.Where("id = ?", a.ID).First(&current).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAssignmentNotFound
			}
			return err
		}

		assetType := current.AssetType

		if a.EmployeeID != current.EmployeeID {
			var newEmp employeeDatamodel.Employee
			if err := tx.Where("id = ?", a.EmployeeID).First(&newEmp).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return errors.ErrEmployeeNotFound
				}
				return err
			}
			if !newEmp.IsActive {
				return errors.ErrEmployeeInactive
			}
			if err := adjustActiveAssignments(tx, current.EmployeeID, -1); err != nil {
				return err
			}
			if err := adjustActiveAssignments(tx, a.EmployeeID, 1); err != nil {
				return err
			}
		}

		if a.AssetID != current.AssetID {
			var newAsset assetDatamodel.Asset
			if err := tx.Where("id = ?", a.AssetID).First(&newAsset).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return errors.ErrAssetNotFound
				}
				return err
			}
			if newAsset.Status != asset.StatusAvailable {
				return errors.ErrAssetUnavailable
			}
			if err := setAssetStatus(tx, current.AssetID, asset.StatusAvailable); err != nil {
				return err
			}
			if err := setAssetStatus(tx, newAsset.ID, asset.StatusInUse); err != nil {
				return err
			}
			assetType = newAsset.AssetType
		}

		assignedDate, err := time.Parse(assignment.DateLayout, a.AssignedDate)
		if err != nil {
			return errors.NewValidationError("assigned date must be a date in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
		}

		current.EmployeeID = a.EmployeeID
		current.AssetID = a.AssetID
		current.AssetType = assetType
		current.AssignedDate = assignedDate
		current.Status = string(a.Status)
		current.Notes = a.Notes
		current.UpdatedAt = time.Now()
		return tx.Save(&current).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(a.ID)
}

// MarkReturned closes the assignment, releases the asset, and
// decrements the employee's active assignment counter.
func (r *AssignmentRepository) MarkReturned(id, returnDate, notes string) (*assignment.Assignment, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current assignmentDatamodel.Assignment
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAssignmentNotFound
			}
			return err
		}
		if current.Status == string(assignment.StatusReturned) {
			return errors.ErrAlreadyReturned
		}

		returned, err := time.Parse(assignment.DateLayout, returnDate)
		if err != nil {
			return errors.NewValidationError("return date must be a date in YYYY-MM-DD format", errors.ErrCodeInvalidDate)
		}

		current.Status = string(assignment.StatusReturned)
		current.ReturnDate = &returned
		if notes != "" {
			current.Notes = notes
		}
		current.UpdatedAt = time.Now()
		if err := tx.Save(&current).Error; err != nil {
			return err
		}

		if err := setAssetStatus(tx, current.AssetID, asset.StatusAvailable); err != nil {
			return err
		}
		return adjustActiveAssignments(tx, current.EmployeeID, -1)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete removes the assignment. An open assignment releases its asset
// and employee counter first.
func (r *AssignmentRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current assignmentDatamodel.Assignment
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAssignmentNotFound
			}
			return err
		}

		if current.Status != string(assignment.StatusReturned) {
			if err := setAssetStatus(tx, current.AssetID, asset.StatusAvailable); err != nil {
				return err
			}
			if err := adjustActiveAssignments(tx, current.EmployeeID, -1); err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&assignmentDatamodel.Assignment{}).Error
	})
}

func setAssetStatus(tx *gorm.DB, assetID, status string) error {
	return tx.Model(&assetDatamodel.Asset{}).
		Where("id = ?", assetID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// adjustActiveAssignments applies the delta with a floor of zero.
// Load-modify-save keeps the SQL portable across postgres and the
// sqlite test database.
func adjustActiveAssignments(tx *gorm.DB, employeeID string, delta int) error {
	var emp employeeDatamodel.Employee
	if err := tx.Where("id = ?", employeeID).First(&emp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrEmployeeNotFound
		}
		return err
	}
	emp.ActiveAssignments += delta
	if emp.ActiveAssignments < 0 {
		emp.ActiveAssignments = 0
	}
	emp.UpdatedAt = time.Now()
	return tx.Save(&emp).Error
}

// nextSequentialID produces the next zero-padded ID for the prefix,
// e.g. AS001, AS002. Ordering by length before value keeps the scan
// numeric once IDs outgrow the padding.
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
