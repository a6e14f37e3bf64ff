package employee

import (
	"time"

	employeeDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/employee"
)

type Employee struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Department        string    `json:"department"`
	Position          string    `json:"position,omitempty"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	JoinDate          string    `json:"join_date,omitempty"`
	IsActive          bool      `json:"is_active"`
	ActiveAssignments int       `json:"active_assignments"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

const dateLayout = "2006-01-02"

// HasOpenAssignments reports whether any asset is still checked out to
// the employee.
func (e *Employee) HasOpenAssignments() bool {
	return e.ActiveAssignments > 0
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	dm := &employeeDatamodel.Employee{
		ID:                e.ID,
		Name:              e.Name,
		Department:        e.Department,
		Position:          e.Position,
		Email:             e.Email,
		Phone:             e.Phone,
		IsActive:          e.IsActive,
		ActiveAssignments: e.ActiveAssignments,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
	if e.JoinDate != "" {
		if joined, err := time.Parse(dateLayout, e.JoinDate); err == nil {
			dm.JoinDate = &joined
		}
	}
	return dm
}

func FromDataModel(dm *employeeDatamodel.Employee) *Employee {
	e := &Employee{
		ID:                dm.ID,
		Name:              dm.Name,
		Department:        dm.Department,
		Position:          dm.Position,
		Email:             dm.Email,
		Phone:             dm.Phone,
		IsActive:          dm.IsActive,
		ActiveAssignments: dm.ActiveAssignments,
		CreatedAt:         dm.CreatedAt,
		UpdatedAt:         dm.UpdatedAt,
	}
	if dm.JoinDate != nil {
		e.JoinDate = dm.JoinDate.Format(dateLayout)
	}
	return e
}

func FromDataModelSlice(dms []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}
