package assignment

import (
	"time"

	assignmentDatamodel "github.com/minjae-dev/asset-management/internal/core/datamodel/assignment"
)

const (
	AssetTypeHardware = "hardware"
	AssetTypeSoftware = "software"
)

// DateLayout is the wire format for all assignment dates. Dates are
// carried as ISO strings so that range filters and sorting can compare
// them lexicographically.
const DateLayout = "2006-01-02"

// EmployeeInfo is the employee snapshot embedded into an assignment
// for display and filtering. It is hydrated once at the data access
// boundary, never joined ad hoc in business logic.
type EmployeeInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Email      string `json:"email"`
}

// AssetInfo is the asset snapshot embedded into an assignment.
type AssetInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
}

type Assignment struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	AssetID      string `json:"asset_id"`
	AssetType    string `json:"asset_type"`
	AssignedDate string `json:"assigned_date"`
	ReturnDate   string `json:"return_date,omitempty"`
	Status       Status `json:"status"`
	Notes        string `json:"notes,omitempty"`

	EmployeeName     string `json:"employee_name"`
	AssetDescription string `json:"asset_description"`

	Employee *EmployeeInfo `json:"employee,omitempty"`
	Asset    *AssetInfo    `json:"asset,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanBeReturned reports whether the assignment is still open. Lost and
// damaged assignments stay open until an admin records the outcome.
func (a *Assignment) CanBeReturned() bool {
	return a.Status != StatusReturned
}

// MarkReturned closes the assignment with the given return date.
func (a *Assignment) MarkReturned(returnDate string) {
	a.Status = StatusReturned
	a.ReturnDate = returnDate
	a.UpdatedAt = time.Now()
}

// DaysUsed returns the whole days between assigned and return date.
// The second return value is false while the assignment is open or a
// date fails to parse.
func (a *Assignment) DaysUsed() (int, bool) {
	if a.ReturnDate == "" {
		return 0, false
	}
	assigned, err := time.Parse(DateLayout, a.AssignedDate)
	if err != nil {
		return 0, false
	}
	returned, err := time.Parse(DateLayout, a.ReturnDate)
	if err != nil {
		return 0, false
	}
	return int(returned.Sub(assigned).Hours() / 24), true
}

// Department returns the embedded employee department, or empty when
// no snapshot is attached.
func (a *Assignment) Department() string {
	if a.Employee == nil {
		return ""
	}
	return a.Employee.Department
}

func ToDataModel(a *Assignment) *assignmentDatamodel.Assignment {
	dm := &assignmentDatamodel.Assignment{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		AssetID:    a.AssetID,
		AssetType:  a.AssetType,
		Status:     string(a.Status),
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if assigned, err := time.Parse(DateLayout, a.AssignedDate); err == nil {
		dm.AssignedDate = assigned
	}
	if a.ReturnDate != "" {
		if returned, err := time.Parse(DateLayout, a.ReturnDate); err == nil {
			dm.ReturnDate = &returned
		}
	}
	return dm
}

// FromDataModel converts a stored assignment back to the domain shape,
// hydrating the employee and asset snapshots when the associations
// were preloaded. This is the single enrichment point for embedded
// entity data.
func FromDataModel(dm *assignmentDatamodel.Assignment) *Assignment {
	a := &Assignment{
		ID:           dm.ID,
		EmployeeID:   dm.EmployeeID,
		AssetID:      dm.AssetID,
		AssetType:    dm.AssetType,
		AssignedDate: dm.AssignedDate.Format(DateLayout),
		Status:       Status(dm.Status),
		Notes:        dm.Notes,
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
	}
	if dm.ReturnDate != nil {
		a.ReturnDate = dm.ReturnDate.Format(DateLayout)
	}
	if dm.Employee != nil {
		a.Employee = &EmployeeInfo{
			ID:         dm.Employee.ID,
			Name:       dm.Employee.Name,
			Department: dm.Employee.Department,
			Position:   dm.Employee.Position,
			Email:      dm.Employee.Email,
		}
		a.EmployeeName = dm.Employee.Name
	}
	if dm.Asset != nil {
		a.Asset = &AssetInfo{
			ID:           dm.Asset.ID,
			Name:         dm.Asset.Name,
			Manufacturer: dm.Asset.Manufacturer,
			Model:        dm.Asset.Model,
			SerialNumber: dm.Asset.SerialNumber,
		}
		a.AssetDescription = dm.Asset.Name
	}
	return a
}

func FromDataModelSlice(dms []*assignmentDatamodel.Assignment) []*Assignment {
	result := make([]*Assignment, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}
