package assignment

import (
	"net/url"
	"strconv"
	"strings"

	errors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/core/common/validation"
)

// CreateAssignmentDTO is the request payload for checking an asset out
// to an employee. The asset type is taken from the referenced asset.
type CreateAssignmentDTO struct {
	EmployeeID   string `json:"employee_id"`
	AssetID      string `json:"asset_id"`
	AssignedDate string `json:"assigned_date"`
	Notes        string `json:"notes,omitempty"`
}

func (dto CreateAssignmentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("employee_id", dto.EmployeeID).Required()
	v.Field("asset_id", dto.AssetID).Required()
	v.Field("assigned_date", dto.AssignedDate).Required().ISODate()
	v.Field("notes", dto.Notes).MaxLength(500)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateAssignmentDTO is the request payload for editing an
// assignment. Empty fields are left unchanged. A status change to
// returned must go through the return endpoint instead so the return
// date and asset availability are recorded together.
type UpdateAssignmentDTO struct {
	EmployeeID   string `json:"employee_id,omitempty"`
	AssetID      string `json:"asset_id,omitempty"`
	AssignedDate string `json:"assigned_date,omitempty"`
	Status       string `json:"status,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (dto UpdateAssignmentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("assigned_date", dto.AssignedDate).ISODate()
	v.Field("notes", dto.Notes).MaxLength(500)
	if err := v.Validate(); err != nil {
		return err
	}
	if dto.Status != "" {
		status, ok := ParseStatus(dto.Status)
		if !ok {
			return errors.NewValidationError("unknown status: "+dto.Status, errors.ErrCodeInvalidStatus)
		}
		if status == StatusReturned {
			return errors.NewValidationError("use the return endpoint to close an assignment", errors.ErrCodeInvalidStatus)
		}
	}
	return nil
}

// ReturnAssignmentDTO is the request payload for closing an
// assignment. ReturnDate defaults to today when omitted.
type ReturnAssignmentDTO struct {
	ReturnDate string `json:"return_date,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func (dto ReturnAssignmentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("return_date", dto.ReturnDate).ISODate()
	v.Field("notes", dto.Notes).MaxLength(500)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ListQuery carries the search, filter, sort, and pagination
// parameters of a list request.
type ListQuery struct {
	Search    string
	Filters   FilterSet
	SortField string
	SortOrder string
	Page      int
	PerPage   int
}

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ParseListQuery maps URL query parameters to a ListQuery. Unknown
// parameters are ignored and malformed pagination values fall back to
// defaults, keeping list requests resilient to partial input.
func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Search:    values.Get("q"),
		SortField: values.Get("sort_by"),
		SortOrder: values.Get("sort_order"),
		Page:      1,
		PerPage:   DefaultPerPage,
	}

	for _, raw := range values["status"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			status, _ := ParseStatus(part)
			q.Filters.Statuses = append(q.Filters.Statuses, status)
		}
	}

	q.Filters.AssetType = values.Get("asset_type")
	q.Filters.EmployeeID = values.Get("employee_id")
	q.Filters.Department = values.Get("department")
	q.Filters.AssignedDateFrom = values.Get("assigned_date_from")
	q.Filters.AssignedDateTo = values.Get("assigned_date_to")
	q.Filters.ReturnDateFrom = values.Get("return_date_from")
	q.Filters.ReturnDateTo = values.Get("return_date_to")
	q.Filters.Overdue = values.Get("overdue") == "true"

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if perPage, err := strconv.Atoi(values.Get("per_page")); err == nil && perPage > 0 {
		if perPage > MaxPerPage {
			perPage = MaxPerPage
		}
		q.PerPage = perPage
	}
	return q
}

// AssignmentResponse decorates an assignment with its display label so
// clients never need the label table.
type AssignmentResponse struct {
	*Assignment
	StatusLabel string `json:"status_label"`
}

func NewAssignmentResponse(a *Assignment) AssignmentResponse {
	return AssignmentResponse{Assignment: a, StatusLabel: a.Status.Label()}
}

func NewAssignmentResponses(assignments []*Assignment) []AssignmentResponse {
	result := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		result[i] = NewAssignmentResponse(a)
	}
	return result
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type ListResponse struct {
	Data       []AssignmentResponse `json:"data"`
	Pagination Pagination           `json:"pagination"`
}
