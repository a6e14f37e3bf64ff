package employee

import (
	"net/url"
	"strconv"

	"github.com/minjae-dev/asset-management/internal/core/common/validation"
)

type CreateEmployeeDTO struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position,omitempty"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	JoinDate   string `json:"join_date,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("department", dto.Department).Required().MaxLength(100)
	v.Field("email", dto.Email).Required().MaxLength(200)
	v.Field("join_date", dto.JoinDate).ISODate()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateEmployeeDTO edits an employee. Empty fields are left
// unchanged; IsActive uses a pointer so false can be set explicitly.
type UpdateEmployeeDTO struct {
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	JoinDate   string `json:"join_date,omitempty"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).MaxLength(100)
	v.Field("department", dto.Department).MaxLength(100)
	v.Field("email", dto.Email).MaxLength(200)
	v.Field("join_date", dto.JoinDate).ISODate()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ListQuery struct {
	Search     string
	Department string
	ActiveOnly bool
	Page       int
	PerPage    int
}

func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Search:     values.Get("q"),
		Department: values.Get("department"),
		ActiveOnly: values.Get("active") == "true",
		Page:       1,
		PerPage:    20,
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if perPage, err := strconv.Atoi(values.Get("per_page")); err == nil && perPage > 0 && perPage <= 100 {
		q.PerPage = perPage
	}
	return q
}

type ListResponse struct {
	Data       []*Employee `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
