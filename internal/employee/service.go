package employee

import (
	"log/slog"
	"sort"
	"strings"
	"time"
)

// Repository defines the data access methods for employees.
type Repository interface {
	Create(e *Employee) (*Employee, error)
	GetByID(id string) (*Employee, error)
	GetAll() ([]*Employee, error)
	Update(e *Employee) (*Employee, error)
	Delete(id string) error
}

// Service handles employee directory business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(query ListQuery) (*ListResponse, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to load employees", "error", err)
		return nil, err
	}

	visible := make([]*Employee, 0, len(all))
	needle := strings.ToLower(strings.TrimSpace(query.Search))
	for _, e := range all {
		if needle != "" && !matchesSearch(e, needle) {
			continue
		}
		if query.Department != "" && e.Department != query.Department {
			continue
		}
		if query.ActiveOnly && !e.IsActive {
			continue
		}
		visible = append(visible, e)
	}

	total := len(visible)
	start := (query.Page - 1) * query.PerPage
	if start > total {
		start = total
	}
	end := start + query.PerPage
	if end > total {
		end = total
	}

	totalPages := 0
	if query.PerPage > 0 {
		totalPages = (total + query.PerPage - 1) / query.PerPage
	}

	return &ListResponse{
		Data: visible[start:end],
		Pagination: Pagination{
			Page:       query.Page,
			PerPage:    query.PerPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func matchesSearch(e *Employee, needle string) bool {
	for _, candidate := range []string{e.ID, e.Name, e.Department, e.Position, e.Email} {
		if candidate != "" && strings.Contains(strings.ToLower(candidate), needle) {
			return true
		}
	}
	return false
}

func (s *Service) GetByID(id string) (*Employee, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, err
	}
	return e, nil
}

// Departments returns the distinct department names in the directory,
// sorted, for filter dropdowns.
func (s *Service) Departments() ([]string, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to load employees", "error", err)
		return nil, err
	}

	seen := make(map[string]bool)
	departments := make([]string, 0)
	for _, e := range all {
		if e.Department == "" || seen[e.Department] {
			continue
		}
		seen[e.Department] = true
		departments = append(departments, e.Department)
	}
	sort.Strings(departments)
	return departments, nil
}

func (s *Service) Create(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err)
		return nil, err
	}

	e := &Employee{
		Name:       dto.Name,
		Department: dto.Department,
		Position:   dto.Position,
		Email:      dto.Email,
		Phone:      dto.Phone,
		JoinDate:   dto.JoinDate,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	created, err := s.repo.Create(e)
	if err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", created.ID, "department", created.Department)
	return created, nil
}

func (s *Service) Update(id string, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != "" {
		existing.Name = dto.Name
	}
	if dto.Department != "" {
		existing.Department = dto.Department
	}
	if dto.Position != "" {
		existing.Position = dto.Position
	}
	if dto.Email != "" {
		existing.Email = dto.Email
	}
	if dto.Phone != "" {
		existing.Phone = dto.Phone
	}
	if dto.JoinDate != "" {
		existing.JoinDate = dto.JoinDate
	}
	if dto.IsActive != nil {
		existing.IsActive = *dto.IsActive
	}

	updated, err := s.repo.Update(existing)
	if err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}

	s.logger.Info("employee updated", "employee_id", updated.ID)
	return updated, nil
}

// Delete removes an employee. The repository refuses while assets are
// still checked out to them.
func (s *Service) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return err
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}
