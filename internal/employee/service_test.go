package employee_test

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/employee"
)

// Mock repository for testing
type mockEmployeeRepository struct {
	employees   map[string]*employee.Employee
	order       []string
	nextID      int
	createError error
	getError    error
	updateError error
	deleteError error
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{
		employees: make(map[string]*employee.Employee),
		nextID:    1,
	}
}

func (m *mockEmployeeRepository) seed(employees ...*employee.Employee) {
	for _, e := range employees {
		m.employees[e.ID] = e
		m.order = append(m.order, e.ID)
	}
}

func (m *mockEmployeeRepository) Create(e *employee.Employee) (*employee.Employee, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	for _, existing := range m.employees {
		if existing.Email == e.Email {
			return nil, errors.NewConflictError("email already registered", errors.ErrCodeValidationFailed)
		}
	}
	e.ID = fmt.Sprintf("EMP%03d", m.nextID)
	m.nextID++
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	m.employees[e.ID] = e
	m.order = append(m.order, e.ID)
	return e, nil
}

func (m *mockEmployeeRepository) GetByID(id string) (*employee.Employee, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	e, exists := m.employees[id]
	if !exists {
		return nil, errors.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *mockEmployeeRepository) GetAll() ([]*employee.Employee, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*employee.Employee, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.employees[id])
	}
	return result, nil
}

func (m *mockEmployeeRepository) Update(e *employee.Employee) (*employee.Employee, error) {
	if m.updateError != nil {
		return nil, m.updateError
	}
	if _, exists := m.employees[e.ID]; !exists {
		return nil, errors.ErrEmployeeNotFound
	}
	e.UpdatedAt = time.Now()
	m.employees[e.ID] = e
	return e, nil
}

func (m *mockEmployeeRepository) Delete(id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	e, exists := m.employees[id]
	if !exists {
		return errors.ErrEmployeeNotFound
	}
	if e.ActiveAssignments > 0 {
		return errors.NewConflictError("employee still holds assigned assets", errors.ErrCodeValidationFailed)
	}
	delete(m.employees, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ = Describe("EmployeeService", func() {
	var (
		employeeService *employee.Service
		mockRepo        *mockEmployeeRepository
		logger          *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockEmployeeRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		employeeService = employee.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("should register a new active employee", func() {
			dto := employee.CreateEmployeeDTO{
				Name:       "김철수",
				Department: "개발팀",
				Position:   "선임",
				Email:      "kim.cs@example.co.kr",
			}

			result, err := employeeService.Create(dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(Equal("EMP001"))
			Expect(result.IsActive).To(BeTrue())
			Expect(result.ActiveAssignments).To(BeZero())
		})

		It("should require name, department, and email", func() {
			_, err := employeeService.Create(employee.CreateEmployeeDTO{Name: "김철수"})

			Expect(err).To(HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})

		It("should reject a duplicate email", func() {
			_, err := employeeService.Create(employee.CreateEmployeeDTO{
				Name: "김철수", Department: "개발팀", Email: "kim.cs@example.co.kr",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = employeeService.Create(employee.CreateEmployeeDTO{
				Name: "김철민", Department: "마케팅팀", Email: "kim.cs@example.co.kr",
			})

			Expect(err).To(HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeConflict))
		})

		It("should reject a malformed join date", func() {
			_, err := employeeService.Create(employee.CreateEmployeeDTO{
				Name: "김철수", Department: "개발팀", Email: "kim.cs@example.co.kr",
				JoinDate: "2024/01/15",
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			mockRepo.seed(
				&employee.Employee{ID: "EMP001", Name: "김철수", Department: "개발팀", Email: "kim.cs@example.co.kr", IsActive: true},
				&employee.Employee{ID: "EMP002", Name: "이영희", Department: "마케팅팀", Email: "lee.yh@example.co.kr", IsActive: true},
				&employee.Employee{ID: "EMP003", Name: "박민수", Department: "개발팀", Email: "park.ms@example.co.kr", IsActive: false},
			)
		})

		It("should filter by department", func() {
			result, err := employeeService.List(employee.ListQuery{Department: "개발팀", Page: 1, PerPage: 20})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Data).To(HaveLen(2))
			Expect(result.Data[0].ID).To(Equal("EMP001"))
			Expect(result.Data[1].ID).To(Equal("EMP003"))
		})

		It("should hide inactive employees when asked", func() {
			result, err := employeeService.List(employee.ListQuery{ActiveOnly: true, Page: 1, PerPage: 20})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Data).To(HaveLen(2))
		})

		It("should search by name", func() {
			result, err := employeeService.List(employee.ListQuery{Search: "이영희", Page: 1, PerPage: 20})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Data).To(HaveLen(1))
			Expect(result.Data[0].ID).To(Equal("EMP002"))
		})

		It("should paginate", func() {
			result, err := employeeService.List(employee.ListQuery{Page: 2, PerPage: 2})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Data).To(HaveLen(1))
			Expect(result.Pagination.TotalPages).To(Equal(2))
		})
	})

	Describe("Departments", func() {
		It("should list the distinct departments sorted", func() {
			mockRepo.seed(
				&employee.Employee{ID: "EMP001", Name: "김철수", Department: "개발팀", Email: "kim.cs@example.co.kr"},
				&employee.Employee{ID: "EMP002", Name: "이영희", Department: "마케팅팀", Email: "lee.yh@example.co.kr"},
				&employee.Employee{ID: "EMP003", Name: "박민수", Department: "개발팀", Email: "park.ms@example.co.kr"},
				&employee.Employee{ID: "EMP004", Name: "정다은", Department: "", Email: "jung.de@example.co.kr"},
			)

			departments, err := employeeService.Departments()

			Expect(err).ToNot(HaveOccurred())
			Expect(departments).To(Equal([]string{"개발팀", "마케팅팀"}))
		})

		It("should return an empty list for an empty directory", func() {
			departments, err := employeeService.Departments()

			Expect(err).ToNot(HaveOccurred())
			Expect(departments).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			mockRepo.seed(&employee.Employee{
				ID: "EMP001", Name: "김철수", Department: "개발팀",
				Email: "kim.cs@example.co.kr", IsActive: true,
			})
		})

		It("should move an employee between departments", func() {
			result, err := employeeService.Update("EMP001", employee.UpdateEmployeeDTO{Department: "인사팀"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Department).To(Equal("인사팀"))
			Expect(result.Name).To(Equal("김철수"))
		})

		It("should deactivate via the explicit pointer field", func() {
			inactive := false

			result, err := employeeService.Update("EMP001", employee.UpdateEmployeeDTO{IsActive: &inactive})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.IsActive).To(BeFalse())
		})

		It("should fail for a missing employee", func() {
			_, err := employeeService.Update("EMP999", employee.UpdateEmployeeDTO{Name: "유령"})

			Expect(err).To(Equal(errors.ErrEmployeeNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove an employee with nothing checked out", func() {
			mockRepo.seed(&employee.Employee{ID: "EMP001", Name: "김철수", Email: "kim.cs@example.co.kr"})

			err := employeeService.Delete("EMP001")

			Expect(err).ToNot(HaveOccurred())
		})

		It("should refuse while assets are checked out", func() {
			mockRepo.seed(&employee.Employee{
				ID: "EMP001", Name: "김철수", Email: "kim.cs@example.co.kr",
				ActiveAssignments: 2,
			})

			err := employeeService.Delete("EMP001")

			Expect(err).To(HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeConflict))
		})
	})
})
