package assignment_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/assignment"
	"github.com/minjae-dev/asset-management/internal/core/events"
)

// Mock repository for testing
type mockRepository struct {
	assignments map[string]*assignment.Assignment
	order       []string
	nextID      int
	createError error
	getError    error
	updateError error
	deleteError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		assignments: make(map[string]*assignment.Assignment),
		nextID:      1,
	}
}

func (m *mockRepository) seed(list []*assignment.Assignment) {
	for _, a := range list {
		m.assignments[a.ID] = a
		m.order = append(m.order, a.ID)
		m.nextID++
	}
}

func (m *mockRepository) Create(a *assignment.Assignment) (*assignment.Assignment, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	a.ID = newSequentialID(m.nextID)
	if a.AssetType == "" {
		a.AssetType = assignment.AssetTypeHardware
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.nextID++
	m.assignments[a.ID] = a
	m.order = append(m.order, a.ID)
	return a, nil
}

func (m *mockRepository) GetByID(id string) (*assignment.Assignment, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	a, exists := m.assignments[id]
	if !exists {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return a, nil
}

func (m *mockRepository) GetAll() ([]*assignment.Assignment, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*assignment.Assignment, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.assignments[id])
	}
	return result, nil
}

func (m *mockRepository) Update(a *assignment.Assignment) (*assignment.Assignment, error) {
	if m.updateError != nil {
		return nil, m.updateError
	}
	if _, exists := m.assignments[a.ID]; !exists {
		return nil, apperrors.ErrAssignmentNotFound
	}
	a.UpdatedAt = time.Now()
	m.assignments[a.ID] = a
	return a, nil
}

func (m *mockRepository) MarkReturned(id, returnDate, notes string) (*assignment.Assignment, error) {
	if m.updateError != nil {
		return nil, m.updateError
	}
	a, exists := m.assignments[id]
	if !exists {
		return nil, apperrors.ErrAssignmentNotFound
	}
	a.MarkReturned(returnDate)
	if notes != "" {
		a.Notes = notes
	}
	return a, nil
}

func (m *mockRepository) Delete(id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if _, exists := m.assignments[id]; !exists {
		return apperrors.ErrAssignmentNotFound
	}
	delete(m.assignments, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func newSequentialID(n int) string {
	return fmt.Sprintf("AS%03d", n)
}

// Mock event publisher for testing
type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

func (m *mockPublisher) eventTypes() []string {
	types := make([]string, len(m.published))
	for i, e := range m.published {
		types[i] = e.EventType()
	}
	return types
}

var _ = Describe("AssignmentService", func() {
	var (
		service   *assignment.Service
		mockRepo  *mockRepository
		publisher *mockPublisher
		logger    *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockRepository()
		publisher = &mockPublisher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = assignment.NewService(mockRepo, publisher, logger)
	})

	Describe("Create", func() {
		Context("with a valid payload", func() {
			It("should create an in-use assignment and publish an event", func() {
				created, err := service.Create("1", assignment.CreateAssignmentDTO{
					EmployeeID:   "EMP001",
					AssetID:      "HW001",
					AssignedDate: "2024-04-01",
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(created.ID).To(Equal("AS001"))
				Expect(created.Status).To(Equal(assignment.StatusInUse))
				Expect(created.AssignedDate).To(Equal("2024-04-01"))
				Expect(publisher.eventTypes()).To(ContainElement(events.EventTypeAssignmentCreated))
			})
		})

		Context("when validation fails", func() {
			It("should reject a missing employee", func() {
				_, err := service.Create("1", assignment.CreateAssignmentDTO{
					AssetID:      "HW001",
					AssignedDate: "2024-04-01",
				})

				Expect(err).To(HaveOccurred())
				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
				Expect(mockRepo.assignments).To(BeEmpty())
				Expect(publisher.published).To(BeEmpty())
			})

			It("should reject a malformed date", func() {
				_, err := service.Create("1", assignment.CreateAssignmentDTO{
					EmployeeID:   "EMP001",
					AssetID:      "HW001",
					AssignedDate: "04/01/2024",
				})

				Expect(err).To(HaveOccurred())
				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
			})
		})

		Context("when the repository rejects the assignment", func() {
			It("should propagate the error and publish nothing", func() {
				mockRepo.createError = apperrors.ErrAssetUnavailable

				_, err := service.Create("1", assignment.CreateAssignmentDTO{
					EmployeeID:   "EMP001",
					AssetID:      "HW001",
					AssignedDate: "2024-04-01",
				})

				Expect(err).To(MatchError(apperrors.ErrAssetUnavailable))
				Expect(publisher.published).To(BeEmpty())
			})
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			mockRepo.seed(sampleAssignments())
		})

		Context("editing an open assignment", func() {
			It("should apply only the provided fields", func() {
				updated, err := service.Update("1", "AS001", assignment.UpdateAssignmentDTO{
					Notes: "모니터 포함",
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(updated.Notes).To(Equal("모니터 포함"))
				Expect(updated.EmployeeID).To(Equal("EMP001"))
				Expect(updated.AssignedDate).To(Equal("2024-01-15"))
				Expect(publisher.eventTypes()).To(ContainElement(events.EventTypeAssignmentUpdated))
			})

			It("should accept a Korean status label", func() {
				updated, err := service.Update("1", "AS001", assignment.UpdateAssignmentDTO{
					Status: "연체",
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(updated.Status).To(Equal(assignment.StatusOverdue))
			})
		})

		Context("editing a returned assignment", func() {
			It("should refuse with a conflict", func() {
				_, err := service.Update("1", "AS002", assignment.UpdateAssignmentDTO{
					Notes: "label change",
				})

				Expect(err).To(MatchError(apperrors.ErrAlreadyReturned))
			})
		})

		Context("with an unknown status", func() {
			It("should reject before touching the repository", func() {
				_, err := service.Update("1", "AS001", assignment.UpdateAssignmentDTO{
					Status: "vanished",
				})

				Expect(err).To(HaveOccurred())
				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidStatus))
			})
		})

		Context("with a returned status", func() {
			It("should point callers at the return endpoint", func() {
				_, err := service.Update("1", "AS001", assignment.UpdateAssignmentDTO{
					Status: "returned",
				})

				Expect(err).To(HaveOccurred())
				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidStatus))
			})
		})
	})

	Describe("Return", func() {
		BeforeEach(func() {
			mockRepo.seed(sampleAssignments())
		})

		Context("returning an open assignment", func() {
			It("should close it with the given date and publish an event", func() {
				returned, err := service.Return("1", "AS001", assignment.ReturnAssignmentDTO{
					ReturnDate: "2024-04-15",
				})

				Expect(err).NotTo(HaveOccurred())
				Expect(returned.Status).To(Equal(assignment.StatusReturned))
				Expect(returned.ReturnDate).To(Equal("2024-04-15"))
				Expect(publisher.eventTypes()).To(ContainElement(events.EventTypeAssignmentReturned))
			})

			It("should default the return date to today", func() {
				returned, err := service.Return("1", "AS001", assignment.ReturnAssignmentDTO{})

				Expect(err).NotTo(HaveOccurred())
				Expect(returned.ReturnDate).To(Equal(time.Now().Format(assignment.DateLayout)))
			})
		})

		Context("with a return date before the assigned date", func() {
			It("should reject the range", func() {
				_, err := service.Return("1", "AS001", assignment.ReturnAssignmentDTO{
					ReturnDate: "2024-01-01",
				})

				Expect(err).To(HaveOccurred())
				appErr, ok := apperrors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidDateRange))
			})
		})

		Context("returning an already returned assignment", func() {
			It("should refuse with a conflict", func() {
				_, err := service.Return("1", "AS002", assignment.ReturnAssignmentDTO{})
				Expect(err).To(MatchError(apperrors.ErrAlreadyReturned))
			})
		})

		Context("returning a missing assignment", func() {
			It("should report not found", func() {
				_, err := service.Return("1", "AS999", assignment.ReturnAssignmentDTO{})
				Expect(err).To(MatchError(apperrors.ErrAssignmentNotFound))
			})
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			mockRepo.seed(sampleAssignments())
		})

		It("should delete and publish an event", func() {
			err := service.Delete("1", "AS001")

			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.assignments).NotTo(HaveKey("AS001"))
			Expect(publisher.eventTypes()).To(ContainElement(events.EventTypeAssignmentDeleted))
		})

		It("should report not found without publishing", func() {
			err := service.Delete("1", "AS999")

			Expect(err).To(MatchError(apperrors.ErrAssignmentNotFound))
			Expect(publisher.published).To(BeEmpty())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			mockRepo.seed(sampleAssignments())
		})

		It("should run search, filters, and sort before paginating", func() {
			resp, err := service.List(assignment.ListQuery{
				Search:    "노트북",
				Filters:   assignment.FilterSet{AssetType: assignment.AssetTypeHardware},
				SortField: "assigned_date",
				SortOrder: assignment.OrderDesc,
				Page:      1,
				PerPage:   10,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Pagination.Total).To(Equal(2))
			Expect(resp.Data[0].ID).To(Equal("AS001"))
			Expect(resp.Data[1].ID).To(Equal("AS003"))
		})

		It("should paginate the visible collection", func() {
			resp, err := service.List(assignment.ListQuery{
				Page:    2,
				PerPage: 2,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Pagination.Total).To(Equal(5))
			Expect(resp.Pagination.TotalPages).To(Equal(3))
			Expect(resp.Data).To(HaveLen(2))
			Expect(resp.Data[0].ID).To(Equal("AS003"))
		})

		It("should return an empty page past the end", func() {
			resp, err := service.List(assignment.ListQuery{
				Page:    9,
				PerPage: 20,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Data).To(BeEmpty())
			Expect(resp.Pagination.Total).To(Equal(5))
		})

		It("should attach status labels to every record", func() {
			resp, err := service.List(assignment.ListQuery{Page: 1, PerPage: 10})

			Expect(err).NotTo(HaveOccurred())
			for _, record := range resp.Data {
				Expect(record.StatusLabel).To(Equal(record.Status.Label()))
			}
		})
	})

	Describe("Stats", func() {
		BeforeEach(func() {
			mockRepo.seed(sampleAssignments())
		})

		It("should aggregate the whole collection by default", func() {
			stats, err := service.Stats(assignment.ListQuery{})

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Total).To(Equal(5))
		})

		It("should aggregate only the filtered view when filters are set", func() {
			stats, err := service.Stats(assignment.ListQuery{
				Filters: assignment.FilterSet{AssetType: assignment.AssetTypeHardware},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Total).To(Equal(3))
			Expect(stats.ByAssetType).To(HaveKey("hardware"))
			Expect(stats.ByAssetType).NotTo(HaveKey("software"))
		})
	})
})
