package audit_test

import (
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/audit"
)

type mockAuditRepository struct {
	logs      []*audit.Log
	lastQuery audit.ListQuery
	createErr error
	listErr   error
}

func (m *mockAuditRepository) Create(log *audit.Log) error {
	if m.createErr != nil {
		return m.createErr
	}
	log.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockAuditRepository) List(query audit.ListQuery) ([]*audit.Log, int, error) {
	m.lastQuery = query
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.logs, len(m.logs), nil
}

var _ = Describe("Audit Service", func() {
	var (
		service  *audit.Service
		mockRepo *mockAuditRepository
	)

	BeforeEach(func() {
		mockRepo = &mockAuditRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = audit.NewService(mockRepo, logger)
	})

	Describe("Record", func() {
		It("should append a row", func() {
			err := service.Record(&audit.Log{ActorID: "7", Action: "assignment.created", EntityType: audit.EntityAssignment, EntityID: "AS001"})

			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.logs).To(HaveLen(1))
		})

		It("should surface repository failures", func() {
			mockRepo.createErr = apperrors.NewInternalError("insert failed", nil)

			err := service.Record(&audit.Log{Action: "assignment.created"})

			Expect(err).To(Equal(mockRepo.createErr))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			mockRepo.logs = []*audit.Log{
				{ID: 2, Action: "assignment.returned", EntityType: audit.EntityAssignment, EntityID: "AS001"},
				{ID: 1, Action: "assignment.created", EntityType: audit.EntityAssignment, EntityID: "AS001"},
			}
		})

		It("should wrap rows with pagination", func() {
			resp, err := service.List(audit.ListQuery{Page: 1, PerPage: 50})

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Data).To(HaveLen(2))
			Expect(resp.Pagination.Total).To(Equal(2))
			Expect(resp.Pagination.TotalPages).To(Equal(1))
		})

		It("should default page and page size", func() {
			_, err := service.List(audit.ListQuery{})

			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.lastQuery.Page).To(Equal(1))
			Expect(mockRepo.lastQuery.PerPage).To(Equal(50))
		})

		It("should surface repository failures", func() {
			mockRepo.listErr = apperrors.NewInternalError("query failed", nil)

			resp, err := service.List(audit.ListQuery{})

			Expect(resp).To(BeNil())
			Expect(err).To(Equal(mockRepo.listErr))
		})
	})
})
