package importer_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/assignment"
	"github.com/minjae-dev/asset-management/internal/core/events"
	"github.com/minjae-dev/asset-management/internal/importer"
)

type mockAssignmentWriter struct {
	batches [][]*assignment.Assignment
	err     error
}

func (m *mockAssignmentWriter) CreateBatch(assignments []*assignment.Assignment) ([]*assignment.Assignment, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.batches = append(m.batches, assignments)
	created := make([]*assignment.Assignment, len(assignments))
	for i, a := range assignments {
		copied := *a
		copied.ID = fmt.Sprintf("AS%03d", i+1)
		created[i] = &copied
	}
	return created, nil
}

type stubRowValidator struct {
	errors []importer.RowError
	rows   []importer.Row
}

func (s *stubRowValidator) ValidateRows(rows []importer.Row) []importer.RowError {
	s.rows = rows
	return s.errors
}

type mockImportPublisher struct {
	published []events.Event
}

func (m *mockImportPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

const importCSV = `employee_id,asset_id,assigned_date,return_date,status,notes
EMP001,HW001,2024-01-15,,,개발 장비
EMP002,SW001,2024-02-01,2024-03-10,returned,
`

var _ = Describe("Import Service", func() {
	var (
		service   *importer.Service
		writer    *mockAssignmentWriter
		rowCheck  *stubRowValidator
		publisher *mockImportPublisher
	)

	BeforeEach(func() {
		writer = &mockAssignmentWriter{}
		rowCheck = &stubRowValidator{}
		publisher = &mockImportPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = importer.NewService(writer, rowCheck, publisher, 0, logger)
	})

	Describe("Import", func() {
		It("should apply a valid file in one batch", func() {
			summary, err := service.Import("7", "assignments.csv", strings.NewReader(importCSV))

			Expect(err).NotTo(HaveOccurred())
			Expect(summary.FileName).To(Equal("assignments.csv"))
			Expect(summary.RowCount).To(Equal(2))
			Expect(summary.AssignmentIDs).To(Equal([]string{"AS001", "AS002"}))

			Expect(writer.batches).To(HaveLen(1))
			batch := writer.batches[0]
			Expect(batch[0].EmployeeID).To(Equal("EMP001"))
			Expect(batch[0].Status).To(Equal(assignment.StatusInUse))
			Expect(batch[0].Notes).To(Equal("개발 장비"))
			Expect(batch[1].Status).To(Equal(assignment.StatusReturned))
			Expect(batch[1].ReturnDate).To(Equal("2024-03-10"))
		})

		It("should publish an imported event with the actor", func() {
			_, err := service.Import("7", "assignments.csv", strings.NewReader(importCSV))
			Expect(err).NotTo(HaveOccurred())

			Expect(publisher.published).To(HaveLen(1))
			event, ok := publisher.published[0].(*events.AssignmentsImportedEvent)
			Expect(ok).To(BeTrue())
			Expect(event.EventType()).To(Equal(events.EventTypeAssignmentsImported))
			Expect(event.RowCount).To(Equal(2))
			Expect(event.FileName).To(Equal("assignments.csv"))
			Expect(event.ActorID).To(Equal("7"))
		})

		It("should hand every parsed row to the validator", func() {
			_, err := service.Import("7", "assignments.csv", strings.NewReader(importCSV))
			Expect(err).NotTo(HaveOccurred())

			Expect(rowCheck.rows).To(HaveLen(2))
			Expect(rowCheck.rows[0].Line).To(Equal(2))
			Expect(rowCheck.rows[1].Line).To(Equal(3))
		})

		It("should reject the whole file when any row fails validation", func() {
			rowCheck.errors = []importer.RowError{
				{Row: 3, Field: "asset_id", Message: "unknown asset: SW001"},
			}

			summary, err := service.Import("7", "assignments.csv", strings.NewReader(importCSV))

			Expect(summary).To(BeNil())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeImportValidationFailed))

			details, ok := appErr.Details.(importer.RowErrors)
			Expect(ok).To(BeTrue())
			Expect(details.Errors).To(HaveLen(1))
			Expect(details.Errors[0].Row).To(Equal(3))

			Expect(writer.batches).To(BeEmpty())
			Expect(publisher.published).To(BeEmpty())
		})

		It("should reject an empty file", func() {
			_, err := service.Import("7", "empty.csv", strings.NewReader("employee_id,asset_id,assigned_date\n"))

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeImportValidationFailed))
			Expect(appErr.Message).To(ContainSubstring("no data rows"))
		})

		It("should refuse files over the row limit", func() {
			service = importer.NewService(writer, rowCheck, publisher, 2, slog.Default())

			var sb strings.Builder
			sb.WriteString("employee_id,asset_id,assigned_date\n")
			for i := 0; i < 3; i++ {
				fmt.Fprintf(&sb, "EMP001,HW%03d,2024-01-15\n", i+1)
			}

			_, err := service.Import("7", "big.csv", strings.NewReader(sb.String()))

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeImportTooLarge))
			Expect(writer.batches).To(BeEmpty())
		})

		It("should surface writer failures without publishing", func() {
			writer.err = apperrors.ErrAssetUnavailable

			_, err := service.Import("7", "assignments.csv", strings.NewReader(importCSV))

			Expect(err).To(Equal(apperrors.ErrAssetUnavailable))
			Expect(publisher.published).To(BeEmpty())
		})
	})
})
