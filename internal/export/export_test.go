package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/assignment"
	"github.com/minjae-dev/asset-management/internal/core/events"
	"github.com/minjae-dev/asset-management/internal/export"
)

type mockCollector struct {
	assignments []*assignment.Assignment
	err         error
	lastQuery   assignment.ListQuery
}

func (m *mockCollector) Collect(query assignment.ListQuery) ([]*assignment.Assignment, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.assignments, nil
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("ExportService", func() {
	var (
		exportService *export.Service
		collector     *mockCollector
		publisher     *mockPublisher
		logger        *slog.Logger
	)

	BeforeEach(func() {
		collector = &mockCollector{assignments: sampleAssignments()}
		publisher = &mockPublisher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		exportService = export.NewService(collector, publisher, logger)
	})

	Describe("Options", func() {
		It("should append the format extension to the file name", func() {
			opts := export.Options{Format: export.FormatCSV, FileName: "자산목록_2024"}

			Expect(opts.FullFileName()).To(Equal("자산목록_2024.csv"))
		})

		It("should fall back to the default file name", func() {
			opts := export.Options{Format: export.FormatXLSX}

			Expect(opts.FullFileName()).To(Equal("assignments.xlsx"))
		})

		It("should reject an unknown format", func() {
			_, err := exportService.Export("1", assignment.ListQuery{}, export.Options{Format: "pdf"})

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})
	})

	Describe("CSV export", func() {
		It("should start with a UTF-8 byte order mark", func() {
			result, err := exportService.Export("1", assignment.ListQuery{}, export.Options{Format: export.FormatCSV})

			Expect(err).ToNot(HaveOccurred())
			Expect(bytes.HasPrefix(result.Content, []byte{0xEF, 0xBB, 0xBF})).To(BeTrue())
		})

		It("should round-trip the visible field values", func() {
			result, err := exportService.Export("1", assignment.ListQuery{}, export.Options{Format: export.FormatCSV})
			Expect(err).ToNot(HaveOccurred())

			records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(result.Content, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
			Expect(err).ToNot(HaveOccurred())

			Expect(records).To(HaveLen(4))
			Expect(records[0]).To(Equal([]string{"할당 ID", "직원명", "자산 설명", "자산 유형", "할당일", "반납일", "상태", "비고"}))
			Expect(records[1]).To(Equal([]string{"AS001", "김철수", "Dell XPS 15 노트북", "hardware", "2024-01-15", "", "사용중", "개발 장비"}))
			Expect(records[2]).To(Equal([]string{"AS002", "이영희", "Adobe Creative Cloud", "software", "2024-02-01", "2024-03-10", "반납완료", ""}))
			Expect(records[3]).To(Equal([]string{"AS003", "박민수", "LG 그램 17", "hardware", "2023-11-20", "", "연체", ""}))
		})

		It("should append employee detail columns when asked", func() {
			result, err := exportService.Export("1", assignment.ListQuery{}, export.Options{
				Format:                 export.FormatCSV,
				IncludeEmployeeDetails: true,
			})
			Expect(err).ToNot(HaveOccurred())

			records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(result.Content, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
			Expect(err).ToNot(HaveOccurred())

			Expect(records[0][8:]).To(Equal([]string{"부서", "직급", "이메일"}))
			Expect(records[1][8:]).To(Equal([]string{"개발팀", "선임 개발자", "kim.cs@company.kr"}))
			// record without an embedded snapshot exports empty cells
			Expect(records[3][8:]).To(Equal([]string{"", "", ""}))
		})

		It("should append asset detail columns when asked", func() {
			result, err := exportService.Export("1", assignment.ListQuery{}, export.Options{
				Format:              export.FormatCSV,
				IncludeAssetDetails: true,
			})
			Expect(err).ToNot(HaveOccurred())

			records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(result.Content, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
			Expect(err).ToNot(HaveOccurred())

			Expect(records[0][8:]).To(Equal([]string{"자산 ID", "제조사", "모델", "시리얼 번호"}))
			Expect(records[1][8:]).To(Equal([]string{"HW001", "Dell", "XPS 15 9530", "DX15-2024-001"}))
		})
	})

	Describe("Workbook export", func() {
		openWorkbook := func(result *export.Result) *excelize.File {
			f, err := excelize.OpenReader(bytes.NewReader(result.Content))
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(func() { f.Close() })
			return f
		}

		It("should always carry the assignment list sheet", func() {
			result, err := exportService.Export("1", assignment.ListQuery{}, export.Options{Format: export.FormatXLSX})
			Expect(err).ToNot(HaveOccurred())

			f := openWorkbook(result)
			Expect(f.GetSheetList()).To(Equal([]string{"할당 목록"}))

			rows, err := f.GetRows("할당 목록")
			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(4))
			Expect(rows[1][0]).To(Equal("AS001"))
			Expect(rows[1][6]).To(Equal("사용중"))
		})

		It("should add the derived sheets per the options", func() {
			result, err := exportService.Export("1", assignment.ListQuery{}, export.Options{
				Format:                 export.FormatXLSX,
				IncludeStatistics:      true,
				IncludeHistory:         true,
				IncludeAssetDetails:    true,
				IncludeEmployeeDetails: true,
			})
			Expect(err).ToNot(HaveOccurred())

			f := openWorkbook(result)
			Expect(f.GetSheetList()).To(Equal([]string{"할당 목록", "통계 요약", "할당 이력", "자산 활용도", "직원별 할당"}))
		})

		It("should restrict the history sheet to closed assignments with whole days used", func() {
			result, err := exportService.Export("1", assignment.ListQuery{}, export.Options{
				Format:         export.FormatXLSX,
				IncludeHistory: true,
			})
			Expect(err).ToNot(HaveOccurred())

			f := openWorkbook(result)
			rows, err := f.GetRows("할당 이력")
			Expect(err).ToNot(HaveOccurred())

			Expect(rows).To(HaveLen(2))
			Expect(rows[0]).To(Equal([]string{"할당 ID", "직원명", "자산 설명", "할당일", "반납일", "사용 일수"}))
			Expect(rows[1][0]).To(Equal("AS002"))
			// 2024-02-01 to 2024-03-10 in a leap year
			Expect(rows[1][5]).To(Equal("38"))
		})

		It("should total the statistics sheet from the collection", func() {
			result, err := exportService.Export("1", assignment.ListQuery{}, export.Options{
				Format:            export.FormatXLSX,
				IncludeStatistics: true,
			})
			Expect(err).ToNot(HaveOccurred())

			f := openWorkbook(result)
			value, err := f.GetCellValue("통계 요약", "B1")
			Expect(err).ToNot(HaveOccurred())
			Expect(value).To(Equal("3"))

			label, err := f.GetCellValue("통계 요약", "A1")
			Expect(err).ToNot(HaveOccurred())
			Expect(label).To(Equal("전체 할당"))
		})
	})

	Describe("Export", func() {
		It("should publish an exported event with the row count", func() {
			result, err := exportService.Export("7", assignment.ListQuery{}, export.Options{Format: export.FormatCSV, FileName: "weekly"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.FileName).To(Equal("weekly.csv"))
			Expect(publisher.published).To(HaveLen(1))

			event, ok := publisher.published[0].(*events.AssignmentsExportedEvent)
			Expect(ok).To(BeTrue())
			Expect(event.EventType()).To(Equal(events.EventTypeAssignmentsExported))
			Expect(event.RowCount).To(Equal(3))
			Expect(event.Format).To(Equal(export.FormatCSV))
			Expect(event.ActorID).To(Equal("7"))
		})

		It("should pass the selection query through to the collector", func() {
			query := assignment.ListQuery{Search: "노트북"}

			_, err := exportService.Export("1", query, export.Options{Format: export.FormatCSV})

			Expect(err).ToNot(HaveOccurred())
			Expect(collector.lastQuery.Search).To(Equal("노트북"))
		})

		It("should propagate collector failures without publishing", func() {
			collector.err = apperrors.NewInternalError("database unavailable", nil)

			_, err := exportService.Export("1", assignment.ListQuery{}, export.Options{Format: export.FormatCSV})

			Expect(err).To(HaveOccurred())
			Expect(publisher.published).To(BeEmpty())
		})

		It("should export an empty collection as headers only", func() {
			collector.assignments = nil

			result, err := exportService.Export("1", assignment.ListQuery{}, export.Options{Format: export.FormatCSV})

			Expect(err).ToNot(HaveOccurred())
			records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(result.Content, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(1))
		})
	})
})
