package report_test

import (
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/assignment"
	"github.com/minjae-dev/asset-management/internal/report"
)

type mockStatsProvider struct {
	stats     assignment.Stats
	err       error
	lastQuery assignment.ListQuery
}

func (m *mockStatsProvider) Stats(query assignment.ListQuery) (assignment.Stats, error) {
	m.lastQuery = query
	if m.err != nil {
		return assignment.Stats{}, m.err
	}
	return m.stats, nil
}

var _ = Describe("Report Service", func() {
	var (
		service  *report.Service
		provider *mockStatsProvider
	)

	BeforeEach(func() {
		provider = &mockStatsProvider{
			stats: assignment.Stats{
				Total:        3,
				ByStatus:     map[string]int{"in_use": 2, "returned": 1},
				ByAssetType:  map[string]int{"hardware": 2, "software": 1},
				ByDepartment: map[string]int{"개발팀": 2, "마케팅팀": 1},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = report.NewService(provider, logger)
	})

	Describe("Utilization", func() {
		It("should render a standalone HTML page", func() {
			result, err := service.Utilization(assignment.ListQuery{})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.FileName).To(Equal("utilization-report.html"))
			Expect(result.ContentType).To(Equal("text/html; charset=utf-8"))

			html := string(result.Content)
			Expect(html).To(ContainSubstring("<html"))
			Expect(html).To(ContainSubstring("echarts"))
			Expect(html).To(ContainSubstring("자산 활용 리포트"))
		})

		It("should chart every breakdown", func() {
			result, err := service.Utilization(assignment.ListQuery{})
			Expect(err).NotTo(HaveOccurred())

			html := string(result.Content)
			Expect(html).To(ContainSubstring("상태별 현황"))
			Expect(html).To(ContainSubstring("사용중"))
			Expect(html).To(ContainSubstring("자산 유형별 현황"))
			Expect(html).To(ContainSubstring("하드웨어"))
			Expect(html).To(ContainSubstring("부서별 할당"))
			Expect(html).To(ContainSubstring("개발팀"))
		})

		It("should select the collection with the caller's query", func() {
			_, err := service.Utilization(assignment.ListQuery{Search: "노트북"})
			Expect(err).NotTo(HaveOccurred())

			Expect(provider.lastQuery.Search).To(Equal("노트북"))
		})

		It("should render an empty collection", func() {
			provider.stats = assignment.Stats{
				ByStatus:     map[string]int{},
				ByAssetType:  map[string]int{},
				ByDepartment: map[string]int{},
			}

			result, err := service.Utilization(assignment.ListQuery{})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Content).NotTo(BeEmpty())
		})

		It("should surface provider failures", func() {
			provider.err = apperrors.NewInternalError("database unavailable", nil)

			result, err := service.Utilization(assignment.ListQuery{})

			Expect(result).To(BeNil())
			Expect(err).To(Equal(provider.err))
		})
	})
})
