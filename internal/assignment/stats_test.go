package assignment_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/minjae-dev/asset-management/internal/assignment"
)

var _ = Describe("ComputeStats", func() {
	Context("with a mixed collection", func() {
		var stats assignment.Stats

		BeforeEach(func() {
			stats = assignment.ComputeStats(sampleAssignments())
		})

		It("should count the total", func() {
			Expect(stats.Total).To(Equal(5))
		})

		It("should break counts down by status", func() {
			Expect(stats.ByStatus).To(Equal(map[string]int{
				"in_use":   1,
				"returned": 2,
				"overdue":  1,
				"pending":  1,
			}))
		})

		It("should break counts down by asset type", func() {
			Expect(stats.ByAssetType).To(Equal(map[string]int{
				"hardware": 3,
				"software": 2,
			}))
		})

		It("should break counts down by department with an unknown bucket", func() {
			Expect(stats.ByDepartment).To(Equal(map[string]int{
				"개발팀":     2,
				"마케팅팀":    1,
				"인사팀":     1,
				"unknown": 1,
			}))
		})

		It("should have per-status counts summing to the total", func() {
			sum := 0
			for _, count := range stats.ByStatus {
				sum += count
			}
			Expect(sum).To(Equal(stats.Total))
		})

		It("should have percentages summing to about 100", func() {
			sum := 0.0
			for _, pct := range stats.StatusPercentages {
				sum += pct
			}
			Expect(sum).To(BeNumerically("~", 100.0, 0.5))

			sum = 0.0
			for _, pct := range stats.AssetTypePercentages {
				sum += pct
			}
			Expect(sum).To(BeNumerically("~", 100.0, 0.5))
		})

		It("should round percentages to one decimal", func() {
			Expect(stats.AssetTypePercentages["hardware"]).To(Equal(60.0))
			Expect(stats.AssetTypePercentages["software"]).To(Equal(40.0))
		})
	})

	Context("with the two-record scenario", func() {
		It("should report one of each asset type", func() {
			two := sampleAssignments()[:2]
			stats := assignment.ComputeStats(two)
			Expect(stats.Total).To(Equal(2))
			Expect(stats.ByAssetType).To(Equal(map[string]int{
				"hardware": 1,
				"software": 1,
			}))
		})
	})

	Context("with an empty collection", func() {
		It("should report zero totals and no NaN percentages", func() {
			stats := assignment.ComputeStats(nil)
			Expect(stats.Total).To(Equal(0))
			Expect(stats.ByStatus).To(BeEmpty())
			Expect(stats.ByAssetType).To(BeEmpty())
			Expect(stats.ByDepartment).To(BeEmpty())
			Expect(stats.StatusPercentages).To(BeEmpty())
		})
	})

	Context("input order", func() {
		It("should not affect any numeric result", func() {
			forward := sampleAssignments()
			backward := make([]*assignment.Assignment, len(forward))
			for i, a := range forward {
				backward[len(forward)-1-i] = a
			}

			statsForward := assignment.ComputeStats(forward)
			statsBackward := assignment.ComputeStats(backward)

			Expect(statsForward.Total).To(Equal(statsBackward.Total))
			Expect(statsForward.ByStatus).To(Equal(statsBackward.ByStatus))
			Expect(statsForward.ByAssetType).To(Equal(statsBackward.ByAssetType))
			Expect(statsForward.ByDepartment).To(Equal(statsBackward.ByDepartment))
			Expect(statsForward.StatusPercentages).To(Equal(statsBackward.StatusPercentages))
		})
	})
})
