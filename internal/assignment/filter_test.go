package assignment_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/minjae-dev/asset-management/internal/assignment"
)

var _ = Describe("ApplyFilters", func() {
	var collection []*assignment.Assignment

	BeforeEach(func() {
		collection = sampleAssignments()
	})

	Context("with an empty filter set", func() {
		It("should return every assignment", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{})
			Expect(ids(result)).To(ConsistOf("AS001", "AS002", "AS003", "AS004", "AS005"))
		})

		It("should return a new slice, leaving the input untouched", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{})
			Expect(result).NotTo(BeIdenticalTo(collection))
			Expect(collection).To(HaveLen(5))
		})
	})

	Context("filtering by status", func() {
		It("should match a single status code", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				Statuses: []assignment.Status{assignment.StatusReturned},
			})
			Expect(ids(result)).To(Equal([]string{"AS002", "AS005"}))
		})

		It("should match any of several statuses", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				Statuses: []assignment.Status{assignment.StatusInUse, assignment.StatusOverdue},
			})
			Expect(ids(result)).To(ConsistOf("AS001", "AS003"))
		})

		It("should accept Korean display labels as filter values", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				Statuses: []assignment.Status{assignment.Status("사용중")},
			})
			Expect(ids(result)).To(Equal([]string{"AS001"}))
		})

		It("should return empty for a status matching nothing", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				Statuses: []assignment.Status{assignment.StatusLost},
			})
			Expect(result).To(BeEmpty())
		})
	})

	Context("filtering by asset type", func() {
		It("should return only hardware assignments", func() {
			two := collection[:2]
			result := assignment.ApplyFilters(two, assignment.FilterSet{
				AssetType: assignment.AssetTypeHardware,
			})
			Expect(ids(result)).To(Equal([]string{"AS001"}))
		})

		It("should return only software assignments", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				AssetType: assignment.AssetTypeSoftware,
			})
			Expect(ids(result)).To(ConsistOf("AS002", "AS004"))
		})
	})

	Context("filtering by employee", func() {
		It("should match the employee ID exactly", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				EmployeeID: "EMP003",
			})
			Expect(ids(result)).To(Equal([]string{"AS003"}))
		})
	})

	Context("filtering by department", func() {
		It("should match against the embedded employee department", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				Department: "개발팀",
			})
			Expect(ids(result)).To(ConsistOf("AS001", "AS003"))
		})

		It("should not match assignments without an employee snapshot", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				Department: "재무팀",
			})
			Expect(result).To(BeEmpty())
		})
	})

	Context("filtering by assigned date range", func() {
		It("should treat both bounds as inclusive", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				AssignedDateFrom: "2024-01-15",
				AssignedDateTo:   "2024-02-01",
			})
			Expect(ids(result)).To(ConsistOf("AS001", "AS002", "AS005"))
		})

		It("should apply a lone lower bound", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				AssignedDateFrom: "2024-03-01",
			})
			Expect(ids(result)).To(Equal([]string{"AS004"}))
		})

		It("should apply a lone upper bound", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				AssignedDateTo: "2023-12-31",
			})
			Expect(ids(result)).To(Equal([]string{"AS003"}))
		})
	})

	Context("filtering by return date range", func() {
		It("should exclude open assignments from any return date range", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				ReturnDateFrom: "2024-01-01",
			})
			Expect(ids(result)).To(ConsistOf("AS002", "AS005"))
		})

		It("should bound the range inclusively", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				ReturnDateFrom: "2024-03-10",
				ReturnDateTo:   "2024-03-10",
			})
			Expect(ids(result)).To(Equal([]string{"AS002"}))
		})
	})

	Context("filtering by overdue flag", func() {
		It("should restrict to overdue status when true", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				Overdue: true,
			})
			Expect(ids(result)).To(Equal([]string{"AS003"}))
		})

		It("should impose no constraint when false", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				Overdue: false,
			})
			Expect(result).To(HaveLen(5))
		})
	})

	Context("combining predicates", func() {
		It("should AND every provided predicate", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				AssetType:  assignment.AssetTypeHardware,
				Department: "개발팀",
				Statuses:   []assignment.Status{assignment.StatusInUse},
			})
			Expect(ids(result)).To(Equal([]string{"AS001"}))
		})

		It("should return empty when predicates conflict", func() {
			result := assignment.ApplyFilters(collection, assignment.FilterSet{
				AssetType:  assignment.AssetTypeSoftware,
				Department: "개발팀",
			})
			Expect(result).To(BeEmpty())
		})
	})

	It("should only ever return records from the input", func() {
		result := assignment.ApplyFilters(collection, assignment.FilterSet{
			Statuses: []assignment.Status{assignment.StatusReturned, assignment.StatusPending},
		})
		for _, a := range result {
			Expect(collection).To(ContainElement(a))
		}
	})
})
