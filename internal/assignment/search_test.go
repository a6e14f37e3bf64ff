package assignment_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/minjae-dev/asset-management/internal/assignment"
)

var _ = Describe("Search", func() {
	var collection []*assignment.Assignment

	BeforeEach(func() {
		collection = sampleAssignments()
	})

	Context("with an empty query", func() {
		It("should return the input unchanged", func() {
			result := assignment.Search(collection, "")
			Expect(result).To(HaveLen(len(collection)))
			Expect(ids(result)).To(Equal(ids(collection)))
		})

		It("should treat whitespace-only queries as empty", func() {
			result := assignment.Search(collection, "   \t ")
			Expect(result).To(HaveLen(len(collection)))
		})
	})

	Context("matching the assignment ID", func() {
		It("should find an exact ID", func() {
			result := assignment.Search(collection, "AS002")
			Expect(ids(result)).To(Equal([]string{"AS002"}))
		})

		It("should match case-insensitively", func() {
			result := assignment.Search(collection, "as002")
			Expect(ids(result)).To(Equal([]string{"AS002"}))
		})
	})

	Context("matching the employee name", func() {
		It("should find a Korean name substring", func() {
			result := assignment.Search(collection, "김철")
			Expect(ids(result)).To(Equal([]string{"AS001"}))
		})
	})

	Context("matching the asset fields", func() {
		It("should find by asset ID", func() {
			result := assignment.Search(collection, "HW002")
			Expect(ids(result)).To(Equal([]string{"AS003"}))
		})

		It("should find by asset description", func() {
			result := assignment.Search(collection, "노트북")
			Expect(ids(result)).To(ConsistOf("AS001", "AS003"))
		})

		It("should find by the embedded manufacturer", func() {
			result := assignment.Search(collection, "apple")
			Expect(ids(result)).To(Equal([]string{"AS005"}))
		})
	})

	Context("with a query matching nothing", func() {
		It("should return an empty result, not an error", func() {
			result := assignment.Search(collection, "존재하지않음")
			Expect(result).To(BeEmpty())
		})
	})

	It("should return a subset of the input", func() {
		result := assignment.Search(collection, "노트북")
		for _, a := range result {
			Expect(collection).To(ContainElement(a))
		}
	})

	It("should not mutate the input", func() {
		before := ids(collection)
		assignment.Search(collection, "HW001")
		Expect(ids(collection)).To(Equal(before))
	})
})
