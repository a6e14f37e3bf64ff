package assignment

import "math"

// DepartmentUnknown is the bucket for assignments without an embedded
// employee snapshot.
const DepartmentUnknown = "unknown"

type Stats struct {
	Total                 int                `json:"total"`
	ByStatus              map[string]int     `json:"by_status"`
	ByAssetType           map[string]int     `json:"by_asset_type"`
	ByDepartment          map[string]int     `json:"by_department"`
	StatusPercentages     map[string]float64 `json:"status_percentages"`
	AssetTypePercentages  map[string]float64 `json:"asset_type_percentages"`
	DepartmentPercentages map[string]float64 `json:"department_percentages"`
}

// ComputeStats reduces the collection to counts and percentage
// breakdowns by status, asset type, and department. The result does
// not depend on input order. Percentages are rounded to one decimal
// place and are all zero when the collection is empty.
func ComputeStats(assignments []*Assignment) Stats {
	stats := Stats{
		Total:        len(assignments),
		ByStatus:     make(map[string]int),
		ByAssetType:  make(map[string]int),
		ByDepartment: make(map[string]int),
	}

	for _, a := range assignments {
		stats.ByStatus[string(a.Status)]++
		stats.ByAssetType[a.AssetType]++

		department := a.Department()
		if department == "" {
			department = DepartmentUnknown
		}
		stats.ByDepartment[department]++
	}

	stats.StatusPercentages = percentages(stats.ByStatus, stats.Total)
	stats.AssetTypePercentages = percentages(stats.ByAssetType, stats.Total)
	stats.DepartmentPercentages = percentages(stats.ByDepartment, stats.Total)
	return stats
}

func percentages(counts map[string]int, total int) map[string]float64 {
	result := make(map[string]float64, len(counts))
	for key, count := range counts {
		if total == 0 {
			result[key] = 0
			continue
		}
		result[key] = math.Round(float64(count)/float64(total)*1000) / 10
	}
	return result
}
