package assignment

import "strings"

// Search returns the assignments where the trimmed query is a
// case-insensitive substring of at least one candidate field: the
// assignment ID, employee name, asset ID, asset description, or the
// embedded asset manufacturer. An empty or whitespace-only query
// returns the input unchanged. No tokenization or fuzzy matching.
func Search(assignments []*Assignment, query string) []*Assignment {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return assignments
	}
	needle := strings.ToLower(trimmed)

	result := make([]*Assignment, 0, len(assignments))
	for _, a := range assignments {
		if matchesQuery(a, needle) {
			result = append(result, a)
		}
	}
	return result
}

func matchesQuery(a *Assignment, needle string) bool {
	candidates := []string{
		a.ID,
		a.EmployeeName,
		a.AssetID,
		a.AssetDescription,
	}
	if a.Employee != nil {
		candidates = append(candidates, a.Employee.Name)
	}
	if a.Asset != nil {
		candidates = append(candidates, a.Asset.Name, a.Asset.Manufacturer)
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if strings.Contains(strings.ToLower(candidate), needle) {
			return true
		}
	}
	return false
}
