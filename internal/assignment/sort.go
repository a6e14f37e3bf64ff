package assignment

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

var sortableFields = map[string]func(*Assignment) string{
	"id":                func(a *Assignment) string { return a.ID },
	"employee_id":       func(a *Assignment) string { return a.EmployeeID },
	"asset_id":          func(a *Assignment) string { return a.AssetID },
	"asset_type":        func(a *Assignment) string { return a.AssetType },
	"assigned_date":     func(a *Assignment) string { return a.AssignedDate },
	"return_date":       func(a *Assignment) string { return a.ReturnDate },
	"status":            func(a *Assignment) string { return a.Status.Label() },
	"notes":             func(a *Assignment) string { return a.Notes },
	"employee_name":     func(a *Assignment) string { return a.EmployeeName },
	"asset_description": func(a *Assignment) string { return a.AssetDescription },
	"department":        func(a *Assignment) string { return a.Department() },
}

var dateFields = map[string]bool{
	"assigned_date": true,
	"return_date":   true,
}

// SortBy orders assignments by the given field and direction and
// returns a new slice. Comparison is numeric when both values parse
// as numbers, lexicographic for date fields and ISO date strings, and
// locale-aware (Korean collation) for everything else. Ties are broken
// on the assignment ID so repeated calls are deterministic. An unknown
// field name is a no-op: the input order is preserved.
func SortBy(assignments []*Assignment, field, order string) []*Assignment {
	result := make([]*Assignment, len(assignments))
	copy(result, assignments)

	extract, ok := sortableFields[field]
	if !ok {
		return result
	}

	desc := order == OrderDesc
	// Collators carry internal buffers, so build one per call rather
	// than sharing across goroutines.
	collator := collate.New(language.Korean)

	sort.SliceStable(result, func(i, j int) bool {
		cmp := compareValues(collator, field, extract(result[i]), extract(result[j]))
		if cmp == 0 {
			cmp = strings.Compare(result[i].ID, result[j].ID)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return result
}

func compareValues(collator *collate.Collator, field, a, b string) int {
	if an, aok := parseNumber(a); aok {
		if bn, bok := parseNumber(b); bok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}
	if dateFields[field] || (isISODate(a) && isISODate(b)) {
		// ISO dates order correctly as plain strings; missing dates
		// sort first ascending.
		return strings.Compare(a, b)
	}
	return collator.CompareString(a, b)
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isISODate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
