package assignment

// FilterSet is a sparse set of predicates combined with logical AND.
// Zero-valued fields impose no constraint. Date bounds are inclusive
// ISO YYYY-MM-DD strings compared lexicographically.
type FilterSet struct {
	Statuses         []Status `json:"statuses,omitempty"`
	AssetType        string   `json:"asset_type,omitempty"`
	EmployeeID       string   `json:"employee_id,omitempty"`
	Department       string   `json:"department,omitempty"`
	AssignedDateFrom string   `json:"assigned_date_from,omitempty"`
	AssignedDateTo   string   `json:"assigned_date_to,omitempty"`
	ReturnDateFrom   string   `json:"return_date_from,omitempty"`
	ReturnDateTo     string   `json:"return_date_to,omitempty"`
	Overdue          bool     `json:"overdue,omitempty"`
}

func (f FilterSet) IsZero() bool {
	return len(f.Statuses) == 0 &&
		f.AssetType == "" &&
		f.EmployeeID == "" &&
		f.Department == "" &&
		f.AssignedDateFrom == "" &&
		f.AssignedDateTo == "" &&
		f.ReturnDateFrom == "" &&
		f.ReturnDateTo == "" &&
		!f.Overdue
}

// ApplyFilters returns the assignments satisfying every predicate in
// the filter set. The input slice is not mutated and the result is
// always a new slice. Filter values that match nothing, including
// unknown status strings, simply produce an empty result.
func ApplyFilters(assignments []*Assignment, filters FilterSet) []*Assignment {
	normalized := filters.normalized()
	result := make([]*Assignment, 0, len(assignments))
	for _, a := range assignments {
		if normalized.matches(a) {
			result = append(result, a)
		}
	}
	return result
}

// normalized maps status filter values through ParseStatus so callers
// may pass internal codes or display labels interchangeably.
func (f FilterSet) normalized() FilterSet {
	if len(f.Statuses) == 0 {
		return f
	}
	statuses := make([]Status, len(f.Statuses))
	for i, s := range f.Statuses {
		parsed, _ := ParseStatus(string(s))
		statuses[i] = parsed
	}
	f.Statuses = statuses
	return f
}

func (f FilterSet) matches(a *Assignment) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, a.Status) {
		return false
	}
	if f.AssetType != "" && a.AssetType != f.AssetType {
		return false
	}
	if f.EmployeeID != "" && a.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Department != "" && a.Department() != f.Department {
		return false
	}
	if f.AssignedDateFrom != "" && a.AssignedDate < f.AssignedDateFrom {
		return false
	}
	if f.AssignedDateTo != "" && a.AssignedDate > f.AssignedDateTo {
		return false
	}
	if f.ReturnDateFrom != "" && (a.ReturnDate == "" || a.ReturnDate < f.ReturnDateFrom) {
		return false
	}
	if f.ReturnDateTo != "" && (a.ReturnDate == "" || a.ReturnDate > f.ReturnDateTo) {
		return false
	}
	if f.Overdue && a.Status != StatusOverdue {
		return false
	}
	return true
}

func containsStatus(statuses []Status, status Status) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
