package importer

import (
	"encoding/csv"
	"io"
	"strings"

	errors "github.com/minjae-dev/asset-management/internal"
)

// Row is one parsed data line of an import file. Line is the 1-based
// position within the file including the header, so error messages
// match what the user sees in a spreadsheet.
type Row struct {
	Line         int
	EmployeeID   string
	AssetID      string
	AssignedDate string
	ReturnDate   string
	Status       string
	Notes        string
}

// RowError points at a single invalid cell or rule violation.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// RowErrors is the details payload of a rejected import.
type RowErrors struct {
	Errors []RowError `json:"errors"`
}

// canonicalField maps accepted column headers, English and Korean, to
// canonical field names. Matching is case-insensitive on the trimmed
// header.
func canonicalField(header string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case "employee_id", "직원 id", "직원id", "직원번호":
		return "employee_id", true
	case "asset_id", "자산 id", "자산id", "자산번호":
		return "asset_id", true
	case "assigned_date", "할당일":
		return "assigned_date", true
	case "return_date", "반납일":
		return "return_date", true
	case "status", "상태":
		return "status", true
	case "notes", "비고", "메모":
		return "notes", true
	}
	return "", false
}

var requiredColumns = []string{"employee_id", "asset_id", "assigned_date"}

// utf8BOM is stripped from the first header cell; exports written for
// Excel carry it.
const utf8BOM = "\xEF\xBB\xBF"

// ParseCSV reads an import file into rows. Unknown columns are
// ignored so users can keep extra spreadsheet columns around; missing
// required columns reject the file as a whole.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewValidationError("file is empty", errors.ErrCodeImportValidationFailed)
	}
	if err != nil {
		return nil, errors.NewValidationError("file is not valid CSV: "+err.Error(), errors.ErrCodeImportValidationFailed)
	}

	fields := make(map[string]int)
	for i, cell := range header {
		if i == 0 {
			cell = strings.TrimPrefix(cell, utf8BOM)
		}
		if canonical, ok := canonicalField(cell); ok {
			fields[canonical] = i
		}
	}

	for _, required := range requiredColumns {
		if _, ok := fields[required]; !ok {
			return nil, errors.NewValidationError("missing required column: "+required, errors.ErrCodeImportValidationFailed)
		}
	}

	cell := func(record []string, field string) string {
		idx, ok := fields[field]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []Row
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewValidationError("file is not valid CSV: "+err.Error(), errors.ErrCodeImportValidationFailed)
		}
		line++

		rows = append(rows, Row{
			Line:         line,
			EmployeeID:   cell(record, "employee_id"),
			AssetID:      cell(record, "asset_id"),
			AssignedDate: cell(record, "assigned_date"),
			ReturnDate:   cell(record, "return_date"),
			Status:       cell(record, "status"),
			Notes:        cell(record, "notes"),
		})
	}

	return rows, nil
}
