package export

import (
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/minjae-dev/asset-management/internal/assignment"
)

const (
	sheetAssignments = "할당 목록"
	sheetStatistics  = "통계 요약"
	sheetHistory     = "할당 이력"
	sheetUtilization = "자산 활용도"
	sheetEmployees   = "직원별 할당"
)

var typeLabels = map[string]string{
	assignment.AssetTypeHardware: "하드웨어",
	assignment.AssetTypeSoftware: "소프트웨어",
}

func typeLabel(assetType string) string {
	if label, ok := typeLabels[assetType]; ok {
		return label
	}
	return assetType
}

// writeWorkbook renders the workbook into w. The assignment list sheet
// is always present; the derived sheets follow the options.
func writeWorkbook(w io.Writer, assignments []*assignment.Assignment, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetAssignments); err != nil {
		return err
	}
	if err := writeAssignmentSheet(f, assignments, opts); err != nil {
		return err
	}

	if opts.IncludeStatistics {
		if err := writeStatisticsSheet(f, assignments); err != nil {
			return err
		}
	}
	if opts.IncludeHistory {
		if err := writeHistorySheet(f, assignments); err != nil {
			return err
		}
	}
	if opts.IncludeAssetDetails {
		if err := writeUtilizationSheet(f, assignments); err != nil {
			return err
		}
	}
	if opts.IncludeEmployeeDetails {
		if err := writeEmployeeSheet(f, assignments); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeAssignmentSheet(f *excelize.File, assignments []*assignment.Assignment, opts Options) error {
	cols := columnsFor(opts)

	rows := make([][]interface{}, 0, len(assignments)+1)
	header := make([]interface{}, len(cols))
	for i, col := range cols {
		header[i] = col.header
	}
	rows = append(rows, header)

	for _, a := range assignments {
		values := row(cols, a)
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		rows = append(rows, cells)
	}

	if err := writeRows(f, sheetAssignments, rows); err != nil {
		return err
	}
	return styleHeader(f, sheetAssignments, len(cols))
}

func writeStatisticsSheet(f *excelize.File, assignments []*assignment.Assignment) error {
	if _, err := f.NewSheet(sheetStatistics); err != nil {
		return err
	}

	stats := assignment.ComputeStats(assignments)

	rows := [][]interface{}{
		{"전체 할당", stats.Total},
		{},
		{"상태별 현황"},
		{"상태", "건수", "비율(%)"},
	}
	for _, status := range assignment.AllStatuses() {
		key := string(status)
		rows = append(rows, []interface{}{status.Label(), stats.ByStatus[key], stats.StatusPercentages[key]})
	}

	rows = append(rows, []interface{}{}, []interface{}{"자산 유형별 현황"}, []interface{}{"유형", "건수", "비율(%)"})
	for _, assetType := range []string{assignment.AssetTypeHardware, assignment.AssetTypeSoftware} {
		rows = append(rows, []interface{}{typeLabel(assetType), stats.ByAssetType[assetType], stats.AssetTypePercentages[assetType]})
	}

	departments := make([]string, 0, len(stats.ByDepartment))
	for department := range stats.ByDepartment {
		departments = append(departments, department)
	}
	sort.Strings(departments)

	rows = append(rows, []interface{}{}, []interface{}{"부서별 현황"}, []interface{}{"부서", "건수", "비율(%)"})
	for _, department := range departments {
		rows = append(rows, []interface{}{department, stats.ByDepartment[department], stats.DepartmentPercentages[department]})
	}

	return writeRows(f, sheetStatistics, rows)
}

// writeHistorySheet lists closed assignments with the whole days each
// asset was held.
func writeHistorySheet(f *excelize.File, assignments []*assignment.Assignment) error {
	if _, err := f.NewSheet(sheetHistory); err != nil {
		return err
	}

	rows := [][]interface{}{{"할당 ID", "직원명", "자산 설명", "할당일", "반납일", "사용 일수"}}
	for _, a := range assignments {
		if a.ReturnDate == "" {
			continue
		}
		var daysCell interface{} = ""
		if days, ok := a.DaysUsed(); ok {
			daysCell = days
		}
		rows = append(rows, []interface{}{a.ID, a.EmployeeName, a.AssetDescription, a.AssignedDate, a.ReturnDate, daysCell})
	}

	if err := writeRows(f, sheetHistory, rows); err != nil {
		return err
	}
	return styleHeader(f, sheetHistory, 6)
}

func writeUtilizationSheet(f *excelize.File, assignments []*assignment.Assignment) error {
	if _, err := f.NewSheet(sheetUtilization); err != nil {
		return err
	}

	type assetUsage struct {
		description string
		assetType   string
		total       int
		inUse       int
		daysUsed    int
	}

	usage := make(map[string]*assetUsage)
	for _, a := range assignments {
		u, ok := usage[a.AssetID]
		if !ok {
			u = &assetUsage{description: a.AssetDescription, assetType: a.AssetType}
			usage[a.AssetID] = u
		}
		u.total++
		if a.Status == assignment.StatusInUse {
			u.inUse++
		}
		if days, ok := a.DaysUsed(); ok {
			u.daysUsed += days
		}
	}

	ids := make([]string, 0, len(usage))
	for id := range usage {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := [][]interface{}{{"자산 ID", "자산 설명", "자산 유형", "총 할당", "사용중", "누적 사용 일수"}}
	for _, id := range ids {
		u := usage[id]
		rows = append(rows, []interface{}{id, u.description, typeLabel(u.assetType), u.total, u.inUse, u.daysUsed})
	}

	if err := writeRows(f, sheetUtilization, rows); err != nil {
		return err
	}
	return styleHeader(f, sheetUtilization, 6)
}

func writeEmployeeSheet(f *excelize.File, assignments []*assignment.Assignment) error {
	if _, err := f.NewSheet(sheetEmployees); err != nil {
		return err
	}

	type employeeUsage struct {
		name       string
		department string
		total      int
		open       int
	}

	usage := make(map[string]*employeeUsage)
	for _, a := range assignments {
		u, ok := usage[a.EmployeeID]
		if !ok {
			u = &employeeUsage{name: a.EmployeeName, department: a.Department()}
			usage[a.EmployeeID] = u
		}
		u.total++
		if !a.Status.IsClosed() {
			u.open++
		}
	}

	ids := make([]string, 0, len(usage))
	for id := range usage {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := [][]interface{}{{"직원 ID", "직원명", "부서", "총 할당", "미반납"}}
	for _, id := range ids {
		u := usage[id]
		rows = append(rows, []interface{}{id, u.name, u.department, u.total, u.open})
	}

	if err := writeRows(f, sheetEmployees, rows); err != nil {
		return err
	}
	return styleHeader(f, sheetEmployees, 5)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, width int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(width)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}
