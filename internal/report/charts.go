package report

import (
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/minjae-dev/asset-management/internal/assignment"
)

var typeLabels = map[string]string{
	assignment.AssetTypeHardware: "하드웨어",
	assignment.AssetTypeSoftware: "소프트웨어",
}

// statusPie breaks the collection down by assignment status. Empty
// buckets are dropped so the legend only carries states that occur.
func statusPie(stats assignment.Stats) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "상태별 현황"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	data := make([]opts.PieData, 0, len(stats.ByStatus))
	for _, status := range assignment.AllStatuses() {
		count := stats.ByStatus[string(status)]
		if count == 0 {
			continue
		}
		data = append(data, opts.PieData{Name: status.Label(), Value: count})
	}

	pie.AddSeries("할당", data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c} ({d}%)"}),
	)
	return pie
}

func assetTypePie(stats assignment.Stats) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "자산 유형별 현황"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	data := make([]opts.PieData, 0, 2)
	for _, assetType := range []string{assignment.AssetTypeHardware, assignment.AssetTypeSoftware} {
		count := stats.ByAssetType[assetType]
		if count == 0 {
			continue
		}
		data = append(data, opts.PieData{Name: typeLabels[assetType], Value: count})
	}

	pie.AddSeries("자산 유형", data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c} ({d}%)"}),
	)
	return pie
}

// departmentBar charts assignment volume per department in a stable
// alphabetical order.
func departmentBar(stats assignment.Stats) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "부서별 할당"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	departments := make([]string, 0, len(stats.ByDepartment))
	for department := range stats.ByDepartment {
		departments = append(departments, department)
	}
	sort.Strings(departments)

	values := make([]opts.BarData, len(departments))
	for i, department := range departments {
		values[i] = opts.BarData{Value: stats.ByDepartment[department]}
	}

	bar.SetXAxis(departments).AddSeries("할당 건수", values)
	return bar
}
