package report

import (
	"bytes"
	"log/slog"

	"github.com/go-echarts/go-echarts/v2/components"

	errors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/assignment"
)

// FileName is the suggested download name for the rendered report.
const FileName = "utilization-report.html"

// StatsProvider computes the aggregate view the report is built from.
// The assignment service satisfies it, so the report covers exactly
// the collection the caller's query selects.
type StatsProvider interface {
	Stats(query assignment.ListQuery) (assignment.Stats, error)
}

// Result is a fully rendered report page.
type Result struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Service renders assignment statistics into a standalone HTML report
// with embedded charts.
type Service struct {
	stats  StatsProvider
	logger *slog.Logger
}

func NewService(stats StatsProvider, logger *slog.Logger) *Service {
	return &Service{
		stats:  stats,
		logger: logger,
	}
}

// Utilization renders the status, asset type, and department
// breakdowns for the selected collection as a single HTML page. The
// page is self-contained apart from the chart runtime, which loads
// from the echarts CDN.
func (s *Service) Utilization(query assignment.ListQuery) (*Result, error) {
	stats, err := s.stats.Stats(query)
	if err != nil {
		s.logger.Error("failed to compute report statistics", "error", err)
		return nil, err
	}

	page := components.NewPage()
	page.PageTitle = "자산 활용 리포트"
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		statusPie(stats),
		assetTypePie(stats),
		departmentBar(stats),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		s.logger.Error("report rendering failed", "error", err)
		return nil, errors.NewInternalError("failed to render report", err)
	}

	s.logger.Info("utilization report rendered", "assignments", stats.Total)

	return &Result{
		FileName:    FileName,
		ContentType: "text/html; charset=utf-8",
		Content:     buf.Bytes(),
	}, nil
}
