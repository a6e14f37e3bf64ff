package export

import (
	"bytes"
	"context"
	"log/slog"

	errors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/assignment"
	"github.com/minjae-dev/asset-management/internal/core/events"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

const DefaultFileName = "assignments"

// Options control the column set, derived sheets, and output format
// of an export.
type Options struct {
	IncludeEmployeeDetails bool   `json:"include_employee_details"`
	IncludeAssetDetails    bool   `json:"include_asset_details"`
	IncludeHistory         bool   `json:"include_history"`
	IncludeStatistics      bool   `json:"include_statistics"`
	Format                 string `json:"format"`
	FileName               string `json:"file_name"`
}

func (o Options) Validate() error {
	if o.Format != FormatXLSX && o.Format != FormatCSV {
		return errors.NewValidationError("format must be xlsx or csv", errors.ErrCodeValidationFailed)
	}
	return nil
}

// FullFileName returns the requested file name with the format
// extension appended. The name is used verbatim.
func (o Options) FullFileName() string {
	name := o.FileName
	if name == "" {
		name = DefaultFileName
	}
	return name + "." + o.Format
}

// Result is a fully rendered export. Content is built entirely in
// memory before any byte reaches the caller, so a failed export never
// leaves a partial file behind.
type Result struct {
	FileName    string
	ContentType string
	Content     []byte
}

// column couples a header with its value extractor so the CSV table
// and the workbook sheets always agree on the visible field values.
type column struct {
	header  string
	extract func(a *assignment.Assignment) string
}

// columnsFor builds the assignment table columns for the given
// options. Employee and asset detail columns are appended after the
// base set, mirroring the admin grid layout.
func columnsFor(opts Options) []column {
	cols := []column{
		{"할당 ID", func(a *assignment.Assignment) string { return a.ID }},
		{"직원명", func(a *assignment.Assignment) string { return a.EmployeeName }},
		{"자산 설명", func(a *assignment.Assignment) string { return a.AssetDescription }},
		{"자산 유형", func(a *assignment.Assignment) string { return a.AssetType }},
		{"할당일", func(a *assignment.Assignment) string { return a.AssignedDate }},
		{"반납일", func(a *assignment.Assignment) string { return a.ReturnDate }},
		{"상태", func(a *assignment.Assignment) string { return a.Status.Label() }},
		{"비고", func(a *assignment.Assignment) string { return a.Notes }},
	}

	if opts.IncludeEmployeeDetails {
		cols = append(cols,
			column{"부서", func(a *assignment.Assignment) string { return a.Department() }},
			column{"직급", func(a *assignment.Assignment) string {
				if a.Employee == nil {
					return ""
				}
				return a.Employee.Position
			}},
			column{"이메일", func(a *assignment.Assignment) string {
				if a.Employee == nil {
					return ""
				}
				return a.Employee.Email
			}},
		)
	}

	if opts.IncludeAssetDetails {
		cols = append(cols,
			column{"자산 ID", func(a *assignment.Assignment) string { return a.AssetID }},
			column{"제조사", func(a *assignment.Assignment) string {
				if a.Asset == nil {
					return ""
				}
				return a.Asset.Manufacturer
			}},
			column{"모델", func(a *assignment.Assignment) string {
				if a.Asset == nil {
					return ""
				}
				return a.Asset.Model
			}},
			column{"시리얼 번호", func(a *assignment.Assignment) string {
				if a.Asset == nil {
					return ""
				}
				return a.Asset.SerialNumber
			}},
		)
	}

	return cols
}

func headers(cols []column) []string {
	result := make([]string, len(cols))
	for i, col := range cols {
		result[i] = col.header
	}
	return result
}

func row(cols []column, a *assignment.Assignment) []string {
	result := make([]string, len(cols))
	for i, col := range cols {
		result[i] = col.extract(a)
	}
	return result
}

// Collector selects the assignment collection to export. The
// assignment service satisfies it with its search/filter/sort
// pipeline, so exports see exactly the view the caller asked for.
type Collector interface {
	Collect(query assignment.ListQuery) ([]*assignment.Assignment, error)
}

// EventPublisher dispatches domain events to interested handlers.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service renders assignment collections into downloadable files.
type Service struct {
	collector Collector
	events    EventPublisher
	logger    *slog.Logger
}

func NewService(collector Collector, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		collector: collector,
		events:    publisher,
		logger:    logger,
	}
}

// Export runs the selection pipeline and renders the result in the
// requested format. Each call is single shot and stateless; encoding
// failures surface as an export error instead of a partial file.
func (s *Service) Export(actorID string, query assignment.ListQuery, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		s.logger.Error("export options invalid", "error", err)
		return nil, err
	}

	assignments, err := s.collector.Collect(query)
	if err != nil {
		s.logger.Error("failed to collect assignments for export", "error", err)
		return nil, err
	}

	var buf bytes.Buffer
	var contentType string

	switch opts.Format {
	case FormatCSV:
		contentType = "text/csv; charset=utf-8"
		err = writeCSV(&buf, assignments, opts)
	default:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = writeWorkbook(&buf, assignments, opts)
	}
	if err != nil {
		s.logger.Error("export encoding failed", "error", err, "format", opts.Format)
		return nil, errors.NewExportError(err)
	}

	result := &Result{
		FileName:    opts.FullFileName(),
		ContentType: contentType,
		Content:     buf.Bytes(),
	}

	s.events.Publish(context.Background(), events.NewAssignmentsExportedEvent(
		len(assignments), opts.Format, result.FileName, actorID))

	s.logger.Info("assignments exported",
		"rows", len(assignments),
		"format", opts.Format,
		"file_name", result.FileName)

	return result, nil
}
